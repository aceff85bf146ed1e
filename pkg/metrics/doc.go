// Package metrics exposes prometheus collectors for validation runs.
//
// Collectors are registered on a caller-supplied registry so several runs in
// one process never collide on the default registry. A CLI run usually ends
// with WriteTextfile, producing a file the node_exporter textfile collector
// can pick up. All methods are safe on a nil *Metrics.
package metrics
