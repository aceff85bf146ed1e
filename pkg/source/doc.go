// Package source loads raw batch lines from a local file, standard input, an
// arbitrary io.Reader, or an S3 object.
//
// Every source decodes its content as UTF-8, honoring a leading byte order
// mark, and splits it with passport.SplitLines so the result can be handed to
// passport.ReadAll directly.
//
//	src, err := source.Open(ctx, "s3://batches/day4.txt", cfg)
//	if err != nil {
//		return err
//	}
//	lines, err := src.Lines(ctx)
//
// Read failures wrap passport.ErrReadInput together with a classified cause
// such as ErrObjectNotFound or ErrAccessDenied.
package source
