package report

import "errors"

var (
	ErrUnknownFormat = errors.New("unknown report format")
	ErrRender        = errors.New("failed to render report")
	ErrSaveReport    = errors.New("failed to save report")
	ErrDuplicateRun  = errors.New("report run already saved")
	ErrRunNotFound   = errors.New("report run not found")
)
