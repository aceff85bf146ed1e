package source

import "errors"

var (
	ErrInvalidURI = errors.New("invalid source uri")

	ErrFileNotFound      = errors.New("input file not found")
	ErrObjectNotFound    = errors.New("object not found")
	ErrBucketNotFound    = errors.New("bucket not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")

	ErrInvalidConfig      = errors.New("invalid s3 configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
)
