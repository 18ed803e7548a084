package domain

import "errors"

var (
	ErrCheckNotFound       = errors.New("check not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrModelFailure        = errors.New("vision model request failed")
	ErrInvalidStatus       = errors.New("invalid review status")
)
