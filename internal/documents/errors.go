package documents

import "errors"

var (
	// ErrNotFound indicates the document is not attached to the property.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidInput indicates a missing or malformed request field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedFile indicates a file type outside the accepted set.
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrFileTooLarge indicates the upload exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")
	// ErrEmptyFile indicates an upload with no content.
	ErrEmptyFile = errors.New("empty file")
)
