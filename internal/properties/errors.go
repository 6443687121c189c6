package properties

import "errors"

var (
	ErrNotFound        = errors.New("property not found")
	ErrVersionConflict = errors.New("property version conflict")
	ErrInvalidInput    = errors.New("invalid property input")
)
