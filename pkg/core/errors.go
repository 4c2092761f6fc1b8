package core

import "errors"

// Common errors.
var (
	ErrNotFound         = errors.New("note not found")
	ErrExists           = errors.New("note already exists")
	ErrInvalidName      = errors.New("invalid note name")
	ErrWatchUnsupported = errors.New("repository does not support watching")
	ErrInvalidPattern   = errors.New("invalid watch pattern")
)
