package storage

import "errors"

// Sentinel kinds for document persistence errors.
var (
	ErrLoad    = errors.New("load document failed")
	ErrSave    = errors.New("save document failed")
	ErrCorrupt = errors.New("corrupt document")
)
