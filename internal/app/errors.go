package service

import "errors"

// Sentinel error kinds for the projector.
var (
	ErrCancelled = errors.New("projection cancelled")
)
