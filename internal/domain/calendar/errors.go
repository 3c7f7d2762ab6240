package calendar

import "errors"

// ErrInvalidDate is returned by ParseStrict for malformed or out-of-range input.
var ErrInvalidDate = errors.New("invalid game date")
