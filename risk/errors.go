package risk

import "errors"

var (
	ErrInvalidLimitConfig      = errors.New("invalid limit config")
	ErrInvalidInstrumentConfig = errors.New("invalid instrument config")
)
