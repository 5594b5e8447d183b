package errors

import (
	"fmt"
)

var (
	// ErrNotFound is only produced at the transport edge when strict
	// not-found reporting is enabled. Lower layers report absence as ok=false.
	ErrNotFound     = fmt.Errorf("not found")
	ErrInvalidInput = fmt.Errorf("invalid input")
)
