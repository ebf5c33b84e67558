package byteio

import "errors"

// Sentinel errors for the primitive layer. The root package wraps these into
// its typed Code taxonomy (see errors.go); byteio itself stays free of any
// dependency on the rest of the module so it can be reused in isolation.
var (
	ErrInvalidLength = errors.New("byteio: buffer underrun")
	ErrInvalidData   = errors.New("byteio: discriminator byte out of range")
	ErrTooLong       = errors.New("byteio: value exceeds configured width")
	ErrInvalidSize   = errors.New("byteio: length exceeds addressable range")
)
