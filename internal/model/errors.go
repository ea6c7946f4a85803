package model

import "errors"

// Domain errors for entity construction.
var (
	// ErrUnknownType indicates an unrecognized node or object discriminator.
	ErrUnknownType = errors.New("model: unknown type")

	// ErrBadDescriptor indicates a descriptor missing a required field or
	// carrying a field of the wrong shape.
	ErrBadDescriptor = errors.New("model: bad descriptor")
)
