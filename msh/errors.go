package msh

import "errors"

var (
	// ErrInvalidArgument is returned before any output is produced when the
	// caller passes a bad file name or a nil/ill-typed mesh.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrContractViolation reports a mesh whose tables are structurally
	// inconsistent: misaligned rows, out of range indices, bad dimensions.
	ErrContractViolation = errors.New("contract violation")

	// ErrMalformed reports a document the decoder cannot parse.
	ErrMalformed = errors.New("malformed msh document")
)
