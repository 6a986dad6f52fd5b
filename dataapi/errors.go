package dataapi

import "errors"

var (
	// ErrUnsupportedParameterType is returned when a parameter value has no
	// wire mapping.
	ErrUnsupportedParameterType = errors.New("unsupported parameter type")

	// ErrUnsupportedField is returned when a wire field does not carry
	// exactly one of the supported members.
	ErrUnsupportedField = errors.New("unsupported field")
)
