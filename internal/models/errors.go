package models

import "errors"

var (
	// ErrUnknownParam indicates a SetParam name the process does not have.
	ErrUnknownParam = errors.New("models: unknown parameter")

	// ErrParamBounds indicates a parameter value outside its valid range.
	ErrParamBounds = errors.New("models: parameter out of valid bounds")
)
