package tool

import "errors"

var (
	// ErrEmptySchema is returned when a ParameterSchema is built from no
	// fragments or an empty fragment.
	ErrEmptySchema = errors.New("parameter schema requires at least one non-empty fragment")

	// ErrInvalidArgument is returned for programmer-level misuse of the
	// registry API, such as passing an already-wrapped Tool to Load.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateTool is returned when a tool id is already registered.
	ErrDuplicateTool = errors.New("tool already registered")

	// ErrToolNotFound is returned when executing an unknown tool id.
	ErrToolNotFound = errors.New("tool not found")

	// ErrValidation is returned when supplied arguments do not satisfy the
	// tool's parameter schema.
	ErrValidation = errors.New("argument validation failed")
)
