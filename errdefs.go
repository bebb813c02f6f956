package mds

import (
	"fmt"
	"strings"
)

type ErrNotFound struct {
	model string
}

func NewErrNotFound(model string) ErrNotFound {
	return ErrNotFound{
		model: model,
	}
}

func (err ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", err.model)
}

type ErrAlreadyExists struct {
	model string
}

func NewErrAlreadyExists(model string) ErrAlreadyExists {
	return ErrAlreadyExists{
		model: model,
	}
}

func (err ErrAlreadyExists) Error() string {
	return fmt.Sprintf("%s already exists", err.model)
}

type ErrAmbiguous struct {
	model string
}

func NewErrAmbiguous(model string) ErrAmbiguous {
	return ErrAmbiguous{
		model: model,
	}
}

func (err ErrAmbiguous) Error() string {
	return fmt.Sprintf("%s is ambiguous", err.model)
}

type ErrInvalidInput struct {
	model  string
	reason string
}

func NewErrInvalidInput(model, reason string) ErrInvalidInput {
	return ErrInvalidInput{
		model:  model,
		reason: reason,
	}
}

func (err ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid %s: %s", err.model, err.reason)
}

// ErrUnauthorized is returned whenever the current principal lacks one of the
// capabilities an operation requires. Missing lists the full required set.
type ErrUnauthorized struct {
	missing []PermissionName
}

func NewErrUnauthorized(missing ...PermissionName) ErrUnauthorized {
	return ErrUnauthorized{
		missing: missing,
	}
}

func (err ErrUnauthorized) Error() string {
	if len(err.missing) == 0 {
		return "unauthorized"
	}

	names := make([]string, len(err.missing))
	for i, name := range err.missing {
		names[i] = string(name)
	}

	return fmt.Sprintf("unauthorized: requires %s", strings.Join(names, ", "))
}
