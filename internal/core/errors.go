package core

import (
	"errors"
	"fmt"
)

// ErrOpen matches every OpenError through errors.Is.
var ErrOpen = errors.New("open failed")

// Role names which end of a run failed to open.
type Role string

const (
	RoleSource Role = "source"
	RoleSink   Role = "sink"
)

// OpenError is fatal for a run and for the batch that contains it.
type OpenError struct {
	Role Role
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s %s: %v", e.Role, e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

func (e *OpenError) Is(target error) bool {
	return target == ErrOpen
}
