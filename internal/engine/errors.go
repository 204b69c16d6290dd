package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when no user can be resolved for the
	// operation.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoTemplates is returned by quest generation when the active
	// template catalog is empty.
	ErrNoTemplates = errors.New("no active quest templates available")
)

// NotFoundError indicates a record (quest, profile, stats, template) does not
// resolve for the caller's account.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
