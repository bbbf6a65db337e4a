package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrSectionNotFound  = errors.New("section not found")
	ErrTemplateNotFound = errors.New("section template not found")
	ErrInvalidSequence  = errors.New("section sequence is not a permutation of the project's sections")
	ErrInvalidAnchor    = errors.New("invalid insert position")
	ErrDuplicateSlug    = errors.New("website url already in use")
	ErrInvalidSlug      = errors.New("website url must contain at least one of [a-z0-9-_]")
	ErrNameRequired     = errors.New("project name required")
	ErrInvalidData      = errors.New("section data must be valid JSON")
	ErrOrderInvariant   = errors.New("section order is not dense")
	ErrPersistence      = errors.New("persistence failure")
)

// PersistenceError reports that a committed in-memory mutation could not be
// stored by the persistence adapter. The in-memory state is still correct.
type PersistenceError struct {
	Op        string
	ProjectID string
	Err       error
}

func (e *PersistenceError) Error() string {
	if e.ProjectID == "" {
		return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("persistence %s project %s: %v", e.Op, e.ProjectID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrPersistence) match any PersistenceError.
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
