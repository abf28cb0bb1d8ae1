package todo

import (
	"errors"
	"fmt"

	"github.com/askern/tracker/internal/validation"
)

var (
	// ErrEmptyTitle is returned when a todo title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrInvalidPriority is returned when priority is outside 1-10.
	ErrInvalidPriority = errors.New("priority must be between 1 and 10")

	// ErrInvalidStatus is returned when a status is not in the configured
	// vocabulary.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidCategory is returned when a category is not in the
	// configured set.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrNotFound is returned when a todo with the given ID doesn't exist.
	ErrNotFound = errors.New("todo not found")

	// ErrAlreadyComplete is returned when completing a todo that is
	// already complete.
	ErrAlreadyComplete = errors.New("todo is already complete")

	// ErrSelfDependency is returned when a todo would depend on itself.
	ErrSelfDependency = errors.New("todo cannot depend on itself")

	// ErrDuplicateDependency is returned when the dependency already exists.
	ErrDuplicateDependency = errors.New("dependency already exists")

	// ErrCycle is returned when a dependency edge would close a cycle.
	// The graph is left exactly as it was before the call.
	ErrCycle = errors.New("dependency would create a cycle")
)

// ValidateTitle checks that the title is non-empty.
func ValidateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	return nil
}

// ValidatePriority checks that the priority is within 1-10.
func ValidatePriority(priority int) error {
	if priority < PriorityMin || priority > PriorityMax {
		return fmt.Errorf("%w: got %d", ErrInvalidPriority, priority)
	}
	return nil
}

// validateStatus checks membership in the configured vocabulary.
func validateStatus(status Status, vocabulary []Status) error {
	for _, valid := range vocabulary {
		if status == valid {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidStatus, status, validation.FormatValidValues(vocabulary))
}

// validateCategory checks membership in the configured set.
func validateCategory(category string, categories []string) error {
	for _, valid := range categories {
		if category == valid {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidCategory, category, validation.FormatValidValues(categories))
}
