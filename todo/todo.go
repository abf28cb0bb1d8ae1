// Package todo implements a file-backed task tracker with prerequisite
// dependencies.
//
// Todos live in a single JSON document alongside the configured category and
// status vocabularies and the dependency mapping. The dependency relation
// must always form a DAG; every edge mutation goes through Graph, which
// rejects edges that would close a cycle.
//
// The public API mirrors the tracker's operation surface:
//   - Add, Get, List, Update, UpdateStatus, UpdatePriority, Delete for the
//     todo lifecycle
//   - AddDependency, RemoveDependency, DependencyChain for dependency
//     management
//   - Blocked, Unblocked, Summary for readiness queries
package todo

import "github.com/askern/tracker/internal/dates"

// Todo represents a single tracked work item.
type Todo struct {
	// ID is a positive integer unique for the lifetime of the store.
	// IDs are assigned monotonically and never reused after deletion.
	ID int `json:"id"`

	// Title is the short summary of the todo.
	Title string `json:"title"`

	// Description provides additional context about the todo.
	Description string `json:"description"`

	// Priority is the importance level (1-10, 10 = highest).
	Priority int `json:"priority"`

	// Status is the current state, drawn from the configured vocabulary.
	Status Status `json:"status"`

	// Category is drawn from the configured category set.
	Category string `json:"category"`

	// CreatedAt is the date the todo was created.
	CreatedAt dates.Date `json:"created_at"`

	// TargetDate is the optional planned completion date.
	TargetDate *dates.Date `json:"target_date,omitempty"`

	// CompletedAt is set exactly when Status becomes StatusComplete and
	// cleared when the todo leaves that status.
	CompletedAt *dates.Date `json:"completed_at,omitempty"`

	// Notes holds free-form follow-up text.
	Notes string `json:"notes,omitempty"`
}

// IsComplete reports whether the todo has reached the complete status.
func (t *Todo) IsComplete() bool {
	return t.Status == StatusComplete
}

// Chain is the transitive closure of a todo's dependency relation in both
// directions.
type Chain struct {
	// TodoID is the todo the chain was computed for.
	TodoID int `json:"todo_id"`

	// Prerequisites are all todos this one depends on, directly or
	// transitively, in ascending ID order.
	Prerequisites []int `json:"prerequisites"`

	// Dependents are all todos depending on this one, directly or
	// transitively, in ascending ID order.
	Dependents []int `json:"dependents"`
}
