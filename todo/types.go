package todo

// Status represents the state of a todo. The set of valid statuses is
// configured per store; StatusComplete must always be a member because
// completion semantics and blocking hang off it.
type Status string

const (
	// StatusTodo indicates the todo has not been started.
	StatusTodo Status = "todo"

	// StatusInProgress indicates the todo is currently being worked on.
	StatusInProgress Status = "in_progress"

	// StatusTesting indicates the todo is implemented and under test.
	StatusTesting Status = "testing"

	// StatusComplete indicates the todo is finished. This status is
	// required in every configured vocabulary.
	StatusComplete Status = "complete"
)

// DefaultStatuses returns the default ordered status vocabulary.
func DefaultStatuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusTesting, StatusComplete}
}

// DefaultCategories returns the default category set.
func DefaultCategories() []string {
	return []string{"bug", "feature", "enhancement", "docs", "refactor", "test"}
}

// Priority bounds and default for todos. 10 is the highest priority.
const (
	PriorityMin     = 1
	PriorityMax     = 10
	PriorityDefault = 5
)

// DefaultPriorityScale describes the priority scale in persisted documents.
const DefaultPriorityScale = "1-10 (10=highest)"

// PriorityBucket returns the reporting bucket label for a priority level.
func PriorityBucket(priority int) string {
	switch {
	case priority >= 9:
		return "critical (9-10)"
	case priority >= 7:
		return "high (7-8)"
	case priority >= 4:
		return "medium (4-6)"
	default:
		return "low (1-3)"
	}
}

// PriorityBuckets returns all bucket labels from highest to lowest.
func PriorityBuckets() []string {
	return []string{"critical (9-10)", "high (7-8)", "medium (4-6)", "low (1-3)"}
}

// PriorityPtr returns a pointer to the provided priority.
func PriorityPtr(priority int) *int {
	return &priority
}

// StatusPtr returns a pointer to the provided status.
func StatusPtr(status Status) *Status {
	return &status
}
