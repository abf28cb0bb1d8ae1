package todo

import (
	"testing"

	"github.com/askern/tracker/internal/storage"
)

// openTestStore creates a store over a fresh temp directory.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	dir, err := storage.Open(t.TempDir(), storage.Options{})
	if err != nil {
		t.Fatalf("failed to open storage dir: %v", err)
	}
	return NewStore(dir, Defaults{})
}

// mustAdd creates a todo or fails the test.
func mustAdd(t *testing.T, store *Store, title string, opts AddOptions) *Todo {
	t.Helper()

	created, err := store.Add(title, opts)
	if err != nil {
		t.Fatalf("failed to add todo %q: %v", title, err)
	}
	return created
}

func todoIDs(todos []Todo) []int {
	ids := make([]int, 0, len(todos))
	for _, t := range todos {
		ids = append(ids, t.ID)
	}
	return ids
}
