package workflow

import (
	"errors"
	"os"
	"testing"

	"github.com/askern/tracker/internal/storage"
	"github.com/askern/tracker/todo"
	"github.com/askern/tracker/version"
)

func openTestCoordinator(t *testing.T, initial string) (*Coordinator, *todo.Store, *version.Ledger) {
	t.Helper()

	dir, err := storage.Open(t.TempDir(), storage.Options{})
	if err != nil {
		t.Fatalf("failed to open storage dir: %v", err)
	}
	store := todo.NewStore(dir, todo.Defaults{})
	ledger, err := version.NewLedger(dir, initial)
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}
	return NewCoordinator(store, ledger), store, ledger
}

func TestCompleteWithRelease_Bump(t *testing.T) {
	coordinator, store, ledger := openTestCoordinator(t, "1.0.0")

	added, err := store.Add("fix flaky lock test", todo.AddOptions{})
	if err != nil {
		t.Fatal(err)
	}

	result, err := coordinator.CompleteWithRelease(added.ID, "bug", ReleaseOptions{Bump: version.KindPatch})
	if err != nil {
		t.Fatalf("failed to complete with release: %v", err)
	}

	if result.ChangeVersion != "1.0.0" {
		t.Errorf("change recorded under %q, want 1.0.0", result.ChangeVersion)
	}
	if result.CurrentVersion != "1.0.1" {
		t.Errorf("current version %q, want 1.0.1", result.CurrentVersion)
	}
	if result.Todo.Status != todo.StatusComplete || result.Todo.CompletedAt == nil {
		t.Errorf("todo not completed: %+v", result.Todo)
	}

	// Both documents persisted.
	stored, err := store.Get(added.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !stored.IsComplete() {
		t.Errorf("completion not persisted: %+v", stored)
	}
	current, err := ledger.Current()
	if err != nil {
		t.Fatal(err)
	}
	if current != "1.0.1" {
		t.Errorf("persisted current version %q, want 1.0.1", current)
	}
	entry, err := ledger.Info("1.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if len(entry.Changes) != 1 {
		t.Fatalf("expected 1 change under 1.0.0, got %d", len(entry.Changes))
	}
	change := entry.Changes[0]
	if change.Description != "fix flaky lock test" {
		t.Errorf("description should default to the todo title, got %q", change.Description)
	}
	if change.TodoID == nil || *change.TodoID != added.ID {
		t.Errorf("todo link lost: %+v", change)
	}
	if change.TodoPriority == nil || *change.TodoPriority != added.Priority || change.TodoCategory != added.Category {
		t.Errorf("todo snapshot lost: %+v", change)
	}
}

func TestCompleteWithRelease_NoBump(t *testing.T) {
	coordinator, store, ledger := openTestCoordinator(t, "0.3.0")

	added, err := store.Add("write release notes", todo.AddOptions{})
	if err != nil {
		t.Fatal(err)
	}

	result, err := coordinator.CompleteWithRelease(added.ID, "docs", ReleaseOptions{
		Description: "add release notes for 0.3.0",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.ChangeVersion != "0.3.0" || result.CurrentVersion != "0.3.0" {
		t.Errorf("expected no bump, got %+v", result)
	}

	current, err := ledger.Current()
	if err != nil {
		t.Fatal(err)
	}
	if current != "0.3.0" {
		t.Errorf("version moved without a bump: %q", current)
	}
	entry, err := ledger.Info("0.3.0")
	if err != nil {
		t.Fatal(err)
	}
	if len(entry.Changes) != 1 || entry.Changes[0].Description != "add release notes for 0.3.0" {
		t.Errorf("explicit description lost: %+v", entry.Changes)
	}
}

func TestCompleteWithRelease_AutoBump(t *testing.T) {
	tests := []struct {
		changeType string
		want       string
	}{
		{"feature", "1.1.0"},
		{"breaking", "2.0.0"},
		{"bug", "1.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.changeType, func(t *testing.T) {
			coordinator, store, _ := openTestCoordinator(t, "1.0.0")
			added, err := store.Add("some work", todo.AddOptions{})
			if err != nil {
				t.Fatal(err)
			}
			result, err := coordinator.CompleteWithRelease(added.ID, tt.changeType, ReleaseOptions{AutoBump: true})
			if err != nil {
				t.Fatal(err)
			}
			if result.CurrentVersion != tt.want {
				t.Errorf("auto bump for %q: got %q, want %q", tt.changeType, result.CurrentVersion, tt.want)
			}
		})
	}
}

func TestCompleteWithRelease_ValidationLeavesStateUnchanged(t *testing.T) {
	coordinator, store, ledger := openTestCoordinator(t, "1.0.0")

	added, err := store.Add("pending work", todo.AddOptions{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{
			name: "unknown todo",
			run: func() error {
				_, err := coordinator.CompleteWithRelease(99, "bug", ReleaseOptions{})
				return err
			},
			want: todo.ErrNotFound,
		},
		{
			name: "empty change type",
			run: func() error {
				_, err := coordinator.CompleteWithRelease(added.ID, "", ReleaseOptions{})
				return err
			},
			want: version.ErrEmptyType,
		},
		{
			name: "invalid bump kind",
			run: func() error {
				_, err := coordinator.CompleteWithRelease(added.ID, "bug", ReleaseOptions{Bump: "huge"})
				return err
			},
			want: version.ErrInvalidBump,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}

			stored, err := store.Get(added.ID)
			if err != nil {
				t.Fatal(err)
			}
			if stored.IsComplete() {
				t.Error("todo completed despite failed transaction")
			}
			entry, err := ledger.Info("1.0.0")
			if err != nil {
				t.Fatal(err)
			}
			if len(entry.Changes) != 0 {
				t.Errorf("changes recorded despite failed transaction: %+v", entry.Changes)
			}
		})
	}
}

func TestCompleteWithRelease_AlreadyComplete(t *testing.T) {
	coordinator, store, _ := openTestCoordinator(t, "1.0.0")

	added, err := store.Add("one and done", todo.AddOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := coordinator.CompleteWithRelease(added.ID, "bug", ReleaseOptions{}); err != nil {
		t.Fatal(err)
	}

	_, err = coordinator.CompleteWithRelease(added.ID, "bug", ReleaseOptions{})
	if !errors.Is(err, todo.ErrAlreadyComplete) {
		t.Errorf("expected ErrAlreadyComplete, got %v", err)
	}
}

func TestCompleteWithRelease_PersistenceFailureLeavesBothUnchanged(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	coordinator, store, ledger := openTestCoordinator(t, "1.0.0")

	added, err := store.Add("doomed work", todo.AddOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.AddChange("docs", "seed the ledger file", version.ChangeOptions{}); err != nil {
		t.Fatal(err)
	}

	// Staging needs to create temp files in the directory; removing the
	// write bit fails the transaction before any rename.
	root := store.Dir().Root()
	if err := os.Chmod(root, 0555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(root, 0755) })

	_, err = coordinator.CompleteWithRelease(added.ID, "bug", ReleaseOptions{Bump: version.KindPatch})
	if !errors.Is(err, storage.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}

	if err := os.Chmod(root, 0755); err != nil {
		t.Fatal(err)
	}
	stored, err := store.Get(added.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.IsComplete() {
		t.Error("todo completed despite persistence failure")
	}
	current, err := ledger.Current()
	if err != nil {
		t.Fatal(err)
	}
	if current != "1.0.0" {
		t.Errorf("version moved despite persistence failure: %q", current)
	}
	entry, err := ledger.Info("1.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if len(entry.Changes) != 1 {
		t.Errorf("ledger changed despite persistence failure: %+v", entry.Changes)
	}
}
