package todo

import (
	"testing"
)

func TestStore_Summary(t *testing.T) {
	store := openTestStore(t)

	a := mustAdd(t, store, "critical bug", AddOptions{Priority: PriorityPtr(9), Category: "bug"})
	b := mustAdd(t, store, "feature work", AddOptions{Priority: PriorityPtr(8), Category: "feature"})
	c := mustAdd(t, store, "cleanup", AddOptions{Priority: PriorityPtr(2), Category: "refactor"})

	if _, err := store.UpdateStatus(b.ID, StatusInProgress); err != nil {
		t.Fatal(err)
	}
	if err := store.AddDependency(c.ID, a.ID); err != nil {
		t.Fatal(err)
	}

	summary, err := store.Summary()
	if err != nil {
		t.Fatalf("failed to summarize: %v", err)
	}

	if summary.Total != 3 {
		t.Errorf("total: got %d, want 3", summary.Total)
	}
	if summary.ByStatus[StatusTodo] != 2 || summary.ByStatus[StatusInProgress] != 1 {
		t.Errorf("by status: %v", summary.ByStatus)
	}
	if summary.ByCategory["bug"] != 1 || summary.ByCategory["feature"] != 1 || summary.ByCategory["refactor"] != 1 {
		t.Errorf("by category: %v", summary.ByCategory)
	}
	if summary.ByPriority["critical (9-10)"] != 1 {
		t.Errorf("critical bucket: %v", summary.ByPriority)
	}
	if summary.ByPriority["high (7-8)"] != 1 {
		t.Errorf("high bucket: %v", summary.ByPriority)
	}
	if summary.ByPriority["low (1-3)"] != 1 {
		t.Errorf("low bucket: %v", summary.ByPriority)
	}
	// Only a is high priority AND still in status todo; b is in progress.
	if summary.HighPriority != 1 {
		t.Errorf("high priority count: got %d, want 1", summary.HighPriority)
	}
	if summary.InProgress != 1 {
		t.Errorf("in progress count: got %d, want 1", summary.InProgress)
	}
	if summary.Blocked != 1 || summary.Unblocked != 2 {
		t.Errorf("blocked/unblocked: got %d/%d, want 1/2", summary.Blocked, summary.Unblocked)
	}
	if summary.Dependencies != 1 {
		t.Errorf("dependencies count: got %d, want 1", summary.Dependencies)
	}
}

func TestStore_Summary_Empty(t *testing.T) {
	store := openTestStore(t)

	summary, err := store.Summary()
	if err != nil {
		t.Fatalf("failed to summarize empty store: %v", err)
	}
	if summary.Total != 0 {
		t.Errorf("total: got %d, want 0", summary.Total)
	}
	// Every configured status and bucket appears with a zero count.
	for _, status := range DefaultStatuses() {
		if _, ok := summary.ByStatus[status]; !ok {
			t.Errorf("missing status %q in summary", status)
		}
	}
	for _, bucket := range PriorityBuckets() {
		if _, ok := summary.ByPriority[bucket]; !ok {
			t.Errorf("missing bucket %q in summary", bucket)
		}
	}
}
