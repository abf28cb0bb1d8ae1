package todo

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"testing"

	"github.com/askern/tracker/internal/storage"
)

func TestDocument_RoundTrip(t *testing.T) {
	store := openTestStore(t)

	a := mustAdd(t, store, "first", AddOptions{Priority: PriorityPtr(9), Description: "with description"})
	b := mustAdd(t, store, "second", AddOptions{Category: "docs", Notes: "a note"})
	if err := store.AddDependency(b.ID, a.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.UpdateStatus(a.ID, StatusComplete); err != nil {
		t.Fatal(err)
	}

	// A second store over the same directory sees an identical document.
	reloaded := NewStore(store.Dir(), Defaults{})
	before, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	after, err := reloaded.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("round trip changed document:\nbefore: %+v\nafter:  %+v", before, after)
	}
	if after.Todos[0].CompletedAt == nil {
		t.Error("completed_at lost in round trip")
	}
	if after.Todos[1].Notes != "a note" {
		t.Error("notes lost in round trip")
	}
}

func writeTaskDocument(t *testing.T, store *Store, body string) {
	t.Helper()
	if err := os.WriteFile(store.Dir().Path(DocumentFile), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_CorruptDocuments(t *testing.T) {
	base := `{
  "next_id": %s,
  "todos": %s,
  "categories": ["bug", "feature"],
  "statuses": %s,
  "priority_scale": "1-10 (10=highest)",
  "dependencies": %s
}`

	tests := []struct {
		name   string
		nextID string
		todos  string
		states string
		deps   string
	}{
		{
			name:   "stored cycle",
			nextID: "3",
			todos:  `[{"id":1,"title":"a","priority":5,"status":"todo","category":"bug","created_at":"2026-01-01"},{"id":2,"title":"b","priority":5,"status":"todo","category":"bug","created_at":"2026-01-01"}]`,
			states: `["todo","complete"]`,
			deps:   `{"1":[2],"2":[1]}`,
		},
		{
			name:   "edge to missing todo",
			nextID: "2",
			todos:  `[{"id":1,"title":"a","priority":5,"status":"todo","category":"bug","created_at":"2026-01-01"}]`,
			states: `["todo","complete"]`,
			deps:   `{"1":[7]}`,
		},
		{
			name:   "duplicate ids",
			nextID: "2",
			todos:  `[{"id":1,"title":"a","priority":5,"status":"todo","category":"bug","created_at":"2026-01-01"},{"id":1,"title":"b","priority":5,"status":"todo","category":"bug","created_at":"2026-01-01"}]`,
			states: `["todo","complete"]`,
			deps:   `{}`,
		},
		{
			name:   "next_id not above max id",
			nextID: "1",
			todos:  `[{"id":1,"title":"a","priority":5,"status":"todo","category":"bug","created_at":"2026-01-01"}]`,
			states: `["todo","complete"]`,
			deps:   `{}`,
		},
		{
			name:   "status outside vocabulary",
			nextID: "2",
			todos:  `[{"id":1,"title":"a","priority":5,"status":"shipped","category":"bug","created_at":"2026-01-01"}]`,
			states: `["todo","complete"]`,
			deps:   `{}`,
		},
		{
			name:   "vocabulary missing complete",
			nextID: "1",
			todos:  `[]`,
			states: `["todo","done"]`,
			deps:   `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openTestStore(t)
			body := fmtDocument(base, tt.nextID, tt.todos, tt.states, tt.deps)
			writeTaskDocument(t, store, body)

			_, err := store.Load()
			if !errors.Is(err, storage.ErrCorruptDocument) {
				t.Errorf("expected ErrCorruptDocument, got %v", err)
			}
		})
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	store := openTestStore(t)
	// Priority outside 1-10 is rejected by the schema before invariants run.
	writeTaskDocument(t, store, `{
  "next_id": 2,
  "todos": [{"id":1,"title":"a","priority":99,"status":"todo","category":"bug","created_at":"2026-01-01"}],
  "categories": ["bug"],
  "statuses": ["todo","complete"],
  "dependencies": {}
}`)

	_, err := store.Load()
	if !errors.Is(err, storage.ErrCorruptDocument) {
		t.Errorf("expected ErrCorruptDocument, got %v", err)
	}
}

func fmtDocument(base, nextID, todos, statuses, deps string) string {
	return fmt.Sprintf(base, nextID, todos, statuses, deps)
}
