package todo

import (
	_ "embed"
	"fmt"

	"github.com/askern/tracker/internal/storage"
)

// DocumentFile is the name of the task document within the storage dir.
const DocumentFile = "todo.json"

//go:embed schema.json
var schemaSource string

var documentSchema = storage.MustCompileSchema(DocumentFile, schemaSource)

// Document is the persisted task document: the ordered todo list, the
// configured vocabularies, and the dependency mapping.
type Document struct {
	// NextID is the ID the next created todo will receive. Persisting the
	// counter keeps IDs monotonic even after the highest todo is deleted.
	NextID int `json:"next_id"`

	Todos         []Todo   `json:"todos"`
	Categories    []string `json:"categories"`
	Statuses      []Status `json:"statuses"`
	PriorityScale string   `json:"priority_scale"`

	// Dependencies maps a dependent todo ID to its prerequisite IDs.
	Dependencies map[int][]int `json:"dependencies"`
}

// Find returns the todo with the given ID, or nil.
func (d *Document) Find(id int) *Todo {
	for i := range d.Todos {
		if d.Todos[i].ID == id {
			return &d.Todos[i]
		}
	}
	return nil
}

// Graph returns a dependency graph over the document's edge mapping.
// Mutations to the graph are written back with SetEdges.
func (d *Document) Graph() *Graph {
	return NewGraph(d.Dependencies)
}

// SetEdges replaces the document's dependency mapping.
func (d *Document) SetEdges(edges map[int][]int) {
	d.Dependencies = edges
}

// validate checks the structural invariants the schema cannot express:
// unique in-range IDs, vocabulary membership, edge endpoints that exist,
// and an acyclic dependency relation.
func (d *Document) validate() error {
	if err := requireCompleteStatus(d.Statuses); err != nil {
		return corrupt(err.Error())
	}

	seen := make(map[int]bool, len(d.Todos))
	for i := range d.Todos {
		t := &d.Todos[i]
		if seen[t.ID] {
			return corrupt(fmt.Sprintf("duplicate todo id %d", t.ID))
		}
		seen[t.ID] = true
		if t.ID >= d.NextID {
			return corrupt(fmt.Sprintf("todo id %d is not below next_id %d", t.ID, d.NextID))
		}
		if err := validateStatus(t.Status, d.Statuses); err != nil {
			return corrupt(fmt.Sprintf("todo %d: %v", t.ID, err))
		}
		if err := validateCategory(t.Category, d.Categories); err != nil {
			return corrupt(fmt.Sprintf("todo %d: %v", t.ID, err))
		}
	}

	for dependent, prereqs := range d.Dependencies {
		if !seen[dependent] {
			return corrupt(fmt.Sprintf("dependency references missing todo %d", dependent))
		}
		edgeSeen := make(map[int]bool, len(prereqs))
		for _, prereq := range prereqs {
			if !seen[prereq] {
				return corrupt(fmt.Sprintf("todo %d depends on missing todo %d", dependent, prereq))
			}
			if prereq == dependent {
				return corrupt(fmt.Sprintf("todo %d depends on itself", dependent))
			}
			if edgeSeen[prereq] {
				return corrupt(fmt.Sprintf("todo %d lists prerequisite %d twice", dependent, prereq))
			}
			edgeSeen[prereq] = true
		}
	}

	if d.Graph().HasCycle() {
		return corrupt("dependency graph contains a cycle")
	}
	return nil
}

func requireCompleteStatus(statuses []Status) error {
	for _, s := range statuses {
		if s == StatusComplete {
			return nil
		}
	}
	return fmt.Errorf("status vocabulary is missing %q", StatusComplete)
}

func corrupt(detail string) error {
	return fmt.Errorf("%w: %s: %s", storage.ErrCorruptDocument, DocumentFile, detail)
}
