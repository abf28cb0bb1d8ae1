package todo

import (
	"fmt"
	"sort"

	"github.com/askern/tracker/internal/dates"
)

// AddOptions configures a new todo.
type AddOptions struct {
	// Description provides additional context.
	Description string

	// Priority is the importance level (1-10). Defaults to 5 when nil.
	Priority *int

	// Category defaults to the first configured category.
	Category string

	// TargetDate is the optional planned completion date.
	TargetDate *dates.Date

	// Notes holds free-form follow-up text.
	Notes string

	// DependsOn lists prerequisite todo IDs to record at creation.
	DependsOn []int
}

// Add creates a new todo and returns it with its assigned ID.
func (s *Store) Add(title string, opts AddOptions) (*Todo, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}

	priority := PriorityDefault
	if opts.Priority != nil {
		priority = *opts.Priority
	}
	if err := ValidatePriority(priority); err != nil {
		return nil, err
	}

	var created Todo
	err := s.mutate(func(doc *Document) error {
		category := opts.Category
		if category == "" {
			category = DefaultCategory(doc.Categories)
		}
		if err := validateCategory(category, doc.Categories); err != nil {
			return err
		}

		created = Todo{
			ID:          doc.NextID,
			Title:       title,
			Description: opts.Description,
			Priority:    priority,
			Status:      doc.Statuses[0],
			Category:    category,
			CreatedAt:   dates.Today(),
			TargetDate:  opts.TargetDate,
			Notes:       opts.Notes,
		}
		doc.NextID++
		doc.Todos = append(doc.Todos, created)

		graph := doc.Graph()
		for _, prereq := range opts.DependsOn {
			if doc.Find(prereq) == nil {
				return fmt.Errorf("%w: %d", ErrNotFound, prereq)
			}
			if err := graph.AddEdge(created.ID, prereq); err != nil {
				return err
			}
		}
		doc.SetEdges(graph.Edges())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// DefaultCategory picks "feature" when the vocabulary has it, otherwise the
// first configured category.
func DefaultCategory(categories []string) string {
	for _, c := range categories {
		if c == "feature" {
			return c
		}
	}
	return categories[0]
}

// Get returns the todo with the given ID.
func (s *Store) Get(id int) (*Todo, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	t := doc.Find(id)
	if t == nil {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return t, nil
}

// Filter configures which todos List returns. Nil pointers mean "don't
// filter on this field".
type Filter struct {
	Status      *Status
	Category    *string
	MinPriority *int
	MaxPriority *int

	// ExcludeComplete drops complete todos. Ignored when Status is set.
	ExcludeComplete bool

	// SortBy orders results: "priority" (descending, ID tiebreak, the
	// default), "id", or "created" (newest first).
	SortBy string
}

// List returns todos matching the filter.
func (s *Store) List(filter Filter) ([]Todo, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return filterTodos(doc, filter), nil
}

func filterTodos(doc *Document, filter Filter) []Todo {
	result := make([]Todo, 0, len(doc.Todos))
	for _, t := range doc.Todos {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Status == nil && filter.ExcludeComplete && t.IsComplete() {
			continue
		}
		if filter.Category != nil && t.Category != *filter.Category {
			continue
		}
		if filter.MinPriority != nil && t.Priority < *filter.MinPriority {
			continue
		}
		if filter.MaxPriority != nil && t.Priority > *filter.MaxPriority {
			continue
		}
		result = append(result, t)
	}

	switch filter.SortBy {
	case "", "priority":
		sort.SliceStable(result, func(i, j int) bool {
			if result[i].Priority != result[j].Priority {
				return result[i].Priority > result[j].Priority
			}
			return result[i].ID < result[j].ID
		})
	case "id":
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].ID < result[j].ID
		})
	case "created":
		sort.SliceStable(result, func(i, j int) bool {
			return result[j].CreatedAt.Before(result[i].CreatedAt)
		})
	}
	return result
}

// UpdateOptions configures fields to update. Nil pointers mean "don't
// update this field".
type UpdateOptions struct {
	Title       *string
	Description *string
	Priority    *int
	Category    *string
	TargetDate  *dates.Date
	Notes       *string

	// ClearTargetDate removes the target date. Ignored when TargetDate is
	// also set.
	ClearTargetDate bool
}

// Update updates fields of a todo and returns the updated record.
func (s *Store) Update(id int, opts UpdateOptions) (*Todo, error) {
	if opts.Title != nil {
		if err := ValidateTitle(*opts.Title); err != nil {
			return nil, err
		}
	}
	if opts.Priority != nil {
		if err := ValidatePriority(*opts.Priority); err != nil {
			return nil, err
		}
	}

	var updated Todo
	err := s.mutate(func(doc *Document) error {
		t := doc.Find(id)
		if t == nil {
			return fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		if opts.Category != nil {
			if err := validateCategory(*opts.Category, doc.Categories); err != nil {
				return err
			}
			t.Category = *opts.Category
		}
		if opts.Title != nil {
			t.Title = *opts.Title
		}
		if opts.Description != nil {
			t.Description = *opts.Description
		}
		if opts.Priority != nil {
			t.Priority = *opts.Priority
		}
		if opts.TargetDate != nil {
			t.TargetDate = opts.TargetDate
		} else if opts.ClearTargetDate {
			t.TargetDate = nil
		}
		if opts.Notes != nil {
			t.Notes = *opts.Notes
		}
		updated = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateStatus moves a todo to a new status. Any configured status may
// follow any other; the permissive transition policy is deliberate and this
// is the single place a stricter transition table would slot in. Entering
// the complete status stamps CompletedAt; leaving it clears the stamp.
func (s *Store) UpdateStatus(id int, status Status) (*Todo, error) {
	var updated Todo
	err := s.mutate(func(doc *Document) error {
		t := doc.Find(id)
		if t == nil {
			return fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		if err := validateStatus(status, doc.Statuses); err != nil {
			return err
		}
		applyStatus(t, status, dates.Today())
		updated = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// applyStatus transitions a todo, maintaining the CompletedAt invariant.
func applyStatus(t *Todo, status Status, today dates.Date) {
	t.Status = status
	if status == StatusComplete {
		t.CompletedAt = &today
	} else {
		t.CompletedAt = nil
	}
}

// Complete validates that the todo exists and is not already complete, then
// marks it complete as of today. The document is mutated in memory only;
// callers persist. The workflow coordinator uses this to join completion
// with a changelog entry in one durable write.
func (d *Document) Complete(id int, today dates.Date) (*Todo, error) {
	t := d.Find(id)
	if t == nil {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if t.IsComplete() {
		return nil, fmt.Errorf("%w: %d", ErrAlreadyComplete, id)
	}
	if err := validateStatus(StatusComplete, d.Statuses); err != nil {
		return nil, err
	}
	applyStatus(t, StatusComplete, today)
	return t, nil
}

// Complete marks a todo complete as of today, rejecting repeats with
// ErrAlreadyComplete.
func (s *Store) Complete(id int) (*Todo, error) {
	var updated Todo
	err := s.mutate(func(doc *Document) error {
		t, err := doc.Complete(id, dates.Today())
		if err != nil {
			return err
		}
		updated = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdatePriority changes a todo's priority.
func (s *Store) UpdatePriority(id int, priority int) (*Todo, error) {
	return s.Update(id, UpdateOptions{Priority: &priority})
}

// Delete removes a todo and prunes every dependency edge touching it, in
// either direction. Changelog entries referencing the todo are untouched.
func (s *Store) Delete(id int) error {
	return s.mutate(func(doc *Document) error {
		index := -1
		for i := range doc.Todos {
			if doc.Todos[i].ID == id {
				index = i
				break
			}
		}
		if index < 0 {
			return fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		doc.Todos = append(doc.Todos[:index], doc.Todos[index+1:]...)

		graph := doc.Graph()
		graph.RemoveNode(id)
		doc.SetEdges(graph.Edges())
		return nil
	})
}

// AddDependency records that dependent requires prerequisite. Both IDs must
// name existing todos; graph errors (self, duplicate, cycle) surface
// unchanged.
func (s *Store) AddDependency(dependent, prerequisite int) error {
	return s.mutate(func(doc *Document) error {
		for _, id := range []int{dependent, prerequisite} {
			if doc.Find(id) == nil {
				return fmt.Errorf("%w: %d", ErrNotFound, id)
			}
		}
		graph := doc.Graph()
		if err := graph.AddEdge(dependent, prerequisite); err != nil {
			return err
		}
		doc.SetEdges(graph.Edges())
		return nil
	})
}

// RemoveDependency removes the edge if present; absent edges are a no-op.
func (s *Store) RemoveDependency(dependent, prerequisite int) error {
	return s.mutate(func(doc *Document) error {
		graph := doc.Graph()
		graph.RemoveEdge(dependent, prerequisite)
		doc.SetEdges(graph.Edges())
		return nil
	})
}

// Blocked returns the non-complete todos with at least one direct
// prerequisite that is not complete, sorted by ID. Blocking is direct-only:
// a todo is unblocked as soon as its immediate prerequisites are complete.
func (s *Store) Blocked() ([]Todo, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	blocked, _ := partitionBlocked(doc)
	return blocked, nil
}

// Unblocked returns the non-complete todos whose direct prerequisites, if
// any, are all complete, sorted by ID.
func (s *Store) Unblocked() ([]Todo, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	_, unblocked := partitionBlocked(doc)
	return unblocked, nil
}

func partitionBlocked(doc *Document) (blocked, unblocked []Todo) {
	graph := doc.Graph()
	for _, t := range doc.Todos {
		if t.IsComplete() {
			continue
		}
		if isBlocked(doc, graph, t.ID) {
			blocked = append(blocked, t)
		} else {
			unblocked = append(unblocked, t)
		}
	}
	sort.Slice(blocked, func(i, j int) bool { return blocked[i].ID < blocked[j].ID })
	sort.Slice(unblocked, func(i, j int) bool { return unblocked[i].ID < unblocked[j].ID })
	return blocked, unblocked
}

func isBlocked(doc *Document, graph *Graph, id int) bool {
	for _, prereq := range graph.Prerequisites(id) {
		t := doc.Find(prereq)
		if t == nil || !t.IsComplete() {
			return true
		}
	}
	return false
}

// DependencyChain returns the full transitive closure of a todo's
// dependency relation in both directions.
func (s *Store) DependencyChain(id int) (*Chain, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	if doc.Find(id) == nil {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	graph := doc.Graph()
	return &Chain{
		TodoID:        id,
		Prerequisites: graph.Ancestors(id),
		Dependents:    graph.Descendants(id),
	}, nil
}

// Vocabularies returns the configured category and status sets.
func (s *Store) Vocabularies() (categories []string, statuses []Status, err error) {
	doc, err := s.Load()
	if err != nil {
		return nil, nil, err
	}
	return doc.Categories, doc.Statuses, nil
}

// FormatID renders a todo ID the way the CLI displays it.
func FormatID(id int) string {
	return fmt.Sprintf("#%d", id)
}
