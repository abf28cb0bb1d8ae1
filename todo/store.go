package todo

import (
	"os"

	"github.com/askern/tracker/internal/storage"
)

// Defaults seed the vocabularies of a task document created on first use.
type Defaults struct {
	Categories    []string
	Statuses      []Status
	PriorityScale string
}

// Store provides access to the task document in a storage directory.
// Mutating operations hold the directory lock for their full duration;
// reads load the current document without locking.
type Store struct {
	dir      *storage.Dir
	defaults Defaults
}

// NewStore returns a store over dir. Zero-value defaults are filled with
// the standard vocabularies.
func NewStore(dir *storage.Dir, defaults Defaults) *Store {
	if len(defaults.Categories) == 0 {
		defaults.Categories = DefaultCategories()
	}
	if len(defaults.Statuses) == 0 {
		defaults.Statuses = DefaultStatuses()
	}
	if defaults.PriorityScale == "" {
		defaults.PriorityScale = DefaultPriorityScale
	}
	return &Store{dir: dir, defaults: defaults}
}

// Dir returns the store's storage directory.
func (s *Store) Dir() *storage.Dir {
	return s.dir
}

// Load reads and validates the task document. A missing file yields a fresh
// document seeded with the store's default vocabularies; a structurally
// invalid file fails closed with storage.ErrCorruptDocument.
func (s *Store) Load() (*Document, error) {
	var doc Document
	found, err := storage.ReadJSON(s.dir.Path(DocumentFile), documentSchema, &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return s.newDocument(), nil
	}
	if doc.Dependencies == nil {
		doc.Dependencies = map[int][]int{}
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Init persists a fresh document seeded with the store's defaults if no
// task document exists yet. It reports whether one was created.
func (s *Store) Init() (bool, error) {
	created := false
	err := s.dir.WithLock(func() error {
		if _, err := os.Stat(s.dir.Path(DocumentFile)); err == nil {
			return nil
		} else if !os.IsNotExist(err) {
			return err
		}
		created = true
		return s.save(s.newDocument())
	})
	return created, err
}

// Stage writes the document to a temp file for a later atomic commit.
// The workflow coordinator uses this to join task and version mutations
// into one durable write.
func (s *Store) Stage(doc *Document) (storage.Staged, error) {
	return storage.StageJSON(s.dir.Path(DocumentFile), doc)
}

func (s *Store) save(doc *Document) error {
	return storage.WriteJSON(s.dir.Path(DocumentFile), doc)
}

// mutate runs fn against the current document under the directory lock and
// persists the result. If fn or persistence fails, the in-memory document
// is discarded and the stored document is unchanged.
func (s *Store) mutate(fn func(*Document) error) error {
	return s.dir.WithLock(func() error {
		doc, err := s.Load()
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
		return s.save(doc)
	})
}

func (s *Store) newDocument() *Document {
	return &Document{
		NextID:        1,
		Todos:         []Todo{},
		Categories:    append([]string(nil), s.defaults.Categories...),
		Statuses:      append([]Status(nil), s.defaults.Statuses...),
		PriorityScale: s.defaults.PriorityScale,
		Dependencies:  map[int][]int{},
	}
}
