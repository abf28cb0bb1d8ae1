package version

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/askern/tracker/internal/dates"
	"github.com/askern/tracker/internal/storage"
)

// DocumentFile is the name of the version document within the storage dir.
const DocumentFile = "changelog.json"

//go:embed schema.json
var schemaSource string

var documentSchema = storage.MustCompileSchema(DocumentFile, schemaSource)

// Change is a single changelog entry, optionally linked to the todo that
// motivated it. The todo priority/category fields are a snapshot taken at
// the time of the change; they are never synchronized with later todo edits,
// and TodoID may name a todo that has since been deleted.
type Change struct {
	// Type is a free-form tag such as feature, bug or enhancement.
	Type string `json:"type"`

	// Description says what changed.
	Description string `json:"description"`

	// TodoID links the change to a todo, when one motivated it.
	TodoID *int `json:"todo_id"`

	// TodoPriority snapshots the todo's priority at change time.
	TodoPriority *int `json:"todo_priority,omitempty"`

	// TodoCategory snapshots the todo's category at change time.
	TodoCategory string `json:"todo_category,omitempty"`
}

// Release is a version's ledger entry.
type Release struct {
	Date    dates.Date `json:"date"`
	Changes []Change   `json:"changes"`
}

// VersionedChange is a change annotated with the version and date of the
// release it belongs to.
type VersionedChange struct {
	Version string     `json:"version"`
	Date    dates.Date `json:"date"`
	Change
}

// Document is the persisted version ledger: the open version currently
// accumulating changes and the append-only map of version entries.
type Document struct {
	CurrentVersion string             `json:"current_version"`
	Versions       map[string]Release `json:"versions"`
}

// Current returns the open version string.
func (d *Document) Current() string {
	return d.CurrentVersion
}

// SortedVersions returns every version key, newest first.
func (d *Document) SortedVersions() []string {
	versions := make([]string, 0, len(d.Versions))
	for v := range d.Versions {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool {
		return Compare(versions[i], versions[j]) > 0
	})
	return versions
}

// AppendChange validates a change and appends it to the given version's
// entry, creating the entry if the version is the open one.
func (d *Document) AppendChange(version string, change Change) error {
	if change.Type == "" {
		return ErrEmptyType
	}
	if change.Description == "" {
		return ErrEmptyDescription
	}

	entry, ok := d.Versions[version]
	if !ok {
		if version != d.CurrentVersion {
			return fmt.Errorf("%w: %s", ErrVersionNotFound, version)
		}
		entry = Release{Date: dates.Today()}
	}
	entry.Changes = append(entry.Changes, change)
	d.Versions[version] = entry
	return nil
}

// ApplyBump finalizes the open version by stamping its release date, then
// opens an empty entry under the next version and returns its string.
func (d *Document) ApplyBump(kind Kind, today dates.Date) (string, error) {
	next, err := Next(d.CurrentVersion, kind)
	if err != nil {
		return "", err
	}

	open := d.Versions[d.CurrentVersion]
	open.Date = today
	d.Versions[d.CurrentVersion] = open

	d.Versions[next] = Release{Date: today, Changes: []Change{}}
	d.CurrentVersion = next
	return next, nil
}

// validate checks the invariants the schema cannot express: the current
// version must have an entry and must be the maximum key under semantic
// version ordering.
func (d *Document) validate() error {
	if !IsValid(d.CurrentVersion) {
		return corrupt(fmt.Sprintf("current version %q is malformed", d.CurrentVersion))
	}
	if _, ok := d.Versions[d.CurrentVersion]; !ok {
		return corrupt(fmt.Sprintf("current version %s has no entry", d.CurrentVersion))
	}
	for v := range d.Versions {
		if !IsValid(v) {
			return corrupt(fmt.Sprintf("version key %q is malformed", v))
		}
		if Compare(v, d.CurrentVersion) > 0 {
			return corrupt(fmt.Sprintf("version %s is above the current version %s", v, d.CurrentVersion))
		}
	}
	return nil
}

func corrupt(detail string) error {
	return fmt.Errorf("%w: %s: %s", storage.ErrCorruptDocument, DocumentFile, detail)
}
