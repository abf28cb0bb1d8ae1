package version

import (
	"fmt"
	"os"
	"sort"

	"github.com/askern/tracker/internal/dates"
	"github.com/askern/tracker/internal/storage"
)

// InitialVersion seeds a ledger created on first use when no seed is
// configured.
const InitialVersion = "0.0.0"

// Ledger provides access to the version document in a storage directory.
// Mutating operations hold the directory lock for their full duration;
// reads load the current document without locking.
type Ledger struct {
	dir     *storage.Dir
	initial string
}

// NewLedger returns a ledger over dir. An empty initial version defaults to
// InitialVersion.
func NewLedger(dir *storage.Dir, initial string) (*Ledger, error) {
	if initial == "" {
		initial = InitialVersion
	}
	if !IsValid(initial) {
		return nil, fmt.Errorf("%w: initial version %q", ErrInvalidVersion, initial)
	}
	return &Ledger{dir: dir, initial: initial}, nil
}

// Dir returns the ledger's storage directory.
func (l *Ledger) Dir() *storage.Dir {
	return l.dir
}

// Load reads and validates the version document. A missing file yields a
// fresh ledger opened at the configured seed version; a structurally
// invalid file fails closed with storage.ErrCorruptDocument.
func (l *Ledger) Load() (*Document, error) {
	var doc Document
	found, err := storage.ReadJSON(l.dir.Path(DocumentFile), documentSchema, &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return &Document{
			CurrentVersion: l.initial,
			Versions: map[string]Release{
				l.initial: {Date: dates.Today(), Changes: []Change{}},
			},
		}, nil
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Init persists a fresh document opened at the seed version if no version
// document exists yet. It reports whether one was created.
func (l *Ledger) Init() (bool, error) {
	created := false
	err := l.dir.WithLock(func() error {
		if _, err := os.Stat(l.dir.Path(DocumentFile)); err == nil {
			return nil
		} else if !os.IsNotExist(err) {
			return err
		}
		doc, err := l.Load()
		if err != nil {
			return err
		}
		created = true
		return l.save(doc)
	})
	return created, err
}

// Stage writes the document to a temp file for a later atomic commit.
func (l *Ledger) Stage(doc *Document) (storage.Staged, error) {
	return storage.StageJSON(l.dir.Path(DocumentFile), doc)
}

func (l *Ledger) save(doc *Document) error {
	return storage.WriteJSON(l.dir.Path(DocumentFile), doc)
}

func (l *Ledger) mutate(fn func(*Document) error) error {
	return l.dir.WithLock(func() error {
		doc, err := l.Load()
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
		return l.save(doc)
	})
}

// Current returns the open version string.
func (l *Ledger) Current() (string, error) {
	doc, err := l.Load()
	if err != nil {
		return "", err
	}
	return doc.Current(), nil
}

// ChangeOptions carries the optional todo link for a change.
type ChangeOptions struct {
	// TodoID links the change to the todo that motivated it.
	TodoID *int

	// TodoPriority and TodoCategory snapshot the todo at change time.
	TodoPriority *int
	TodoCategory string
}

// AddChange appends a change to the open version's change list.
func (l *Ledger) AddChange(changeType, description string, opts ChangeOptions) (*Change, error) {
	change := Change{
		Type:         changeType,
		Description:  description,
		TodoID:       opts.TodoID,
		TodoPriority: opts.TodoPriority,
		TodoCategory: opts.TodoCategory,
	}
	err := l.mutate(func(doc *Document) error {
		return doc.AppendChange(doc.CurrentVersion, change)
	})
	if err != nil {
		return nil, err
	}
	return &change, nil
}

// Bump finalizes the open version and allocates the next one, returning the
// new version string.
func (l *Ledger) Bump(kind Kind) (string, error) {
	var next string
	err := l.mutate(func(doc *Document) error {
		var err error
		next, err = doc.ApplyBump(kind, dates.Today())
		return err
	})
	if err != nil {
		return "", err
	}
	return next, nil
}

// Versions returns every version in the ledger, newest first.
func (l *Ledger) Versions() ([]string, error) {
	doc, err := l.Load()
	if err != nil {
		return nil, err
	}
	return doc.SortedVersions(), nil
}

// Info returns the ledger entry for a version.
func (l *Ledger) Info(version string) (*Release, error) {
	doc, err := l.Load()
	if err != nil {
		return nil, err
	}
	entry, ok := doc.Versions[version]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVersionNotFound, version)
	}
	return &entry, nil
}

// RecentChanges returns changes across all entries dated on or after since,
// newest first. Ties on date break toward the higher version.
func (l *Ledger) RecentChanges(since dates.Date) ([]VersionedChange, error) {
	doc, err := l.Load()
	if err != nil {
		return nil, err
	}

	var recent []VersionedChange
	for _, v := range doc.SortedVersions() {
		entry := doc.Versions[v]
		if entry.Date.Before(since) {
			continue
		}
		for _, change := range entry.Changes {
			recent = append(recent, VersionedChange{Version: v, Date: entry.Date, Change: change})
		}
	}
	// Newest date first; the stable sort keeps the newest-version-first
	// order among entries released the same day.
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[j].Date.Before(recent[i].Date)
	})
	return recent, nil
}

// Summary aggregates ledger status for reporting.
type Summary struct {
	CurrentVersion string     `json:"current_version"`
	VersionDate    dates.Date `json:"version_date"`
	OpenChanges    int        `json:"total_changes_current"`
	RecentChanges  int        `json:"recent_changes_7d"`
	TotalVersions  int        `json:"total_versions"`
}

// Summarize returns the ledger summary; recent changes cover the last week.
func (l *Ledger) Summarize() (*Summary, error) {
	doc, err := l.Load()
	if err != nil {
		return nil, err
	}
	recent, err := l.RecentChanges(dates.Today().AddDays(-7))
	if err != nil {
		return nil, err
	}
	open := doc.Versions[doc.CurrentVersion]
	return &Summary{
		CurrentVersion: doc.CurrentVersion,
		VersionDate:    open.Date,
		OpenChanges:    len(open.Changes),
		RecentChanges:  len(recent),
		TotalVersions:  len(doc.Versions),
	}, nil
}
