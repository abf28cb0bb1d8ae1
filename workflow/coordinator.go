// Package workflow coordinates mutations that span the task document and
// the version ledger.
//
// Completing a todo as part of a release touches both documents: the todo
// is marked complete and a changelog entry is recorded, optionally bumping
// the version. The coordinator performs both mutations in memory under the
// shared directory lock, then stages and commits both documents together,
// so a failure before the renames leaves both stores unchanged.
package workflow

import (
	"fmt"

	"github.com/askern/tracker/internal/dates"
	"github.com/askern/tracker/internal/storage"
	"github.com/askern/tracker/todo"
	"github.com/askern/tracker/version"
)

// Coordinator runs transactions across a todo store and a version ledger
// that share a storage directory.
type Coordinator struct {
	store  *todo.Store
	ledger *version.Ledger
}

// NewCoordinator returns a coordinator over a store and ledger. Both must be
// backed by the same storage directory; the coordinator locks through the
// store's directory.
func NewCoordinator(store *todo.Store, ledger *version.Ledger) *Coordinator {
	return &Coordinator{store: store, ledger: ledger}
}

// ReleaseOptions controls how a completion is recorded in the ledger.
type ReleaseOptions struct {
	// Description overrides the changelog text; empty means the todo's
	// title is used.
	Description string

	// Bump finalizes the open version with the given kind after recording
	// the change. Empty means no bump unless AutoBump is set.
	Bump version.Kind

	// AutoBump derives the bump kind from the change type: features bump
	// minor, breaking changes bump major, everything else bumps patch.
	// Takes precedence over Bump.
	AutoBump bool
}

// Release reports the outcome of a CompleteWithRelease transaction.
type Release struct {
	// Todo is the completed todo.
	Todo *todo.Todo

	// ChangeVersion is the version the changelog entry was recorded under.
	ChangeVersion string

	// CurrentVersion is the open version after the transaction. It equals
	// ChangeVersion when no bump was requested.
	CurrentVersion string
}

// CompleteWithRelease marks a todo complete and records a changelog entry
// linked to it, in one transaction. The change lands under the version open
// at the start of the transaction; a requested bump then finalizes that
// version. Validation failures and persistence failures before the commit
// leave both documents untouched.
func (c *Coordinator) CompleteWithRelease(id int, changeType string, opts ReleaseOptions) (*Release, error) {
	kind, err := bumpKind(changeType, opts)
	if err != nil {
		return nil, err
	}

	var result Release
	err = c.store.Dir().WithLock(func() error {
		todoDoc, err := c.store.Load()
		if err != nil {
			return err
		}
		ledgerDoc, err := c.ledger.Load()
		if err != nil {
			return err
		}

		today := dates.Today()
		completed, err := todoDoc.Complete(id, today)
		if err != nil {
			return err
		}

		description := opts.Description
		if description == "" {
			description = completed.Title
		}
		changeVersion := ledgerDoc.Current()
		change := version.Change{
			Type:         changeType,
			Description:  description,
			TodoID:       &completed.ID,
			TodoPriority: &completed.Priority,
			TodoCategory: completed.Category,
		}
		if err := ledgerDoc.AppendChange(changeVersion, change); err != nil {
			return err
		}

		current := changeVersion
		if kind != "" {
			current, err = ledgerDoc.ApplyBump(kind, today)
			if err != nil {
				return err
			}
		}

		stagedTodos, err := c.store.Stage(todoDoc)
		if err != nil {
			return err
		}
		stagedLedger, err := c.ledger.Stage(ledgerDoc)
		if err != nil {
			stagedTodos.Discard()
			return err
		}
		if err := storage.Commit(stagedTodos, stagedLedger); err != nil {
			return err
		}

		copied := *completed
		result = Release{
			Todo:           &copied,
			ChangeVersion:  changeVersion,
			CurrentVersion: current,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// bumpKind resolves the requested bump, an empty kind meaning no bump.
func bumpKind(changeType string, opts ReleaseOptions) (version.Kind, error) {
	if opts.AutoBump {
		return version.KindForChangeType(changeType), nil
	}
	if opts.Bump == "" {
		return "", nil
	}
	kind, err := version.ParseKind(string(opts.Bump))
	if err != nil {
		return "", fmt.Errorf("release bump: %w", err)
	}
	return kind, nil
}
