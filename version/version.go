// Package version owns the tracker's semantic version and changelog.
//
// The ledger is a single JSON document: the current "open" version that is
// accumulating changes, and a map from every released version string to its
// date and change list. Version keys are strictly ordered under semantic
// version ordering; bumping finalizes the open version and allocates the
// next one. Entries are never deleted.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	// ErrInvalidBump is returned for a bump kind other than patch, minor
	// or major.
	ErrInvalidBump = errors.New("invalid bump kind")

	// ErrInvalidVersion is returned when a version string is not a
	// major.minor.patch triple.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrVersionNotFound is returned when a version has no ledger entry.
	ErrVersionNotFound = errors.New("version not found")

	// ErrEmptyType is returned when a change has no type tag.
	ErrEmptyType = errors.New("change type cannot be empty")

	// ErrEmptyDescription is returned when a change has no description.
	ErrEmptyDescription = errors.New("change description cannot be empty")
)

// Kind selects which component a bump increments.
type Kind string

const (
	KindPatch Kind = "patch"
	KindMinor Kind = "minor"
	KindMajor Kind = "major"
)

// ParseKind validates a bump kind.
func ParseKind(value string) (Kind, error) {
	switch Kind(value) {
	case KindPatch, KindMinor, KindMajor:
		return Kind(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBump, value)
	}
}

// Parse splits a major.minor.patch version string into its components.
func Parse(version string) (major, minor, patch int, err error) {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}
	numbers := make([]int, 3)
	for i, part := range parts {
		n, convErr := strconv.Atoi(part)
		if convErr != nil || n < 0 || (len(part) > 1 && part[0] == '0') {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidVersion, version)
		}
		numbers[i] = n
	}
	return numbers[0], numbers[1], numbers[2], nil
}

// IsValid reports whether version is a well-formed major.minor.patch triple.
func IsValid(version string) bool {
	_, _, _, err := Parse(version)
	return err == nil && semver.IsValid(canonical(version))
}

// Compare orders two version strings under semantic version ordering.
func Compare(a, b string) int {
	return semver.Compare(canonical(a), canonical(b))
}

// canonical prefixes a version for x/mod/semver, which requires a leading v.
func canonical(version string) string {
	return "v" + version
}

// Next computes the version after a bump: patch increments z; minor
// increments y and resets z; major increments x and resets y and z.
func Next(version string, kind Kind) (string, error) {
	major, minor, patch, err := Parse(version)
	if err != nil {
		return "", err
	}
	switch kind {
	case KindPatch:
		patch++
	case KindMinor:
		minor++
		patch = 0
	case KindMajor:
		major++
		minor = 0
		patch = 0
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBump, kind)
	}
	return fmt.Sprintf("%d.%d.%d", major, minor, patch), nil
}

// KindForChangeType maps a change type to the bump kind used when a caller
// requests an automatic bump: features bump minor, breaking changes bump
// major, everything else bumps patch.
func KindForChangeType(changeType string) Kind {
	switch changeType {
	case "feature":
		return KindMinor
	case "breaking", "major":
		return KindMajor
	default:
		return KindPatch
	}
}
