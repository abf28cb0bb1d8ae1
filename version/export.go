package version

import (
	"fmt"
	"strings"
)

// typeOrder is the changelog section order for known change types; unknown
// types follow in first-seen order.
var typeOrder = []string{"feature", "enhancement", "bug", "refactor", "docs", "test"}

// ExportMarkdown renders the full changelog as markdown, newest version
// first, changes grouped by type.
func (l *Ledger) ExportMarkdown() (string, error) {
	doc, err := l.Load()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("# Changelog\n\n")
	fmt.Fprintf(&b, "Current Version: **%s**\n\n", doc.CurrentVersion)

	for _, v := range doc.SortedVersions() {
		entry := doc.Versions[v]
		fmt.Fprintf(&b, "## [%s] - %s\n\n", v, entry.Date)

		byType := make(map[string][]Change)
		var extraTypes []string
		for _, change := range entry.Changes {
			if _, known := byType[change.Type]; !known && !isKnownType(change.Type) {
				extraTypes = append(extraTypes, change.Type)
			}
			byType[change.Type] = append(byType[change.Type], change)
		}

		for _, changeType := range append(append([]string(nil), typeOrder...), extraTypes...) {
			changes := byType[changeType]
			if len(changes) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s\n", titleCase(changeType))
			for _, change := range changes {
				b.WriteString("- " + change.Description + todoRef(change) + "\n")
			}
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// ExportText renders the changelog as plain text.
func (l *Ledger) ExportText() (string, error) {
	doc, err := l.Load()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Changelog - Current Version: %s\n", doc.CurrentVersion)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, v := range doc.SortedVersions() {
		entry := doc.Versions[v]
		fmt.Fprintf(&b, "%s (%s)\n", v, entry.Date)
		b.WriteString(strings.Repeat("-", 30) + "\n")
		for _, change := range entry.Changes {
			fmt.Fprintf(&b, "  %s: %s%s\n", change.Type, change.Description, todoRef(change))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func todoRef(change Change) string {
	if change.TodoID == nil {
		return ""
	}
	return fmt.Sprintf(" (#%d)", *change.TodoID)
}

func isKnownType(changeType string) bool {
	for _, t := range typeOrder {
		if t == changeType {
			return true
		}
	}
	return false
}

func titleCase(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
