package todo

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ExportFormat names a todo export encoding.
type ExportFormat string

const (
	ExportJSON     ExportFormat = "json"
	ExportCSV      ExportFormat = "csv"
	ExportMarkdown ExportFormat = "markdown"
)

// Export renders the store's todos in the given format, after applying the
// filter.
func (s *Store) Export(format ExportFormat, filter Filter) (string, error) {
	doc, err := s.Load()
	if err != nil {
		return "", err
	}

	switch format {
	case ExportJSON:
		return exportJSON(doc, filter)
	case ExportCSV:
		return exportCSV(doc, filter)
	case ExportMarkdown:
		return exportMarkdown(doc, filter), nil
	default:
		return "", fmt.Errorf("unsupported export format: %q", format)
	}
}

func exportJSON(doc *Document, filter Filter) (string, error) {
	todos := filterTodos(doc, filter)
	data, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func exportCSV(doc *Document, filter Filter) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"id", "title", "description", "priority", "status", "category", "created_at", "target_date", "completed_at", "notes"}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, t := range filterTodos(doc, filter) {
		target := ""
		if t.TargetDate != nil {
			target = t.TargetDate.String()
		}
		completed := ""
		if t.CompletedAt != nil {
			completed = t.CompletedAt.String()
		}
		record := []string{
			strconv.Itoa(t.ID), t.Title, t.Description,
			strconv.Itoa(t.Priority), string(t.Status), t.Category,
			t.CreatedAt.String(), target, completed, t.Notes,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// exportMarkdown groups todos under headings per configured status.
func exportMarkdown(doc *Document, filter Filter) string {
	var b strings.Builder
	b.WriteString("# Todos\n\n")
	for _, status := range doc.Statuses {
		if filter.Status != nil && status != *filter.Status {
			continue
		}
		section := filter
		section.Status = &status
		todos := filterTodos(doc, section)
		if len(todos) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", statusHeading(status))
		for _, t := range todos {
			fmt.Fprintf(&b, "- **%s**: %s (Priority: %d)\n", FormatID(t.ID), t.Title, t.Priority)
			if t.Description != "" {
				fmt.Fprintf(&b, "  - %s\n", t.Description)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func statusHeading(status Status) string {
	words := strings.Split(strings.ReplaceAll(string(status), "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
