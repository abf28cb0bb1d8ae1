package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	"github.com/askern/tracker/todo"
)

// TodoData is the form rendered into the editor buffer. The vocabulary
// fields only feed the comment hints; membership is enforced by the store.
type TodoData struct {
	// IsUpdate is true when editing an existing todo.
	IsUpdate bool
	// ID is the todo ID (only for updates).
	ID int
	// Title is the todo title.
	Title string
	// Category is the todo category.
	Category string
	// Priority is the todo priority (1-10).
	Priority int
	// Status is the todo status (only for updates).
	Status string
	// Target is the target date as YYYY-MM-DD, empty for none.
	Target string
	// Description is the free-form body below the frontmatter.
	Description string

	// Categories and Statuses are the configured vocabularies.
	Categories []string
	Statuses   []todo.Status
}

// DefaultCreateData returns TodoData for creating a new todo.
func DefaultCreateData(categories []string, statuses []todo.Status) TodoData {
	return TodoData{
		Category:   todo.DefaultCategory(categories),
		Priority:   todo.PriorityDefault,
		Categories: categories,
		Statuses:   statuses,
	}
}

// DataFromTodo returns TodoData pre-filled from an existing todo.
func DataFromTodo(t *todo.Todo, categories []string, statuses []todo.Status) TodoData {
	target := ""
	if t.TargetDate != nil {
		target = t.TargetDate.String()
	}
	return TodoData{
		IsUpdate:    true,
		ID:          t.ID,
		Title:       t.Title,
		Category:    t.Category,
		Priority:    t.Priority,
		Status:      string(t.Status),
		Target:      target,
		Description: t.Description,
		Categories:  categories,
		Statuses:    statuses,
	}
}

var todoTemplate = template.Must(template.New("todo").Funcs(template.FuncMap{
	"join": func(values []string) string {
		return strings.Join(values, ", ")
	},
	"joinStatuses": func(values []todo.Status) string {
		parts := make([]string, 0, len(values))
		for _, v := range values {
			parts = append(parts, string(v))
		}
		return strings.Join(parts, ", ")
	},
}).Parse(`title = {{ printf "%q" .Title }}
category = {{ printf "%q" .Category }} # {{ join .Categories }}
priority = {{ .Priority }} # 1-10, 10 = highest
{{- if .IsUpdate }}
status = {{ printf "%q" .Status }} # {{ joinStatuses .Statuses }}
{{- end }}
target = {{ printf "%q" .Target }} # YYYY-MM-DD, empty for none
---
{{ .Description }}
`))

// RenderTodoTOML renders the editor buffer: TOML frontmatter, a "---"
// separator, then the description body.
func RenderTodoTOML(data TodoData) (string, error) {
	var buf bytes.Buffer
	if err := todoTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTodo is the parsed result of an edited buffer.
type ParsedTodo struct {
	Title       string  `toml:"title"`
	Category    string  `toml:"category"`
	Priority    int     `toml:"priority"`
	Status      *string `toml:"status"`
	Target      string  `toml:"target"`
	Description string  `toml:"-"`
}

// ParseTodoTOML parses edited buffer content. Vocabulary membership is left
// to the store; only shape and the priority range are checked here.
func ParseTodoTOML(content string) (*ParsedTodo, error) {
	frontmatter, body := splitFrontmatter(content)

	var parsed ParsedTodo
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	parsed.Description = strings.TrimSpace(body)
	parsed.Title = strings.TrimSpace(parsed.Title)
	parsed.Category = strings.ToLower(strings.TrimSpace(parsed.Category))
	parsed.Target = strings.TrimSpace(parsed.Target)
	if parsed.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*parsed.Status))
		parsed.Status = &status
	}

	if err := todo.ValidateTitle(parsed.Title); err != nil {
		return nil, err
	}
	if err := todo.ValidatePriority(parsed.Priority); err != nil {
		return nil, err
	}

	return &parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

// EditTodo opens the editor pre-filled with data and returns the parsed
// result.
func EditTodo(data TodoData) (*ParsedTodo, error) {
	content, err := RenderTodoTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := os.CreateTemp("", "trk-todo-*.md")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTodoTOML(string(edited))
}
