package main

import (
	"strings"
	"testing"

	"github.com/askern/tracker/internal/dates"
	"github.com/askern/tracker/todo"
)

func TestFormatTodoTable(t *testing.T) {
	today := dates.Today()
	overdue := today.AddDays(-1)
	todos := []todo.Todo{
		{ID: 1, Title: "fix login bug", Priority: 9, Status: todo.StatusInProgress,
			Category: "bug", CreatedAt: today.AddDays(-3), TargetDate: &overdue},
		{ID: 2, Title: "write docs", Priority: 3, Status: todo.StatusTodo,
			Category: "docs", CreatedAt: today},
	}

	out := formatTodoTable(todos, today)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}

	for _, want := range []string{"ID", "PRI", "STATUS", "CATEGORY", "CREATED", "TARGET", "TITLE"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("header missing %q: %q", want, lines[0])
		}
	}
	for _, want := range []string{"#1", "in_progress", "3d ago", "(overdue)"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("first row missing %q: %q", want, lines[1])
		}
	}
	for _, want := range []string{"#2", "today", "-"} {
		if !strings.Contains(lines[2], want) {
			t.Errorf("second row missing %q: %q", want, lines[2])
		}
	}
}

func TestStatusIcon(t *testing.T) {
	cases := map[todo.Status]string{
		todo.StatusTodo:       "[ ]",
		todo.StatusInProgress: "[~]",
		todo.StatusTesting:    "[t]",
		todo.StatusComplete:   "[x]",
		"parked":              "[?]",
	}
	for status, want := range cases {
		if got := statusIcon(status); got != want {
			t.Errorf("statusIcon(%q): got %q, want %q", status, got, want)
		}
	}
}

func TestFormatIDList(t *testing.T) {
	if got := formatIDList([]int{3, 1, 7}); got != "#3, #1, #7" {
		t.Errorf("got %q", got)
	}
	if got := formatIDList(nil); got != "" {
		t.Errorf("got %q for empty list", got)
	}
}

func TestParseTodoID(t *testing.T) {
	if id, err := parseTodoID("12"); err != nil || id != 12 {
		t.Errorf("got %d, %v", id, err)
	}
	for _, bad := range []string{"", "x", "0", "-3"} {
		if _, err := parseTodoID(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
