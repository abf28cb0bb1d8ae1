package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/askern/tracker/internal/dates"
	"github.com/askern/tracker/internal/ui"
	"github.com/askern/tracker/todo"
)

// printTodoTable prints todos in a table format.
func printTodoTable(todos []todo.Todo) {
	if len(todos) == 0 {
		fmt.Println("No todos found.")
		return
	}
	fmt.Print(formatTodoTable(todos, dates.Today()))
}

func formatTodoTable(todos []todo.Todo, today dates.Date) string {
	builder := ui.NewTableBuilder([]string{"ID", "PRI", "STATUS", "CATEGORY", "CREATED", "TARGET", "TITLE"}, len(todos))
	for _, t := range todos {
		builder.AddRow([]string{
			todo.FormatID(t.ID),
			ui.StylePriority(strconv.Itoa(t.Priority), todo.PriorityBucket(t.Priority)),
			ui.StyleStatus(string(t.Status)),
			t.Category,
			ui.FormatRelativeDays(t.CreatedAt, today),
			ui.FormatTargetDate(t.TargetDate, today, t.IsComplete()),
			ui.TruncateTableCell(t.Title),
		})
	}
	return builder.String()
}

// printTodoDetail prints detailed information about a todo.
func printTodoDetail(t todo.Todo, chain *todo.Chain) {
	fmt.Printf("ID:        %s\n", todo.FormatID(t.ID))
	fmt.Printf("Title:     %s\n", t.Title)
	fmt.Printf("Status:    %s\n", ui.StyleStatus(string(t.Status)))
	fmt.Printf("Priority:  %s  %s\n",
		ui.StylePriority(strconv.Itoa(t.Priority), todo.PriorityBucket(t.Priority)),
		todo.PriorityBucket(t.Priority))
	fmt.Printf("Category:  %s\n", t.Category)
	fmt.Printf("Created:   %s\n", t.CreatedAt)
	fmt.Printf("Target:    %s\n", ui.FormatTargetDate(t.TargetDate, dates.Today(), t.IsComplete()))
	if t.CompletedAt != nil {
		fmt.Printf("Completed: %s\n", ui.FormatDate(t.CompletedAt))
	}
	if chain != nil && (len(chain.Prerequisites) > 0 || len(chain.Dependents) > 0) {
		if len(chain.Prerequisites) > 0 {
			fmt.Printf("Depends on: %s\n", formatIDList(chain.Prerequisites))
		}
		if len(chain.Dependents) > 0 {
			fmt.Printf("Blocks:     %s\n", formatIDList(chain.Dependents))
		}
	}
	if t.Description != "" {
		fmt.Printf("\nDescription:\n%s\n", ui.ReflowParagraphs(t.Description, 78))
	}
	if t.Notes != "" {
		fmt.Printf("\nNotes:\n%s\n", ui.ReflowParagraphs(t.Notes, 78))
	}
}

func formatIDList(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, todo.FormatID(id))
	}
	return strings.Join(parts, ", ")
}
