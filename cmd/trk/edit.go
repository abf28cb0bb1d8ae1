package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askern/tracker/internal/dates"
	"github.com/askern/tracker/internal/editor"
	"github.com/askern/tracker/todo"
)

var todoEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Create or update a todo in $EDITOR",
	Long: `Open a todo form in $EDITOR. Without an ID a new todo is created;
with an ID the existing todo is loaded for editing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTodoEdit,
}

func init() {
	todoCmd.AddCommand(todoEditCmd)
}

func runTodoEdit(cmd *cobra.Command, args []string) error {
	if !editor.IsInteractive() {
		return fmt.Errorf("todo edit requires a terminal")
	}

	store, err := openTodoStore()
	if err != nil {
		return err
	}
	categories, statuses, err := store.Vocabularies()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		parsed, err := editor.EditTodo(editor.DefaultCreateData(categories, statuses))
		if err != nil {
			return err
		}
		opts := todo.AddOptions{
			Description: parsed.Description,
			Priority:    &parsed.Priority,
			Category:    parsed.Category,
		}
		if parsed.Target != "" {
			target, err := dates.Parse(parsed.Target)
			if err != nil {
				return err
			}
			opts.TargetDate = &target
		}
		created, err := store.Add(parsed.Title, opts)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s: %s\n", todo.FormatID(created.ID), created.Title)
		return nil
	}

	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}
	item, err := store.Get(id)
	if err != nil {
		return err
	}

	parsed, err := editor.EditTodo(editor.DataFromTodo(item, categories, statuses))
	if err != nil {
		return err
	}

	opts := todo.UpdateOptions{
		Title:       &parsed.Title,
		Description: &parsed.Description,
		Priority:    &parsed.Priority,
		Category:    &parsed.Category,
	}
	if parsed.Target == "" {
		opts.ClearTargetDate = true
	} else {
		target, err := dates.Parse(parsed.Target)
		if err != nil {
			return err
		}
		opts.TargetDate = &target
	}

	updated, err := store.Update(id, opts)
	if err != nil {
		return err
	}

	if parsed.Status != nil && todo.Status(*parsed.Status) != item.Status {
		if updated, err = store.UpdateStatus(id, todo.Status(*parsed.Status)); err != nil {
			return err
		}
	}

	fmt.Printf("Updated %s: %s\n", todo.FormatID(updated.ID), updated.Title)
	return nil
}
