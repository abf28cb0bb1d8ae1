package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/askern/tracker/internal/dates"
	"github.com/askern/tracker/internal/listflags"
	internalstrings "github.com/askern/tracker/internal/strings"
	"github.com/askern/tracker/todo"
	"github.com/askern/tracker/version"
	"github.com/askern/tracker/workflow"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage todos",
}

// todo add
var todoAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoAdd,
}

var (
	todoAddDescription string
	todoAddPriority    int
	todoAddCategory    string
	todoAddTarget      string
	todoAddNotes       string
	todoAddDependsOn   []int
)

// todo list
var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	RunE:  runTodoList,
}

var (
	todoListAll         bool
	todoListStatus      string
	todoListCategory    string
	todoListMinPriority int
	todoListMaxPriority int
	todoListSort        string
	todoListJSON        bool
)

// todo show
var todoShowCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about todos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTodoShow,
}

var todoShowJSON bool

// todo update
var todoUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoUpdate,
}

var (
	todoUpdateTitle       string
	todoUpdateDescription string
	todoUpdateNotes       string
	todoUpdateTarget      string
	todoUpdatePriority    int
	todoUpdateCategory    string
)

// todo status
var todoStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Change a todo's status",
	Args:  cobra.ExactArgs(2),
	RunE:  runTodoStatus,
}

// todo complete
var todoCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a todo complete, optionally recording a changelog entry",
	Long: `Mark a todo complete.

With --change-type, the completion and a changelog entry are written in one
transaction. --bump finalizes the current version afterward; --auto-bump
derives the bump from the change type (feature = minor, breaking = major,
otherwise patch).`,
	Args: cobra.ExactArgs(1),
	RunE: runTodoComplete,
}

var (
	todoCompleteChangeType  string
	todoCompleteDescription string
	todoCompleteBump        version.Kind
	todoCompleteAutoBump    bool
)

// todo delete
var todoDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more todos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTodoDelete,
}

var todoDeleteForce bool

func init() {
	rootCmd.AddCommand(todoCmd)
	todoCmd.AddCommand(todoAddCmd, todoListCmd, todoShowCmd, todoUpdateCmd,
		todoStatusCmd, todoCompleteCmd, todoDeleteCmd)

	// todo add flags
	todoAddCmd.Flags().StringVarP(&todoAddDescription, "description", "d", "", "Description")
	todoAddCmd.Flags().IntVarP(&todoAddPriority, "priority", "p", todo.PriorityDefault, "Priority (1-10, 10=highest)")
	todoAddCmd.Flags().StringVarP(&todoAddCategory, "category", "c", "", "Category (default feature)")
	todoAddCmd.Flags().StringVar(&todoAddTarget, "target", "", "Target date (YYYY-MM-DD)")
	todoAddCmd.Flags().StringVar(&todoAddNotes, "notes", "", "Notes")
	todoAddCmd.Flags().IntSliceVar(&todoAddDependsOn, "depends-on", nil, "Prerequisite todo IDs")

	// todo list flags
	listflags.AddAllFlag(todoListCmd, &todoListAll)
	todoListCmd.Flags().StringVar(&todoListStatus, "status", "", "Filter by status")
	todoListCmd.Flags().StringVar(&todoListCategory, "category", "", "Filter by category")
	todoListCmd.Flags().IntVar(&todoListMinPriority, "min-priority", 0, "Minimum priority")
	todoListCmd.Flags().IntVar(&todoListMaxPriority, "max-priority", 0, "Maximum priority")
	todoListCmd.Flags().StringVar(&todoListSort, "sort", "priority", "Sort order (priority, id, created)")
	todoListCmd.Flags().BoolVar(&todoListJSON, "json", false, "Output as JSON")

	// todo show flags
	todoShowCmd.Flags().BoolVar(&todoShowJSON, "json", false, "Output as JSON")

	// todo update flags
	todoUpdateCmd.Flags().StringVar(&todoUpdateTitle, "title", "", "New title")
	todoUpdateCmd.Flags().StringVar(&todoUpdateDescription, "description", "", "New description")
	todoUpdateCmd.Flags().StringVar(&todoUpdateNotes, "notes", "", "New notes")
	todoUpdateCmd.Flags().StringVar(&todoUpdateTarget, "target", "", "New target date (YYYY-MM-DD, empty clears)")
	todoUpdateCmd.Flags().IntVar(&todoUpdatePriority, "priority", 0, "New priority (1-10)")
	todoUpdateCmd.Flags().StringVar(&todoUpdateCategory, "category", "", "New category")

	// todo complete flags
	todoCompleteCmd.Flags().StringVar(&todoCompleteChangeType, "change-type", "", "Record a changelog entry of this type")
	todoCompleteCmd.Flags().StringVar(&todoCompleteDescription, "description", "", "Changelog text (default: todo title)")
	todoCompleteCmd.Flags().Var(newKindValue(&todoCompleteBump), "bump", "Bump the version afterward (patch, minor, major)")
	todoCompleteCmd.Flags().BoolVar(&todoCompleteAutoBump, "auto-bump", false, "Derive the bump from the change type")

	// todo delete flags
	todoDeleteCmd.Flags().BoolVarP(&todoDeleteForce, "force", "f", false, "Skip the confirmation prompt")
}

func parseTodoID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid todo id %q", arg)
	}
	return id, nil
}

func parseTodoIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseTodoID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func runTodoAdd(cmd *cobra.Command, args []string) error {
	store, err := openTodoStore()
	if err != nil {
		return err
	}

	opts := todo.AddOptions{
		Description: todoAddDescription,
		Category:    internalstrings.NormalizeLowerTrimSpace(todoAddCategory),
		Notes:       todoAddNotes,
		DependsOn:   todoAddDependsOn,
	}
	if cmd.Flags().Changed("priority") {
		opts.Priority = &todoAddPriority
	}
	if todoAddTarget != "" {
		target, err := dates.Parse(todoAddTarget)
		if err != nil {
			return err
		}
		opts.TargetDate = &target
	}

	created, err := store.Add(internalstrings.NormalizeWhitespace(args[0]), opts)
	if err != nil {
		return err
	}

	fmt.Printf("Added %s: %s\n", todo.FormatID(created.ID), created.Title)
	return nil
}

func runTodoList(cmd *cobra.Command, args []string) error {
	store, err := openTodoStore()
	if err != nil {
		return err
	}

	filter := todo.Filter{SortBy: todoListSort, ExcludeComplete: !todoListAll}
	if todoListStatus != "" {
		status := todo.Status(internalstrings.NormalizeLowerTrimSpace(todoListStatus))
		filter.Status = &status
	}
	if todoListCategory != "" {
		category := internalstrings.NormalizeLowerTrimSpace(todoListCategory)
		filter.Category = &category
	}
	if cmd.Flags().Changed("min-priority") {
		filter.MinPriority = &todoListMinPriority
	}
	if cmd.Flags().Changed("max-priority") {
		filter.MaxPriority = &todoListMaxPriority
	}

	todos, err := store.List(filter)
	if err != nil {
		return err
	}

	if todoListJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(todos)
	}

	printTodoTable(todos)
	return nil
}

func runTodoShow(cmd *cobra.Command, args []string) error {
	store, err := openTodoStore()
	if err != nil {
		return err
	}

	ids, err := parseTodoIDs(args)
	if err != nil {
		return err
	}

	todos := make([]todo.Todo, 0, len(ids))
	for _, id := range ids {
		item, err := store.Get(id)
		if err != nil {
			return err
		}
		todos = append(todos, *item)
	}

	if todoShowJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(todos)
	}

	for i, item := range todos {
		if i > 0 {
			fmt.Println("---")
		}
		chain, err := store.DependencyChain(item.ID)
		if err != nil {
			return err
		}
		printTodoDetail(item, chain)
	}
	return nil
}

func runTodoUpdate(cmd *cobra.Command, args []string) error {
	store, err := openTodoStore()
	if err != nil {
		return err
	}

	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}

	opts := todo.UpdateOptions{}
	changed := false
	if cmd.Flags().Changed("title") {
		title := internalstrings.NormalizeWhitespace(todoUpdateTitle)
		opts.Title = &title
		changed = true
	}
	if cmd.Flags().Changed("description") {
		opts.Description = &todoUpdateDescription
		changed = true
	}
	if cmd.Flags().Changed("notes") {
		opts.Notes = &todoUpdateNotes
		changed = true
	}
	if cmd.Flags().Changed("target") {
		if todoUpdateTarget == "" {
			opts.ClearTargetDate = true
		} else {
			target, err := dates.Parse(todoUpdateTarget)
			if err != nil {
				return err
			}
			opts.TargetDate = &target
		}
		changed = true
	}
	if cmd.Flags().Changed("priority") {
		opts.Priority = &todoUpdatePriority
		changed = true
	}
	if cmd.Flags().Changed("category") {
		category := internalstrings.NormalizeLowerTrimSpace(todoUpdateCategory)
		opts.Category = &category
		changed = true
	}
	if !changed {
		return fmt.Errorf("at least one update flag is required")
	}

	updated, err := store.Update(id, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Updated %s: %s\n", todo.FormatID(updated.ID), updated.Title)
	return nil
}

func runTodoStatus(cmd *cobra.Command, args []string) error {
	store, err := openTodoStore()
	if err != nil {
		return err
	}

	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}
	status := todo.Status(internalstrings.NormalizeLowerTrimSpace(args[1]))

	updated, err := store.UpdateStatus(id, status)
	if err != nil {
		return err
	}

	fmt.Printf("%s is now %s\n", todo.FormatID(updated.ID), updated.Status)
	return nil
}

func runTodoComplete(cmd *cobra.Command, args []string) error {
	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}

	if todoCompleteChangeType == "" {
		if todoCompleteBump != "" || todoCompleteAutoBump || todoCompleteDescription != "" {
			return fmt.Errorf("--change-type is required when recording a changelog entry")
		}
		store, err := openTodoStore()
		if err != nil {
			return err
		}
		completed, err := store.Complete(id)
		if err != nil {
			return err
		}
		fmt.Printf("Completed %s: %s\n", todo.FormatID(completed.ID), completed.Title)
		return nil
	}

	coordinator, err := openCoordinator()
	if err != nil {
		return err
	}

	opts := workflow.ReleaseOptions{
		Description: todoCompleteDescription,
		AutoBump:    todoCompleteAutoBump,
	}
	opts.Bump = todoCompleteBump

	changeType := internalstrings.NormalizeLowerTrimSpace(todoCompleteChangeType)
	result, err := coordinator.CompleteWithRelease(id, changeType, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Completed %s: %s\n", todo.FormatID(result.Todo.ID), result.Todo.Title)
	fmt.Printf("Recorded %s change under %s\n", changeType, result.ChangeVersion)
	if result.CurrentVersion != result.ChangeVersion {
		fmt.Printf("Version is now %s\n", result.CurrentVersion)
	}
	return nil
}

func runTodoDelete(cmd *cobra.Command, args []string) error {
	store, err := openTodoStore()
	if err != nil {
		return err
	}

	ids, err := parseTodoIDs(args)
	if err != nil {
		return err
	}

	for _, id := range ids {
		item, err := store.Get(id)
		if err != nil {
			return err
		}
		if !todoDeleteForce {
			ok, err := confirm(fmt.Sprintf("Delete %s: %s?", todo.FormatID(id), item.Title))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Printf("Skipped %s\n", todo.FormatID(id))
				continue
			}
		}
		if err := store.Delete(id); err != nil {
			return err
		}
		fmt.Printf("Deleted %s: %s\n", todo.FormatID(id), item.Title)
	}
	return nil
}
