package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/askern/tracker/todo"
)

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage todo dependencies",
}

// dep add
var depAddCmd = &cobra.Command{
	Use:   "add <id> <depends-on-id>",
	Short: "Record that a todo depends on another",
	Args:  cobra.ExactArgs(2),
	RunE:  runDepAdd,
}

// dep remove
var depRemoveCmd = &cobra.Command{
	Use:   "remove <id> <depends-on-id>",
	Short: "Remove a dependency between todos",
	Args:  cobra.ExactArgs(2),
	RunE:  runDepRemove,
}

// dep tree
var depTreeCmd = &cobra.Command{
	Use:   "tree <id>",
	Short: "Show the prerequisite tree for a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runDepTree,
}

// blocked
var blockedCmd = &cobra.Command{
	Use:   "blocked",
	Short: "List todos waiting on incomplete prerequisites",
	RunE:  runBlocked,
}

var blockedJSON bool

// ready
var readyCmd = &cobra.Command{
	Use:   "ready",
	Short: "List todos ready to work on",
	RunE:  runReady,
}

var readyJSON bool

func init() {
	rootCmd.AddCommand(depCmd, blockedCmd, readyCmd)
	depCmd.AddCommand(depAddCmd, depRemoveCmd, depTreeCmd)

	blockedCmd.Flags().BoolVar(&blockedJSON, "json", false, "Output as JSON")
	readyCmd.Flags().BoolVar(&readyJSON, "json", false, "Output as JSON")
}

func runDepAdd(cmd *cobra.Command, args []string) error {
	store, err := openTodoStore()
	if err != nil {
		return err
	}

	ids, err := parseTodoIDs(args)
	if err != nil {
		return err
	}

	if err := store.AddDependency(ids[0], ids[1]); err != nil {
		return err
	}

	fmt.Printf("%s now depends on %s\n", todo.FormatID(ids[0]), todo.FormatID(ids[1]))
	return nil
}

func runDepRemove(cmd *cobra.Command, args []string) error {
	store, err := openTodoStore()
	if err != nil {
		return err
	}

	ids, err := parseTodoIDs(args)
	if err != nil {
		return err
	}

	if err := store.RemoveDependency(ids[0], ids[1]); err != nil {
		return err
	}

	fmt.Printf("%s no longer depends on %s\n", todo.FormatID(ids[0]), todo.FormatID(ids[1]))
	return nil
}

func runDepTree(cmd *cobra.Command, args []string) error {
	store, err := openTodoStore()
	if err != nil {
		return err
	}

	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}

	doc, err := store.Load()
	if err != nil {
		return err
	}
	if doc.Find(id) == nil {
		return fmt.Errorf("%w: %d", todo.ErrNotFound, id)
	}

	root := doc.Find(id)
	fmt.Printf("%s %s %s\n", statusIcon(root.Status), todo.FormatID(id), root.Title)

	graph := doc.Graph()
	seen := map[int]bool{id: true}
	prereqs := graph.Prerequisites(id)
	for i, prereq := range prereqs {
		printDepTree(doc, graph, prereq, "", i == len(prereqs)-1, seen)
	}
	return nil
}

// printDepTree prints a todo's prerequisites recursively with ASCII art.
// The graph is acyclic, but the seen set keeps diamonds from printing a
// shared subtree twice.
func printDepTree(doc *todo.Document, graph *todo.Graph, id int, prefix string, isLast bool, seen map[int]bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}

	t := doc.Find(id)
	label := fmt.Sprintf("%s %s", todo.FormatID(id), t.Title)
	if seen[id] {
		fmt.Printf("%s%s%s %s (shown above)\n", prefix, connector, statusIcon(t.Status), label)
		return
	}
	seen[id] = true

	fmt.Printf("%s%s%s %s\n", prefix, connector, statusIcon(t.Status), label)

	childPrefix := prefix + "│   "
	if isLast {
		childPrefix = prefix + "    "
	}

	prereqs := graph.Prerequisites(id)
	for i, prereq := range prereqs {
		printDepTree(doc, graph, prereq, childPrefix, i == len(prereqs)-1, seen)
	}
}

func statusIcon(s todo.Status) string {
	switch s {
	case todo.StatusTodo:
		return "[ ]"
	case todo.StatusInProgress:
		return "[~]"
	case todo.StatusTesting:
		return "[t]"
	case todo.StatusComplete:
		return "[x]"
	default:
		return "[?]"
	}
}

func runBlocked(cmd *cobra.Command, args []string) error {
	store, err := openTodoStore()
	if err != nil {
		return err
	}

	todos, err := store.Blocked()
	if err != nil {
		return err
	}

	if blockedJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(todos)
	}

	if len(todos) == 0 {
		fmt.Println("No blocked todos.")
		return nil
	}
	printTodoTable(todos)
	return nil
}

func runReady(cmd *cobra.Command, args []string) error {
	store, err := openTodoStore()
	if err != nil {
		return err
	}

	todos, err := store.Unblocked()
	if err != nil {
		return err
	}

	if readyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(todos)
	}

	if len(todos) == 0 {
		fmt.Println("No ready todos.")
		return nil
	}
	printTodoTable(todos)
	return nil
}
