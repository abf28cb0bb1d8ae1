package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askern/tracker/internal/dates"
	internalstrings "github.com/askern/tracker/internal/strings"
	"github.com/askern/tracker/internal/ui"
	"github.com/askern/tracker/todo"
	"github.com/askern/tracker/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Manage the version ledger",
}

// version show
var versionShowCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "Show the current version, or details for a specific one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVersionShow,
}

// version bump
var versionBumpCmd = &cobra.Command{
	Use:   "bump <patch|minor|major>",
	Short: "Finalize the current version and open the next one",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersionBump,
}

// version list
var versionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all versions, newest first",
	RunE:  runVersionList,
}

var versionListJSON bool

// version log
var versionLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent changes across versions",
	RunE:  runVersionLog,
}

var versionLogDays int

// change add
var changeCmd = &cobra.Command{
	Use:   "change",
	Short: "Manage changelog entries",
}

var changeAddCmd = &cobra.Command{
	Use:   "add <type> <description>",
	Short: "Record a change under the current version",
	Args:  cobra.ExactArgs(2),
	RunE:  runChangeAdd,
}

var changeAddTodoID int

func init() {
	rootCmd.AddCommand(versionCmd, changeCmd)
	versionCmd.AddCommand(versionShowCmd, versionBumpCmd, versionListCmd, versionLogCmd)
	changeCmd.AddCommand(changeAddCmd)

	versionListCmd.Flags().BoolVar(&versionListJSON, "json", false, "Output as JSON")
	versionLogCmd.Flags().IntVar(&versionLogDays, "days", 7, "How many days back to include")
	changeAddCmd.Flags().IntVar(&changeAddTodoID, "todo", 0, "Link the change to a todo ID")
}

func runVersionShow(cmd *cobra.Command, args []string) error {
	ledger, err := openLedger()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		current, err := ledger.Current()
		if err != nil {
			return err
		}
		fmt.Println(current)
		return nil
	}

	entry, err := ledger.Info(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", args[0], entry.Date)
	for _, change := range entry.Changes {
		fmt.Printf("  %s: %s%s\n", change.Type, change.Description, changeTodoRef(change))
	}
	return nil
}

func runVersionBump(cmd *cobra.Command, args []string) error {
	kind, err := version.ParseKind(internalstrings.NormalizeLowerTrimSpace(args[0]))
	if err != nil {
		return err
	}

	ledger, err := openLedger()
	if err != nil {
		return err
	}

	next, err := ledger.Bump(kind)
	if err != nil {
		return err
	}

	fmt.Printf("Version is now %s\n", next)
	return nil
}

func runVersionList(cmd *cobra.Command, args []string) error {
	ledger, err := openLedger()
	if err != nil {
		return err
	}

	doc, err := ledger.Load()
	if err != nil {
		return err
	}
	versions := doc.SortedVersions()

	if versionListJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(versions)
	}

	builder := ui.NewTableBuilder([]string{"VERSION", "DATE", "CHANGES"}, len(versions))
	for _, v := range versions {
		entry := doc.Versions[v]
		label := v
		if v == doc.CurrentVersion {
			label = v + " (current)"
		}
		builder.AddRow([]string{label, entry.Date.String(), strconv.Itoa(len(entry.Changes))})
	}
	fmt.Print(builder.String())
	return nil
}

func runVersionLog(cmd *cobra.Command, args []string) error {
	ledger, err := openLedger()
	if err != nil {
		return err
	}

	since := dates.Today().AddDays(-versionLogDays)
	changes, err := ledger.RecentChanges(since)
	if err != nil {
		return err
	}

	if len(changes) == 0 {
		fmt.Printf("No changes in the last %dd.\n", versionLogDays)
		return nil
	}

	for _, change := range changes {
		fmt.Printf("%s  %s  %s: %s%s\n",
			change.Date, change.Version, change.Type, change.Description, changeTodoRef(change.Change))
	}
	return nil
}

func runChangeAdd(cmd *cobra.Command, args []string) error {
	changeType := internalstrings.NormalizeLowerTrimSpace(args[0])
	description := strings.TrimSpace(args[1])

	ledger, err := openLedger()
	if err != nil {
		return err
	}

	opts := version.ChangeOptions{}
	if cmd.Flags().Changed("todo") {
		// Snapshot the linked todo's priority and category at change time.
		store, err := openTodoStore()
		if err != nil {
			return err
		}
		item, err := store.Get(changeAddTodoID)
		if err != nil {
			return err
		}
		opts.TodoID = &item.ID
		opts.TodoPriority = &item.Priority
		opts.TodoCategory = item.Category
	}

	if _, err := ledger.AddChange(changeType, description, opts); err != nil {
		return err
	}

	current, err := ledger.Current()
	if err != nil {
		return err
	}
	fmt.Printf("Recorded %s change under %s\n", changeType, current)
	return nil
}

func changeTodoRef(change version.Change) string {
	if change.TodoID == nil {
		return ""
	}
	return " (" + todo.FormatID(*change.TodoID) + ")"
}
