package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/askern/tracker/internal/ui"
	"github.com/askern/tracker/todo"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a project summary",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	dir, cfg, err := openDir()
	if err != nil {
		return err
	}
	store := newTodoStore(dir, cfg)

	summary, err := store.Summary()
	if err != nil {
		return err
	}

	ledger, err := openLedger()
	if err != nil {
		return err
	}
	versions, err := ledger.Summarize()
	if err != nil {
		return err
	}

	fmt.Println(ui.StyleHeader("Project status"))
	fmt.Printf("Version:        %s (%s, %d open changes)\n",
		versions.CurrentVersion, versions.VersionDate, versions.OpenChanges)
	fmt.Printf("Todos:          %d total, %d in progress, %d high priority\n",
		summary.Total, summary.InProgress, summary.HighPriority)
	fmt.Printf("Dependencies:   %d edges, %d blocked, %d ready\n",
		summary.Dependencies, summary.Blocked, summary.Unblocked)
	fmt.Printf("Recent changes: %d in the last 7d across %d versions\n",
		versions.RecentChanges, versions.TotalVersions)

	_, statuses, err := store.Vocabularies()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(ui.StyleHeader("By status"))
	for _, status := range statuses {
		fmt.Printf("  %-12s %d\n", status, summary.ByStatus[status])
	}

	fmt.Println()
	fmt.Println(ui.StyleHeader("By priority"))
	for _, bucket := range todo.PriorityBuckets() {
		fmt.Printf("  %-12s %d\n", bucket, summary.ByPriority[bucket])
	}

	fmt.Println()
	fmt.Println(ui.StyleHeader("By category"))
	for _, category := range sortedKeys(summary.ByCategory) {
		fmt.Printf("  %-12s %d\n", category, summary.ByCategory[category])
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
