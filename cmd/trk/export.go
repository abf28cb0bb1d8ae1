package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/askern/tracker/internal/markdown"
	"github.com/askern/tracker/todo"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export todos or the changelog",
}

// export todos
var exportTodosCmd = &cobra.Command{
	Use:   "todos",
	Short: "Export todos as json, csv or markdown",
	RunE:  runExportTodos,
}

var (
	exportTodosFormat string
	exportTodosStatus string
	exportTodosOutput string
)

// export changelog
var exportChangelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Export the changelog as markdown or text",
	RunE:  runExportChangelog,
}

var (
	exportChangelogFormat string
	exportChangelogOutput string
	exportChangelogRender bool
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportTodosCmd, exportChangelogCmd)

	exportTodosCmd.Flags().StringVar(&exportTodosFormat, "format", "json", "Output format (json, csv, markdown)")
	exportTodosCmd.Flags().StringVar(&exportTodosStatus, "status", "", "Only export todos with this status")
	exportTodosCmd.Flags().StringVarP(&exportTodosOutput, "output", "o", "", "Write to a file instead of stdout")

	exportChangelogCmd.Flags().StringVar(&exportChangelogFormat, "format", "markdown", "Output format (markdown, text)")
	exportChangelogCmd.Flags().StringVarP(&exportChangelogOutput, "output", "o", "", "Write to a file instead of stdout")
	exportChangelogCmd.Flags().BoolVar(&exportChangelogRender, "render", false, "Render markdown for the terminal")
}

func runExportTodos(cmd *cobra.Command, args []string) error {
	store, err := openTodoStore()
	if err != nil {
		return err
	}

	format := todo.ExportFormat(exportTodosFormat)
	filter := todo.Filter{SortBy: "id"}
	if exportTodosStatus != "" {
		status := todo.Status(exportTodosStatus)
		filter.Status = &status
	}

	out, err := store.Export(format, filter)
	if err != nil {
		return err
	}

	return writeExport(out, exportTodosOutput)
}

func runExportChangelog(cmd *cobra.Command, args []string) error {
	ledger, err := openLedger()
	if err != nil {
		return err
	}

	var out string
	switch exportChangelogFormat {
	case "markdown":
		out, err = ledger.ExportMarkdown()
	case "text":
		out, err = ledger.ExportText()
	default:
		return fmt.Errorf("unknown changelog format %q", exportChangelogFormat)
	}
	if err != nil {
		return err
	}

	if exportChangelogRender && exportChangelogFormat == "markdown" && exportChangelogOutput == "" {
		out = markdown.Render(80, 0, out) + "\n"
	}

	return writeExport(out, exportChangelogOutput)
}

func writeExport(content, path string) error {
	if path == "" {
		fmt.Print(content)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			fmt.Println()
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
