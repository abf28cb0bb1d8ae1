package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/askern/tracker/internal/config"
	"github.com/askern/tracker/version"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the storage directory and initial documents",
	RunE:  runInit,
}

var initConfig bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initConfig, "config", false, "Also write a tracker.toml template in the current directory")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, cfg, err := openDir()
	if err != nil {
		return err
	}

	store := newTodoStore(dir, cfg)
	createdTodos, err := store.Init()
	if err != nil {
		return err
	}

	ledger, err := version.NewLedger(dir, cfg.Version.Initial)
	if err != nil {
		return err
	}
	createdLedger, err := ledger.Init()
	if err != nil {
		return err
	}

	if createdTodos || createdLedger {
		fmt.Printf("Initialized tracker in %s\n", dir.Root())
	} else {
		fmt.Printf("Tracker already initialized in %s\n", dir.Root())
	}

	if initConfig {
		return writeConfigTemplate()
	}
	return nil
}

// writeConfigTemplate drops a starter tracker.toml next to the storage
// directory. An existing file is never overwritten.
func writeConfigTemplate() error {
	path := config.ProjectFile
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("%s already exists, leaving it alone\n", path)
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("write config template: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

const configTemplate = `# trk project configuration. Values here override ~/.config/trk/trk.toml.

[todo]
# categories = ["bug", "feature", "enhancement", "docs", "refactor", "test"]
# statuses = ["todo", "in_progress", "testing", "complete"]
# priority-scale = "1-10"

[version]
# initial = "0.1.0"

[storage]
# dir = ".trk"
# lock-timeout = "5s"
`
