// Package main implements the trk CLI tool.
package main

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/askern/tracker/internal/config"
	"github.com/askern/tracker/internal/storage"
	"github.com/askern/tracker/todo"
	"github.com/askern/tracker/version"
	"github.com/askern/tracker/workflow"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "trk",
	Short:         "trk - todo tracking with a versioned changelog",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	rootDir     string
	rootVerbose bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "dir", "", "Storage directory (default .trk, or [storage] dir from tracker.toml)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")
}

// logger returns the CLI diagnostic logger. Debug output is gated behind
// --verbose.
func logger() *log.Logger {
	level := log.WarnLevel
	if rootVerbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{Level: level})
}

// loadConfig reads tracker.toml for the current directory.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Load(cwd)
}

// storageDir resolves the storage directory: --dir beats the config file,
// which beats the default ".trk" under the current directory.
func storageDir(cfg *config.Config) (string, error) {
	if rootDir != "" {
		return rootDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	dir := cfg.Storage.Dir
	if dir == "" {
		dir = ".trk"
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cwd, dir)
	}
	return dir, nil
}

// openDir opens the storage directory with the configured lock timeout,
// creating it if needed.
func openDir() (*storage.Dir, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	path, err := storageDir(cfg)
	if err != nil {
		return nil, nil, err
	}
	timeout, err := cfg.LockTimeout()
	if err != nil {
		return nil, nil, err
	}
	logger().Debug("opening storage", "dir", path, "lock-timeout", timeout)
	dir, err := storage.Open(path, storage.Options{LockTimeout: timeout})
	if err != nil {
		return nil, nil, err
	}
	return dir, cfg, nil
}

func openTodoStore() (*todo.Store, error) {
	dir, cfg, err := openDir()
	if err != nil {
		return nil, err
	}
	return newTodoStore(dir, cfg), nil
}

func newTodoStore(dir *storage.Dir, cfg *config.Config) *todo.Store {
	defaults := todo.Defaults{
		Categories:    cfg.Todo.Categories,
		PriorityScale: cfg.Todo.PriorityScale,
	}
	for _, status := range cfg.Todo.Statuses {
		defaults.Statuses = append(defaults.Statuses, todo.Status(status))
	}
	return todo.NewStore(dir, defaults)
}

func openLedger() (*version.Ledger, error) {
	dir, cfg, err := openDir()
	if err != nil {
		return nil, err
	}
	return version.NewLedger(dir, cfg.Version.Initial)
}

func openCoordinator() (*workflow.Coordinator, error) {
	dir, cfg, err := openDir()
	if err != nil {
		return nil, err
	}
	ledger, err := version.NewLedger(dir, cfg.Version.Initial)
	if err != nil {
		return nil, err
	}
	return workflow.NewCoordinator(newTodoStore(dir, cfg), ledger), nil
}
