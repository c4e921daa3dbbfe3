// Package cli wires the goalplan commands: the HTTP API server plus the
// one-shot auth, sync and plan operations.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/goalplan/pkg/config"
	"github.com/harrisonrobin/goalplan/pkg/index"
	"github.com/harrisonrobin/goalplan/pkg/storage"
	"github.com/harrisonrobin/goalplan/pkg/store"
)

var rootCmd = &cobra.Command{
	Use:   "goalplan",
	Short: "Goal planning assistant with calendar sync",
	Long: `goalplan keeps a local day-by-day task plan, generates learning plans
through a generative AI service, and syncs tasks with Google Calendar.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(setCalendarCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(planCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// openStore builds the task store on the configured persistence backend.
func openStore(cfg *config.Config) (*store.TaskStore, error) {
	path, err := cfg.DataPath()
	if err != nil {
		return nil, err
	}

	var backend storage.Store
	switch cfg.Storage {
	case "sqlite":
		backend, err = storage.NewSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
	case "", "jsonfile":
		backend = storage.NewJSONFile(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
	return store.New(backend)
}

// openEventIndex loads the pushed-event index from the config directory.
func openEventIndex() (*index.EventIndex, error) {
	dir, err := config.GetConfigDir()
	if err != nil {
		return nil, err
	}
	return index.NewEventIndex(filepath.Join(dir, "events.json"))
}

// timezone resolves the configured IANA zone, defaulting to the process-local
// one.
func timezone(cfg *config.Config) (*time.Location, error) {
	if cfg.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return loc, nil
}
