package cli

import (
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/goalplan/pkg/config"
	gsync "github.com/harrisonrobin/goalplan/pkg/sync"
)

var syncDays int

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull upcoming calendar events into the local task list",
	RunE:  runSync,
}

func init() {
	syncCmd.Flags().IntVar(&syncDays, "days", 0, "pull window in days (overrides config)")
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	taskStore, err := openStore(cfg)
	if err != nil {
		return err
	}

	adapter, err := buildAdapter(cmd.Context(), cfg, taskStore)
	if err != nil {
		return err
	}

	days := cfg.SyncWindowDays
	if syncDays > 0 {
		days = syncDays
	}
	from, to := gsync.DefaultWindow(time.Now(), days)

	added, err := adapter.Pull(cmd.Context(), cfg.CalendarID, from, to)
	if err != nil {
		return err
	}
	log.Printf("pulled %d new tasks from calendar %s", added, cfg.CalendarID)
	return nil
}
