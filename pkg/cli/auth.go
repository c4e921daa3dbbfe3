package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/goalplan/pkg/auth"
	"github.com/harrisonrobin/goalplan/pkg/config"
	"github.com/harrisonrobin/goalplan/pkg/google"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with Google Calendar",
	Long: `Removes any cached OAuth token and runs the browser authorization flow.
The obtained token is cached for later serve/sync/plan invocations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.RemoveToken(); err != nil {
			return err
		}
		if err := auth.Authorize(cmd.Context()); err != nil {
			return err
		}
		log.Printf("Authentication successful! Token saved to %s", auth.TokenFile)
		return nil
	},
}

var setCalendarCmd = &cobra.Command{
	Use:   "set-calendar NAME",
	Short: "Set the default calendar for push and pull sync",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// With a cached credential, resolve a display name to its calendar
		// id; otherwise the value is stored verbatim.
		calendarID := args[0]
		if client, err := google.NewClient(cmd.Context()); err == nil {
			resolved, err := client.ResolveCalendar(cmd.Context(), calendarID)
			if err != nil {
				return err
			}
			calendarID = resolved
		}

		cfg.CalendarID = calendarID
		if err := config.Save(cfg); err != nil {
			return err
		}
		log.Printf("Default calendar set to: %s", calendarID)
		return nil
	},
}
