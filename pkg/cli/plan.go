package cli

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/goalplan/pkg/config"
	"github.com/harrisonrobin/goalplan/pkg/planner"
)

var (
	planIntegrate bool
	planPush      bool
)

var planCmd = &cobra.Command{
	Use:   "plan [goal text]",
	Short: "Generate a day-by-day learning plan from a goal description",
	Long: `plan sends a free-form goal description (e.g. "learn Go in 2 weeks,
1 hour per day, evenings") to the plan oracle and prints the generated
schedule. With --integrate the tasks are added to the local plan, and with
--push they are sent to the configured calendar as well.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&planIntegrate, "integrate", false, "add the generated tasks to the local plan")
	planCmd.Flags().BoolVar(&planPush, "push", false, "push the generated tasks to the calendar (implies --integrate)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	goal := strings.Join(args, " ")
	req := planner.ParseGoalRequest(goal, time.Now())

	client := planner.NewClient(apiKey, cfg.Model)
	plan, err := client.GeneratePlan(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Println(plan.HumanReadable)

	if !planIntegrate && !planPush {
		return nil
	}

	drafts, err := planner.DraftsFromTasks(plan.Tasks)
	if err != nil {
		return err
	}

	taskStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	created, err := taskStore.CreateMany(drafts)
	if err != nil {
		return err
	}
	log.Printf("added %d tasks to the local plan", len(created))

	if !planPush {
		return nil
	}

	adapter, err := buildAdapter(cmd.Context(), cfg, taskStore)
	if err != nil {
		return err
	}
	res := adapter.Push(cmd.Context(), created, cfg.CalendarID)
	log.Printf("created %d calendar events (%d failed)", res.Created, res.Failed)
	if res.Created == 0 && res.Failed > 0 {
		return res.FirstError()
	}
	return nil
}
