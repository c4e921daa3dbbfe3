package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/goalplan/pkg/config"
	"github.com/harrisonrobin/goalplan/pkg/google"
	"github.com/harrisonrobin/goalplan/pkg/httpapi"
	"github.com/harrisonrobin/goalplan/pkg/jsonlog"
	"github.com/harrisonrobin/goalplan/pkg/planner"
	gsync "github.com/harrisonrobin/goalplan/pkg/sync"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.ListenAddr = serveAddr
	}

	taskStore, err := openStore(cfg)
	if err != nil {
		return err
	}

	logger := jsonlog.New(os.Stdout)
	opts := httpapi.Options{
		Logger:            logger,
		DefaultCalendarID: cfg.CalendarID,
		SyncWindowDays:    cfg.SyncWindowDays,
	}

	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		opts.Planner = planner.NewClient(apiKey, cfg.Model)
	} else {
		log.Printf("GEMINI_API_KEY not set; chat and plan generation disabled")
	}

	if adapter, err := buildAdapter(cmd.Context(), cfg, taskStore); err != nil {
		log.Printf("calendar sync disabled: %v", err)
	} else {
		opts.Syncer = adapter
	}

	handler := httpapi.NewServer(taskStore, opts)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	return nil
}

// buildAdapter assembles the calendar sync adapter from the cached OAuth
// credential. It fails when the user has not run `goalplan auth`.
func buildAdapter(ctx context.Context, cfg *config.Config, taskStore gsync.LocalStore) (*gsync.Adapter, error) {
	client, err := google.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	idx, err := openEventIndex()
	if err != nil {
		return nil, err
	}
	loc, err := timezone(cfg)
	if err != nil {
		return nil, err
	}
	return gsync.New(client, taskStore, idx, loc), nil
}
