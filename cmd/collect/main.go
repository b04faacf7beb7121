// Package main provides the collect-results command.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/results-collector/internal/iracing"
	"github.com/yourusername/results-collector/internal/models"
	"github.com/yourusername/results-collector/internal/scheduler"
	"github.com/yourusername/results-collector/internal/worker"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	logFile    string
	debug      bool
	username   string
	password   string
	years      []int
	quarters   []int
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "config/config.yaml", "Path to configuration file")
	flags.StringVarP(&logFile, "log", "l", "", "Also write logs to this file (rotated)")
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")
	flags.StringVarP(&username, "username", "u", "", "Member site username")
	flags.StringVarP(&password, "password", "p", "", "Member site password")

	for _, cmd := range []*cobra.Command{rootCmd, runCmd} {
		cmd.Flags().IntSliceVarP(&years, "year", "y", nil, "Season year to collect (repeatable)")
		cmd.Flags().IntSliceVarP(&quarters, "quarter", "q", nil, "Season quarter to collect (repeatable)")
	}

	rootCmd.AddCommand(runCmd, seriesCmd, scheduleCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:           "collect-results",
	Short:         "Collect race results into a local store",
	Long:          `Harvests season results archives and per-session results sheets from the member stats site.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCollection,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one collection over the selected seasons",
	RunE:  runCollection,
}

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "List stored series seasons",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		list, err := a.repos.Series.List(ctx)
		if err != nil {
			return err
		}
		for _, s := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "seasonid %d = %s\n", s.SeasonID, s.SeriesName)
		}
		return nil
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run collections on the configured cron schedule until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		seasons, err := selectSeasons(a)
		if err != nil {
			return err
		}

		s := scheduler.NewScheduler(a.logger)
		if err := s.ScheduleCollection(a.cfg.Ingestion.Schedule, func(ctx context.Context) error {
			return a.collect(ctx, seasons)
		}); err != nil {
			return err
		}
		if err := s.Start(); err != nil {
			return err
		}
		a.logger.WithField("next_run", s.GetNextRun().Format(time.RFC3339)).Info("Waiting for next scheduled run")

		<-ctx.Done()
		return s.Stop()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "collect-results %s (%s)\n", Version, GitCommit)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", exitMessage(err))
		os.Exit(1)
	}
}

func runCollection(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	seasons, err := selectSeasons(a)
	if err != nil {
		return err
	}

	return a.collect(ctx, seasons)
}

// collect logs in and runs the pipeline on a background task.
func (a *app) collect(ctx context.Context, seasons []models.Season) error {
	if err := a.client.Login(ctx); err != nil && !errors.Is(err, iracing.ErrAuthenticationFailed) {
		return err
	}

	orchestrator := worker.NewOrchestrator(a.client, a.sync, a.harvester, seasons, a.ingest)
	err := orchestrator.Start(ctx).Join()
	if a.health != nil {
		a.health.RecordRun(time.Now(), err)
	}
	return err
}

// selectSeasons prefers the year/quarter flags over the configured seasons.
func selectSeasons(a *app) ([]models.Season, error) {
	switch {
	case len(years) > 0 && len(quarters) > 0:
		return models.CrossSeasons(years, quarters)
	case len(years) > 0 || len(quarters) > 0:
		return nil, fmt.Errorf("--year and --quarter must be given together")
	default:
		return a.cfg.Seasons()
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// exitMessage turns fatal errors into a short line for the terminal.
func exitMessage(err error) string {
	var panicErr *worker.PanicError
	switch {
	case errors.Is(err, iracing.ErrAuthenticationFailed):
		return "Login failed. Please check your credentials."
	case errors.As(err, &panicErr):
		return fmt.Sprintf("collection crashed: %v", panicErr.Value)
	case errors.Is(err, context.Canceled):
		return "interrupted"
	default:
		return err.Error()
	}
}
