// Command gridiron runs deterministic season simulations or calibration
// sweeps over synthetic leagues, driven by configuration from defaults,
// an optional YAML file (GRIDIRON_CONFIG), and GRIDIRON_* environment
// variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gridsim/gridiron/internal/calibration"
	"github.com/gridsim/gridiron/internal/config"
	"github.com/gridsim/gridiron/internal/league"
	"github.com/gridsim/gridiron/internal/season"
	"github.com/gridsim/gridiron/pkg/logger"
	"github.com/gridsim/gridiron/pkg/metrics"
)

const metricsShutdownTimeout = 2 * time.Second

func main() {
	var (
		mode    = flag.String("mode", "season", "Run mode: season or calibration")
		seed    = flag.Int64("seed", -1, "Base seed override (-1 keeps the configured seed)")
		workers = flag.Int("workers", 0, "Worker count override (0 keeps the configured count)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Get().Named("gridiron")

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(ctx, "load config", logger.Error(err))
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "unknown log level, keeping info", logger.String("level", cfg.LogLevel))
	}
	if *seed >= 0 {
		cfg.Seed = *seed
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	metricsServer := startMetrics(ctx, cfg.MetricsAddr, log)

	switch *mode {
	case "season":
		err = runSeason(ctx, cfg, log)
	case "calibration":
		err = runCalibration(ctx, cfg, log)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}

	stopMetrics(metricsServer, log)

	if err != nil {
		log.Fatal(ctx, "run failed", logger.Error(err))
	}
}

func runSeason(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	teams := league.BuildLeague(cfg.TeamCount, cfg.RosterJitterSeed)
	log.Info(ctx, "starting season",
		logger.Int("teams", cfg.TeamCount),
		logger.Int("workers", cfg.Workers),
		logger.Any("seed", cfg.Seed))

	result, err := season.Simulate(ctx, teams, season.Options{
		Seed:    cfg.Seed,
		Config:  cfg.Game,
		Tuning:  cfg.Tuning,
		Workers: cfg.Workers,
	})
	if err != nil {
		return err
	}

	fmt.Println("FINAL STANDINGS")
	for rank, standing := range result.Standings {
		fmt.Printf("%2d. %-10s %d-%d\n", rank+1, standing.TeamID, standing.Wins, standing.Losses)
	}
	return nil
}

func runCalibration(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	log.Info(ctx, "starting calibration sweep",
		logger.Int("seasons", cfg.Seasons),
		logger.Int("teams", cfg.TeamCount),
		logger.Int("workers", cfg.Workers))

	result, err := calibration.Run(ctx, calibration.Options{
		Seasons:   cfg.Seasons,
		TeamCount: cfg.TeamCount,
		BaseSeed:  cfg.Seed,
		Workers:   cfg.Workers,
		Config:    cfg.Game,
		Tuning:    cfg.Tuning,
	})
	if err != nil {
		return err
	}

	fmt.Println("LEAGUE AVERAGES")
	for metric, band := range calibration.Targets {
		fmt.Printf("  %-18s %8.3f  (target %.3f-%.3f)\n",
			metric, result.LeagueAverages[metric], band.Lower, band.Upper)
	}
	fmt.Println("SUGGESTED TUNING")
	for param, suggestion := range result.Suggestions {
		fmt.Printf("  %-18s %.4f -> %.4f\n", param, suggestion.Current, suggestion.Suggested)
	}
	return nil
}

// startMetrics exposes the custom registry at /metrics while a run is in
// flight. An empty address disables the listener.
func startMetrics(ctx context.Context, addr string, log logger.Logger) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(ctx, "metrics listener stopped", logger.Error(err))
		}
	}()
	log.Info(ctx, "metrics listening", logger.String("addr", addr))
	return server
}

func stopMetrics(server *http.Server, log logger.Logger) {
	if server == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn(shutdownCtx, "metrics shutdown", logger.Error(err))
	}
}
