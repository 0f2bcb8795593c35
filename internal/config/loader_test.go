package config_test

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/gridsim/gridiron/internal/config"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"GRIDIRON_CONFIG",
		"GRIDIRON_LOG_LEVEL",
		"GRIDIRON_METRICS_ADDR",
		"GRIDIRON_SEED",
		"GRIDIRON_WORKERS",
		"GRIDIRON_TEAM_COUNT",
		"GRIDIRON_SEASONS",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "gridiron-*.yaml")
	if err != nil {
		t.Fatalf("create temp config: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close temp config: %v", err)
	}
	return f.Name()
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Workers, convey.ShouldEqual, runtime.NumCPU())
				convey.So(cfg.TeamCount, convey.ShouldEqual, 8)
				convey.So(cfg.Seasons, convey.ShouldEqual, 5)
				convey.So(cfg.Game.QuarterLength, convey.ShouldEqual, 900.0)
				convey.So(cfg.Tuning.CompletionMod, convey.ShouldEqual, 1.0)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("GRIDIRON_LOG_LEVEL", "debug")
			_ = os.Setenv("GRIDIRON_SEED", "42")
			_ = os.Setenv("GRIDIRON_WORKERS", "3")
			_ = os.Setenv("GRIDIRON_TEAM_COUNT", "6")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Seed, convey.ShouldEqual, 42)
				convey.So(cfg.Workers, convey.ShouldEqual, 3)
				convey.So(cfg.TeamCount, convey.ShouldEqual, 6)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
log_level: warn
seed: 7
workers: 2
team_count: 4
seasons: 3
game:
  quarter_length: 600
  quarters: 2
  max_plays: 90
  kickoff_yardline: 30
tuning:
  completion_mod: 1.05
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("GRIDIRON_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
				convey.So(cfg.Seed, convey.ShouldEqual, 7)
				convey.So(cfg.TeamCount, convey.ShouldEqual, 4)
				convey.So(cfg.Seasons, convey.ShouldEqual, 3)
				convey.So(cfg.Game.QuarterLength, convey.ShouldEqual, 600.0)
				convey.So(cfg.Game.Quarters, convey.ShouldEqual, 2)
				convey.So(cfg.Tuning.CompletionMod, convey.ShouldEqual, 1.05)
			})
		})

		convey.Convey("When env vars override the YAML file", func() {
			tmpFile := createTempConfigFile(t, "team_count: 4\n")
			_ = os.Setenv("GRIDIRON_CONFIG", tmpFile)
			_ = os.Setenv("GRIDIRON_TEAM_COUNT", "10")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env takes precedence", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TeamCount, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When the config is invalid", func() {
			_ = os.Setenv("GRIDIRON_TEAM_COUNT", "1")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it fails with ErrInvalidConfig", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the config file is missing", func() {
			_ = os.Setenv("GRIDIRON_CONFIG", "/nonexistent/gridiron.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it fails with ErrLoadConfig", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}
