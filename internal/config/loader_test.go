package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/finsim/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Currency, convey.ShouldEqual, "USD")
				convey.So(cfg.InflationRates.Normal, convey.ShouldEqual, 0.03)
				convey.So(cfg.AntiCheat.MaxDailyXP, convey.ShouldEqual, 195)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars()
			_ = os.Setenv("FINSIM_LOG_LEVEL", "debug")
			_ = os.Setenv("FINSIM_CURRENCY", "EUR")
			_ = os.Setenv("FINSIM_BATCH_WORKERS", "3")
			_ = os.Setenv("FINSIM_INFLATION_RATES__HARD", "0.08")
			_ = os.Setenv("FINSIM_ANTICHEAT__MAX_DAILY_XP", "250")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Currency, convey.ShouldEqual, "EUR")
				convey.So(cfg.BatchWorkers, convey.ShouldEqual, 3)
				convey.So(cfg.InflationRates.Hard, convey.ShouldEqual, 0.08)
				convey.So(cfg.AntiCheat.MaxDailyXP, convey.ShouldEqual, 250)
			})

			convey.Convey("And untouched nested keys keep their defaults", func() {
				convey.So(cfg.InflationRates.Easy, convey.ShouldEqual, 0.015)
				convey.So(cfg.AntiCheat.MaxTransfer, convey.ShouldEqual, 10_000_000)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			clearConfigEnvVars()
			yamlContent := `
log_format: json
difficulty: hard
inflation_rates:
  hard: 0.07
anticheat:
  max_transfer: 5000000
  level_xp: [400, 1200]
`
			path := filepath.Join(t.TempDir(), "finsim.yaml")
			convey.So(os.WriteFile(path, []byte(yamlContent), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("FINSIM_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.Difficulty, convey.ShouldEqual, "hard")
				convey.So(cfg.InflationRates.Hard, convey.ShouldEqual, 0.07)
				convey.So(cfg.InflationRates.Normal, convey.ShouldEqual, 0.03)
				convey.So(cfg.AntiCheat.MaxTransfer, convey.ShouldEqual, 5_000_000)
				convey.So(cfg.AntiCheat.LevelXP, convey.ShouldResemble, []int{400, 1200})
			})

			convey.Convey("And env vars should take precedence over the file", func() {
				_ = os.Setenv("FINSIM_INFLATION_RATES__HARD", "0.09")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.InflationRates.Hard, convey.ShouldEqual, 0.09)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			clearConfigEnvVars()
			_, err := config.LoadFile(ctx, filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the loaded values are invalid", func() {
			clearConfigEnvVars()
			_ = os.Setenv("FINSIM_LOG_FORMAT", "xml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation should fail", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"FINSIM_CONFIG",
		"FINSIM_LOG_LEVEL",
		"FINSIM_LOG_FORMAT",
		"FINSIM_CURRENCY",
		"FINSIM_BATCH_WORKERS",
		"FINSIM_INFLATION_RATES__HARD",
		"FINSIM_ANTICHEAT__MAX_DAILY_XP",
	} {
		_ = os.Unsetenv(key)
	}
}
