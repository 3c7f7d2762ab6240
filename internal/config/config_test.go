package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/finsim/internal/config"
	"github.com/okian/finsim/internal/domain/anticheat"
	"github.com/okian/finsim/internal/domain/types"
	"github.com/okian/finsim/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.Currency, convey.ShouldEqual, "USD")
			convey.So(cfg.DefaultDifficulty(), convey.ShouldEqual, types.DifficultyNormal)
			convey.So(cfg.BatchWorkers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.InflationRates.Easy, convey.ShouldEqual, 0.015)
			convey.So(cfg.InflationRates.Normal, convey.ShouldEqual, 0.03)
			convey.So(cfg.InflationRates.Hard, convey.ShouldEqual, 0.05)
			convey.So(cfg.AntiCheat.MaxDailyXP, convey.ShouldEqual, 195)
			convey.So(cfg.AntiCheat.MaxTransfer, convey.ShouldEqual, 10_000_000)
			convey.So(cfg.Metrics.Enabled, convey.ShouldBeTrue)
			convey.So(cfg.Metrics.Namespace, convey.ShouldEqual, "finsim")
			convey.So(cfg.Metrics.Subsystem, convey.ShouldEqual, "sim")
			convey.So(cfg.Metrics.DurationBucketsMS, convey.ShouldBeEmpty)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the derived inflation table matches", func() {
			convey.So(cfg.InflationTable().Rate(types.DifficultyHard), convey.ShouldEqual, 0.05)
		})

		convey.Convey("Then the derived anti-cheat options reproduce the defaults", func() {
			v := anticheat.New(cfg.AntiCheatOptions()...)
			convey.So(v.Limits(), convey.ShouldResemble, anticheat.DefaultLimits())
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given an invalid config", t, func() {
		convey.Convey("When the log format is unknown", func() {
			cfg := config.New()
			cfg.LogFormat = "xml"
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When an inflation rate is negative", func() {
			cfg := config.New()
			cfg.InflationRates.Hard = -0.01
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When an anti-cheat limit is negative", func() {
			cfg := config.New()
			cfg.AntiCheat.MaxTransfer = -1
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the level table has a zero entry", func() {
			cfg := config.New()
			cfg.AntiCheat.LevelXP = []int{500, 0}
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When duration buckets are not strictly increasing", func() {
			cfg := config.New()
			cfg.Metrics.DurationBucketsMS = []float64{10, 100, 100}
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)

			cfg.Metrics.DurationBucketsMS = []float64{0, 10}
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func TestConfig_MetricsOptions(t *testing.T) {
	convey.Convey("Given a config that renames the metrics", t, func() {
		cfg := config.New()
		cfg.Metrics.Namespace = "budgetsim"
		cfg.Metrics.Subsystem = "core"
		cfg.Metrics.ConstLabels = map[string]string{"env": "test"}
		cfg.Metrics.DurationBucketsMS = []float64{5, 50, 500}
		convey.So(cfg.Validate(), convey.ShouldBeNil)

		reg := prometheus.NewRegistry()
		m := metrics.NewManager(append(cfg.MetricsOptions(), metrics.WithPrometheusRegistry(reg))...)
		m.RecordDaySimulated()
		m.RecordScenario("ok", 20)

		convey.Convey("Then the series carry the configured names and buckets", func() {
			families, err := reg.Gather()
			convey.So(err, convey.ShouldBeNil)
			names := map[string]bool{}
			var bounds []float64
			for _, f := range families {
				names[f.GetName()] = true
				if f.GetName() == "budgetsim_core_scenario_duration_milliseconds" {
					series := f.GetMetric()[0]
					convey.So(series.GetLabel()[0].GetValue(), convey.ShouldEqual, "test")
					for _, b := range series.GetHistogram().GetBucket() {
						bounds = append(bounds, b.GetUpperBound())
					}
				}
			}
			convey.So(names["budgetsim_core_days_simulated_total"], convey.ShouldBeTrue)
			convey.So(bounds, convey.ShouldResemble, []float64{5, 50, 500})
		})
	})

	convey.Convey("Given metrics disabled in the config", t, func() {
		cfg := config.New()
		cfg.Metrics.Enabled = false

		reg := prometheus.NewRegistry()
		m := metrics.NewManager(append(cfg.MetricsOptions(), metrics.WithPrometheusRegistry(reg))...)
		m.RecordDaySimulated()

		convey.Convey("Then nothing is recorded", func() {
			families, err := reg.Gather()
			convey.So(err, convey.ShouldBeNil)
			for _, f := range families {
				if f.GetName() == "finsim_sim_days_simulated_total" {
					convey.So(f.GetMetric()[0].GetCounter().GetValue(), convey.ShouldEqual, 0.0)
				}
			}
		})
	})
}
