package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	service "github.com/okian/finsim/internal/app"
	"github.com/okian/finsim/internal/scenario"
	"github.com/okian/finsim/pkg/logger"
	"github.com/okian/finsim/pkg/metrics"
)

// projection is the JSON shape of one batch entry.
type projection struct {
	Scenario string          `json:"scenario"`
	Report   *service.Report `json:"report,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func newProjectCmd(c *cli) *cobra.Command {
	var (
		asJSON  bool
		workers int
	)

	cmd := &cobra.Command{
		Use:   "project <scenario.yaml>...",
		Short: "Replay scenario files day by day and report the outcome",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			scenarios := make([]scenario.Scenario, 0, len(args))
			for _, path := range args {
				sc, err := scenario.Load(ctx, path)
				if err != nil {
					return err
				}
				scenarios = append(scenarios, sc)
			}

			if !cmd.Flags().Changed("workers") {
				workers = c.cfg.BatchWorkers
			}
			reg := prometheus.NewRegistry()
			mm := metrics.NewManager(append(c.cfg.MetricsOptions(), metrics.WithPrometheusRegistry(reg))...)
			svc := service.New(
				service.WithLogger(c.log),
				service.WithMetrics(mm),
				service.WithInflationTable(c.cfg.InflationTable()),
				service.WithAntiCheat(c.cfg.AntiCheatOptions()...),
				service.WithDefaultDifficulty(c.cfg.DefaultDifficulty()),
				service.WithWorkerCount(workers),
			)

			outcomes := svc.RunBatch(ctx, scenarios)

			failed := 0
			for _, o := range outcomes {
				if o.Err != nil {
					failed++
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				entries := make([]projection, len(outcomes))
				for i, o := range outcomes {
					entries[i] = projection{Scenario: o.Scenario, Report: o.Report}
					if o.Err != nil {
						entries[i].Error = o.Err.Error()
					}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(entries); err != nil {
					return fmt.Errorf("encode reports: %w", err)
				}
			} else {
				for _, o := range outcomes {
					printOutcome(out, o, c.cfg.Currency)
				}
			}

			if path := c.cfg.MetricsTextfile; path != "" {
				if err := metrics.WriteTextfile(path, reg); err != nil {
					return err
				}
				c.log.Debug(ctx, "metrics exported", logger.String("path", path))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(outcomes))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print reports as JSON")
	cmd.Flags().IntVar(&workers, "workers", 0, "scenarios projected concurrently (defaults to batch_workers)")
	return cmd
}
