package main

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/okian/finsim/internal/domain/inflation"
	"github.com/okian/finsim/internal/domain/insurance"
	"github.com/okian/finsim/internal/domain/money"
	"github.com/okian/finsim/internal/domain/types"
)

var errNegativeInput = errors.New("amounts and counts must not be negative")

func newInflateCmd(c *cli) *cobra.Command {
	var (
		amount     int64
		months     int
		difficulty string
		rate       float64
	)

	cmd := &cobra.Command{
		Use:   "inflate",
		Short: "Project a cost forward by compounding monthly inflation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if amount < 0 || months < 0 {
				return errNegativeInput
			}
			if !cmd.Flags().Changed("rate") {
				d := c.cfg.DefaultDifficulty()
				if difficulty != "" {
					d = types.ParseDifficulty(difficulty)
				}
				rate = c.cfg.InflationTable().Rate(d)
			}

			inflated := inflation.ApplyCumulative(amount, rate, months)
			factor := inflation.CumulativeFactor(rate, months)

			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s after %d months at %.2f%%/yr (x%.6f)\n",
				money.FormatMinorUnits(amount, c.cfg.Currency),
				accent.Sprint(money.FormatMinorUnits(inflated, c.cfg.Currency)),
				months, rate*100, factor)
			return nil
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "base cost in minor units")
	cmd.Flags().IntVar(&months, "months", 12, "months to compound")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "difficulty whose rate to use (easy, normal, hard)")
	cmd.Flags().Float64Var(&rate, "rate", 0, "annual rate overriding the difficulty table")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

// claimOutput is the JSON printed by the claim command.
type claimOutput struct {
	Policy            insurance.Policy      `json:"policy"`
	Result            insurance.ClaimResult `json:"result"`
	ReinstatementCost int64                 `json:"reinstatement_cost"`
	RenewalPremium    int64                 `json:"renewal_premium"`
}

func newClaimCmd(_ *cli) *cobra.Command {
	var (
		kind       string
		premium    int64
		deductible int64
		coverage   float64
		cost       int64
		unpaid     int
	)

	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Settle a claim against a policy after a number of missed premiums",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if premium < 0 || deductible < 0 || cost < 0 || unpaid < 0 {
				return errNegativeInput
			}
			if coverage < 0 || coverage > 1 {
				return fmt.Errorf("coverage %.2f must be within [0,1]", coverage)
			}

			p := insurance.NewPolicy(types.ParseInsuranceType(kind), premium, deductible, coverage)
			for i := 0; i < unpaid; i++ {
				p = insurance.ProcessMonthlyPremium(p, false)
			}
			res, p := insurance.FileClaim(p, cost)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(claimOutput{
				Policy:            p,
				Result:            res,
				ReinstatementCost: insurance.ReinstatementCost(p),
				RenewalPremium:    insurance.RenewalPremium(p),
			})
		},
	}

	cmd.Flags().StringVar(&kind, "type", string(types.InsuranceHealth), "policy type")
	cmd.Flags().Int64Var(&premium, "premium", 0, "monthly premium in minor units")
	cmd.Flags().Int64Var(&deductible, "deductible", 0, "deductible in minor units")
	cmd.Flags().Float64Var(&coverage, "coverage", 0.8, "share of the post-deductible cost the insurer pays")
	cmd.Flags().Int64Var(&cost, "cost", 0, "total claim cost in minor units")
	cmd.Flags().IntVar(&unpaid, "unpaid", 0, "consecutive premiums missed before the claim")
	_ = cmd.MarkFlagRequired("cost")
	return cmd
}

func newRatesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Show the configured inflation rate per difficulty",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := c.cfg.InflationTable()
			def := c.cfg.DefaultDifficulty()
			out := cmd.OutOrStdout()
			for _, d := range []types.Difficulty{types.DifficultyEasy, types.DifficultyNormal, types.DifficultyHard} {
				rate := table.Rate(d)
				marker := " "
				if d == def {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-7s %6.2f%%/yr  %.4f%%/mo\n",
					marker, d, rate*100, inflation.AnnualToMonthly(rate)*100)
			}
			return nil
		},
	}
}
