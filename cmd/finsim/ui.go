package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	service "github.com/okian/finsim/internal/app"
	"github.com/okian/finsim/internal/domain/money"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printOutcome(w io.Writer, o service.Outcome, code string) {
	if o.Err != nil {
		danger.Fprintf(w, "== %s failed: %v\n\n", o.Scenario, o.Err)
		return
	}
	r := o.Report
	amt := func(v int64) string { return money.FormatMinorUnits(v, code) }

	accent.Fprintf(w, "== %s", r.Scenario)
	neutral.Fprintf(w, " (%s, %s .. %s, %d days, run %s)\n", r.Difficulty, r.Start, r.End, r.DaysSimulated, r.RunID)

	for _, m := range r.Months {
		score := success
		if m.BudgetScore < 60 {
			score = warn
		}
		fmt.Fprintf(w, "  %s  score ", m.Month)
		score.Fprintf(w, "%3d", m.BudgetScore)
		fmt.Fprintf(w, "  bills %s  premiums %s  interest %s  net worth %s\n",
			amt(m.BillsPaid), amt(m.PremiumsPaid), amt(m.InterestEarned), amt(m.NetWorth))
	}

	for _, c := range r.Claims {
		fmt.Fprintf(w, "  claim %s %s: ", c.Date, c.Policy)
		if c.Result.Covered {
			success.Fprint(w, "covered")
		} else {
			danger.Fprint(w, "not covered")
		}
		fmt.Fprintf(w, ", insurer pays %s, player pays %s\n", amt(c.Result.InsurancePaid), amt(c.Result.PlayerPays))
	}

	for _, t := range r.RejectedTransfers {
		warn.Fprintf(w, "  transfer %s of %s rejected\n", t.Date, amt(t.Amount))
	}

	for _, p := range r.Policies {
		fmt.Fprintf(w, "  policy %s premium %s ", p.Type, amt(p.MonthlyPremium))
		if p.IsActive {
			success.Fprintln(w, "active")
		} else {
			danger.Fprintf(w, "LAPSED, reinstate for %s\n", amt(p.ReinstatementCost))
		}
	}

	for _, f := range r.Flags {
		danger.Fprintf(w, "  flag %s\n", f)
	}

	fmt.Fprintf(w, "  final checking %s  savings %s  net worth ", amt(r.Checking), amt(r.Savings))
	accent.Fprintln(w, amt(r.NetWorth))
	fmt.Fprintf(w, "  earned %d XP, %d coins; prices x%.4f\n\n", r.TotalXP, r.TotalCoins, r.InflationFactor)
}
