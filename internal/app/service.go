// Package service projects scripted player timelines through the simulation
// core, standing in for the orchestrator that would normally sequence the
// calls against persisted state.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/finsim/internal/domain/anticheat"
	"github.com/okian/finsim/internal/domain/budget"
	"github.com/okian/finsim/internal/domain/calendar"
	"github.com/okian/finsim/internal/domain/inflation"
	"github.com/okian/finsim/internal/domain/insurance"
	"github.com/okian/finsim/internal/domain/interest"
	"github.com/okian/finsim/internal/domain/types"
	"github.com/okian/finsim/internal/scenario"
	"github.com/okian/finsim/pkg/logger"
	"github.com/okian/finsim/pkg/metrics"
)

// Service runs scenarios. It holds only configuration and is safe for
// concurrent use.
type Service struct {
	rates             inflation.Table
	validator         *anticheat.Validator
	defaultDifficulty types.Difficulty
	workerCount       int

	metrics *metrics.Manager
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithInflationTable overrides the per-difficulty inflation rates.
func WithInflationTable(t inflation.Table) Option {
	return func(s *Service) {
		s.rates = t
	}
}

// WithAntiCheat configures the validator used for transfers and net worth.
func WithAntiCheat(opts ...anticheat.Option) Option {
	return func(s *Service) {
		s.validator = anticheat.New(opts...)
	}
}

// WithDefaultDifficulty applies to scenarios that do not name a difficulty.
func WithDefaultDifficulty(d types.Difficulty) Option {
	return func(s *Service) {
		if d.Valid() {
			s.defaultDifficulty = d
		}
	}
}

// WithWorkerCount bounds how many scenarios RunBatch projects at once.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		rates:             inflation.DefaultTable(),
		validator:         anticheat.New(),
		defaultDifficulty: types.DifficultyNormal,
		workerCount:       runtime.NumCPU(),
		metrics:           metrics.Default(),
		logger:            logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// run is the mutable state of one projection. It never escapes Run.
type run struct {
	sc       scenario.Scenario
	rate     float64
	bills    []inflation.Bill
	kinds    map[string]string
	cats     map[string]string
	policies []insurance.Policy
	missed   map[string]bool

	checking, savings int64
	prevNetWorth      int64
	savedThisMonth    int64

	report *Report
}

// Run projects sc day by day from its start date. ctx is checked between days.
func (s *Service) Run(ctx context.Context, sc scenario.Scenario) (*Report, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	difficulty := sc.Level(s.defaultDifficulty)
	r := s.newRun(sc, difficulty)
	log := s.logger.Named("projector")

	log.Info(ctx, "projection started",
		logger.String("run_id", r.report.RunID),
		logger.String("scenario", sc.Name),
		logger.String("difficulty", string(difficulty)),
		logger.Float64("inflation_rate", r.rate))

	day := sc.StartDate()
	for i := 0; i < sc.Days; i++ {
		if err := ctx.Err(); err != nil {
			s.metrics.RecordScenario("cancelled", msSince(started))
			return nil, fmt.Errorf("%w: %s after %d days: %w", ErrCancelled, sc.Name, i, err)
		}

		s.applyTransfers(ctx, r, day)
		s.applyClaims(ctx, r, day)
		if calendar.IsLastDayOfMonth(day) {
			s.closeMonth(ctx, r, day)
		}
		if calendar.IsLastDayOfYear(day) {
			s.renewPolicies(ctx, r)
		}

		s.metrics.RecordDaySimulated()
		r.report.DaysSimulated++
		r.report.End = calendar.Format(day)
		day = calendar.AdvanceDay(day)
	}

	s.finish(r)
	s.metrics.RecordScenario("ok", msSince(started))
	log.Info(ctx, "projection finished",
		logger.String("run_id", r.report.RunID),
		logger.Int64("net_worth", r.report.NetWorth),
		logger.Int("flags", len(r.report.Flags)))
	return r.report, nil
}

func (s *Service) newRun(sc scenario.Scenario, difficulty types.Difficulty) *run {
	r := &run{
		sc:       sc,
		rate:     s.rates.Rate(difficulty),
		kinds:    make(map[string]string, len(sc.Bills)),
		cats:     make(map[string]string, len(sc.Bills)),
		missed:   sc.MissedMonths(),
		checking: sc.Balances.Checking,
		savings:  sc.Balances.Savings,
	}
	for _, b := range sc.Bills {
		r.bills = append(r.bills, inflation.Bill{Name: b.Name, Amount: b.Amount})
		r.cats[b.Name] = b.CategoryName()
		r.kinds[b.Name] = b.Kind
	}
	for _, p := range sc.Policies {
		r.policies = append(r.policies, insurance.NewPolicy(
			types.ParseInsuranceType(p.Type), p.MonthlyPremium, p.Deductible, p.CoverageRate))
	}
	r.prevNetWorth = r.checking + r.savings

	start := sc.StartDate()
	r.report = &Report{
		RunID:             uuid.NewString(),
		Scenario:          sc.Name,
		Difficulty:        difficulty,
		InflationRate:     r.rate,
		Start:             calendar.Format(start),
		End:               calendar.Format(start),
		Months:            []MonthSnapshot{},
		Claims:            []ClaimRecord{},
		RejectedTransfers: []TransferRecord{},
		Flags:             []string{},
	}
	return r
}

func (s *Service) applyTransfers(ctx context.Context, r *run, day calendar.GameDate) {
	for _, t := range r.sc.Transfers {
		if calendar.Compare(calendar.Parse(t.Date), day) != 0 {
			continue
		}
		res := r.validate(s, "transfer", s.validator.TransferAmount(t.Amount, r.checking))
		if !res.Valid {
			r.report.RejectedTransfers = append(r.report.RejectedTransfers, TransferRecord{
				Date: t.Date, Amount: t.Amount, Flags: res.Flags,
			})
			s.logger.Warn(ctx, "transfer rejected",
				logger.String("date", t.Date),
				logger.Int64("amount", t.Amount),
				logger.Strings("flags", res.Flags))
			continue
		}
		r.checking -= t.Amount
		r.savings += t.Amount
		r.savedThisMonth += t.Amount
	}
}

func (s *Service) applyClaims(ctx context.Context, r *run, day calendar.GameDate) {
	for _, c := range r.sc.Claims {
		if calendar.Compare(calendar.Parse(c.Date), day) != 0 {
			continue
		}
		kind := types.ParseInsuranceType(c.Policy)
		idx := r.policyIndex(kind)
		if idx < 0 {
			continue
		}

		res, updated := insurance.FileClaim(r.policies[idx], c.Cost)
		r.policies[idx] = updated
		r.checking -= res.PlayerPays

		r.report.Claims = append(r.report.Claims, ClaimRecord{
			Date: c.Date, Policy: kind, Cost: c.Cost, Result: res,
		})
		s.metrics.RecordClaim(res.Covered, res.PlayerPays)
		s.logger.Info(ctx, "claim settled",
			logger.String("date", c.Date),
			logger.String("policy", string(kind)),
			logger.Bool("covered", res.Covered),
			logger.Int64("player_pays", res.PlayerPays))
	}
}

func (s *Service) closeMonth(ctx context.Context, r *run, day calendar.GameDate) {
	month := scenario.MonthKey(day)
	snap := MonthSnapshot{Month: month, Income: r.sc.MonthlyIncome}
	r.checking += r.sc.MonthlyIncome

	spent := make(map[string]int64)
	var needs, wants int64
	for _, b := range r.bills {
		r.checking -= b.Amount
		snap.BillsPaid += b.Amount
		spent[r.cats[b.Name]] += b.Amount
		if r.kinds[b.Name] == scenario.KindWant {
			wants += b.Amount
		} else {
			needs += b.Amount
		}
	}

	for i, p := range r.policies {
		if !p.IsActive {
			continue
		}
		paid := !r.missed[month] && r.checking >= p.MonthlyPremium
		if paid {
			r.checking -= p.MonthlyPremium
			snap.PremiumsPaid += p.MonthlyPremium
		}
		next := insurance.ProcessMonthlyPremium(p, paid)
		s.metrics.RecordPremium(paid)
		if insurance.IsLapsed(next) {
			s.metrics.RecordPolicyLapse()
			s.logger.Warn(ctx, "policy lapsed",
				logger.String("month", month),
				logger.String("policy", string(next.Type)),
				logger.Int64("reinstatement_cost", insurance.ReinstatementCost(next)))
		}
		r.policies[i] = next
	}
	needs += snap.PremiumsPaid

	snap.InterestEarned = interest.MonthlyInterest(r.savings, r.sc.SavingsAPY)
	r.savings += snap.InterestEarned

	snap.BudgetScore = budget.Score(r.categories(spent))
	snap.Reward = budget.RewardsFor(snap.BudgetScore)
	r.report.TotalXP += snap.Reward.XP
	r.report.TotalCoins += snap.Reward.Coins
	s.metrics.RecordBudgetScore(snap.BudgetScore)

	snap.Saved = r.savedThisMonth
	snap.Follows503020 = budget.Follows503020Rule(r.sc.MonthlyIncome, needs, wants, r.savedThisMonth)

	netWorth := r.checking + r.savings
	// Scripted income is part of the baseline, so only unexplained growth counts.
	r.validate(s, "net_worth", s.validator.NetWorthChange(r.prevNetWorth+r.sc.MonthlyIncome, netWorth))
	r.prevNetWorth = netWorth

	snap.Checking, snap.Savings, snap.NetWorth = r.checking, r.savings, netWorth
	r.report.Months = append(r.report.Months, snap)

	r.bills = inflation.InflateRecurringBills(r.bills, r.rate)
	r.savedThisMonth = 0
	s.metrics.RecordMonthClosed()

	s.logger.Debug(ctx, "month closed",
		logger.String("month", month),
		logger.Int("budget_score", snap.BudgetScore),
		logger.Int64("net_worth", netWorth))
}

func (s *Service) renewPolicies(ctx context.Context, r *run) {
	for i, p := range r.policies {
		if !p.IsActive {
			continue
		}
		r.policies[i] = insurance.Renew(p)
		s.metrics.RecordPolicyRenewal()
		s.logger.Info(ctx, "policy renewed",
			logger.String("policy", string(p.Type)),
			logger.Int64("premium", r.policies[i].MonthlyPremium))
	}
}

func (s *Service) finish(r *run) {
	r.report.Checking = r.checking
	r.report.Savings = r.savings
	r.report.NetWorth = r.checking + r.savings
	r.report.InflationFactor = inflation.CumulativeFactor(r.rate, len(r.report.Months))
	r.report.Policies = make([]PolicySnapshot, 0, len(r.policies))
	for _, p := range r.policies {
		r.report.Policies = append(r.report.Policies, snapshotPolicy(p))
	}
}

// validate records res against the report and metrics and returns it.
func (r *run) validate(s *Service, check string, res anticheat.Result) anticheat.Result {
	s.metrics.RecordValidation(check, res.Valid)
	for _, f := range res.Flags {
		if class, ok := anticheat.ClassOf(f); ok {
			s.metrics.RecordAnomaly(string(class))
		}
	}
	r.report.Flags = anticheat.Combine(anticheat.Result{Flags: r.report.Flags}, res).Flags
	return res
}

func (r *run) policyIndex(t types.InsuranceType) int {
	for i, p := range r.policies {
		if p.Type == t {
			return i
		}
	}
	return -1
}

// categories lists the planned budget lines in scenario order followed by
// unbudgeted spending sorted by name.
func (r *run) categories(spent map[string]int64) []budget.Category {
	out := make([]budget.Category, 0, len(r.sc.Budget)+len(spent))
	planned := make(map[string]bool, len(r.sc.Budget))
	for _, l := range r.sc.Budget {
		planned[l.Category] = true
		out = append(out, budget.Category{Name: l.Category, Budgeted: l.Budgeted, Spent: spent[l.Category]})
	}
	var extra []string
	for name := range spent {
		if !planned[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		out = append(out, budget.Category{Name: name, Spent: spent[name]})
	}
	return out
}

// Outcome pairs a batch entry with its report or error.
type Outcome struct {
	Scenario string
	Report   *Report
	Err      error
}

// RunBatch projects scenarios concurrently on at most workerCount
// goroutines. Outcomes are returned in input order.
func (s *Service) RunBatch(ctx context.Context, scenarios []scenario.Scenario) []Outcome {
	out := make([]Outcome, len(scenarios))
	jobs := make(chan int)

	workers := min(s.workerCount, len(scenarios))
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				rep, err := s.Run(ctx, scenarios[i])
				out[i] = Outcome{Scenario: scenarios[i].Name, Report: rep, Err: err}
				if err != nil {
					s.logger.Error(ctx, "scenario failed",
						logger.String("scenario", scenarios[i].Name), logger.Error(err))
				}
			}
		}()
	}

	for i := range scenarios {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
