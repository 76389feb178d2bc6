package analysis

import (
	"time"

	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/dafibh/drivelog/drivelog-backend/internal/util"
	"github.com/shopspring/decimal"
)

// AnalyzePeriod dispatches on the period kind. Day analyses may be nil, week
// and month analyses never are. Unknown kinds return nil.
func AnalyzePeriod(anchor time.Time, kind domain.PeriodKind, records []*domain.DailyRecord, cfg *domain.CarConfig, policy Policy) *domain.PerformanceAnalysis {
	switch kind {
	case domain.PeriodDay:
		return AnalyzeDay(anchor, records, cfg, policy)
	case domain.PeriodWeek:
		return AnalyzeWeek(anchor, records, cfg, policy)
	case domain.PeriodMonth:
		return AnalyzeMonth(anchor, records, cfg, policy)
	}
	return nil
}

// AnalyzeWeek analyzes the Monday to Sunday week containing the anchor
func AnalyzeWeek(anchor time.Time, records []*domain.DailyRecord, cfg *domain.CarConfig, policy Policy) *domain.PerformanceAnalysis {
	policy = policy.withDefaults()
	start, end := util.WeekBounds(anchor)
	period := domain.Period{Kind: domain.PeriodWeek, Start: start, End: end}
	weekly := func(v decimal.Decimal) decimal.Decimal { return v }
	return analyzeRange(period, records, cfg, policy, policy.WeeklyRent, weekly, weekly)
}

// AnalyzeMonth analyzes the calendar month containing the anchor
func AnalyzeMonth(anchor time.Time, records []*domain.DailyRecord, cfg *domain.CarConfig, policy Policy) *domain.PerformanceAnalysis {
	policy = policy.withDefaults()
	start, end := util.MonthBounds(anchor)
	period := domain.Period{Kind: domain.PeriodMonth, Start: start, End: end}
	days := period.Days()
	limit := func(v decimal.Decimal) decimal.Decimal { return policy.MonthlyKmLimit(v, days) }
	goal := func(v decimal.Decimal) decimal.Decimal { return policy.MonthlyGoal(v, days) }
	return analyzeRange(period, records, cfg, policy, policy.MonthlyRent, limit, goal)
}

// analyzeRange aggregates a week or month. limitScale and goalScale convert
// the weekly km limit and earnings goal to the period.
func analyzeRange(period domain.Period, records []*domain.DailyRecord, cfg *domain.CarConfig, policy Policy, rent RentAllocator, limitScale, goalScale func(decimal.Decimal) decimal.Decimal) *domain.PerformanceAnalysis {
	cfg = activeConfig(cfg)
	t := collect(period.Start, period.End, records)

	c := costs{computedFuel: policy.PeriodFuel(t.records, cfg)}
	var limitKm decimal.Decimal
	if cfg != nil {
		limitKm = limitScale(cfg.WeeklyKmLimit)
	}

	// A period without records carries no fixed costs
	if cfg != nil && len(t.records) > 0 {
		overlap := ContractOverlapDays(period.Start, period.End, cfg)
		c.rent = rent(cfg.WeeklyRent, overlap)

		inContract := cfg.ContractStart == nil || overlap > 0
		if inContract && limitKm.IsPositive() && t.km.GreaterThan(limitKm) {
			c.excessKm = t.km.Sub(limitKm)
			c.excessFee = c.excessKm.Mul(cfg.ExcessKmFee)
			if !c.excessFee.IsPositive() {
				c.excessFee = decimal.Zero
			}
		}
	}

	a := build(period, t, c, policy.FuelMerge)
	a.Days = daySeries(period, records, cfg, policy)

	if cfg != nil && limitKm.IsPositive() {
		a.Mileage = &domain.MileageControl{
			LimitKm:     limitKm,
			RemainingKm: limitKm.Sub(a.TotalKm),
			Percent:     percentOf(a.TotalKm, limitKm),
		}
	}
	if cfg != nil && cfg.WeeklyEarningsGoal.IsPositive() {
		goal := goalScale(cfg.WeeklyEarningsGoal)
		remaining := goal.Sub(a.GrossEarnings)
		a.Goal = &domain.GoalProgress{
			Goal:      goal,
			Achieved:  !remaining.IsPositive(),
			Remaining: remaining,
			Percent:   percentOf(a.GrossEarnings, goal),
		}
	}
	return a
}

// daySeries lists every calendar day of the period with its earnings and
// expenses, zero-filled for days without a record
func daySeries(period domain.Period, records []*domain.DailyRecord, cfg *domain.CarConfig, policy Policy) []domain.DaySummary {
	series := make([]domain.DaySummary, 0, period.Days())
	for day := period.Start; !day.After(period.End); day = day.AddDate(0, 0, 1) {
		summary := domain.DaySummary{
			Date:     day,
			Earnings: make(map[domain.Platform]decimal.Decimal),
		}
		for _, p := range (&domain.DailyRecord{}).Platforms() {
			summary.Earnings[p.Platform] = decimal.Zero
		}

		if a := AnalyzeDay(day, records, cfg, policy); a != nil {
			for _, p := range a.Platforms {
				summary.Earnings[p.Platform] = p.Earnings
			}
			summary.Extras = a.ExtraEarnings
			summary.Expenses = a.TotalExpenses
			summary.Total = a.GrossEarnings
		}
		series = append(series, summary)
	}
	return series
}
