package analysis

import (
	"time"

	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/dafibh/drivelog/drivelog-backend/internal/util"
	"github.com/shopspring/decimal"
)

// AnalyzeDay returns the analysis of a single date, or nil when there is no
// record for it. A day with no record is not a day with zero profit.
//
// Rent and mileage overage are period costs and are left out unless
// policy.DailyFixedCosts is set, which adds one day of prorated rent.
func AnalyzeDay(date time.Time, records []*domain.DailyRecord, cfg *domain.CarConfig, policy Policy) *domain.PerformanceAnalysis {
	policy = policy.withDefaults()
	cfg = activeConfig(cfg)
	day := util.DateOnly(date)

	var record *domain.DailyRecord
	for _, r := range records {
		if r != nil && util.SameDay(r.Date, day) {
			record = r
			break
		}
	}
	if record == nil {
		return nil
	}

	t := collect(day, day, records)
	c := costs{computedFuel: decimal.Zero}
	for _, r := range t.records {
		c.computedFuel = c.computedFuel.Add(recordFuelCost(r, cfg))
	}
	if policy.DailyFixedCosts && cfg != nil {
		c.rent = ProratedWeeklyRent(cfg.WeeklyRent, ContractOverlapDays(day, day, cfg))
	}

	return build(domain.Period{Kind: domain.PeriodDay, Start: day, End: day}, t, c, policy.FuelMerge)
}

// activeConfig drops configs that are not active, since only the active
// vehicle governs costs
func activeConfig(cfg *domain.CarConfig) *domain.CarConfig {
	if cfg == nil || !cfg.IsActive {
		return nil
	}
	return cfg
}
