package analysis

import (
	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// FuelMerge combines manually logged fuel expenses with the computed fuel cost
type FuelMerge func(manual, computed decimal.Decimal) decimal.Decimal

// FuelOverridesManual uses the computed cost whenever there is one and keeps
// the manual entries otherwise
func FuelOverridesManual(manual, computed decimal.Decimal) decimal.Decimal {
	if computed.IsPositive() {
		return computed
	}
	return manual
}

// FuelAddsToManual charges both the manual entries and the computed cost
func FuelAddsToManual(manual, computed decimal.Decimal) decimal.Decimal {
	return manual.Add(computed)
}

// PeriodFuel computes the fuel cost of the records of a period, sorted by date
type PeriodFuel func(records []*domain.DailyRecord, cfg *domain.CarConfig) decimal.Decimal

// FuelFromPeriodDistance prices the period's distance once per pair of fuel
// rates, so a period with uniform rates is priced over its total distance.
// Days without usable rates are charged at the latest rates of the period.
func FuelFromPeriodDistance(records []*domain.DailyRecord, cfg *domain.CarConfig) decimal.Decimal {
	total := decimal.Zero
	for _, g := range periodFuelGroups(records, cfg) {
		total = total.Add(FuelCost(g.distance, g.kmPerLiter, g.price))
	}
	return total
}

// FuelFromDailySum adds up the fuel cost of each day at that day's rates.
// Days without usable rates cost nothing.
func FuelFromDailySum(records []*domain.DailyRecord, cfg *domain.CarConfig) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(recordFuelCost(r, cfg))
	}
	return total
}

// Policy collects the cost rules that are product decisions rather than
// arithmetic. MonthlyKmLimit and MonthlyGoal scale weekly contract terms to a
// month independently of each other.
type Policy struct {
	FuelMerge      FuelMerge
	PeriodFuel     PeriodFuel
	WeeklyRent     RentAllocator
	MonthlyRent    RentAllocator
	MonthlyKmLimit WeeklyScale
	MonthlyGoal    WeeklyScale

	// DailyFixedCosts charges one day of prorated rent on daily analyses
	DailyFixedCosts bool
}

// DefaultPolicy returns the reference cost rules
func DefaultPolicy() Policy {
	return Policy{
		FuelMerge:      FuelOverridesManual,
		PeriodFuel:     FuelFromPeriodDistance,
		WeeklyRent:     ProratedWeeklyRent,
		MonthlyRent:    WeeklyCeilingRent,
		MonthlyKmLimit: CeilingWeeksLimit,
		MonthlyGoal:    CeilingWeeksLimit,
	}
}

// withDefaults fills unset rules from DefaultPolicy
func (p Policy) withDefaults() Policy {
	def := DefaultPolicy()
	if p.FuelMerge == nil {
		p.FuelMerge = def.FuelMerge
	}
	if p.PeriodFuel == nil {
		p.PeriodFuel = def.PeriodFuel
	}
	if p.WeeklyRent == nil {
		p.WeeklyRent = def.WeeklyRent
	}
	if p.MonthlyRent == nil {
		p.MonthlyRent = def.MonthlyRent
	}
	if p.MonthlyKmLimit == nil {
		p.MonthlyKmLimit = def.MonthlyKmLimit
	}
	if p.MonthlyGoal == nil {
		p.MonthlyGoal = def.MonthlyGoal
	}
	return p
}
