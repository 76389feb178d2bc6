package analysis

import (
	"time"

	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/dafibh/drivelog/drivelog-backend/internal/util"
	"github.com/shopspring/decimal"
)

var daysPerWeek = decimal.NewFromInt(7)

// ContractOverlapDays counts the days of the inclusive range [start, end] that
// fall inside the contract window [ContractStart, ContractStart+ContractDays).
// Configs that are nil, inactive or without a contract start overlap nothing.
func ContractOverlapDays(start, end time.Time, cfg *domain.CarConfig) int {
	if cfg == nil || !cfg.IsActive || cfg.ContractStart == nil || cfg.ContractDays <= 0 {
		return 0
	}

	contractFirst := util.DateOnly(*cfg.ContractStart)
	contractLast := contractFirst.AddDate(0, 0, int(cfg.ContractDays)-1)

	from := util.DateOnly(start)
	if contractFirst.After(from) {
		from = contractFirst
	}
	to := util.DateOnly(end)
	if contractLast.Before(to) {
		to = contractLast
	}
	return util.DaysInclusive(from, to)
}

// RentAllocator turns a weekly rent and a number of contract days into the
// rent owed for those days
type RentAllocator func(weeklyRent decimal.Decimal, days int) decimal.Decimal

// ProratedWeeklyRent charges weeklyRent/7 per day
func ProratedWeeklyRent(weeklyRent decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 || !weeklyRent.IsPositive() {
		return decimal.Zero
	}
	return weeklyRent.Mul(decimal.NewFromInt(int64(days))).Div(daysPerWeek)
}

// WeeklyCeilingRent charges the full weekly rent for every started week
func WeeklyCeilingRent(weeklyRent decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 || !weeklyRent.IsPositive() {
		return decimal.Zero
	}
	return weeklyRent.Mul(startedWeeks(days))
}

// WeeklyScale scales a weekly quantity (km limit, earnings goal) to a number of days
type WeeklyScale func(weekly decimal.Decimal, days int) decimal.Decimal

// CeilingWeeksLimit multiplies the weekly quantity by the number of started weeks
func CeilingWeeksLimit(weekly decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	return weekly.Mul(startedWeeks(days))
}

// ProRataLimit scales the weekly quantity by the exact day count
func ProRataLimit(weekly decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	return weekly.Mul(decimal.NewFromInt(int64(days))).Div(daysPerWeek)
}

func startedWeeks(days int) decimal.Decimal {
	return decimal.NewFromInt(int64((days + 6) / 7))
}
