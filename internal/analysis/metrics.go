package analysis

import (
	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	minutesPerHour = decimal.NewFromInt(60)
	hundred        = decimal.NewFromInt(100)
)

// ratio divides n by d, or returns zero when d is not positive
func ratio(n, d decimal.Decimal) decimal.Decimal {
	if !d.IsPositive() {
		return decimal.Zero
	}
	return n.Div(d)
}

func applyRatios(a *domain.PerformanceAnalysis) {
	minutes := decimal.NewFromInt32(a.MinutesWorked)
	hours := minutes.Div(minutesPerHour)
	trips := decimal.NewFromInt32(a.Trips)

	a.ProfitPerHour = ratio(a.NetProfit, hours)
	a.ProfitPerMinute = ratio(a.NetProfit, minutes)
	a.RevenuePerHour = ratio(a.GrossEarnings, hours)
	a.CostPerHour = ratio(a.TotalExpenses, hours)

	a.ProfitPerKm = ratio(a.NetProfit, a.TotalKm)
	a.RevenuePerKm = ratio(a.GrossEarnings, a.TotalKm)
	a.CostPerKm = ratio(a.TotalExpenses, a.TotalKm)

	a.ProfitPerTrip = ratio(a.NetProfit, trips)
	a.RevenuePerTrip = ratio(a.GrossEarnings, trips)
	a.CostPerTrip = ratio(a.TotalExpenses, trips)

	for i := range a.Platforms {
		a.Platforms[i].EarningsPerHour = ratio(a.Platforms[i].Earnings, hours)
	}
}

// percentOf returns part as a percentage of whole
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	return ratio(part.Mul(hundred), whole)
}
