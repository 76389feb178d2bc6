package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodKind is the aggregation window of an analysis
type PeriodKind string

const (
	PeriodDay   PeriodKind = "day"
	PeriodWeek  PeriodKind = "week"
	PeriodMonth PeriodKind = "month"
)

// IsValid reports whether the kind is a supported aggregation window
func (k PeriodKind) IsValid() bool {
	switch k {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

// Period is an inclusive calendar date range
type Period struct {
	Kind  PeriodKind
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days in the period
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// PlatformSummary is the aggregated activity of one platform
type PlatformSummary struct {
	Platform        Platform
	Trips           int32
	Km              decimal.Decimal
	Earnings        decimal.Decimal
	EarningsPerHour decimal.Decimal
}

// DaySummary is one day of a period series, used by the weekday chart
type DaySummary struct {
	Date     time.Time
	Earnings map[Platform]decimal.Decimal
	Extras   decimal.Decimal
	Expenses decimal.Decimal
	Total    decimal.Decimal
}

// GoalProgress tracks gross earnings against the vehicle's earnings goal
type GoalProgress struct {
	Goal      decimal.Decimal
	Achieved  bool
	Remaining decimal.Decimal
	Percent   decimal.Decimal
}

// MileageControl tracks the period distance against the contract allowance
type MileageControl struct {
	LimitKm     decimal.Decimal
	RemainingKm decimal.Decimal
	Percent     decimal.Decimal
}

// PerformanceAnalysis is the derived profitability breakdown of a day, week or
// month. It is computed on demand and never persisted.
type PerformanceAnalysis struct {
	Period Period

	GrossEarnings decimal.Decimal
	EarningsUber  decimal.Decimal
	Earnings99    decimal.Decimal
	ExtraEarnings decimal.Decimal

	TotalExpenses    decimal.Decimal
	RecordedExpenses decimal.Decimal
	FuelCost         decimal.Decimal
	RentCost         decimal.Decimal
	ExcessKmCost     decimal.Decimal
	ExcessKm         decimal.Decimal
	NetProfit        decimal.Decimal

	TotalKm       decimal.Decimal
	KmUber        decimal.Decimal
	Km99          decimal.Decimal
	MinutesWorked int32
	Trips         int32
	TripsUber     int32
	Trips99       int32
	DaysWorked    int

	ProfitPerHour   decimal.Decimal
	ProfitPerMinute decimal.Decimal
	RevenuePerHour  decimal.Decimal
	CostPerHour     decimal.Decimal
	ProfitPerKm     decimal.Decimal
	RevenuePerKm    decimal.Decimal
	CostPerKm       decimal.Decimal
	ProfitPerTrip   decimal.Decimal
	RevenuePerTrip  decimal.Decimal
	CostPerTrip     decimal.Decimal

	Platforms          []PlatformSummary
	ExpensesByCategory map[string]decimal.Decimal
	EarningsByCategory map[string]decimal.Decimal

	// Period-only fields, nil for daily analyses
	Days    []DaySummary
	Goal    *GoalProgress
	Mileage *MileageControl
}
