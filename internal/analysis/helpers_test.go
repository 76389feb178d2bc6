package analysis

import (
	"fmt"
	"testing"
	"time"

	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	if !dec(want).Equal(got) {
		assert.Fail(t, fmt.Sprintf("want %s, got %s", want, got), msgAndArgs...)
	}
}

// scenarioRecord is a Monday with 230 gross, 180 km and 8 hours of work
func scenarioRecord() *domain.DailyRecord {
	return &domain.DailyRecord{
		ID:            1,
		WorkspaceID:   1,
		Date:          day("2024-06-03"),
		MinutesWorked: 480,
		TripsUber:     10,
		KmUber:        dec("120"),
		EarningsUber:  dec("150"),
		Trips99:       6,
		Km99:          dec("60"),
		Earnings99:    dec("80"),
	}
}

func scenarioConfig() *domain.CarConfig {
	return &domain.CarConfig{
		ID:            1,
		WorkspaceID:   1,
		Model:         "Onix 1.0",
		KmPerLiter:    dec("10"),
		FuelPrice:     dec("6.00"),
		WeeklyRent:    decimal.Zero,
		WeeklyKmLimit: dec("1000"),
		IsActive:      true,
	}
}

func withContract(cfg *domain.CarConfig, start string, days int32) *domain.CarConfig {
	s := day(start)
	cfg.ContractStart = &s
	cfg.ContractDays = days
	return cfg
}

func assertConservation(t *testing.T, a *domain.PerformanceAnalysis) {
	t.Helper()
	sum := decimal.Zero
	for _, v := range a.ExpensesByCategory {
		sum = sum.Add(v)
	}
	assert.True(t, sum.Equal(a.TotalExpenses), "breakdown sum %s != total %s", sum, a.TotalExpenses)
	assert.True(t, a.GrossEarnings.Sub(a.TotalExpenses).Equal(a.NetProfit), "net profit identity broken")
}
