package analysis

import (
	"testing"

	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeWeek_ScenarioA(t *testing.T) {
	a := AnalyzeWeek(day("2024-06-06"), []*domain.DailyRecord{scenarioRecord()}, scenarioConfig(), DefaultPolicy())

	require.NotNil(t, a)
	assert.Equal(t, domain.PeriodWeek, a.Period.Kind)
	assert.Equal(t, day("2024-06-03"), a.Period.Start)
	assert.Equal(t, day("2024-06-09"), a.Period.End)
	assertDecimal(t, "230", a.GrossEarnings)
	assertDecimal(t, "108", a.TotalExpenses)
	assertDecimal(t, "122", a.NetProfit)
	assertDecimal(t, "15.25", a.ProfitPerHour)
	assert.Equal(t, 1, a.DaysWorked)
	assertConservation(t, a)
}

func TestAnalyzeWeek_ScenarioB_FullWeekRent(t *testing.T) {
	cfg := withContract(scenarioConfig(), "2024-06-03", 60)
	cfg.WeeklyRent = dec("700")

	a := AnalyzeWeek(day("2024-06-03"), []*domain.DailyRecord{scenarioRecord()}, cfg, DefaultPolicy())

	require.NotNil(t, a)
	assertDecimal(t, "700", a.RentCost)
	assertDecimal(t, "700", a.ExpensesByCategory[domain.CategoryRent])
	assertDecimal(t, "808", a.TotalExpenses)
	assertDecimal(t, "-578", a.NetProfit)
	assertConservation(t, a)
}

func TestAnalyzeWeek_ScenarioC_Overage(t *testing.T) {
	cfg := scenarioConfig()
	cfg.ExcessKmFee = dec("1.5")
	monday := scenarioRecord()
	monday.KmUber, monday.Km99 = dec("500"), dec("100")
	thursday := scenarioRecord()
	thursday.ID = 2
	thursday.Date = day("2024-06-06")
	thursday.KmUber, thursday.Km99 = dec("450"), dec("150")

	a := AnalyzeWeek(day("2024-06-09"), []*domain.DailyRecord{monday, thursday}, cfg, DefaultPolicy())

	require.NotNil(t, a)
	assertDecimal(t, "1200", a.TotalKm)
	assertDecimal(t, "200", a.ExcessKm)
	assertDecimal(t, "300", a.ExcessKmCost)
	assertDecimal(t, "300", a.ExpensesByCategory[domain.CategoryExcessKm])
	assertDecimal(t, "720", a.FuelCost)
	assertDecimal(t, "1020", a.TotalExpenses)
	assertConservation(t, a)

	require.NotNil(t, a.Mileage)
	assertDecimal(t, "1000", a.Mileage.LimitKm)
	assertDecimal(t, "-200", a.Mileage.RemainingKm)
	assertDecimal(t, "120", a.Mileage.Percent)
}

func TestAnalyzeWeek_ScenarioD_MidweekContractStart(t *testing.T) {
	cfg := withContract(scenarioConfig(), "2024-06-05", 60)
	cfg.WeeklyRent = dec("700")

	a := AnalyzeWeek(day("2024-06-03"), []*domain.DailyRecord{scenarioRecord()}, cfg, DefaultPolicy())

	require.NotNil(t, a)
	assertDecimal(t, "500", a.RentCost)
	assertConservation(t, a)
}

func TestAnalyzeWeek_EmptyIsZeroObject(t *testing.T) {
	cfg := withContract(scenarioConfig(), "2024-06-01", 60)
	cfg.WeeklyRent = dec("700")
	cfg.ExcessKmFee = dec("1.5")

	for _, c := range []*domain.CarConfig{nil, scenarioConfig(), cfg} {
		a := AnalyzeWeek(day("2024-06-05"), nil, c, DefaultPolicy())

		require.NotNil(t, a)
		for name, v := range map[string]decimal.Decimal{
			"gross": a.GrossEarnings, "uber": a.EarningsUber, "99": a.Earnings99, "extras": a.ExtraEarnings,
			"expenses": a.TotalExpenses, "recorded": a.RecordedExpenses, "fuel": a.FuelCost, "rent": a.RentCost,
			"excessKm": a.ExcessKm, "excessCost": a.ExcessKmCost, "net": a.NetProfit, "km": a.TotalKm,
			"profitPerHour": a.ProfitPerHour, "profitPerMinute": a.ProfitPerMinute, "revenuePerHour": a.RevenuePerHour,
			"costPerHour": a.CostPerHour, "profitPerKm": a.ProfitPerKm, "revenuePerKm": a.RevenuePerKm,
			"costPerKm": a.CostPerKm, "profitPerTrip": a.ProfitPerTrip, "revenuePerTrip": a.RevenuePerTrip,
			"costPerTrip": a.CostPerTrip,
		} {
			assert.True(t, v.IsZero(), "%s = %s", name, v)
		}
		assert.Zero(t, a.MinutesWorked)
		assert.Zero(t, a.Trips)
		assert.Zero(t, a.DaysWorked)
		assert.Empty(t, a.ExpensesByCategory)
		assert.Empty(t, a.EarningsByCategory)
		assert.Len(t, a.Days, 7)
	}
}

func TestAnalyzeWeek_OutsideContract(t *testing.T) {
	cfg := withContract(scenarioConfig(), "2024-01-01", 30)
	cfg.WeeklyRent = dec("700")
	cfg.ExcessKmFee = dec("1.5")
	record := scenarioRecord()
	record.KmUber = dec("1500")

	a := AnalyzeWeek(day("2024-06-03"), []*domain.DailyRecord{record}, cfg, DefaultPolicy())

	require.NotNil(t, a)
	assertDecimal(t, "0", a.RentCost)
	assertDecimal(t, "0", a.ExcessKmCost)
	assertConservation(t, a)
}

func TestAnalyzeWeek_ExcludesDailyFuelEntries(t *testing.T) {
	monday := scenarioRecord()
	monday.Expenses = []*domain.Expense{
		{Amount: dec("80"), Category: domain.CategoryFuel},
		{Amount: dec("15"), Category: domain.CategoryCleaning},
	}
	tuesday := scenarioRecord()
	tuesday.ID = 2
	tuesday.Date = day("2024-06-04")
	tuesday.Expenses = []*domain.Expense{{Amount: dec("60"), Category: domain.CategoryFuel}}

	a := AnalyzeWeek(day("2024-06-03"), []*domain.DailyRecord{monday, tuesday}, scenarioConfig(), DefaultPolicy())

	require.NotNil(t, a)
	assertDecimal(t, "216", a.FuelCost, "one fuel line for 360 km")
	assertDecimal(t, "216", a.ExpensesByCategory[domain.CategoryFuel])
	assertDecimal(t, "15", a.ExpensesByCategory[domain.CategoryCleaning])
	assertDecimal(t, "155", a.RecordedExpenses)
	assertDecimal(t, "231", a.TotalExpenses)
	assertConservation(t, a)
}

func TestAnalyzeWeek_PeriodFuelPolicies(t *testing.T) {
	monday := scenarioRecord()
	monday.KmPerLiter, monday.FuelPrice = dec("12"), dec("6")
	tuesday := scenarioRecord()
	tuesday.ID = 2
	tuesday.Date = day("2024-06-04")
	tuesday.KmPerLiter, tuesday.FuelPrice = dec("9"), dec("5")
	records := []*domain.DailyRecord{monday, tuesday}

	daily := DefaultPolicy()
	daily.PeriodFuel = FuelFromDailySum

	// Differing record rates are honored by both policies
	a := AnalyzeWeek(day("2024-06-03"), records, scenarioConfig(), DefaultPolicy())
	require.NotNil(t, a)
	assertDecimal(t, "190", a.FuelCost, "90 on monday plus 100 on tuesday")
	a = AnalyzeWeek(day("2024-06-03"), records, scenarioConfig(), daily)
	require.NotNil(t, a)
	assertDecimal(t, "190", a.FuelCost)

	// A day without rates and no vehicle only costs fuel when priced over the period
	tuesday.KmPerLiter, tuesday.FuelPrice = decimal.Zero, decimal.Zero
	a = AnalyzeWeek(day("2024-06-03"), records, nil, DefaultPolicy())
	require.NotNil(t, a)
	assertDecimal(t, "180", a.FuelCost, "360 km at monday's rates")
	a = AnalyzeWeek(day("2024-06-03"), records, nil, daily)
	require.NotNil(t, a)
	assertDecimal(t, "90", a.FuelCost)

	// With uniform rates both policies agree
	plain := scenarioRecord()
	plainTuesday := scenarioRecord()
	plainTuesday.Date = day("2024-06-04")
	uniform := []*domain.DailyRecord{plain, plainTuesday}
	assertDecimal(t, "216", AnalyzeWeek(day("2024-06-03"), uniform, scenarioConfig(), daily).FuelCost)
	assertDecimal(t, "216", AnalyzeWeek(day("2024-06-03"), uniform, scenarioConfig(), DefaultPolicy()).FuelCost)
}

func TestAnalyzeWeek_SingleRecordFuelMatchesDay(t *testing.T) {
	record := scenarioRecord()
	record.KmPerLiter, record.FuelPrice = dec("12"), dec("5.00")
	records := []*domain.DailyRecord{record}

	for _, policy := range []Policy{DefaultPolicy(), {PeriodFuel: FuelFromDailySum}} {
		dayAnalysis := AnalyzeDay(day("2024-06-03"), records, scenarioConfig(), policy)
		week := AnalyzeWeek(day("2024-06-03"), records, scenarioConfig(), policy)
		month := AnalyzeMonth(day("2024-06-03"), records, scenarioConfig(), policy)
		require.NotNil(t, dayAnalysis)

		assertDecimal(t, "75", dayAnalysis.FuelCost, "180 km at 12 km/l and 5.00")
		assertDecimal(t, dayAnalysis.FuelCost.String(), week.FuelCost)
		assertDecimal(t, dayAnalysis.FuelCost.String(), month.FuelCost)
		assertDecimal(t, dayAnalysis.TotalExpenses.String(), week.TotalExpenses)
	}
}

func TestAnalyzeWeek_ExtrasByEffectiveDate(t *testing.T) {
	sunday := scenarioRecord()
	sunday.Date = day("2024-06-09")
	sunday.ExtraEarnings = []*domain.ExtraEarning{
		{Amount: dec("40"), Category: "Gorjeta"},
		{Date: day("2024-06-10"), Amount: dec("100"), Category: "Venda"},
	}

	a := AnalyzeWeek(day("2024-06-03"), []*domain.DailyRecord{sunday}, scenarioConfig(), DefaultPolicy())
	require.NotNil(t, a)
	assertDecimal(t, "40", a.ExtraEarnings)
	assertDecimal(t, "270", a.GrossEarnings)

	next := AnalyzeWeek(day("2024-06-10"), []*domain.DailyRecord{sunday}, scenarioConfig(), DefaultPolicy())
	require.NotNil(t, next)
	assertDecimal(t, "100", next.ExtraEarnings)
	assertDecimal(t, "100", next.GrossEarnings)
	assertDecimal(t, "100", next.EarningsByCategory["Venda"])
}

func TestAnalyzeWeek_DaySeries(t *testing.T) {
	wednesday := scenarioRecord()
	wednesday.Date = day("2024-06-05")

	a := AnalyzeWeek(day("2024-06-05"), []*domain.DailyRecord{wednesday}, scenarioConfig(), DefaultPolicy())

	require.NotNil(t, a)
	require.Len(t, a.Days, 7)
	assert.Equal(t, day("2024-06-03"), a.Days[0].Date)
	assert.Equal(t, day("2024-06-09"), a.Days[6].Date)
	assertDecimal(t, "0", a.Days[0].Total)
	assertDecimal(t, "0", a.Days[0].Earnings[domain.PlatformUber])
	assertDecimal(t, "150", a.Days[2].Earnings[domain.PlatformUber])
	assertDecimal(t, "80", a.Days[2].Earnings[domain.Platform99])
	assertDecimal(t, "108", a.Days[2].Expenses)
	assertDecimal(t, "230", a.Days[2].Total)
}

func TestAnalyzeWeek_GoalProgress(t *testing.T) {
	cfg := scenarioConfig()
	cfg.WeeklyEarningsGoal = dec("1000")

	a := AnalyzeWeek(day("2024-06-03"), []*domain.DailyRecord{scenarioRecord()}, cfg, DefaultPolicy())

	require.NotNil(t, a)
	require.NotNil(t, a.Goal)
	assertDecimal(t, "1000", a.Goal.Goal)
	assertDecimal(t, "770", a.Goal.Remaining)
	assertDecimal(t, "23", a.Goal.Percent)
	assert.False(t, a.Goal.Achieved)

	cfg.WeeklyEarningsGoal = dec("200")
	a = AnalyzeWeek(day("2024-06-03"), []*domain.DailyRecord{scenarioRecord()}, cfg, DefaultPolicy())
	require.NotNil(t, a.Goal)
	assert.True(t, a.Goal.Achieved)
	assertDecimal(t, "-30", a.Goal.Remaining)

	assert.Nil(t, AnalyzeWeek(day("2024-06-03"), nil, scenarioConfig(), DefaultPolicy()).Goal)
}

func TestAnalyzeMonth_CeilingRentAndLimit(t *testing.T) {
	cfg := withContract(scenarioConfig(), "2024-05-01", 365)
	cfg.WeeklyRent = dec("700")
	cfg.ExcessKmFee = dec("1")
	cfg.WeeklyEarningsGoal = dec("1000")
	record := scenarioRecord()
	record.KmUber = dec("4900")
	record.Km99 = dec("300")

	a := AnalyzeMonth(day("2024-06-17"), []*domain.DailyRecord{record}, cfg, DefaultPolicy())

	require.NotNil(t, a)
	assert.Equal(t, domain.PeriodMonth, a.Period.Kind)
	assert.Equal(t, day("2024-06-01"), a.Period.Start)
	assert.Equal(t, day("2024-06-30"), a.Period.End)
	assert.Len(t, a.Days, 30)
	assertDecimal(t, "3500", a.RentCost, "five started weeks")
	assertDecimal(t, "5000", a.Mileage.LimitKm)
	assertDecimal(t, "200", a.ExcessKm)
	assertDecimal(t, "200", a.ExcessKmCost)
	assertDecimal(t, "5000", a.Goal.Goal)
	assertConservation(t, a)
}

func TestAnalyzeMonth_ProRataPolicies(t *testing.T) {
	cfg := withContract(scenarioConfig(), "2024-05-01", 365)
	cfg.WeeklyRent = dec("700")
	cfg.WeeklyKmLimit = dec("700")
	cfg.ExcessKmFee = dec("1")
	record := scenarioRecord()
	record.KmUber = dec("3100")
	record.Km99 = dec("0")

	policy := DefaultPolicy()
	policy.MonthlyRent = ProratedWeeklyRent
	policy.MonthlyKmLimit = ProRataLimit

	a := AnalyzeMonth(day("2024-06-17"), []*domain.DailyRecord{record}, cfg, policy)

	require.NotNil(t, a)
	assertDecimal(t, "3000", a.RentCost)
	assertDecimal(t, "3000", a.Mileage.LimitKm)
	assertDecimal(t, "100", a.ExcessKmCost)
	assertConservation(t, a)
}

func TestAnalyzeMonth_GoalScaledIndependently(t *testing.T) {
	cfg := scenarioConfig()
	cfg.WeeklyKmLimit = dec("700")
	cfg.WeeklyEarningsGoal = dec("1400")
	records := []*domain.DailyRecord{scenarioRecord()}

	policy := DefaultPolicy()
	policy.MonthlyKmLimit = ProRataLimit

	a := AnalyzeMonth(day("2024-06-17"), records, cfg, policy)
	require.NotNil(t, a)
	require.NotNil(t, a.Goal)
	assertDecimal(t, "3000", a.Mileage.LimitKm, "30 days pro rata")
	assertDecimal(t, "7000", a.Goal.Goal, "goal keeps five started weeks")

	policy = DefaultPolicy()
	policy.MonthlyGoal = ProRataLimit

	a = AnalyzeMonth(day("2024-06-17"), records, cfg, policy)
	require.NotNil(t, a)
	assertDecimal(t, "3500", a.Mileage.LimitKm)
	assertDecimal(t, "6000", a.Goal.Goal)
}

func TestAnalyzeMonth_PartialContract(t *testing.T) {
	cfg := withContract(scenarioConfig(), "2024-06-20", 60)
	cfg.WeeklyRent = dec("700")
	record := scenarioRecord()
	record.Date = day("2024-06-21")

	a := AnalyzeMonth(day("2024-06-01"), []*domain.DailyRecord{record}, cfg, DefaultPolicy())

	require.NotNil(t, a)
	assertDecimal(t, "1400", a.RentCost, "eleven contract days span two started weeks")
}

func TestAnalyzePeriod_Dispatch(t *testing.T) {
	records := []*domain.DailyRecord{scenarioRecord()}
	cfg := scenarioConfig()

	assert.Nil(t, AnalyzePeriod(day("2024-06-04"), domain.PeriodDay, records, cfg, DefaultPolicy()))
	assert.NotNil(t, AnalyzePeriod(day("2024-06-03"), domain.PeriodDay, records, cfg, DefaultPolicy()))
	assert.Equal(t, domain.PeriodWeek, AnalyzePeriod(day("2024-06-04"), domain.PeriodWeek, records, cfg, DefaultPolicy()).Period.Kind)
	assert.Equal(t, domain.PeriodMonth, AnalyzePeriod(day("2024-06-04"), domain.PeriodMonth, records, cfg, DefaultPolicy()).Period.Kind)
	assert.Nil(t, AnalyzePeriod(day("2024-06-04"), domain.PeriodKind("year"), records, cfg, DefaultPolicy()))
}

func TestAnalyze_ConservationAcrossPolicies(t *testing.T) {
	cfg := withContract(scenarioConfig(), "2024-06-05", 20)
	cfg.WeeklyRent = dec("650")
	cfg.ExcessKmFee = dec("0.75")
	cfg.WeeklyKmLimit = dec("300")

	var records []*domain.DailyRecord
	for i, date := range []string{"2024-06-03", "2024-06-05", "2024-06-08", "2024-06-12", "2024-06-27"} {
		r := scenarioRecord()
		r.ID = int32(i + 1)
		r.Date = day(date)
		r.Expenses = []*domain.Expense{
			{Amount: dec("33.33"), Category: domain.CategoryFuel},
			{Amount: dec("7.10"), Category: domain.CategoryToll},
		}
		r.ExtraEarnings = []*domain.ExtraEarning{{Amount: dec("12.5"), Category: "Gorjeta"}}
		records = append(records, r)
	}

	policies := []Policy{
		DefaultPolicy(),
		{FuelMerge: FuelAddsToManual, PeriodFuel: FuelFromDailySum, MonthlyRent: ProratedWeeklyRent, MonthlyKmLimit: ProRataLimit, MonthlyGoal: ProRataLimit},
		{DailyFixedCosts: true},
	}
	for _, policy := range policies {
		for _, anchor := range []string{"2024-06-03", "2024-06-08", "2024-06-27"} {
			if a := AnalyzeDay(day(anchor), records, cfg, policy); assert.NotNil(t, a) {
				assertConservation(t, a)
			}
			assertConservation(t, AnalyzeWeek(day(anchor), records, cfg, policy))
			assertConservation(t, AnalyzeMonth(day(anchor), records, cfg, policy))
		}
	}
}
