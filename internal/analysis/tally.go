package analysis

import (
	"sort"
	"time"

	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/dafibh/drivelog/drivelog-backend/internal/util"
	"github.com/shopspring/decimal"
)

// tally holds the raw sums of the records of a date range
type tally struct {
	records   []*domain.DailyRecord
	platforms []domain.PlatformSummary
	minutes   int32
	trips     int32
	km        decimal.Decimal
	manual    []CategoryAmount
	extras    []CategoryAmount
}

// collect sums the records dated inside [start, end]. Extra earnings are
// attributed by their own date, so an earning logged on another day's record
// still counts toward the range it is dated in.
func collect(start, end time.Time, records []*domain.DailyRecord) *tally {
	t := &tally{}
	index := make(map[domain.Platform]int)
	for i, p := range (&domain.DailyRecord{}).Platforms() {
		index[p.Platform] = i
		t.platforms = append(t.platforms, domain.PlatformSummary{Platform: p.Platform})
	}

	for _, r := range records {
		if r == nil {
			continue
		}
		for _, e := range r.ExtraEarnings {
			if util.InRange(e.EffectiveDate(r.Date), start, end) {
				t.extras = append(t.extras, CategoryAmount{Category: e.Category, Amount: e.Amount})
			}
		}
		if !util.InRange(r.Date, start, end) {
			continue
		}

		t.records = append(t.records, r)
		t.minutes += r.MinutesWorked
		for _, p := range r.Platforms() {
			i, ok := index[p.Platform]
			if !ok {
				continue
			}
			t.platforms[i].Trips += p.Trips
			t.platforms[i].Km = t.platforms[i].Km.Add(p.Km)
			t.platforms[i].Earnings = t.platforms[i].Earnings.Add(p.Earnings)
			t.trips += p.Trips
			t.km = t.km.Add(p.Km)
		}
		for _, e := range r.Expenses {
			t.manual = append(t.manual, CategoryAmount{Category: e.Category, Amount: e.Amount})
		}
	}

	sort.SliceStable(t.records, func(i, j int) bool {
		return t.records[i].Date.Before(t.records[j].Date)
	})
	return t
}

// platformEarnings is the gross earnings across platforms, without extras
func (t *tally) platformEarnings() decimal.Decimal {
	total := decimal.Zero
	for _, p := range t.platforms {
		total = total.Add(p.Earnings)
	}
	return total
}

// costs are the lines added on top of the manual expenses
type costs struct {
	computedFuel decimal.Decimal
	rent         decimal.Decimal
	excessKm     decimal.Decimal
	excessFee    decimal.Decimal
}

// build turns a tally and its cost lines into an analysis. Manual fuel entries
// are merged with the computed fuel cost, every other line goes straight into
// the expense breakdown.
func build(period domain.Period, t *tally, c costs, merge FuelMerge) *domain.PerformanceAnalysis {
	a := &domain.PerformanceAnalysis{
		Period:        period,
		MinutesWorked: t.minutes,
		Trips:         t.trips,
		TotalKm:       t.km,
		DaysWorked:    len(t.records),
		Platforms:     t.platforms,
	}

	for _, p := range t.platforms {
		switch p.Platform {
		case domain.PlatformUber:
			a.EarningsUber, a.KmUber, a.TripsUber = p.Earnings, p.Km, p.Trips
		case domain.Platform99:
			a.Earnings99, a.Km99, a.Trips99 = p.Earnings, p.Km, p.Trips
		}
	}

	a.EarningsByCategory = GroupByCategory(t.extras)
	a.ExtraEarnings = sumValues(a.EarningsByCategory)
	a.GrossEarnings = t.platformEarnings().Add(a.ExtraEarnings)

	lines := make([]CategoryAmount, 0, len(t.manual)+3)
	manualFuel := decimal.Zero
	for _, m := range t.manual {
		a.RecordedExpenses = a.RecordedExpenses.Add(m.Amount)
		if m.Category == domain.CategoryFuel {
			manualFuel = manualFuel.Add(m.Amount)
			continue
		}
		lines = append(lines, m)
	}

	a.FuelCost = merge(manualFuel, c.computedFuel)
	a.RentCost = c.rent
	a.ExcessKm = c.excessKm
	a.ExcessKmCost = c.excessFee
	lines = append(lines,
		CategoryAmount{Category: domain.CategoryFuel, Amount: a.FuelCost},
		CategoryAmount{Category: domain.CategoryRent, Amount: a.RentCost},
		CategoryAmount{Category: domain.CategoryExcessKm, Amount: a.ExcessKmCost},
	)

	a.ExpensesByCategory = GroupByCategory(lines)
	a.TotalExpenses = sumValues(a.ExpensesByCategory)
	a.NetProfit = a.GrossEarnings.Sub(a.TotalExpenses)

	applyRatios(a)
	return a
}
