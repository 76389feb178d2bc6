package analysis

import (
	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// FuelCost returns the cost of driving distance km at kmPerLiter efficiency and
// the given price per liter. It returns zero when any input is not positive.
func FuelCost(distance, kmPerLiter, price decimal.Decimal) decimal.Decimal {
	if !distance.IsPositive() || !kmPerLiter.IsPositive() || !price.IsPositive() {
		return decimal.Zero
	}
	return distance.Mul(price).Div(kmPerLiter)
}

// recordFuelRates returns the efficiency and price of a record, taking each
// missing value from the config
func recordFuelRates(record *domain.DailyRecord, cfg *domain.CarConfig) (decimal.Decimal, decimal.Decimal) {
	kmPerLiter, price := record.KmPerLiter, record.FuelPrice
	if cfg != nil {
		if !kmPerLiter.IsPositive() {
			kmPerLiter = cfg.KmPerLiter
		}
		if !price.IsPositive() {
			price = cfg.FuelPrice
		}
	}
	return kmPerLiter, price
}

// recordFuelCost is the computed fuel cost of a single record
func recordFuelCost(record *domain.DailyRecord, cfg *domain.CarConfig) decimal.Decimal {
	kmPerLiter, price := recordFuelRates(record, cfg)
	return FuelCost(record.TotalKm(), kmPerLiter, price)
}

// fuelGroup is the distance driven at one pair of fuel rates
type fuelGroup struct {
	kmPerLiter decimal.Decimal
	price      decimal.Decimal
	distance   decimal.Decimal
}

// periodFuelGroups sums the distance of the records per pair of rates. Each
// record is charged at its own rates, then the config's. A record still
// missing a rate borrows the rates of the most recent record that has both.
func periodFuelGroups(records []*domain.DailyRecord, cfg *domain.CarConfig) []fuelGroup {
	var fallbackKm, fallbackPrice decimal.Decimal
	// records are sorted by date ascending
	for i := len(records) - 1; i >= 0; i-- {
		kmPerLiter, price := recordFuelRates(records[i], cfg)
		if kmPerLiter.IsPositive() && price.IsPositive() {
			fallbackKm, fallbackPrice = kmPerLiter, price
			break
		}
	}

	var groups []fuelGroup
	for _, r := range records {
		kmPerLiter, price := recordFuelRates(r, cfg)
		if !kmPerLiter.IsPositive() || !price.IsPositive() {
			kmPerLiter, price = fallbackKm, fallbackPrice
		}

		found := false
		for i := range groups {
			if groups[i].kmPerLiter.Equal(kmPerLiter) && groups[i].price.Equal(price) {
				groups[i].distance = groups[i].distance.Add(r.TotalKm())
				found = true
				break
			}
		}
		if !found {
			groups = append(groups, fuelGroup{kmPerLiter: kmPerLiter, price: price, distance: r.TotalKm()})
		}
	}
	return groups
}
