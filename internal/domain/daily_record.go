package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Platform identifies a rideshare platform
type Platform string

const (
	PlatformUber Platform = "uber"
	Platform99   Platform = "99"
)

// Expense categories offered by the entry forms. Categories are free text,
// these are only the defaults.
const (
	CategoryFuel     = "Combustível"
	CategoryCleaning = "Limpeza"
	CategoryLunch    = "Almoço"
	CategoryToll     = "Pedágio"
	CategoryParking  = "Estacionamento"
	CategoryOther    = "Outros"
)

// Categories injected by the analysis engine
const (
	CategoryRent     = "Aluguel"
	CategoryExcessKm = "KM Excedido"
)

const (
	MaxCategoryLength  = 100
	MaxDescriptionSize = 255
)

// DefaultExpenseCategories lists the expense categories offered by default
var DefaultExpenseCategories = []string{
	CategoryFuel, CategoryCleaning, CategoryLunch, CategoryToll, CategoryParking, CategoryOther,
}

// DefaultEarningCategories lists the extra earning categories offered by default
var DefaultEarningCategories = []string{
	"Gorjeta", "Corrida Particular", "Venda", "Outros",
}

// DailyRecord is one calendar day of driving activity
type DailyRecord struct {
	ID            int32           `json:"id"`
	WorkspaceID   int32           `json:"workspaceId"`
	Date          time.Time       `json:"date"`
	MinutesWorked int32           `json:"tempoTrabalhado"`
	TripsUber     int32           `json:"numeroCorridasUber"`
	KmUber        decimal.Decimal `json:"kmRodadosUber"`
	EarningsUber  decimal.Decimal `json:"ganhosUber"`
	Trips99       int32           `json:"numeroCorridas99"`
	Km99          decimal.Decimal `json:"kmRodados99"`
	Earnings99    decimal.Decimal `json:"ganhos99"`
	FuelPrice     decimal.Decimal `json:"precoCombustivel"`
	KmPerLiter    decimal.Decimal `json:"consumoKmL"`
	Expenses      []*Expense      `json:"gastos"`
	ExtraEarnings []*ExtraEarning `json:"ganhosExtras"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// PlatformActivity is the activity of a single platform within a record
type PlatformActivity struct {
	Platform Platform
	Trips    int32
	Km       decimal.Decimal
	Earnings decimal.Decimal
}

// Platforms returns the per-platform activity of the record in a stable order
func (r *DailyRecord) Platforms() []PlatformActivity {
	return []PlatformActivity{
		{Platform: PlatformUber, Trips: r.TripsUber, Km: r.KmUber, Earnings: r.EarningsUber},
		{Platform: Platform99, Trips: r.Trips99, Km: r.Km99, Earnings: r.Earnings99},
	}
}

// TotalKm returns the distance driven across all platforms
func (r *DailyRecord) TotalKm() decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.Platforms() {
		total = total.Add(p.Km)
	}
	return total
}

// TotalTrips returns the trip count across all platforms
func (r *DailyRecord) TotalTrips() int32 {
	var total int32
	for _, p := range r.Platforms() {
		total += p.Trips
	}
	return total
}

// Expense is a manually entered cost attached to a daily record
type Expense struct {
	ID        int32           `json:"id"`
	RecordID  int32           `json:"entradaDiariaId"`
	Amount    decimal.Decimal `json:"valor"`
	Category  string          `json:"categoria"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ExtraEarning is off-platform income (tips, private rides, sales)
type ExtraEarning struct {
	ID          int32           `json:"id"`
	RecordID    int32           `json:"entradaDiariaId"`
	Date        time.Time       `json:"data"`
	Amount      decimal.Decimal `json:"valor"`
	Category    string          `json:"categoria"`
	Description *string         `json:"descricao,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// EffectiveDate returns the earning's own date, or the parent record's date when unset
func (e *ExtraEarning) EffectiveDate(recordDate time.Time) time.Time {
	if e.Date.IsZero() {
		return recordDate
	}
	return e.Date
}

// EarningsSubmission is the payload of one earnings entry. Submitting twice for
// the same date accumulates into the existing record.
type EarningsSubmission struct {
	Date          time.Time
	MinutesWorked int32
	TripsUber     int32
	KmUber        decimal.Decimal
	EarningsUber  decimal.Decimal
	Trips99       int32
	Km99          decimal.Decimal
	Earnings99    decimal.Decimal
	FuelPrice     decimal.Decimal
	KmPerLiter    decimal.Decimal
	Expenses      []*Expense
}

// DailyRecordFilters narrows a record listing to a date range
type DailyRecordFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// DailyRecordRepository defines persistence operations for daily records and
// their nested expenses and extra earnings
type DailyRecordRepository interface {
	GetAll(workspaceID int32, filters *DailyRecordFilters) ([]*DailyRecord, error)
	GetByID(workspaceID int32, id int32) (*DailyRecord, error)
	GetByDate(workspaceID int32, date time.Time) (*DailyRecord, error)
	UpsertAccumulate(workspaceID int32, submission *EarningsSubmission) (*DailyRecord, bool, error)
	Update(record *DailyRecord) (*DailyRecord, error)
	Delete(workspaceID int32, id int32) error
	AddExpense(workspaceID int32, recordID int32, expense *Expense) (*Expense, error)
	DeleteExpense(workspaceID int32, recordID int32, expenseID int32) error
	AddExtraEarning(workspaceID int32, recordID int32, earning *ExtraEarning) (*ExtraEarning, error)
	DeleteExtraEarning(workspaceID int32, recordID int32, earningID int32) error
}
