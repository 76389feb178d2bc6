package service

import (
	"time"

	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/dafibh/drivelog/drivelog-backend/internal/util"
	"github.com/dafibh/drivelog/drivelog-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DailyRecordService handles daily activity entries and their expenses and extra earnings
type DailyRecordService struct {
	recordRepo     domain.DailyRecordRepository
	eventPublisher websocket.EventPublisher
}

// NewDailyRecordService creates a new DailyRecordService
func NewDailyRecordService(recordRepo domain.DailyRecordRepository) *DailyRecordService {
	return &DailyRecordService{recordRepo: recordRepo, eventPublisher: &websocket.NoOpPublisher{}}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *DailyRecordService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = websocket.OrNoOp(publisher)
}

func (s *DailyRecordService) publishEvent(workspaceID int32, event websocket.Event) {
	s.eventPublisher.Publish(workspaceID, event)
}

// ActivityInput holds the per-day activity fields shared by submit and update
type ActivityInput struct {
	MinutesWorked int32
	TripsUber     int32
	KmUber        decimal.Decimal
	EarningsUber  decimal.Decimal
	Trips99       int32
	Km99          decimal.Decimal
	Earnings99    decimal.Decimal
	FuelPrice     decimal.Decimal
	KmPerLiter    decimal.Decimal
}

func (in ActivityInput) validate() error {
	if err := requireNonNegativeInts(in.MinutesWorked, in.TripsUber, in.Trips99); err != nil {
		return err
	}
	return requireNonNegative(in.KmUber, in.EarningsUber, in.Km99, in.Earnings99, in.FuelPrice, in.KmPerLiter)
}

// ExpenseInput holds the input for a manual expense
type ExpenseInput struct {
	Amount   decimal.Decimal
	Category string
}

func (in ExpenseInput) toDomain() (*domain.Expense, error) {
	if err := requirePositive(in.Amount); err != nil {
		return nil, err
	}
	category, err := normalizeCategory(in.Category)
	if err != nil {
		return nil, err
	}
	return &domain.Expense{Amount: in.Amount, Category: category}, nil
}

// SubmitEarningsInput is one earnings form submission
type SubmitEarningsInput struct {
	Date time.Time
	ActivityInput
	Expenses []ExpenseInput
}

// ExtraEarningInput holds the input for an off-platform earning
type ExtraEarningInput struct {
	Date        *time.Time
	Amount      decimal.Decimal
	Category    string
	Description *string
}

// ListRecords returns the workspace records, optionally limited to a date range
func (s *DailyRecordService) ListRecords(workspaceID int32, start, end *time.Time) ([]*domain.DailyRecord, error) {
	if start != nil && end != nil && end.Before(*start) {
		return nil, domain.ErrInvalidPeriod
	}
	return s.recordRepo.GetAll(workspaceID, &domain.DailyRecordFilters{StartDate: start, EndDate: end})
}

// GetRecord retrieves a record by ID
func (s *DailyRecordService) GetRecord(workspaceID int32, id int32) (*domain.DailyRecord, error) {
	return s.recordRepo.GetByID(workspaceID, id)
}

// GetRecordByDate retrieves the record of a calendar date
func (s *DailyRecordService) GetRecordByDate(workspaceID int32, date time.Time) (*domain.DailyRecord, error) {
	return s.recordRepo.GetByDate(workspaceID, util.DateOnly(date))
}

// SubmitEarnings records a day of activity. A second submission for the same
// date adds to the existing record instead of replacing it. The returned bool
// is true when a new record was created.
func (s *DailyRecordService) SubmitEarnings(workspaceID int32, input SubmitEarningsInput) (*domain.DailyRecord, bool, error) {
	if input.Date.IsZero() {
		return nil, false, domain.ErrInvalidDate
	}
	if err := input.validate(); err != nil {
		return nil, false, err
	}

	expenses := make([]*domain.Expense, 0, len(input.Expenses))
	for _, e := range input.Expenses {
		expense, err := e.toDomain()
		if err != nil {
			return nil, false, err
		}
		expenses = append(expenses, expense)
	}

	a := input.ActivityInput
	record, created, err := s.recordRepo.UpsertAccumulate(workspaceID, &domain.EarningsSubmission{
		Date:          util.DateOnly(input.Date),
		MinutesWorked: a.MinutesWorked,
		TripsUber:     a.TripsUber,
		KmUber:        a.KmUber,
		EarningsUber:  a.EarningsUber,
		Trips99:       a.Trips99,
		Km99:          a.Km99,
		Earnings99:    a.Earnings99,
		FuelPrice:     a.FuelPrice,
		KmPerLiter:    a.KmPerLiter,
		Expenses:      expenses,
	})
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Str("date", util.FormatDate(input.Date)).Msg("Failed to submit earnings")
		return nil, false, err
	}

	if created {
		s.publishEvent(workspaceID, websocket.DailyRecordCreated(record))
	} else {
		s.publishEvent(workspaceID, websocket.DailyRecordUpdated(record))
	}
	return record, created, nil
}

// UpdateRecord overwrites the activity of a record. Moving it onto a date that
// already has a record fails with ErrAlreadyExists.
func (s *DailyRecordService) UpdateRecord(workspaceID int32, id int32, date time.Time, input ActivityInput) (*domain.DailyRecord, error) {
	if date.IsZero() {
		return nil, domain.ErrInvalidDate
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.recordRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Date = util.DateOnly(date)
	updated.MinutesWorked = input.MinutesWorked
	updated.TripsUber = input.TripsUber
	updated.KmUber = input.KmUber
	updated.EarningsUber = input.EarningsUber
	updated.Trips99 = input.Trips99
	updated.Km99 = input.Km99
	updated.Earnings99 = input.Earnings99
	updated.FuelPrice = input.FuelPrice
	updated.KmPerLiter = input.KmPerLiter

	record, err := s.recordRepo.Update(&updated)
	if err != nil {
		return nil, err
	}

	s.publishEvent(workspaceID, websocket.DailyRecordUpdated(record))
	return record, nil
}

// DeleteRecord removes a record with its expenses and extra earnings
func (s *DailyRecordService) DeleteRecord(workspaceID int32, id int32) error {
	if err := s.recordRepo.Delete(workspaceID, id); err != nil {
		return err
	}
	s.publishEvent(workspaceID, websocket.DailyRecordDeleted(map[string]interface{}{"id": id}))
	return nil
}

// AddExpense attaches a manual expense to a record
func (s *DailyRecordService) AddExpense(workspaceID int32, recordID int32, input ExpenseInput) (*domain.Expense, error) {
	expense, err := input.toDomain()
	if err != nil {
		return nil, err
	}

	created, err := s.recordRepo.AddExpense(workspaceID, recordID, expense)
	if err != nil {
		return nil, err
	}

	s.publishEvent(workspaceID, websocket.ExpenseCreated(created))
	return created, nil
}

// DeleteExpense removes an expense from a record
func (s *DailyRecordService) DeleteExpense(workspaceID int32, recordID int32, expenseID int32) error {
	if err := s.recordRepo.DeleteExpense(workspaceID, recordID, expenseID); err != nil {
		return err
	}
	s.publishEvent(workspaceID, websocket.ExpenseDeleted(map[string]interface{}{"id": expenseID, "entradaDiariaId": recordID}))
	return nil
}

// AddExtraEarning attaches an off-platform earning to a record. Without a
// date it counts on the record's own date.
func (s *DailyRecordService) AddExtraEarning(workspaceID int32, recordID int32, input ExtraEarningInput) (*domain.ExtraEarning, error) {
	if err := requirePositive(input.Amount); err != nil {
		return nil, err
	}
	category, err := normalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}
	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}

	earning := &domain.ExtraEarning{
		Amount:      input.Amount,
		Category:    category,
		Description: description,
	}
	if input.Date != nil {
		earning.Date = util.DateOnly(*input.Date)
	}

	created, err := s.recordRepo.AddExtraEarning(workspaceID, recordID, earning)
	if err != nil {
		return nil, err
	}

	s.publishEvent(workspaceID, websocket.ExtraEarningCreated(created))
	return created, nil
}

// DeleteExtraEarning removes an extra earning from a record
func (s *DailyRecordService) DeleteExtraEarning(workspaceID int32, recordID int32, earningID int32) error {
	if err := s.recordRepo.DeleteExtraEarning(workspaceID, recordID, earningID); err != nil {
		return err
	}
	s.publishEvent(workspaceID, websocket.ExtraEarningDeleted(map[string]interface{}{"id": earningID, "entradaDiariaId": recordID}))
	return nil
}
