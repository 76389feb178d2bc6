package service

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/dafibh/drivelog/drivelog-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newDailyRecordService() (*DailyRecordService, *testutil.MockDailyRecordRepository, *testutil.MockEventPublisher) {
	repo := testutil.NewMockDailyRecordRepository()
	publisher := &testutil.MockEventPublisher{}
	svc := NewDailyRecordService(repo)
	svc.SetEventPublisher(publisher)
	return svc, repo, publisher
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSubmitEarnings_CreatesRecord(t *testing.T) {
	svc, _, publisher := newDailyRecordService()

	record, created, err := svc.SubmitEarnings(1, SubmitEarningsInput{
		Date: mustDate("2024-06-03"),
		ActivityInput: ActivityInput{
			MinutesWorked: 240,
			TripsUber:     5,
			KmUber:        d("60"),
			EarningsUber:  d("75"),
		},
		Expenses: []ExpenseInput{{Amount: d("20"), Category: " Almoço "}},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !created {
		t.Error("Expected a new record")
	}
	if len(record.Expenses) != 1 || record.Expenses[0].Category != "Almoço" {
		t.Errorf("Expected trimmed expense category, got %+v", record.Expenses)
	}
	if got := publisher.Types(); !reflect.DeepEqual(got, []string{"daily_record.created"}) {
		t.Errorf("Expected created event, got %v", got)
	}
}

func TestSubmitEarnings_AccumulatesSameDate(t *testing.T) {
	svc, repo, publisher := newDailyRecordService()
	date := mustDate("2024-06-03")

	first := SubmitEarningsInput{
		Date: date,
		ActivityInput: ActivityInput{
			MinutesWorked: 240, TripsUber: 5, KmUber: d("60"), EarningsUber: d("75"),
			FuelPrice: d("5.80"), KmPerLiter: d("11"),
		},
	}
	second := SubmitEarningsInput{
		Date: date,
		ActivityInput: ActivityInput{
			MinutesWorked: 240, TripsUber: 5, KmUber: d("60"), EarningsUber: d("75"),
			Trips99: 6, Km99: d("60"), Earnings99: d("80"),
			FuelPrice: d("6.00"),
		},
	}

	if _, _, err := svc.SubmitEarnings(1, first); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	record, created, err := svc.SubmitEarnings(1, second)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if created {
		t.Error("Expected the existing record to be reused")
	}
	if len(repo.Records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(repo.Records))
	}
	if record.MinutesWorked != 480 || record.TripsUber != 10 || record.Trips99 != 6 {
		t.Errorf("Expected accumulated counts, got %d min %d/%d trips", record.MinutesWorked, record.TripsUber, record.Trips99)
	}
	if !record.EarningsUber.Equal(d("150")) || !record.KmUber.Equal(d("120")) {
		t.Errorf("Expected accumulated uber totals, got %s / %s km", record.EarningsUber, record.KmUber)
	}
	if !record.FuelPrice.Equal(d("6.00")) {
		t.Errorf("Expected latest fuel price, got %s", record.FuelPrice)
	}
	if !record.KmPerLiter.Equal(d("11")) {
		t.Errorf("Expected unset consumption to keep the previous value, got %s", record.KmPerLiter)
	}
	if got := publisher.Types(); !reflect.DeepEqual(got, []string{"daily_record.created", "daily_record.updated"}) {
		t.Errorf("Unexpected events %v", got)
	}
}

func TestSubmitEarnings_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input SubmitEarningsInput
		want  error
	}{
		{
			name:  "missing date",
			input: SubmitEarningsInput{},
			want:  domain.ErrInvalidDate,
		},
		{
			name:  "negative minutes",
			input: SubmitEarningsInput{Date: mustDate("2024-06-03"), ActivityInput: ActivityInput{MinutesWorked: -1}},
			want:  domain.ErrNegativeValue,
		},
		{
			name:  "negative earnings",
			input: SubmitEarningsInput{Date: mustDate("2024-06-03"), ActivityInput: ActivityInput{Earnings99: d("-5")}},
			want:  domain.ErrNegativeValue,
		},
		{
			name: "zero expense",
			input: SubmitEarningsInput{
				Date:     mustDate("2024-06-03"),
				Expenses: []ExpenseInput{{Amount: decimal.Zero, Category: "Limpeza"}},
			},
			want: domain.ErrInvalidAmount,
		},
		{
			name: "expense without category",
			input: SubmitEarningsInput{
				Date:     mustDate("2024-06-03"),
				Expenses: []ExpenseInput{{Amount: d("10"), Category: "  "}},
			},
			want: domain.ErrCategoryRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, publisher := newDailyRecordService()
			_, _, err := svc.SubmitEarnings(1, tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			if len(repo.Records) != 0 {
				t.Error("Expected nothing to be stored")
			}
			if len(publisher.Events) != 0 {
				t.Error("Expected no events")
			}
		})
	}
}

func TestUpdateRecord(t *testing.T) {
	svc, repo, publisher := newDailyRecordService()
	repo.AddRecord(&domain.DailyRecord{ID: 1, WorkspaceID: 1, Date: mustDate("2024-06-03"), MinutesWorked: 100})
	repo.AddRecord(&domain.DailyRecord{ID: 2, WorkspaceID: 1, Date: mustDate("2024-06-04")})

	t.Run("overwrites activity", func(t *testing.T) {
		record, err := svc.UpdateRecord(1, 1, mustDate("2024-06-03"), ActivityInput{MinutesWorked: 300, Trips99: 4})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if record.MinutesWorked != 300 || record.Trips99 != 4 {
			t.Errorf("Expected overwritten values, got %+v", record)
		}
		if got := publisher.Types(); !reflect.DeepEqual(got, []string{"daily_record.updated"}) {
			t.Errorf("Unexpected events %v", got)
		}
	})

	t.Run("rejects a date taken by another record", func(t *testing.T) {
		_, err := svc.UpdateRecord(1, 1, mustDate("2024-06-04"), ActivityInput{})
		if !errors.Is(err, domain.ErrAlreadyExists) {
			t.Errorf("Expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("unknown record", func(t *testing.T) {
		_, err := svc.UpdateRecord(1, 99, mustDate("2024-06-05"), ActivityInput{})
		if !errors.Is(err, domain.ErrDailyRecordNotFound) {
			t.Errorf("Expected ErrDailyRecordNotFound, got %v", err)
		}
	})

	t.Run("other workspace", func(t *testing.T) {
		_, err := svc.UpdateRecord(2, 1, mustDate("2024-06-03"), ActivityInput{})
		if !errors.Is(err, domain.ErrDailyRecordNotFound) {
			t.Errorf("Expected ErrDailyRecordNotFound, got %v", err)
		}
	})
}

func TestDeleteRecord(t *testing.T) {
	svc, repo, publisher := newDailyRecordService()
	repo.AddRecord(&domain.DailyRecord{ID: 1, WorkspaceID: 1, Date: mustDate("2024-06-03")})

	if err := svc.DeleteRecord(1, 1); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(repo.Records) != 0 {
		t.Error("Expected record to be deleted")
	}
	if got := publisher.Types(); !reflect.DeepEqual(got, []string{"daily_record.deleted"}) {
		t.Errorf("Unexpected events %v", got)
	}

	if err := svc.DeleteRecord(1, 1); !errors.Is(err, domain.ErrDailyRecordNotFound) {
		t.Errorf("Expected ErrDailyRecordNotFound, got %v", err)
	}
}

func TestExpenses(t *testing.T) {
	svc, repo, publisher := newDailyRecordService()
	repo.AddRecord(&domain.DailyRecord{ID: 1, WorkspaceID: 1, Date: mustDate("2024-06-03")})

	expense, err := svc.AddExpense(1, 1, ExpenseInput{Amount: d("15"), Category: "Limpeza"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if expense.RecordID != 1 || !expense.Amount.Equal(d("15")) {
		t.Errorf("Unexpected expense %+v", expense)
	}

	if _, err := svc.AddExpense(1, 42, ExpenseInput{Amount: d("15"), Category: "Limpeza"}); !errors.Is(err, domain.ErrDailyRecordNotFound) {
		t.Errorf("Expected ErrDailyRecordNotFound, got %v", err)
	}

	long := make([]rune, domain.MaxCategoryLength+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := svc.AddExpense(1, 1, ExpenseInput{Amount: d("1"), Category: string(long)}); !errors.Is(err, domain.ErrCategoryTooLong) {
		t.Errorf("Expected ErrCategoryTooLong, got %v", err)
	}

	if err := svc.DeleteExpense(1, 1, expense.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := svc.DeleteExpense(1, 1, expense.ID); !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("Expected ErrExpenseNotFound, got %v", err)
	}

	if got := publisher.Types(); !reflect.DeepEqual(got, []string{"expense.created", "expense.deleted"}) {
		t.Errorf("Unexpected events %v", got)
	}
}

func TestExtraEarnings(t *testing.T) {
	svc, repo, publisher := newDailyRecordService()
	repo.AddRecord(&domain.DailyRecord{ID: 1, WorkspaceID: 1, Date: mustDate("2024-06-03")})

	t.Run("defaults to the record date", func(t *testing.T) {
		desc := "  corrida do aeroporto "
		earning, err := svc.AddExtraEarning(1, 1, ExtraEarningInput{Amount: d("50"), Category: "Corrida Particular", Description: &desc})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !earning.Date.Equal(mustDate("2024-06-03")) {
			t.Errorf("Expected record date, got %s", earning.Date)
		}
		if earning.Description == nil || *earning.Description != "corrida do aeroporto" {
			t.Errorf("Expected trimmed description, got %v", earning.Description)
		}
	})

	t.Run("keeps its own date", func(t *testing.T) {
		date := mustDate("2024-06-10")
		earning, err := svc.AddExtraEarning(1, 1, ExtraEarningInput{Date: &date, Amount: d("30"), Category: "Gorjeta"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !earning.Date.Equal(date) {
			t.Errorf("Expected %s, got %s", date, earning.Date)
		}
		if err := svc.DeleteExtraEarning(1, 1, earning.ID); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := svc.AddExtraEarning(1, 1, ExtraEarningInput{Amount: d("-1"), Category: "Gorjeta"})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("Expected ErrInvalidAmount, got %v", err)
		}
	})

	want := []string{"extra_earning.created", "extra_earning.created", "extra_earning.deleted"}
	if got := publisher.Types(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestListRecords(t *testing.T) {
	svc, repo, _ := newDailyRecordService()
	repo.AddRecord(&domain.DailyRecord{WorkspaceID: 1, Date: mustDate("2024-06-05")})
	repo.AddRecord(&domain.DailyRecord{WorkspaceID: 1, Date: mustDate("2024-06-01")})
	repo.AddRecord(&domain.DailyRecord{WorkspaceID: 2, Date: mustDate("2024-06-02")})

	start, end := mustDate("2024-06-01"), mustDate("2024-06-30")
	records, err := svc.ListRecords(1, &start, &end)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 2 || !records[0].Date.Equal(start) {
		t.Errorf("Expected 2 records in date order, got %d", len(records))
	}

	if _, err := svc.ListRecords(1, &end, &start); !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod, got %v", err)
	}
}
