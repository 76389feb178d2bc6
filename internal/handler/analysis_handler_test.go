package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dafibh/drivelog/drivelog-backend/internal/analysis"
	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/dafibh/drivelog/drivelog-backend/internal/service"
	"github.com/dafibh/drivelog/drivelog-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newAnalysisHandler() (*AnalysisHandler, *testutil.MockDailyRecordRepository, *testutil.MockCarConfigRepository) {
	recordRepo := testutil.NewMockDailyRecordRepository()
	configRepo := testutil.NewMockCarConfigRepository()
	svc := service.NewAnalysisService(recordRepo, configRepo, analysis.DefaultPolicy())
	return NewAnalysisHandler(svc), recordRepo, configRepo
}

// seedWednesday stores 2025-01-15: 200 from Uber over 100 km at 10 km/l and
// 6.00 per liter, plus a 30.00 lunch
func seedWednesday(repo *testutil.MockDailyRecordRepository) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	repo.AddRecord(&domain.DailyRecord{
		WorkspaceID:   1,
		Date:          date,
		MinutesWorked: 240,
		TripsUber:     8,
		KmUber:        decimal.NewFromInt(100),
		EarningsUber:  decimal.NewFromInt(200),
		FuelPrice:     decimal.NewFromInt(6),
		KmPerLiter:    decimal.NewFromInt(10),
		Expenses: []*domain.Expense{
			{ID: 1, RecordID: 1, Amount: decimal.NewFromInt(30), Category: domain.CategoryLunch},
		},
	})
}

func TestGetDay_NothingRecorded(t *testing.T) {
	handler, _, _ := newAnalysisHandler()

	c, rec := newWorkspaceContext(http.MethodGet, "/api/v1/analysis/day?date=2025-01-15", "")
	if err := handler.GetDay(c); err != nil {
		t.Fatalf("GetDay() returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if body := rec.Body.String(); body != "{\"analysis\":null}\n" {
		t.Errorf("Expected null analysis, got %s", body)
	}
}

func TestGetDay_WithRecord(t *testing.T) {
	handler, repo, _ := newAnalysisHandler()
	seedWednesday(repo)

	c, rec := newWorkspaceContext(http.MethodGet, "/api/v1/analysis/day?date=2025-01-15", "")
	if err := handler.GetDay(c); err != nil {
		t.Fatalf("GetDay() returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp DayAnalysisResponse
	decodeBody(t, rec, &resp)
	if resp.Analysis == nil {
		t.Fatal("Expected an analysis")
	}
	if resp.Analysis.Period.Kind != "day" || resp.Analysis.Date != "2025-01-15" {
		t.Errorf("Expected day 2025-01-15, got %+v %s", resp.Analysis.Period, resp.Analysis.Date)
	}
	if resp.Analysis.GrossEarnings != "200.00" {
		t.Errorf("Expected gross 200.00, got %s", resp.Analysis.GrossEarnings)
	}
	if resp.Analysis.FuelCost != "60.00" {
		t.Errorf("Expected fuel 60.00, got %s", resp.Analysis.FuelCost)
	}
}

func TestGetWeek_Totals(t *testing.T) {
	handler, repo, _ := newAnalysisHandler()
	seedWednesday(repo)

	c, rec := newWorkspaceContext(http.MethodGet, "/api/v1/analysis/week?date=2025-01-19", "")
	if err := handler.GetWeek(c); err != nil {
		t.Fatalf("GetWeek() returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp AnalysisResponse
	decodeBody(t, rec, &resp)
	if resp.Period.Start != "2025-01-13" || resp.Period.End != "2025-01-19" {
		t.Errorf("Expected Monday to Sunday window, got %s..%s", resp.Period.Start, resp.Period.End)
	}
	if resp.GrossEarnings != "200.00" {
		t.Errorf("Expected gross 200.00, got %s", resp.GrossEarnings)
	}
	if resp.TotalExpenses != "90.00" {
		t.Errorf("Expected expenses 90.00, got %s", resp.TotalExpenses)
	}
	if resp.NetProfit != "110.00" {
		t.Errorf("Expected net 110.00, got %s", resp.NetProfit)
	}
	if resp.ProfitPerHour != "27.50" {
		t.Errorf("Expected 27.50 per hour, got %s", resp.ProfitPerHour)
	}
	if resp.DaysWorked != 1 {
		t.Errorf("Expected 1 day worked, got %d", resp.DaysWorked)
	}
	if len(resp.Days) != 7 {
		t.Errorf("Expected 7 chart days, got %d", len(resp.Days))
	}
	if resp.Goal != nil || resp.RemainingKm != "" || resp.LimitKm != "0.00" {
		t.Error("Expected no goal or mileage without a vehicle")
	}
}

func TestGetWeek_FieldNames(t *testing.T) {
	handler, repo, configRepo := newAnalysisHandler()
	seedWednesday(repo)
	configRepo.AddConfig(&domain.CarConfig{
		WorkspaceID:        1,
		Model:              "Onix",
		WeeklyKmLimit:      decimal.NewFromInt(1000),
		WeeklyEarningsGoal: decimal.NewFromInt(1500),
		IsActive:           true,
	})

	c, rec := newWorkspaceContext(http.MethodGet, "/api/v1/analysis/week?date=2025-01-15", "")
	if err := handler.GetWeek(c); err != nil {
		t.Fatalf("GetWeek() returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	for _, key := range []string{
		"ganhosBrutos", "gastosTotal", "lucroLiquido", "custoCombustivel", "aluguel",
		"custoKmExcedido", "kmExcedidos", "limiteKm", "kmRestantes", "tempoTrabalhado",
		"numCorridas", "ganhoPorHora", "lucroPorKm", "lucroPorCorrida", "receitaPorCorrida",
		"custoPorCorrida", "ganhoPorHoraUber", "ganhoPorHora99", "expensesByCategory",
		"earningsByCategory", "plataformas", "diasTrabalhados", "dias", "meta",
	} {
		if _, ok := body[key]; !ok {
			t.Errorf("Expected key %q in analysis", key)
		}
	}
	for _, key := range []string{"dataInicio", "dataFim", "controleKm", "data"} {
		if _, ok := body[key]; ok {
			t.Errorf("Unexpected key %q in week analysis", key)
		}
	}

	period, ok := body["periodo"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected periodo object, got %v", body["periodo"])
	}
	if period["tipo"] != "week" || period["inicio"] != "2025-01-13" || period["fim"] != "2025-01-19" {
		t.Errorf("Unexpected periodo %v", period)
	}
	if body["limiteKm"] != "1000.00" || body["kmRestantes"] != "900.00" {
		t.Errorf("Unexpected mileage %v / %v", body["limiteKm"], body["kmRestantes"])
	}
	if body["ganhoPorHoraUber"] != "50.00" {
		t.Errorf("Expected 50.00 per hour on Uber, got %v", body["ganhoPorHoraUber"])
	}
}

func TestGetMonth_Window(t *testing.T) {
	handler, repo, _ := newAnalysisHandler()
	seedWednesday(repo)

	c, rec := newWorkspaceContext(http.MethodGet, "/api/v1/analysis/month?date=2025-01-02", "")
	if err := handler.GetMonth(c); err != nil {
		t.Fatalf("GetMonth() returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp AnalysisResponse
	decodeBody(t, rec, &resp)
	if resp.Period.Kind != "month" || resp.Period.Start != "2025-01-01" || resp.Period.End != "2025-01-31" {
		t.Errorf("Unexpected window %+v", resp.Period)
	}
	if resp.GrossEarnings != "200.00" {
		t.Errorf("Expected gross 200.00, got %s", resp.GrossEarnings)
	}
}

func TestAnalysis_InvalidDate(t *testing.T) {
	handler, _, _ := newAnalysisHandler()

	c, rec := newWorkspaceContext(http.MethodGet, "/api/v1/analysis/week?date=next-week", "")
	if err := handler.GetWeek(c); err != nil {
		t.Fatalf("GetWeek() returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}

	var problem ProblemDetails
	decodeBody(t, rec, &problem)
	if len(problem.Errors) != 1 || problem.Errors[0].Field != "date" {
		t.Errorf("Expected a date field error, got %+v", problem.Errors)
	}
}

func TestAnalysis_LoadFailure(t *testing.T) {
	handler, repo, _ := newAnalysisHandler()
	repo.GetAllErr = errors.New("connection reset")

	c, rec := newWorkspaceContext(http.MethodGet, "/api/v1/analysis/week", "")
	if err := handler.GetWeek(c); err != nil {
		t.Fatalf("GetWeek() returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}

func TestGetCategories(t *testing.T) {
	handler, repo, _ := newAnalysisHandler()
	seedWednesday(repo)

	c, rec := newWorkspaceContext(http.MethodGet, "/api/v1/analysis/categories?date=2025-01-15", "")
	if err := handler.GetCategories(c); err != nil {
		t.Fatalf("GetCategories() returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp CategoryBreakdownResponse
	decodeBody(t, rec, &resp)
	if resp.Period.Kind != "week" {
		t.Errorf("Expected week by default, got %s", resp.Period.Kind)
	}
	if len(resp.Expenses) != 2 {
		t.Fatalf("Expected fuel and lunch categories, got %+v", resp.Expenses)
	}
	if resp.Expenses[0].Category != domain.CategoryFuel || resp.Expenses[0].Amount != "60.00" {
		t.Errorf("Expected fuel first, got %+v", resp.Expenses[0])
	}
	if len(resp.Earnings) != 0 {
		t.Errorf("Expected no extra earnings, got %+v", resp.Earnings)
	}
}

func TestGetCategories_InvalidPeriod(t *testing.T) {
	handler, _, _ := newAnalysisHandler()

	for _, period := range []string{"day", "year"} {
		c, rec := newWorkspaceContext(http.MethodGet, "/api/v1/analysis/categories?period="+period, "")
		if err := handler.GetCategories(c); err != nil {
			t.Fatalf("GetCategories() returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status %d, got %d", period, http.StatusBadRequest, rec.Code)
		}
	}
}

func TestGetDefaultCategories(t *testing.T) {
	handler, _, _ := newAnalysisHandler()

	c, rec := newWorkspaceContext(http.MethodGet, "/api/v1/categories", "")
	if err := handler.GetDefaultCategories(c); err != nil {
		t.Fatalf("GetDefaultCategories() returned error: %v", err)
	}

	var resp DefaultCategoriesResponse
	decodeBody(t, rec, &resp)
	if len(resp.Expenses) != len(domain.DefaultExpenseCategories) {
		t.Errorf("Expected %d expense categories, got %d", len(domain.DefaultExpenseCategories), len(resp.Expenses))
	}
	if len(resp.Earnings) != len(domain.DefaultEarningCategories) {
		t.Errorf("Expected %d earning categories, got %d", len(domain.DefaultEarningCategories), len(resp.Earnings))
	}
}
