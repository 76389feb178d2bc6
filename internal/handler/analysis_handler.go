package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/drivelog/drivelog-backend/internal/analysis"
	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/dafibh/drivelog/drivelog-backend/internal/middleware"
	"github.com/dafibh/drivelog/drivelog-backend/internal/service"
	"github.com/dafibh/drivelog/drivelog-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AnalysisHandler serves the derived profitability analyses
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// PeriodResponse is the resolved date window of an analysis
type PeriodResponse struct {
	Kind  string `json:"tipo"`
	Start string `json:"inicio"`
	End   string `json:"fim"`
}

// AnalysisResponse represents a day, week or month analysis. Money, distances
// and ratios are decimal strings with two places.
type AnalysisResponse struct {
	Period PeriodResponse `json:"periodo"`

	// Date is set on day analyses only
	Date string `json:"data,omitempty"`

	GrossEarnings string `json:"ganhosBrutos"`
	EarningsUber  string `json:"ganhosUber"`
	Earnings99    string `json:"ganhos99"`
	ExtraEarnings string `json:"ganhosExtras"`

	TotalExpenses    string `json:"gastosTotal"`
	RecordedExpenses string `json:"gastosRegistrados"`
	FuelCost         string `json:"custoCombustivel"`
	RentCost         string `json:"aluguel"`
	ExcessKmCost     string `json:"custoKmExcedido"`
	ExcessKm         string `json:"kmExcedidos"`
	NetProfit        string `json:"lucroLiquido"`

	TotalKm       string `json:"kmTotais"`
	KmUber        string `json:"kmRodadosUber"`
	Km99          string `json:"kmRodados99"`
	MinutesWorked int32  `json:"tempoTrabalhado"`
	Trips         int32  `json:"numCorridas"`
	TripsUber     int32  `json:"numeroCorridasUber"`
	Trips99       int32  `json:"numeroCorridas99"`
	DaysWorked    int    `json:"diasTrabalhados"`

	ProfitPerHour       string `json:"ganhoPorHora"`
	ProfitPerMinute     string `json:"ganhoPorMinuto"`
	RevenuePerHour      string `json:"receitaPorHora"`
	CostPerHour         string `json:"custoPorHora"`
	ProfitPerKm         string `json:"lucroPorKm"`
	RevenuePerKm        string `json:"receitaPorKm"`
	CostPerKm           string `json:"custoPorKm"`
	ProfitPerTrip       string `json:"lucroPorCorrida"`
	RevenuePerTrip      string `json:"receitaPorCorrida"`
	CostPerTrip         string `json:"custoPorCorrida"`
	EarningsPerHourUber string `json:"ganhoPorHoraUber"`
	EarningsPerHour99   string `json:"ganhoPorHora99"`

	Platforms          []PlatformResponse `json:"plataformas"`
	ExpensesByCategory map[string]string  `json:"expensesByCategory"`
	EarningsByCategory map[string]string  `json:"earningsByCategory"`

	// Mileage against the contract allowance, zero limit and no progress
	// without an active vehicle cap
	LimitKm     string `json:"limiteKm"`
	RemainingKm string `json:"kmRestantes,omitempty"`
	MileagePct  string `json:"progressoKm,omitempty"`

	Days []DayResponse `json:"dias,omitempty"`
	Goal *GoalResponse `json:"meta,omitempty"`
}

// PlatformResponse is one platform's share of an analysis
type PlatformResponse struct {
	Platform        string `json:"plataforma"`
	Trips           int32  `json:"corridas"`
	Km              string `json:"km"`
	Earnings        string `json:"ganhos"`
	EarningsPerHour string `json:"ganhoPorHora"`
}

// DayResponse is one day of a period's chart series
type DayResponse struct {
	Date     string            `json:"data"`
	Earnings map[string]string `json:"ganhos"`
	Extras   string            `json:"ganhosExtras"`
	Expenses string            `json:"gastos"`
	Total    string            `json:"total"`
}

// GoalResponse tracks gross earnings against the vehicle's goal
type GoalResponse struct {
	Goal      string `json:"meta"`
	Achieved  bool   `json:"atingido"`
	Remaining string `json:"restante"`
	Percent   string `json:"progresso"`
}

// DayAnalysisResponse wraps a day analysis, null when nothing was recorded
type DayAnalysisResponse struct {
	Analysis *AnalysisResponse `json:"analysis"`
}

// CategoryAmountResponse is one category total
type CategoryAmountResponse struct {
	Category string `json:"categoria"`
	Amount   string `json:"valor"`
}

// CategoryBreakdownResponse lists a period's categories, largest first
type CategoryBreakdownResponse struct {
	Period   PeriodResponse           `json:"periodo"`
	Expenses []CategoryAmountResponse `json:"gastos"`
	Earnings []CategoryAmountResponse `json:"ganhosExtras"`
}

// DefaultCategoriesResponse lists the categories offered by the entry forms
type DefaultCategoriesResponse struct {
	Expenses []string `json:"gastos"`
	Earnings []string `json:"ganhosExtras"`
}

// GetDay handles GET /api/v1/analysis/day
// @Summary Analyze a single day
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} DayAnalysisResponse
// @Failure 400 {object} ProblemDetails
// @Router /analysis/day [get]
func (h *AnalysisHandler) GetDay(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	date, err := dateOrToday(c.QueryParam("date"))
	if err != nil {
		return invalidDateQuery(c)
	}

	a, err := h.analysisService.AnalyzeDay(workspaceID, date)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Str("date", util.FormatDate(date)).Msg("Failed to analyze day")
		return NewInternalError(c, "Failed to analyze day")
	}

	response := DayAnalysisResponse{}
	if a != nil {
		r := toAnalysisResponse(a)
		response.Analysis = &r
	}
	return c.JSON(http.StatusOK, response)
}

// GetWeek handles GET /api/v1/analysis/week
// @Summary Analyze the Monday to Sunday week containing a date
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Param date query string false "Any date of the week (YYYY-MM-DD), defaults to today"
// @Success 200 {object} AnalysisResponse
// @Failure 400 {object} ProblemDetails
// @Router /analysis/week [get]
func (h *AnalysisHandler) GetWeek(c echo.Context) error {
	return h.period(c, domain.PeriodWeek)
}

// GetMonth handles GET /api/v1/analysis/month
// @Summary Analyze the calendar month containing a date
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Param date query string false "Any date of the month (YYYY-MM-DD), defaults to today"
// @Success 200 {object} AnalysisResponse
// @Failure 400 {object} ProblemDetails
// @Router /analysis/month [get]
func (h *AnalysisHandler) GetMonth(c echo.Context) error {
	return h.period(c, domain.PeriodMonth)
}

func (h *AnalysisHandler) period(c echo.Context, kind domain.PeriodKind) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	anchor, err := dateOrToday(c.QueryParam("date"))
	if err != nil {
		return invalidDateQuery(c)
	}

	a, err := h.analysisService.AnalyzePeriod(workspaceID, kind, anchor)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Str("period", string(kind)).Msg("Failed to analyze period")
		return NewInternalError(c, "Failed to analyze period")
	}

	return c.JSON(http.StatusOK, toAnalysisResponse(a))
}

// GetCategories handles GET /api/v1/analysis/categories
// @Summary Expense and extra earning categories of a week or month
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Param period query string false "week or month" default(week)
// @Param date query string false "Any date of the period (YYYY-MM-DD), defaults to today"
// @Success 200 {object} CategoryBreakdownResponse
// @Failure 400 {object} ProblemDetails
// @Router /analysis/categories [get]
func (h *AnalysisHandler) GetCategories(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	kind := domain.PeriodKind(c.QueryParam("period"))
	if kind == "" {
		kind = domain.PeriodWeek
	}

	anchor, err := dateOrToday(c.QueryParam("date"))
	if err != nil {
		return invalidDateQuery(c)
	}

	breakdown, err := h.analysisService.Categories(workspaceID, kind, anchor)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "period", Message: "Must be one of: week, month"},
			})
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to build category breakdown")
		return NewInternalError(c, "Failed to build category breakdown")
	}

	return c.JSON(http.StatusOK, CategoryBreakdownResponse{
		Period:   toPeriodResponse(breakdown.Period),
		Expenses: toCategoryAmounts(breakdown.Expenses),
		Earnings: toCategoryAmounts(breakdown.Earnings),
	})
}

// GetDefaultCategories handles GET /api/v1/categories
// @Summary Default expense and extra earning categories
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DefaultCategoriesResponse
// @Router /categories [get]
func (h *AnalysisHandler) GetDefaultCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, DefaultCategoriesResponse{
		Expenses: domain.DefaultExpenseCategories,
		Earnings: domain.DefaultEarningCategories,
	})
}

func invalidDateQuery(c echo.Context) error {
	return NewValidationError(c, "Invalid date", []ValidationError{
		{Field: "date", Message: "Must be a valid date (YYYY-MM-DD)"},
	})
}

func toPeriodResponse(p domain.Period) PeriodResponse {
	return PeriodResponse{
		Kind:  string(p.Kind),
		Start: util.FormatDate(p.Start),
		End:   util.FormatDate(p.End),
	}
}

func toAnalysisResponse(a *domain.PerformanceAnalysis) AnalysisResponse {
	resp := AnalysisResponse{
		Period: toPeriodResponse(a.Period),

		GrossEarnings: decimalString(a.GrossEarnings),
		EarningsUber:  decimalString(a.EarningsUber),
		Earnings99:    decimalString(a.Earnings99),
		ExtraEarnings: decimalString(a.ExtraEarnings),

		TotalExpenses:    decimalString(a.TotalExpenses),
		RecordedExpenses: decimalString(a.RecordedExpenses),
		FuelCost:         decimalString(a.FuelCost),
		RentCost:         decimalString(a.RentCost),
		ExcessKmCost:     decimalString(a.ExcessKmCost),
		ExcessKm:         decimalString(a.ExcessKm),
		NetProfit:        decimalString(a.NetProfit),

		TotalKm:       decimalString(a.TotalKm),
		KmUber:        decimalString(a.KmUber),
		Km99:          decimalString(a.Km99),
		MinutesWorked: a.MinutesWorked,
		Trips:         a.Trips,
		TripsUber:     a.TripsUber,
		Trips99:       a.Trips99,
		DaysWorked:    a.DaysWorked,

		ProfitPerHour:   decimalString(a.ProfitPerHour),
		ProfitPerMinute: decimalString(a.ProfitPerMinute),
		RevenuePerHour:  decimalString(a.RevenuePerHour),
		CostPerHour:     decimalString(a.CostPerHour),
		ProfitPerKm:     decimalString(a.ProfitPerKm),
		RevenuePerKm:    decimalString(a.RevenuePerKm),
		CostPerKm:       decimalString(a.CostPerKm),
		ProfitPerTrip:   decimalString(a.ProfitPerTrip),
		RevenuePerTrip:  decimalString(a.RevenuePerTrip),
		CostPerTrip:     decimalString(a.CostPerTrip),

		Platforms:          make([]PlatformResponse, len(a.Platforms)),
		ExpensesByCategory: decimalMap(a.ExpensesByCategory),
		EarningsByCategory: decimalMap(a.EarningsByCategory),

		EarningsPerHourUber: decimalString(decimal.Zero),
		EarningsPerHour99:   decimalString(decimal.Zero),
		LimitKm:             decimalString(decimal.Zero),
	}
	if a.Period.Kind == domain.PeriodDay {
		resp.Date = util.FormatDate(a.Period.Start)
	}

	for i, p := range a.Platforms {
		switch p.Platform {
		case domain.PlatformUber:
			resp.EarningsPerHourUber = decimalString(p.EarningsPerHour)
		case domain.Platform99:
			resp.EarningsPerHour99 = decimalString(p.EarningsPerHour)
		}
		resp.Platforms[i] = PlatformResponse{
			Platform:        string(p.Platform),
			Trips:           p.Trips,
			Km:              decimalString(p.Km),
			Earnings:        decimalString(p.Earnings),
			EarningsPerHour: decimalString(p.EarningsPerHour),
		}
	}

	for _, d := range a.Days {
		earnings := make(map[string]string, len(d.Earnings))
		for platform, amount := range d.Earnings {
			earnings[string(platform)] = decimalString(amount)
		}
		resp.Days = append(resp.Days, DayResponse{
			Date:     util.FormatDate(d.Date),
			Earnings: earnings,
			Extras:   decimalString(d.Extras),
			Expenses: decimalString(d.Expenses),
			Total:    decimalString(d.Total),
		})
	}

	if a.Goal != nil {
		resp.Goal = &GoalResponse{
			Goal:      decimalString(a.Goal.Goal),
			Achieved:  a.Goal.Achieved,
			Remaining: decimalString(a.Goal.Remaining),
			Percent:   decimalString(a.Goal.Percent),
		}
	}
	if a.Mileage != nil {
		resp.LimitKm = decimalString(a.Mileage.LimitKm)
		resp.RemainingKm = decimalString(a.Mileage.RemainingKm)
		resp.MileagePct = decimalString(a.Mileage.Percent)
	}
	return resp
}

func decimalMap(m map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = decimalString(v)
	}
	return out
}

func toCategoryAmounts(items []analysis.CategoryAmount) []CategoryAmountResponse {
	out := make([]CategoryAmountResponse, len(items))
	for i, item := range items {
		out[i] = CategoryAmountResponse{Category: item.Category, Amount: decimalString(item.Amount)}
	}
	return out
}
