package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/dafibh/drivelog/drivelog-backend/internal/middleware"
	"github.com/dafibh/drivelog/drivelog-backend/internal/service"
	"github.com/dafibh/drivelog/drivelog-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DailyRecordHandler handles daily record, expense and extra earning requests
type DailyRecordHandler struct {
	recordService *service.DailyRecordService
}

// NewDailyRecordHandler creates a new DailyRecordHandler
func NewDailyRecordHandler(recordService *service.DailyRecordService) *DailyRecordHandler {
	return &DailyRecordHandler{recordService: recordService}
}

// ActivityRequest holds the per-day activity fields. Money and distances are
// decimal strings, empty meaning zero.
type ActivityRequest struct {
	MinutesWorked int32  `json:"tempoTrabalhado"`
	TripsUber     int32  `json:"numeroCorridasUber"`
	KmUber        string `json:"kmRodadosUber"`
	EarningsUber  string `json:"ganhosUber"`
	Trips99       int32  `json:"numeroCorridas99"`
	Km99          string `json:"kmRodados99"`
	Earnings99    string `json:"ganhos99"`
	FuelPrice     string `json:"precoCombustivel"`
	KmPerLiter    string `json:"consumoKmL"`
}

// SubmitEarningsRequest represents one earnings form submission
type SubmitEarningsRequest struct {
	Date string `json:"data"`
	ActivityRequest
	Expenses []ExpenseRequest `json:"gastos"`
}

// UpdateRecordRequest represents the update record request body
type UpdateRecordRequest struct {
	Date string `json:"data"`
	ActivityRequest
}

// ExpenseRequest represents a manual expense
type ExpenseRequest struct {
	Amount   string `json:"valor"`
	Category string `json:"categoria"`
}

// ExtraEarningRequest represents an off-platform earning
type ExtraEarningRequest struct {
	Date        string  `json:"data,omitempty"`
	Amount      string  `json:"valor"`
	Category    string  `json:"categoria"`
	Description *string `json:"descricao,omitempty"`
}

// DailyRecordResponse represents a daily record in API responses
type DailyRecordResponse struct {
	ID            int32                  `json:"id"`
	Date          string                 `json:"data"`
	MinutesWorked int32                  `json:"tempoTrabalhado"`
	TripsUber     int32                  `json:"numeroCorridasUber"`
	KmUber        string                 `json:"kmRodadosUber"`
	EarningsUber  string                 `json:"ganhosUber"`
	Trips99       int32                  `json:"numeroCorridas99"`
	Km99          string                 `json:"kmRodados99"`
	Earnings99    string                 `json:"ganhos99"`
	FuelPrice     string                 `json:"precoCombustivel"`
	KmPerLiter    string                 `json:"consumoKmL"`
	Expenses      []ExpenseResponse      `json:"gastos"`
	ExtraEarnings []ExtraEarningResponse `json:"ganhosExtras"`
	CreatedAt     string                 `json:"createdAt"`
	UpdatedAt     string                 `json:"updatedAt"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID       int32  `json:"id"`
	RecordID int32  `json:"entradaDiariaId"`
	Amount   string `json:"valor"`
	Category string `json:"categoria"`
}

// ExtraEarningResponse represents an extra earning in API responses
type ExtraEarningResponse struct {
	ID          int32   `json:"id"`
	RecordID    int32   `json:"entradaDiariaId"`
	Date        *string `json:"data"`
	Amount      string  `json:"valor"`
	Category    string  `json:"categoria"`
	Description *string `json:"descricao,omitempty"`
}

func (r ActivityRequest) parse(p *decimalParser) service.ActivityInput {
	return service.ActivityInput{
		MinutesWorked: r.MinutesWorked,
		TripsUber:     r.TripsUber,
		KmUber:        p.optional("kmRodadosUber", r.KmUber),
		EarningsUber:  p.optional("ganhosUber", r.EarningsUber),
		Trips99:       r.Trips99,
		Km99:          p.optional("kmRodados99", r.Km99),
		Earnings99:    p.optional("ganhos99", r.Earnings99),
		FuelPrice:     p.optional("precoCombustivel", r.FuelPrice),
		KmPerLiter:    p.optional("consumoKmL", r.KmPerLiter),
	}
}

// ListRecords handles GET /api/v1/records
// @Summary List daily records
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param start query string false "Start date (YYYY-MM-DD)"
// @Param end query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} DailyRecordResponse
// @Failure 400 {object} ProblemDetails
// @Router /records [get]
func (h *DailyRecordHandler) ListRecords(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	start, err := parseOptionalDate(c.QueryParam("start"))
	if err != nil {
		return NewValidationError(c, "Invalid start date", []ValidationError{
			{Field: "start", Message: "Must be a valid date (YYYY-MM-DD)"},
		})
	}
	end, err := parseOptionalDate(c.QueryParam("end"))
	if err != nil {
		return NewValidationError(c, "Invalid end date", []ValidationError{
			{Field: "end", Message: "Must be a valid date (YYYY-MM-DD)"},
		})
	}

	records, err := h.recordService.ListRecords(workspaceID, start, end)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "end", Message: "End date must not be before start date"},
			})
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to list daily records")
		return NewInternalError(c, "Failed to list daily records")
	}

	response := make([]DailyRecordResponse, len(records))
	for i, record := range records {
		response[i] = toDailyRecordResponse(record)
	}
	return c.JSON(http.StatusOK, response)
}

// GetRecord handles GET /api/v1/records/:id where :id is a record ID or a
// YYYY-MM-DD date
// @Summary Get a daily record by ID or date
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID or date (YYYY-MM-DD)"
// @Success 200 {object} DailyRecordResponse
// @Failure 404 {object} ProblemDetails
// @Router /records/{id} [get]
func (h *DailyRecordHandler) GetRecord(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var (
		record *domain.DailyRecord
		err    error
	)
	key := c.Param("id")
	if id, idErr := parseID(key); idErr == nil {
		record, err = h.recordService.GetRecord(workspaceID, id)
	} else {
		date, dateErr := util.ParseDate(key)
		if dateErr != nil {
			return NewValidationError(c, "Invalid record ID or date", []ValidationError{
				{Field: "id", Message: "Must be a record ID or a date (YYYY-MM-DD)"},
			})
		}
		record, err = h.recordService.GetRecordByDate(workspaceID, date)
	}
	if err != nil {
		if errors.Is(err, domain.ErrDailyRecordNotFound) {
			return NewNotFoundError(c, "Daily record not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Str("key", key).Msg("Failed to get daily record")
		return NewInternalError(c, "Failed to get daily record")
	}

	return c.JSON(http.StatusOK, toDailyRecordResponse(record))
}

// SubmitEarnings handles POST /api/v1/records. A submission for a date that
// already has a record accumulates into it.
// @Summary Submit a day of earnings
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitEarningsRequest true "Earnings submission"
// @Success 201 {object} DailyRecordResponse "Record created"
// @Success 200 {object} DailyRecordResponse "Existing record accumulated"
// @Failure 400 {object} ProblemDetails
// @Router /records [post]
func (h *DailyRecordHandler) SubmitEarnings(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req SubmitEarningsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	date, err := util.ParseDate(req.Date)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "data", Message: "Must be a valid date (YYYY-MM-DD)"},
		})
	}

	var p decimalParser
	input := service.SubmitEarningsInput{
		Date:          date,
		ActivityInput: req.ActivityRequest.parse(&p),
		Expenses:      make([]service.ExpenseInput, len(req.Expenses)),
	}
	for i, e := range req.Expenses {
		input.Expenses[i] = service.ExpenseInput{
			Amount:   p.required("gastos.valor", e.Amount),
			Category: e.Category,
		}
	}
	if len(p.errs) > 0 {
		return NewValidationError(c, "Validation failed", p.errs)
	}

	record, created, err := h.recordService.SubmitEarnings(workspaceID, input)
	if err != nil {
		if fields := validationFor(err); fields != nil {
			return NewValidationError(c, "Validation failed", fields)
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to submit earnings")
		return NewInternalError(c, "Failed to submit earnings")
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("record_id", record.ID).Bool("created", created).Msg("Earnings submitted")

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, toDailyRecordResponse(record))
}

// UpdateRecord handles PUT /api/v1/records/:id
// @Summary Overwrite a daily record
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param request body UpdateRecordRequest true "Record activity"
// @Success 200 {object} DailyRecordResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /records/{id} [put]
func (h *DailyRecordHandler) UpdateRecord(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid record ID", nil)
	}

	var req UpdateRecordRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	date, err := util.ParseDate(req.Date)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "data", Message: "Must be a valid date (YYYY-MM-DD)"},
		})
	}

	var p decimalParser
	input := req.ActivityRequest.parse(&p)
	if len(p.errs) > 0 {
		return NewValidationError(c, "Validation failed", p.errs)
	}

	record, err := h.recordService.UpdateRecord(workspaceID, id, date, input)
	if err != nil {
		if errors.Is(err, domain.ErrDailyRecordNotFound) {
			return NewNotFoundError(c, "Daily record not found")
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			return NewConflictError(c, "Another record already exists for this date")
		}
		if fields := validationFor(err); fields != nil {
			return NewValidationError(c, "Validation failed", fields)
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("record_id", id).Msg("Failed to update daily record")
		return NewInternalError(c, "Failed to update daily record")
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("record_id", record.ID).Msg("Daily record updated")
	return c.JSON(http.StatusOK, toDailyRecordResponse(record))
}

// DeleteRecord handles DELETE /api/v1/records/:id
// @Summary Delete a daily record with its expenses and extra earnings
// @Tags records
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /records/{id} [delete]
func (h *DailyRecordHandler) DeleteRecord(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid record ID", nil)
	}

	if err := h.recordService.DeleteRecord(workspaceID, id); err != nil {
		if errors.Is(err, domain.ErrDailyRecordNotFound) {
			return NewNotFoundError(c, "Daily record not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("record_id", id).Msg("Failed to delete daily record")
		return NewInternalError(c, "Failed to delete daily record")
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("record_id", id).Msg("Daily record deleted")
	return c.NoContent(http.StatusNoContent)
}

// AddExpense handles POST /api/v1/records/:id/expenses
// @Summary Add an expense to a daily record
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param request body ExpenseRequest true "Expense"
// @Success 201 {object} ExpenseResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /records/{id}/expenses [post]
func (h *DailyRecordHandler) AddExpense(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	recordID, err := parseID(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid record ID", nil)
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var p decimalParser
	amount := p.required("valor", req.Amount)
	if len(p.errs) > 0 {
		return NewValidationError(c, "Validation failed", p.errs)
	}

	expense, err := h.recordService.AddExpense(workspaceID, recordID, service.ExpenseInput{Amount: amount, Category: req.Category})
	if err != nil {
		if errors.Is(err, domain.ErrDailyRecordNotFound) {
			return NewNotFoundError(c, "Daily record not found")
		}
		if fields := validationFor(err); fields != nil {
			return NewValidationError(c, "Validation failed", fields)
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("record_id", recordID).Msg("Failed to add expense")
		return NewInternalError(c, "Failed to add expense")
	}

	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// DeleteExpense handles DELETE /api/v1/records/:id/expenses/:expenseId
// @Summary Delete an expense
// @Tags records
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param expenseId path int true "Expense ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /records/{id}/expenses/{expenseId} [delete]
func (h *DailyRecordHandler) DeleteExpense(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	recordID, err := parseID(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid record ID", nil)
	}
	expenseID, err := parseID(c.Param("expenseId"))
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	if err := h.recordService.DeleteExpense(workspaceID, recordID, expenseID); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) || errors.Is(err, domain.ErrDailyRecordNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("expense_id", expenseID).Msg("Failed to delete expense")
		return NewInternalError(c, "Failed to delete expense")
	}

	return c.NoContent(http.StatusNoContent)
}

// AddExtraEarning handles POST /api/v1/records/:id/extra-earnings
// @Summary Add an off-platform earning to a daily record
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param request body ExtraEarningRequest true "Extra earning"
// @Success 201 {object} ExtraEarningResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /records/{id}/extra-earnings [post]
func (h *DailyRecordHandler) AddExtraEarning(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	recordID, err := parseID(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid record ID", nil)
	}

	var req ExtraEarningRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "data", Message: "Must be a valid date (YYYY-MM-DD)"},
		})
	}

	var p decimalParser
	amount := p.required("valor", req.Amount)
	if len(p.errs) > 0 {
		return NewValidationError(c, "Validation failed", p.errs)
	}

	earning, err := h.recordService.AddExtraEarning(workspaceID, recordID, service.ExtraEarningInput{
		Date:        date,
		Amount:      amount,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDailyRecordNotFound) {
			return NewNotFoundError(c, "Daily record not found")
		}
		if fields := validationFor(err); fields != nil {
			return NewValidationError(c, "Validation failed", fields)
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("record_id", recordID).Msg("Failed to add extra earning")
		return NewInternalError(c, "Failed to add extra earning")
	}

	return c.JSON(http.StatusCreated, toExtraEarningResponse(earning))
}

// DeleteExtraEarning handles DELETE /api/v1/records/:id/extra-earnings/:earningId
// @Summary Delete an extra earning
// @Tags records
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param earningId path int true "Extra earning ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /records/{id}/extra-earnings/{earningId} [delete]
func (h *DailyRecordHandler) DeleteExtraEarning(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	recordID, err := parseID(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid record ID", nil)
	}
	earningID, err := parseID(c.Param("earningId"))
	if err != nil {
		return NewValidationError(c, "Invalid extra earning ID", nil)
	}

	if err := h.recordService.DeleteExtraEarning(workspaceID, recordID, earningID); err != nil {
		if errors.Is(err, domain.ErrExtraEarningNotFound) || errors.Is(err, domain.ErrDailyRecordNotFound) {
			return NewNotFoundError(c, "Extra earning not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("earning_id", earningID).Msg("Failed to delete extra earning")
		return NewInternalError(c, "Failed to delete extra earning")
	}

	return c.NoContent(http.StatusNoContent)
}

func toDailyRecordResponse(record *domain.DailyRecord) DailyRecordResponse {
	resp := DailyRecordResponse{
		ID:            record.ID,
		Date:          util.FormatDate(record.Date),
		MinutesWorked: record.MinutesWorked,
		TripsUber:     record.TripsUber,
		KmUber:        decimalString(record.KmUber),
		EarningsUber:  decimalString(record.EarningsUber),
		Trips99:       record.Trips99,
		Km99:          decimalString(record.Km99),
		Earnings99:    decimalString(record.Earnings99),
		FuelPrice:     decimalString(record.FuelPrice),
		KmPerLiter:    decimalString(record.KmPerLiter),
		Expenses:      make([]ExpenseResponse, len(record.Expenses)),
		ExtraEarnings: make([]ExtraEarningResponse, len(record.ExtraEarnings)),
		CreatedAt:     record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     record.UpdatedAt.Format(time.RFC3339),
	}
	for i, e := range record.Expenses {
		resp.Expenses[i] = toExpenseResponse(e)
	}
	for i, e := range record.ExtraEarnings {
		resp.ExtraEarnings[i] = toExtraEarningResponse(e)
	}
	return resp
}

func toExpenseResponse(expense *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:       expense.ID,
		RecordID: expense.RecordID,
		Amount:   decimalString(expense.Amount),
		Category: expense.Category,
	}
}

func toExtraEarningResponse(earning *domain.ExtraEarning) ExtraEarningResponse {
	resp := ExtraEarningResponse{
		ID:          earning.ID,
		RecordID:    earning.RecordID,
		Amount:      decimalString(earning.Amount),
		Category:    earning.Category,
		Description: earning.Description,
	}
	if !earning.Date.IsZero() {
		resp.Date = formatOptionalDate(&earning.Date)
	}
	return resp
}
