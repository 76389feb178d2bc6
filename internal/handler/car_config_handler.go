package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/dafibh/drivelog/drivelog-backend/internal/middleware"
	"github.com/dafibh/drivelog/drivelog-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CarConfigHandler handles vehicle config requests
type CarConfigHandler struct {
	configService *service.CarConfigService
}

// NewCarConfigHandler creates a new CarConfigHandler
func NewCarConfigHandler(configService *service.CarConfigService) *CarConfigHandler {
	return &CarConfigHandler{configService: configService}
}

// CarConfigRequest represents the create and update vehicle request body
type CarConfigRequest struct {
	Model              string `json:"modelo"`
	WeeklyRent         string `json:"aluguelSemanal"`
	WeeklyKmLimit      string `json:"limiteKmSemanal"`
	ExcessKmFee        string `json:"valorKmExcedido"`
	KmPerLiter         string `json:"consumoKmL"`
	FuelPrice          string `json:"precoCombustivel"`
	ContractStart      string `json:"dataInicioContrato,omitempty"`
	ContractDays       int32  `json:"duracaoContratoDias"`
	WeeklyEarningsGoal string `json:"metaGanhosSemanal"`
	IsActive           *bool  `json:"isActive,omitempty"`
}

// CarConfigResponse represents a vehicle config in API responses
type CarConfigResponse struct {
	ID                 int32              `json:"id"`
	Model              string             `json:"modelo"`
	WeeklyRent         string             `json:"aluguelSemanal"`
	WeeklyKmLimit      string             `json:"limiteKmSemanal"`
	ExcessKmFee        string             `json:"valorKmExcedido"`
	KmPerLiter         string             `json:"consumoKmL"`
	FuelPrice          string             `json:"precoCombustivel"`
	ContractStart      *string            `json:"dataInicioContrato"`
	ContractDays       int32              `json:"duracaoContratoDias"`
	WeeklyEarningsGoal string             `json:"metaGanhosSemanal"`
	IsActive           bool               `json:"isActive"`
	Photo              *service.PhotoURLs `json:"foto"`
	CreatedAt          string             `json:"createdAt"`
	UpdatedAt          string             `json:"updatedAt"`
}

func (r CarConfigRequest) parse() (service.CarConfigInput, []ValidationError) {
	var p decimalParser
	input := service.CarConfigInput{
		Model:              r.Model,
		WeeklyRent:         p.optional("aluguelSemanal", r.WeeklyRent),
		WeeklyKmLimit:      p.optional("limiteKmSemanal", r.WeeklyKmLimit),
		ExcessKmFee:        p.optional("valorKmExcedido", r.ExcessKmFee),
		KmPerLiter:         p.optional("consumoKmL", r.KmPerLiter),
		FuelPrice:          p.optional("precoCombustivel", r.FuelPrice),
		ContractDays:       r.ContractDays,
		WeeklyEarningsGoal: p.optional("metaGanhosSemanal", r.WeeklyEarningsGoal),
		IsActive:           r.IsActive,
	}

	start, err := parseOptionalDate(r.ContractStart)
	if err != nil {
		p.errs = append(p.errs, ValidationError{Field: "dataInicioContrato", Message: "Must be a valid date (YYYY-MM-DD)"})
	}
	input.ContractStart = start
	return input, p.errs
}

// ListVehicles handles GET /api/v1/vehicles
// @Summary List the vehicle history
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CarConfigResponse
// @Router /vehicles [get]
func (h *CarConfigHandler) ListVehicles(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	configs, err := h.configService.ListVehicles(workspaceID)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to list vehicles")
		return NewInternalError(c, "Failed to list vehicles")
	}

	response := make([]CarConfigResponse, len(configs))
	for i, config := range configs {
		response[i] = h.toResponse(c, config)
	}
	return c.JSON(http.StatusOK, response)
}

// GetActiveVehicle handles GET /api/v1/vehicles/active
// @Summary Get the vehicle used for cost rollups
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CarConfigResponse
// @Failure 404 {object} ProblemDetails
// @Router /vehicles/active [get]
func (h *CarConfigHandler) GetActiveVehicle(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	config, err := h.configService.GetActiveVehicle(workspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveCarConfig) {
			return NewNotFoundError(c, "No active vehicle")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to get active vehicle")
		return NewInternalError(c, "Failed to get active vehicle")
	}

	return c.JSON(http.StatusOK, h.toResponse(c, config))
}

// CreateVehicle handles POST /api/v1/vehicles
// @Summary Create a vehicle config
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CarConfigRequest true "Vehicle and contract terms"
// @Success 201 {object} CarConfigResponse
// @Failure 400 {object} ProblemDetails
// @Router /vehicles [post]
func (h *CarConfigHandler) CreateVehicle(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req CarConfigRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, fields := req.parse()
	if len(fields) > 0 {
		return NewValidationError(c, "Validation failed", fields)
	}

	config, err := h.configService.CreateVehicle(workspaceID, input)
	if err != nil {
		if fields := validationFor(err); fields != nil {
			return NewValidationError(c, "Validation failed", fields)
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to create vehicle")
		return NewInternalError(c, "Failed to create vehicle")
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("car_config_id", config.ID).Str("model", config.Model).Msg("Vehicle created")
	return c.JSON(http.StatusCreated, h.toResponse(c, config))
}

// UpdateVehicle handles PUT /api/v1/vehicles/:id
// @Summary Update a vehicle config
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Param request body CarConfigRequest true "Vehicle and contract terms"
// @Success 200 {object} CarConfigResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /vehicles/{id} [put]
func (h *CarConfigHandler) UpdateVehicle(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid vehicle ID", nil)
	}

	var req CarConfigRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, fields := req.parse()
	if len(fields) > 0 {
		return NewValidationError(c, "Validation failed", fields)
	}

	config, err := h.configService.UpdateVehicle(workspaceID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrCarConfigNotFound) {
			return NewNotFoundError(c, "Vehicle not found")
		}
		if fields := validationFor(err); fields != nil {
			return NewValidationError(c, "Validation failed", fields)
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("car_config_id", id).Msg("Failed to update vehicle")
		return NewInternalError(c, "Failed to update vehicle")
	}

	return c.JSON(http.StatusOK, h.toResponse(c, config))
}

// ActivateVehicle handles POST /api/v1/vehicles/:id/activate
// @Summary Make a vehicle the active one
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Success 200 {object} CarConfigResponse
// @Failure 404 {object} ProblemDetails
// @Router /vehicles/{id}/activate [post]
func (h *CarConfigHandler) ActivateVehicle(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid vehicle ID", nil)
	}

	config, err := h.configService.ActivateVehicle(workspaceID, id)
	if err != nil {
		if errors.Is(err, domain.ErrCarConfigNotFound) {
			return NewNotFoundError(c, "Vehicle not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("car_config_id", id).Msg("Failed to activate vehicle")
		return NewInternalError(c, "Failed to activate vehicle")
	}

	return c.JSON(http.StatusOK, h.toResponse(c, config))
}

// DeleteVehicle handles DELETE /api/v1/vehicles/:id
// @Summary Delete a vehicle config and its photo
// @Tags vehicles
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /vehicles/{id} [delete]
func (h *CarConfigHandler) DeleteVehicle(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid vehicle ID", nil)
	}

	if err := h.configService.DeleteVehicle(c.Request().Context(), workspaceID, id); err != nil {
		if errors.Is(err, domain.ErrCarConfigNotFound) {
			return NewNotFoundError(c, "Vehicle not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("car_config_id", id).Msg("Failed to delete vehicle")
		return NewInternalError(c, "Failed to delete vehicle")
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("car_config_id", id).Msg("Vehicle deleted")
	return c.NoContent(http.StatusNoContent)
}

// UploadPhoto handles POST /api/v1/vehicles/:id/photo
// @Summary Upload a vehicle photo
// @Tags vehicles
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Param file formData file true "JPEG or PNG photo"
// @Success 200 {object} CarConfigResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /vehicles/{id}/photo [post]
func (h *CarConfigHandler) UploadPhoto(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid vehicle ID", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	config, err := h.configService.UploadPhoto(c.Request().Context(), workspaceID, id, data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPhotoStorageNotConfigured):
			return NewServiceUnavailableError(c, "Photo uploads are disabled (storage not configured)")
		case errors.Is(err, domain.ErrCarConfigNotFound):
			return NewNotFoundError(c, "Vehicle not found")
		case errors.Is(err, service.ErrPhotoTooLarge),
			errors.Is(err, service.ErrInvalidPhotoFormat),
			errors.Is(err, service.ErrPhotoTooSmall),
			errors.Is(err, service.ErrInvalidPhotoData):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: err.Error()},
			})
		default:
			log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("car_config_id", id).Msg("Failed to upload vehicle photo")
			return NewInternalError(c, "Failed to upload photo")
		}
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("car_config_id", id).Msg("Vehicle photo uploaded")
	return c.JSON(http.StatusOK, h.toResponse(c, config))
}

// DeletePhoto handles DELETE /api/v1/vehicles/:id/photo
// @Summary Remove a vehicle photo
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Success 200 {object} CarConfigResponse
// @Failure 404 {object} ProblemDetails
// @Router /vehicles/{id}/photo [delete]
func (h *CarConfigHandler) DeletePhoto(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid vehicle ID", nil)
	}

	config, err := h.configService.DeletePhoto(c.Request().Context(), workspaceID, id)
	if err != nil {
		if errors.Is(err, domain.ErrCarConfigNotFound) {
			return NewNotFoundError(c, "Vehicle not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("car_config_id", id).Msg("Failed to delete vehicle photo")
		return NewInternalError(c, "Failed to delete photo")
	}

	return c.JSON(http.StatusOK, h.toResponse(c, config))
}

// toResponse renders a config with signed photo URLs. A signing failure only
// drops the photo from the response.
func (h *CarConfigHandler) toResponse(c echo.Context, config *domain.CarConfig) CarConfigResponse {
	resp := CarConfigResponse{
		ID:                 config.ID,
		Model:              config.Model,
		WeeklyRent:         decimalString(config.WeeklyRent),
		WeeklyKmLimit:      decimalString(config.WeeklyKmLimit),
		ExcessKmFee:        decimalString(config.ExcessKmFee),
		KmPerLiter:         decimalString(config.KmPerLiter),
		FuelPrice:          decimalString(config.FuelPrice),
		ContractStart:      formatOptionalDate(config.ContractStart),
		ContractDays:       config.ContractDays,
		WeeklyEarningsGoal: decimalString(config.WeeklyEarningsGoal),
		IsActive:           config.IsActive,
		CreatedAt:          config.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          config.UpdatedAt.Format(time.RFC3339),
	}

	urls, err := h.configService.PhotoURLs(c.Request().Context(), config)
	if err != nil {
		log.Warn().Err(err).Int32("car_config_id", config.ID).Msg("Failed to sign vehicle photo URLs")
		return resp
	}
	resp.Photo = urls
	return resp
}
