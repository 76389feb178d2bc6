package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/dafibh/drivelog/drivelog-backend/internal/util"
	"github.com/dafibh/drivelog/drivelog-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CarConfigService manages the workspace's vehicles and rental contracts
type CarConfigService struct {
	configRepo     domain.CarConfigRepository
	photos         *PhotoService
	eventPublisher websocket.EventPublisher
}

// NewCarConfigService creates a new CarConfigService. photos may be nil when
// photo storage is not configured.
func NewCarConfigService(configRepo domain.CarConfigRepository, photos *PhotoService) *CarConfigService {
	return &CarConfigService{configRepo: configRepo, photos: photos, eventPublisher: &websocket.NoOpPublisher{}}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *CarConfigService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = websocket.OrNoOp(publisher)
}

func (s *CarConfigService) publishEvent(workspaceID int32, event websocket.Event) {
	s.eventPublisher.Publish(workspaceID, event)
}

// CarConfigInput holds the vehicle and contract terms
type CarConfigInput struct {
	Model              string
	WeeklyRent         decimal.Decimal
	WeeklyKmLimit      decimal.Decimal
	ExcessKmFee        decimal.Decimal
	KmPerLiter         decimal.Decimal
	FuelPrice          decimal.Decimal
	ContractStart      *time.Time
	ContractDays       int32
	WeeklyEarningsGoal decimal.Decimal
	// Nil activates the vehicle only when the workspace has no active one
	IsActive *bool
}

func (in CarConfigInput) apply(config *domain.CarConfig) error {
	model := strings.TrimSpace(in.Model)
	if model == "" {
		return domain.ErrModelRequired
	}
	if utf8.RuneCountInString(model) > domain.MaxCarModelLength {
		return domain.ErrModelTooLong
	}
	if err := requireNonNegative(in.WeeklyRent, in.WeeklyKmLimit, in.ExcessKmFee, in.KmPerLiter, in.FuelPrice, in.WeeklyEarningsGoal); err != nil {
		return err
	}
	if in.ContractDays < 0 {
		return domain.ErrNegativeValue
	}

	config.Model = model
	config.WeeklyRent = in.WeeklyRent
	config.WeeklyKmLimit = in.WeeklyKmLimit
	config.ExcessKmFee = in.ExcessKmFee
	config.KmPerLiter = in.KmPerLiter
	config.FuelPrice = in.FuelPrice
	config.ContractDays = in.ContractDays
	config.WeeklyEarningsGoal = in.WeeklyEarningsGoal
	config.ContractStart = nil
	if in.ContractStart != nil {
		start := util.DateOnly(*in.ContractStart)
		config.ContractStart = &start
	}
	return nil
}

// ListVehicles returns the vehicle history, active vehicle first
func (s *CarConfigService) ListVehicles(workspaceID int32) ([]*domain.CarConfig, error) {
	return s.configRepo.GetAll(workspaceID)
}

// GetVehicle retrieves a vehicle by ID
func (s *CarConfigService) GetVehicle(workspaceID int32, id int32) (*domain.CarConfig, error) {
	return s.configRepo.GetByID(workspaceID, id)
}

// GetActiveVehicle returns the vehicle used for cost rollups
func (s *CarConfigService) GetActiveVehicle(workspaceID int32) (*domain.CarConfig, error) {
	return s.configRepo.GetActive(workspaceID)
}

// CreateVehicle stores a new vehicle config
func (s *CarConfigService) CreateVehicle(workspaceID int32, input CarConfigInput) (*domain.CarConfig, error) {
	config := &domain.CarConfig{WorkspaceID: workspaceID}
	if err := input.apply(config); err != nil {
		return nil, err
	}

	if input.IsActive != nil {
		config.IsActive = *input.IsActive
	} else {
		_, err := s.configRepo.GetActive(workspaceID)
		switch {
		case errors.Is(err, domain.ErrNoActiveCarConfig):
			config.IsActive = true
		case err != nil:
			return nil, err
		}
	}

	created, err := s.configRepo.Create(config)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to create car config")
		return nil, err
	}

	s.publishEvent(workspaceID, websocket.CarConfigCreated(created))
	return created, nil
}

// UpdateVehicle overwrites the contract terms. Activation and photo are
// changed through their own operations.
func (s *CarConfigService) UpdateVehicle(workspaceID int32, id int32, input CarConfigInput) (*domain.CarConfig, error) {
	existing, err := s.configRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if err := input.apply(&updated); err != nil {
		return nil, err
	}

	config, err := s.configRepo.Update(&updated)
	if err != nil {
		return nil, err
	}

	s.publishEvent(workspaceID, websocket.CarConfigUpdated(config))
	return config, nil
}

// ActivateVehicle makes the vehicle the one used for cost rollups
func (s *CarConfigService) ActivateVehicle(workspaceID int32, id int32) (*domain.CarConfig, error) {
	config, err := s.configRepo.Activate(workspaceID, id)
	if err != nil {
		return nil, err
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("car_config_id", id).Msg("Vehicle activated")
	s.publishEvent(workspaceID, websocket.CarConfigActivated(config))
	return config, nil
}

// DeleteVehicle removes a vehicle and its photo
func (s *CarConfigService) DeleteVehicle(ctx context.Context, workspaceID int32, id int32) error {
	config, err := s.configRepo.GetByID(workspaceID, id)
	if err != nil {
		return err
	}

	if err := s.configRepo.Delete(workspaceID, id); err != nil {
		return err
	}

	s.deletePhotoObjects(ctx, config.PhotoPath)
	s.publishEvent(workspaceID, websocket.CarConfigDeleted(map[string]interface{}{"id": id}))
	return nil
}

// UploadPhoto stores a new photo for the vehicle, replacing the previous one
func (s *CarConfigService) UploadPhoto(ctx context.Context, workspaceID int32, id int32, data []byte, filename string) (*domain.CarConfig, error) {
	if !s.photos.IsEnabled() {
		return nil, ErrPhotoStorageNotConfigured
	}

	existing, err := s.configRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}

	oldPath := existing.PhotoPath

	photoPath, err := s.photos.Upload(ctx, workspaceID, id, data, filename)
	if err != nil {
		return nil, err
	}

	config, err := s.configRepo.UpdatePhoto(workspaceID, id, &photoPath)
	if err != nil {
		s.deletePhotoObjects(ctx, &photoPath)
		return nil, err
	}

	if oldPath != nil && *oldPath != photoPath {
		s.deletePhotoObjects(ctx, oldPath)
	}
	s.publishEvent(workspaceID, websocket.CarConfigUpdated(config))
	return config, nil
}

// DeletePhoto removes the vehicle's photo
func (s *CarConfigService) DeletePhoto(ctx context.Context, workspaceID int32, id int32) (*domain.CarConfig, error) {
	existing, err := s.configRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}
	if existing.PhotoPath == nil {
		return existing, nil
	}
	oldPath := *existing.PhotoPath

	config, err := s.configRepo.UpdatePhoto(workspaceID, id, nil)
	if err != nil {
		return nil, err
	}

	s.deletePhotoObjects(ctx, &oldPath)
	s.publishEvent(workspaceID, websocket.CarConfigUpdated(config))
	return config, nil
}

// PhotoURLs signs the vehicle's photo, nil when it has none
func (s *CarConfigService) PhotoURLs(ctx context.Context, config *domain.CarConfig) (*PhotoURLs, error) {
	if config.PhotoPath == nil || !s.photos.IsEnabled() {
		return nil, nil
	}
	return s.photos.URLs(ctx, *config.PhotoPath)
}

func (s *CarConfigService) deletePhotoObjects(ctx context.Context, photoPath *string) {
	if photoPath == nil || !s.photos.IsEnabled() {
		return
	}
	if err := s.photos.Delete(ctx, *photoPath); err != nil {
		log.Warn().Err(err).Str("photo_path", *photoPath).Msg("Failed to delete vehicle photo")
	}
}
