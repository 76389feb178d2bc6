package service

import (
	"errors"
	"strings"

	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const defaultWorkspaceName = "Minha Operação"

// AuthService provisions drivers on first login and resolves their workspace
type AuthService struct {
	userRepo      domain.UserRepository
	workspaceRepo domain.WorkspaceRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, workspaceRepo domain.WorkspaceRepository) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		workspaceRepo: workspaceRepo,
	}
}

// AuthResult is the outcome of the Auth0 callback
type AuthResult struct {
	User      *domain.User
	Workspace *domain.Workspace
	IsNewUser bool
}

// AuthenticateUser gets or creates the user and makes sure they own a workspace
func (s *AuthService) AuthenticateUser(auth0ID, email string, name, pictureURL *string) (*AuthResult, error) {
	if strings.TrimSpace(auth0ID) == "" {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userRepo.CreateOrGetByAuth0ID(auth0ID, email, name, pictureURL)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to create or get user")
		return nil, err
	}

	workspace, err := s.workspaceRepo.GetByUserID(user.ID)
	if err == nil {
		log.Info().Str("user_id", user.ID.String()).Int32("workspace_id", workspace.ID).Msg("Existing driver authenticated")
		return &AuthResult{User: user, Workspace: workspace}, nil
	}
	if !errors.Is(err, domain.ErrWorkspaceNotFound) {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to get workspace")
		return nil, err
	}

	workspace, err = s.workspaceRepo.Create(&domain.Workspace{UserID: user.ID, Name: defaultWorkspaceName})
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to create default workspace")
		return nil, err
	}
	log.Info().Str("user_id", user.ID.String()).Int32("workspace_id", workspace.ID).Msg("Provisioned new driver workspace")

	return &AuthResult{User: user, Workspace: workspace, IsNewUser: true}, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}

// GetUserByAuth0ID retrieves a user by their Auth0 ID
func (s *AuthService) GetUserByAuth0ID(auth0ID string) (*domain.User, error) {
	return s.userRepo.GetByAuth0ID(auth0ID)
}

// GetWorkspaceByAuth0ID retrieves a user's workspace by their Auth0 ID
func (s *AuthService) GetWorkspaceByAuth0ID(auth0ID string) (*domain.Workspace, error) {
	return s.workspaceRepo.GetByUserAuth0ID(auth0ID)
}

// WorkspaceIDByAuth0ID resolves only the workspace ID, used by the auth middleware
// and the websocket validator
func (s *AuthService) WorkspaceIDByAuth0ID(auth0ID string) (int32, error) {
	workspace, err := s.workspaceRepo.GetByUserAuth0ID(auth0ID)
	if err != nil {
		return 0, err
	}
	return workspace.ID, nil
}

// UpdateName changes the display name of the user
func (s *AuthService) UpdateName(auth0ID, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > domain.MaxUserNameLength {
		return nil, domain.ErrInvalidInput
	}
	return s.userRepo.UpdateName(auth0ID, name)
}
