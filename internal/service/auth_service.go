package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// AuthService handles authentication-related business logic
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

// AuthResult represents the result of an authentication operation
type AuthResult struct {
	User      *domain.User
	Workspace *domain.Workspace
	IsNewUser bool
}

// AuthenticateUser handles the authentication flow after Auth0 callback.
// Creates the user and their workspace on first login.
func (s *AuthService) AuthenticateUser(ctx context.Context, auth0ID, email string, name, pictureURL *string) (*AuthResult, error) {
	user, err := s.userRepo.CreateOrGetByAuth0ID(ctx, auth0ID, email, name, pictureURL)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to create or get user")
		return nil, err
	}

	workspace, err := s.workspaceRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrWorkspaceNotFound) {
			log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to get workspace")
			return nil, err
		}
		workspace, err = s.workspaceRepo.Create(ctx, &domain.Workspace{UserID: user.ID, Name: "Personal"})
		if err != nil {
			log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to create default workspace")
			return nil, err
		}
		log.Info().Str("user_id", user.ID.String()).Int32("workspace_id", workspace.ID).Msg("Created new user with default workspace")
		return &AuthResult{User: user, Workspace: workspace, IsNewUser: true}, nil
	}

	log.Info().Str("user_id", user.ID.String()).Msg("Existing user authenticated")
	return &AuthResult{User: user, Workspace: workspace}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *AuthService) GetUserByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	return s.userRepo.GetByAuth0ID(ctx, auth0ID)
}

// GetWorkspaceByAuth0ID retrieves a user's workspace by their Auth0 ID
func (s *AuthService) GetWorkspaceByAuth0ID(ctx context.Context, auth0ID string) (*domain.Workspace, error) {
	return s.workspaceRepo.GetByUserAuth0ID(ctx, auth0ID)
}
