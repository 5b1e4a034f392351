package service

import (
	"errors"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
)

// DefaultWorkspaceName is the workspace created on first login
const DefaultWorkspaceName = "Home"

// AuthService handles user authentication and first-login provisioning
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

// AuthResult contains the authenticated user and their workspace
type AuthResult struct {
	User      *domain.User
	Workspace *domain.Workspace
	IsNewUser bool
}

// AuthenticateUser resolves the Auth0 subject to a user, creating the user
// and their workspace on first login.
func (s *AuthService) AuthenticateUser(auth0ID, email string, name *string) (*AuthResult, error) {
	_, err := s.userRepo.GetByAuth0ID(auth0ID)
	isNew := errors.Is(err, domain.ErrUserNotFound)
	if err != nil && !isNew {
		return nil, err
	}

	user, err := s.userRepo.CreateOrGetByAuth0ID(auth0ID, email, name)
	if err != nil {
		return nil, err
	}

	workspace, err := s.workspaceRepo.GetByUserID(user.ID)
	if errors.Is(err, domain.ErrWorkspaceNotFound) {
		workspace, err = s.workspaceRepo.Create(&domain.Workspace{
			UserID: user.ID,
			Name:   DefaultWorkspaceName,
		})
	}
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Workspace: workspace, IsNewUser: isNew}, nil
}

// GetUserByAuth0ID returns the user for the given Auth0 subject
func (s *AuthService) GetUserByAuth0ID(auth0ID string) (*domain.User, error) {
	return s.userRepo.GetByAuth0ID(auth0ID)
}

// GetWorkspaceByAuth0ID implements middleware.WorkspaceProvider
func (s *AuthService) GetWorkspaceByAuth0ID(auth0ID string) (int32, error) {
	workspace, err := s.workspaceRepo.GetByUserAuth0ID(auth0ID)
	if err != nil {
		return 0, err
	}
	return workspace.ID, nil
}
