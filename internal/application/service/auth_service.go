package service

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/sangkips/billbook-api/internal/config"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/utils"
)

const minPasswordLength = 6

// AuthService checks login credentials in either single-user or user-store mode.
// No session or token is issued.
type AuthService struct {
	cfg      config.AuthConfig
	userRepo repository.UserRepository
}

// NewAuthService creates a new auth service
func NewAuthService(cfg config.AuthConfig, userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// LoginOutput represents the login output
type LoginOutput struct {
	Username string `json:"username"`
}

// AuthStatus describes how login is configured
type AuthStatus struct {
	Mode                string `json:"mode"`
	Configured          bool   `json:"configured"`
	RegistrationEnabled bool   `json:"registrationEnabled"`
	Users               *int64 `json:"users,omitempty"`
}

// Register creates a user in user-store mode
func (s *AuthService) Register(ctx context.Context, username, password string) (*entity.User, error) {
	if s.cfg.SingleUser() {
		return nil, apperror.NewBadRequestError("Registration is disabled in single-user mode")
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperror.NewBadRequestError("Username and password are required")
	}
	if len(password) < minPasswordLength {
		return nil, apperror.NewValidationError(apperror.FieldError{
			Field:   "password",
			Message: "Password must be at least 6 characters",
		})
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already exists")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}
	user := &entity.User{Username: username, Password: hashed}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials against the configured mode
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginOutput, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperror.NewBadRequestError("Username and password are required")
	}

	if s.cfg.SingleUser() {
		return s.loginSingle(username, password)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	return &LoginOutput{Username: user.Username}, nil
}

func (s *AuthService) loginSingle(username, password string) (*LoginOutput, error) {
	if !s.cfg.Configured() {
		return nil, apperror.NewMisconfiguredError("Login credentials not configured on server")
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1
	var passOK bool
	if s.cfg.PasswordHash != "" {
		passOK = utils.CheckPasswordHash(password, s.cfg.PasswordHash)
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
	}
	if !userOK || !passOK {
		return nil, apperror.ErrInvalidCredentials
	}
	return &LoginOutput{Username: s.cfg.Username}, nil
}

// Status reports the login mode and whether it is usable
func (s *AuthService) Status(ctx context.Context) (*AuthStatus, error) {
	status := &AuthStatus{
		Mode:                s.cfg.Mode,
		Configured:          s.cfg.Configured(),
		RegistrationEnabled: !s.cfg.SingleUser(),
	}
	if !s.cfg.SingleUser() {
		count, err := s.userRepo.Count(ctx)
		if err != nil {
			return nil, err
		}
		status.Users = &count
	}
	return status, nil
}
