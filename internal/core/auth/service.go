package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingFields      = errors.New("username and password are required")
)

type Service struct {
	repo       *Repository
	jwtService *JWTService
}

// NewService creates a new auth service
func NewService(db *gorm.DB, jwtSecret string, expiresHours int) *Service {
	return &Service{
		repo:       NewRepository(db),
		jwtService: NewJWTService(jwtSecret, time.Duration(expiresHours)*time.Hour),
	}
}

// Login authenticates a user with username and password
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := VerifyPassword(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		utils.LogWarn("Failed to update last login", map[string]interface{}{
			"username": user.Username,
			"error":    err.Error(),
		})
	}

	return s.issue(user.Username)
}

// ValidateToken validates an access token and returns the claims
func (s *Service) ValidateToken(token string) (*TokenClaims, error) {
	return s.jwtService.ValidateAccessToken(token)
}

// EnsureAdmin creates the admin account when it does not exist yet. An
// existing account keeps its password.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, ErrMissingFields
	}

	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to check admin user: %w", err)
	}
	if exists {
		return false, nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	if err := s.repo.CreateUser(ctx, &User{Username: username, PasswordHash: hash}); err != nil {
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}
	return true, nil
}

func (s *Service) issue(username string) (*AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateAccessToken(username)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		User:        &UserInfo{Username: username},
	}, nil
}
