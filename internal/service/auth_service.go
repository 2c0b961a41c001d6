package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"gwp-backend/internal/config"
	"gwp-backend/internal/dto"
	"gwp-backend/internal/models"
	"gwp-backend/internal/repository"
	"gwp-backend/internal/session"
	"gwp-backend/internal/utils"
)

// AuthService handles registration, login and session lifecycle.
type AuthService struct {
	users    *repository.UserRepository
	sessions session.Store
	cfg      *config.AuthConfig
	log      *logrus.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(users *repository.UserRepository, sessions session.Store, cfg *config.AuthConfig, log *logrus.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		log:      log,
	}
}

// Register creates an account.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	return createUser(ctx, s.users, req)
}

// Login checks the credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := utils.CheckPassword(req.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("user logged in")

	return &dto.LoginResponse{
		Token: token,
		User: dto.UserSummary{
			ID:     user.ID,
			Nombre: user.Nombre,
		},
	}, nil
}

// Logout revokes the caller's token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// GetMe returns the caller's account.
func (s *AuthService) GetMe(ctx context.Context, userID uint) (*dto.UserInfo, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	info := userInfo(user)
	return &info, nil
}

// InitAdmin creates the configured bootstrap account when it is missing.
// Nothing happens when no admin username or password is configured.
func (s *AuthService) InitAdmin(ctx context.Context) error {
	admin := s.cfg.Admin
	if admin.Username == "" || admin.Password == "" {
		return nil
	}

	exists, err := s.users.ExistsByUsername(ctx, admin.Username, 0)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if exists {
		return nil
	}

	// a pre-hashed password is stored unchanged
	passwordHash := admin.Password
	if !utils.IsBcryptHash(passwordHash) {
		passwordHash, err = utils.HashPassword(admin.Password)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
	}

	user := &models.User{
		Nombre:       admin.Nombre,
		Username:     admin.Username,
		PasswordHash: passwordHash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("bootstrap account created")
	return nil
}
