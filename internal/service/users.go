package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"remindme-service/internal/auth"
	"remindme-service/pkg/models"
)

type UserService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewUserService(db *gorm.DB, log *zap.Logger) *UserService {
	return &UserService{db: db, log: log.Named("users")}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Signup creates an account with default timezone, tier and preferences.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if !models.ValidEmail(email) {
		return nil, invalid("Invalid email address")
	}
	if req.Password == "" {
		return nil, invalid("Password is required")
	}
	if len(req.Password) > 72 {
		return nil, invalid("Password must be at most 72 bytes")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("Name is required")
	}
	tz := models.DefaultTimezone
	if req.Timezone != nil && strings.TrimSpace(*req.Timezone) != "" {
		tz = strings.TrimSpace(*req.Timezone)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		UserID:           uuid.NewString(),
		Email:            email,
		PasswordHash:     hash,
		Name:             name,
		Timezone:         tz,
		SubscriptionTier: models.DefaultSubscriptionTier,
		Preferences:      datatypes.NewJSONType(models.DefaultPreferences()),
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		// lost a race with a concurrent signup for the same address
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("[AUTH] user registered", zap.String("user_id", user.UserID))
	return user, nil
}

// Authenticate returns ErrInvalidCredentials for both an unknown email and a wrong password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) GetByUserID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
