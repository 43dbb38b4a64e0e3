package user

import (
	"context"
	"errors"
	"strings"
	"studysphere-svc/src/internal/models"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*User, error)
	Authenticate(ctx context.Context, req *LoginRequest) (*User, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	GetUser(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error)
	ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error
}

type userService struct {
	userRepository Repository
}

func NewUserService(userRepository Repository) Service {
	return &userService{
		userRepository: userRepository,
	}
}

func (s *userService) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := s.userRepository.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, models.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	user := &User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: string(hash),
		TimeZone:     "UTC",
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID.Hex(),
		"email":   user.Email,
	}).Info("User registered")

	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, req *LoginRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	if err := s.userRepository.UpdateLastLogin(ctx, user.ID.Hex()); err != nil {
		logrus.WithError(err).Warn("Failed to record last login")
	}
	now := time.Now()
	user.LastLoginAt = &now

	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.ToProfile(), nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (*User, error) {
	return s.userRepository.GetByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error) {
	if req.TimeZone != "" {
		if _, err := time.LoadLocation(req.TimeZone); err != nil {
			return nil, models.ErrInvalidParams
		}
	}

	if err := s.userRepository.UpdateProfile(ctx, userID, req); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return models.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash password")
		return err
	}

	if err := s.userRepository.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	logrus.WithField("user_id", userID).Info("Password changed, outstanding tokens invalidated")
	return nil
}
