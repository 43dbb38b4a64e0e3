package focus

import (
	"context"
	"errors"
	"studysphere-svc/src/internal/cache"
	"studysphere-svc/src/internal/models"
	"studysphere-svc/src/internal/user"
	"time"

	"github.com/sirupsen/logrus"
)

type Service interface {
	RecordSession(ctx context.Context, userID string, req *RecordSessionRequest) (*Session, error)
	ListSessions(ctx context.Context, userID string, from, to time.Time) ([]Session, error)
	GetStats(ctx context.Context, userID string) (*models.FocusStats, error)
	GetSettings(ctx context.Context, userID string) (*models.FocusSettings, error)
	UpdateSettings(ctx context.Context, userID string, req *UpdateSettingsRequest) (*models.FocusSettings, error)
}

type focusService struct {
	repository   Repository
	cacheService cache.Service
	users        user.Service
}

func NewFocusService(repository Repository, cacheService cache.Service, users user.Service) Service {
	return &focusService{
		repository:   repository,
		cacheService: cacheService,
		users:        users,
	}
}

func (s *focusService) RecordSession(ctx context.Context, userID string, req *RecordSessionRequest) (*Session, error) {
	if req.StartTime.IsZero() {
		return nil, models.ErrInvalidSessionTime
	}

	sessionType := req.SessionType
	if sessionType == "" {
		sessionType = TypeWork
	}
	if sessionType != TypeWork && sessionType != TypeShortBreak && sessionType != TypeLongBreak {
		return nil, models.ErrInvalidParams
	}

	session := &Session{
		UserID:          userID,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Completed:       req.Completed,
		SessionType:     sessionType,
	}

	if err := s.repository.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	// Drop the cached aggregate so the next stats read picks this session up.
	if err := s.cacheService.InvalidateFocusStats(ctx, userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Failed to invalidate focus stats cache")
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"completed": session.Completed,
		"type":      session.SessionType,
	}).Debug("Focus session recorded")

	return session, nil
}

func (s *focusService) ListSessions(ctx context.Context, userID string, from, to time.Time) ([]Session, error) {
	return s.repository.ListSessions(ctx, userID, from, to)
}

func (s *focusService) GetStats(ctx context.Context, userID string) (*models.FocusStats, error) {
	cached, err := s.cacheService.GetFocusStats(ctx, userID)
	if err == nil && cached != nil {
		logrus.WithField("user_id", userID).Debug("Focus stats served from cache")
		return cached, nil
	}

	sessions, err := s.repository.AllSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := ComputeStats(sessions, time.Now(), s.userLocation(ctx, userID))
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.SaveFocusStats(ctx, userID, stats); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Failed to cache focus stats")
	}

	return stats, nil
}

func (s *focusService) GetSettings(ctx context.Context, userID string) (*models.FocusSettings, error) {
	cached, err := s.cacheService.GetFocusSettings(ctx, userID)
	if err == nil && cached != nil {
		return cached, nil
	}

	settings, err := s.repository.GetSettings(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return models.DefaultFocusSettings(userID), nil
		}
		return nil, err
	}

	if err := s.cacheService.SaveFocusSettings(ctx, settings); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Failed to cache focus settings")
	}

	return settings, nil
}

func (s *focusService) UpdateSettings(ctx context.Context, userID string, req *UpdateSettingsRequest) (*models.FocusSettings, error) {
	settings := &models.FocusSettings{
		UserID:                 userID,
		WorkMinutes:            req.WorkMinutes,
		ShortBreakMinutes:      req.ShortBreakMinutes,
		LongBreakMinutes:       req.LongBreakMinutes,
		SessionsUntilLongBreak: req.SessionsUntilLongBreak,
	}

	if err := s.repository.UpsertSettings(ctx, settings); err != nil {
		return nil, err
	}

	if err := s.cacheService.SaveFocusSettings(ctx, settings); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Failed to cache focus settings")
	}

	return settings, nil
}

// userLocation resolves the user's timezone for day bucketing; UTC when the
// user record cannot be loaded.
func (s *focusService) userLocation(ctx context.Context, userID string) *time.Location {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Failed to resolve user timezone, using UTC")
		return time.UTC
	}
	return u.Location()
}
