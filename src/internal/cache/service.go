package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"studysphere-svc/src/internal/config"
	"studysphere-svc/src/internal/models"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	focusStatsKeyPattern    = "focus:stats:%s"    // focus:stats:userID
	focusSettingsKeyPattern = "focus:settings:%s" // focus:settings:userID
)

type Service interface {
	GetFocusStats(ctx context.Context, userID string) (*models.FocusStats, error)
	SaveFocusStats(ctx context.Context, userID string, stats *models.FocusStats) error
	InvalidateFocusStats(ctx context.Context, userID string) error
	GetFocusSettings(ctx context.Context, userID string) (*models.FocusSettings, error)
	SaveFocusSettings(ctx context.Context, settings *models.FocusSettings) error
}

type cacheService struct {
	client *redis.Client
	cfg    *config.CacheConfig
}

func NewCacheService(client *redis.Client, cfg *config.Configuration) Service {
	return &cacheService{
		client: client,
		cfg:    &cfg.Cache,
	}
}

func (c *cacheService) GetFocusStats(ctx context.Context, userID string) (*models.FocusStats, error) {
	key := fmt.Sprintf(focusStatsKeyPattern, userID)

	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Not an error, just not found
		}
		logrus.WithError(err).WithField("key", key).Error("Failed to get focus stats from cache")
		return nil, models.ErrRedisGet
	}

	var stats models.FocusStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to unmarshal focus stats from cache")
		return nil, models.ErrRedisGet
	}

	return &stats, nil
}

func (c *cacheService) SaveFocusStats(ctx context.Context, userID string, stats *models.FocusStats) error {
	key := fmt.Sprintf(focusStatsKeyPattern, userID)

	data, err := json.Marshal(stats)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal focus stats for cache")
		return models.ErrRedisSet
	}

	expiration := time.Duration(c.cfg.FocusStatsExpirationMinutes) * time.Minute
	if err := c.client.Set(ctx, key, data, expiration).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to cache focus stats")
		return models.ErrRedisSet
	}

	return nil
}

// InvalidateFocusStats drops the cached aggregate after a new session is
// recorded so the next stats read recomputes.
func (c *cacheService) InvalidateFocusStats(ctx context.Context, userID string) error {
	key := fmt.Sprintf(focusStatsKeyPattern, userID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to invalidate focus stats")
		return models.ErrRedisDelete
	}

	return nil
}

func (c *cacheService) GetFocusSettings(ctx context.Context, userID string) (*models.FocusSettings, error) {
	key := fmt.Sprintf(focusSettingsKeyPattern, userID)

	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Not an error, just not found
		}
		logrus.WithError(err).WithField("key", key).Error("Failed to get focus settings from cache")
		return nil, models.ErrRedisGet
	}

	var settings models.FocusSettings
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to unmarshal focus settings from cache")
		return nil, models.ErrRedisGet
	}

	return &settings, nil
}

func (c *cacheService) SaveFocusSettings(ctx context.Context, settings *models.FocusSettings) error {
	key := fmt.Sprintf(focusSettingsKeyPattern, settings.UserID)

	data, err := json.Marshal(settings)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal focus settings for cache")
		return models.ErrRedisSet
	}

	expiration := time.Duration(c.cfg.FocusSettingsExpirationMinutes) * time.Minute
	if err := c.client.Set(ctx, key, data, expiration).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to cache focus settings")
		return models.ErrRedisSet
	}

	return nil
}
