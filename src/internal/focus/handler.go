package focus

import (
	"context"
	"errors"
	"net/http"
	"studysphere-svc/src/internal/config"
	"studysphere-svc/src/internal/middleware"
	"studysphere-svc/src/internal/models"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	RecordSession(c *gin.Context)
	ListSessions(c *gin.Context)
	GetStats(c *gin.Context)
	GetSettings(c *gin.Context)
	UpdateSettings(c *gin.Context)
}

type handler struct {
	config  *config.Configuration
	service Service
}

func NewHandler(cfg *config.Configuration, service Service) Handler {
	return &handler{
		config:  cfg,
		service: service,
	}
}

func (h *handler) RecordSession(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)

	var req RecordSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	session, err := h.service.RecordSession(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidSessionTime) || errors.Is(err, models.ErrInvalidParams) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid focus session",
				"message": err.Error(),
			})
			return
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to record focus session")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to record focus session",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    session,
		"message": "Focus session recorded",
	})
}

func (h *handler) ListSessions(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	from := parseTimeParam(c, "from")
	to := parseTimeParam(c, "to")

	sessions, err := h.service.ListSessions(ctx, userID, from, to)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list focus sessions")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve focus sessions",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sessions,
		"message": "Focus sessions retrieved successfully",
	})
}

func (h *handler) GetStats(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)

	stats, err := h.service.GetStats(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to get focus stats")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve focus statistics",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
		"message": "Focus statistics retrieved successfully",
	})
}

func (h *handler) GetSettings(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)

	settings, err := h.service.GetSettings(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to get focus settings")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve focus settings",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    settings,
		"message": "Focus settings retrieved successfully",
	})
}

func (h *handler) UpdateSettings(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	settings, err := h.service.UpdateSettings(ctx, userID, &req)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to update focus settings")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update focus settings",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    settings,
		"message": "Focus settings updated successfully",
	})
}

func parseTimeParam(c *gin.Context, param string) time.Time {
	value := c.Query(param)
	if value == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"param": param,
			"value": value,
		}).Warn("Invalid time parameter, ignoring")
		return time.Time{}
	}
	return parsed
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}
