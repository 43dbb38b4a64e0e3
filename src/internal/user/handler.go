package user

import (
	"context"
	"errors"
	"net/http"
	"studysphere-svc/src/clients"
	"studysphere-svc/src/internal/config"
	"studysphere-svc/src/internal/middleware"
	"studysphere-svc/src/internal/models"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	GetProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
	ChangePassword(c *gin.Context)
}

type handler struct {
	config   *config.Configuration
	service  Service
	activity *clients.ActivityPublisher
}

func NewHandler(cfg *config.Configuration, service Service, activity *clients.ActivityPublisher) Handler {
	return &handler{
		config:   cfg,
		service:  service,
		activity: activity,
	}
}

func (h *handler) GetProfile(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)

	profile, err := h.service.GetProfile(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to get profile")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve profile",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
		"message": "Profile retrieved successfully",
	})
}

func (h *handler) UpdateProfile(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	profile, err := h.service.UpdateProfile(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidParams) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid time zone",
				"message": "Please provide a valid IANA time zone name",
			})
			return
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to update profile")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update profile",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
		"message": "Profile updated successfully",
	})
}

func (h *handler) ChangePassword(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	if err := h.service.ChangePassword(ctx, userID, &req); err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Wrong password",
				"message": "Current password is incorrect",
			})
			return
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to change password")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to change password",
			"message": err.Error(),
		})
		return
	}

	if err := h.activity.Publish(userID, models.ServiceUserHandler, models.ActionPasswordChanged); err != nil {
		logrus.WithError(err).Warn("Failed to publish password change activity")
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password changed successfully, other sessions have been signed out",
	})
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}
