package auth

import (
	"context"
	"errors"
	"net/http"
	"studysphere-svc/src/clients"
	"studysphere-svc/src/internal/config"
	"studysphere-svc/src/internal/middleware"
	"studysphere-svc/src/internal/models"
	"studysphere-svc/src/internal/session"
	"studysphere-svc/src/internal/user"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Me(c *gin.Context)
}

type handler struct {
	config   *config.Configuration
	users    user.Service
	sessions *session.Manager
	activity *clients.ActivityPublisher
}

func NewHandler(cfg *config.Configuration, users user.Service, sessions *session.Manager, activity *clients.ActivityPublisher) Handler {
	return &handler{
		config:   cfg,
		users:    users,
		sessions: sessions,
		activity: activity,
	}
}

func (h *handler) Register(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	newUser, err := h.users.Register(ctx, &req)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Email already registered",
				"message": "An account with this email already exists",
			})
			return
		}
		logrus.WithError(err).Error("Failed to register user")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Registration failed",
			"message": err.Error(),
		})
		return
	}

	if err := h.startSession(c, newUser); err != nil {
		logrus.WithError(err).Error("Failed to issue session token")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Registration failed",
			"message": "Could not create session",
		})
		return
	}

	if err := h.activity.Publish(newUser.ID.Hex(), models.ServiceAuthHandler, models.ActionUserRegistered); err != nil {
		logrus.WithError(err).Warn("Failed to publish registration activity")
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    newUser.ToProfile(),
		"message": "Account created successfully",
	})
}

func (h *handler) Login(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	authenticated, err := h.users.Authenticate(ctx, &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid credentials",
				"message": "Email or password is incorrect",
			})
			return
		}
		logrus.WithError(err).Error("Login failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Login failed",
			"message": err.Error(),
		})
		return
	}

	if err := h.startSession(c, authenticated); err != nil {
		logrus.WithError(err).Error("Failed to issue session token")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Login failed",
			"message": "Could not create session",
		})
		return
	}

	if err := h.activity.Publish(authenticated.ID.Hex(), models.ServiceAuthHandler, models.ActionUserLoggedIn); err != nil {
		logrus.WithError(err).Warn("Failed to publish login activity")
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    authenticated.ToProfile(),
		"message": "Logged in successfully",
	})
}

// Logout clears the session cookie. No server-side state is touched: the
// token itself stays valid until it expires or the user's token version
// changes.
func (h *handler) Logout(c *gin.Context) {
	h.sessions.ClearCookie(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (h *handler) Me(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)

	profile, err := h.users.GetProfile(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to load profile")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load profile",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
		"message": "Session is valid",
	})
}

func (h *handler) startSession(c *gin.Context, u *user.User) error {
	token, err := h.sessions.Issue(u.ID.Hex(), u.Email, u.TokenVersion)
	if err != nil {
		return err
	}
	h.sessions.SetCookie(c, token)
	return nil
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}
