package note

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
	Create(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type handler struct {
	config     *config.Configuration
	repository Repository
}

func NewHandler(cfg *config.Configuration, repository Repository) Handler {
	return &handler{
		config:     cfg,
		repository: repository,
	}
}

func (h *handler) Create(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	note := &Note{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	}

	if err := h.repository.Create(ctx, note); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to create note")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create note",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    note,
		"message": "Note created successfully",
	})
}

func (h *handler) List(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)

	notes, err := h.repository.ListByUser(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list notes")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve notes",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    notes,
		"message": "Notes retrieved successfully",
	})
}

func (h *handler) Get(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	noteID := c.Param("id")

	note, err := h.repository.GetByID(ctx, userID, noteID)
	if err != nil {
		h.handleLookupError(c, noteID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    note,
		"message": "Note retrieved successfully",
	})
}

func (h *handler) Update(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	noteID := c.Param("id")

	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	if err := h.repository.Update(ctx, userID, noteID, &req); err != nil {
		h.handleLookupError(c, noteID, err)
		return
	}

	note, err := h.repository.GetByID(ctx, userID, noteID)
	if err != nil {
		h.handleLookupError(c, noteID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    note,
		"message": "Note updated successfully",
	})
}

func (h *handler) Delete(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	noteID := c.Param("id")

	if err := h.repository.Delete(ctx, userID, noteID); err != nil {
		h.handleLookupError(c, noteID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Note deleted successfully",
	})
}

func (h *handler) handleLookupError(c *gin.Context, noteID string, err error) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound), errors.Is(err, models.ErrInvalidParams):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Note not found",
			"message": "No note found with the provided ID",
		})
	default:
		logrus.WithError(err).WithField("note_id", noteID).Error("Note operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Note operation failed",
			"message": err.Error(),
		})
	}
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}
