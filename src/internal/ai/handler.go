package ai

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
	GenerateFlashcards(c *gin.Context)
	GenerateQuiz(c *gin.Context)
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

func (h *handler) GenerateFlashcards(c *gin.Context) {
	ctx, cancel := h.generationContext(c)
	defer cancel()

	userID := middleware.UserID(c)

	var req GenerateFlashcardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	generatedDeck, cards, err := h.service.GenerateFlashcards(ctx, userID, &req)
	if err != nil {
		h.handleGenerationError(c, userID, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"deck":  generatedDeck,
			"cards": cards,
		},
		"message": "Flashcards generated successfully",
	})
}

func (h *handler) GenerateQuiz(c *gin.Context) {
	ctx, cancel := h.generationContext(c)
	defer cancel()

	userID := middleware.UserID(c)

	var req GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	generatedQuiz, err := h.service.GenerateQuiz(ctx, userID, &req)
	if err != nil {
		h.handleGenerationError(c, userID, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    generatedQuiz,
		"message": "Quiz generated successfully",
	})
}

func (h *handler) handleGenerationError(c *gin.Context, userID string, err error) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Note not found",
			"message": "No note found with the provided ID",
		})
	case errors.Is(err, models.ErrInvalidParams):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": "Provide either a note ID or inline content",
		})
	case errors.Is(err, models.ErrGenerationFailed):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Generation failed",
			"message": "The AI service could not generate content, try again later",
		})
	default:
		logrus.WithError(err).WithField("user_id", userID).Error("AI generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Generation failed",
			"message": err.Error(),
		})
	}
}

// generationContext allows for the AI service round trip on top of the usual
// request timeout.
func (h *handler) generationContext(c *gin.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(h.config.App.Timeout+h.config.StudyAI.Timeout) * time.Second
	return context.WithTimeout(c.Request.Context(), timeout)
}
