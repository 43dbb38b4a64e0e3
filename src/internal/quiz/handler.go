package quiz

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
	SubmitAttempt(c *gin.Context)
	ListAttempts(c *gin.Context)
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

	var req SaveQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid quiz",
			"message": "Every question needs at least two options and a correct index inside them",
		})
		return
	}

	quiz := &Quiz{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Questions:   req.Questions,
	}

	if err := h.repository.Create(ctx, quiz); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to create quiz")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create quiz",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    quiz,
		"message": "Quiz created successfully",
	})
}

func (h *handler) List(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)

	quizzes, err := h.repository.ListByUser(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list quizzes")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve quizzes",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    quizzes,
		"message": "Quizzes retrieved successfully",
	})
}

func (h *handler) Get(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	quizID := c.Param("id")

	quiz, err := h.repository.GetByID(ctx, userID, quizID)
	if err != nil {
		h.handleLookupError(c, quizID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    quiz,
		"message": "Quiz retrieved successfully",
	})
}

func (h *handler) Update(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	quizID := c.Param("id")

	var req SaveQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid quiz",
			"message": "Every question needs at least two options and a correct index inside them",
		})
		return
	}

	if err := h.repository.Update(ctx, userID, quizID, &req); err != nil {
		h.handleLookupError(c, quizID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Quiz updated successfully",
	})
}

func (h *handler) Delete(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	quizID := c.Param("id")

	if err := h.repository.Delete(ctx, userID, quizID); err != nil {
		h.handleLookupError(c, quizID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Quiz deleted successfully",
	})
}

// SubmitAttempt grades the submitted answers server-side and records the
// attempt. The client never learns the correct indexes from this endpoint.
func (h *handler) SubmitAttempt(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	quizID := c.Param("id")

	var req SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	quiz, err := h.repository.GetByID(ctx, userID, quizID)
	if err != nil {
		h.handleLookupError(c, quizID, err)
		return
	}

	score, err := quiz.Score(req.Answers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid attempt",
			"message": "Answer count does not match question count",
		})
		return
	}

	attempt := &Attempt{
		QuizID:  quiz.ID,
		UserID:  userID,
		Answers: req.Answers,
		Score:   score,
		Total:   len(quiz.Questions),
	}

	if err := h.repository.CreateAttempt(ctx, attempt); err != nil {
		logrus.WithError(err).WithField("quiz_id", quizID).Error("Failed to record attempt")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to record attempt",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    attempt,
		"message": "Attempt recorded successfully",
	})
}

func (h *handler) ListAttempts(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	quizID := c.Param("id")

	attempts, err := h.repository.ListAttempts(ctx, userID, quizID)
	if err != nil {
		h.handleLookupError(c, quizID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    attempts,
		"message": "Attempts retrieved successfully",
	})
}

func (h *handler) handleLookupError(c *gin.Context, quizID string, err error) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound), errors.Is(err, models.ErrInvalidParams):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Quiz not found",
			"message": "No quiz found with the provided ID",
		})
	default:
		logrus.WithError(err).WithField("quiz_id", quizID).Error("Quiz operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Quiz operation failed",
			"message": err.Error(),
		})
	}
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}
