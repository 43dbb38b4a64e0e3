package task

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
	UpdateStatus(c *gin.Context)
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

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	if req.Priority == "" {
		req.Priority = PriorityMedium
	}
	if req.Status == "" {
		req.Status = StatusTodo
	}
	if !IsValidPriority(req.Priority) || !IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid task fields",
			"message": "Unknown priority or status value",
		})
		return
	}

	task := &Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     req.DueDate,
	}

	if err := h.repository.Create(ctx, task); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to create task")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create task",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    task,
		"message": "Task created successfully",
	})
}

func (h *handler) List(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)

	status := c.Query("status")
	if status != "" && !IsValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid status filter",
			"message": "Unknown status value",
		})
		return
	}

	tasks, err := h.repository.ListByUser(ctx, userID, status)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list tasks")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve tasks",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tasks,
		"message": "Tasks retrieved successfully",
	})
}

func (h *handler) Get(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	taskID := c.Param("id")

	task, err := h.repository.GetByID(ctx, userID, taskID)
	if err != nil {
		h.handleLookupError(c, taskID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    task,
		"message": "Task retrieved successfully",
	})
}

func (h *handler) Update(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	taskID := c.Param("id")

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	if !IsValidPriority(req.Priority) || !IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid task fields",
			"message": "Unknown priority or status value",
		})
		return
	}

	if err := h.repository.Update(ctx, userID, taskID, &req); err != nil {
		h.handleLookupError(c, taskID, err)
		return
	}

	task, err := h.repository.GetByID(ctx, userID, taskID)
	if err != nil {
		h.handleLookupError(c, taskID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    task,
		"message": "Task updated successfully",
	})
}

func (h *handler) UpdateStatus(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	taskID := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	if !IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid status",
			"message": "Unknown status value",
		})
		return
	}

	if err := h.repository.UpdateStatus(ctx, userID, taskID, req.Status); err != nil {
		h.handleLookupError(c, taskID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task status updated successfully",
	})
}

func (h *handler) Delete(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	taskID := c.Param("id")

	if err := h.repository.Delete(ctx, userID, taskID); err != nil {
		h.handleLookupError(c, taskID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task deleted successfully",
	})
}

func (h *handler) handleLookupError(c *gin.Context, taskID string, err error) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound), errors.Is(err, models.ErrInvalidParams):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Task not found",
			"message": "No task found with the provided ID",
		})
	default:
		logrus.WithError(err).WithField("task_id", taskID).Error("Task operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Task operation failed",
			"message": err.Error(),
		})
	}
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}
