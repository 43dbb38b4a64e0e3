package deck

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
	CreateDeck(c *gin.Context)
	ListDecks(c *gin.Context)
	GetDeck(c *gin.Context)
	UpdateDeck(c *gin.Context)
	DeleteDeck(c *gin.Context)
	CreateCard(c *gin.Context)
	ListCards(c *gin.Context)
	UpdateCard(c *gin.Context)
	DeleteCard(c *gin.Context)
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

func (h *handler) CreateDeck(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)

	var req SaveDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	deck := &Deck{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}

	if err := h.repository.CreateDeck(ctx, deck); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to create deck")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create deck",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    deck,
		"message": "Deck created successfully",
	})
}

func (h *handler) ListDecks(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)

	decks, err := h.repository.ListDecks(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list decks")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve decks",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    decks,
		"message": "Decks retrieved successfully",
	})
}

func (h *handler) GetDeck(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	deckID := c.Param("id")

	deck, err := h.repository.GetDeck(ctx, userID, deckID)
	if err != nil {
		h.handleLookupError(c, "Deck", err)
		return
	}

	cards, err := h.repository.ListCards(ctx, userID, deckID)
	if err != nil {
		h.handleLookupError(c, "Deck", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"deck":  deck,
			"cards": cards,
		},
		"message": "Deck retrieved successfully",
	})
}

func (h *handler) UpdateDeck(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	deckID := c.Param("id")

	var req SaveDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	if err := h.repository.UpdateDeck(ctx, userID, deckID, &req); err != nil {
		h.handleLookupError(c, "Deck", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Deck updated successfully",
	})
}

func (h *handler) DeleteDeck(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	deckID := c.Param("id")

	if err := h.repository.DeleteDeck(ctx, userID, deckID); err != nil {
		h.handleLookupError(c, "Deck", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Deck deleted successfully",
	})
}

func (h *handler) CreateCard(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	deckID := c.Param("id")

	var req SaveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	// The deck lookup doubles as the ownership check.
	deck, err := h.repository.GetDeck(ctx, userID, deckID)
	if err != nil {
		h.handleLookupError(c, "Deck", err)
		return
	}

	card := &Card{
		DeckID:   deck.ID,
		UserID:   userID,
		Question: req.Question,
		Answer:   req.Answer,
	}

	if err := h.repository.CreateCard(ctx, card); err != nil {
		logrus.WithError(err).WithField("deck_id", deckID).Error("Failed to create card")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create card",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    card,
		"message": "Card created successfully",
	})
}

func (h *handler) ListCards(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	deckID := c.Param("id")

	cards, err := h.repository.ListCards(ctx, userID, deckID)
	if err != nil {
		h.handleLookupError(c, "Deck", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cards,
		"message": "Cards retrieved successfully",
	})
}

func (h *handler) UpdateCard(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	cardID := c.Param("cardId")

	var req SaveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	if err := h.repository.UpdateCard(ctx, userID, cardID, &req); err != nil {
		h.handleLookupError(c, "Card", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Card updated successfully",
	})
}

func (h *handler) DeleteCard(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := middleware.UserID(c)
	cardID := c.Param("cardId")

	if err := h.repository.DeleteCard(ctx, userID, cardID); err != nil {
		h.handleLookupError(c, "Card", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Card deleted successfully",
	})
}

func (h *handler) handleLookupError(c *gin.Context, kind string, err error) {
	switch {
	case errors.Is(err, models.ErrRecordNotFound), errors.Is(err, models.ErrInvalidParams):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   kind + " not found",
			"message": "No record found with the provided ID",
		})
	default:
		logrus.WithError(err).Error("Deck operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Deck operation failed",
			"message": err.Error(),
		})
	}
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}
