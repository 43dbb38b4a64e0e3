package server

import (
	"studysphere-svc/src/clients"
	"studysphere-svc/src/internal/dependency"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func SetupRoutes(deps *dependency.Manager) {
	router := deps.Router
	router.Use(enableCORS)

	setupHealthEndpoint(deps)
	setupAuthRoutes(router, deps)
	setupAPIRoutes(router, deps)
}

func setupHealthEndpoint(deps *dependency.Manager) {
	router := deps.Router
	mongodb := deps.Mongodb
	redisClient := deps.Redis
	cfg := deps.Config

	router.GET("/health", func(c *gin.Context) {
		mongoStatus := "ok"
		if err := mongodb.Client.Ping(c.Request.Context(), nil); err != nil {
			mongoStatus = "error: " + err.Error()
		}

		redisStatus := "ok"
		if err := redisClient.Client.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "error: " + err.Error()
		}

		c.JSON(200, gin.H{
			"status":    "ok",
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
			"mongodb":   mongoStatus,
			"redis":     redisStatus,
			"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	})

	router.GET("/health/detailed", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "operational",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
			"components": gin.H{
				"database": gin.H{
					"mongodb": getStatus(isMongoConnected(mongodb, c)),
					"redis":   getStatus(isRedisConnected(redisClient.Client, c)),
				},
				"services": gin.H{
					"auth":  "operational",
					"cache": "operational",
					"ai":    "operational",
				},
			},
		})
	})
}

func setupAuthRoutes(router *gin.Engine, deps *dependency.Manager) {
	handler := deps.AuthHandler
	requireAuth := deps.AuthMiddleware.RequireAuth()

	authGroup := router.Group("/api/v1/auth")
	{
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/logout", handler.Logout)
		authGroup.GET("/me", requireAuth, handler.Me)
	}
}

func setupAPIRoutes(router *gin.Engine, deps *dependency.Manager) {
	requireAuth := deps.AuthMiddleware.RequireAuth()

	api := router.Group("/api/v1")
	api.Use(requireAuth)

	profile := api.Group("/profile")
	{
		profile.GET("", deps.UserHandler.GetProfile)
		profile.PUT("", deps.UserHandler.UpdateProfile)
		profile.PUT("/password", deps.UserHandler.ChangePassword)
	}

	notes := api.Group("/notes")
	{
		notes.POST("", deps.NoteHandler.Create)
		notes.GET("", deps.NoteHandler.List)
		notes.GET("/:id", deps.NoteHandler.Get)
		notes.PUT("/:id", deps.NoteHandler.Update)
		notes.DELETE("/:id", deps.NoteHandler.Delete)
	}

	tasks := api.Group("/tasks")
	{
		tasks.POST("", deps.TaskHandler.Create)
		tasks.GET("", deps.TaskHandler.List)
		tasks.GET("/:id", deps.TaskHandler.Get)
		tasks.PUT("/:id", deps.TaskHandler.Update)
		tasks.PATCH("/:id/status", deps.TaskHandler.UpdateStatus)
		tasks.DELETE("/:id", deps.TaskHandler.Delete)
	}

	decks := api.Group("/decks")
	{
		decks.POST("", deps.DeckHandler.CreateDeck)
		decks.GET("", deps.DeckHandler.ListDecks)
		decks.GET("/:id", deps.DeckHandler.GetDeck)
		decks.PUT("/:id", deps.DeckHandler.UpdateDeck)
		decks.DELETE("/:id", deps.DeckHandler.DeleteDeck)
		decks.POST("/:id/cards", deps.DeckHandler.CreateCard)
		decks.GET("/:id/cards", deps.DeckHandler.ListCards)
		decks.PUT("/:id/cards/:cardId", deps.DeckHandler.UpdateCard)
		decks.DELETE("/:id/cards/:cardId", deps.DeckHandler.DeleteCard)
	}

	quizzes := api.Group("/quizzes")
	{
		quizzes.POST("", deps.QuizHandler.Create)
		quizzes.GET("", deps.QuizHandler.List)
		quizzes.GET("/:id", deps.QuizHandler.Get)
		quizzes.PUT("/:id", deps.QuizHandler.Update)
		quizzes.DELETE("/:id", deps.QuizHandler.Delete)
		quizzes.POST("/:id/attempts", deps.QuizHandler.SubmitAttempt)
		quizzes.GET("/:id/attempts", deps.QuizHandler.ListAttempts)
	}

	focusGroup := api.Group("/focus")
	{
		focusGroup.POST("/sessions", deps.FocusHandler.RecordSession)
		focusGroup.GET("/sessions", deps.FocusHandler.ListSessions)
		focusGroup.GET("/stats", deps.FocusHandler.GetStats)
		focusGroup.GET("/settings", deps.FocusHandler.GetSettings)
		focusGroup.PUT("/settings", deps.FocusHandler.UpdateSettings)
	}

	aiGroup := api.Group("/ai")
	{
		aiGroup.POST("/flashcards", deps.AIHandler.GenerateFlashcards)
		aiGroup.POST("/quiz", deps.AIHandler.GenerateQuiz)
	}
}

func isMongoConnected(mongodb *clients.MongoDB, c *gin.Context) bool {
	if err := mongodb.Client.Ping(c.Request.Context(), nil); err != nil {
		return false
	}
	return true
}

func isRedisConnected(redisClient *redis.Client, c *gin.Context) bool {
	if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
		return false
	}
	return true
}

func enableCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(204)
		return
	}

	c.Next()
}

func getStatus(b bool) string {
	if b {
		return "connected"
	}
	return "disconnected"
}
