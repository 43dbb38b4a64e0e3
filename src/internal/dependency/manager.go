package dependency

import (
	"studysphere-svc/src/clients"
	"studysphere-svc/src/internal/ai"
	"studysphere-svc/src/internal/auth"
	"studysphere-svc/src/internal/cache"
	"studysphere-svc/src/internal/config"
	"studysphere-svc/src/internal/deck"
	"studysphere-svc/src/internal/focus"
	"studysphere-svc/src/internal/middleware"
	"studysphere-svc/src/internal/note"
	"studysphere-svc/src/internal/quiz"
	"studysphere-svc/src/internal/session"
	"studysphere-svc/src/internal/task"
	"studysphere-svc/src/internal/user"
	"time"

	"github.com/gin-gonic/gin"
)

type Manager struct {
	Router         *gin.Engine
	Config         *config.Configuration
	Mongodb        *clients.MongoDB
	Redis          *clients.RedisClient
	RabbitMQ       *clients.RabbitMQ
	Sessions       *session.Manager
	AuthMiddleware *middleware.AuthMiddleware
	CacheService   cache.Service
	AuthHandler    auth.Handler
	UserHandler    user.Handler
	NoteHandler    note.Handler
	TaskHandler    task.Handler
	DeckHandler    deck.Handler
	QuizHandler    quiz.Handler
	FocusHandler   focus.Handler
	AIHandler      ai.Handler
}

func NewDependencyManager(router *gin.Engine,
	mongodb *clients.MongoDB,
	redisClient *clients.RedisClient,
	rabbitMQ *clients.RabbitMQ,
	cfg *config.Configuration) *Manager {

	collections := cfg.Database.Collections

	cacheService := cache.NewCacheService(redisClient.Client, cfg)
	activityPublisher := clients.NewActivityPublisher(cfg, rabbitMQ.Channel)
	studyAIClient := clients.NewStudyAIClient(cfg)

	userRepo := user.NewUserRepository(mongodb, collections.Users)
	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(cfg, userService, activityPublisher)

	sessionManager := session.NewManager(
		cfg.Security.JwtKey,
		time.Duration(cfg.Security.SessionTTLHours)*time.Hour,
		cfg.Server.Mode == "release",
		userRepo,
	)
	authMiddleware := middleware.NewAuthMiddleware(sessionManager)
	authHandler := auth.NewHandler(cfg, userService, sessionManager, activityPublisher)

	noteRepo := note.NewRepository(mongodb, collections.Notes)
	noteHandler := note.NewHandler(cfg, noteRepo)

	taskRepo := task.NewRepository(mongodb, collections.Tasks)
	taskHandler := task.NewHandler(cfg, taskRepo)

	deckRepo := deck.NewRepository(mongodb, collections.Decks, collections.Cards)
	deckHandler := deck.NewHandler(cfg, deckRepo)

	quizRepo := quiz.NewRepository(mongodb, collections.Quizzes, collections.QuizAttempts)
	quizHandler := quiz.NewHandler(cfg, quizRepo)

	focusRepo := focus.NewRepository(mongodb, collections.FocusSessions, collections.FocusSettings)
	focusService := focus.NewFocusService(focusRepo, cacheService, userService)
	focusHandler := focus.NewHandler(cfg, focusService)

	aiService := ai.NewAIService(studyAIClient, noteRepo, deckRepo, quizRepo, activityPublisher)
	aiHandler := ai.NewHandler(cfg, aiService)

	return &Manager{
		Router:         router,
		Config:         cfg,
		Mongodb:        mongodb,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Sessions:       sessionManager,
		AuthMiddleware: authMiddleware,
		CacheService:   cacheService,
		AuthHandler:    authHandler,
		UserHandler:    userHandler,
		NoteHandler:    noteHandler,
		TaskHandler:    taskHandler,
		DeckHandler:    deckHandler,
		QuizHandler:    quizHandler,
		FocusHandler:   focusHandler,
		AIHandler:      aiHandler,
	}
}
