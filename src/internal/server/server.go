package server

import (
	"net/http"
	"studysphere-svc/src/clients"
	"studysphere-svc/src/internal/config"
	"studysphere-svc/src/internal/dependency"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

type Server struct {
	cfg *config.Configuration
}

func New(cfg *config.Configuration) *Server {
	return &Server{cfg: cfg}
}

// Start connects infrastructure, wires dependencies and serves HTTP until
// the listener fails.
func (s *Server) Start() error {
	gin.SetMode(s.cfg.Server.Mode)
	router := gin.Default()

	mongodb, err := clients.NewMongoDB(&s.cfg.Database)
	if err != nil {
		return err
	}

	redisClient, err := clients.NewRedisClient(&s.cfg.Redis)
	if err != nil {
		return err
	}

	rabbitMQ, err := clients.NewRabbitMQ(&s.cfg.Queue)
	if err != nil {
		return err
	}

	if err := rabbitMQ.SetupQueue(); err != nil {
		return err
	}

	deps := dependency.NewDependencyManager(router, mongodb, redisClient, rabbitMQ, s.cfg)
	SetupRoutes(deps)

	httpServer := &http.Server{
		Addr:         ":" + s.cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.Server.IdleTimeout) * time.Second,
	}

	log.Infof("Listening on port %s", s.cfg.Server.Port)
	return httpServer.ListenAndServe()
}
