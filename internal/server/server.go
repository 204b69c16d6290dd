package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"levelup/internal/auth"
	"levelup/internal/engine"
)

// Server exposes the engine's four core contracts over JSON.
type Server struct {
	svc  *engine.Service
	auth *auth.Service
	log  *zap.Logger
}

func New(svc *engine.Service, authSvc *auth.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, auth: authSvc, log: log}
}

// Router builds the gin engine with logging and auth middleware applied to
// the API group.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", s.requireToken())
	{
		api.POST("/quests/generate", s.handleGenerateQuests)
		api.GET("/quests/today", s.handleTodayQuests)
		api.POST("/quests/:id/complete", s.handleCompleteQuest)
		api.GET("/streak", s.handleStreakInfo)
		api.POST("/streak/checkin", s.handleCheckin)
		api.POST("/streak/redeem", s.handleRedeem)
		api.GET("/profile", s.handleProfile)
		api.GET("/stats", s.handleStats)
		api.GET("/achievements", s.handleAchievements)
	}

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

// requireToken resolves the bearer token to a user id and stores it on the
// request context.
func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID, err := s.auth.Resolve(c.Request.Context(), token)
		if err != nil {
			s.log.Warn("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Request = c.Request.WithContext(auth.WithUser(c.Request.Context(), userID))
		c.Next()
	}
}
