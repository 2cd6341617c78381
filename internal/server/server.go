// Package server exposes the chat engine over HTTP.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"farmtech-assist/internal/chat/engine"
	"farmtech-assist/internal/chat/lang"
	"farmtech-assist/internal/chat/userdata"
	"farmtech-assist/internal/common/logger"
	"farmtech-assist/internal/common/observability"
)

const serviceName = "FarmTech AI Chatbot"

// Server holds the request-handling dependencies. users may be nil, in which
// case every conversation runs anonymously.
type Server struct {
	engine     *engine.Engine
	users      *userdata.Client
	translator *lang.Translator
	obs        *observability.Observability
	log        logger.Logger
}

func New(eng *engine.Engine, users *userdata.Client, translator *lang.Translator, obs *observability.Observability, log logger.Logger) *Server {
	return &Server{
		engine:     eng,
		users:      users,
		translator: translator,
		obs:        obs,
		log:        log,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/chatbot")
	{
		api.POST("/chat", s.handleChat)
		api.POST("/translate", s.handleTranslate)
		api.POST("/detect-language", s.handleDetectLanguage)
	}

	return r
}

// requestID tags every request so log lines from one conversation turn can be
// correlated. Client-supplied ids are kept.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("requestID", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
