// Package httpapi exposes the packet generator over HTTP.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tigagency/contracting-packet/internal/generator"
	"github.com/tigagency/contracting-packet/internal/model"
)

// Server wires the generation endpoint and liveness probe.
type Server struct {
	gen    *generator.Generator
	log    *zap.Logger
	engine *gin.Engine
}

// NewServer builds the router.
func NewServer(gen *generator.Generator, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		gen:    gen,
		log:    logger,
		engine: gin.New(),
	}
	s.engine.Use(gin.Recovery())

	s.engine.GET("/healthz", s.handleHealthz)
	s.engine.POST("/api/contracting-packet", s.handleGenerate)
	return s
}

// Handler returns the http.Handler for mounting into an http.Server.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGenerate(c *gin.Context) {
	requestID := uuid.NewString()
	c.Header("X-Request-ID", requestID)
	log := s.log.With(zap.String("request_id", requestID))

	var req model.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := s.gen.Generate(c.Request.Context(), &req)
	if err != nil {
		var vErr *generator.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Validation failed",
				"details": vErr.Details,
			})
			return
		}
		log.Error("generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
