package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abojja9/sleep-better-ai/internal/agent"
	"github.com/abojja9/sleep-better-ai/internal/database"
	"github.com/abojja9/sleep-better-ai/internal/metrics"
	"github.com/abojja9/sleep-better-ai/internal/toolkit"
)

type Server struct {
	router  *gin.Engine
	db      *database.DB
	toolkit *toolkit.Toolkit
	agent   *agent.Agent
}

// NewServer creates a new server instance
func NewServer(db *database.DB, tk *toolkit.Toolkit, ag *agent.Agent) *Server {
	router := gin.Default()

	server := &Server{
		router:  router,
		db:      db,
		toolkit: tk,
		agent:   ag,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)
		api.POST("/chat", s.chat)
		api.POST("/commands", s.command)
	}
	s.router.GET("/metrics", gin.WrapH(metrics.Handler()))
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	// Check database health
	if err := s.db.HealthCheck(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "database connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "frodo",
		"version": "0.1.0",
	})
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// chat runs one agent turn and returns Frodo's display string.
func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply, err := s.agent.Chat(c.Request.Context(), req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply})
}

type commandRequest struct {
	Command   string `json:"command" binding:"required"`
	Arguments struct {
		Args toolkit.Args `json:"args"`
	} `json:"arguments"`
}

// command invokes a toolkit command directly, bypassing the model. The result
// is the same plain display string the agent path produces.
func (s *Server) command(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "command is required"})
		return
	}

	args := req.Arguments.Args
	if args == nil {
		args = toolkit.Args{}
	}

	result, err := s.toolkit.Dispatch(c.Request.Context(), req.Command, args)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
