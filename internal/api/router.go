// Package api exposes the operator and submitter HTTP surface over the
// ticket registry.
package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/realmkit/gmdesk/internal/registry"
)

// Router wires the ticket endpoints onto a gin engine.
type Router struct {
	registry       *registry.Registry
	maxQuestionLen int

	// Per-operator "show new tickets" preference. Session-scoped state,
	// deliberately outside the registry.
	notifyMu       sync.Mutex
	operatorNotify map[string]bool
}

// NewRouter creates a router over the given registry. maxQuestionLen bounds
// submitted question text; the registry itself treats text as opaque.
func NewRouter(reg *registry.Registry, maxQuestionLen int) *Router {
	return &Router{
		registry:       reg,
		maxQuestionLen: maxQuestionLen,
		operatorNotify: make(map[string]bool),
	}
}

// Register mounts all routes under /api/v1.
func (rt *Router) Register(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	tickets := v1.Group("/tickets")
	tickets.GET("", rt.handleListTickets)
	tickets.POST("", rt.handleCreateTicket)
	tickets.DELETE("", rt.handleRemoveAll)
	tickets.GET("/count", rt.handleCount)

	submitter := tickets.Group("/submitter/:submitter")
	submitter.GET("", rt.handleGetBySubmitter)
	submitter.DELETE("", rt.handleRemoveBySubmitter)
	submitter.POST("/close", rt.handleCloseBySubmitter)
	submitter.POST("/close_survey", rt.handleCloseWithSurveyBySubmitter)
	submitter.POST("/survey", rt.handleSurveySubmit)

	position := tickets.Group("/position/:pos")
	position.GET("", rt.handleGetByPosition)
	position.POST("/close", rt.handleCloseByPosition)
	position.POST("/close_survey", rt.handleCloseWithSurveyByPosition)

	system := v1.Group("/system")
	system.GET("/accepting", rt.handleGetAccepting)
	system.PUT("/accepting", rt.handleSetAccepting)

	operator := v1.Group("/operator")
	operator.GET("/notify", rt.handleGetOperatorNotify)
	operator.PUT("/notify", rt.handleSetOperatorNotify)
}

func sendError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func sendNotFound(c *gin.Context) {
	sendError(c, http.StatusNotFound, "Ticket not found")
}
