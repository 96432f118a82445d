package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The global accept switch. Flipping it never touches existing tickets.

func (rt *Router) handleGetAccepting(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"accepting": rt.registry.Accepting()})
}

func (rt *Router) handleSetAccepting(c *gin.Context) {
	var req struct {
		Accepting *bool `json:"accepting" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	rt.registry.SetAccepting(*req.Accepting)
	c.JSON(http.StatusOK, gin.H{"accepting": rt.registry.Accepting()})
}

// Per-operator new-ticket announcements. This is session state for the
// operator surface, not registry state: it has no effect on tickets.

func operatorFromHeader(c *gin.Context) (string, bool) {
	operator := c.GetHeader("X-Operator")
	if operator == "" {
		sendError(c, http.StatusBadRequest, "X-Operator header is required")
		return "", false
	}
	return operator, true
}

func (rt *Router) handleGetOperatorNotify(c *gin.Context) {
	operator, ok := operatorFromHeader(c)
	if !ok {
		return
	}
	rt.notifyMu.Lock()
	enabled, known := rt.operatorNotify[operator]
	rt.notifyMu.Unlock()
	if !known {
		enabled = true // operators see new tickets unless they opt out
	}
	c.JSON(http.StatusOK, gin.H{"operator": operator, "notify": enabled})
}

func (rt *Router) handleSetOperatorNotify(c *gin.Context) {
	operator, ok := operatorFromHeader(c)
	if !ok {
		return
	}
	var req struct {
		Notify *bool `json:"notify" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	rt.notifyMu.Lock()
	rt.operatorNotify[operator] = *req.Notify
	rt.notifyMu.Unlock()
	c.JSON(http.StatusOK, gin.H{"operator": operator, "notify": *req.Notify})
}
