package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/realmkit/gmdesk/internal/constants"
	"github.com/realmkit/gmdesk/internal/models"
)

func ticketJSON(t *models.Ticket) gin.H {
	return gin.H{
		"submitter_id": strconv.FormatUint(t.SubmitterID, 10),
		"question":     t.Question,
		"response":     t.Response,
		"has_response": t.HasResponse(),
		"last_update":  t.LastUpdate.UTC().Format(time.RFC3339),
	}
}

func parseSubmitterParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("submitter"), 10, 64)
	if err != nil || id == 0 {
		sendError(c, http.StatusBadRequest, "Invalid submitter id")
		return 0, false
	}
	return id, true
}

// parsePositionParam maps the operator-facing 1-based ticket number onto the
// registry's 0-based position.
func parsePositionParam(c *gin.Context) (int, bool) {
	pos, err := strconv.Atoi(c.Param("pos"))
	if err != nil || pos < 1 {
		sendError(c, http.StatusBadRequest, "Invalid ticket position")
		return 0, false
	}
	return pos - 1, true
}

// handleListTickets enumerates open tickets in creation order.
func (rt *Router) handleListTickets(c *gin.Context) {
	tickets := rt.registry.Tickets()
	out := make([]gin.H, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ticketJSON(t))
	}
	c.JSON(http.StatusOK, gin.H{"tickets": out, "count": len(out)})
}

func (rt *Router) handleCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": rt.registry.Count()})
}

func (rt *Router) handleGetBySubmitter(c *gin.Context) {
	id, ok := parseSubmitterParam(c)
	if !ok {
		return
	}
	ticket := rt.registry.Get(id)
	if ticket == nil {
		sendNotFound(c)
		return
	}
	c.JSON(http.StatusOK, ticketJSON(ticket))
}

func (rt *Router) handleGetByPosition(c *gin.Context) {
	pos, ok := parsePositionParam(c)
	if !ok {
		return
	}
	ticket := rt.registry.ByPosition(pos)
	if ticket == nil {
		sendNotFound(c)
		return
	}
	c.JSON(http.StatusOK, ticketJSON(ticket))
}

// handleCreateTicket files (or overwrites) the submitter's ticket. A rejected
// submission while the system is off gets a distinct "tickets unavailable"
// code, never a generic failure.
func (rt *Router) handleCreateTicket(c *gin.Context) {
	var req struct {
		SubmitterID uint64 `json:"submitter_id" binding:"required"`
		Question    string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid ticket request: "+err.Error())
		return
	}

	if !rt.registry.Accepting() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":  constants.TicketSystemOff,
			"error": "The ticket system is currently unavailable",
		})
		return
	}

	if len(req.Question) > rt.maxQuestionLen {
		sendError(c, http.StatusBadRequest, "Question too long")
		return
	}

	code := constants.TicketCreated
	if rt.registry.Get(req.SubmitterID) != nil {
		code = constants.TicketUpdated
	}

	if err := rt.registry.Create(c.Request.Context(), req.SubmitterID, req.Question); err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to persist ticket")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":   code,
		"ticket": ticketJSON(rt.registry.Get(req.SubmitterID)),
	})
}

func (rt *Router) handleRemoveBySubmitter(c *gin.Context) {
	id, ok := parseSubmitterParam(c)
	if !ok {
		return
	}
	// Removing an absent ticket is a no-op, not an error.
	if err := rt.registry.Remove(c.Request.Context(), id); err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to delete ticket")
		return
	}
	c.Status(http.StatusNoContent)
}

func (rt *Router) handleRemoveAll(c *gin.Context) {
	if err := rt.registry.RemoveAll(c.Request.Context()); err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to delete tickets")
		return
	}
	c.Status(http.StatusNoContent)
}

func (rt *Router) handleCloseBySubmitter(c *gin.Context) {
	rt.closeBySubmitter(c, false)
}

func (rt *Router) handleCloseWithSurveyBySubmitter(c *gin.Context) {
	rt.closeBySubmitter(c, true)
}

func (rt *Router) closeBySubmitter(c *gin.Context, survey bool) {
	id, ok := parseSubmitterParam(c)
	if !ok {
		return
	}
	if rt.registry.Get(id) == nil {
		sendNotFound(c)
		return
	}
	rt.closeTicket(c, id, survey)
}

func (rt *Router) handleCloseByPosition(c *gin.Context) {
	rt.closeByPosition(c, false)
}

func (rt *Router) handleCloseWithSurveyByPosition(c *gin.Context) {
	rt.closeByPosition(c, true)
}

func (rt *Router) closeByPosition(c *gin.Context, survey bool) {
	pos, ok := parsePositionParam(c)
	if !ok {
		return
	}
	ticket := rt.registry.ByPosition(pos)
	if ticket == nil {
		sendNotFound(c)
		return
	}
	rt.closeTicket(c, ticket.SubmitterID, survey)
}

func (rt *Router) closeTicket(c *gin.Context, submitterID uint64, survey bool) {
	var err error
	if survey {
		err = rt.registry.CloseWithSurvey(c.Request.Context(), submitterID)
	} else {
		err = rt.registry.Close(c.Request.Context(), submitterID)
	}
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to close ticket")
		return
	}
	c.JSON(http.StatusOK, gin.H{"closed": strconv.FormatUint(submitterID, 10), "survey": survey})
}

// handleSurveySubmit accepts a submitter's survey payload. The payload is
// discarded; see Registry.RecordSurveyResult.
func (rt *Router) handleSurveySubmit(c *gin.Context) {
	id, ok := parseSubmitterParam(c)
	if !ok {
		return
	}
	payload, err := c.GetRawData()
	if err != nil {
		sendError(c, http.StatusBadRequest, "Failed to read survey payload")
		return
	}
	rt.registry.RecordSurveyResult(id, payload)
	c.Status(http.StatusAccepted)
}
