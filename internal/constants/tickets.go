// Package constants holds shared ticket status codes and persistence names.
package constants

// Status codes pushed to a submitter's client when their ticket changes state.
// The client interprets these; the server only forwards them.
const (
	// TicketStatusClosed tells the client the ticket was closed and the
	// pending-ticket indicator should go away.
	TicketStatusClosed = 2

	// TicketStatusSurvey is TicketStatusClosed plus a request to present
	// the satisfaction survey dialog.
	TicketStatusSurvey = 3
)

// Submission responses returned to a submitter on create/update attempts.
const (
	TicketCreated   = "created"
	TicketUpdated   = "updated"
	TicketSystemOff = "tickets_unavailable"
)
