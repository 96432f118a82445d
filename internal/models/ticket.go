package models

import "time"

// Ticket is a single help request filed by a player with the GM team.
// SubmitterID is the primary key: a player holds at most one open ticket at
// a time, and a zero SubmitterID marks an empty (uninitialized) slot that
// must never escape the registry.
type Ticket struct {
	SubmitterID uint64
	Question    string
	Response    string
	LastUpdate  time.Time
}

// Init sets all fields at once. It is used both for first creation and for
// reusing a stale slot when a submitter overwrites their open ticket.
func (t *Ticket) Init(submitterID uint64, question, response string, at time.Time) {
	t.SubmitterID = submitterID
	t.Question = question
	t.Response = response
	t.LastUpdate = at
}

// IsEmpty reports whether this ticket is an uninitialized slot.
func (t *Ticket) IsEmpty() bool {
	return t.SubmitterID == 0
}

// SetQuestion replaces the question text. Length bounding is the caller's
// responsibility; the model performs no validation.
func (t *Ticket) SetQuestion(text string) {
	t.Question = text
	t.LastUpdate = time.Now()
}

// SetResponse replaces the GM response text.
func (t *Ticket) SetResponse(text string) {
	t.Response = text
	t.LastUpdate = time.Now()
}

// HasResponse reports whether a GM has written any response yet.
func (t *Ticket) HasResponse() bool {
	return t.Response != ""
}
