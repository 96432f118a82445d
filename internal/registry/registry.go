// Package registry is the in-memory index over open GM tickets. It is the
// sole entry point for ticket lifecycle operations and keeps the by-submitter
// map and the creation-order list consistent as two views of one set.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/realmkit/gmdesk/internal/constants"
	"github.com/realmkit/gmdesk/internal/models"
	"github.com/realmkit/gmdesk/internal/notifications"
	"github.com/realmkit/gmdesk/internal/repository"
)

// Registry owns every open ticket. byID and order always hold the identical
// ticket pointers; a reader sees either the pre- or post-mutation state of
// both, never one without the other.
type Registry struct {
	mu        sync.Mutex
	byID      map[uint64]*models.Ticket
	order     []*models.Ticket
	accepting bool
	loaded    bool

	store    repository.TicketStore
	notifier notifications.Notifier
}

// New constructs a registry around a ticket store and a submitter notifier.
// The accept switch starts in the given state; tickets are loaded separately
// via LoadAll.
func New(store repository.TicketStore, notifier notifications.Notifier, accepting bool) *Registry {
	return &Registry{
		byID:      make(map[uint64]*models.Ticket),
		accepting: accepting,
		store:     store,
		notifier:  notifier,
	}
}

// LoadAll bulk-populates both indices from the store in stored creation
// order. Startup only: it must run before any other operation and exactly
// once.
func (r *Registry) LoadAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return errors.New("registry already loaded")
	}

	tickets, err := r.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tickets: %w", err)
	}

	for _, ticket := range tickets {
		if ticket.IsEmpty() {
			log.Printf("registry: skipping stored ticket with zero submitter id")
			continue
		}
		r.byID[ticket.SubmitterID] = ticket
		r.order = append(r.order, ticket)
	}
	r.loaded = true

	openTickets().Set(float64(len(r.byID)))
	r.checkIndexes()
	return nil
}

// Get returns the open ticket for a submitter, or nil if there is none.
// Absence is not an error.
func (r *Registry) Get(submitterID uint64) *models.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[submitterID]
}

// Count returns the number of open tickets.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// ByPosition returns the ticket at a 0-based position in creation order, or
// nil when out of range. Positions shift whenever an earlier ticket is
// removed; callers must not cache them across mutations.
func (r *Registry) ByPosition(pos int) *models.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pos < 0 || pos >= len(r.order) {
		return nil
	}
	return r.order[pos]
}

// Tickets returns a snapshot of all open tickets in creation order. Callers
// walking the whole set should use this rather than repeated ByPosition
// calls.
func (r *Registry) Tickets() []*models.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Ticket, len(r.order))
	copy(out, r.order)
	return out
}

// Create files a ticket for a submitter. If the submitter already has one
// open, its persisted row is deleted and its slot reused; either way exactly
// one open ticket survives, with the new question, a cleared response, and a
// fresh position at the tail of the creation order.
//
// Create does not consult the accept switch; gating submissions on it is the
// caller's job. Persistence failures are returned but the in-memory state is
// already updated and is not rolled back.
func (r *Registry) Create(ctx context.Context, submitterID uint64, question string) error {
	if submitterID == 0 {
		return errors.New("submitter id must be non-zero")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var persistErr error

	ticket := r.byID[submitterID]
	if ticket != nil {
		// Overwrite: drop the stale row and order entry, reuse the slot.
		if err := r.store.Delete(ctx, submitterID); err != nil {
			persistErr = err
		}
		r.spliceOut(ticket)
	} else {
		ticket = &models.Ticket{}
		r.byID[submitterID] = ticket
	}

	ticket.Init(submitterID, question, "", time.Now())

	if err := r.store.Upsert(ctx, ticket); err != nil {
		persistErr = errors.Join(persistErr, err)
	}

	// New and overwritten tickets always sort last.
	r.order = append(r.order, ticket)

	ticketsCreated().Inc()
	openTickets().Set(float64(len(r.byID)))
	r.checkIndexes()
	return persistErr
}

// Remove deletes a submitter's ticket from the store and both indices.
// No-op when the submitter has no open ticket.
func (r *Registry) Remove(ctx context.Context, submitterID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(ctx, submitterID)
}

// RemoveAll deletes every open ticket's row and clears both indices.
// Used for a full system reset.
func (r *Registry) RemoveAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var persistErr error
	for _, ticket := range r.order {
		if err := r.store.Delete(ctx, ticket.SubmitterID); err != nil {
			persistErr = errors.Join(persistErr, err)
		}
	}

	r.byID = make(map[uint64]*models.Ticket)
	r.order = nil

	openTickets().Set(0)
	r.checkIndexes()
	return persistErr
}

// Close notifies the submitter that their ticket was closed, deletes the
// persisted row, and removes the ticket from both indices. No-op when the
// submitter has no open ticket.
func (r *Registry) Close(ctx context.Context, submitterID uint64) error {
	return r.close(ctx, submitterID, constants.TicketStatusClosed, false)
}

// CloseWithSurvey is Close plus a request for the submitter's client to
// present the satisfaction survey.
func (r *Registry) CloseWithSurvey(ctx context.Context, submitterID uint64) error {
	return r.close(ctx, submitterID, constants.TicketStatusSurvey, true)
}

func (r *Registry) close(ctx context.Context, submitterID uint64, status int, survey bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byID[submitterID] == nil {
		return nil
	}

	// Best effort: an unreachable submitter does not block the close.
	update := notifications.StatusUpdate{SubmitterID: submitterID, Status: status, Survey: survey}
	if err := r.notifier.NotifySubmitter(ctx, update); err != nil {
		log.Printf("registry: failed to notify submitter %d of close: %v", submitterID, err)
	}

	err := r.removeLocked(ctx, submitterID)
	ticketsClosed(survey).Inc()
	return err
}

// RecordSurveyResult accepts a submitter's survey response and discards it.
// Survey persistence is intentionally unimplemented; the method exists so the
// gap is an explicit part of the contract rather than a dropped call.
func (r *Registry) RecordSurveyResult(submitterID uint64, payload []byte) {
	log.Printf("registry: discarding %d byte survey result from submitter %d (survey storage not implemented)",
		len(payload), submitterID)
}

// SetAccepting flips the global accept switch. Pure state: existing tickets
// and indices are untouched.
func (r *Registry) SetAccepting(accept bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepting = accept
}

// Accepting reports whether new ticket submissions are allowed.
func (r *Registry) Accepting() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accepting
}

func (r *Registry) removeLocked(ctx context.Context, submitterID uint64) error {
	ticket := r.byID[submitterID]
	if ticket == nil {
		return nil
	}

	err := r.store.Delete(ctx, submitterID)

	r.spliceOut(ticket)
	delete(r.byID, submitterID)

	openTickets().Set(float64(len(r.byID)))
	r.checkIndexes()
	return err
}

// spliceOut removes the entry holding this exact ticket pointer from the
// creation-order list.
func (r *Registry) spliceOut(ticket *models.Ticket) {
	for i, t := range r.order {
		if t == ticket {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

// checkIndexes asserts that byID and order describe the same ticket set.
// A mismatch is a programming defect in this package, never a runtime
// condition to repair, so it panics.
func (r *Registry) checkIndexes() {
	if len(r.byID) != len(r.order) {
		panic(fmt.Sprintf("registry index mismatch: %d by id, %d by order", len(r.byID), len(r.order)))
	}
	for _, ticket := range r.order {
		if ticket.IsEmpty() {
			panic("registry holds an uninitialized ticket slot")
		}
		if r.byID[ticket.SubmitterID] != ticket {
			panic(fmt.Sprintf("registry index mismatch for submitter %d", ticket.SubmitterID))
		}
	}
}
