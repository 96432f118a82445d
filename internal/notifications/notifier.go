// Package notifications delivers ticket status updates to submitters.
package notifications

import (
	"context"
	"sync"
)

// StatusUpdate is what a submitter's client receives when their ticket
// changes state.
type StatusUpdate struct {
	SubmitterID uint64
	Status      int
	// Survey asks the client to present the satisfaction survey dialog.
	Survey bool
}

// Notifier pushes a status update to a submitter. Delivery is best effort:
// the registry proceeds with the close regardless of whether the submitter
// was reachable.
type Notifier interface {
	NotifySubmitter(ctx context.Context, update StatusUpdate) error
}

// MemoryNotifier records the most recent update per submitter. It is the
// default until the session layer installs a real gateway, and doubles as a
// test double.
type MemoryNotifier struct {
	mu      sync.Mutex
	updates map[uint64]StatusUpdate
}

// NewMemoryNotifier creates an empty in-memory notifier.
func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{updates: make(map[uint64]StatusUpdate)}
}

// NotifySubmitter stores the update, overwriting any earlier one.
func (n *MemoryNotifier) NotifySubmitter(_ context.Context, update StatusUpdate) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updates[update.SubmitterID] = update
	return nil
}

// LastUpdate returns the most recent update delivered to a submitter.
func (n *MemoryNotifier) LastUpdate(submitterID uint64) (StatusUpdate, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	update, ok := n.updates[submitterID]
	return update, ok
}
