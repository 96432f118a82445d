package notifications

import "sync"

var (
	globalMu       sync.RWMutex
	globalNotifier Notifier = NewMemoryNotifier()
)

// SetNotifier replaces the shared notifier and returns the previous one.
// The session layer installs its gateway here at startup; passing nil
// restores the in-memory default.
func SetNotifier(n Notifier) Notifier {
	globalMu.Lock()
	defer globalMu.Unlock()
	prev := globalNotifier
	if n == nil {
		globalNotifier = NewMemoryNotifier()
	} else {
		globalNotifier = n
	}
	return prev
}

// GetNotifier returns the shared notifier instance.
func GetNotifier() Notifier {
	globalMu.RLock()
	n := globalNotifier
	globalMu.RUnlock()
	return n
}
