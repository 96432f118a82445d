package notifications

import (
	"context"
	"testing"
)

func TestMemoryNotifierRecordsLastUpdate(t *testing.T) {
	n := NewMemoryNotifier()

	if _, ok := n.LastUpdate(9); ok {
		t.Fatal("expected no update before delivery")
	}

	if err := n.NotifySubmitter(context.Background(), StatusUpdate{SubmitterID: 9, Status: 2}); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if err := n.NotifySubmitter(context.Background(), StatusUpdate{SubmitterID: 9, Status: 3, Survey: true}); err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	update, ok := n.LastUpdate(9)
	if !ok {
		t.Fatal("expected a recorded update")
	}
	if update.Status != 3 || !update.Survey {
		t.Fatalf("expected the later update to win, got %+v", update)
	}
}

func TestSetNotifierSwapsAndRestoresDefault(t *testing.T) {
	custom := NewMemoryNotifier()
	prev := SetNotifier(custom)
	defer SetNotifier(prev)

	if GetNotifier() != custom {
		t.Fatal("expected custom notifier to be installed")
	}

	SetNotifier(nil)
	if GetNotifier() == custom {
		t.Fatal("expected nil to restore a fresh default")
	}
}
