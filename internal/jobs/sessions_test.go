package jobs

import (
	"testing"
	"time"

	"github.com/stylemart/shopbot-backend/internal/models"
	"github.com/stylemart/shopbot-backend/internal/storage"
)

func TestSweepClosesStaleSessions(t *testing.T) {
	store := storage.NewMemoryStore()

	fresh, err := store.CreateSession(&models.ChatSession{SessionID: "session-fresh0000001", Channel: "web", IsActive: true})
	if err != nil {
		t.Fatal(err)
	}
	stale, err := store.CreateSession(&models.ChatSession{SessionID: "session-stale0000001", Channel: "web", IsActive: true})
	if err != nil {
		t.Fatal(err)
	}
	ended, err := store.CreateSession(&models.ChatSession{SessionID: "session-ended0000001", Channel: "web", IsActive: false})
	if err != nil {
		t.Fatal(err)
	}

	// age the stale and ended sessions past the TTL
	stale.UpdatedAt = time.Now().Add(-2 * time.Hour)
	ended.UpdatedAt = time.Now().Add(-2 * time.Hour)

	job := NewSessionExpiryJob(store, 30*time.Minute, time.Minute)

	if closed := job.Sweep(); closed != 1 {
		t.Fatalf("closed %d sessions, want 1", closed)
	}

	got, err := store.GetSession(stale.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if got.IsActive {
		t.Error("stale session should be inactive after sweep")
	}

	got, err = store.GetSession(fresh.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsActive {
		t.Error("fresh session must stay active")
	}
}

func TestSweepDefaults(t *testing.T) {
	job := NewSessionExpiryJob(storage.NewMemoryStore(), 0, 0)
	if job.ttl != 30*time.Minute {
		t.Errorf("ttl = %s, want 30m default", job.ttl)
	}
	if job.interval != 5*time.Minute {
		t.Errorf("interval = %s, want 5m default", job.interval)
	}
}
