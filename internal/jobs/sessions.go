package jobs

import (
	"time"

	logx "github.com/stylemart/shopbot-backend/pkg/logger"

	"github.com/stylemart/shopbot-backend/internal/storage"
)

// SessionExpiryJob sweeps active sessions and marks stale ones inactive.
type SessionExpiryJob struct {
	store     storage.Store
	ttl       time.Duration
	interval  time.Duration
	stop      chan struct{}
	isRunning bool
}

// NewSessionExpiryJob creates a new session expiry job. Sessions idle for
// longer than ttl are closed; the sweep runs every interval.
func NewSessionExpiryJob(store storage.Store, ttl, interval time.Duration) *SessionExpiryJob {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SessionExpiryJob{
		store:    store,
		ttl:      ttl,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start begins the background sweep.
func (j *SessionExpiryJob) Start() {
	if j.isRunning {
		logx.Warn().Msg("session expiry job already running")
		return
	}
	j.isRunning = true
	logx.Info().Dur("ttl", j.ttl).Dur("interval", j.interval).Msg("session expiry job started")
	go j.run()
}

// Stop halts the sweep. Safe to call once.
func (j *SessionExpiryJob) Stop() {
	if !j.isRunning {
		return
	}
	j.isRunning = false
	close(j.stop)
	logx.Info().Msg("session expiry job stopped")
}

func (j *SessionExpiryJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.Sweep()
		case <-j.stop:
			return
		}
	}
}

// Sweep closes every active session that has been idle past the TTL and
// returns how many were closed.
func (j *SessionExpiryJob) Sweep() int {
	cutoff := time.Now().Add(-j.ttl)

	stale, err := j.store.GetStaleActiveSessions(cutoff)
	if err != nil {
		logx.Error().Err(err).Msg("stale session lookup failed")
		return 0
	}

	closed := 0
	for _, session := range stale {
		session.IsActive = false
		if err := j.store.UpdateSession(session); err != nil {
			logx.Warn().Err(err).Str("session_id", session.SessionID).Msg("could not close stale session")
			continue
		}
		closed++
	}

	if closed > 0 {
		logx.Info().Int("closed", closed).Msg("stale sessions closed")
	}
	return closed
}
