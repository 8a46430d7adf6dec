package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/quokkaworks/chatgate/internal/chat/store"
)

// HousekeepingService periodically deletes expired invites and idle sessions
// to prevent unbounded growth. Transcript messages cascade away with their
// session; a transcript nobody can resume is dead weight.
type HousekeepingService struct {
	Store      store.Store
	Logger     *slog.Logger
	Interval   time.Duration
	IdleWindow time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given
// sweep interval. If interval is 0 or negative, defaults to 1 hour. The idle
// window should match the session manager's.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, idleWindow time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if idleWindow <= 0 {
		idleWindow = DefaultSessionIdleWindow
	}

	return &HousekeepingService{
		Store:      store,
		Logger:     logger,
		Interval:   interval,
		IdleWindow: idleWindow,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

// run is the main background worker loop.
func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup performs the actual deletion of expired records.
// Each deletion is independent - failures in one won't stop the others.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	now := time.Now().UTC()
	s.Logger.Info("starting housekeeping cleanup")

	var successful int

	// Clean expired, unredeemed invites
	if err := s.Store.Invites().DeleteExpiredInvites(ctx, now); err != nil {
		s.Logger.Error("failed to delete expired invites", "error", err)
	} else {
		s.Logger.Debug("deleted expired invites")
		successful++
	}

	// Clean sessions idle past the window
	if err := s.Store.Sessions().DeleteIdleSessions(ctx, now.Add(-s.IdleWindow)); err != nil {
		s.Logger.Error("failed to delete idle sessions", "error", err)
	} else {
		s.Logger.Debug("deleted idle sessions")
		successful++
	}

	s.Logger.Info("housekeeping cleanup completed", "successful_cleanups", successful)
}
