package auth

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/myturn82/dragonj/internal/storage"
)

// SessionCleaner periodically deletes expired session rows so the
// sessions table does not grow without bound.
type SessionCleaner struct {
	cron  *cron.Cron
	users *storage.UserRepository
}

// NewSessionCleaner creates a cleaner over the given user repository.
func NewSessionCleaner(users *storage.UserRepository) *SessionCleaner {
	return &SessionCleaner{
		cron:  cron.New(),
		users: users,
	}
}

// Start runs one cleanup immediately, then hourly.
func (c *SessionCleaner) Start() {
	c.run()

	if _, err := c.cron.AddFunc("@hourly", c.run); err != nil {
		log.Printf("Failed to schedule session cleanup: %v", err)
		return
	}
	c.cron.Start()
	log.Println("Session cleaner started")
}

// Stop gracefully shuts down the cleaner.
func (c *SessionCleaner) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()
	log.Println("Session cleaner stopped")
}

func (c *SessionCleaner) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := c.users.DeleteExpiredSessions(ctx)
	if err != nil {
		log.Printf("Failed to delete expired sessions: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Deleted %d expired sessions", deleted)
	}
}
