// Package scheduler runs the notification retention job: read
// notifications older than the retention window are deleted once a day.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/collabsphere/collabsphere/db"
	"github.com/collabsphere/collabsphere/internal/models"
)

const (
	pruneInterval = 24 * time.Hour
	retention     = 30 * 24 * time.Hour
)

type Pruner struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func NewPruner() *Pruner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pruner{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start prunes once immediately, then daily until Stop is called.
func (p *Pruner) Start() {
	log.Println("Starting notification pruner...")

	go func() {
		p.prune()

		ticker := time.NewTicker(pruneInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				p.prune()
			case <-p.ctx.Done():
				return
			}
		}
	}()
}

func (p *Pruner) Stop() {
	log.Println("Stopping notification pruner...")
	p.cancel()
}

func (p *Pruner) prune() {
	cutoff := time.Now().Add(-retention)

	result := db.DB.WithContext(p.ctx).
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})

	if result.Error != nil {
		log.Printf("Failed to prune notifications: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Pruned %d read notifications", result.RowsAffected)
	}
}
