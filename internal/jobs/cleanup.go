package jobs

import (
	"log"
	"time"

	"github.com/rajmohan-14/Travel-itinerary/internal/services"
)

// CleanupJob periodically sweeps expired session-store entries (stale
// pending registrations and spent token revocations). OTP codes are
// untouched: they only die by overwrite or consumption.
type CleanupJob struct {
	sessions  services.SessionStore
	interval  time.Duration
	isRunning bool
	stop      chan struct{}
}

// NewCleanupJob creates a new cleanup job scheduler
func NewCleanupJob(sessions services.SessionStore) *CleanupJob {
	return &CleanupJob{
		sessions: sessions,
		interval: time.Hour,
		stop:     make(chan struct{}),
	}
}

// Start begins the scheduled sweep
func (j *CleanupJob) Start() {
	if j.isRunning {
		log.Println("Cleanup job already running")
		return
	}

	j.isRunning = true
	log.Println("Starting session cleanup job...")

	go j.run()
}

// Stop halts the scheduled sweep
func (j *CleanupJob) Stop() {
	if !j.isRunning {
		return
	}
	j.isRunning = false
	close(j.stop)
	log.Println("Stopping session cleanup job...")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sessions.PurgeExpired()
			log.Println("🧹 Session store sweep completed")
		case <-j.stop:
			return
		}
	}
}
