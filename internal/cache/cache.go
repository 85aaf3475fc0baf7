package cache

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Cache is the subset of LRUCache that consumers depend on.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	// Take removes and returns the value in one step.
	Take(key string) (T, bool)
	Delete(key string)
	Size() int
}

type Cleaner interface {
	CleanExpired() int
}

// Manager periodically sweeps expired entries from every registered cache.
type Manager struct {
	logger      *logrus.Logger
	caches      []Cleaner
	stopCleanup chan struct{}
	cleanupDone chan struct{}
}

func NewManager(logger *logrus.Logger) *Manager {
	return &Manager{
		logger:      logger,
		stopCleanup: make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}
}

// Register must be called before StartCleanup.
func (m *Manager) Register(cache Cleaner) {
	m.caches = append(m.caches, cache)
}

func (m *Manager) StartCleanup(interval time.Duration) {
	go m.cleanup(interval)
}

func (m *Manager) cleanup(interval time.Duration) {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := m.Sweep(); cleaned > 0 {
				m.logger.WithField("removed", cleaned).Debug("Cache.Manager.sweep")
			}
		case <-m.stopCleanup:
			return
		}
	}
}

// Sweep cleans all registered caches once and returns the number of removed entries.
func (m *Manager) Sweep() int {
	total := 0
	for _, c := range m.caches {
		total += c.CleanExpired()
	}
	return total
}

// Stop must only be called after StartCleanup.
func (m *Manager) Stop() {
	close(m.stopCleanup)
	<-m.cleanupDone
}
