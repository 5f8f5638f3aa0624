package database

import (
	"sync"
	"time"

	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
)

// PoolStats is a snapshot of the connection pool state
type PoolStats struct {
	OpenConnections    int
	IdleConnections    int
	MaxOpenConnections int
	InUse              int
	WaitCount          int64
	WaitDuration       time.Duration
}

// PoolMonitor periodically samples connection pool stats and logs pressure
type PoolMonitor struct {
	manager  *Manager
	logger   coreport.Logger
	cache    PoolStats
	mutex    sync.RWMutex
	stopChan chan struct{}
}

func NewPoolMonitor(manager *Manager, logger coreport.Logger) *PoolMonitor {
	return &PoolMonitor{
		manager:  manager,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start begins sampling at the given interval
func (m *PoolMonitor) Start(interval time.Duration) error {
	if err := m.collect(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := m.collect(); err != nil {
					m.logger.Error("Failed to collect connection pool stats", map[string]any{
						"error": err.Error(),
					})
				}
			case <-m.stopChan:
				ticker.Stop()
				return
			}
		}
	}()
	return nil
}

// Stop stops the sampling goroutine
func (m *PoolMonitor) Stop() {
	close(m.stopChan)
}

// Stats returns the last sampled pool state
func (m *PoolMonitor) Stats() PoolStats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.cache
}

func (m *PoolMonitor) collect() error {
	sqlDB, err := m.manager.DB().DB()
	if err != nil {
		return err
	}

	stats := sqlDB.Stats()
	snapshot := PoolStats{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
	}

	m.mutex.Lock()
	m.cache = snapshot
	m.mutex.Unlock()

	// Surface pool saturation early: waits mean callers blocked on a slot.
	if snapshot.WaitCount > 0 && snapshot.MaxOpenConnections > 0 &&
		snapshot.OpenConnections >= snapshot.MaxOpenConnections {
		m.logger.Warn("Database connection pool saturated", map[string]any{
			"open":          snapshot.OpenConnections,
			"max_open":      snapshot.MaxOpenConnections,
			"in_use":        snapshot.InUse,
			"wait_count":    snapshot.WaitCount,
			"wait_duration": snapshot.WaitDuration.String(),
		})
	}
	return nil
}
