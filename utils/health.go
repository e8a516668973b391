package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthStatus is the latest probe result for every external dependency the
// server needs: Mongo plus each Redis database by role. The settlement
// pipeline is only live when the "queue" entry is healthy; a payment created
// while it is down settles late, via the reconciliation sweep.
type HealthStatus struct {
	Mongo     bool            `json:"mongo"`
	Redis     map[string]bool `json:"redis"`
	CheckedAt time.Time       `json:"checkedAt"`
}

// Healthy reports whether every dependency answered its last probe.
func (h HealthStatus) Healthy() bool {
	if !h.Mongo {
		return false
	}
	for _, ok := range h.Redis {
		if !ok {
			return false
		}
	}
	return true
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// RedisPinger is the slice of *redis.Client the monitor needs.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// MongoPinger is the slice of *mongo.Client the monitor needs.
type MongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// checkHealth probes every dependency once.
func checkHealth(ctx context.Context, redisClients map[string]RedisPinger, mongoClient MongoPinger) HealthStatus {
	redisHealth := make(map[string]bool, len(redisClients))
	for role, client := range redisClients {
		redisHealth[role] = client.Ping(ctx).Err() == nil
	}

	return HealthStatus{
		Mongo:     mongoClient.Ping(ctx, nil) == nil,
		Redis:     redisHealth,
		CheckedAt: time.Now(),
	}
}

// StartHealthMonitor probes Mongo and the given Redis databases on the
// configured interval and keeps the snapshot served at /health fresh. Redis
// clients are keyed by role ("cache", "auth", "queue") so a single flaky
// database is attributable from the health payload.
func StartHealthMonitor(redisClients map[string]RedisPinger, mongoClient MongoPinger, interval time.Duration) {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			status := checkHealth(ctx, redisClients, mongoClient)

			healthMu.Lock()
			currentHealth = status
			healthMu.Unlock()
		}
	}()
}
