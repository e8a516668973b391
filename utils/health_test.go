package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type fakeRedis struct{ err error }

func (f fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	}
	return cmd
}

type fakeMongo struct{ err error }

func (f fakeMongo) Ping(ctx context.Context, rp *readpref.ReadPref) error {
	return f.err
}

func TestCheckHealth(t *testing.T) {
	down := errors.New("connection refused")

	t.Run("all dependencies healthy", func(t *testing.T) {
		status := checkHealth(context.Background(), map[string]RedisPinger{
			"cache": fakeRedis{},
			"auth":  fakeRedis{},
			"queue": fakeRedis{},
		}, fakeMongo{})

		assert.True(t, status.Mongo)
		assert.Equal(t, map[string]bool{"cache": true, "auth": true, "queue": true}, status.Redis)
		assert.True(t, status.Healthy())
		assert.False(t, status.CheckedAt.IsZero())
	})

	t.Run("queue database down is attributable", func(t *testing.T) {
		status := checkHealth(context.Background(), map[string]RedisPinger{
			"cache": fakeRedis{},
			"auth":  fakeRedis{},
			"queue": fakeRedis{err: down},
		}, fakeMongo{})

		assert.True(t, status.Mongo)
		assert.True(t, status.Redis["cache"])
		assert.True(t, status.Redis["auth"])
		assert.False(t, status.Redis["queue"])
		assert.False(t, status.Healthy())
	})

	t.Run("mongo down", func(t *testing.T) {
		status := checkHealth(context.Background(), map[string]RedisPinger{
			"cache": fakeRedis{},
		}, fakeMongo{err: down})

		assert.False(t, status.Mongo)
		assert.True(t, status.Redis["cache"])
		assert.False(t, status.Healthy())
	})
}
