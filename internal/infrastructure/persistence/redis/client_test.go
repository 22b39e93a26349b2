package redis_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DanielPopoola/rental-pricing-engine/internal/config"
	"github.com/DanielPopoola/rental-pricing-engine/internal/infrastructure/persistence/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsTransient(t *testing.T) {
	assert.True(t, redis.IsTransient(timeoutErr{}))
	assert.True(t, redis.IsTransient(errors.New("LOADING Redis is loading the dataset in memory")))
	assert.True(t, redis.IsTransient(errors.New("TRYAGAIN multiple keys request during rehashing")))
	assert.True(t, redis.IsTransient(fmt.Errorf("save quote: %w", errors.New("LOADING Redis is loading the dataset in memory"))))
	assert.True(t, redis.IsTransient(fmt.Errorf("get quote: %w", errors.New("BUSY Redis is busy running a script"))))
	assert.True(t, redis.IsTransient(fmt.Errorf("get quote: %w", timeoutErr{})))
	assert.False(t, redis.IsTransient(goredis.Nil))
	assert.False(t, redis.IsTransient(fmt.Errorf("get quote: %w", goredis.Nil)))
	assert.False(t, redis.IsTransient(errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")))
	assert.False(t, redis.IsTransient(nil))
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := redis.Connect(context.Background(), config.RedisConfig{URL: "http://nope", DialTimeout: time.Second})
	assert.ErrorContains(t, err, "parse redis URL")
}
