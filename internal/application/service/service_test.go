package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/billbook-api/internal/application/billing"
	"github.com/sangkips/billbook-api/internal/infrastructure/cache"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCache is an in-process Cache used in place of Redis.
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	locks   map[string]bool
	deletes int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, locks: map[string]bool{}}
}

func (c *memCache) GetObject(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) SetObject(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	c.deletes++
	return nil
}

func (c *memCache) Obtain(_ context.Context, key string, _ time.Duration) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locks[key] {
		return func() {}, cache.ErrLocked
	}
	c.locks[key] = true
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.locks, key)
	}, nil
}

func f64(v float64) *float64 { return &v }

func str(s string) *string { return &s }

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func sampleItems() []billing.ItemInput {
	return []billing.ItemInput{
		{Name: "Rice", Quantity: f64(2), Price: f64(50)},
		{Name: "Oil", Quantity: f64(1), Price: f64(30)},
	}
}

func requireKind(t *testing.T, err error, kind apperror.Kind) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok, "expected *apperror.AppError, got %T", err)
	assert.Equal(t, kind, appErr.Kind)
	return appErr
}
