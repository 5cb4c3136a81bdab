package mocks

import (
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/app/models"
	"context"
	"io"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/mock"
)

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) Increment(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRedisRepository) GetInt(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRedisRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	args := m.Called(ctx, key, ttl)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

// InMemoryRedisRepository behaves like the redis repository without a
// server: values are JSON encoded on Set and expiry is ignored.
type InMemoryRedisRepository struct {
	mu     sync.Mutex
	Values map[string]string
}

func NewInMemoryRedisRepository() *InMemoryRedisRepository {
	return &InMemoryRedisRepository{Values: map[string]string{}}
}

func (r *InMemoryRedisRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Values, key)
	return nil
}

func (r *InMemoryRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Values[key] = string(encoded)
	return nil
}

func (r *InMemoryRedisRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Values[key], nil
}

func (r *InMemoryRedisRepository) Increment(ctx context.Context, key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var current int64
	if raw, ok := r.Values[key]; ok {
		json.Unmarshal([]byte(raw), &current)
	}
	current++
	encoded, _ := json.Marshal(current)
	r.Values[key] = string(encoded)
	return current, nil
}

func (r *InMemoryRedisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return r.Increment(ctx, key)
}

func (r *InMemoryRedisRepository) GetInt(ctx context.Context, key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var current int64
	if raw, ok := r.Values[key]; ok {
		if err := json.Unmarshal([]byte(raw), &current); err != nil {
			return 0, err
		}
	}
	return current, nil
}

func (r *InMemoryRedisRepository) Exists(ctx context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.Values[key]
	return ok, nil
}

func (r *InMemoryRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	r.mu.Lock()
	if _, ok := r.Values[key]; ok {
		r.mu.Unlock()
		return false, nil
	}
	r.mu.Unlock()
	return true, r.Set(ctx, key, value, exp)
}

// PassthroughQueryCache always calls the loader.
type PassthroughQueryCache struct {
	mu          sync.Mutex
	Invalidated []string
}

func (c *PassthroughQueryCache) Fetch(ctx context.Context, namespace string, params map[string]string, ttl time.Duration, out interface{}, loader func(ctx context.Context) error) error {
	return loader(ctx)
}

func (c *PassthroughQueryCache) Invalidate(ctx context.Context, namespaces ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Invalidated = append(c.Invalidated, namespaces...)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(ctx context.Context, event string, data interface{}) error {
	return m.Called(ctx, event, data).Error(0)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Record(ctx context.Context, event *models.AuditEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockAuditRepository) ListByEntity(ctx context.Context, entity, entityID string, limit int) ([]models.AuditEvent, error) {
	args := m.Called(ctx, entity, entityID, limit)
	events, _ := args.Get(0).([]models.AuditEvent)
	return events, args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadFile(ctx context.Context, file io.Reader, size int64, contentType, bucketName, objectName string) (string, error) {
	args := m.Called(ctx, file, size, contentType, bucketName, objectName)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiryTime)
	return args.String(0), args.Error(1)
}

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	return m.Called(ctx, key, lockValue).Error(0)
}

type MockResourceLimiter struct {
	mock.Mock
}

func (m *MockResourceLimiter) Allow(ctx context.Context, group, resource string, window time.Duration, quota int) (*contracts.LimitResult, error) {
	args := m.Called(ctx, group, resource, window, quota)
	result, _ := args.Get(0).(*contracts.LimitResult)
	return result, args.Error(1)
}
