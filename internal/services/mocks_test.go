package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"service-order-system/internal/entities"
	"service-order-system/internal/repositories"
	"service-order-system/pkg/eventbus"
	"service-order-system/pkg/types"
)

type orderRepoMock struct {
	mock.Mock
}

func (m *orderRepoMock) GetOrders(ctx context.Context, filter types.OrderFilter, limit, offset uint64) ([]entities.ServiceOrder, uint64, error) {
	args := m.Called(ctx, filter, limit, offset)
	orders, _ := args.Get(0).([]entities.ServiceOrder)
	return orders, args.Get(1).(uint64), args.Error(2)
}

func (m *orderRepoMock) GetAllOrders(ctx context.Context, filter types.OrderFilter) ([]entities.ServiceOrder, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]entities.ServiceOrder)
	return orders, args.Error(1)
}

func (m *orderRepoMock) FindByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.ServiceOrder, error) {
	args := m.Called(ctx, tx, id)
	order, _ := args.Get(0).(*entities.ServiceOrder)
	return order, args.Error(1)
}

func (m *orderRepoMock) Update(ctx context.Context, tx pgx.Tx, order entities.ServiceOrder) error {
	return m.Called(ctx, tx, order).Error(0)
}

type technicianRepoMock struct {
	mock.Mock
}

func (m *technicianRepoMock) GetAll(ctx context.Context) ([]entities.Technician, error) {
	args := m.Called(ctx)
	technicians, _ := args.Get(0).([]entities.Technician)
	return technicians, args.Error(1)
}

func (m *technicianRepoMock) FindByUserID(ctx context.Context, userID uuid.UUID) (*entities.Technician, error) {
	args := m.Called(ctx, userID)
	t, _ := args.Get(0).(*entities.Technician)
	return t, args.Error(1)
}

func (m *technicianRepoMock) Create(ctx context.Context, tx pgx.Tx, t entities.Technician) (*entities.Technician, error) {
	args := m.Called(ctx, tx, t)
	created, _ := args.Get(0).(*entities.Technician)
	return created, args.Error(1)
}

type userRepoMock struct {
	mock.Mock
}

func (m *userRepoMock) CreateUser(ctx context.Context, tx pgx.Tx, user entities.User) (uuid.UUID, error) {
	args := m.Called(ctx, tx, user)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *userRepoMock) DeleteUser(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	return m.Called(ctx, tx, id).Error(0)
}

// noTx выполняет функцию без транзакции.
type noTx struct{}

func (noTx) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Events() []eventbus.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]eventbus.Event(nil), p.events...)
}

// memoryCache — кеш в памяти с TTL.
type memoryCache struct {
	mu      sync.Mutex
	items   map[string]memoryCacheItem
	now     func() time.Time
	failGet error
}

type memoryCacheItem struct {
	value   string
	expires time.Time
}

func newMemoryCache(now func() time.Time) *memoryCache {
	return &memoryCache{items: make(map[string]memoryCacheItem), now: now}
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var s string
	switch v := value.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	}
	c.items[key] = memoryCacheItem{value: s, expires: c.now().Add(expiration)}
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet != nil {
		return "", c.failGet
	}
	item, ok := c.items[key]
	if !ok || !c.now().Before(item.expires) {
		return "", repositories.ErrCacheMiss
	}
	return item.value, nil
}

func (c *memoryCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *memoryCache) DelPattern(_ context.Context, _ string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.items)
	c.items = make(map[string]memoryCacheItem)
	return n, nil
}
