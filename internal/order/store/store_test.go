package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"brewline/internal/domain"
)

type memoryRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
	seq    int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{orders: map[string]*domain.Order{}}
}

func (m *memoryRepo) Insert(_ context.Context, order domain.Order) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := fmt.Sprintf("order-%d", m.seq)
	order.ID = id
	order.CreatedAt = time.Now()
	m.orders[id] = &order
	return id, nil
}

func (m *memoryRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s not found", id)
	}
	copied := *order
	return &copied, nil
}

func (m *memoryRepo) UpdateStatus(_ context.Context, id string, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order, ok := m.orders[id]; ok {
		order.Status = status
	}
	return nil
}

func (m *memoryRepo) UpdateFeedback(_ context.Context, id string, rating int, comment string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order, ok := m.orders[id]; ok {
		order.Rating = &rating
		order.Comment = &comment
		order.FeedbackGiven = true
	}
	return nil
}

func (m *memoryRepo) FindByStatus(_ context.Context, status string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Order
	for i := 1; i <= m.seq; i++ {
		if order, ok := m.orders[fmt.Sprintf("order-%d", i)]; ok && order.Status == status {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (m *memoryRepo) FindFeedbackGiven(_ context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Order
	for i := 1; i <= m.seq; i++ {
		if order, ok := m.orders[fmt.Sprintf("order-%d", i)]; ok && order.FeedbackGiven {
			out = append(out, *order)
		}
	}
	return out, nil
}

func receiveSnapshot(t *testing.T, ch <-chan []domain.Order) []domain.Order {
	t.Helper()
	select {
	case snap, ok := <-ch:
		require.True(t, ok, "subscription closed unexpectedly")
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func pendingOrder(item string, qty int) domain.Order {
	return domain.Order{
		UserID:    "u1",
		ItemName:  item,
		Quantity:  qty,
		OrderType: domain.OrderTypeOnSite,
		Status:    domain.OrderStatusPending,
	}
}

func TestStore_SubscribeDeliversInitialSnapshot(t *testing.T) {
	repo := newMemoryRepo()
	s := New(repo, zap.NewNop())

	_, err := s.Create(context.Background(), pendingOrder("Latte", 1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snap := receiveSnapshot(t, s.Subscribe(ctx, FilterPending))
	require.Len(t, snap, 1)
	assert.Equal(t, "Latte", snap[0].ItemName)
}

func TestStore_SubscribeDeliversFullReplacementSets(t *testing.T) {
	repo := newMemoryRepo()
	s := New(repo, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Subscribe(ctx, FilterPending)
	assert.Empty(t, receiveSnapshot(t, ch))

	id1, err := s.Create(context.Background(), pendingOrder("Latte", 1))
	require.NoError(t, err)
	snap := receiveSnapshot(t, ch)
	require.Len(t, snap, 1)

	_, err = s.Create(context.Background(), pendingOrder("Espresso", 2))
	require.NoError(t, err)
	snap = receiveSnapshot(t, ch)
	// Complete set, not a diff.
	require.Len(t, snap, 2)
	assert.Equal(t, "Latte", snap[0].ItemName)
	assert.Equal(t, "Espresso", snap[1].ItemName)

	require.NoError(t, s.UpdateStatus(context.Background(), id1, domain.OrderStatusCompleted))
	snap = receiveSnapshot(t, ch)
	require.Len(t, snap, 1)
	assert.Equal(t, "Espresso", snap[0].ItemName)
}

func TestStore_FeedbackFilter(t *testing.T) {
	repo := newMemoryRepo()
	s := New(repo, zap.NewNop())

	id1, err := s.Create(context.Background(), pendingOrder("Latte", 1))
	require.NoError(t, err)
	_, err = s.Create(context.Background(), pendingOrder("Espresso", 2))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Subscribe(ctx, FilterFeedbackGiven)
	assert.Empty(t, receiveSnapshot(t, ch))

	require.NoError(t, s.UpdateFeedback(context.Background(), id1, 5, "Great!"))

	snap := receiveSnapshot(t, ch)
	require.Len(t, snap, 1)
	assert.Equal(t, id1, snap[0].ID)
	assert.True(t, snap[0].FeedbackGiven)
	require.NotNil(t, snap[0].Rating)
	assert.Equal(t, 5, *snap[0].Rating)
}

func TestStore_SlowConsumerGetsLatestOnly(t *testing.T) {
	repo := newMemoryRepo()
	s := New(repo, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Subscribe(ctx, FilterPending)
	// Never read the initial snapshot; pile up mutations.
	for i := 0; i < 5; i++ {
		_, err := s.Create(context.Background(), pendingOrder("Latte", i+1))
		require.NoError(t, err)
	}

	snap := receiveSnapshot(t, ch)
	assert.Len(t, snap, 5, "undelivered snapshots are replaced, not queued")
}

func TestStore_CancelClosesSubscription(t *testing.T) {
	repo := newMemoryRepo()
	s := New(repo, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Subscribe(ctx, FilterPending)
	receiveSnapshot(t, ch)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel must close after cancellation")
	case <-time.After(2 * time.Second):
		t.Fatal("subscription did not close")
	}

	// Mutations after cancellation must not panic on the closed channel.
	_, err := s.Create(context.Background(), pendingOrder("Latte", 1))
	require.NoError(t, err)
}
