package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"brewline/internal/domain"
)

// Filter selects the subset of the orders collection a subscriber sees.
// Mirrors the equality queries of the source collection.
type Filter struct {
	Field string
	Value any
}

var (
	FilterPending       = Filter{Field: "status", Value: domain.OrderStatusPending}
	FilterFeedbackGiven = Filter{Field: "appFeedbackGiven", Value: true}
)

type Repository interface {
	Insert(ctx context.Context, order domain.Order) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	UpdateFeedback(ctx context.Context, id string, rating int, comment string) error
	FindByStatus(ctx context.Context, status string) ([]domain.Order, error)
	FindFeedbackGiven(ctx context.Context) ([]domain.Order, error)
}

// Store mediates every order write and fans out full-collection snapshots to
// live subscribers after each mutation. Subscribers always receive the whole
// filtered set, never a diff.
type Store struct {
	repo   Repository
	logger *zap.Logger

	mu     sync.Mutex
	subs   map[int]*subscriber
	nextID int
}

type subscriber struct {
	filter Filter
	ch     chan []domain.Order
	closed bool
}

func New(repo Repository, logger *zap.Logger) *Store {
	return &Store{
		repo:   repo,
		logger: logger,
		subs:   make(map[int]*subscriber),
	}
}

func (s *Store) Create(ctx context.Context, order domain.Order) (string, error) {
	id, err := s.repo.Insert(ctx, order)
	if err != nil {
		return "", err
	}
	s.publish(ctx)
	return id, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Store) UpdateStatus(ctx context.Context, id string, status string) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

func (s *Store) UpdateFeedback(ctx context.Context, id string, rating int, comment string) error {
	if err := s.repo.UpdateFeedback(ctx, id, rating, comment); err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

func (s *Store) FindByStatus(ctx context.Context, status string) ([]domain.Order, error) {
	return s.repo.FindByStatus(ctx, status)
}

// Subscribe returns a stream of full snapshots matching filter. The first
// snapshot is delivered immediately; a new one follows every mutation. Slow
// consumers receive the latest snapshot only. The channel closes when ctx is
// canceled.
func (s *Store) Subscribe(ctx context.Context, filter Filter) <-chan []domain.Order {
	sub := &subscriber{
		filter: filter,
		ch:     make(chan []domain.Order, 1),
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = sub
	s.mu.Unlock()

	if snap, err := s.query(ctx, filter); err == nil {
		s.offer(sub, snap)
	} else {
		s.logger.Warn("initial snapshot query failed", zap.Error(err))
	}

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		sub.closed = true
		close(sub.ch)
		s.mu.Unlock()
	}()

	return sub.ch
}

func (s *Store) publish(ctx context.Context) {
	s.mu.Lock()
	subs := make([]*subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		snap, err := s.query(ctx, sub.filter)
		if err != nil {
			s.logger.Warn("snapshot query failed", zap.String("field", sub.filter.Field), zap.Error(err))
			continue
		}
		s.offer(sub, snap)
	}
}

// offer replaces any undelivered snapshot so the subscriber only ever sees
// the newest state.
func (s *Store) offer(sub *subscriber, snap []domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sub.closed {
		return
	}

	select {
	case sub.ch <- snap:
	default:
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- snap:
		default:
		}
	}
}

func (s *Store) query(ctx context.Context, filter Filter) ([]domain.Order, error) {
	switch filter.Field {
	case "appFeedbackGiven":
		return s.repo.FindFeedbackGiven(ctx)
	default:
		status, _ := filter.Value.(string)
		return s.repo.FindByStatus(ctx, status)
	}
}
