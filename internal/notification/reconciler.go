package notification

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"brewline/internal/domain"
)

// Reconciler keeps the in-process list of pending-order notifications. It is
// a display cache, never the source of truth: the store and this list may
// diverge (process restart, another device completing orders) and that is
// tolerated, not surfaced.
type Reconciler struct {
	mu      sync.Mutex
	entries []string // oldest first
	logger  *zap.Logger
}

func NewReconciler(logger *zap.Logger) *Reconciler {
	return &Reconciler{logger: logger}
}

func (r *Reconciler) OnOrderCreated(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, text)
}

// OnOrderCompleted removes the first exact match. No match is a silent
// no-op: the order may have been created before this process started.
func (r *Reconciler) OnOrderCompleted(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, entry := range r.entries {
		if entry == text {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
	r.logger.Debug("no notification matched completed order", zap.String("text", text))
}

// Snapshot returns the notifications most-recent-first.
func (r *Reconciler) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, entry := range r.entries {
		out[len(r.entries)-1-i] = entry
	}
	return out
}

func (r *Reconciler) HasUnread() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries) > 0
}

type PendingSource interface {
	FindByStatus(ctx context.Context, status string) ([]domain.Order, error)
}

// Rehydrate replaces the list with the store's current Pending set. Racy
// with concurrent completions; the divergence self-heals as further events
// arrive, so the whole list is swapped atomically and errors are left to the
// caller to log.
func (r *Reconciler) Rehydrate(ctx context.Context, source PendingSource) error {
	pending, err := source.FindByStatus(ctx, domain.OrderStatusPending)
	if err != nil {
		return err
	}

	entries := make([]string, len(pending))
	for i, order := range pending {
		entries[i] = order.NotificationText()
	}

	r.mu.Lock()
	r.entries = entries
	r.mu.Unlock()

	r.logger.Info("notifications rehydrated", zap.Int("count", len(entries)))
	return nil
}
