// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/storage"
)

// storageKey is the persistence substrate key holding the serialized snapshot
const storageKey = "cart"

// Store is the sole owner of the cart snapshot. Every mutation runs through
// the command transition function and is written through to the persistence
// substrate before returning.
type Store struct {
	mu     sync.Mutex
	lines  Snapshot
	st     storage.Store
	logger *logrus.Logger
}

// NewStore creates a cart store, restoring any previously persisted snapshot.
// A missing, corrupt, or non-array snapshot never fails construction: the
// store starts empty and the problem is logged.
func NewStore(ctx context.Context, st storage.Store, logger *logrus.Logger) *Store {
	s := &Store{
		lines:  Snapshot{},
		st:     st,
		logger: logger,
	}
	s.restore(ctx)
	return s
}

func (s *Store) restore(ctx context.Context) {
	data, err := s.st.Get(ctx, storageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.WithError(err).Warn("Failed to load saved cart, starting empty")
		}
		return
	}

	var saved Snapshot
	if err := json.Unmarshal(data, &saved); err != nil {
		s.logger.WithError(err).Warn("Saved cart is corrupt, starting empty")
		return
	}
	s.lines = saved
}

// AddItem adds a line to the cart. An existing line with the same
// (product, size, color) key absorbs the quantity instead of creating a
// duplicate. The caller is responsible for checking MaxQuantity before
// calling; the store enforces no upper bound.
func (s *Store) AddItem(ctx context.Context, line Line) error {
	if line.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", line.Quantity)
	}
	return s.dispatch(ctx, Command{Type: CommandAddItem, Line: line})
}

// SetQuantity overwrites the quantity of the line with the given key.
// A quantity of zero or less removes the line.
func (s *Store) SetQuantity(ctx context.Context, key LineKey, quantity int) error {
	return s.dispatch(ctx, Command{Type: CommandSetQuantity, Key: key, Quantity: quantity})
}

// RemoveItem removes the line with the given key
func (s *Store) RemoveItem(ctx context.Context, key LineKey) error {
	return s.dispatch(ctx, Command{Type: CommandRemoveItem, Key: key})
}

// Clear empties the cart
func (s *Store) Clear(ctx context.Context) error {
	return s.dispatch(ctx, Command{Type: CommandClear})
}

// dispatch applies a command and writes the resulting snapshot through to
// the persistence substrate. The in-memory snapshot only advances once the
// write succeeds, so a failed write never leaves the two diverged.
func (s *Store) dispatch(ctx context.Context, cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := apply(s.lines, cmd)

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}
	if err := s.st.Set(ctx, storageKey, data); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	s.lines = next

	s.logger.WithFields(logrus.Fields{
		"command":    cmd.Type,
		"line_count": len(s.lines),
	}).Debug("Cart updated")

	return nil
}

// Lines returns a copy of the current snapshot in insertion order
func (s *Store) Lines() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSnapshot(s.lines)
}

// Total returns the cart subtotal, recomputed from the lines
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines.Total()
}

// Count returns the total quantity across all lines
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines.Count()
}
