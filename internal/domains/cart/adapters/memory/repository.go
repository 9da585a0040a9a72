package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-gin-shop-api/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is the process-wide in-memory cart store. mu guards only the
// slot map; each slot carries its own lock so different users never contend.
//
// Lock order is slot.mu before mu. mu is never held while waiting on a slot.
type Repository struct {
	mu    sync.RWMutex
	slots map[string]*slot
}

type slot struct {
	mu   sync.Mutex
	cart *domain.Cart
	// registered is false until the first non-empty cart is stored.
	registered bool
	// detached slots were dropped from the map; holders must look up again.
	detached bool
}

func NewRepository() *Repository {
	return &Repository{slots: map[string]*slot{}}
}

func (r *Repository) Get(_ context.Context, userID string) (*domain.Cart, error) {
	empty, err := domain.NewCart(userID)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	s, ok := r.slots[empty.UserID]
	r.mu.RUnlock()
	if !ok {
		return empty, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detached || !s.registered {
		return empty, nil
	}
	return s.cart.Clone(), nil
}

// Update runs mutate on a copy of the user's cart while holding that user's
// lock. A cart is registered the first time a mutation leaves it non-empty;
// failed or empty-result mutations on unregistered users leave no trace.
func (r *Repository) Update(ctx context.Context, userID string, mutate ports.MutateFunc) (*domain.Cart, error) {
	if mutate == nil {
		return nil, errors.New("cart mutation is nil")
	}
	empty, err := domain.NewCart(userID)
	if err != nil {
		return nil, err
	}
	for {
		s := r.slotFor(empty)
		s.mu.Lock()
		if s.detached {
			s.mu.Unlock()
			continue
		}
		result, err := r.apply(ctx, empty.UserID, s, mutate)
		s.mu.Unlock()
		return result, err
	}
}

// Users returns the number of users with a registered cart.
func (r *Repository) Users() int {
	r.mu.RLock()
	slots := make([]*slot, 0, len(r.slots))
	for _, s := range r.slots {
		slots = append(slots, s)
	}
	r.mu.RUnlock()
	count := 0
	for _, s := range slots {
		s.mu.Lock()
		if s.registered && !s.detached {
			count++
		}
		s.mu.Unlock()
	}
	return count
}

// apply must be called with s.mu held.
func (r *Repository) apply(ctx context.Context, userID string, s *slot, mutate ports.MutateFunc) (*domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		r.detachUnregistered(userID, s)
		return nil, err
	}
	working := s.cart.Clone()
	if err := mutate(working); err != nil {
		r.detachUnregistered(userID, s)
		return nil, err
	}
	if !s.registered && working.IsEmpty() {
		r.detachUnregistered(userID, s)
		return working, nil
	}
	s.cart = working
	s.registered = true
	return working.Clone(), nil
}

func (r *Repository) detachUnregistered(userID string, s *slot) {
	if s.registered {
		return
	}
	r.mu.Lock()
	if r.slots[userID] == s {
		delete(r.slots, userID)
	}
	r.mu.Unlock()
	s.detached = true
}

func (r *Repository) slotFor(empty *domain.Cart) *slot {
	r.mu.RLock()
	s, ok := r.slots[empty.UserID]
	r.mu.RUnlock()
	if ok {
		return s
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.slots[empty.UserID]; ok {
		return s
	}
	s = &slot{cart: empty.Clone()}
	r.slots[empty.UserID] = s
	return s
}
