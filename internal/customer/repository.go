// AngelaMos | 2026
// repository.go

package customer

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/carterperez-dev/templates/loyalty-backend/internal/core"
)

// MutateFunc edits a customer in place inside Repository.Update. Returning
// an error discards every change it made.
type MutateFunc func(c *Customer) error

type Repository interface {
	GetByID(ctx context.Context, id int) (*Customer, error)
	List(ctx context.Context) ([]Customer, error)
	Update(ctx context.Context, id int, fn MutateFunc) (*Customer, error)
	Seed(ctx context.Context, customers []Customer) error
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

// memoryRepository keeps customers in a map guarded by one lock. Update
// holds the write lock across the whole read-modify-write.
type memoryRepository struct {
	mu        sync.RWMutex
	customers map[int]*Customer
}

func NewMemoryRepository() Repository {
	return &memoryRepository{customers: make(map[int]*Customer)}
}

func (r *memoryRepository) GetByID(_ context.Context, id int) (*Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[id]
	if !ok {
		return nil, fmt.Errorf("get customer: %w", core.ErrNotFound)
	}

	return c.Clone(), nil
}

func (r *memoryRepository) List(_ context.Context) ([]Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c.Clone())
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryRepository) Update(
	_ context.Context,
	id int,
	fn MutateFunc,
) (*Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.customers[id]
	if !ok {
		return nil, fmt.Errorf("update customer: %w", core.ErrNotFound)
	}

	working := stored.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}

	r.customers[id] = working
	return working.Clone(), nil
}

// Seed stores all customers or none: every id is checked against the store
// and the batch before anything is inserted.
func (r *memoryRepository) Seed(_ context.Context, customers []Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make(map[int]struct{}, len(customers))
	for i := range customers {
		id := customers[i].ID
		_, stored := r.customers[id]
		_, repeated := batch[id]
		if stored || repeated {
			return fmt.Errorf("seed customer %d: %w", id, core.ErrDuplicateKey)
		}
		batch[id] = struct{}{}
	}

	for i := range customers {
		r.customers[customers[i].ID] = customers[i].Clone()
	}

	return nil
}

func (r *memoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.customers), nil
}

func (r *memoryRepository) Ping(_ context.Context) error {
	return nil
}
