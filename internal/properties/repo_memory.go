package properties

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Property // propertyID -> property
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Property)}
}

// Create stores a new property.
func (r *MemoryRepo) Create(ctx context.Context, p Property) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.Version == 0 {
		p.Version = 1
	}
	r.data[p.ID] = clone(p)
	return nil
}

// GetByID returns a property scoped to its owner.
func (r *MemoryRepo) GetByID(ctx context.Context, ownerID, propertyID string) (Property, error) {
	if err := ctx.Err(); err != nil {
		return Property{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[propertyID]
	if !ok || p.OwnerID != ownerID {
		return Property{}, ErrNotFound
	}
	return clone(p), nil
}

// ListByOwner returns the owner's properties, newest first.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Property
	for _, p := range r.data {
		if p.OwnerID == ownerID {
			out = append(out, clone(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Save writes a property if the caller holds the current version.
func (r *MemoryRepo) Save(ctx context.Context, p Property) (Property, error) {
	if err := ctx.Err(); err != nil {
		return Property{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[p.ID]
	if !ok || existing.OwnerID != p.OwnerID {
		return Property{}, ErrNotFound
	}
	if existing.Version != p.Version {
		return Property{}, ErrVersionConflict
	}
	p.Version++
	p.UpdatedAt = time.Now().UTC()
	r.data[p.ID] = clone(p)
	return clone(p), nil
}

// Delete removes a property.
func (r *MemoryRepo) Delete(ctx context.Context, ownerID, propertyID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[propertyID]
	if !ok || p.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(r.data, propertyID)
	return nil
}

// clone copies a property so callers never share the stored document slice.
func clone(p Property) Property {
	out := p
	if p.Documents != nil {
		out.Documents = make([]Document, len(p.Documents))
		copy(out.Documents, p.Documents)
	}
	if p.CurrentValue != nil {
		v := *p.CurrentValue
		out.CurrentValue = &v
	}
	return out
}

var _ Repo = (*MemoryRepo)(nil)
