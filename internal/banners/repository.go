package banners

import (
	"context"
	"sync"

	pkgerrors "github.com/angelmondragon/banner-admin/pkg/errors"
)

// Repository stores banner records in insertion order.
type Repository interface {
	List(ctx context.Context) ([]Banner, error)
	Insert(ctx context.Context, record Banner) error
	Replace(ctx context.Context, record Banner) error
	Remove(ctx context.Context, id int) (bool, error)
}

// MemoryRepository keeps records in a slice for the life of the process.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []Banner
}

// NewMemoryRepository returns a repository holding a copy of initial.
func NewMemoryRepository(initial ...Banner) *MemoryRepository {
	return &MemoryRepository{records: cloneAll(initial)}
}

func (r *MemoryRepository) List(_ context.Context) ([]Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.records), nil
}

func (r *MemoryRepository) Insert(_ context.Context, record Banner) error {
	if !record.HasID() {
		return pkgerrors.New(pkgerrors.CodeValidation, "banner id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if indexOf(r.records, *record.ID) >= 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "banner id already exists")
	}
	r.records = append(r.records, record.clone())
	return nil
}

func (r *MemoryRepository) Replace(_ context.Context, record Banner) error {
	if !record.HasID() {
		return pkgerrors.New(pkgerrors.CodeValidation, "banner id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := indexOf(r.records, *record.ID)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
	}
	r.records[idx] = record.clone()
	return nil
}

func (r *MemoryRepository) Remove(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := indexOf(r.records, id)
	if idx < 0 {
		return false, nil
	}
	r.records = append(r.records[:idx:idx], r.records[idx+1:]...)
	return true, nil
}
