// Package memory provides an in-memory implementation of the material
// store, used by tests and local development. Records are copied on every
// read and write so callers never observe a half-applied mutation.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Amecrec/ADIA/internal/domain"
	"github.com/Amecrec/ADIA/internal/store"
)

// MaterialStore is an in-memory implementation of store.MaterialStore.
// A single mutex serializes writes, which gives the same last-write-wins
// semantics per record as the SQL implementation.
type MaterialStore struct {
	mu        sync.RWMutex
	materials map[uuid.UUID]*domain.Material
}

// NewMaterialStore creates a new in-memory material store.
func NewMaterialStore() *MaterialStore {
	return &MaterialStore{
		materials: make(map[uuid.UUID]*domain.Material),
	}
}

// Ensure MaterialStore implements store.MaterialStore interface
var _ store.MaterialStore = (*MaterialStore)(nil)

// WithTx implements store.MaterialStore.WithTx. The in-memory store has no
// real transactions; the mutex already makes CreateMultiple atomic, so the
// store is returned unchanged.
func (s *MaterialStore) WithTx(tx *sql.Tx) store.MaterialStore {
	return s
}

// Create adds a new material to the store.
func (s *MaterialStore) Create(ctx context.Context, material *domain.Material) error {
	if err := material.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.materials[material.ID]; exists {
		return store.ErrDuplicate
	}

	s.materials[material.ID] = copyMaterial(material)
	return nil
}

// CreateMultiple adds several materials atomically: either every material
// is valid and stored, or none is.
func (s *MaterialStore) CreateMultiple(ctx context.Context, materials []*domain.Material) error {
	for _, material := range materials {
		if err := material.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, material := range materials {
		if _, exists := s.materials[material.ID]; exists {
			return store.ErrDuplicate
		}
	}
	for _, material := range materials {
		s.materials[material.ID] = copyMaterial(material)
	}
	return nil
}

// GetByID retrieves an owned material. A missing ID and a foreign-owned ID
// are indistinguishable: both return store.ErrMaterialNotFound.
func (s *MaterialStore) GetByID(
	ctx context.Context,
	ownerID, id uuid.UUID,
) (*domain.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	material, exists := s.materials[id]
	if !exists || material.OwnerID != ownerID {
		return nil, store.ErrMaterialNotFound
	}

	return copyMaterial(material), nil
}

// List retrieves all materials belonging to the owner, in no particular order.
func (s *MaterialStore) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	materials := []*domain.Material{}
	for _, material := range s.materials {
		if material.OwnerID == ownerID {
			materials = append(materials, copyMaterial(material))
		}
	}

	return materials, nil
}

// UpdateBody replaces the body of an owned material and bumps UpdatedAt.
func (s *MaterialStore) UpdateBody(
	ctx context.Context,
	ownerID, id uuid.UUID,
	body string,
) (*domain.Material, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrEmptyMaterialBody)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	material, exists := s.materials[id]
	if !exists || material.OwnerID != ownerID {
		return nil, store.ErrMaterialNotFound
	}

	updated := copyMaterial(material)
	if err := updated.UpdateBody(body); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.materials[id] = updated
	return copyMaterial(updated), nil
}

// Delete removes an owned material. Missing and foreign-owned IDs both
// report store.ErrMaterialNotFound.
func (s *MaterialStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	material, exists := s.materials[id]
	if !exists || material.OwnerID != ownerID {
		return store.ErrMaterialNotFound
	}

	delete(s.materials, id)
	return nil
}

// copyMaterial returns a shallow copy so stored records are never aliased
// by callers.
func copyMaterial(m *domain.Material) *domain.Material {
	c := *m
	return &c
}
