package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/Amecrec/ADIA/internal/domain"
	"github.com/Amecrec/ADIA/internal/store"
)

// MaterialRepositoryAdapter adapts a store.MaterialStore to the
// MaterialRepository interface, supplying the transaction handling that
// makes CreateMultiple atomic over SQL backends.
type MaterialRepositoryAdapter struct {
	materialStore store.MaterialStore
	db            *sql.DB
}

// NewMaterialRepositoryAdapter creates a new adapter around the given
// store and database handle.
func NewMaterialRepositoryAdapter(
	materialStore store.MaterialStore,
	db *sql.DB,
) *MaterialRepositoryAdapter {
	return &MaterialRepositoryAdapter{
		materialStore: materialStore,
		db:            db,
	}
}

// Ensure MaterialRepositoryAdapter implements the MaterialRepository interface
var _ MaterialRepository = (*MaterialRepositoryAdapter)(nil)

// CreateMultiple saves all materials within a single transaction.
func (a *MaterialRepositoryAdapter) CreateMultiple(
	ctx context.Context,
	materials []*domain.Material,
) error {
	return store.RunInTransaction(ctx, a.db, func(ctx context.Context, tx *sql.Tx) error {
		return a.materialStore.WithTx(tx).CreateMultiple(ctx, materials)
	})
}

// GetByID delegates to the underlying store.
func (a *MaterialRepositoryAdapter) GetByID(
	ctx context.Context,
	ownerID, id uuid.UUID,
) (*domain.Material, error) {
	return a.materialStore.GetByID(ctx, ownerID, id)
}

// List delegates to the underlying store.
func (a *MaterialRepositoryAdapter) List(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Material, error) {
	return a.materialStore.List(ctx, ownerID)
}

// UpdateBody delegates to the underlying store.
func (a *MaterialRepositoryAdapter) UpdateBody(
	ctx context.Context,
	ownerID, id uuid.UUID,
	body string,
) (*domain.Material, error) {
	return a.materialStore.UpdateBody(ctx, ownerID, id, body)
}

// Delete delegates to the underlying store.
func (a *MaterialRepositoryAdapter) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return a.materialStore.Delete(ctx, ownerID, id)
}
