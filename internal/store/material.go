package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/Amecrec/ADIA/internal/domain"
)

// MaterialStore defines the interface for library material persistence.
//
// Every read or mutation is scoped by the caller's owner ID. A lookup that
// matches a record owned by someone else behaves exactly like a lookup of a
// missing ID: ErrMaterialNotFound, with no existence leakage.
type MaterialStore interface {
	// Create saves a new material. The material must carry its owner and
	// pass domain validation; violations return wrapped validation errors.
	Create(ctx context.Context, material *domain.Material) error

	// CreateMultiple saves several materials at once, e.g. when a bundle
	// with companions is committed. Run it within a transaction (WithTx +
	// RunInTransaction) so a bundle is saved atomically or not at all.
	CreateMultiple(ctx context.Context, materials []*domain.Material) error

	// GetByID retrieves a material by its ID on behalf of ownerID.
	// Returns ErrMaterialNotFound if the material does not exist or belongs
	// to a different owner.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Material, error)

	// List returns all materials belonging to ownerID. No ordering is
	// guaranteed; presentation ordering is the query service's concern.
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Material, error)

	// UpdateBody replaces the body of an owned material and bumps its
	// UpdatedAt timestamp, returning the updated record. All other fields
	// are immutable through this path. Returns ErrMaterialNotFound if the
	// material does not exist or belongs to a different owner.
	UpdateBody(ctx context.Context, ownerID, id uuid.UUID, body string) (*domain.Material, error)

	// Delete removes an owned material. Deleting a missing or foreign-owned
	// ID returns ErrMaterialNotFound, not a generic error, which makes the
	// operation effectively idempotent for callers that treat NotFound as
	// already-deleted.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// WithTx returns a MaterialStore bound to the given transaction, so
	// several operations can run atomically under RunInTransaction.
	WithTx(tx *sql.Tx) MaterialStore
}
