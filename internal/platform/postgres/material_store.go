package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Amecrec/ADIA/internal/domain"
	"github.com/Amecrec/ADIA/internal/platform/logger"
	"github.com/Amecrec/ADIA/internal/store"
)

// PostgresMaterialStore implements the store.MaterialStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMaterialStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMaterialStore creates a new PostgreSQL implementation of the
// MaterialStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil,
// a default logger will be used.
func NewPostgresMaterialStore(db store.DBTX, log *slog.Logger) *PostgresMaterialStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresMaterialStore{
		db:     db,
		logger: log.With(slog.String("component", "material_store")),
	}
}

// Ensure PostgresMaterialStore implements store.MaterialStore interface
var _ store.MaterialStore = (*PostgresMaterialStore)(nil)

// WithTx implements store.MaterialStore.WithTx
func (s *PostgresMaterialStore) WithTx(tx *sql.Tx) store.MaterialStore {
	return &PostgresMaterialStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.MaterialStore.Create
// It saves a new material to the database, handling domain validation.
// Returns store.ErrInvalidEntity wrapped around the validation error if the
// material data is invalid, or if the owner does not exist.
func (s *PostgresMaterialStore) Create(ctx context.Context, material *domain.Material) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := material.Validate(); err != nil {
		log.Warn("material validation failed during create",
			slog.String("error", err.Error()),
			slog.String("material_id", material.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO materials (id, user_id, title, material_type, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		material.ID,
		material.OwnerID,
		material.Title,
		material.MaterialType,
		material.Body,
		material.CreatedAt,
		material.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during material creation",
				slog.String("material_id", material.ID.String()),
				slog.String("owner_id", material.OwnerID.String()))
			return fmt.Errorf("%w: owner with ID %s not found",
				store.ErrInvalidEntity, material.OwnerID)
		}

		log.Error("failed to create material",
			slog.String("error", err.Error()),
			slog.String("material_id", material.ID.String()),
			slog.String("owner_id", material.OwnerID.String()))
		return err
	}

	log.Info("material created successfully",
		slog.String("material_id", material.ID.String()),
		slog.String("owner_id", material.OwnerID.String()),
		slog.String("material_type", string(material.MaterialType)))
	return nil
}

// CreateMultiple implements store.MaterialStore.CreateMultiple
// Run it within a transaction (WithTx + store.RunInTransaction) so that a
// bundle commit is atomic.
func (s *PostgresMaterialStore) CreateMultiple(
	ctx context.Context,
	materials []*domain.Material,
) error {
	for _, material := range materials {
		if err := s.Create(ctx, material); err != nil {
			return err
		}
	}
	return nil
}

// GetByID implements store.MaterialStore.GetByID
// Returns store.ErrMaterialNotFound if the material does not exist or is
// owned by a different user; the two cases are indistinguishable.
func (s *PostgresMaterialStore) GetByID(
	ctx context.Context,
	ownerID, id uuid.UUID,
) (*domain.Material, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, material_type, body, created_at, updated_at
		FROM materials
		WHERE id = $1 AND user_id = $2
	`

	material, err := scanMaterial(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("material not found",
				slog.String("material_id", id.String()),
				slog.String("owner_id", ownerID.String()))
			return nil, store.ErrMaterialNotFound
		}
		log.Error("failed to get material by ID",
			slog.String("error", err.Error()),
			slog.String("material_id", id.String()))
		return nil, err
	}

	return material, nil
}

// List implements store.MaterialStore.List
// Rows come back ordered by the (user_id, updated_at) index for efficiency,
// but callers must not rely on it; authoritative ordering belongs to the
// query service.
func (s *PostgresMaterialStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Material, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, material_type, body, created_at, updated_at
		FROM materials
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list materials",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	materials := []*domain.Material{}
	for rows.Next() {
		material, err := scanMaterial(rows)
		if err != nil {
			log.Error("failed to scan material row",
				slog.String("error", err.Error()))
			return nil, err
		}
		materials = append(materials, material)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed materials",
		slog.String("owner_id", ownerID.String()),
		slog.Int("count", len(materials)))
	return materials, nil
}

// UpdateBody implements store.MaterialStore.UpdateBody
// The UPDATE itself is atomic, so two concurrent edits by the same owner
// serialize at the database and the last write wins.
func (s *PostgresMaterialStore) UpdateBody(
	ctx context.Context,
	ownerID, id uuid.UUID,
	body string,
) (*domain.Material, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if body == "" {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrEmptyMaterialBody)
	}

	query := `
		UPDATE materials
		SET body = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, title, material_type, body, created_at, updated_at
	`

	material, err := scanMaterial(
		s.db.QueryRowContext(ctx, query, body, time.Now().UTC(), id, ownerID),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("material not found for body update",
				slog.String("material_id", id.String()),
				slog.String("owner_id", ownerID.String()))
			return nil, store.ErrMaterialNotFound
		}
		log.Error("failed to update material body",
			slog.String("error", err.Error()),
			slog.String("material_id", id.String()))
		return nil, err
	}

	log.Info("material body updated successfully",
		slog.String("material_id", id.String()),
		slog.String("owner_id", ownerID.String()))
	return material, nil
}

// Delete implements store.MaterialStore.Delete
// Deleting a missing or foreign-owned ID reports store.ErrMaterialNotFound.
func (s *PostgresMaterialStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM materials
		WHERE id = $1 AND user_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		log.Error("failed to delete material",
			slog.String("error", err.Error()),
			slog.String("material_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("material_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("material not found for delete",
			slog.String("material_id", id.String()),
			slog.String("owner_id", ownerID.String()))
		return store.ErrMaterialNotFound
	}

	log.Info("material deleted successfully",
		slog.String("material_id", id.String()),
		slog.String("owner_id", ownerID.String()))
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanMaterial.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMaterial reads one materials row into a domain.Material.
func scanMaterial(row rowScanner) (*domain.Material, error) {
	var material domain.Material
	var materialType string

	err := row.Scan(
		&material.ID,
		&material.OwnerID,
		&material.Title,
		&materialType,
		&material.Body,
		&material.CreatedAt,
		&material.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	material.MaterialType = domain.MaterialType(materialType)
	return &material, nil
}
