package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chubrika/wineo-admin/internal/domain"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
	"github.com/chubrika/wineo-admin/internal/domain/repository"
)

var _ repository.RegionRepository = (*RegionRepo)(nil)

// RegionRepo implementación del puerto RegionRepository sobre PostgreSQL.
type RegionRepo struct {
	q Querier
}

// NewRegionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRegionRepository(q Querier) *RegionRepo {
	return &RegionRepo{q: q}
}

// Create persiste una nueva región.
func (r *RegionRepo) Create(ctx context.Context, x *entity.Region) error {
	query := `INSERT INTO regions (id, slug, label, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, x.ID, x.Slug, x.Label, x.CreatedAt, x.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert region: %w", err)
	}
	return nil
}

// GetByID obtiene una región por ID.
func (r *RegionRepo) GetByID(ctx context.Context, id string) (*entity.Region, error) {
	var x entity.Region
	err := r.q.QueryRow(ctx, `SELECT id, slug, label, created_at, updated_at FROM regions WHERE id = $1`, id).
		Scan(&x.ID, &x.Slug, &x.Label, &x.CreatedAt, &x.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get region: %w", err)
	}
	return &x, nil
}

// Update actualiza una región existente.
func (r *RegionRepo) Update(ctx context.Context, x *entity.Region) error {
	cmd, err := r.q.Exec(ctx, `UPDATE regions SET slug = $2, label = $3, updated_at = $4 WHERE id = $1`,
		x.ID, x.Slug, x.Label, x.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update region: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista las regiones ordenadas por etiqueta.
func (r *RegionRepo) List(ctx context.Context) ([]*entity.Region, error) {
	rows, err := r.q.Query(ctx, `SELECT id, slug, label, created_at, updated_at FROM regions ORDER BY label, id`)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Region
	for rows.Next() {
		var x entity.Region
		if err := rows.Scan(&x.ID, &x.Slug, &x.Label, &x.CreatedAt, &x.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		list = append(list, &x)
	}
	return list, rows.Err()
}

// Delete elimina una región. Con ciudades asociadas devuelve domain.ErrConflict.
func (r *RegionRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM regions WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete region: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
