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

var _ repository.FilterRepository = (*FilterRepo)(nil)

const filterColumns = `f.id, f.name, f.slug, f.type, COALESCE(f.options, '{}'), f.unit, f.category_id,
	f.apply_to_children, f.is_required, f.sort_order, f.is_active, f.created_at, f.updated_at`

// FilterRepo implementación del puerto FilterRepository sobre PostgreSQL (usable con pool o tx).
type FilterRepo struct {
	q Querier
}

// NewFilterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFilterRepository(q Querier) *FilterRepo {
	return &FilterRepo{q: q}
}

// Create persiste un nuevo filtro.
func (r *FilterRepo) Create(ctx context.Context, f *entity.Filter) error {
	f.Normalize()
	query := `
		INSERT INTO filters (id, name, slug, type, options, unit, category_id, apply_to_children, is_required, sort_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		f.ID, f.Name, f.Slug, string(f.Type), f.Options, f.Unit, f.CategoryID,
		f.ApplyToChildren, f.IsRequired, f.SortOrder, f.IsActive, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("insert filter: %w", err)
	}
	return nil
}

// GetByID obtiene un filtro por ID.
func (r *FilterRepo) GetByID(ctx context.Context, id string) (*entity.Filter, error) {
	row := r.q.QueryRow(ctx, `SELECT `+filterColumns+` FROM filters f WHERE f.id = $1`, id)
	f, err := scanFilter(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get filter: %w", err)
	}
	return f, nil
}

// Update actualiza un filtro existente.
func (r *FilterRepo) Update(ctx context.Context, f *entity.Filter) error {
	f.Normalize()
	query := `
		UPDATE filters SET name = $2, slug = $3, type = $4, options = $5, unit = $6, category_id = $7,
			apply_to_children = $8, is_required = $9, sort_order = $10, is_active = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		f.ID, f.Name, f.Slug, string(f.Type), f.Options, f.Unit, f.CategoryID,
		f.ApplyToChildren, f.IsRequired, f.SortOrder, f.IsActive, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("update filter: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List listado administrativo. Sin All solo devuelve filtros activos.
func (r *FilterRepo) List(ctx context.Context, params repository.FilterListParams) ([]*entity.Filter, error) {
	query := `
		SELECT ` + filterColumns + `
		FROM filters f
		WHERE ($1 = '' OR f.category_id = $1) AND ($2 OR f.is_active)
		ORDER BY f.category_id, f.sort_order, f.name`
	rows, err := r.q.Query(ctx, query, params.CategoryID, params.All)
	if err != nil {
		return nil, fmt.Errorf("list filters: %w", err)
	}
	return collectFilters(rows)
}

// ListByCategory filtros activos de la categoría más los de sus ancestros con
// apply_to_children, ordenados por sort_order y nombre.
func (r *FilterRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Filter, error) {
	query := `
		WITH RECURSIVE lineage AS (
			SELECT id, parent_id, 0 AS depth FROM categories WHERE id = $1
			UNION ALL
			SELECT c.id, c.parent_id, l.depth + 1
			FROM categories c JOIN lineage l ON c.id = l.parent_id
		)
		SELECT ` + filterColumns + `
		FROM filters f JOIN lineage l ON f.category_id = l.id
		WHERE f.is_active AND (l.depth = 0 OR f.apply_to_children)
		ORDER BY f.sort_order, f.name`
	rows, err := r.q.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list filters by category: %w", err)
	}
	return collectFilters(rows)
}

// Delete elimina un filtro por ID.
func (r *FilterRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM filters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete filter: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByCategory elimina los filtros propios de una categoría.
func (r *FilterRepo) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM filters WHERE category_id = $1`, categoryID)
	if err != nil {
		return 0, fmt.Errorf("delete filters by category: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func scanFilter(row pgx.Row) (*entity.Filter, error) {
	var f entity.Filter
	var typ string
	if err := row.Scan(
		&f.ID, &f.Name, &f.Slug, &typ, &f.Options, &f.Unit, &f.CategoryID,
		&f.ApplyToChildren, &f.IsRequired, &f.SortOrder, &f.IsActive, &f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	f.Type = entity.FilterType(typ)
	f.Normalize()
	return &f, nil
}

func collectFilters(rows pgx.Rows) ([]*entity.Filter, error) {
	defer rows.Close()
	var list []*entity.Filter
	for rows.Next() {
		f, err := scanFilter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan filter: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
