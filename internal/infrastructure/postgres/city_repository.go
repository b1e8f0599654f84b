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

var _ repository.CityRepository = (*CityRepo)(nil)

const cityColumns = `id, slug, label, region_id, created_at, updated_at`

// CityRepo implementación del puerto CityRepository sobre PostgreSQL.
type CityRepo struct {
	q Querier
}

// NewCityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCityRepository(q Querier) *CityRepo {
	return &CityRepo{q: q}
}

// Create persiste una nueva ciudad.
func (r *CityRepo) Create(ctx context.Context, x *entity.City) error {
	query := `INSERT INTO cities (` + cityColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, x.ID, x.Slug, x.Label, x.RegionID, x.CreatedAt, x.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("insert city: %w", err)
	}
	return nil
}

// GetByID obtiene una ciudad por ID.
func (r *CityRepo) GetByID(ctx context.Context, id string) (*entity.City, error) {
	var x entity.City
	err := r.q.QueryRow(ctx, `SELECT `+cityColumns+` FROM cities WHERE id = $1`, id).
		Scan(&x.ID, &x.Slug, &x.Label, &x.RegionID, &x.CreatedAt, &x.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get city: %w", err)
	}
	return &x, nil
}

// Update actualiza una ciudad existente.
func (r *CityRepo) Update(ctx context.Context, x *entity.City) error {
	cmd, err := r.q.Exec(ctx, `UPDATE cities SET slug = $2, label = $3, region_id = $4, updated_at = $5 WHERE id = $1`,
		x.ID, x.Slug, x.Label, x.RegionID, x.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("update city: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ciudades ordenadas por etiqueta; regionID vacío devuelve todas.
func (r *CityRepo) List(ctx context.Context, regionID string) ([]*entity.City, error) {
	query := `SELECT ` + cityColumns + ` FROM cities WHERE ($1 = '' OR region_id = $1) ORDER BY label, id`
	rows, err := r.q.Query(ctx, query, regionID)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()
	var list []*entity.City
	for rows.Next() {
		var x entity.City
		if err := rows.Scan(&x.ID, &x.Slug, &x.Label, &x.RegionID, &x.CreatedAt, &x.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		list = append(list, &x)
	}
	return list, rows.Err()
}

// Delete elimina una ciudad por ID.
func (r *CityRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete city: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
