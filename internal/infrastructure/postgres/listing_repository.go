package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/chubrika/wineo-admin/internal/domain"
	"github.com/chubrika/wineo-admin/internal/domain/entity"
	"github.com/chubrika/wineo-admin/internal/domain/repository"
)

var _ repository.ListingRepository = (*ListingRepo)(nil)

const listingColumns = `id, title, slug, description, type, COALESCE(category_id, ''), category,
	COALESCE(price, 0), currency, price_type, rent_period, COALESCE(images, '{}'), thumbnail,
	specifications, location, attributes, owner_id, status, promotion, views, saves,
	seo_title, seo_description, created_at, updated_at`

// ListingRepo implementación del puerto ListingRepository sobre PostgreSQL.
// Categoría, ubicación, especificaciones, atributos y promoción se guardan como JSONB.
type ListingRepo struct {
	q Querier
}

// NewListingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewListingRepository(q Querier) *ListingRepo {
	return &ListingRepo{q: q}
}

// listingDocs columnas JSONB ya serializadas de un payload.
type listingDocs struct {
	category, specs, location, attributes, promotion []byte
}

func encodeDocs(p entity.ListingPayload) (listingDocs, error) {
	var (
		d   listingDocs
		err error
	)
	if d.category, err = json.Marshal(p.Category); err != nil {
		return d, fmt.Errorf("encode category: %w", err)
	}
	specs := entity.Specifications{}
	if p.Specifications != nil {
		specs = *p.Specifications
	}
	if d.specs, err = json.Marshal(specs); err != nil {
		return d, fmt.Errorf("encode specifications: %w", err)
	}
	if d.location, err = json.Marshal(p.Location); err != nil {
		return d, fmt.Errorf("encode location: %w", err)
	}
	attrs := p.Attributes
	if attrs == nil {
		attrs = []entity.Attribute{}
	}
	if d.attributes, err = json.Marshal(attrs); err != nil {
		return d, fmt.Errorf("encode attributes: %w", err)
	}
	if d.promotion, err = json.Marshal(p.Promotion); err != nil {
		return d, fmt.Errorf("encode promotion: %w", err)
	}
	return d, nil
}

// Create inserta un anuncio desde el payload del borrador. El estado por defecto es active.
func (r *ListingRepo) Create(ctx context.Context, p entity.ListingPayload) (*entity.Listing, error) {
	docs, err := encodeDocs(p)
	if err != nil {
		return nil, err
	}
	status := p.Status
	if status == "" {
		status = entity.StatusActive
	}
	now := time.Now()
	query := `
		INSERT INTO listings (id, title, slug, description, type, category_id, category, price, currency, price_type,
			rent_period, images, thumbnail, specifications, location, attributes, owner_id, status, promotion,
			seo_title, seo_description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, '', $17, $18, $19, $20, $21, $21)
		RETURNING ` + listingColumns
	row := r.q.QueryRow(ctx, query,
		uuid.New().String(), p.Title, p.Slug, p.Description, string(p.Type), nullIfEmpty(p.CategoryID), docs.category,
		p.Price, string(p.Currency), string(p.PriceType), string(p.RentPeriod), images(p.Images), p.Thumbnail,
		docs.specs, docs.location, docs.attributes, string(status), docs.promotion,
		p.SEOTitle, p.SEODescription, now,
	)
	l, err := scanListing(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrInvalidReference
		}
		return nil, fmt.Errorf("insert listing: %w", err)
	}
	return l, nil
}

// Update reemplaza los campos editables del anuncio. Sin status en el payload se conserva el actual.
// Devuelve domain.ErrNotFound si el anuncio no existe.
func (r *ListingRepo) Update(ctx context.Context, id string, p entity.ListingPayload) (*entity.Listing, error) {
	docs, err := encodeDocs(p)
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE listings SET title = $2, slug = $3, description = $4, type = $5, category_id = $6, category = $7,
			price = $8, currency = $9, price_type = $10, rent_period = $11, images = $12, thumbnail = $13,
			specifications = $14, location = $15, attributes = $16, status = COALESCE(NULLIF($17, ''), status),
			promotion = $18, seo_title = $19, seo_description = $20, updated_at = $21
		WHERE id = $1
		RETURNING ` + listingColumns
	row := r.q.QueryRow(ctx, query,
		id, p.Title, p.Slug, p.Description, string(p.Type), nullIfEmpty(p.CategoryID), docs.category,
		p.Price, string(p.Currency), string(p.PriceType), string(p.RentPeriod), images(p.Images), p.Thumbnail,
		docs.specs, docs.location, docs.attributes, string(p.Status), docs.promotion,
		p.SEOTitle, p.SEODescription, time.Now(),
	)
	l, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return nil, domain.ErrInvalidReference
		}
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return l, nil
}

// GetByID obtiene un anuncio por ID.
func (r *ListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	l, err := scanListing(r.q.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return l, nil
}

// Delete elimina un anuncio. Devuelve domain.ErrNotFound si no existe.
func (r *ListingRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanListing(row pgx.Row) (*entity.Listing, error) {
	var (
		l                                            entity.Listing
		typ, currency, priceType, rentPeriod, status string
		category, specs, location, attrs, promotion  []byte
		price                                        decimal.Decimal
	)
	if err := row.Scan(
		&l.ID, &l.Title, &l.Slug, &l.Description, &typ, &l.CategoryID, &category,
		&price, &currency, &priceType, &rentPeriod, &l.Images, &l.Thumbnail,
		&specs, &location, &attrs, &l.OwnerID, &status, &promotion, &l.Views, &l.Saves,
		&l.SEOTitle, &l.SEODescription, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	l.Type = entity.ListingType(typ)
	l.Price = price
	l.Currency = entity.Currency(currency)
	l.PriceType = entity.PriceType(priceType)
	l.RentPeriod = entity.RentPeriod(rentPeriod)
	l.Status = entity.ListingStatus(status)
	for _, doc := range []struct {
		raw []byte
		dst interface{}
	}{
		{category, &l.Category},
		{specs, &l.Specifications},
		{location, &l.Location},
		{attrs, &l.Attributes},
		{promotion, &l.Promotion},
	} {
		if len(doc.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(doc.raw, doc.dst); err != nil {
			return nil, fmt.Errorf("decode listing %s: %w", l.ID, err)
		}
	}
	return &l, nil
}

func images(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
