package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// catalogPageSize caps how many products a listing returns.
const catalogPageSize = 500

// Repository lists catalog products.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Product, error)
}

// PostgresRepository implements Repository using PostgreSQL. Filter values
// are always bound as parameters, never interpolated into query text.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed catalog repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns products matching the filter, up to the page cap.
func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]Product, error) {
	query, args := buildListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var (
			id      uuid.UUID
			created time.Time
			p       Product
		)
		if err := rows.Scan(&id, &p.Name, &p.Brand, &p.ProductType, &p.SkinType, &p.NotableEffects, &p.Price, &p.Description, &p.PictureURL, &created); err != nil {
			return nil, err
		}
		p.ID = id.String()
		p.CreatedAt = created.UTC()
		products = append(products, p)
	}
	return products, rows.Err()
}

// buildListQuery assembles a parameterized SELECT for the filter. Facet
// values match as case-insensitive substrings, ORed within a facet and
// ANDed across facets.
func buildListQuery(filter Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	facet := func(column string, values []string) {
		if len(values) == 0 {
			return
		}
		ors := make([]string, 0, len(values))
		for _, v := range values {
			args = append(args, escapeLike(v))
			ors = append(ors, fmt.Sprintf("%s ILIKE '%%' || $%d || '%%'", column, len(args)))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	facet("skintype", filter.SkinTypes)
	facet("product_type", filter.ProductTypes)
	facet("brand", filter.Brands)
	facet("notable_effects", filter.NotableEffects)

	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}

	query := `SELECT id, name, brand, product_type, skintype, notable_effects, price, description, picture_url, created_at FROM products`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, catalogPageSize)
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d", len(args))
	return query, args
}

// escapeLike neutralizes ILIKE pattern characters in a filter value so the
// value matches literally instead of acting as a wildcard.
func escapeLike(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(v)
}
