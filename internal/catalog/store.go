// internal/catalog/store.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"shop-assistant/internal/common/logger"
	"shop-assistant/internal/models"
)

var ErrQueryFailed = errors.New("CATALOG_QUERY_FAILED")

// Store answers catalog questions against the shop database. Every
// operation tolerates absent tables by returning an empty result, and
// re-resolves the price expression per call.
type Store struct {
	db     *sql.DB
	schema SchemaIntrospector
	cfg    Config
	logger logger.Logger
}

func NewStore(db *sql.DB, schema SchemaIntrospector, cfg Config, log logger.Logger) *Store {
	return &Store{db: db, schema: schema, cfg: cfg, logger: log}
}

// resolvePrice loads the live column set of the product table and plans
// the effective-price expression over it.
func (s *Store) resolvePrice(ctx context.Context) (PriceExpression, bool, error) {
	cols, err := s.schema.Columns(ctx, s.cfg.ProductTable)
	if err != nil {
		return PriceExpression{}, false, err
	}
	expr, ok := ResolvePriceExpression(cols, s.cfg.PriceColumn, s.cfg.SaleColumn)
	return expr, ok, nil
}

// PriceStatistics aggregates the effective price across all products.
// Returns nil without error when the table is missing, no price column
// resolves, or the catalog is empty.
func (s *Store) PriceStatistics(ctx context.Context) (*models.PriceStats, error) {
	ok, err := s.schema.HasTable(ctx, s.cfg.ProductTable)
	if err != nil || !ok {
		return nil, err
	}
	expr, resolved, err := s.resolvePrice(ctx)
	if err != nil {
		return nil, err
	}
	if !resolved {
		return nil, nil
	}

	rendered := expr.Render("")
	query := fmt.Sprintf(
		"SELECT COUNT(*), MIN(%s), MAX(%s), AVG(%s) FROM %s",
		rendered, rendered, rendered, s.cfg.ProductTable,
	)

	var count int64
	var min, max, avg sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, query).Scan(&count, &min, &max, &avg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	if count == 0 {
		return nil, nil
	}
	return &models.PriceStats{
		Count: count,
		Min:   min.Float64,
		Max:   max.Float64,
		Avg:   avg.Float64,
	}, nil
}

// BestSellers returns the top products by summed quantity over completed
// orders, optionally limited to orders created within the last windowDays.
// Ties are broken by product id ascending so results are deterministic.
func (s *Store) BestSellers(ctx context.Context, limit, windowDays int) ([]models.ProductSummary, error) {
	for _, t := range []string{s.cfg.OrderLineTable, s.cfg.OrderTable, s.cfg.ProductTable} {
		ok, err := s.schema.HasTable(ctx, t)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.logger.Debug("table absent, skipping best sellers", map[string]interface{}{
				"table": t,
			})
			return nil, nil
		}
	}

	priceSelect := "NULL"
	if expr, resolved, err := s.resolvePrice(ctx); err != nil {
		return nil, err
	} else if resolved {
		priceSelect = "MIN(" + expr.Render("pr") + ")"
	}

	args := []interface{}{pq.Array(s.cfg.OrderStatusDone)}
	where := "o.status = ANY($1)"
	if windowDays > 0 {
		args = append(args, time.Now().AddDate(0, 0, -windowDays))
		where += fmt.Sprintf(" AND o.created_at >= $%d", len(args))
	}
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT od.product_id, pr.name, pr.slug, pr.thumbnail, SUM(od.qty) AS total_qty, %s AS current_price
		FROM %s od
		JOIN %s o ON o.id = od.order_id
		JOIN %s pr ON pr.id = od.product_id
		WHERE %s
		GROUP BY od.product_id, pr.name, pr.slug, pr.thumbnail
		ORDER BY total_qty DESC, od.product_id ASC
		LIMIT $%d`,
		priceSelect, s.cfg.OrderLineTable, s.cfg.OrderTable, s.cfg.ProductTable, where, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	var products []models.ProductSummary
	for rows.Next() {
		var (
			p               models.ProductSummary
			slug, thumbnail sql.NullString
			price           sql.NullFloat64
		)
		if err := rows.Scan(&p.ID, &p.Name, &slug, &thumbnail, &p.Qty, &price); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
		}
		p.Slug = slug.String
		p.Image = thumbnail.String
		if price.Valid {
			v := price.Float64
			p.Price = &v
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	return products, nil
}

// SuggestedProducts returns on-sale products newest first, padded with
// newest products when fewer than limit are on sale.
func (s *Store) SuggestedProducts(ctx context.Context, limit int) ([]models.ProductSummary, error) {
	ok, err := s.schema.HasTable(ctx, s.cfg.ProductTable)
	if err != nil || !ok {
		return nil, err
	}
	expr, resolved, err := s.resolvePrice(ctx)
	if err != nil {
		return nil, err
	}

	priceSelect := "NULL"
	if resolved {
		priceSelect = expr.Render("")
	}

	var products []models.ProductSummary
	if expr.SaleColumn != "" {
		query := fmt.Sprintf(
			"SELECT id, name, slug, thumbnail, %s AS price FROM %s WHERE %s > 0 ORDER BY id DESC LIMIT $1",
			priceSelect, s.cfg.ProductTable, expr.SaleColumn,
		)
		products, err = s.queryProducts(ctx, query, limit)
		if err != nil {
			return nil, err
		}
	}

	if len(products) < limit {
		need := limit - len(products)
		ids := make([]int64, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}

		var (
			query string
			args  []interface{}
		)
		if len(ids) > 0 {
			query = fmt.Sprintf(
				"SELECT id, name, slug, thumbnail, %s AS price FROM %s WHERE id <> ALL($1) ORDER BY id DESC LIMIT $2",
				priceSelect, s.cfg.ProductTable,
			)
			args = []interface{}{pq.Array(ids), need}
		} else {
			query = fmt.Sprintf(
				"SELECT id, name, slug, thumbnail, %s AS price FROM %s ORDER BY id DESC LIMIT $1",
				priceSelect, s.cfg.ProductTable,
			)
			args = []interface{}{need}
		}

		padding, err := s.queryProducts(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		products = append(products, padding...)
	}
	return products, nil
}

// NewestProducts returns the most recently added products.
func (s *Store) NewestProducts(ctx context.Context, limit int) ([]models.ProductSummary, error) {
	ok, err := s.schema.HasTable(ctx, s.cfg.ProductTable)
	if err != nil || !ok {
		return nil, err
	}
	expr, resolved, err := s.resolvePrice(ctx)
	if err != nil {
		return nil, err
	}

	priceSelect := "NULL"
	if resolved {
		priceSelect = expr.Render("")
	}
	query := fmt.Sprintf(
		"SELECT id, name, slug, thumbnail, %s AS price FROM %s ORDER BY id DESC LIMIT $1",
		priceSelect, s.cfg.ProductTable,
	)
	return s.queryProducts(ctx, query, limit)
}

// NewestCategories returns the most recently added categories. Skipped
// when the category table or its name column is absent.
func (s *Store) NewestCategories(ctx context.Context, limit int) ([]models.Category, error) {
	if s.cfg.CategoryTable == "" {
		return nil, nil
	}
	ok, err := s.schema.HasTable(ctx, s.cfg.CategoryTable)
	if err != nil || !ok {
		return nil, err
	}
	cols, err := s.schema.Columns(ctx, s.cfg.CategoryTable)
	if err != nil {
		return nil, err
	}
	hasName := false
	for _, c := range cols {
		if c == "name" {
			hasName = true
			break
		}
	}
	if !hasName {
		return nil, nil
	}

	query := fmt.Sprintf(
		"SELECT id, name, slug FROM %s ORDER BY id DESC LIMIT $1",
		s.cfg.CategoryTable,
	)
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var (
			c    models.Category
			slug sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &slug); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
		}
		c.Slug = slug.String
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	return categories, nil
}

// queryProducts runs a product select of the shape
// (id, name, slug, thumbnail, price) and scans the rows.
func (s *Store) queryProducts(ctx context.Context, query string, args ...interface{}) ([]models.ProductSummary, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	var products []models.ProductSummary
	for rows.Next() {
		var (
			p               models.ProductSummary
			slug, thumbnail sql.NullString
			price           sql.NullFloat64
		)
		if err := rows.Scan(&p.ID, &p.Name, &slug, &thumbnail, &price); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
		}
		p.Slug = slug.String
		p.Image = thumbnail.String
		if price.Valid {
			v := price.Float64
			p.Price = &v
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	return products, nil
}
