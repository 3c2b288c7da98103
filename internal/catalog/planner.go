// internal/catalog/planner.go
package catalog

import (
	"fmt"
)

// Column fallback chains used when no override is configured.
var (
	basePriceFallbacks = []string{"price_root", "price"}
	salePriceFallbacks = []string{"price_sale"}
)

// PriceExpression is the resolved effective-price plan for one query.
// It is recomputed per call so schema changes take effect immediately.
type PriceExpression struct {
	PriceColumn string
	SaleColumn  string
}

// ResolvePriceExpression picks the base and sale price columns for the
// product table. Overrides are honored only when they actually exist in
// the live column set; otherwise the fallback chains apply. The second
// return value is false when no price column resolves at all.
func ResolvePriceExpression(columns []string, priceOverride, saleOverride string) (PriceExpression, bool) {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	has := func(c string) bool {
		_, ok := set[c]
		return ok
	}

	var expr PriceExpression
	if priceOverride != "" && has(priceOverride) {
		expr.PriceColumn = priceOverride
	}
	if saleOverride != "" && has(saleOverride) {
		expr.SaleColumn = saleOverride
	}
	if expr.PriceColumn == "" {
		for _, c := range basePriceFallbacks {
			if has(c) {
				expr.PriceColumn = c
				break
			}
		}
	}
	if expr.SaleColumn == "" {
		for _, c := range salePriceFallbacks {
			if has(c) {
				expr.SaleColumn = c
				break
			}
		}
	}

	if expr.PriceColumn == "" && expr.SaleColumn == "" {
		return PriceExpression{}, false
	}
	return expr, true
}

// Render produces the SQL fragment for the effective selling price,
// preferring a positive sale price over the base price. qualifier is the
// table alias to prefix columns with, empty for unqualified queries.
func (p PriceExpression) Render(qualifier string) string {
	q := func(col string) string {
		if qualifier == "" {
			return col
		}
		return qualifier + "." + col
	}

	if p.SaleColumn != "" {
		base := p.PriceColumn
		if base == "" {
			base = p.SaleColumn
		}
		return fmt.Sprintf("CASE WHEN %s IS NOT NULL AND %s > 0 THEN %s ELSE %s END",
			q(p.SaleColumn), q(p.SaleColumn), q(p.SaleColumn), q(base))
	}
	return q(p.PriceColumn)
}
