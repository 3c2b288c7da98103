// internal/catalog/config.go
package catalog

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("INVALID_CATALOG_CONFIG")

// Config carries the table names and price-column overrides the store
// operates on. Table names default to the legacy schema so the service
// can sit on the existing database unchanged.
type Config struct {
	ProductTable   string
	OrderTable     string
	OrderLineTable string
	CategoryTable  string

	PriceColumn     string // override, empty means use the fallback chain
	SaleColumn      string
	OrderStatusDone []int64
}

func (c Config) Validate() error {
	if c.ProductTable == "" {
		return fmt.Errorf("%w: product table is required", ErrInvalidConfig)
	}
	if c.OrderTable == "" || c.OrderLineTable == "" {
		return fmt.Errorf("%w: order tables are required", ErrInvalidConfig)
	}
	if len(c.OrderStatusDone) == 0 {
		return fmt.Errorf("%w: at least one completed order status is required", ErrInvalidConfig)
	}
	return nil
}
