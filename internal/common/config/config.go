// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Chat     ChatConfig     `mapstructure:"chat"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address        string `mapstructure:"address"`
	ReadTimeout    int    `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout   int    `mapstructure:"write_timeout"` // milliseconds
	RateLimit      int    `mapstructure:"rate_limit"`    // requests per window, 0 disables
	RateWindowSecs int    `mapstructure:"rate_window_seconds"`
	MetricsAddress string `mapstructure:"metrics_address"` // empty disables the metrics listener
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ChatConfig holds every knob the chat core reads. It is loaded once and passed
// into constructors; the core never reads configuration ambiently.
type ChatConfig struct {
	StrictMode   bool     `mapstructure:"strict_mode"`
	ShopName     string   `mapstructure:"shop_name"`
	Timezone     string   `mapstructure:"timezone"`
	WeekdayNames []string `mapstructure:"weekday_names"` // Sunday first, 7 entries

	FrontendOrigin       string `mapstructure:"frontend_origin"`
	FrontendProductPath  string `mapstructure:"frontend_product_path"`
	FrontendCategoryPath string `mapstructure:"frontend_category_path"`
	AssetOrigin          string `mapstructure:"asset_origin"`

	ProductPriceColumn string `mapstructure:"product_price_col"`
	ProductSaleColumn  string `mapstructure:"product_sale_price_col"`

	OrderStatusDone []int `mapstructure:"order_status_done"`

	ShopOpen  string `mapstructure:"shop_open"`  // "HH:MM", empty disables
	ShopClose string `mapstructure:"shop_close"` // "HH:MM", empty disables

	BestSellerLimit int `mapstructure:"best_seller_limit"`
	SuggestLimit    int `mapstructure:"suggest_limit"`
	NewestLimit     int `mapstructure:"newest_limit"`
	DefaultDaysBack int `mapstructure:"default_days_back"`
}

// CatalogConfig names the underlying tables so the service can sit on the
// legacy shop schema unchanged.
type CatalogConfig struct {
	ProductTable   string `mapstructure:"product_table"`
	OrderTable     string `mapstructure:"order_table"`
	OrderLineTable string `mapstructure:"order_line_table"`
	CategoryTable  string `mapstructure:"category_table"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
