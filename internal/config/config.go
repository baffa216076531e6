package config

import (
	"strings"
	"time"

	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/spf13/viper"
)

const (
	AuthModeSingle = "single"
	AuthModeStore  = "store"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Security    SecurityConfig
	Auth        AuthConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Redis       RedisConfig
	Printer     PrinterConfig
	Shop        ShopConfig
	Maintenance MaintenanceConfig
	Log         LogConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	Timezone string
}

type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	Timezone     string
	Path         string
	MaxIdleConns int
	MaxOpenConns int
}

// SecurityConfig holds the shared secret every business request must present.
type SecurityConfig struct {
	APIKey string
}

// AuthConfig selects how /api/users/login checks credentials.
type AuthConfig struct {
	Mode          string
	Username      string
	Password      string
	PasswordHash  string
	AdminUsername string
	AdminPassword string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
}

// ShopConfig is printed on receipts and PDFs.
type ShopConfig struct {
	Name        string
	Address     string
	Phone       string
	PhoneRegion string
}

type MaintenanceConfig struct {
	Schedule            string
	StalePromotionAfter time.Duration
	IdempotencyTTL      time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Get().Warnf(".env file not found, using environment variables: %v", err)
	}

	viper.SetDefault("APP_NAME", "billbook-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "5000")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_TIMEZONE", "Local")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "billbook")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("DB_PATH", "billbook.db")
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 100)
	viper.SetDefault("AUTH_MODE", AuthModeStore)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL", "5m")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("SHOP_NAME", "My Shop")
	viper.SetDefault("PHONE_REGION", "IN")
	viper.SetDefault("MAINTENANCE_SCHEDULE", "0 */15 * * * *")
	viper.SetDefault("STALE_PROMOTION_AFTER", "15m")
	viper.SetDefault("IDEMPOTENCY_TTL", "24h")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			Debug:    viper.GetBool("APP_DEBUG"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(viper.GetString("DB_DRIVER")),
			Host:         viper.GetString("DB_HOST"),
			Port:         viper.GetString("DB_PORT"),
			Name:         viper.GetString("DB_NAME"),
			User:         viper.GetString("DB_USER"),
			Password:     viper.GetString("DB_PASSWORD"),
			SSLMode:      viper.GetString("DB_SSL_MODE"),
			Timezone:     viper.GetString("DB_TIMEZONE"),
			Path:         viper.GetString("DB_PATH"),
			MaxIdleConns: viper.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: viper.GetInt("DB_MAX_OPEN_CONNS"),
		},
		Security: SecurityConfig{
			APIKey: strings.TrimSpace(viper.GetString("API_KEY")),
		},
		Auth: AuthConfig{
			Mode:          normalizeAuthMode(viper.GetString("AUTH_MODE")),
			Username:      viper.GetString("AUTH_USERNAME"),
			Password:      viper.GetString("AUTH_PASSWORD"),
			PasswordHash:  viper.GetString("AUTH_PASSWORD_HASH"),
			AdminUsername: viper.GetString("ADMIN_USERNAME"),
			AdminPassword: viper.GetString("ADMIN_PASSWORD"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(viper.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(viper.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			CacheTTL: viper.GetDuration("CACHE_TTL"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		Shop: ShopConfig{
			Name:        viper.GetString("SHOP_NAME"),
			Address:     viper.GetString("SHOP_ADDRESS"),
			Phone:       viper.GetString("SHOP_PHONE"),
			PhoneRegion: viper.GetString("PHONE_REGION"),
		},
		Maintenance: MaintenanceConfig{
			Schedule:            viper.GetString("MAINTENANCE_SCHEDULE"),
			StalePromotionAfter: viper.GetDuration("STALE_PROMOTION_AFTER"),
			IdempotencyTTL:      viper.GetDuration("IDEMPOTENCY_TTL"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// MySQLDSN builds a go-sql-driver/mysql DSN with time parsing enabled.
func (c *DatabaseConfig) MySQLDSN() string {
	return c.User + ":" + c.Password +
		"@tcp(" + c.Host + ":" + c.Port + ")/" + c.Name +
		"?charset=utf8mb4&parseTime=True&loc=UTC"
}

// Location resolves APP_TIMEZONE, falling back to the server's local zone.
func (c *AppConfig) Location() *time.Location {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		logger.Get().Warnf("unknown APP_TIMEZONE %q, using local time", c.Timezone)
		return time.Local
	}
	return loc
}

// SingleUser reports whether login is checked against one configured pair.
func (c *AuthConfig) SingleUser() bool {
	return c.Mode == AuthModeSingle
}

// Configured reports whether the selected mode has what it needs to log anyone in.
func (c *AuthConfig) Configured() bool {
	if !c.SingleUser() {
		return true
	}
	return c.Username != "" && (c.Password != "" || c.PasswordHash != "")
}

func normalizeAuthMode(mode string) string {
	if strings.EqualFold(strings.TrimSpace(mode), AuthModeSingle) {
		return AuthModeSingle
	}
	return AuthModeStore
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
