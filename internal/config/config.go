package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Warehouse WarehouseConfig
	Shipping  ShippingConfig
	Geocoding GeocodingConfig
	Jobs      JobConfig
}

// JobConfig chứa cron schedules cho worker jobs
type JobConfig struct {
	AbandonStaleRequestsCron string // cron expr, default chạy mỗi giờ
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// =====================================================
// WAREHOUSE CONFIGURATION
// =====================================================
// Origin cố định cho mọi shipment - single source of truth.
// Mọi component cần origin PHẢI inject từ đây, không hardcode
// coordinates ở call sites.
type WarehouseConfig struct {
	Name string  // Warehouse label (e.g., "Accra Central Warehouse")
	Lat  float64 // Warehouse latitude
	Lng  float64 // Warehouse longitude
}

type ShippingConfig struct {
	EditWindowHours     int     // Order chỉ được edit trong window này (default: 24h)
	MinBillableWeightKg float64 // Weight tối thiểu để tính phí (default: 0.5kg)
	DefaultItemWeightKg float64 // Weight mặc định cho item thiếu weight (default: 0.5kg)
	FragileSurcharge    float64 // Phụ phí hàng dễ vỡ, GHS (flat amount)
	FragilePercent      float64 // Phụ phí hàng dễ vỡ theo %, dùng khi > 0 thay cho flat
	Timezone            string  // Local timezone cho same-day cutoff (default: Africa/Accra)
	StaleRequestHours   int     // Pending payment request cũ hơn → abandoned (worker job)
}

type GeocodingConfig struct {
	Provider  string        // nominatim hoặc mock
	BaseURL   string        // Geocoding API base URL
	UserAgent string        // Nominatim yêu cầu User-Agent định danh app
	Timeout   time.Duration // Timeout cho mỗi geocode call
	CacheTTL  time.Duration // TTL cho geocode results trong Redis
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Marketplace API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "marketplace"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},

		// ========================================
		// WAREHOUSE ORIGIN
		// ========================================
		// Default: Accra Central (Makola area)
		Warehouse: WarehouseConfig{
			Name: getEnv("WAREHOUSE_NAME", "Accra Central Warehouse"),
			Lat:  getEnvFloat("WAREHOUSE_LAT", 5.5502),
			Lng:  getEnvFloat("WAREHOUSE_LNG", -0.2174),
		},
		Shipping: ShippingConfig{
			EditWindowHours:     getEnvInt("SHIPPING_EDIT_WINDOW_HOURS", 24),
			MinBillableWeightKg: getEnvFloat("SHIPPING_MIN_WEIGHT_KG", 0.5),
			DefaultItemWeightKg: getEnvFloat("SHIPPING_DEFAULT_ITEM_WEIGHT_KG", 0.5),
			FragileSurcharge:    getEnvFloat("SHIPPING_FRAGILE_SURCHARGE", 5.0),
			FragilePercent:      getEnvFloat("SHIPPING_FRAGILE_PERCENT", 0),
			Timezone:            getEnv("SHIPPING_TIMEZONE", "Africa/Accra"),
			StaleRequestHours:   getEnvInt("SHIPPING_STALE_REQUEST_HOURS", 24),
		},
		Jobs: JobConfig{
			AbandonStaleRequestsCron: getEnv("JOB_ABANDON_STALE_CRON", "0 * * * *"),
		},
		Geocoding: GeocodingConfig{
			Provider:  getEnv("GEOCODING_PROVIDER", "nominatim"),
			BaseURL:   getEnv("GEOCODING_BASE_URL", "https://nominatim.openstreetmap.org"),
			UserAgent: getEnv("GEOCODING_USER_AGENT", "marketplace-backend/1.0"),
			Timeout:   time.Duration(getEnvInt("GEOCODING_TIMEOUT_SECONDS", 5)) * time.Second,
			CacheTTL:  time.Duration(getEnvInt("GEOCODING_CACHE_TTL_MINUTES", 1440)) * time.Minute,
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Geocoding.Provider == "mock" {
			fmt.Println("WARNING: mock geocoding provider in production - distance-based pricing will be fake")
		}
	}

	if c.Warehouse.Lat < -90 || c.Warehouse.Lat > 90 {
		return fmt.Errorf("WAREHOUSE_LAT out of range: %f", c.Warehouse.Lat)
	}
	if c.Warehouse.Lng < -180 || c.Warehouse.Lng > 180 {
		return fmt.Errorf("WAREHOUSE_LNG out of range: %f", c.Warehouse.Lng)
	}

	if c.Shipping.EditWindowHours <= 0 {
		return fmt.Errorf("SHIPPING_EDIT_WINDOW_HOURS must be positive")
	}
	if c.Shipping.MinBillableWeightKg <= 0 {
		return fmt.Errorf("SHIPPING_MIN_WEIGHT_KG must be positive")
	}
	if _, err := time.LoadLocation(c.Shipping.Timezone); err != nil {
		return fmt.Errorf("invalid SHIPPING_TIMEZONE %q: %w", c.Shipping.Timezone, err)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
