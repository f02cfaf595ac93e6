package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"marketplace-backend/internal/config"
	infraCache "marketplace-backend/internal/infrastructure/cache"
	"marketplace-backend/internal/infrastructure/database"
	"marketplace-backend/pkg/cache"

	// Order domain imports
	orderHandler "marketplace-backend/internal/domains/order/handler"
	orderRepo "marketplace-backend/internal/domains/order/repository"
	orderService "marketplace-backend/internal/domains/order/service"

	// Shipping domain imports
	"marketplace-backend/internal/domains/shipping/geocoder"
	geomock "marketplace-backend/internal/domains/shipping/geocoder/mock"
	"marketplace-backend/internal/domains/shipping/geocoder/nominatim"
	shipHandler "marketplace-backend/internal/domains/shipping/handler"
	shipmodel "marketplace-backend/internal/domains/shipping/model"
	shipRepo "marketplace-backend/internal/domains/shipping/repository"
	shipService "marketplace-backend/internal/domains/shipping/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Struct này là "root" của dependency graph
// Pattern: Service Locator + Dependency Injection
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	// Lifecycle: Singleton (1 instance duy nhất trong app lifetime)

	Config   *config.Config       // Application config
	DB       *database.PostgresDB // Database connection pool
	Cache    cache.Cache          // Redis cache (interface)
	Geocoder geocoder.Geocoder    // Geocoding provider (nominatim hoặc mock)

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================

	ShippingRepo shipRepo.RepositoryInterface
	OrderRepo    orderRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================

	ShippingService shipService.ServiceInterface
	OrderService    orderService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================

	ShippingHandler *shipHandler.ShippingHandler
	OrderHandler    *orderHandler.OrderHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// QUAN TRỌNG: Thứ tự initialization:
// 1. Config (không phụ thuộc gì)
// 2. Infrastructure (DB, Cache, Geocoder) - phụ thuộc Config
// 3. Repositories - phụ thuộc Infrastructure
// 4. Services - phụ thuộc Repositories
// 5. Handlers - phụ thuộc Services
//
// Nếu thứ tự sai → panic (nil pointer dereference)
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Println("🗄️  Connecting to PostgreSQL...")

	db := database.NewPostgresDB(&cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Println("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	log.Println("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	if err := redisCache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	c.Cache = redisCache
	log.Println("✅ Redis connected")

	// ========================================
	// STEP 4: INITIALIZE GEOCODER
	// ========================================
	geo, err := buildGeocoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize geocoder: %w", err)
	}
	c.Geocoder = geo
	log.Printf("✅ Geocoder ready (provider: %s)", cfg.Geocoding.Provider)

	// ========================================
	// STEP 5: INITIALIZE REPOSITORIES
	// ========================================
	c.ShippingRepo = shipRepo.NewPostgresRepository(db.Pool)
	c.OrderRepo = orderRepo.NewPostgresRepository(db.Pool)

	// ========================================
	// STEP 6: INITIALIZE SERVICES
	// ========================================
	location, err := time.LoadLocation(cfg.Shipping.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid shipping timezone: %w", err)
	}

	origin := shipmodel.Coordinates{
		Lat: cfg.Warehouse.Lat,
		Lng: cfg.Warehouse.Lng,
	}

	weights := shipService.NewWeightResolver(
		cfg.Shipping.MinBillableWeightKg,
		cfg.Shipping.DefaultItemWeightKg,
	)
	zones := shipService.NewZoneResolver()
	distances := shipService.NewDistanceResolver(origin, c.Geocoder, c.Cache, cfg.Geocoding.CacheTTL)
	rates := shipService.NewRateTable(c.ShippingRepo)
	surcharge := shipService.NewSurchargeEngine(
		cfg.Shipping.FragileSurcharge,
		cfg.Shipping.FragilePercent,
		location,
	)

	c.ShippingService = shipService.NewShippingService(
		c.ShippingRepo, weights, zones, distances, rates, surcharge,
	)

	// Load rate table + zone mappings từ DB trước khi nhận traffic
	if err := c.ShippingService.Bootstrap(ctx); err != nil {
		return nil, fmt.Errorf("failed to bootstrap shipping service: %w", err)
	}
	log.Println("✅ Rate table loaded")

	c.OrderService = orderService.NewOrderService(
		c.OrderRepo,
		c.ShippingService,
		cfg.Shipping.EditWindowHours,
		cfg.Shipping.StaleRequestHours,
	)

	// ========================================
	// STEP 7: INITIALIZE HANDLERS
	// ========================================
	c.ShippingHandler = shipHandler.NewShippingHandler(c.ShippingService)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)

	log.Println("✅ DI Container initialized")
	return c, nil
}

func buildGeocoder(cfg *config.Config) (geocoder.Geocoder, error) {
	if cfg.Geocoding.Provider == "mock" {
		return geomock.NewMockGeocoder(), nil
	}

	return nominatim.NewClient(&nominatim.Config{
		BaseURL:   cfg.Geocoding.BaseURL,
		UserAgent: cfg.Geocoding.UserAgent,
		Timeout:   cfg.Geocoding.Timeout,
	})
}

// ========================================
// CLEANUP
// ========================================

// Cleanup đóng mọi connection theo thứ tự ngược với init
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container...")

	if c.Cache != nil {
		if closer, ok := c.Cache.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				log.Printf("⚠️  Failed to close Redis: %v", err)
			}
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Println("✅ Container cleaned up")
}
