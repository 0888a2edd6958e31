package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"stockroom/internal/config"
	"stockroom/internal/events"
	custommiddleware "stockroom/internal/middleware"
	"stockroom/internal/repository"
	"stockroom/internal/service"
	"stockroom/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config    *config.Config
	logger    *zap.Logger
	db        *sql.DB
	redis     *redis.Client
	publisher events.Publisher
}

// NewServer wires repositories, services, handlers and middleware into a
// ready-to-run HTTP server. db may be nil when the memory storage driver is
// configured.
func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.RateLimit.RedisHost, cfg.RateLimit.RedisPort),
			Password: cfg.RateLimit.RedisPassword,
			DB:       cfg.RateLimit.RedisDB,
		})
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
			KeyPrefix:         "ratelimit",
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Prometheus scrape endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Initialize repositories
	var productRepo repository.ProductRepository
	if cfg.Storage.Driver == "postgres" {
		productRepo = repository.NewPostgresProductRepository(db)
	} else {
		productRepo = repository.NewInMemoryProductRepository()
	}
	categoryRepo := repository.NewInMemoryCategoryRepository()
	reservationRepo := repository.NewInMemoryReservationRepository()
	saleRepo := repository.NewInMemorySaleRepository()

	var publisher events.Publisher
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	} else {
		publisher = events.NewNopPublisher()
	}

	// Initialize services
	categoryService := service.NewCategoryService(categoryRepo)
	reservationService := service.NewReservationService(reservationRepo)
	saleService := service.NewSaleService(saleRepo)
	productService := service.NewProductService(productRepo, reservationService, saleService, publisher)

	// Initialize handlers
	productHandler := transport.NewProductHandler(productService, reservationService, saleService, logger)
	categoryHandler := transport.NewCategoryHandler(categoryService, logger)
	reservationHandler := transport.NewReservationHandler(productService, reservationService, logger)
	saleHandler := transport.NewSaleHandler(productService, saleService, logger)

	// Mutating routes require a valid token when auth is enabled
	guard := passthrough
	if cfg.Auth.Enabled {
		auth := custommiddleware.AuthMiddleware(cfg.Auth.Secret, logger)
		role := custommiddleware.RequireRole([]string{"admin", "manager"}, logger)
		guard = func(next http.Handler) http.Handler {
			return auth(role(next))
		}
	}

	// Register routes
	productHandler.RegisterRoutes(router, guard)
	categoryHandler.RegisterRoutes(router, guard)
	reservationHandler.RegisterRoutes(router, guard)
	saleHandler.RegisterRoutes(router, guard)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:    cfg,
		logger:    logger,
		db:        db,
		redis:     redisClient,
		publisher: publisher,
	}

	return server
}

func passthrough(next http.Handler) http.Handler { return next }

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			s.logger.Error("Failed to close event publisher", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
