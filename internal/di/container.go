package di

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/handler"
	"github.com/SimplyHuzu/body-works-gym-rep/internal/metrics"
	"github.com/SimplyHuzu/body-works-gym-rep/internal/repository"
	"github.com/SimplyHuzu/body-works-gym-rep/internal/service"
	"github.com/SimplyHuzu/body-works-gym-rep/pkg/config"
	"github.com/SimplyHuzu/body-works-gym-rep/pkg/database"
	"github.com/SimplyHuzu/body-works-gym-rep/pkg/logger"
	pkgredis "github.com/SimplyHuzu/body-works-gym-rep/pkg/redis"
)

// Container wires repositories, services and handlers. Postgres, Redis and
// Kafka are all optional at wire time: without Postgres the container runs on
// seeded in-memory storage, without Redis reads skip the cache, without Kafka
// no events leave the process.
type Container struct {
	Config *config.Config

	DB    *database.PostgresDB
	Redis *pkgredis.Client

	ResourceRepo    repository.ResourceRepository
	ReservationRepo repository.ReservationRepository
	Cache           repository.AvailabilityCache

	Publisher service.EventPublisher

	CatalogService     service.CatalogService
	CalendarService    service.CalendarService
	ReservationService service.ReservationService
	SuggestionService  service.SuggestionService

	ResourceHandler    *handler.ResourceHandler
	ReservationHandler *handler.ReservationHandler
	SuggestionHandler  *handler.SuggestionHandler
	HealthHandler      *handler.HealthHandler
}

// NewContainer builds the full dependency graph
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}
	log := logger.Get()

	if err := metrics.Init(); err != nil {
		return nil, fmt.Errorf("failed to init metrics: %w", err)
	}

	if err := c.initStorage(ctx, cfg, log); err != nil {
		return nil, err
	}
	c.initRedis(ctx, cfg, log)
	c.initKafka(ctx, cfg, log)
	c.initServices(cfg)
	c.initHandlers()

	return c, nil
}

func (c *Container) initStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		ConnectTimeout:  10 * time.Second,
		MaxRetries:      3,
		RetryInterval:   2 * time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	})
	if err != nil {
		if cfg.IsProduction() {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		// Development fallback so the service runs without infrastructure
		log.Warn("postgres unavailable, using seeded in-memory storage", zap.Error(err))
		c.ResourceRepo = repository.NewMemoryResourceRepository(repository.SeedResources())
		c.ReservationRepo = repository.NewMemoryReservationRepository()
		return nil
	}

	c.DB = db
	c.ResourceRepo = repository.NewPostgresResourceRepository(db.Pool())
	c.ReservationRepo = repository.NewPostgresReservationRepository(db.Pool())
	return nil
}

func (c *Container) initRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) {
	if !cfg.Redis.Enabled {
		return
	}

	client, err := pkgredis.NewClient(ctx, &pkgredis.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      cfg.Redis.PoolSize,
		MinIdleConns:  cfg.Redis.MinIdleConns,
		DialTimeout:   cfg.Redis.DialTimeout,
		ReadTimeout:   cfg.Redis.ReadTimeout,
		WriteTimeout:  cfg.Redis.WriteTimeout,
		MaxRetries:    3,
		RetryInterval: 2 * time.Second,
	})
	if err != nil {
		log.Warn("redis unavailable, availability cache disabled", zap.Error(err))
		return
	}

	c.Redis = client
	c.Cache = repository.NewRedisAvailabilityCache(client, 30*time.Second)
}

func (c *Container) initKafka(ctx context.Context, cfg *config.Config, log *logger.Logger) {
	if !cfg.Kafka.Enabled {
		return
	}

	publisher, err := service.NewKafkaEventPublisher(ctx, &service.EventPublisherConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    cfg.Kafka.Topic,
		ClientID: cfg.Kafka.ClientID,
	})
	if err != nil {
		log.Warn("kafka unavailable, reservation events disabled", zap.Error(err))
		return
	}
	c.Publisher = publisher
}

func (c *Container) initServices(cfg *config.Config) {
	c.CatalogService = service.NewCatalogService(c.ResourceRepo)

	c.CalendarService = service.NewCalendarService(c.ResourceRepo, c.ReservationRepo, c.Cache, &service.CalendarServiceConfig{
		OpenHour:  cfg.Calendar.OpenHour,
		CloseHour: cfg.Calendar.CloseHour,
		SlotWidth: cfg.Calendar.SlotWidth(),
	})

	c.ReservationService = service.NewReservationService(c.ResourceRepo, c.ReservationRepo, c.Cache, c.Publisher, &service.ReservationServiceConfig{
		MaxAdvance: time.Duration(cfg.Booking.MaxAdvanceDays) * 24 * time.Hour,
	})

	c.SuggestionService = service.NewSuggestionService(c.ResourceRepo, c.ReservationRepo, c.CalendarService, &service.SuggestionServiceConfig{
		ResourceWeight:   cfg.Suggest.ResourceWeight,
		TimeWeight:       cfg.Suggest.TimeWeight,
		ContentionWeight: cfg.Suggest.ContentionWeight,
		LookaheadDays:    cfg.Suggest.LookaheadDays,
		TopK:             cfg.Suggest.TopK,
		HistoryLimit:     cfg.Suggest.HistoryLimit,
	})
}

func (c *Container) initHandlers() {
	c.ResourceHandler = handler.NewResourceHandler(c.CatalogService, c.CalendarService)
	c.ReservationHandler = handler.NewReservationHandler(c.ReservationService)
	c.SuggestionHandler = handler.NewSuggestionHandler(c.SuggestionService)

	checks := map[string]handler.HealthChecker{}
	if c.DB != nil {
		checks["postgres"] = c.DB
	}
	if c.Redis != nil {
		checks["redis"] = c.Redis
	}
	c.HealthHandler = handler.NewHealthHandler(checks)
}

// Close releases all held connections
func (c *Container) Close() {
	if c.Publisher != nil {
		_ = c.Publisher.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
