package bootstrap

import (
	"context"
	"fmt"

	"shopping-assistant-be/internal/config"
	"shopping-assistant-be/internal/controller"
	"shopping-assistant-be/internal/handler"
	"shopping-assistant-be/internal/pkg/logger"
	"shopping-assistant-be/internal/pkg/serverutils"
	"shopping-assistant-be/internal/repository/cache"
	repomemory "shopping-assistant-be/internal/repository/memory"
	"shopping-assistant-be/internal/repository/persistence"
	"shopping-assistant-be/internal/repository/unitofwork"
	"shopping-assistant-be/internal/service"
	"shopping-assistant-be/internal/websocket"
	"shopping-assistant-be/pkg/events"
	"shopping-assistant-be/pkg/memory"
	pktNats "shopping-assistant-be/pkg/nats"
	"shopping-assistant-be/pkg/nlu"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	ProductController controller.IProductController
	MemoryController  controller.IMemoryController
	SystemController  controller.ISystemController

	// Middleware
	AdminMiddleware fiber.Handler
	RateLimiter     fiber.Handler

	// Services (exposed for main.go and the terminal client)
	AssistantService service.IAssistantService
	MemoryService    service.IMemoryService
	AnalyticsService service.IAnalyticsService

	// WebSockets
	ChatSocketHandler *handler.ChatSocketHandler
	WebSocketHub      *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires the application. db and rdb are optional: without them
// memory stays in process only.
func NewContainer(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	health := make(map[string]controller.HealthCheck)
	c := &Container{Logger: sysLogger}

	products, err := repomemory.NewProductRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	health["catalog"] = func(ctx context.Context) error {
		_, err := products.Count(ctx)
		return err
	}

	var store memory.Store
	if db != nil {
		store = persistence.NewMemoryStore(unitofwork.NewRepositoryFactory(db))
		health["database"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	} else {
		sysLogger.Warn("Bootstrap", "No database configured, conversation memory is not persisted", nil)
	}

	var sessionCache memory.SessionCache
	if rdb != nil {
		redisCache := cache.NewSessionCache(rdb, cfg.Assistant.SessionTTL)
		sessionCache = redisCache
		health["cache"] = redisCache.HealthCheck
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	publishers := events.MultiPublisher{events.NewWatermillPublisher(pubSub, cfg.Keys.EventsTopic)}
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS publisher", map[string]interface{}{"error": err.Error()})
		} else {
			publishers = append(publishers, natsPub)
			health["nats"] = natsPub.HealthCheck
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 3. Services
	mem := memory.New(memory.Config{
		Capacity:       cfg.Assistant.MemoryLimit,
		SessionTTL:     cfg.Assistant.SessionTTL,
		PersistTimeout: cfg.Assistant.PersistTimeout,
		UnknownLimit:   cfg.Assistant.UnknownLogLimit,
	}, store, sessionCache, sysLogger, nil)

	picker := service.FirstTemplate
	if cfg.Assistant.RandomTemplates {
		picker = service.RandomTemplate
	}

	analyticsService := service.NewAnalyticsService(pubSub, cfg.Keys.EventsTopic, sysLogger)
	assistantService := service.NewAssistantService(
		nlu.NewScorer(nlu.DefaultLexicon()),
		mem,
		products,
		publishers,
		analyticsService,
		sysLogger,
		service.AssistantOptions{
			ConfidentThreshold: cfg.Assistant.ConfidentThreshold,
			UnknownThreshold:   cfg.Assistant.UnknownThreshold,
			TopK:               cfg.Assistant.TopK,
			Picker:             picker,
		},
	)
	memoryService := service.NewMemoryService(mem, publishers, sysLogger)
	productService := service.NewProductService(products)

	// 4. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)
	c.WebSocketHub = websocket.NewHub(rdb, uuid.NewString(), wsLogger)
	c.ChatSocketHandler = handler.NewChatSocketHandler(assistantService, c.WebSocketHub, wsLogger)

	// 5. Controllers
	c.ChatController = controller.NewChatController(assistantService)
	c.ProductController = controller.NewProductController(productService)
	c.MemoryController = controller.NewMemoryController(memoryService)
	c.SystemController = controller.NewSystemController(cfg.App.Name, assistantService, health)

	c.AdminMiddleware = serverutils.AdminMiddleware(cfg.Keys.AdminJWTSecret)
	c.RateLimiter = serverutils.RateLimiter(cfg.App.RateLimitPerMinute, sysLogger)

	c.AssistantService = assistantService
	c.MemoryService = memoryService
	c.AnalyticsService = analyticsService

	return c, nil
}

// Close releases the event bus and external connections, newest first.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
