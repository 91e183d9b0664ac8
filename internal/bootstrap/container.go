package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"callcenter-analysis-be/internal/config"
	"callcenter-analysis-be/internal/controller"
	"callcenter-analysis-be/internal/events"
	"callcenter-analysis-be/internal/handler"
	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/repository/memory"
	redisRepo "callcenter-analysis-be/internal/repository/redis"
	"callcenter-analysis-be/internal/repository/unitofwork"
	"callcenter-analysis-be/internal/service"
	"callcenter-analysis-be/internal/session"
	"callcenter-analysis-be/internal/websocket"
	"callcenter-analysis-be/pkg/admin/dashboard"
	"callcenter-analysis-be/pkg/llm/factory"
	pktNats "callcenter-analysis-be/pkg/nats"
	"callcenter-analysis-be/pkg/scoring"
)

// ArchiveTopic carries completed analyses from the session router to the archive consumer.
const ArchiveTopic = "conversation.archive"

type Container struct {
	// Controllers
	AnalysisController controller.IAnalysisController
	AdminController    controller.IAdminController
	TicketController   controller.ITicketController

	// Realtime
	SessionHandler *handler.SessionHandler
	WebSocketHub   *websocket.Hub
	Router         *session.Router

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	wsLogger := logger.NewIsolatedLogger(cfg.App.RealtimeLogFilePath)

	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Scoring
	llmProvider, err := factory.NewLLMProvider(
		cfg.Scoring.Provider,
		cfg.Scoring.Model,
		cfg.Scoring.BaseURL,
		cfg.Scoring.APIKey,
		cfg.Scoring.Timeout,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize scoring provider: %v", err)
	}
	sysLogger.Info("Bootstrap", "Scoring provider ready", map[string]interface{}{
		"provider": cfg.Scoring.Provider, "model": cfg.Scoring.Model,
	})
	scorer := scoring.NewLLMScorer(llmProvider, sysLogger)

	// 4. Archive
	dashboardAggregator := dashboard.NewAggregator(sysLogger)
	publisherService := service.NewPublisherService(ArchiveTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		ArchiveTopic,
		uowFactory,
		dashboardAggregator,
		sysLogger,
	)

	sinks := session.Sinks{events.NewArchiveSink(publisherService, sysLogger)}

	// NATS is optional; without it domain events are simply not published.
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS publisher", map[string]interface{}{
				"url": cfg.App.NatsURL, "error": err.Error(),
			})
		} else {
			natsSink := events.NewNatsSink(natsPub, sysLogger, 1024)
			sinks = append(sinks, natsSink)
			c.closers = append(c.closers, natsSink.Close, natsPub.Close)
		}
	}

	// 5. Realtime
	router := session.NewRouter(scorer,
		session.WithSnapshotStore(newSnapshotStore(cfg, sysLogger)),
		session.WithEventSink(sinks),
		session.WithLogger(wsLogger),
		session.WithScoreTimeout(cfg.Scoring.Timeout),
	)
	wsHub := websocket.NewHub(router, cfg.Realtime.SendBufferSize, wsLogger)

	// Hub first so read pumps detach before the router stops.
	c.closers = append([]func(){wsHub.Shutdown, router.Close}, c.closers...)

	// 6. Services
	analysisService := service.NewAnalysisService(scorer, sysLogger, cfg.Scoring.Timeout)
	dashboardService := service.NewDashboardService(uowFactory, dashboardAggregator, sysLogger)
	ticketService := service.NewTicketService(cfg.Ticketing.URL, cfg.Ticketing.Timeout, sysLogger)

	// 7. Controllers
	c.AnalysisController = controller.NewAnalysisController(analysisService)
	c.AdminController = controller.NewAdminController(dashboardService)
	c.TicketController = controller.NewTicketController(ticketService)
	c.SessionHandler = handler.NewSessionHandler(wsHub, wsLogger)
	c.WebSocketHub = wsHub
	c.Router = router
	c.ConsumerService = consumerService
	return c
}

// Close releases everything NewContainer started, in dependency order.
func (c *Container) Close() {
	for _, fn := range c.closers {
		fn()
	}
	_ = c.Logger.Sync()
}

func newSnapshotStore(cfg *config.Config, log logger.ILogger) session.SnapshotStore {
	if cfg.Realtime.SnapshotStore != "redis" {
		return memory.NewSessionRepository(cfg.Realtime.SessionIdleTTL)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Warn("Bootstrap", "Redis unreachable, keeping idle sessions in memory", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return memory.NewSessionRepository(cfg.Realtime.SessionIdleTTL)
	}
	return redisRepo.NewSessionRepository(rdb, cfg.Realtime.SessionIdleTTL)
}
