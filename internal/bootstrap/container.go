package bootstrap

import (
	"context"
	"log"
	"strings"
	"time"

	"vocabforge-be/internal/config"
	"vocabforge-be/internal/controller"
	"vocabforge-be/internal/pkg/logger"
	"vocabforge-be/internal/pkg/mailer"
	"vocabforge-be/internal/repository/unitofwork"
	"vocabforge-be/internal/service"
	"vocabforge-be/pkg/knowledge"
	"vocabforge-be/pkg/llm/factory"
	"vocabforge-be/pkg/quota"
	"vocabforge-be/pkg/vocab"

	pktNats "vocabforge-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	GenerationController controller.IGenerationController
	DeliveryController   controller.IDeliveryController
	TopicController      controller.ITopicController
	AdminController      controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Job Queue
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis (backs the shared source rate-limit window)
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)

	rateWindow := time.Duration(cfg.Sources.RateWindowSec) * time.Second
	var windowStore knowledge.WindowStore
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Using local rate-limit window", err)
		windowStore = knowledge.NewLocalWindowStore(rateWindow)
	} else {
		windowStore = knowledge.NewRedisWindowStore(rdb)
	}
	limiter := knowledge.NewRateLimiter(windowStore, cfg.Sources.RateLimit, rateWindow)

	// 3. Knowledge Acquisition
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	sources := []knowledge.Source{
		knowledge.NewWikipediaSource(cfg.Sources.WikipediaBaseURL),
		knowledge.NewDictionarySource(cfg.Sources.DictionaryBaseURL),
		knowledge.NewCommunitySource(cfg.Sources.CommunityBaseURL),
	}
	acquirer := knowledge.NewAdapter(
		sources,
		knowledge.NewLLMSource(llmProvider),
		limiter,
		sysLogger,
		knowledge.AdapterConfig{
			MaxInFlight: cfg.Sources.MaxInFlight,
			BatchDelay:  time.Duration(cfg.Sources.BatchDelayMs) * time.Millisecond,
		},
	)

	// 4. Governance
	governor := quota.NewGovernor(sysLogger)
	alerter := service.NewCostAlerter(natsPub, emailService, cfg.SMTP.AlertEmail, sysLogger)
	ledger := quota.NewCostLedger(sysLogger, quota.Thresholds{
		PerCall: cfg.Cost.PerCallThreshold,
		Hourly:  cfg.Cost.HourlyThreshold,
		Daily:   cfg.Cost.DailyThreshold,
	}, alerter)

	var blocklist []string
	if cfg.Quota.Blocklist != "" {
		blocklist = strings.Split(cfg.Quota.Blocklist, ",")
	}
	gate := vocab.NewQualityGate(blocklist)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.JobTopicName, pubSub)

	generationService := service.NewGenerationService(
		uowFactory,
		acquirer,
		governor,
		ledger,
		gate,
		publisherService,
		natsPub,
		sysLogger,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.JobTopicName,
		cfg.App.WorkerCount,
		generationService,
		sysLogger,
	)

	// Audit trail over the event bus
	if natsSub != nil {
		eventLogService := service.NewEventLogService(natsSub, sysLogger)
		if err := eventLogService.Start(); err != nil {
			log.Printf("[WARN] Failed to start event audit trail: %v", err)
		}
	}

	deliveryService := service.NewDeliveryService(uowFactory, publisherService, sysLogger)
	topicService := service.NewTopicService(uowFactory, sysLogger)
	quotaService := service.NewQuotaService(uowFactory, governor, ledger)

	// 6. Controllers
	return &Container{
		GenerationController: controller.NewGenerationController(generationService),
		DeliveryController:   controller.NewDeliveryController(deliveryService),
		TopicController:      controller.NewTopicController(topicService),
		AdminController:      controller.NewAdminController(quotaService),

		ConsumerService: consumerService,
	}
}
