package routes

import (
	"context"
	"log"
	_ "square_gateway/docs" // This will be auto-generated
	"square_gateway/internal/adapter/http/handlers"
	"square_gateway/internal/adapter/messaging"
	"square_gateway/internal/adapter/persistence/cache"
	repository2 "square_gateway/internal/adapter/persistence/repository"
	cacheclient "square_gateway/internal/infrastructure/cache"
	"square_gateway/internal/infrastructure/config"
	"square_gateway/internal/infrastructure/database"
	"square_gateway/internal/infrastructure/payments"
	"square_gateway/internal/usecase"
	"square_gateway/internal/usecase/interfaces"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const connectTimeout = 5 * time.Second

// Run will start the server
func Run() {
	cfg := config.Load()

	deps := buildDependencies(context.Background(), cfg)
	defer deps.close()

	router := NewRouter(cfg, deps)

	err := router.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

// Dependencies are the use cases the router serves plus whatever must be closed on exit.
type Dependencies struct {
	SquareUseCase  usecase.ISquareUseCase
	WebhookUseCase usecase.IWebhookUseCase
	GatewayState   func() string

	closers []func() error
}

func (d Dependencies) close() {
	for _, c := range d.closers {
		if err := c(); err != nil {
			log.Printf("[routes] shutdown close failed err=%v", err)
		}
	}
}

// NewRouter builds the engine without starting it.
func NewRouter(cfg config.Config, deps Dependencies) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, cfg)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	squareHandler := handlers.NewSquareHandler(deps.SquareUseCase)
	webhookHandler := handlers.NewWebhookHandler(deps.WebhookUseCase)

	addPingRoutes(&router.RouterGroup, deps.GatewayState)
	addSquareRoutes(router.Group(PathAPI), squareHandler)
	addWebhookRoutes(&router.RouterGroup, webhookHandler, cfg.SquareWebhookSignatureKey, cfg.SquareWebhookNotificationURL)
	return router
}

func buildDependencies(ctx context.Context, cfg config.Config) Dependencies {
	var deps Dependencies

	var gateway interfaces.IPaymentGateway
	if resilient := newPaymentGateway(cfg); resilient != nil {
		gateway = resilient
		deps.GatewayState = resilient.State
	}

	var idempotency interfaces.IIdempotencyStore
	if cfg.RedisAddr != "" {
		cctx, cancel := context.WithTimeout(ctx, connectTimeout)
		rdb, err := cacheclient.ConnectRedis(cctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			log.Printf("[routes] redis idempotency store disabled err=%v", err)
		} else {
			idempotency = cache.NewRedisIdempotencyStore(rdb, cfg.IdempotencyTTL)
			deps.closers = append(deps.closers, rdb.Close)
			log.Printf("[routes] redis idempotency store enabled addr=%s", cfg.RedisAddr)
		}
	}

	var eventRepo interfaces.IWebhookEventRepository
	if cfg.WebhookEventsTable != "" {
		cctx, cancel := context.WithTimeout(ctx, connectTimeout)
		ddb, err := database.ConnectDynamoDB(cctx)
		cancel()
		if err != nil {
			log.Printf("[routes] webhook event ledger disabled err=%v", err)
		} else {
			eventRepo = repository2.NewWebhookEventDynamoRepository(ddb, cfg.WebhookEventsTable)
			log.Printf("[routes] webhook event ledger enabled table=%s", cfg.WebhookEventsTable)
		}
	}

	var publisher interfaces.IWebhookEventPublisher
	if cfg.RabbitMQURL != "" {
		pub, err := messaging.NewRabbitMQWebhookPublisher(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("[routes] webhook publisher disabled err=%v", err)
		} else {
			publisher = pub
			deps.closers = append(deps.closers, pub.Close)
			log.Printf("[routes] webhook publisher enabled exchange=%s", messaging.WebhookExchangeName)
		}
	}

	deps.SquareUseCase = usecase.NewSquareUseCase(gateway, idempotency, cfg.RequestTimeout, cfg.DefaultCurrency)
	deps.WebhookUseCase = usecase.NewWebhookUseCase(eventRepo, publisher, cfg.WebhookEventTTL)
	return deps
}

// newPaymentGateway returns nil when Square credentials are missing and mock mode is off.
func newPaymentGateway(cfg config.Config) *payments.ResilientGateway {
	var next interfaces.IPaymentGateway
	if cfg.PaymentGatewayMock {
		next = payments.NewMockGateway()
	} else {
		sq, err := payments.NewSquareGateway(cfg.SquareAccessToken, cfg.IsProduction())
		if err != nil {
			log.Printf("Square gateway not configured: %v", err)
			return nil
		}
		log.Printf("[routes] square gateway configured environment=%s", cfg.SquareEnvironment)
		next = sq
	}

	return payments.NewResilientGateway(next, payments.ResilienceSettings{
		MaxRetries:       cfg.UpstreamMaxRetries,
		FailureThreshold: cfg.BreakerFailureThreshold,
		OpenTimeout:      cfg.BreakerOpenTimeout,
	})
}

func setMiddlewares(router *gin.Engine, cfg config.Config) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", handlers.HeaderIdempotencyKey},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
