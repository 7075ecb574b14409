package routes

import (
	"context"
	"time"

	"fashion-store/config"
	"fashion-store/controllers"
	"fashion-store/libs"
	"fashion-store/metrics"
	"fashion-store/middleware"
	"fashion-store/repositories"
	"fashion-store/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// NewRouter wires repositories, services and controllers into an engine.
// redisClient may be nil. The returned func releases the optional clients.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client) (*gin.Engine, func()) {
	var closers []func() error

	productRepo := repositories.NewProductRepository(pool)
	orderRepo := repositories.NewOrderRepository(pool)
	shippingRepo := repositories.NewShippingRepository(pool)
	userRepo := repositories.NewUserRepository(pool)

	var cartRepo repositories.CartRepository
	if redisClient != nil {
		cartRepo = repositories.NewRedisCartRepository(redisClient)
	} else {
		log.Warn("Redis unavailable, carts are kept in memory")
		cartRepo = repositories.NewMemoryCartRepository()
	}

	stripe := libs.NewStripeClient(cfg.StripeAPIURL, cfg.StripeSecretKey, cfg.StripeTimeout)

	// Optional side effects stay untyped nil when unconfigured.
	var publisher services.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := libs.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		publisher = kp
		closers = append(closers, kp.Close)
	}

	var notifier services.OrderNotifier
	if mailer, err := libs.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom); err == nil {
		notifier = mailer
	} else {
		log.WithError(err).Warn("Order confirmation emails disabled")
	}

	var uploader services.ImageUploader
	if cld, err := libs.NewCloudinaryService(cfg.CloudinaryURL, cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret); err == nil {
		uploader = cld
	} else {
		log.WithError(err).Warn("Product image uploads disabled")
	}

	productService := services.NewProductService(productRepo, uploader, redisClient)
	cartService := services.NewCartService(cartRepo, productRepo)
	checkoutService := services.NewCheckoutService(stripe, productRepo, services.CheckoutConfig{
		SiteURL:               cfg.SiteURL,
		Currency:              cfg.StripeCurrency,
		DefaultLocale:         cfg.DefaultLocale,
		AllowedCountries:      cfg.AllowedCountries,
		ExpressShippingAmount: cfg.ExpressShippingAmount,
	})
	webhookService := services.NewWebhookService(cfg.StripeWebhookSecret, orderRepo, publisher, notifier)
	shippingService := services.NewShippingService(shippingRepo, productRepo, redisClient)
	trackingService := services.NewTrackingService(orderRepo, shippingRepo)
	orderService := services.NewOrderService(orderRepo, shippingRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.WithError(err).Error("Failed to bootstrap admin user")
	}
	cancel()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(metrics.PrometheusMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.OriginURL, cfg.SiteURL))

	SetupRoutes(router, Controllers{
		Auth:     controllers.NewAuthController(authService),
		Cart:     controllers.NewCartController(cartService, cfg.DefaultLocale),
		Checkout: controllers.NewCheckoutController(checkoutService, cfg.DefaultLocale),
		Webhook:  controllers.NewWebhookController(webhookService, checkoutService),
		Shipping: controllers.NewShippingController(shippingService, trackingService),
		Product:  controllers.NewProductController(productService, cfg.DefaultLocale),
		Order:    controllers.NewOrderController(orderService, trackingService, shippingService),
	}, Options{
		JWTSecret:     cfg.JWTSecret,
		DefaultLocale: cfg.DefaultLocale,
		StaticDir:     cfg.StaticDir,
	})

	cleanup := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.WithError(err).Warn("Failed to close client")
			}
		}
	}
	return router, cleanup
}
