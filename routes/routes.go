package routes

import (
	"net/http"

	"fashion-store/controllers"
	"fashion-store/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Controllers struct {
	Auth     *controllers.AuthController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Webhook  *controllers.WebhookController
	Shipping *controllers.ShippingController
	Product  *controllers.ProductController
	Order    *controllers.OrderController
}

type Options struct {
	JWTSecret     string
	DefaultLocale string
	StaticDir     string
}

func SetupRoutes(router *gin.Engine, ctrl Controllers, opts Options) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/auth/login", ctrl.Auth.Login)

		api.GET("/products", ctrl.Product.GetAllProducts)
		api.GET("/products/:id", ctrl.Product.GetProductByID)

		api.GET("/cart", ctrl.Cart.GetCart)
		api.DELETE("/cart", ctrl.Cart.ClearCart)
		api.POST("/cart/items", ctrl.Cart.AddItem)
		api.PATCH("/cart/items", ctrl.Cart.UpdateItem)
		api.DELETE("/cart/items", ctrl.Cart.RemoveItem)

		api.POST("/checkout_sessions", ctrl.Checkout.CreateSession)
		api.GET("/checkout_sessions", ctrl.Checkout.GetSession)
		api.POST("/create-payment-intent", ctrl.Checkout.CreatePaymentIntent)

		api.POST("/checkout/success", ctrl.Webhook.HandleWebhook)
		api.GET("/checkout/success", ctrl.Webhook.GetSessionStatus)

		api.GET("/shipping/providers", ctrl.Shipping.ListProviders)
		api.POST("/shipping/providers", ctrl.Shipping.Quote)
		api.GET("/shipping/track", ctrl.Shipping.Track)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(opts.JWTSecret), middleware.AdminMiddleware())
	{
		admin.POST("/products", ctrl.Product.CreateProduct)
		admin.POST("/products/:id/image", ctrl.Product.UploadImage)

		admin.GET("/orders", ctrl.Order.GetAllOrders)
		admin.PATCH("/orders/:id/tracking", ctrl.Order.AssignTracking)

		admin.POST("/shipping/providers", ctrl.Order.CreateProvider)
		admin.POST("/shipping/events", ctrl.Order.AddShippingEvent)
	}

	if opts.StaticDir != "" {
		router.NoRoute(middleware.LocaleRouter(opts.DefaultLocale), StaticPages(opts.StaticDir))
	}
}
