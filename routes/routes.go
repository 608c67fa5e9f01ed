package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"grocery-shop/cart"
	"grocery-shop/config"
	"grocery-shop/controllers"
	"grocery-shop/libs"
	"grocery-shop/middleware"
	"grocery-shop/models"
	"grocery-shop/repositories"
	"grocery-shop/services"
)

func SetupRoutes(router *gin.Engine) {
	var cartStore cart.Store
	if models.RedisClient != nil {
		cartStore = cart.NewRedisStore(models.RedisClient)
	} else {
		log.Println("Redis unavailable, carts will not survive a restart")
		cartStore = cart.NewMemoryStore()
	}

	promoService := services.NewPromoService(repositories.NewPromoRepository())
	deliveryRepo := repositories.NewDeliveryRepository()
	deliveryService := services.NewDeliveryService(deliveryRepo, config.AppConfig.ExpressDeliveryFee)
	paymentsClient := libs.NewPaymentsClient(config.AppConfig.PaymentsBaseURL)
	assistantClient := libs.NewAssistantClient(config.AppConfig.AssistantBaseURL)

	var mailer services.Mailer
	if emailService, err := models.NewEmailService(); err == nil {
		mailer = emailService
	} else {
		log.Println("Email disabled:", err)
	}

	checkoutService := services.NewCheckoutService(
		cartStore,
		repositories.NewProductRepository(),
		promoService,
		deliveryService,
		paymentsClient,
		repositories.NewOrderRepository(),
		mailer,
		cart.FeeRates{
			ConveniencePct: config.AppConfig.ConvenienceFeePct,
			ServicePct:     config.AppConfig.ServiceFeePct,
		},
	)

	authCtrl := controllers.NewAuthController()
	userCtrl := controllers.NewUserController()
	productCtrl := &controllers.ProductController{}
	categoryCtrl := &controllers.CategoryController{}
	storeCtrl := &controllers.StoreController{}
	cartCtrl := controllers.NewCartController(cartStore)
	checkoutCtrl := controllers.NewCheckoutController(checkoutService)
	orderCtrl := &controllers.OrderController{}
	pickupCtrl := controllers.NewPickupController(paymentsClient)
	timeSlotCtrl := controllers.NewTimeSlotController(deliveryRepo, deliveryService)
	postcodeCtrl := controllers.NewPostcodeController(deliveryService)
	promoCtrl := controllers.NewPromoController(promoService)
	assistantCtrl := controllers.NewAssistantController(assistantClient)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)
	router.POST("/auth/send-otp", authCtrl.SendOTP)
	router.POST("/auth/verify-otp", authCtrl.VerifyOTP)

	router.GET("/categories", categoryCtrl.GetAllCategories)
	router.GET("/stores", storeCtrl.GetAllStores)
	router.GET("/stores/:id", storeCtrl.GetStoreByID)
	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)
	router.GET("/time-slots", timeSlotCtrl.GetAvailability)
	router.GET("/postcodes/check", postcodeCtrl.CheckPostcode)
	router.POST("/promos/validate", promoCtrl.ValidatePromo)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/profile", authCtrl.GetProfile)
		auth.PATCH("/profile", authCtrl.UpdateProfile)
		auth.PATCH("/profile/photo", authCtrl.UpdateProfilePhoto)
		auth.PATCH("/profile/password", authCtrl.ChangePassword)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart/items", cartCtrl.AddItem)
		auth.PATCH("/cart/items/:id", cartCtrl.SetQuantity)
		auth.DELETE("/cart/items/:id", cartCtrl.RemoveItem)
		auth.DELETE("/cart", cartCtrl.ClearCart)

		auth.POST("/checkout", checkoutCtrl.Checkout)

		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:id", orderCtrl.GetOrderByID)
		auth.PATCH("/orders/:id/cancel", orderCtrl.CancelOrder)
		auth.GET("/orders/:id/messages", orderCtrl.GetOrderMessages)
		auth.POST("/orders/:id/messages", orderCtrl.AddOrderMessage)

		auth.POST("/pickups", pickupCtrl.CreatePickup)
		auth.GET("/pickups", pickupCtrl.GetMyPickups)
		auth.PATCH("/pickups/:id/cancel", pickupCtrl.CancelPickup)

		auth.POST("/assistant/chat", assistantCtrl.Chat)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", orderCtrl.GetDashboard)

		admin.GET("/users", userCtrl.GetAllUsers)
		admin.GET("/users/:id", userCtrl.GetUserByID)
		admin.POST("/users", userCtrl.CreateUser)
		admin.PATCH("/users/:id", userCtrl.UpdateUser)
		admin.DELETE("/users/:id", userCtrl.DeleteUser)

		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:id", productCtrl.DeleteProduct)

		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PATCH("/categories/:id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:id", categoryCtrl.DeleteCategory)

		admin.POST("/stores", storeCtrl.CreateStore)
		admin.PATCH("/stores/:id", storeCtrl.UpdateStore)
		admin.DELETE("/stores/:id", storeCtrl.DeleteStore)

		admin.POST("/time-slots", timeSlotCtrl.CreateTimeSlot)
		admin.PATCH("/time-slots/:id", timeSlotCtrl.UpdateTimeSlot)
		admin.DELETE("/time-slots/:id", timeSlotCtrl.DeleteTimeSlot)

		admin.GET("/postcodes", postcodeCtrl.GetAllPostcodes)
		admin.POST("/postcodes", postcodeCtrl.CreatePostcode)
		admin.DELETE("/postcodes/:id", postcodeCtrl.DeletePostcode)

		admin.GET("/promos", promoCtrl.GetAllPromos)
		admin.POST("/promos", promoCtrl.CreatePromo)
		admin.DELETE("/promos/:id", promoCtrl.DeletePromo)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/:id", orderCtrl.GetOrderByID)
		admin.PATCH("/orders/:id/status", orderCtrl.UpdateOrderStatus)

		admin.GET("/pickups", pickupCtrl.GetAllPickups)
		admin.PATCH("/pickups/:id/status", pickupCtrl.UpdatePickupStatus)
	}

	router.Static("/uploads", "./uploads")
}
