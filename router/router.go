package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"barshop-server/controllers"
	"barshop-server/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	productCtrl := controllers.NewProductController(db)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/register", userCtrl.Register)
	r.POST("/login", userCtrl.Login)

	// ----------------------------------------------------------------
	//                      PUBLIC READ API
	// ----------------------------------------------------------------
	api := r.Group("/api")
	{
		api.GET("/categories/", categoryCtrl.ListCategories)
		api.GET("/categories/sidebar/", categoryCtrl.GetSidebar)

		api.GET("/alcoholcocktails/", productCtrl.ListAlcohol)
		api.GET("/alcoholcocktails/:id/", productCtrl.GetAlcoholByID)
		api.GET("/nonalcoholcocktails/", productCtrl.ListNonAlcohol)
		api.GET("/nonalcoholcocktails/:id/", productCtrl.GetNonAlcoholByID)

		api.GET("/products/latest/", productCtrl.GetLatestProducts)
	}

	// ----------------------------------------------------------------
	//                      CART (auth or anonymous session)
	// ----------------------------------------------------------------
	cart := r.Group("/api")
	cart.Use(middlewares.OptionalAuthMiddleware())
	{
		cart.GET("/cart/", cartCtrl.GetCart)
		cart.POST("/cart/items/", cartCtrl.AddItem)
		cart.PATCH("/cart/items/:item_id/", cartCtrl.UpdateItem)
		cart.DELETE("/cart/items/:item_id/", cartCtrl.RemoveItem)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile/", userCtrl.GetProfile)
		auth.POST("/orders/", orderCtrl.CreateOrder)
		auth.GET("/orders/", orderCtrl.GetMyOrders)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireAdmin())
	{
		admin.POST("/categories/", categoryCtrl.CreateCategory)
		admin.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		admin.POST("/alcoholcocktails/", productCtrl.CreateAlcohol)
		admin.PATCH("/alcoholcocktails/:id", productCtrl.UpdateAlcohol)
		admin.DELETE("/alcoholcocktails/:id", productCtrl.DeleteAlcohol)

		admin.POST("/nonalcoholcocktails/", productCtrl.CreateNonAlcohol)
		admin.PATCH("/nonalcoholcocktails/:id", productCtrl.UpdateNonAlcohol)
		admin.DELETE("/nonalcoholcocktails/:id", productCtrl.DeleteNonAlcohol)

		admin.GET("/orders/", orderCtrl.GetAllOrders)
		admin.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		admin.PATCH("/orders/:order_id", orderCtrl.UpdateOrderStatus)
	}

	return r
}
