package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JKLegendary/enterprise/controllers"
	"github.com/JKLegendary/enterprise/middlewares"
	"github.com/JKLegendary/enterprise/services"
)

func SetupRouter(db *gorm.DB, monitor *services.ViewMonitor) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	orderService := services.NewOrderService(db, monitor)

	userCtrl := controllers.NewUserController(db)
	itemCtrl := controllers.NewItemController(db, monitor)
	orderCtrl := controllers.NewOrderController(db, orderService)
	stationCtrl := controllers.NewStationController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Login/register behind a strict limiter
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// -- STATIONS (no auth inside the stall) --

	// Catalog, read-only
	r.GET("/items", itemCtrl.GetAllItems)

	// Cashier
	r.POST("/orders", orderCtrl.PlaceOrder)
	r.GET("/orders", orderCtrl.GetOrderHistory)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)

	// Cook
	r.GET("/kitchen/display", orderCtrl.GetCookingOrders)
	r.POST("/orders/:order_id/ready", orderCtrl.MarkReady)

	// Completion + announcement board
	r.GET("/completion/display", orderCtrl.GetReadyOrders)
	r.POST("/orders/:order_id/pickup", orderCtrl.MarkPickedUp)

	// Live station feeds
	ws := r.Group("/ws")
	{
		ws.GET("/:role", stationCtrl.StationSocket)
	}

	// -- ADMIN (catalog editing) --
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware())
	{
		admin.GET("/profile", userCtrl.GetProfile)
		admin.POST("/items", itemCtrl.CreateItem)
		admin.DELETE("/items/:item_id", itemCtrl.DeleteItem)
	}

	return r
}
