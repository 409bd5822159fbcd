package routes

import (
	"bazar_back_end/internal/handlers/admin"
	"bazar_back_end/internal/handlers/auth"
	"bazar_back_end/internal/handlers/notification"
	"bazar_back_end/internal/handlers/order"
	"bazar_back_end/internal/handlers/product"
	"bazar_back_end/internal/handlers/support"
	"bazar_back_end/internal/handlers/user"
	"bazar_back_end/internal/middleware"
	"bazar_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// --- Auth ---
	api.POST("/auth/register", auth.Register)
	api.POST("/auth/seller/register", auth.RegisterSeller)
	api.POST("/auth/login", middleware.LoginRateLimit(), auth.Login)
	api.GET("/auth/me", middleware.AuthRequired(), auth.Me)

	// --- Catalogue public ---
	api.GET("/categories", product.GetCategories)
	api.GET("/products", product.GetProducts)
	api.GET("/products/search", product.SearchProducts)
	api.GET("/products/suggestions", product.SuggestProducts)
	api.GET("/products/:id", product.GetProduct)
	api.GET("/products/:id/reviews", product.GetReviews)
	api.GET("/settings", admin.GetSettings)

	// --- Catalogue vendeur/admin ---
	catalog := api.Group("/products")
	catalog.Use(middleware.AuthRequired(), middleware.RequireRoles(models.RoleSeller, models.RoleAdmin))
	{
		catalog.POST("", product.CreateProduct)
		catalog.PUT("/:id", product.UpdateProduct)
		catalog.DELETE("/:id", product.DeleteProduct)
		catalog.POST("/:id/images", product.UploadImage)
		catalog.DELETE("/:id/images/:imageId", product.DeleteImage)
		catalog.POST("/:id/variants", product.CreateVariant)
		catalog.PUT("/:id/variants/:variantId", product.UpdateVariant)
		catalog.DELETE("/:id/variants/:variantId", product.DeleteVariant)
	}

	// --- Panier & checkout (acheteurs) ---
	buyer := api.Group("")
	buyer.Use(middleware.AuthRequired(), middleware.RequireRoles(models.RoleUser))
	{
		buyer.GET("/cart", user.GetCart)
		buyer.POST("/cart/add", user.AddToCart)
		buyer.PUT("/cart/:itemId", user.UpdateCartItem)
		buyer.DELETE("/cart/clear", user.ClearCart)
		buyer.DELETE("/cart/:itemId", user.RemoveFromCart)
		buyer.POST("/checkout", order.Checkout)
		buyer.POST("/products/:id/reviews", product.CreateReview)
		buyer.POST("/complaints", support.CreateComplaint)
	}

	// --- Commandes ---
	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired())
	{
		orders.GET("", middleware.RequireRoles(models.RoleUser), order.GetMyOrders)
		orders.GET("/:id", order.GetOrderByID)
		orders.GET("/:id/tracking", order.GetTracking)
		orders.GET("/:id/qr", order.GetTrackingQR)
		orders.PUT("/:id/status",
			middleware.RequireRoles(models.RoleSeller, models.RoleAdmin), order.UpdateOrderStatus)
	}
	api.GET("/seller/orders",
		middleware.AuthRequired(), middleware.RequireRoles(models.RoleSeller), order.GetSellerOrders)

	// --- Avis & réclamations ---
	api.POST("/reviews/:id/reply",
		middleware.AuthRequired(), middleware.RequireRoles(models.RoleSeller, models.RoleAdmin),
		product.ReplyToReview)
	complaints := api.Group("/complaints")
	complaints.Use(middleware.AuthRequired())
	{
		complaints.GET("", support.GetComplaints)
		complaints.POST("/:id/reply", support.ReplyToComplaint)
		complaints.PUT("/:id/resolve", middleware.RequireRoles(models.RoleAdmin), support.ResolveComplaint)
	}

	// --- Notifications ---
	notifications := api.Group("/notifications")
	notifications.Use(middleware.AuthRequired())
	{
		notifications.GET("", notification.GetNotifications)
		notifications.GET("/stream", notification.StreamNotifications)
		notifications.GET("/unread-count", notification.GetUnreadCount)
		notifications.PUT("/read-all", notification.MarkAllAsRead)
		notifications.PUT("/:id/read", notification.MarkAsRead)
	}

	// --- Dashboards ---
	dashboard := api.Group("/dashboard")
	dashboard.Use(middleware.AuthRequired())
	{
		dashboard.GET("/admin", middleware.RequireRoles(models.RoleAdmin), admin.GetAdminDashboard)
		dashboard.GET("/seller", middleware.RequireRoles(models.RoleSeller), admin.GetSellerDashboard)
		dashboard.GET("/user", middleware.RequireRoles(models.RoleUser), admin.GetUserDashboard)
	}

	// --- Administration ---
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthRequired(), middleware.RequireRoles(models.RoleAdmin))
	{
		adminGroup.GET("/users", admin.GetUsers)
		adminGroup.GET("/sellers", admin.GetSellers)
		adminGroup.PUT("/sellers/:id/approve", admin.ApproveSeller)
		adminGroup.POST("/categories", product.CreateCategory)
		adminGroup.PUT("/categories/:id", product.UpdateCategory)
		adminGroup.DELETE("/categories/:id", product.DeleteCategory)
		adminGroup.POST("/products/import", product.ImportProductsCSV)
		adminGroup.GET("/products/export", product.ExportProductsCSV)
		adminGroup.PUT("/settings", admin.UpdateSettings)
	}
}
