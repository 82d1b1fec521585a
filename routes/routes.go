package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tourly/handlers"
	"tourly/middleware"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5500", "http://127.0.0.1:5500"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	credentialLimiter := middleware.NewIPRateLimiter(20, time.Minute)

	// Public routes
	auth := router.Group("/auth")
	{
		auth.POST("/signup", middleware.RateLimitMiddleware(credentialLimiter), handlers.Signup)
		auth.POST("/login", middleware.RateLimitMiddleware(credentialLimiter), handlers.Login)
		auth.POST("/forgot-password", handlers.ForgotPassword)
		auth.POST("/reset-password", handlers.ResetPassword)
	}

	router.GET("/posts", handlers.GetPosts)
	router.GET("/products", handlers.GetProducts)
	router.GET("/vapid-public-key", handlers.GetVapidPublicKey)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.JWTAuthMiddleware())

	// Users
	protected.GET("/auth", handlers.GetAllUsers)
	protected.GET("/auth/count", handlers.GetUserCount)
	protected.GET("/auth/profile", handlers.GetProfile)
	protected.GET("/auth/users/:id", handlers.GetUser)
	protected.PUT("/auth/users/:id", handlers.UpdateUser)
	protected.DELETE("/auth/users/:id", handlers.DeleteUser)

	// Posts and engagement
	protected.POST("/posts", handlers.CreatePost)
	protected.GET("/posts/:postId", handlers.GetPostByID)
	protected.PUT("/posts/:postId", handlers.EditPost)
	protected.DELETE("/posts/:postId", handlers.DeletePost)
	protected.POST("/posts/:postId/comment", handlers.PostComment)
	protected.PUT("/posts/:postId/comments/:commentId", handlers.EditComment)
	protected.DELETE("/posts/:postId/comments/:commentId", handlers.DeleteComment)
	protected.POST("/posts/:postId/comments/:commentId/replies", handlers.ReplyToComment)
	protected.PUT("/posts/:postId/like", handlers.LikeThePost)
	protected.PUT("/posts/:postId/comments/:commentId/like", handlers.LikeThePost)
	protected.PUT("/posts/:postId/comments/:commentId/replies/:replyId/like", handlers.LikeThePost)

	// Bookings
	protected.POST("/booking/:id", handlers.CreateBooking)
	protected.GET("/booking", handlers.GetBookings)
	protected.GET("/booking/:id", handlers.GetBookingByID)
	protected.PUT("/booking/:id", handlers.UpdateBooking)
	protected.DELETE("/booking/:id", handlers.DeleteBooking)
	protected.PATCH("/booking/:id/cancel", handlers.CancelBooking)
	protected.PATCH("/booking/:id/approve", handlers.ApproveBooking)

	// Products
	protected.POST("/products", handlers.CreateProduct)
	protected.PUT("/products/:id", handlers.UpdateProduct)
	protected.DELETE("/products/:id", handlers.DeleteProduct)
	protected.POST("/products/book", handlers.BookProduct)
	protected.POST("/products/cancel", handlers.CancelProductBooking)
	protected.GET("/products/:id/bookings", handlers.GetBookingsByProductID)
	protected.GET("/product-bookings", handlers.GetAllProductBookings)

	// Push subscriptions
	protected.POST("/subscribe", handlers.SubscribePush)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error": "Endpoint not found",
			"path":  c.Request.URL.Path,
		})
	})

	return router
}
