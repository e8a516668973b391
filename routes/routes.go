package routes

import (
	"net/http"
	"time"

	"medibook/handlers"
	"medibook/middleware"
	"medibook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.RegisterHandler)
		api.POST("/login", hb.User.SignInHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/me", hb.User.ProfileHandler)
		api.PUT("/fcm-token", hb.User.UpdateFCMTokenHandler)
	}
}

// RegisterPaymentRoutes registers the payment verification endpoint. The
// endpoint is action-based: one route creates and checks transactions.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/verify", hb.Payment.VerifyPaymentHandler)
	}
}

// RegisterBookingRoutes registers appointment endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("", hb.Booking.ListBookingsHandler)
		api.POST("", hb.Booking.CreateBookingHandler)
		api.PUT("/:id/cancel", hb.Booking.CancelBookingHandler)
	}
}

// RegisterDirectoryRoutes registers hospital, doctor and slot lookups.
func RegisterDirectoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/hospitals", hb.Directory.ListHospitalsHandler)
		api.GET("/hospitals/:id/doctors", hb.Directory.ListDoctorsHandler)
		api.GET("/doctors/:id/slots", hb.Directory.ListSlotsHandler)
	}
}

// RegisterLogoRoutes registers the logo generation endpoint.
func RegisterLogoRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/logo")
	{
		api.POST("", hb.Logo.GenerateLogoHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterUserRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterDirectoryRoutes(r, hb)
	RegisterLogoRoutes(r, hb)
	RegisterHealthRoute(r)
}
