package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"warrapay/handlers"
)

// RegisterPaymentRoutes registers the checkout, portal and session
// lookup endpoints.
func RegisterPaymentRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	r.POST("/create-checkout-session", h.CreateCheckoutSession)
	r.POST("/customer-portal", h.CustomerPortal)
	r.GET("/checkout-session/:id", h.GetCheckoutSession)
}

// RegisterStaticRoutes serves the booking site's pages.
func RegisterStaticRoutes(r *gin.Engine) {
	r.StaticFile("/", "./public/index.html")
	r.StaticFile("/check_your_details", "./public/check_your_details.html")
	r.StaticFile("/success.html", "./public/success.html")
	r.StaticFile("/canceled.html", "./public/canceled.html")
	r.StaticFile("/account", "./public/account.html")
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and global
// middleware. The booking form is embedded on the public site, so CORS
// stays wide open.
func RegisterRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterPaymentRoutes(r, h)
	RegisterStaticRoutes(r)
	RegisterHealthRoute(r)
}
