package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/auth"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/handlers"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/http/middleware"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/metrics"
)

type Deps struct {
	Logger  *slog.Logger
	Tokens  *auth.Tokens
	Redis   *redis.Client
	Metrics *metrics.Collector

	Auth          *handlers.AuthHandler
	Customers     *handlers.CustomersHandler
	Admins        *handlers.AdminsHandler
	Levels        *handlers.LevelsHandler
	Coupons       *handlers.CouponsHandler
	Adventures    *handlers.AdventuresHandler
	Consultations *handlers.ConsultationsHandler
	Bookings      *handlers.BookingsHandler
	Checkout      *handlers.CheckoutHandler
	Webhooks      *handlers.WebhookHandler
}

// NewRouter wires middleware and routes. Admin routes live under /api and
// require the admin role; customer routes need any signed-in user.
func NewRouter(d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Locale())
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.ErrorHandler(d.Logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.GinMiddleware())
		r.GET("/metrics", d.Metrics.Handler())
	}

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// webhook endpoint sits outside /api: no cookies, signature auth only
	r.POST("/webhooks/payments", d.Webhooks.Handle)

	api := r.Group("/api")

	pub := api.Group("/auth")
	pub.Use(middleware.RateLimit(d.Redis, 20, time.Minute))
	{
		pub.POST("/login", d.Auth.CustomerLogin)
		pub.POST("/admin/login", d.Auth.AdminLogin)
		pub.POST("/logout", d.Auth.Logout)
	}

	signedIn := api.Group("")
	signedIn.Use(middleware.RequireAuth(d.Tokens))
	{
		signedIn.GET("/auth/me", d.Auth.Me)

		signedIn.POST("/book/adventure/preview", d.Checkout.PreviewAdventure)
		signedIn.POST("/book/adventure", d.Checkout.BookAdventure)
		signedIn.POST("/book/consultation/preview", d.Checkout.PreviewConsultation)
		signedIn.POST("/book/consultation", d.Checkout.BookConsultation)

		signedIn.GET("/my/bookings", d.Bookings.MyBookings)
	}

	admin := api.Group("")
	admin.Use(middleware.RequireAuth(d.Tokens), middleware.RequireAdmin())
	{
		admin.GET("/customers", d.Customers.List)
		admin.GET("/customers/export", d.Customers.Export)
		admin.GET("/customers/:id", d.Customers.Detail)
		admin.POST("/customers/:id/suspend", d.Customers.Suspend)
		admin.POST("/customers/:id/unsuspend", d.Customers.Unsuspend)
		admin.POST("/customers/:id/points", d.Customers.AdjustPoints)
		admin.GET("/customers/:id/coupons", d.Customers.CustomerCoupons)

		admin.GET("/admins", d.Admins.List)
		admin.POST("/admins/invite", d.Admins.Invite)
		admin.POST("/admins/:id/revoke", d.Admins.Revoke)

		admin.GET("/levels", d.Levels.List)
		admin.POST("/levels", d.Levels.Create)
		admin.GET("/levels/:id", d.Levels.Detail)
		admin.PUT("/levels/:id", d.Levels.Update)
		admin.DELETE("/levels/:id", d.Levels.Delete)

		admin.GET("/coupons", d.Coupons.List)
		admin.POST("/coupons", d.Coupons.Issue)
		admin.GET("/coupons/export", d.Coupons.Export)
		admin.GET("/coupons/:id", d.Coupons.Detail)
		admin.POST("/coupons/:id/revoke", d.Coupons.Revoke)

		admin.GET("/adventures", d.Adventures.List)
		admin.POST("/adventures", d.Adventures.Create)
		admin.GET("/adventures/:id", d.Adventures.Detail)
		admin.PUT("/adventures/:id", d.Adventures.Update)
		admin.DELETE("/adventures/:id", d.Adventures.Delete)
		admin.POST("/adventures/:id/images", d.Adventures.UploadImage)
		admin.DELETE("/adventures/:id/images/:imageID", d.Adventures.DeleteImage)
		admin.POST("/adventures/:id/add-ons", d.Adventures.CreateAddOn)
		admin.PUT("/adventures/:id/add-ons/:addOnID", d.Adventures.UpdateAddOn)
		admin.DELETE("/adventures/:id/add-ons/:addOnID", d.Adventures.DeleteAddOn)

		admin.GET("/consultations", d.Consultations.List)
		admin.POST("/consultations", d.Consultations.Create)
		admin.GET("/consultations/:id", d.Consultations.Detail)
		admin.PUT("/consultations/:id", d.Consultations.Update)
		admin.DELETE("/consultations/:id", d.Consultations.Delete)

		admin.GET("/bookings", d.Bookings.List)
		admin.GET("/bookings/export", d.Bookings.Export)
		admin.GET("/bookings/:id", d.Bookings.Detail)
		admin.POST("/bookings/:id/action", d.Bookings.Action)

		admin.GET("/invoices", d.Bookings.ListInvoices)
		admin.GET("/invoices/export", d.Bookings.ExportInvoices)
	}

	return r
}
