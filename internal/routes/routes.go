package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/site-backend/internal/auth"
	"github.com/BruksfildServices01/site-backend/internal/config"
	"github.com/BruksfildServices01/site-backend/internal/handlers"
	"github.com/BruksfildServices01/site-backend/internal/middleware"
)

type Handlers struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Contact     *handlers.ContactHandler
	Appointment *handlers.AppointmentHandler
	Testimonial *handlers.TestimonialHandler
	AuditLogs   *handlers.AuditLogsHandler
	Email       *handlers.EmailHandler
}

type Options struct {
	Gate middleware.Authenticator
	// RateLimit guards the anonymous submission endpoints; nil disables it.
	RateLimit      gin.HandlerFunc
	MaxUploadBytes int64
	// UploadsDir is served at config.UploadsPath when set.
	UploadsDir string
}

func RegisterRoutes(r *gin.Engine, h Handlers, opt Options) {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	limit := opt.RateLimit
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}
	upload := middleware.BodyLimit(opt.MaxUploadBytes)

	requireAuth := middleware.RequireAuth(opt.Gate)
	optionalAuth := middleware.OptionalAuth(opt.Gate)
	adminOnly := []gin.HandlerFunc{requireAuth, middleware.RequireRole(auth.AdminOnly)}

	if opt.UploadsDir != "" {
		r.Static(config.UploadsPath, opt.UploadsDir)
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health.Check)

		// ------------------------------
		// AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		{
			authAPI.POST("/register", limit, h.Auth.Register)
			authAPI.POST("/login", limit, h.Auth.Login)
			authAPI.GET("/me", requireAuth, h.Auth.Me)
		}

		users := api.Group("/users", requireAuth)
		{
			users.GET("/profile", h.User.Profile)
			users.PUT("/profile", h.User.UpdateProfile)
			users.POST("/avatar", upload, h.User.UploadAvatar)
			users.DELETE("/avatar", h.User.DeleteAvatar)
		}

		// ------------------------------
		// CONTACTS
		// ------------------------------
		contacts := api.Group("/contacts")
		{
			contacts.POST("", limit, h.Contact.Create)

			admin := contacts.Group("", adminOnly...)
			admin.GET("", h.Contact.List)
			admin.GET("/:id", h.Contact.Get)
			admin.PUT("/:id", h.Contact.UpdateStatus)
			admin.DELETE("/:id", h.Contact.Delete)
		}

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		appointments := api.Group("/appointments")
		{
			appointments.POST("", limit, optionalAuth, h.Appointment.Create)
			appointments.GET("/mine", requireAuth, h.Appointment.ListMine)
			appointments.GET("/:id", h.Appointment.Get)

			admin := appointments.Group("", adminOnly...)
			admin.GET("", h.Appointment.List)
			admin.PUT("/:id", h.Appointment.UpdateStatus)
			admin.DELETE("/:id", h.Appointment.Delete)
		}

		// ------------------------------
		// TESTIMONIALS
		// ------------------------------
		testimonials := api.Group("/testimonials")
		{
			testimonials.POST("", limit, upload, optionalAuth, h.Testimonial.Create)
			testimonials.GET("", optionalAuth, h.Testimonial.List)
			testimonials.GET("/:id", optionalAuth, h.Testimonial.Get)
			testimonials.DELETE("/:id", requireAuth, h.Testimonial.Delete)

			admin := testimonials.Group("", adminOnly...)
			admin.PUT("/:id", h.Testimonial.UpdateStatus)
			admin.PUT("/:id/approve", h.Testimonial.Approve)
			admin.PUT("/:id/publish", h.Testimonial.Publish)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin", adminOnly...)
		{
			admin.GET("/contacts", h.Contact.List)
			admin.PUT("/contacts/:id", h.Contact.UpdateStatus)
			admin.GET("/appointments", h.Appointment.List)
			admin.PUT("/appointments/:id", h.Appointment.UpdateStatus)
			admin.GET("/testimonials", h.Testimonial.List)
			admin.GET("/audit-logs", h.AuditLogs.List)
			admin.POST("/send-email", h.Email.Send)
		}
	}
}
