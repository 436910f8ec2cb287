package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/petarpopovic013-oss/barbershop/internal/cache"
	"github.com/petarpopovic013-oss/barbershop/internal/config"
	"github.com/petarpopovic013-oss/barbershop/internal/domain/schedule"
	"github.com/petarpopovic013-oss/barbershop/internal/gallery"
	"github.com/petarpopovic013-oss/barbershop/internal/handlers"
	infraRepo "github.com/petarpopovic013-oss/barbershop/internal/infra/repository"
	"github.com/petarpopovic013-oss/barbershop/internal/middleware"
	"github.com/petarpopovic013-oss/barbershop/internal/notify"
	"github.com/petarpopovic013-oss/barbershop/internal/session"
	"github.com/petarpopovic013-oss/barbershop/internal/timezone"
	ucAvailability "github.com/petarpopovic013-oss/barbershop/internal/usecase/availability"
	ucReservation "github.com/petarpopovic013-oss/barbershop/internal/usecase/reservation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	repo := infraRepo.NewScheduleGormRepository(db)

	policy := schedule.Policy{
		SlotDuration: time.Duration(cfg.SlotMinutes) * time.Minute,
		LeadTime:     time.Duration(cfg.LeadTimeMinutes) * time.Minute,
		DayStart:     cfg.DayStart,
		DayEnd:       cfg.DayEnd,
		Location:     timezone.Location(cfg.ShopTimezone),
	}

	notifier := notify.NewDispatcher(cfg.WebhookURL, log)

	cch := cache.New(
		cfg.RedisAddr,
		cfg.RedisPassword,
		cfg.RedisDB,
		time.Duration(cfg.CacheTTLSeconds)*time.Second,
		log,
	)

	gate := session.New(cfg.AdminPassword)

	var storage handlers.GalleryStore
	if cfg.GalleryEnabled() {
		storage = gallery.NewStorage(gallery.StorageOptions{
			Endpoint:      cfg.S3Endpoint,
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicURL,
		})
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createReservationUC := ucReservation.NewCreateReservation(repo, policy, notifier, log)

	overviewUC := ucAvailability.NewRangeOverview(repo, policy)
	markUnavailableUC := ucAvailability.NewMarkUnavailable(repo)
	markAvailableUC := ucAvailability.NewMarkAvailable(repo)

	// ======================================================
	// HANDLERS
	// ======================================================
	servicesHandler := handlers.NewServicesHandler(repo, cch)
	reservationsHandler := handlers.NewReservationsHandler(repo, policy, createReservationUC)
	bookingAvailabilityHandler := handlers.NewBookingAvailabilityHandler(overviewUC)
	adminAuthHandler := handlers.NewAdminAuthHandler(gate, cfg.CookieSecure)
	adminAvailabilityHandler := handlers.NewAdminAvailabilityHandler(
		repo,
		markUnavailableUC,
		markAvailableUC,
	)
	galleryHandler := handlers.NewGalleryHandler(storage, cch)
	webHandler := handlers.NewWebHandler()

	// ======================================================
	// PUBLIC API
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/services", servicesHandler.List)
		api.GET("/reservations", reservationsHandler.List)
		api.POST("/reservations", reservationsHandler.Create)
		api.GET("/booking-availability", bookingAvailabilityHandler.Get)
		api.GET("/gallery", galleryHandler.List)

		// Auth endpoints stay outside the gate: login and the status
		// probe must work without a cookie.
		api.GET("/admin/auth", adminAuthHandler.Status)
		api.POST("/admin/auth", adminAuthHandler.Login)
		api.DELETE("/admin/auth", adminAuthHandler.Logout)
	}

	// ======================================================
	// ADMIN API (COOKIE GATED)
	// ======================================================
	adminAPI := api.Group("/admin")
	adminAPI.Use(middleware.AdminAPIAuth(gate))
	{
		adminAPI.GET("/availability", adminAvailabilityHandler.List)
		adminAPI.POST("/availability", adminAvailabilityHandler.MarkUnavailable)
		adminAPI.DELETE("/availability", adminAvailabilityHandler.MarkAvailable)
		adminAPI.POST("/gallery", galleryHandler.Upload)
	}

	// ======================================================
	// ADMIN PAGES
	// ======================================================
	r.GET("/admin/login", middleware.RedirectIfAuthed(gate), webHandler.LoginPage)
	r.GET("/admin", middleware.AdminPageAuth(gate), webHandler.Dashboard)
	r.GET("/admin/availability", middleware.AdminPageAuth(gate), webHandler.Availability)
}
