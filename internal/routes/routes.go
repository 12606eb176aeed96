package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/curequeue/curequeue-server/internal/audit"
	"github.com/curequeue/curequeue-server/internal/cache"
	"github.com/curequeue/curequeue-server/internal/config"
	domain "github.com/curequeue/curequeue-server/internal/domain/appointment"
	"github.com/curequeue/curequeue-server/internal/handlers"
	infraRepo "github.com/curequeue/curequeue-server/internal/infra/repository"
	"github.com/curequeue/curequeue-server/internal/middleware"
	"github.com/curequeue/curequeue-server/internal/models"
	"github.com/curequeue/curequeue-server/internal/notify"
	"github.com/curequeue/curequeue-server/internal/timezone"
	ucAppointment "github.com/curequeue/curequeue-server/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	clock := timezone.System()
	policy := domain.RolePolicy{}

	notifier := notify.NewDispatcher(notify.NewMailer(cfg))

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	queueCache := cache.NewQueueCache(rdb)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		notifier,
		clock,
		auditDispatcher,
	)

	cancelUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		notifier,
		policy,
		auditDispatcher,
	)

	completeUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		policy,
		auditDispatcher,
	)

	setWaitingTimeUC := ucAppointment.NewSetWaitingTime(
		appointmentRepo,
		notifier,
		policy,
		auditDispatcher,
	)

	listUC := ucAppointment.NewListAppointments(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		cancelUC,
		completeUC,
		setWaitingTimeUC,
		listUC,
	)
	queueHandler := handlers.NewQueueHandler(db, queueCache, clock)
	homeVisitHandler := handlers.NewHomeVisitHandler(db)
	facilityHandler := handlers.NewFacilityHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/facilities", facilityHandler.List)
		api.GET("/facilities/:id", facilityHandler.Get)
		api.GET("/doctors", facilityHandler.ListDoctors)
		api.GET("/queue/:facilityId", queueHandler.Get)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/auth/me", meHandler.GetMe)
			secured.PUT("/auth/profile", authHandler.UpdateProfile)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/me", appointmentHandler.ListMine)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			secured.GET("/appointments/doctor/me",
				middleware.RequireRole(models.RoleDoctor, models.RoleAdmin),
				appointmentHandler.ListForDoctor,
			)

			secured.GET("/appointments/admin",
				middleware.RequireRole(models.RoleAdmin),
				appointmentHandler.ListAll,
			)

			secured.POST("/appointments/:id/waiting-time",
				middleware.RequireRole(models.RoleAdmin),
				appointmentHandler.SetWaitingTime,
			)

			// ------------------------------
			// QUEUE BOARD
			// ------------------------------
			secured.POST("/queue/:facilityId",
				middleware.RequireRole(models.RoleAdmin, models.RoleDoctor),
				queueHandler.Update,
			)
			secured.GET("/queue/patient/status", queueHandler.Status)

			// ------------------------------
			// HOME VISITS
			// ------------------------------
			secured.POST("/home-visits", homeVisitHandler.Create)
			secured.GET("/home-visits",
				middleware.RequireRole(models.RoleAdmin),
				homeVisitHandler.List,
			)
			secured.POST("/home-visits/:id/status",
				middleware.RequireRole(models.RoleAdmin),
				homeVisitHandler.UpdateStatus,
			)

			// ------------------------------
			// AUDIT LOGS
			// ------------------------------
			secured.GET("/audit-logs",
				middleware.RequireRole(models.RoleAdmin),
				auditLogsHandler.List,
			)
		}
	}
}
