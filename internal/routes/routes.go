package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-connect/internal/access"
	"github.com/BruksfildServices01/barber-connect/internal/audit"
	"github.com/BruksfildServices01/barber-connect/internal/auth"
	"github.com/BruksfildServices01/barber-connect/internal/config"
	"github.com/BruksfildServices01/barber-connect/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-connect/internal/infra/repository"
	"github.com/BruksfildServices01/barber-connect/internal/metrics"
	"github.com/BruksfildServices01/barber-connect/internal/middleware"
	"github.com/BruksfildServices01/barber-connect/internal/models"
	"github.com/BruksfildServices01/barber-connect/internal/notify"
	"github.com/BruksfildServices01/barber-connect/internal/storage"
	"github.com/BruksfildServices01/barber-connect/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-connect/internal/usecase/appointment"
	ucAuth "github.com/BruksfildServices01/barber-connect/internal/usecase/auth"
	ucBarber "github.com/BruksfildServices01/barber-connect/internal/usecase/barber"
	ucReview "github.com/BruksfildServices01/barber-connect/internal/usecase/review"
	"github.com/BruksfildServices01/barber-connect/internal/validators"
)

// Dependencies are the long-lived collaborators built by main.
type Dependencies struct {
	DB     *gorm.DB
	Config *config.Config
	Log    logrus.FieldLogger

	Tokens      *auth.Issuer
	Revocations auth.RevocationStore
	Notifier    notify.Notifier
	Audit       audit.Recorder
	AuditLogs   *audit.Logger

	// Photos is nil when object storage is not configured.
	Photos   storage.ObjectStore
	Resolver validators.Resolver
	Clock    *timezone.Clock
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	validators.RegisterJSONTagNames()
	metrics.Register()

	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(deps.Log),
		gin.Recovery(),
		middleware.CORSMiddleware(),
	)

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(deps.DB)
	userRepo := infraRepo.NewUserGormRepository(deps.DB)
	barberRepo := infraRepo.NewBarberGormRepository(deps.DB)
	reviewRepo := infraRepo.NewReviewGormRepository(deps.DB)

	clock := deps.Clock
	if clock == nil {
		clock = timezone.NewClock(deps.Config.Timezone)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	registerUC := ucAuth.NewRegister(userRepo, deps.Tokens, deps.Audit, deps.Resolver)
	loginUC := ucAuth.NewLogin(userRepo, deps.Tokens, deps.Audit)
	logoutUC := ucAuth.NewLogout(deps.Revocations, deps.Audit)
	profileUC := ucAuth.NewProfile(userRepo)

	discoverUC := ucBarber.NewDiscoverBarbers(barberRepo)
	getBarberUC := ucBarber.NewGetBarber(barberRepo)
	updateBarberUC := ucBarber.NewUpdateBarber(barberRepo, deps.Audit)
	uploadPhotoUC := ucBarber.NewUploadPhoto(barberRepo, deps.Photos, deps.Audit)
	statsUC := ucBarber.NewGetStats(appointmentRepo, clock)

	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, deps.Notifier, deps.Audit)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	getAppointmentUC := ucAppointment.NewGetAppointment(appointmentRepo)
	applyActionUC := ucAppointment.NewApplyAction(appointmentRepo, deps.Notifier, deps.Audit)

	submitReviewUC := ucReview.NewSubmitReview(reviewRepo, deps.Audit)
	listReviewsUC := ucReview.NewListReviews(reviewRepo)
	manageReviewUC := ucReview.NewManageReview(reviewRepo, deps.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, logoutUC, profileUC)
	barberHandler := handlers.NewBarberHandler(discoverUC, getBarberUC, updateBarberUC, uploadPhotoUC, statsUC)
	appointmentHandler := handlers.NewAppointmentHandler(createAppointmentUC, listAppointmentsUC, getAppointmentUC, applyActionUC)
	reviewHandler := handlers.NewReviewHandler(submitReviewUC, listReviewsUC, manageReviewUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditLogs)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := deps.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(deps.Tokens, deps.Revocations))

	allowAny := middleware.Gate(access.AllowAny{})
	authenticated := middleware.Gate(access.RequireAuthenticated{})
	limited := middleware.RateLimit(deps.Config.RateLimit)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", limited, allowAny, authHandler.Register)
		authGroup.POST("/login", limited, allowAny, authHandler.Login)
		authGroup.POST("/logout", authenticated, authHandler.Logout)
		authGroup.GET("/profile", authenticated, authHandler.Profile)
	}

	// owner checks for writes run in the use cases once the profile is loaded
	barbers := api.Group("/barbers")
	{
		barbers.GET("", allowAny, barberHandler.List)
		barbers.GET("/stats", middleware.RequireRole(models.RoleBarber), barberHandler.Stats)
		barbers.GET("/:id", allowAny, barberHandler.Get)
		barbers.PATCH("/:id", authenticated, barberHandler.Update)
		barbers.PUT("/:id/photo", authenticated, barberHandler.UploadPhoto)
	}

	appointments := api.Group("/appointments", authenticated)
	{
		appointments.POST("", appointmentHandler.Create)
		appointments.GET("", appointmentHandler.List)
		appointments.GET("/customer", appointmentHandler.ListForCustomer)
		appointments.GET("/barber", appointmentHandler.ListForBarber)
		appointments.GET("/:id", appointmentHandler.Get)
		appointments.PATCH("/:id", appointmentHandler.Action)
		appointments.PATCH("/:id/accept", appointmentHandler.Accept)
		appointments.PATCH("/:id/reject", appointmentHandler.Reject)
	}

	reviews := api.Group("/reviews")
	{
		reviews.POST("", middleware.RequireRole(models.RoleCustomer), reviewHandler.Create)
		reviews.GET("", allowAny, reviewHandler.List)
		reviews.GET("/barber_reviews", allowAny, reviewHandler.BarberReviews)
		reviews.GET("/:id", allowAny, reviewHandler.Get)
		reviews.PATCH("/:id", authenticated, reviewHandler.Update)
		reviews.DELETE("/:id", authenticated, reviewHandler.Delete)
	}

	api.GET("/me/audit-logs", authenticated, auditLogsHandler.List)
}
