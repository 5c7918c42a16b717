package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freedesk/config"
	"freedesk/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
	limiter  RateLimiter
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config, limiter RateLimiter) *Handler {
	if limiter == nil {
		limiter = NewMemoryRateLimiter(config.RateLimit.Bookings, config.RateLimit.Window)
	}
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
		limiter:  limiter,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	router.GET("/healthz", h.healthz)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		authorized := api.Group("/", h.authMiddleware())
		{
			authorized.GET("/me", h.getCurrentIdentity)
			authorized.GET("/slots", h.getSlots)
			authorized.GET("/invoices/unpaid", h.getUnpaidInvoices)

			h.initAvailabilityRoutes(authorized)
			h.initAppointmentRoutes(authorized)

			freelancer := authorized.Group("/", h.freelancerMiddleware())
			{
				freelancer.GET("/agenda/export", h.exportAgenda)
			}

			h.initTimerRoutes(authorized)
		}
	}
}

func (h *Handler) initAvailabilityRoutes(api *gin.RouterGroup) {
	rules := api.Group("/availability/rules", h.freelancerMiddleware())
	{
		rules.GET("", h.getAvailabilityRules)
		rules.POST("", h.createAvailabilityRule)
		rules.GET("/:id", h.getAvailabilityRuleByID)
		rules.PATCH("/:id", h.toggleAvailabilityRule)
		rules.DELETE("/:id", h.deleteAvailabilityRule)
	}
}

func (h *Handler) initAppointmentRoutes(api *gin.RouterGroup) {
	appointments := api.Group("/appointments")
	{
		appointments.POST("", h.rateLimitMiddleware(), h.requestAppointment)
		appointments.GET("", h.getAppointments)
		appointments.GET("/:id", h.getAppointmentByID)
		appointments.POST("/:id/cancel", h.cancelAppointment)
		appointments.POST("/:id/reschedule", h.rescheduleAppointment)

		freelancer := appointments.Group("", h.freelancerMiddleware())
		{
			freelancer.POST("/book", h.bookAppointment)
			freelancer.POST("/:id/confirm", h.confirmAppointment)
		}
	}
}

func (h *Handler) initTimerRoutes(api *gin.RouterGroup) {
	timers := api.Group("/timers", h.freelancerMiddleware())
	{
		timers.GET("", h.getTimers)
		timers.GET("/entries", h.getTimeEntries)
		timers.POST("/:category/start", h.startTimer)
		timers.POST("/:category/pause", h.pauseTimer)
		timers.POST("/:category/stop", h.stopTimer)
	}
}

// @Summary Проверка состояния
// @Tags Служебное
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.config.Version})
}
