package router

import (
	"net/http"

	"github.com/leoroquedesan-droid/leo/internal/billing"
	"github.com/leoroquedesan-droid/leo/internal/config"
	"github.com/leoroquedesan-droid/leo/internal/handler"
	"github.com/leoroquedesan-droid/leo/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the API. The front end lives elsewhere; this service
// only speaks JSON (plus the report downloads).
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine := billing.NewEngine(db)

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours)
	api.POST("/auth/login", authHandler.Login)

	// everything else requires a logged-in operator
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtSecret, db))

	memberHandler := handler.NewMemberHandler(db)
	protected.POST("/members", memberHandler.Create)
	protected.GET("/members", memberHandler.List)
	protected.GET("/members/:id", memberHandler.Get)
	protected.PUT("/members/:id", memberHandler.Update)
	protected.DELETE("/members/:id", memberHandler.Delete)

	bookingHandler := handler.NewBookingHandler(db)
	protected.POST("/bookings", bookingHandler.Create)
	protected.GET("/bookings", bookingHandler.List)
	protected.PUT("/bookings/:id", bookingHandler.Update)
	protected.DELETE("/bookings/:id", bookingHandler.Delete)

	paymentHandler := handler.NewPaymentHandler(db, engine)
	protected.POST("/payments", paymentHandler.Register)
	protected.GET("/payments", paymentHandler.List)

	reportHandler := handler.NewReportHandler(db, engine)
	protected.GET("/reports/dashboard", reportHandler.Dashboard)
	protected.GET("/reports/dues", reportHandler.Dues)

	exportHandler := handler.NewExportHandler(engine)
	protected.GET("/reports/dues/export/csv", exportHandler.DuesCSV)
	protected.GET("/reports/dues/export/xlsx", exportHandler.DuesXLSX)

	ticketHandler := handler.NewTicketHandler(db)
	protected.POST("/tickets", ticketHandler.Create)
	protected.GET("/tickets", ticketHandler.List)
	protected.PUT("/tickets/:id/status", ticketHandler.UpdateStatus)

	return r
}
