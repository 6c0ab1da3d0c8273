package router

import (
	"alarmclock/internal/interfaces/api/handler"
	"alarmclock/internal/pkg/logger"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds the dependencies for the router.
type Config struct {
	AlarmHandler *handler.AlarmHandler
	// LineHandler is nil when LINE is not configured.
	LineHandler *handler.LineHandler
	Logger      logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Line-Signature"},
		MaxAge:       300,
	}))

	// Routes
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "alarmclock")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	alarms := e.Group("/alarms")
	alarms.GET("", cfg.AlarmHandler.ListAlarms)
	alarms.GET("/events", cfg.AlarmHandler.StreamAlarms)
	alarms.GET("/precise/permission", cfg.AlarmHandler.PrecisePermission)
	alarms.PUT("/:kind", cfg.AlarmHandler.ScheduleAlarm)
	alarms.DELETE("/:kind", cfg.AlarmHandler.ClearAlarm)

	e.GET("/ringtone", cfg.AlarmHandler.Ringtone)
	e.POST("/ringtone/stop", cfg.AlarmHandler.StopRingtone)

	e.POST("/system/boot", cfg.AlarmHandler.Boot)
	e.POST("/system/fire/:code", cfg.AlarmHandler.Fire)

	// LINE Webhook Endpoint
	if cfg.LineHandler != nil {
		e.POST("/callback", cfg.LineHandler.HandleWebhook)
	}

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
