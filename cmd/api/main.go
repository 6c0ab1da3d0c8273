package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Application Layer
	"alarmclock/internal/application/dto"
	appService "alarmclock/internal/application/service"

	// Domain Layer
	"alarmclock/internal/domain/repository"

	// Infrastructure Layer
	"alarmclock/internal/infrastructure/database/memory"
	"alarmclock/internal/infrastructure/database/sqlite"
	lineClient "alarmclock/internal/infrastructure/line"
	"alarmclock/internal/infrastructure/notify"
	"alarmclock/internal/infrastructure/ringtone"
	"alarmclock/internal/infrastructure/scheduler"

	// Interfaces Layer
	"alarmclock/internal/interfaces/api/handler"
	"alarmclock/internal/interfaces/api/router"

	// Packages
	"alarmclock/internal/observability/metrics"
	"alarmclock/internal/pkg/config"
	appLogger "alarmclock/internal/pkg/logger"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
	"gorm.io/gorm"
)

func gracefulShutdown(apiServer *http.Server, dispatcher appService.AlarmDispatcher, timer *scheduler.Timer, db *gorm.DB, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")

	// HTTP goes first.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	if dispatcher.StopRingtone() {
		log.Println("Ringtone stopped.")
	}

	log.Println("Stopping timer...")
	timer.Stop()

	if db != nil {
		log.Println("Closing database connection...")
		if err := sqlite.Close(db); err != nil {
			log.Printf("Error closing database: %v", err)
		} else {
			log.Println("Database connection closed.")
		}
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// --- Initialization ---
	cfg, warns, err := config.Load()
	if err != nil {
		log.Fatalf("🔴 ERROR: invalid configuration: %v", err)
	}
	level := appLogger.ParseLevel(cfg.LogLevel)
	appLog := appLogger.New(level)
	appLog.Info("Logger initialized.")
	for _, w := range warns {
		appLog.Warn(w)
	}

	metrics.Init()

	// --- Infrastructure ---
	var (
		alarmRepo repository.AlarmRepository
		db        *gorm.DB
	)
	switch cfg.Store {
	case config.StoreMemory:
		alarmRepo = memory.NewAlarmRepository()
		appLog.Warn("Using the in-memory alarm store; alarms will not survive a restart.")
	default:
		db, err = sqlite.Open(cfg.DBURL, level)
		if err != nil {
			appLog.Error("Failed to open the alarm database", err)
			os.Exit(1)
		}
		alarmRepo = sqlite.NewAlarmRepository(db)
		appLog.Info(fmt.Sprintf("SQLite alarm store opened at %s.", cfg.DBURL))
	}

	timer := scheduler.NewTimer(cfg.ExactAlarmsAllowed, appLog.With("timer"))

	var notifier appService.Notifier = notify.NewLogNotifier(appLog)
	var line *lineClient.Client
	if cfg.LineEnabled() {
		line, err = lineClient.NewClient(cfg.LineChannelSecret, cfg.LineChannelToken, appLog)
		if err != nil {
			appLog.Error("Failed to initialize LINE client, falling back to log notifications", err)
		} else {
			notifier = lineClient.NewNotifier(line, cfg.LineNotifyTo)
		}
	}
	player := ringtone.NewPlayer(cfg.RingtoneCommand, appLog)

	// --- Application Services ---
	preciseSvc := appService.NewPreciseAlarmService(timer, alarmRepo, appLog)
	inexactSvc := appService.NewInexactAlarmService(timer, alarmRepo, appLog)
	dispatcher := appService.NewAlarmDispatcher(preciseSvc, inexactSvc, notifier, player, appLog)
	// The timer is built before the dispatcher, so the fire callback is wired afterwards.
	timer.SetFireHandler(dispatcher.HandleFire)
	appLog.Info("Application services initialized.")

	// --- Restore Alarms ---
	// Cron registrations live in memory, so every process start is a restart.
	if err := dispatcher.OnBoot(context.Background()); err != nil {
		// Log the error but continue starting the server
		appLog.Error("Failed to restore alarms on startup", err)
	}
	timer.Start()

	// --- API Handlers ---
	display := dto.DisplayOptions{Location: time.Local, Use24HourClock: cfg.Use24HourClock}
	routerCfg := &router.Config{
		AlarmHandler: handler.NewAlarmHandler(preciseSvc, inexactSvc, dispatcher, display, appLog),
		Logger:       appLog,
	}
	if line != nil {
		routerCfg.LineHandler = handler.NewLineHandler(line, preciseSvc, inexactSvc, dispatcher, display, appLog)
	}
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := router.NewServer(fmt.Sprintf(":%d", cfg.Port), echoRouter)

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dispatcher, timer, db, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", cfg.Port))
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		appLog.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
}
