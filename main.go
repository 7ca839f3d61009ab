// main.go - Entry point and dependency injection
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

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"garmin-dashboard/internal/config"
	"garmin-dashboard/internal/database"
	"garmin-dashboard/internal/garmin"
	"garmin-dashboard/internal/sync"
	"garmin-dashboard/internal/web"

	_ "github.com/mattn/go-sqlite3"
)

type App struct {
	cfg      *config.Config
	db       *database.SQLiteDB
	cron     *cron.Cron
	server   *http.Server
	garmin   *garmin.Client
	syncer   *sync.Service
	shutdown chan os.Signal
}

func main() {
	app := &App{
		shutdown: make(chan os.Signal, 1),
	}

	if err := app.init(); err != nil {
		log.Fatal("Failed to initialize app: ", err)
	}

	app.start()

	signal.Notify(app.shutdown, os.Interrupt, syscall.SIGTERM)
	<-app.shutdown

	app.stop()
}

func (app *App) init() error {
	var err error

	app.cfg, err = config.Load()
	if err != nil {
		return err
	}

	app.db, err = database.Open(app.cfg.DBPath)
	if err != nil {
		return err
	}

	app.garmin = garmin.NewClient(app.cfg.GarminAPIURL)
	app.syncer = sync.NewService(app.garmin, app.db, app.cfg.DataDir, app.cfg.SyncPageSize, app.cfg.DownloadFormat)

	app.cron = cron.New()
	if _, err := app.cron.AddFunc(app.cfg.SyncSchedule, app.scheduledSync); err != nil {
		return fmt.Errorf("invalid sync schedule %q: %w", app.cfg.SyncSchedule, err)
	}

	templates, err := web.LoadTemplates(app.cfg.TemplateDir)
	if err != nil {
		return err
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), web.RequestID())
	router.SetHTMLTemplate(templates)
	web.NewHandler(app.db, app.syncer).RegisterRoutes(router)

	app.server = &http.Server{
		Addr:    app.cfg.ListenAddr,
		Handler: router,
	}

	return nil
}

// scheduledSync only makes sense while a Garmin session is alive;
// credentials are never stored, so a cold start cannot sync on its own.
func (app *App) scheduledSync() {
	if !app.garmin.IsAuthenticated() {
		log.Println("Scheduled sync skipped: no Garmin session")
		return
	}
	log.Println("Starting scheduled sync...")
	if err := app.syncer.Sync(context.Background()); err != nil {
		log.Printf("Scheduled sync failed: %v", err)
	}
}

func (app *App) start() {
	app.cron.Start()

	go func() {
		log.Printf("Server starting on %s", app.cfg.ListenAddr)
		if err := app.server.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()
}

func (app *App) stop() {
	log.Println("Shutting down...")

	app.cron.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	if app.db != nil {
		app.db.Close()
	}

	log.Println("Shutdown complete")
}
