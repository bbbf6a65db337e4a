package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/config"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/backup"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/bootstrap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.OpenApp(ctx, cfg)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}

	var sched *backup.Scheduler
	if cfg.Backup.Schedule != "" {
		sched = backup.NewScheduler(app.Store, backup.Options{Dir: cfg.Backup.Dir, Keep: cfg.Backup.Keep})
		if err := sched.Start(cfg.Backup.Schedule); err != nil {
			log.Fatalf("backup: %v", err)
		}
	}

	deps := bootstrap.RouterDeps{
		ServiceName: "sitebuilder-backend",
		Version:     cfg.App.Version,
		Driver:      app.Storage.Driver,
		Store:       app.Store,
		Templates:   app.Catalog,
		CORSOrigins: cfg.Server.CORSOrigins,
		RateRPS:     cfg.Server.RateLimitRPS,
		RateBurst:   cfg.Server.RateLimitBurst,
	}
	if app.Storage.Pinger != nil {
		deps.Storage = app.Storage.Pinger
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           bootstrap.BuildRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s (storage=%s env=%s)", cfg.Server.Port, app.Storage.Driver, cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if sched != nil {
		sched.Stop()
	}
	if err := app.Close(shutdownCtx); err != nil {
		log.Printf("store close: %v", err)
	}
}
