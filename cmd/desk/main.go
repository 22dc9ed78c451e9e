package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CardDesk/internal/config"
	"CardDesk/internal/desk"
	"CardDesk/internal/notifier"
	"CardDesk/internal/pricefeed"
	"CardDesk/internal/recorder"
	"CardDesk/internal/scheduler"
	"CardDesk/internal/server"
	"CardDesk/internal/settings"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CardDesk starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init price feed
	var fetcher pricefeed.Fetcher
	if cfg.Pricefeed.BaseURL != "" {
		fetcher = pricefeed.NewGemRateFetcher(cfg.Pricefeed.BaseURL, cfg.Pricefeed.APIKey, cfg.Proxy)
	} else {
		log.Println("[WARN] no price feed configured, using mock comps")
		fetcher = &pricefeed.MockFetcher{Price: 100, Count: 12}
	}
	log.Printf("[INFO] price feed: %s", fetcher.Name())
	col := pricefeed.NewCollector(fetcher)

	// Init settings manager
	sm, err := settings.NewManager(cfg.Settings.StateFile)
	if err != nil {
		log.Fatalf("[FATAL] init settings manager: %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init webhook notifier (optional)
	var wn *notifier.WebhookNotifier
	if cfg.Notify.WebhookURL != "" {
		wn = notifier.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Proxy)
	}

	// Init desk manager
	dm := desk.NewManager(col, sm, rec, wn, cfg.Notify.MinHitPrice)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	maxAge := time.Duration(cfg.Schedule.SessionMaxAgeHours) * time.Hour
	sched := scheduler.NewScheduler(ctx, dm, col, sm, rec, wn, maxAge)
	if err := sched.RegisterAll(cfg.Schedule.SweepCron, cfg.Schedule.ExpiryCron, cfg.Schedule.DigestCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start HTTP server
	srv := server.NewServer(cfg.Server.Host, cfg.Server.Port, dm, sm, rec)
	srv.Start()

	// Optional: sweep the review queue immediately on start
	if os.Getenv("SWEEP_ON_START") == "true" {
		log.Println("[INFO] SWEEP_ON_START enabled, executing review sweep now")
		go sched.RunSweepNow()
	}

	log.Println("[INFO] CardDesk is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] CardDesk stopped")
}
