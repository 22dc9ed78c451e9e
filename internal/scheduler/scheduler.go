package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"CardDesk/internal/desk"
	"CardDesk/internal/evaluator"
	"CardDesk/internal/model"
	"CardDesk/internal/notifier"
	"CardDesk/internal/pricefeed"
	"CardDesk/internal/recorder"
	"CardDesk/internal/settings"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron          *cron.Cron
	Desk          *desk.Manager
	Collector     *pricefeed.Collector
	Settings      *settings.Manager
	Recorder      recorder.Recorder
	Notifier      *notifier.WebhookNotifier
	SessionMaxAge time.Duration
	Ctx           context.Context
}

// NewScheduler creates a new Scheduler. wn may be nil.
func NewScheduler(ctx context.Context, dm *desk.Manager, col *pricefeed.Collector, sm *settings.Manager, rec recorder.Recorder, wn *notifier.WebhookNotifier, sessionMaxAge time.Duration) *Scheduler {
	return &Scheduler{
		Cron:          cron.New(cron.WithSeconds()),
		Desk:          dm,
		Collector:     col,
		Settings:      sm,
		Recorder:      rec,
		Notifier:      wn,
		SessionMaxAge: sessionMaxAge,
		Ctx:           ctx,
	}
}

// RegisterAll registers the review sweep, session expiry, and weekly digest tasks.
func (s *Scheduler) RegisterAll(sweepCron, expiryCron, digestCron string) error {
	if _, err := s.Cron.AddFunc(sweepCron, s.sweepTask); err != nil {
		return fmt.Errorf("register sweep task: %w", err)
	}
	if _, err := s.Cron.AddFunc(expiryCron, s.expiryTask); err != nil {
		return fmt.Errorf("register expiry task: %w", err)
	}
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunSweepNow executes the review sweep immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunSweepNow() {
	s.sweepTask()
}

// sweepTask re-prices scans sitting in the review queue against fresh
// market data. A scan that would now auto-accept is reported so the
// operator can settle it; resolution itself stays a human action.
func (s *Scheduler) sweepTask() {
	log.Println("[INFO] running review sweep")

	pending, err := s.Recorder.PendingReviewScans(50)
	if err != nil {
		log.Printf("[ERROR] sweep: load pending reviews: %v", err)
		return
	}
	if len(pending) == 0 {
		log.Println("[INFO] sweep: review queue empty")
		return
	}

	policy := s.Settings.Get()
	upgrades := 0
	for _, rec := range pending {
		snap, err := s.Collector.Collect(rec.Card.CertNumber)
		if err != nil {
			log.Printf("[WARN] sweep: refresh cert %s: %v", rec.Card.CertNumber, err)
			continue
		}
		ev := evaluator.EvaluateScan(&rec.Card, snap, &policy)
		if ev.Action != model.ActionAutoAccept {
			continue
		}
		upgrades++
		log.Printf("[INFO] sweep: scan %s would now auto-accept at $%.2f", rec.ID, *ev.BuyPrice)
		if s.Notifier != nil {
			report := notifier.FormatScanReport(&rec.Card, snap, ev)
			s.trySend("Review item now clears all filters\n" + report)
		}
	}
	log.Printf("[INFO] sweep done: %d pending checked, %d upgraded", len(pending), upgrades)
}

func (s *Scheduler) expiryTask() {
	n := s.Desk.ExpireStale(s.SessionMaxAge)
	if n > 0 {
		log.Printf("[INFO] expired %d stale sessions", n)
	}
}

func (s *Scheduler) digestTask() {
	log.Println("[INFO] running weekly digest")

	stats, err := s.Recorder.Stats(time.Now().AddDate(0, 0, -7))
	if err != nil {
		log.Printf("[ERROR] digest: load stats: %v", err)
		return
	}
	pending, err := s.Recorder.PendingReviewScans(500)
	if err != nil {
		log.Printf("[WARN] digest: load pending reviews: %v", err)
	}

	digest := notifier.FormatWeeklyDigest(stats, len(pending), s.Desk.OpenSessionCount())
	s.trySend(digest)
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] notify: %v", err)
	}
}
