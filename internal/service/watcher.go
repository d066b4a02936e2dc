package service

import (
	"context"
	"log"
	"time"
)

const watchJobTimeout = 30 * time.Second

// Watcher runs the background jobs of a long-lived tracker: a periodic status
// line for the running activity and closing the open fact at the end of the
// day, so no fact runs across midnight.
type Watcher struct {
	facts     *FactService
	scheduler *SchedulerService
	dayEnd    Clock
	interval  time.Duration
	now       func() time.Time
}

func NewWatcher(facts *FactService, scheduler *SchedulerService, dayEnd Clock, interval time.Duration) *Watcher {
	return &Watcher{
		facts:     facts,
		scheduler: scheduler,
		dayEnd:    dayEnd,
		interval:  interval,
		now:       time.Now,
	}
}

// Schedule registers the watcher jobs with the scheduler.
func (w *Watcher) Schedule() error {
	if _, err := w.scheduler.ScheduleDaily(w.dayEnd, w.runJob("close day", w.CloseDay)); err != nil {
		return err
	}
	if w.interval > 0 {
		if _, err := w.scheduler.ScheduleInterval(w.interval, w.runJob("status", w.ReportStatus)); err != nil {
			return err
		}
	}
	return nil
}

// ReportStatus logs the running activity and how long it has been running.
func (w *Watcher) ReportStatus(ctx context.Context) error {
	now := w.now()
	current, err := w.facts.Current(ctx, now)
	if err != nil {
		return err
	}
	if current == nil {
		log.Println("[info] no activity")
		return nil
	}
	log.Printf("[info] %s (%s) for %s", current.ActivityName, current.CategoryName, current.Duration(now).Truncate(time.Minute))
	return nil
}

// CloseDay closes the running fact at the configured end of the day.
func (w *Watcher) CloseDay(ctx context.Context) error {
	end := w.dayEnd.On(w.now())
	closed, err := w.facts.Stop(ctx, end)
	if err != nil {
		return err
	}
	if closed != nil {
		log.Printf("[info] closed %s at %s", closed.ActivityName, closed.EndTime)
	}
	return nil
}

func (w *Watcher) runJob(name string, job func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), watchJobTimeout)
		defer cancel()
		if err := job(ctx); err != nil {
			log.Printf("[warn] %s: %v", name, err)
		}
	}
}
