package index

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
)

// ReindexFunc receives the outcome of each scheduled pass.
type ReindexFunc func(st Stats, d time.Duration, err error)

// Scheduler runs full index passes at a fixed interval.
type Scheduler struct {
	scheduler gocron.Scheduler
	indexer   *Indexer
	onDone    ReindexFunc
}

// NewScheduler creates a scheduler for indexer. onDone may be nil.
func NewScheduler(indexer *Indexer, onDone ReindexFunc) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Scheduler{scheduler: s, indexer: indexer, onDone: onDone}, nil
}

// Every schedules a pass each interval and returns the job ID. Passes never
// overlap.
func (s *Scheduler) Every(ctx context.Context, interval time.Duration) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("reindex interval must be positive, got %s", interval)
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.tick, ctx),
		gocron.WithName("reindex"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("schedule reindex: %w", err)
	}
	return job.ID().String(), nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	log.Info("starting reindex scheduler")
	s.scheduler.Start()
}

// Stop waits for a running pass and shuts the scheduler down.
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

// RunOnce performs a pass immediately.
func (s *Scheduler) RunOnce(ctx context.Context) (Stats, error) {
	return s.run(ctx)
}

func (s *Scheduler) tick(ctx context.Context) {
	_, _ = s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) (Stats, error) {
	start := time.Now()
	st, err := s.indexer.IndexAll(ctx)
	d := time.Since(start)
	if err != nil {
		log.Error("scheduled reindex failed", "err", err, "duration", d)
	} else if st.Indexed > 0 || st.Removed > 0 {
		log.Info("reindexed library", "indexed", st.Indexed, "removed", st.Removed, "duration", d)
	}
	if s.onDone != nil {
		s.onDone(st, d, err)
	}
	return st, err
}
