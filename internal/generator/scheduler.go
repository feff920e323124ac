package generator

import (
	"context"
	"log"
	"sync"
	"time"
)

type SchedulerConfig struct {
	Interval time.Duration
	Actor    string
}

// Scheduler triggers backlog sweeps on a fixed interval. A cycle that fires
// while the previous sweep is still running is skipped, not queued.
type Scheduler struct {
	batch    *Batch
	interval time.Duration
	actor    string

	runMu    sync.Mutex
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
	started  bool
}

func NewScheduler(batch *Batch, config SchedulerConfig) *Scheduler {
	if config.Interval <= 0 {
		config.Interval = 24 * time.Hour
	}
	if config.Actor == "" {
		config.Actor = "scheduler"
	}

	return &Scheduler{
		batch:    batch,
		interval: config.Interval,
		actor:    config.Actor,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	if s.started {
		return
	}
	s.started = true

	log.Printf("[SCHED] Scheduled highlight generation every %s", s.interval)
	go s.loop()
}

func (s *Scheduler) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			go s.runOnce()
		}
	}
}

func (s *Scheduler) runOnce() {
	if !s.runMu.TryLock() {
		log.Printf("[SCHED] Previous sweep still running, skipping this cycle")
		return
	}
	defer s.runMu.Unlock()

	outcome := s.batch.ProcessBacklog(context.Background(), s.actor)
	if outcome.Err != nil {
		log.Printf("[SCHED] Sweep failed: %v", outcome.Err)
		return
	}
	log.Printf("[SCHED] %s", outcome.Message)
}

// ForceGenerate is the manual trigger. It shares the batch's per-video
// locks, so a forced run and a sweep never race over the same video.
func (s *Scheduler) ForceGenerate(ctx context.Context, videoID, actor string) RunOutcome {
	return s.batch.ForceGenerate(ctx, videoID, actor)
}

// Stop halts the ticker and waits for an in-flight sweep to finish.
func (s *Scheduler) Stop() {
	if !s.started {
		return
	}
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done

	// Sweeps run in their own goroutine, so drain any that was mid-flight
	// when stop fired.
	s.runMu.Lock()
	s.runMu.Unlock()
}
