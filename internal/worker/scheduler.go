// Package worker runs periodic background jobs on cron schedules.
package worker

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/martinsuchenak/assetcompass/internal/log"
)

// DefaultJobTimeout bounds a single job run.
const DefaultJobTimeout = 5 * time.Minute

// Job is a named unit of recurring work. Spec is a standard five field
// cron expression or a descriptor such as "@daily".
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Scheduler manages background jobs
type Scheduler struct {
	mu      sync.RWMutex
	cron    *cron.Cron
	jobs    map[string]Job
	entries map[string]cron.EntryID
	running bool
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler creates a scheduler. Overlapping runs of the same job are
// skipped and panics are recovered.
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	logger := cronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		jobs:    make(map[string]Job),
		entries: make(map[string]cron.EntryID),
		timeout: DefaultJobTimeout,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Add registers a job. Names must be unique.
func (s *Scheduler) Add(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.Name]; exists {
		return fmt.Errorf("job %q already registered", job.Name)
	}

	id, err := s.cron.AddFunc(job.Spec, func() { s.run(job) })
	if err != nil {
		return fmt.Errorf("scheduling job %q: %w", job.Name, err)
	}

	s.jobs[job.Name] = job
	s.entries[job.Name] = id
	log.Info("Background job registered", "job", job.Name, "schedule", job.Spec)
	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.cron.Start()
	log.Info("Starting background scheduler", "jobs", len(s.jobs))
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	log.Info("Stopping background scheduler")
	s.cancel()
	<-s.cron.Stop().Done()
}

// Trigger runs a registered job immediately and returns its error.
func (s *Scheduler) Trigger(ctx context.Context, name string) error {
	s.mu.RLock()
	job, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job %q not found", name)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return job.Run(ctx)
}

// Next returns the next scheduled run of a job, or the zero time if the
// scheduler is not running or the job is unknown.
func (s *Scheduler) Next(name string) time.Time {
	s.mu.RLock()
	id, ok := s.entries[name]
	s.mu.RUnlock()
	if !ok {
		return time.Time{}
	}
	return s.cron.Entry(id).Next
}

// Jobs returns the registered job names in sorted order.
func (s *Scheduler) Jobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Scheduler) run(job Job) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	log.Debug("Background job started", "job", job.Name)

	if err := job.Run(ctx); err != nil {
		log.Error("Background job failed", "job", job.Name, "error", err, "duration", time.Since(start).String())
		return
	}
	log.Info("Background job completed", "job", job.Name, "duration", time.Since(start).String())
}

// cronLogger routes cron's own messages to the service log.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	log.Trace("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
