// Package scheduler runs the persistent cache maintenance jobs on cron schedules
// and keeps a per-job record of their outcomes for the status endpoint.
package scheduler

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/aristath/jyotish/internal/database"
)

// walCheckpointSchedule runs the WAL check twice an hour
const walCheckpointSchedule = "0 */30 * * * *"

// Job is one unit of maintenance work
type Job interface {
	Run() error
	Name() string
}

// JobStatus is the last known outcome of a registered job
type JobStatus struct {
	Name         string        `json:"name"`
	Schedule     string        `json:"schedule"`
	Runs         int64         `json:"runs"`
	Failures     int64         `json:"failures"`
	LastRun      time.Time     `json:"last_run,omitempty"`
	LastDuration time.Duration `json:"last_duration_ns,omitempty"`
	LastError    string        `json:"last_error,omitempty"`
	NextRun      time.Time     `json:"next_run,omitempty"`
}

type entry struct {
	id     cron.EntryID
	job    Job
	status JobStatus
}

// Scheduler owns the cron runner and the job records
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger

	mu   sync.Mutex
	jobs map[string]*entry
}

// New creates a scheduler. A run still in progress makes the next tick a no-op.
func New(log zerolog.Logger) *Scheduler {
	l := log.With().Str("component", "scheduler").Logger()
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{log: l})),
		),
		log:  l,
		jobs: make(map[string]*entry),
	}
}

// Start starts the cron runner
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("jobs", len(s.cron.Entries())).Msg("Scheduler started")
}

// Stop stops the cron runner and waits for running jobs
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("Scheduler stopped")
}

// AddJob registers job under a cron spec with seconds ("0 */5 * * * *", "@hourly", "@every 30s").
// Job names must be unique.
func (s *Scheduler) AddJob(schedule string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := job.Name()
	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("job %s already registered", name)
	}
	id, err := s.cron.AddFunc(schedule, func() { s.run(name) })
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	s.jobs[name] = &entry{id: id, job: job, status: JobStatus{Name: name, Schedule: schedule}}

	s.log.Info().Str("schedule", schedule).Str("job", name).Msg("Job registered")
	return nil
}

// RegisterMaintenance schedules the expired-entry cleanup and the WAL checkpoint of the
// persistent cache database
func (s *Scheduler) RegisterMaintenance(cleanup Job, cleanupSchedule string, db *database.DB) error {
	if err := s.AddJob(cleanupSchedule, cleanup); err != nil {
		return err
	}
	return s.AddJob(walCheckpointSchedule, NewWALCheckpointJob(db, s.log))
}

// RunNow executes a registered job outside its schedule
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	_, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("job %s not registered", name)
	}
	s.log.Info().Str("job", name).Msg("Running job immediately")
	return s.run(name)
}

// Status returns the job records sorted by name
func (s *Scheduler) Status() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]JobStatus, 0, len(s.jobs))
	for _, e := range s.jobs {
		st := e.status
		st.NextRun = s.cron.Entry(e.id).Next
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Scheduler) run(name string) error {
	s.mu.Lock()
	e := s.jobs[name]
	s.mu.Unlock()

	start := time.Now()
	err := e.job.Run()
	elapsed := time.Since(start)

	s.mu.Lock()
	e.status.Runs++
	e.status.LastRun = start
	e.status.LastDuration = elapsed
	e.status.LastError = ""
	if err != nil {
		e.status.Failures++
		e.status.LastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Str("job", name).Dur("duration", elapsed).Msg("Job failed")
	} else {
		s.log.Debug().Str("job", name).Dur("duration", elapsed).Msg("Job completed")
	}
	return err
}

// cronLogger routes the cron runner's own messages into zerolog
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
