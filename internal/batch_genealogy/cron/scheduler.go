package cronjob

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/service"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/logger"
)

// DefaultSpec runs the audit nightly at 00:00 (seconds field first).
const DefaultSpec = "0 0 0 * * *"

// Warmer is satisfied by *service.GenealogyService.
type Warmer interface {
	Warm(ctx context.Context) ([]*service.AuditResult, error)
}

type Scheduler struct {
	warmer  Warmer
	spec    string
	timeout time.Duration
	log     *logger.Logger
	cron    *cron.Cron
}

func NewScheduler(w Warmer, spec string, log *logger.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		warmer:  w,
		spec:    spec,
		timeout: 10 * time.Minute,
		log:     log.With("component", "GenealogyCron"),
	}
}

// Start registers the audit job and starts the cron loop.
func (s *Scheduler) Start() error {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(s.spec, s.RunOnce); err != nil {
		return err
	}
	s.cron = c
	c.Start()
	s.log.Info("genealogy cron started", "spec", s.spec)
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
}

// RunOnce rebuilds every dataset into the cache and logs its cycles.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	results, err := s.warmer.Warm(ctx)
	if err != nil {
		s.log.Error("genealogy audit failed", "error", err)
		return
	}
	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
			continue
		}
		for _, c := range r.Cycles {
			s.log.Warn("cycle in genealogy", "dataset", r.Key, "nodes", c.Nodes)
		}
	}
	s.log.Info("genealogy audit completed",
		"datasets", len(results), "failed", failed, "took", time.Since(start).String())
}
