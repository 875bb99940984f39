package snapshot

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs periodic snapshots on a cron.
type Scheduler struct {
	cron *cron.Cron
	snap *Snapshotter
	keep int
	now  func() time.Time
}

func NewScheduler(snap *Snapshotter, keep int, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		snap: snap,
		keep: keep,
		now:  time.Now,
	}
}

// Every registers a snapshot job for the given interval.
func (s *Scheduler) Every(interval time.Duration) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	expr := fmt.Sprintf("@every %ds", seconds)
	return s.cron.AddFunc(expr, s.RunOnce)
}

// RunOnce takes one snapshot and prunes old ones. Errors are logged.
func (s *Scheduler) RunOnce() {
	if _, err := s.snap.Write(s.now()); err != nil {
		s.snap.log.Error("scheduled snapshot", zap.Error(err))
		return
	}
	if _, err := s.snap.Prune(s.keep); err != nil {
		s.snap.log.Error("prune snapshots", zap.Error(err))
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
