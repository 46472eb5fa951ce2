package alert

import (
	"context"
	"time"

	"go.uber.org/zap"

	"amr-fleet-monitor/internal/model"
	"amr-fleet-monitor/internal/store"
)

// Watcher polls the robots table and raises an alert whenever a robot
// enters the error status.
type Watcher struct {
	store    store.Store
	pool     *WorkerPool
	interval time.Duration
	log      *zap.Logger

	last      map[int64]model.RobotStatus
	baselined bool
}

// NewWatcher creates a watcher that dispatches alerts to pool.
func NewWatcher(s store.Store, pool *WorkerPool, interval time.Duration, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		store:    s,
		pool:     pool,
		interval: interval,
		log:      log,
		last:     make(map[int64]model.RobotStatus),
	}
}

// Run starts the worker pool and polls until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	w.log.Info("starting alert watcher", zap.Duration("interval", w.interval))
	w.pool.Start(ctx)

	w.CheckOnce(ctx)

	timer := time.NewTimer(w.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("alert watcher shutting down")
			return
		case <-timer.C:
			w.CheckOnce(ctx)
			timer.Reset(w.interval)
		}
	}
}

// CheckOnce compares the current robots with the previous poll and
// dispatches a job for every robot that newly entered the error status.
// The first successful poll only records a baseline.
func (w *Watcher) CheckOnce(ctx context.Context) []int64 {
	robots, err := w.store.ListRobots(ctx)
	if err != nil {
		w.log.Error("failed to poll robots", zap.Error(err))
		return nil
	}

	current := make(map[int64]model.RobotStatus, len(robots))
	var alerted []int64
	for _, robot := range robots {
		current[robot.ID] = robot.Status

		if !w.baselined || robot.Status != model.RobotStatusError {
			continue
		}
		if prev, seen := w.last[robot.ID]; seen && prev == model.RobotStatusError {
			continue
		}

		if w.pool.Dispatch(ctx, Job{RobotID: robot.ID, RobotName: robot.Name}) {
			alerted = append(alerted, robot.ID)
		}
	}

	w.last = current
	w.baselined = true
	return alerted
}
