package alert

import (
	"context"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amr-fleet-monitor/internal/model"
	"amr-fleet-monitor/internal/store"
)

func setStatus(t *testing.T, s store.Store, id int64, status model.RobotStatus) {
	t.Helper()
	require.NoError(t, s.DB().Model(&model.Robot{}).Where("id = ?", id).Update("status", status).Error)
}

func drain(wp *WorkerPool) []Job {
	var jobs []Job
	for {
		select {
		case job := <-wp.Jobs():
			jobs = append(jobs, job)
		default:
			return jobs
		}
	}
}

func TestWatcher_CheckOnce(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	wp := NewWorkerPool(8, s, &webpush.Options{}, nil)
	w := NewWatcher(s, wp, time.Minute, nil)

	assert.Empty(t, w.CheckOnce(ctx), "first poll only records a baseline")
	assert.Empty(t, drain(wp))

	setStatus(t, s, 2, model.RobotStatusError)
	assert.Equal(t, []int64{2}, w.CheckOnce(ctx))
	jobs := drain(wp)
	require.Len(t, jobs, 1)
	assert.Equal(t, Job{RobotID: 2, RobotName: "로봇 B"}, jobs[0])

	assert.Empty(t, w.CheckOnce(ctx), "a robot staying in error is alerted once")

	setStatus(t, s, 4, model.RobotStatusCharging)
	assert.Empty(t, w.CheckOnce(ctx))
	setStatus(t, s, 4, model.RobotStatusError)
	assert.Equal(t, []int64{4}, w.CheckOnce(ctx), "re-entering error alerts again")
	drain(wp)

	require.NoError(t, s.DB().Create(&model.Robot{Name: "로봇 F", Status: model.RobotStatusError}).Error)
	alerted := w.CheckOnce(ctx)
	require.Len(t, alerted, 1, "a robot that appears in error is alerted")
	assert.Equal(t, "로봇 F", drain(wp)[0].RobotName)
}

func TestWatcher_CheckOnceStorageError(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	wp := NewWorkerPool(4, s, &webpush.Options{}, nil)
	w := NewWatcher(s, wp, time.Minute, nil)

	require.NoError(t, s.Close())
	assert.Nil(t, w.CheckOnce(ctx))
	assert.False(t, w.baselined, "a failed poll does not count as the baseline")
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	s := newSeededStore(t)
	wp := NewWorkerPool(1, s, &webpush.Options{}, nil)
	w := NewWatcher(s, wp, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
