package worker

import (
	"context"
	"errors"
	"time"

	"github.com/f1catchup/f1catchup/internal/config"
	"github.com/f1catchup/f1catchup/internal/worker/worker_queue"
)

type CalendarRefresher interface {
	Refresh(ctx context.Context, year int) (int, error)
	Warm(ctx context.Context, year int) (int, error)
}

const calendarRefreshTimeout = 2 * time.Minute

func refreshSeason(w *Worker, refresher CalendarRefresher, year int, bypassCache bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), calendarRefreshTimeout)
	defer cancel()

	refresh := refresher.Warm
	if bypassCache {
		refresh = refresher.Refresh
	}
	count, err := refresh(ctx, year)
	if err != nil {
		w.Log.Warn("failed to refresh calendar", "year", year, "error", err)
		return err
	}
	w.Log.Debug("refreshed calendar", "year", year, "entries", count)
	return nil
}

// InitCalendarWarmerWorker keeps the current season's schedule cached.
func InitCalendarWarmerWorker(conf *WorkerConfig, refresher CalendarRefresher, now func() time.Time) *Worker {
	conf.Executor = func(w *Worker) error {
		return refreshSeason(w, refresher, now().UTC().Year(), true)
	}
	return NewWorker(conf)
}

// InitQueuedCalendarWarmerWorker refreshes the seasons requests touched.
func InitQueuedCalendarWarmerWorker(conf *WorkerConfig, refresher CalendarRefresher) *Worker {
	conf.Executor = processCalendarQueue(refresher, &worker_queue.CalendarWarmerQueue)
	return NewWorker(conf)
}

func processCalendarQueue(refresher CalendarRefresher, queue *worker_queue.WorkerQueue[worker_queue.CalendarWarmerQueueItem]) func(w *Worker) error {
	return func(w *Worker) error {
		var errs []error
		queue.Process(func(item worker_queue.CalendarWarmerQueueItem) error {
			err := refreshSeason(w, refresher, item.Year, false)
			if err != nil {
				errs = append(errs, err)
			}
			return err
		})
		return errors.Join(errs...)
	}
}

func InitWorkers(refresher CalendarRefresher) func() {
	workers := []*Worker{}

	if worker := InitCalendarWarmerWorker(&WorkerConfig{
		Disabled:          config.Calendar.WarmInterval == 0,
		Name:              "warm-calendar",
		Interval:          config.Calendar.WarmInterval,
		RunAtStartupAfter: 5 * time.Second,
	}, refresher, time.Now); worker != nil {
		workers = append(workers, worker)
	}

	if worker := InitQueuedCalendarWarmerWorker(&WorkerConfig{
		Disabled: worker_queue.CalendarWarmerQueue.Disabled,
		Name:     "warm-queued-calendar",
		Interval: 1 * time.Minute,
	}, refresher); worker != nil {
		workers = append(workers, worker)
	}

	return func() {
		for _, worker := range workers {
			worker.Stop()
		}
	}
}
