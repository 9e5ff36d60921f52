package worker

import (
	"sync"
	"time"

	"github.com/f1catchup/f1catchup/internal/logger"
	"github.com/f1catchup/f1catchup/internal/util"
	"github.com/madflojo/tasks"
)

type Worker struct {
	scheduler  *tasks.Scheduler
	shouldSkip func() bool
	onStart    func()
	onEnd      func()
	Log        *logger.Logger

	mu      sync.Mutex
	running bool
	LastRun time.Time
	LastErr error
}

type WorkerConfig struct {
	Disabled          bool
	Executor          func(w *Worker) error
	Interval          time.Duration
	Log               *logger.Logger
	Name              string
	OnEnd             func()
	OnStart           func()
	RunAtStartupAfter time.Duration
	ShouldSkip        func() bool
}

type WorkerDetail struct {
	Id       string        `json:"id"`
	Title    string        `json:"title"`
	Interval time.Duration `json:"interval"`
}

var WorkerDetailsById = map[string]*WorkerDetail{
	"warm-calendar": {
		Title: "Warm Calendar",
	},
	"warm-queued-calendar": {
		Title: "Warm Queued Calendar",
	},
}

// run executes one job. Overlapping runs are skipped.
func (w *Worker) run(executor func(w *Worker) error) (err error) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		w.Log.Debug("skipping, already running")
		return nil
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		if perr, stack := util.HandlePanic(recover(), true); perr != nil {
			err = perr
			w.Log.Error("Worker Panic", "error", err, "stack", stack)
		}
		w.mu.Lock()
		w.running = false
		w.LastRun = time.Now()
		w.LastErr = err
		w.mu.Unlock()
		w.onEnd()
	}()

	if w.shouldSkip() {
		w.Log.Info("skipping")
		return nil
	}

	w.onStart()

	start := time.Now()
	if err = executor(w); err != nil {
		return err
	}
	w.Log.Info("done", "duration", time.Since(start).String())
	return nil
}

func newWorker(conf *WorkerConfig) *Worker {
	if conf.Log == nil {
		conf.Log = logger.Scoped("worker/" + conf.Name)
	}
	if conf.OnStart == nil {
		conf.OnStart = func() {}
	}
	if conf.OnEnd == nil {
		conf.OnEnd = func() {}
	}
	if conf.ShouldSkip == nil {
		conf.ShouldSkip = func() bool {
			return false
		}
	}
	return &Worker{
		shouldSkip: conf.ShouldSkip,
		onStart:    conf.OnStart,
		onEnd:      conf.OnEnd,
		Log:        conf.Log,
	}
}

func NewWorker(conf *WorkerConfig) *Worker {
	if conf.Name == "" {
		panic("worker name cannot be empty")
	}

	if details, ok := WorkerDetailsById[conf.Name]; !ok {
		panic("worker details not present: " + conf.Name)
	} else {
		details.Id = conf.Name
		details.Interval = conf.Interval
	}

	if conf.Disabled || conf.Interval <= 0 {
		return nil
	}

	worker := newWorker(conf)
	worker.scheduler = tasks.New()

	log := worker.Log

	task := &tasks.Task{
		Interval:          conf.Interval,
		RunSingleInstance: true,
		TaskFunc: func() error {
			return worker.run(conf.Executor)
		},
		ErrFunc: func(err error) {
			log.Error("Worker Failure", "error", err)
		},
	}

	id, err := worker.scheduler.Add(task)
	if err != nil {
		panic(err)
	}

	log.Info("Started Worker", "id", id)

	if conf.RunAtStartupAfter != 0 {
		t := task.Clone()
		t.Interval = conf.RunAtStartupAfter
		t.RunOnce = true
		if _, err := worker.scheduler.Add(t); err != nil {
			log.Error("failed to schedule startup run", "error", err)
		}
	}

	return worker
}

func (w *Worker) Stop() {
	if w != nil && w.scheduler != nil {
		w.scheduler.Stop()
	}
}
