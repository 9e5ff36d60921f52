package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/f1catchup/f1catchup/internal/config"
	f1_calendar "github.com/f1catchup/f1catchup/internal/f1/calendar"
	"github.com/f1catchup/f1catchup/internal/logger"
	"github.com/f1catchup/f1catchup/internal/server"
	stremio_f1catchup "github.com/f1catchup/f1catchup/internal/stremio/f1catchup"
	"github.com/f1catchup/f1catchup/internal/worker"
	"github.com/f1catchup/f1catchup/internal/worker/worker_queue"
)

var log = logger.Scoped("main")

func main() {
	calendar := f1_calendar.NewDefaultService()

	stopWorkers := worker.InitWorkers(calendar)
	defer stopWorkers()

	addon := stremio_f1catchup.NewDefaultAddon(calendar, func(year int) {
		worker_queue.CalendarWarmerQueue.Queue(worker_queue.CalendarWarmerQueueItem{Year: year})
	})

	mux := http.NewServeMux()
	addon.AddEndpoints(mux)

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           server.Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", "addr", srv.Addr, "version", config.Version, "feed", config.Calendar.Feed, "numbering", config.Episode.Numbering)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}
