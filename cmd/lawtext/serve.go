package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ntpusu/lawtext/internal/index"
	"github.com/ntpusu/lawtext/internal/metrics"
	"github.com/ntpusu/lawtext/internal/server"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr      string        `short:"a" help:"Listen address (default from config)"`
	NoWatch   bool          `help:"Do not watch the library for changes"`
	NoMetrics bool          `help:"Do not expose /metrics"`
	Interval  time.Duration `help:"Full reindex interval (default from config, 0 disables)"`
}

func (c *ServeCmd) Run(cli *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := cli.cfg
	if c.Addr != "" {
		cfg.HTTPListen = c.Addr
	}
	interval := cfg.ReindexInterval
	if c.Interval != 0 {
		interval = c.Interval
	}

	indexer, st, err := openIndex(ctx, cli, false)
	if err != nil {
		return err
	}
	db := indexer.DB()
	defer func() { _ = db.Close() }()

	recorder := metrics.NewPrometheusRecorder(nil)
	updateCount := func() {
		if n, err := db.Count(); err == nil {
			recorder.SetRegulations(n)
		}
	}
	updateCount()
	log.Info("library indexed", "path", cfg.LibraryPath, "indexed", st.Indexed, "unchanged", st.Unchanged)

	if !c.NoWatch {
		w, err := index.NewWatcher(indexer,
			func(path string) {
				log.Debug("regulation changed", "path", path)
				updateCount()
			},
			func(err error) {
				log.Error("library watcher stopped", "err", err)
			},
		)
		if err != nil {
			return fmt.Errorf("watch library: %w", err)
		}
		go w.Start(ctx)
		defer func() { _ = w.Stop() }()
	}

	if interval > 0 {
		sched, err := index.NewScheduler(indexer, func(_ index.Stats, d time.Duration, err error) {
			recorder.ObserveReindex(d, err == nil)
			updateCount()
		})
		if err != nil {
			return err
		}
		if _, err := sched.Every(ctx, interval); err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				log.Warn("stop scheduler", "err", err)
			}
		}()
	}

	opts := server.Options{
		Addr:     cfg.HTTPListen,
		Library:  indexer.Library(),
		Index:    db,
		Recorder: recorder,
	}
	if !c.NoMetrics {
		opts.Metrics = recorder.Handler()
	}
	srv := server.New(opts)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", cfg.HTTPListen)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
