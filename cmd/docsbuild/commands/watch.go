package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/weygoldt/thunderfish/internal/metrics"
	"github.com/weygoldt/thunderfish/internal/watchdog"
	"github.com/weygoldt/thunderfish/internal/workspace"
)

// WatchCmd rebuilds the documentation whenever the package tree changes.
type WatchCmd struct {
	VerifyLinks   bool   `name:"verify-links" help:"Verify internal links after each rebuild"`
	MetricsListen string `name:"metrics-listen" help:"Serve Prometheus build metrics on this address (e.g. :9090)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	dir, err := workspace.Resolve(root.Root)
	if err != nil {
		return err
	}
	mgr := workspace.NewManager(dir)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if w.MetricsListen != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		serveMetrics(ctx, w.MetricsListen, reg)
	}

	opts := BuildOptions{Root: dir, Package: root.Package, VerifyLinks: w.VerifyLinks, Recorder: recorder}
	rebuild := func(ctx context.Context) error {
		return RunBuild(ctx, opts)
	}

	// Initial build; a failure here is logged but keeps the watch alive so a
	// source fix can trigger a successful rebuild.
	if err := rebuild(ctx); err != nil {
		slog.Error("Initial build failed", "error", err)
	}

	watcher, err := watchdog.New([]string{dir}, mgr.OutputDir(), rebuild)
	if err != nil {
		return err
	}

	fmt.Println("Watching for changes (Ctrl-C to stop)")
	if err := watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// serveMetrics exposes the registry at /metrics until ctx is done.
func serveMetrics(ctx context.Context, addr string, reg *prom.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Serving build metrics", "addr", addr, "path", "/metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
