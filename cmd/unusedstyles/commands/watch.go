package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/config"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/observability"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/report"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/runner"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/watch"
)

const (
	metricsReadHeaderTimeout = 5 * time.Second
	metricsShutdownTimeout   = 5 * time.Second
)

// WatchCommand holds flags for the watch command.
type WatchCommand struct {
	global *globalFlags

	format      string
	color       string
	debounce    time.Duration
	metricsAddr string
	noInitial   bool
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(global *globalFlags) *cobra.Command {
	wc := &WatchCommand{global: global}

	cmd := &cobra.Command{
		Use:   "watch [dir...]",
		Short: "Re-check style files whenever they change",
		Long: `Watch directories and re-check a style file each time it is created or
written, or when its sibling file is written. Every directory is checked once
at startup unless --no-initial is given.

With --metrics-addr, Prometheus metrics are served on /metrics and a
liveness probe on /healthz.`,
		RunE: wc.run,
	}

	cmd.Flags().StringVarP(&wc.format, "format", "f", "", "entry format: text, json, yaml (default from config)")
	cmd.Flags().StringVar(&wc.color, "color", "", "color mode: auto, always, never (default from config)")
	cmd.Flags().DurationVar(&wc.debounce, "debounce", 0, "collapse events within this period (default from config)")
	cmd.Flags().StringVar(&wc.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	cmd.Flags().BoolVar(&wc.noInitial, "no-initial", false, "skip the startup check of every directory")

	return cmd
}

func (wc *WatchCommand) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = wc.format
	}

	if cmd.Flags().Changed("color") {
		cfg.Output.Color = wc.color
	}

	if cmd.Flags().Changed("debounce") {
		cfg.Watch.Debounce = wc.debounce
	}

	if cmd.Flags().Changed("metrics-addr") {
		cfg.Watch.MetricsAddr = wc.metricsAddr
	}

	err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	return nil
}

func (wc *WatchCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := wc.global.loadConfig()
	if err != nil {
		return err
	}

	err = wc.applyFlags(cmd, cfg)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	obsCfg, err := wc.global.observabilityConfig(cfg, observability.ModeWatch)
	if err != nil {
		return err
	}

	obsCfg.Prometheus = cfg.Watch.MetricsAddr != ""

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}
	defer shutdownProviders(providers)

	r, err := newRunner(cmd, wc.global, cfg, providers, runner.SourceWatch)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := report.RenderOptions{
		Color:   colorEnabled(cfg.Output.Color, out),
		Verbose: wc.global.verbose,
	}

	emit := func(entry report.Entry) {
		renderErr := report.RenderEntry(out, entry, cfg.Output.Format, opts)
		if renderErr != nil {
			providers.Logger.Error("render entry failed", "path", entry.Path, "error", renderErr)
		}
	}

	if !wc.noInitial {
		rep, runErr := r.Run(cmd.Context(), args)
		if runErr != nil {
			return runErr
		}

		for _, entry := range rep.Entries {
			emit(entry)
		}
	}

	watcher := watch.New(r, emit, watch.Options{
		Debounce: cfg.Watch.Debounce,
		Logger:   providers.Logger,
	})

	group, ctx := errgroup.WithContext(cmd.Context())

	group.Go(func() error {
		return watcher.Run(ctx, args)
	})

	if providers.MetricsHandler != nil {
		serveMetrics(ctx, group, cfg.Watch.MetricsAddr, providers)
	}

	return group.Wait()
}

// serveMetrics runs the metrics endpoint in group until ctx is done.
func serveMetrics(ctx context.Context, group *errgroup.Group, addr string, providers observability.Providers) {
	server := &http.Server{
		Addr:              addr,
		Handler:           observability.HTTPMiddleware(providers.Tracer, observability.NewMetricsMux(providers.MetricsHandler)),
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	group.Go(func() error {
		providers.Logger.Info("serving metrics", "addr", addr)

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})
}
