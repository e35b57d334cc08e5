// Package runner drives style file checks for the command line, watch and
// MCP hosts: it expands input paths, fans checks out over a bounded worker
// pool and instruments each check with logs, spans and metrics.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/observability"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/report"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/stylecheck"
)

// Check sources, used as the metrics "source" attribute.
const (
	SourceCLI   = "cli"
	SourceWatch = "watch"
	SourceMCP   = "mcp"
)

const (
	defaultWorkers = 4
	spanCheck      = "stylecheck.check"
)

// Deps holds injectable dependencies. Zero-value fields use defaults.
type Deps struct {
	// FS is the file system checks read from. Nil uses the host file system.
	FS stylecheck.FileSystem

	// Observer receives per-check notifications. Nil disables them.
	Observer stylecheck.Observer

	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger

	// Tracer is an optional OTel tracer for per-check spans. Nil disables tracing.
	Tracer trace.Tracer

	// Metrics is an optional recorder. Nil disables per-check metrics.
	Metrics *observability.CheckMetrics
}

// Options tunes a Runner.
type Options struct {
	// Workers bounds concurrent checks. Zero or negative uses 4.
	Workers int

	// MaxFileSize skips walked files larger than this many bytes. Zero
	// disables the limit. Explicitly named files are never skipped.
	MaxFileSize uint64

	// Source names the host for metrics.
	Source string
}

// Request is one style file to check.
type Request struct {
	Path string

	// Text is the in-memory style file content. Nil reads it from disk.
	Text *string
}

// Runner checks style files. It is safe for concurrent use.
type Runner struct {
	checker *stylecheck.Checker
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *observability.CheckMetrics
	opts    Options
}

// New creates a Runner.
func New(deps Deps, opts Options) *Runner {
	var checkerOpts []stylecheck.Option
	if deps.Observer != nil {
		checkerOpts = append(checkerOpts, stylecheck.WithObserver(deps.Observer))
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tracer := deps.Tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer("")
	}

	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}

	if opts.Source == "" {
		opts.Source = SourceCLI
	}

	return &Runner{
		checker: stylecheck.NewChecker(deps.FS, checkerOpts...),
		logger:  logger,
		tracer:  tracer,
		metrics: deps.Metrics,
		opts:    opts,
	}
}

// Run expands paths and checks every resulting style file.
func (r *Runner) Run(ctx context.Context, paths []string) (*report.Report, error) {
	requests, err := r.Expand(paths)
	if err != nil {
		return nil, err
	}

	return r.CheckAll(ctx, requests), nil
}

// CheckAll checks requests over the worker pool. Entries keep request order.
func (r *Runner) CheckAll(ctx context.Context, requests []Request) *report.Report {
	entries := make([]report.Entry, len(requests))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.opts.Workers)

	for i, req := range requests {
		group.Go(func() error {
			entries[i] = r.CheckOne(groupCtx, req)

			return nil
		})
	}

	// Workers never return errors; failures are recorded in their entries.
	_ = group.Wait()

	return report.New(entries)
}

// CheckOne checks a single style file. Failures are reported in the entry.
func (r *Runner) CheckOne(ctx context.Context, req Request) report.Entry {
	ctx, span := r.tracer.Start(ctx, spanCheck,
		trace.WithAttributes(attribute.String("style.path", req.Path)),
	)
	defer span.End()

	if r.metrics != nil {
		done := r.metrics.TrackInflight(ctx, r.opts.Source)
		defer done()
	}

	start := time.Now()
	entry := r.check(ctx, req)
	elapsed := time.Since(start)

	span.SetAttributes(
		attribute.String("check.status", string(entry.Status)),
		attribute.Int("check.unused", len(entry.Unused)),
	)

	if r.metrics != nil {
		r.metrics.RecordCheck(ctx, r.opts.Source, string(entry.Status), len(entry.Unused), elapsed)
	}

	switch entry.Status {
	case report.StatusError:
		span.SetStatus(codes.Error, entry.Error)
		r.logger.WarnContext(ctx, "style check failed", "path", req.Path, "error", entry.Error)
	case report.StatusSkipped:
		r.logger.DebugContext(ctx, "style check skipped", "path", req.Path, "reason", entry.SkipReason)
	case report.StatusUnused:
		r.logger.InfoContext(ctx, "unused style variables",
			"path", req.Path, "sibling", entry.Sibling, "unused", entry.Unused, "duration", elapsed)
	case report.StatusClean:
		r.logger.DebugContext(ctx, "style check clean", "path", req.Path, "duration", elapsed)
	}

	return entry
}

func (r *Runner) check(ctx context.Context, req Request) report.Entry {
	err := ctx.Err()
	if err != nil {
		return report.FromError(req.Path, fmt.Errorf("check canceled: %w", err))
	}

	var result *stylecheck.Result
	if req.Text != nil {
		result, err = r.checker.Check(req.Path, req.Text)
	} else {
		result, err = r.checker.CheckFile(req.Path)
	}

	if err != nil {
		trace.SpanFromContext(ctx).RecordError(err)

		return report.FromError(req.Path, err)
	}

	return report.FromResult(result)
}
