package bench

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/shirou/gopsutil/v3/process"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benz9527/xtree/xlog"
)

const CollectionCtxField = "collection"

type Result struct {
	Name    string
	Elapsed time.Duration
	// Successful finds summed over every workload.
	Found int
	// Resident set size of the whole process right after the suite.
	RSSBytes uint64
	Err      error
}

type Runner struct {
	cfg       Config
	factories []Factory
	workloads []Workload
	logger    xlog.XLogger
	mp        metric.MeterProvider
}

type RunnerOption func(*Runner)

func WithRunnerFactories(factories ...Factory) RunnerOption {
	return func(r *Runner) {
		r.factories = factories
	}
}

func WithRunnerWorkloads(workloads ...Workload) RunnerOption {
	return func(r *Runner) {
		r.workloads = workloads
	}
}

func WithRunnerLogger(logger xlog.XLogger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

func WithRunnerMeterProvider(mp metric.MeterProvider) RunnerOption {
	return func(r *Runner) {
		r.mp = mp
	}
}

func NewRunner(cfg Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg: cfg,
	}
	for _, o := range opts {
		o(r)
	}
	if len(r.factories) == 0 {
		r.factories = DefaultFactories()
	}
	if len(r.workloads) == 0 {
		r.workloads = Workloads()
	}
	if r.logger == nil {
		r.logger = xlog.NewXLogger(
			xlog.WithXLoggerStdErrWriter(),
			xlog.WithXLoggerLevel(xlog.LogLevelWarn),
		)
	}
	if r.mp == nil {
		r.mp = otel.GetMeterProvider()
	}
	return r
}

// Run executes every factory's suite as one pool task. Each suite owns its
// collections, so the suites share nothing but the stats instruments.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	cfg := r.cfg.scaled()
	pool, err := ants.NewPool(
		cfg.Workers,
		ants.WithPreAlloc(true),
		ants.WithLogger(xlog.NewAntsXLogger(r.logger)),
	)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	stats := newBenchStats(r.mp)
	results := make([]Result, len(r.factories))
	var wg sync.WaitGroup
	for i, f := range r.factories {
		results[i].Name = f.Name
		wg.Add(1)
		if err = pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					results[i].Err = fmt.Errorf("[bench] %s suite panic: %v", f.Name, p)
				}
			}()
			results[i] = r.runSuite(ctx, cfg, f, stats)
		}); err != nil {
			wg.Done()
			results[i].Err = err
		}
	}
	wg.Wait()

	var merr error
	for i := range results {
		merr = multierr.Append(merr, results[i].Err)
	}
	return results, merr
}

func (r *Runner) runSuite(ctx context.Context, cfg Config, f Factory, stats *benchStats) Result {
	ctx = xlog.ContextWithField(ctx, CollectionCtxField, f.Name)
	res := Result{Name: f.Name}

	// Allocated before the clock starts.
	collections := make([]Collection, 0, len(r.workloads))
	for range r.workloads {
		collections = append(collections, f.New())
	}

	r.logger.DebugContext(ctx, "suite start", zap.Int("workloads", len(r.workloads)))
	begin := time.Now()
	for i, w := range r.workloads {
		if err := ctx.Err(); err != nil {
			res.Err = fmt.Errorf("[bench] %s suite interrupted before %s: %w", f.Name, w.Name, err)
			break
		}
		wBegin := time.Now()
		found := w.Run(cfg, collections[i])
		elapsed := time.Since(wBegin)
		res.Found += found
		stats.RecordWorkload(ctx, f.Name, w.Name, elapsed, found)
		r.logger.DebugContext(ctx, "workload done",
			zap.String("workload", w.Name),
			zap.Duration("elapsed", elapsed),
			zap.Int("found", found),
			zap.Int("remaining", collections[i].Len()),
		)
	}
	res.Elapsed = time.Since(begin)

	rss, err := processRSS()
	if err != nil {
		r.logger.WarnContext(ctx, "process rss unavailable", zap.Error(err))
	}
	res.RSSBytes = rss
	r.logger.InfoContext(ctx, "suite done",
		zap.Duration("elapsed", res.Elapsed),
		zap.Int("found", res.Found),
		zap.Uint64("rss", res.RSSBytes),
	)
	return res
}

func processRSS() (uint64, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	mi, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return mi.RSS, nil
}

// Report writes one timing line per suite and the total of finds.
func Report(w io.Writer, results []Result) error {
	total := 0
	for _, res := range results {
		if res.Err != nil {
			if _, err := fmt.Fprintf(w, "%s failed: %v\n\n", res.Name, res.Err); err != nil {
				return err
			}
			continue
		}
		total += res.Found
		if _, err := fmt.Fprintf(w, "%s took %dms \n\n", res.Name, res.Elapsed.Milliseconds()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "In total, %d elements were found throughout the progression.\n", total)
	return err
}
