package main

import (
	"context"
	"io"
	"time"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/lib/bench"
	"github.com/benz9527/xtree/lib/tree"
	"github.com/benz9527/xtree/observability"
	"github.com/benz9527/xtree/xlog"
)

const (
	metricsInterval = 10 * time.Second
	metricsTimeout  = 5 * time.Second
)

type appIO struct {
	In      io.Reader
	Out     io.Writer
	Metrics io.Writer
}

// command is the single action of one CLI run, shell or bench.
type command struct {
	run func(ctx context.Context) error
}

func newLogger(cfg cliConfig) (xlog.XLogger, error) {
	lvl, err := xlog.ParseLogLevel(cfg.logLevel)
	if err != nil {
		return nil, err
	}
	return xlog.NewXLogger(
		xlog.WithXLoggerStdErrWriter(),
		xlog.WithXLoggerEncoder(xlog.PlainText),
		xlog.WithXLoggerLevel(lvl),
		xlog.WithXLoggerContextFieldExtract(bench.CollectionCtxField),
	), nil
}

func newOrderedSet(cfg cliConfig) tree.OrderedSet[int] {
	if cfg.tree == treeAVL {
		return tree.NewAVLTree[int]()
	}
	return tree.NewRBTree[int]()
}

func newCommand(cfg cliConfig, set tree.OrderedSet[int], logger xlog.XLogger, aio appIO) command {
	if cfg.bench {
		return command{run: func(ctx context.Context) error {
			r := bench.NewRunner(cfg.benchCfg, bench.WithRunnerLogger(logger))
			results, err := r.Run(ctx)
			return multierr.Append(err, bench.Report(aio.Out, results))
		}}
	}

	sh := &shell{
		set:    set,
		out:    aio.Out,
		logger: logger,
		quiet:  cfg.quiet,
	}
	return command{run: func(ctx context.Context) error {
		return sh.run(ctx, aio.In)
	}}
}

func registerMaxProcs(lc fx.Lifecycle, logger xlog.XLogger) {
	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Logf(zapcore.DebugLevel, format, args...)
	}))
	if err != nil {
		logger.Warn("GOMAXPROCS left untouched", zap.Error(err))
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			undo()
			return nil
		},
	})
}

func registerMetrics(lc fx.Lifecycle, cfg cliConfig, aio appIO, logger xlog.XLogger) {
	if !cfg.metrics {
		return
	}
	var shutdown func(ctx context.Context) error
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			var err error
			if shutdown, err = observability.NewConsoleMetricsExporter(aio.Metrics, metricsInterval, metricsTimeout); err != nil {
				return err
			}
			observability.InitAppStats("cli")
			logger.Debug("metrics exporter started", zap.Duration("interval", metricsInterval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(ctx)
		},
	})
}

func registerLoggerSync(lc fx.Lifecycle, logger xlog.XLogger) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			// Syncing a terminal stderr may fail, nothing is lost then.
			_ = logger.Sync()
			return nil
		},
	})
}

func appOptions(cfg cliConfig, aio appIO, cmd *command) fx.Option {
	return fx.Options(
		fx.Supply(cfg, aio),
		fx.Provide(
			newLogger,
			newOrderedSet,
			newCommand,
		),
		fx.WithLogger(func(logger xlog.XLogger) fxevent.Logger {
			return xlog.NewFxXLogger(logger)
		}),
		fx.Invoke(
			registerMaxProcs,
			registerMetrics,
			registerLoggerSync,
		),
		fx.Populate(cmd),
	)
}

func run(ctx context.Context, cfg cliConfig, aio appIO) error {
	var cmd command
	app := fx.New(appOptions(cfg, aio, &cmd))
	if err := app.Err(); err != nil {
		return err
	}
	if err := app.Start(ctx); err != nil {
		return err
	}

	runErr := cmd.run(ctx)
	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	return multierr.Append(runErr, app.Stop(stopCtx))
}
