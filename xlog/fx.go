package xlog

import (
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// FxXLogger routes the fx lifecycle events into the xlog cores. Successful
// wiring steps are debug logs, the lifecycle transitions are info logs.
type FxXLogger struct {
	logger XLogger
}

func moduleField(name string) zap.Field {
	if name == "" {
		return zap.Skip()
	}
	return zap.String("module", name)
}

func (l *FxXLogger) LogEvent(event fxevent.Event) {
	if l == nil || l.logger == nil {
		return
	}

	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		l.logger.Debug("hook start executing",
			zap.String("function", e.FunctionName),
			zap.String("caller", e.CallerName),
		)
	case *fxevent.OnStartExecuted:
		fields := []zap.Field{
			zap.String("function", e.FunctionName),
			zap.String("caller", e.CallerName),
			zap.Duration("in", e.Runtime),
		}
		if e.Err != nil {
			l.logger.Error(e.Err, "hook start failed", fields...)
			return
		}
		l.logger.Debug("hook start executed", fields...)
	case *fxevent.OnStopExecuting:
		l.logger.Debug("hook stop executing",
			zap.String("function", e.FunctionName),
			zap.String("caller", e.CallerName),
		)
	case *fxevent.OnStopExecuted:
		fields := []zap.Field{
			zap.String("function", e.FunctionName),
			zap.String("caller", e.CallerName),
			zap.Duration("in", e.Runtime),
		}
		if e.Err != nil {
			l.logger.Error(e.Err, "hook stop failed", fields...)
			return
		}
		l.logger.Debug("hook stop executed", fields...)
	case *fxevent.Supplied:
		if e.Err != nil {
			l.logger.Error(e.Err, "supply failed",
				zap.String("type", e.TypeName),
				moduleField(e.ModuleName),
			)
			return
		}
		l.logger.Debug("supplied", zap.String("type", e.TypeName), moduleField(e.ModuleName))
	case *fxevent.Provided:
		for _, rtype := range e.OutputTypeNames {
			l.logger.Debug("provided",
				zap.String("type", rtype),
				zap.String("constructor", e.ConstructorName),
				zap.Bool("private", e.Private),
				moduleField(e.ModuleName),
			)
		}
		if e.Err != nil {
			l.logger.Error(e.Err, "provide failed", moduleField(e.ModuleName))
		}
	case *fxevent.Replaced:
		for _, rtype := range e.OutputTypeNames {
			l.logger.Debug("replaced", zap.String("type", rtype), moduleField(e.ModuleName))
		}
		if e.Err != nil {
			l.logger.Error(e.Err, "replace failed", moduleField(e.ModuleName))
		}
	case *fxevent.Decorated:
		for _, rtype := range e.OutputTypeNames {
			l.logger.Debug("decorated",
				zap.String("type", rtype),
				zap.String("decorator", e.DecoratorName),
				moduleField(e.ModuleName),
			)
		}
		if e.Err != nil {
			l.logger.Error(e.Err, "decorate failed", moduleField(e.ModuleName))
		}
	case *fxevent.Invoking:
		l.logger.Debug("invoking", zap.String("function", e.FunctionName), moduleField(e.ModuleName))
	case *fxevent.Invoked:
		if e.Err != nil {
			l.logger.Error(e.Err, "invoke failed",
				zap.String("function", e.FunctionName),
				zap.String("trace", e.Trace),
				moduleField(e.ModuleName),
			)
		}
	case *fxevent.Stopping:
		l.logger.Info("stopping", zap.String("signal", e.Signal.String()))
	case *fxevent.Stopped:
		if e.Err != nil {
			l.logger.Error(e.Err, "stop failed")
		}
	case *fxevent.RollingBack:
		l.logger.Warn("start failed, rolling back", zap.Error(e.StartErr))
	case *fxevent.RolledBack:
		if e.Err != nil {
			l.logger.Error(e.Err, "rollback failed")
		}
	case *fxevent.Started:
		if e.Err != nil {
			l.logger.Error(e.Err, "start failed")
			return
		}
		l.logger.Info("running")
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			l.logger.Error(e.Err, "custom logger initialization failed")
			return
		}
		l.logger.Debug("custom logger initialized", zap.String("constructor", e.ConstructorName))
	}
}

func NewFxXLogger(logger XLogger) *FxXLogger {
	return &FxXLogger{logger: newComponentLogger(logger, "Fx")}
}
