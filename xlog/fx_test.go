package xlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

type fxTestDep struct{ name string }

func TestFxXLogger(t *testing.T) {
	logger, w := newTestMemLogger(t, WithXLoggerLevel(LogLevelDebug))

	var nilLogger *FxXLogger
	nilLogger.LogEvent(&fxevent.Started{})

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return NewFxXLogger(logger)
		}),
		fx.Provide(func() *fxTestDep { return &fxTestDep{name: "dep"} }),
		fx.Invoke(func(lc fx.Lifecycle, dep *fxTestDep) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return nil
				},
			})
		}),
	)
	require.NoError(t, app.Err())
	require.NoError(t, app.Start(context.Background()))
	require.NoError(t, app.Stop(context.Background()))

	out := w.String()
	require.Contains(t, out, `"component":"Fx"`)
	require.Contains(t, out, `"msg":"provided"`)
	require.Contains(t, out, `"msg":"invoking"`)
	require.Contains(t, out, `"msg":"running"`)
	require.Contains(t, out, `"msg":"hook start executed"`)

	w.Reset()
	fl := NewFxXLogger(logger)
	fl.LogEvent(&fxevent.Started{Err: errors.New("start")})
	fl.LogEvent(&fxevent.RollingBack{StartErr: errors.New("rollback")})
	fl.LogEvent(&fxevent.Invoked{FunctionName: "fn", Err: errors.New("invoke"), ModuleName: "xtree"})
	out = w.String()
	require.Contains(t, out, `"error":"start"`)
	require.Contains(t, out, "rolling back")
	require.Contains(t, out, `"module":"xtree"`)
}
