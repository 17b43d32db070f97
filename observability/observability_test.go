package observability

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

func TestAppMeterName(t *testing.T) {
	require.Equal(t, "xtree/app/default", appMeterName(""))
	require.Equal(t, "xtree/app/default", appMeterName("  "))
	require.Equal(t, "xtree/app/bench", appMeterName("bench"))
}

func TestConsoleMetricsExporter(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := NewConsoleMetricsExporter(&buf, time.Hour, time.Second)
	require.NoError(t, err)

	InitAppStats("test")
	counter, err := otel.Meter("xtree/test").Int64Counter("test.counter")
	require.NoError(t, err)
	counter.Add(context.Background(), 3, metric.WithAttributes())

	// Shutdown flushes the pending collection into the writer.
	require.NoError(t, shutdown(context.Background()))
	out := buf.String()
	require.Contains(t, out, "test.counter")
	require.Contains(t, out, "app.core.goroutines")
	require.Contains(t, out, "xtree/app/test")
}
