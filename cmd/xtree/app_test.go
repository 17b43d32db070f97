package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/benz9527/xtree/lib/bench"
)

func testCLIConfig() cliConfig {
	cfg, _ := parseOptions(map[string][]string{"quiet": {""}}, nil)
	return cfg
}

func TestAppOptionsValidate(t *testing.T) {
	var cmd command
	require.NoError(t, fx.ValidateApp(appOptions(testCLIConfig(), appIO{}, &cmd)))
}

func TestRun_Shell(t *testing.T) {
	cfg := testCLIConfig()
	cfg.tree = treeAVL

	var out bytes.Buffer
	aio := appIO{
		In:  strings.NewReader("i 3\ni 1\ni 0\n"),
		Out: &out,
	}
	require.NoError(t, run(context.Background(), cfg, aio))
	require.True(t, strings.HasSuffix(out.String(), finalTreeHeader+
		"1 height 1 and goes to: 0 and 3. Parent: nil.\n"+
		"0 height 0 and goes to: nil and nil. Parent: 1.\n"+
		"3 height 0 and goes to: nil and nil. Parent: 1.\n"))
}

func TestRun_BenchWithMetrics(t *testing.T) {
	cfg := testCLIConfig()
	cfg.bench = true
	cfg.metrics = true
	cfg.benchCfg = bench.DefaultConfig()
	cfg.benchCfg.Scale = 10_000

	var out, metrics bytes.Buffer
	aio := appIO{
		In:      strings.NewReader(""),
		Out:     &out,
		Metrics: &metrics,
	}
	require.NoError(t, run(context.Background(), cfg, aio))
	require.Contains(t, out.String(), "Avl Tree took ")
	require.Contains(t, out.String(), "Red Black Tree took ")
	require.Contains(t, out.String(), "gods treeset took ")
	require.Contains(t, metrics.String(), "xtree.bench.workload.duration")
}
