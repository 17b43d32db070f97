package main

import (
	"fmt"
	"strconv"

	"github.com/bitmark-inc/getoptions"

	"github.com/benz9527/xtree/lib/bench"
	"github.com/benz9527/xtree/xlog"
)

const (
	treeAVL = "avl"
	treeRB  = "rb"
)

var flags = []getoptions.Option{
	{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
	{Long: "tree", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 't'},
	{Long: "bench", HasArg: getoptions.NO_ARGUMENT, Short: 'b'},
	{Long: "scale", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 's'},
	{Long: "workers", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'w'},
	{Long: "metrics", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	{Long: "log-level", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'l'},
	{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
}

func usage(program string) string {
	return fmt.Sprintf("usage: %s [--help] [--tree=avl|rb] [--bench [--scale=N] [--workers=N]] [--metrics] [--log-level=LEVEL] [--quiet]", program)
}

type cliConfig struct {
	help     bool
	tree     string
	bench    bool
	metrics  bool
	quiet    bool
	logLevel string
	benchCfg bench.Config
}

// lastValue returns the last occurrence of a repeated option.
func lastValue(options map[string][]string, name string) (string, bool) {
	values := options[name]
	if len(values) == 0 {
		return "", false
	}
	return values[len(values)-1], true
}

func positiveInt(options map[string][]string, name string, def int) (int, error) {
	s, ok := lastValue(options, name)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("--%s expects a positive integer, got %q", name, s)
	}
	return n, nil
}

func parseOptions(options map[string][]string, arguments []string) (cliConfig, error) {
	cfg := cliConfig{
		help:     len(options["help"]) > 0,
		bench:    len(options["bench"]) > 0,
		metrics:  len(options["metrics"]) > 0,
		quiet:    len(options["quiet"]) > 0,
		tree:     treeRB,
		logLevel: xlog.LogLevelInfo.String(),
		benchCfg: bench.DefaultConfig(),
	}
	if len(arguments) > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %v", arguments)
	}

	if t, ok := lastValue(options, "tree"); ok {
		switch t {
		case treeAVL, treeRB:
			cfg.tree = t
		default:
			return cfg, fmt.Errorf("--tree expects avl or rb, got %q", t)
		}
	}

	if l, ok := lastValue(options, "log-level"); ok {
		if _, err := xlog.ParseLogLevel(l); err != nil {
			return cfg, err
		}
		cfg.logLevel = l
	} else if cfg.quiet {
		cfg.logLevel = xlog.LogLevelError.String()
	}

	var err error
	if cfg.benchCfg.Scale, err = positiveInt(options, "scale", cfg.benchCfg.Scale); err != nil {
		return cfg, err
	}
	if cfg.benchCfg.Workers, err = positiveInt(options, "workers", cfg.benchCfg.Workers); err != nil {
		return cfg, err
	}
	return cfg, nil
}
