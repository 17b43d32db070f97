package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	cfg, err := parseOptions(map[string][]string{}, nil)
	require.NoError(t, err)
	require.Equal(t, treeRB, cfg.tree)
	require.False(t, cfg.bench)
	require.Equal(t, "INFO", cfg.logLevel)
	require.Equal(t, 1, cfg.benchCfg.Scale)
	require.Equal(t, 1, cfg.benchCfg.Workers)

	cfg, err = parseOptions(map[string][]string{
		"tree":    {"rb", "avl"},
		"bench":   {""},
		"scale":   {"100"},
		"workers": {"4"},
		"quiet":   {""},
		"help":    {""},
	}, nil)
	require.NoError(t, err)
	require.Equal(t, treeAVL, cfg.tree)
	require.True(t, cfg.bench)
	require.True(t, cfg.quiet)
	require.True(t, cfg.help)
	require.Equal(t, "ERROR", cfg.logLevel)
	require.Equal(t, 100, cfg.benchCfg.Scale)
	require.Equal(t, 4, cfg.benchCfg.Workers)

	cfg, err = parseOptions(map[string][]string{"log-level": {"warn"}, "quiet": {""}}, nil)
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.logLevel)
}

func TestParseOptions_Errors(t *testing.T) {
	testcases := []struct {
		name      string
		options   map[string][]string
		arguments []string
	}{
		{name: "unknown tree", options: map[string][]string{"tree": {"btree"}}},
		{name: "zero scale", options: map[string][]string{"scale": {"0"}}},
		{name: "bad workers", options: map[string][]string{"workers": {"many"}}},
		{name: "bad level", options: map[string][]string{"log-level": {"trace"}}},
		{name: "stray argument", options: map[string][]string{}, arguments: []string{"extra"}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			_, err := parseOptions(tc.options, tc.arguments)
			require.Error(tt, err)
		})
	}
	require.Contains(t, usage("xtree"), "usage: xtree")
}
