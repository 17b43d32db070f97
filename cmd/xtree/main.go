package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
)

func main() {
	defer exitwithstatus.Handler()

	program, options, arguments, err := getoptions.GetOS(flags)
	if err != nil {
		exitwithstatus.Message("option parse error: %s", err)
	}

	cfg, err := parseOptions(options, arguments)
	if err != nil {
		exitwithstatus.Message("%s\n%s", err, usage(program))
	}
	if cfg.help {
		exitwithstatus.Message("%s", usage(program))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	aio := appIO{
		In:      os.Stdin,
		Out:     os.Stdout,
		Metrics: os.Stderr,
	}
	if err := run(ctx, cfg, aio); err != nil {
		exitwithstatus.Message("%s: %s", program, err)
	}
}
