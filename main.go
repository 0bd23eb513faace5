package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"participativos/cli"
	"participativos/config"
	"participativos/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(cfg, logger).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
