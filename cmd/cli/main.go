package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/dessertai/internal/buildinfo"
	"github.com/dmitrijs2005/dessertai/internal/client/cli"
	"github.com/dmitrijs2005/dessertai/internal/client/config"
	"github.com/dmitrijs2005/dessertai/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewConsole(os.Stderr, logging.ParseLevel(cfg.LogLevel))
	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// The REPL only notices ctx between lines, so a signal also closes the
	// store and exits.
	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		select {
		case <-done:
			return
		default:
		}
		_ = app.Close()
		os.Exit(130)
	}()

	err = app.Run(ctx)
	close(done)
	if err != nil {
		log.Printf("%v", err)
	}
}
