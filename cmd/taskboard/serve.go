package main

import (
	"context"
	"os/signal"
	"syscall"

	"code.cloudfoundry.org/lager"
	"github.com/spf13/cobra"

	"github.com/jackielii/taskboard/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run the web server (default)",
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(conf)
	if err != nil {
		return err
	}

	srv, err := server.New(conf, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", lager.Data{"addr": conf.Addr(), "debug": conf.Debug})
	return srv.Run(ctx)
}
