package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/theoremus-urban-solutions/sl-departures/config"
	"github.com/theoremus-urban-solutions/sl-departures/server"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Poll the configured boards and serve their state over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Configuration file path"},
			&cli.IntFlag{Name: "port", Usage: "Listen port (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			port := cfg.Server.Port
			if c.Int("port") != 0 {
				port = c.Int("port")
			}

			group, err := buildGroup(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := group.Start(ctx); err != nil {
				return err
			}

			srv := server.New(port, group)
			srv.Start()

			<-ctx.Done()
			log.Info().Msg("Shutdown signal received")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Server shutdown error")
			}
			group.Close()
			return nil
		},
	}
}
