package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/recuperacredito/recupera-go/internal/dataset"
	"github.com/recuperacredito/recupera-go/internal/logger"
	"github.com/recuperacredito/recupera-go/internal/server"
)

// ServeCmd returns the serve command.
func ServeCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the portfolio analysis API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "CSV file path or glob pattern (overrides RECUPERA_DATA)",
			},
			&cli.StringSliceFlag{
				Name:  "column",
				Usage: "Extra accepted header spelling, e.g. credit_score=score",
			},
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (overrides RECUPERA_PORT)",
			},
		},
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	env := server.LoadEnv()
	if port := c.String("port"); port != "" {
		env.Port = port
	}
	pattern := c.String("input")
	if pattern == "" {
		pattern = env.DataPattern
	}

	if err := logger.Init(env.Environment); err != nil {
		return err
	}
	defer logger.Sync()

	reader := dataset.NewCSVReader(dataset.ReadOptions{
		Pattern: pattern,
		Columns: cfg.Columns,
	})

	srv := server.New(*cfg, env, reader)

	go func() {
		logger.Info("server starting", "port", env.Port, "source", pattern)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}
