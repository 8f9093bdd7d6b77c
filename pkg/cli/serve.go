package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/campus-desk/caseinbox/pkg/cli/config"
	httpctrl "github.com/campus-desk/caseinbox/pkg/controller/http"
	"github.com/campus-desk/caseinbox/pkg/service/seed"
	"github.com/campus-desk/caseinbox/pkg/usecase"
	"github.com/campus-desk/caseinbox/pkg/utils/logging"
	"github.com/campus-desk/caseinbox/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var seedDemo bool
	var seedCount int
	var seedValue int
	var repoCfg config.Repository
	var slaCfg config.SLA
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CASEINBOX_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "seed-demo",
			Usage:       "Load generated demo cases at startup (development only)",
			Sources:     cli.EnvVars("CASEINBOX_SEED_DEMO"),
			Destination: &seedDemo,
		},
		&cli.IntFlag{
			Name:        "seed-count",
			Usage:       "Number of demo cases to generate with --seed-demo",
			Value:       seed.DefaultCaseCount,
			Sources:     cli.EnvVars("CASEINBOX_SEED_COUNT"),
			Destination: &seedCount,
		},
		&cli.IntFlag{
			Name:        "seed-value",
			Usage:       "Deterministic seed for demo data generation",
			Value:       42,
			Sources:     cli.EnvVars("CASEINBOX_SEED_VALUE"),
			Destination: &seedValue,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slaCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			flush, err := sentryCfg.Configure(c.Root().Version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure error reporting")
			}
			defer flush()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			policy, err := slaCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load SLA policy")
			}

			if seedDemo {
				total, err := seed.Load(ctx, repo, uint64(seedValue), seedCount, time.Now().UTC())
				if err != nil {
					return goerr.Wrap(err, "failed to load demo data")
				}
				logging.Default().Info("Loaded demo data", "cases", total, "seed", seedValue)
			}

			uc := usecase.New(repo, usecase.WithSLAPolicy(policy))

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
