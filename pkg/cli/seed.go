package cli

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/campus-desk/caseinbox/pkg/cli/config"
	"github.com/campus-desk/caseinbox/pkg/service/seed"
	"github.com/campus-desk/caseinbox/pkg/utils/logging"
	"github.com/campus-desk/caseinbox/pkg/utils/safe"
)

func cmdSeed() *cli.Command {
	var count int
	var seedValue int
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "count",
			Usage:       "Number of cases to generate",
			Value:       seed.DefaultCaseCount,
			Sources:     cli.EnvVars("CASEINBOX_SEED_COUNT"),
			Destination: &count,
		},
		&cli.IntFlag{
			Name:        "seed-value",
			Usage:       "Deterministic seed for data generation",
			Value:       42,
			Sources:     cli.EnvVars("CASEINBOX_SEED_VALUE"),
			Destination: &seedValue,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Generate demo cases and load them into the repository",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			start := time.Now()
			total, err := seed.Load(ctx, repo, uint64(seedValue), count, time.Now().UTC())
			if err != nil {
				return goerr.Wrap(err, "failed to load seed data")
			}

			logging.Default().Info("Seed data loaded",
				"cases", total,
				"seed", seedValue,
				"elapsed", time.Since(start),
			)
			return nil
		},
	}
}
