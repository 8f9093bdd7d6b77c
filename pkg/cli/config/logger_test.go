package config_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/campus-desk/caseinbox/pkg/cli/config"
)

func configureLogger(t *testing.T, args ...string) error {
	t.Helper()

	var cfg config.Logger
	var configureErr error
	cmd := &cli.Command{
		Name:  "test",
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			closer, err := cfg.Configure()
			if err != nil {
				configureErr = err
				return nil
			}
			closer()
			return nil
		},
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...))).Required()
	return configureErr
}

func TestLoggerConfigure(t *testing.T) {
	gt.NoError(t, configureLogger(t))
	gt.NoError(t, configureLogger(t, "--log-level", "debug", "--log-format", "json"))
	gt.Error(t, configureLogger(t, "--log-level", "verbose"))
	gt.Error(t, configureLogger(t, "--log-format", "xml"))
}

func TestLoggerFileOutput(t *testing.T) {
	path := t.TempDir() + "/app.log"
	gt.NoError(t, configureLogger(t, "--log-output", path, "--log-format", "json"))
}
