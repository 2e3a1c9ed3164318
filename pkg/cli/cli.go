package cli

import (
	"context"

	"github.com/keystone-lab/keystone/pkg/cli/config"
	"github.com/keystone-lab/keystone/pkg/utils/errutil"
	"github.com/keystone-lab/keystone/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Run executes the keystone command line
func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var closer func()

	app := &cli.Command{
		Name:    "keystone",
		Usage:   "Organizational knowledge concentration risk analyzer",
		Version: version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Info("Starting keystone", "logger", &loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdAnalyze(),
			cmdGraph(),
			cmdPerson(),
			cmdDomain(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		return errutil.Handle(ctx, err, "failed to run app")
	}

	return nil
}
