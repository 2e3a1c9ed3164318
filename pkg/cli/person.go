package cli

import (
	"context"
	"os"

	"github.com/keystone-lab/keystone/pkg/cli/config"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/keystone-lab/keystone/pkg/usecase"
	"github.com/keystone-lab/keystone/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdPerson() *cli.Command {
	var org string
	var lookbackDays int
	var asJSON bool
	var repoCfg config.Repository
	var analysisCfg config.Analysis

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "org",
			Usage:       "Organization ID to analyze",
			Required:    true,
			Sources:     cli.EnvVars("KEYSTONE_ORG"),
			Destination: &org,
		},
		&cli.IntFlag{
			Name:        "lookback-days",
			Usage:       "Analysis window in days, ending now",
			Value:       usecase.DefaultLookbackDays,
			Sources:     cli.EnvVars("KEYSTONE_LOOKBACK_DAYS"),
			Destination: &lookbackDays,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Emit the raw result as JSON instead of a report",
			Destination: &asJSON,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, analysisCfg.Flags()...)

	return &cli.Command{
		Name:      "person",
		Usage:     "Show one person's knowledge profile",
		ArgsUsage: "<person-id>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			personID := c.Args().First()
			if personID == "" {
				return goerr.New("person ID argument is required")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			tuning, err := analysisCfg.Configure()
			if err != nil {
				return err
			}

			uc := usecase.New(repo, usecase.WithAnalysisConfig(tuning))
			profile, err := uc.GetPersonKnowledge(ctx, types.OrgID(org), types.PersonID(personID), usecase.GraphOptions{
				LookbackDays: lookbackDays,
			})
			if err != nil {
				return err
			}
			if profile == nil {
				renderNotFound(os.Stdout, "person", personID)
				return nil
			}

			if asJSON {
				return writeJSON(os.Stdout, profile)
			}
			renderPerson(os.Stdout, profile)
			return nil
		},
	}
}
