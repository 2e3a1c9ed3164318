package cli

import (
	"context"
	"os"

	"github.com/keystone-lab/keystone/pkg/cli/config"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/keystone-lab/keystone/pkg/usecase"
	"github.com/keystone-lab/keystone/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdAnalyze() *cli.Command {
	var org string
	var lookbackDays int
	var expertiseThreshold float64
	var primaryThreshold float64
	var includeExternal bool
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
		&cli.FloatFlag{
			Name:        "expertise-threshold",
			Usage:       "Minimum expertise score (0-100) to count toward a bus factor",
			Value:       usecase.DefaultExpertiseThreshold,
			Destination: &expertiseThreshold,
		},
		&cli.FloatFlag{
			Name:        "primary-threshold",
			Usage:       "Minimum dependency strength (0-1) for a dominant expert to be a SPOF",
			Value:       usecase.DefaultPrimaryThreshold,
			Destination: &primaryThreshold,
		},
		&cli.BoolFlag{
			Name:        "include-external-domains",
			Usage:       "Also discover topic domains from event metadata",
			Destination: &includeExternal,
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
		Name:  "analyze",
		Usage: "Calculate the organization-wide bus factor and SPOF report",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
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
			result, err := uc.CalculateOrganizationBusFactor(ctx, types.OrgID(org), usecase.BusFactorOptions{
				LookbackDays:           lookbackDays,
				ExpertiseThreshold:     expertiseThreshold,
				PrimaryThreshold:       primaryThreshold,
				IncludeExternalDomains: includeExternal,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(os.Stdout, result)
			}
			renderReport(os.Stdout, result)
			return nil
		},
	}
}
