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

func cmdDomain() *cli.Command {
	var org string
	var lookbackDays int
	var expertiseThreshold float64
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
			Usage:       "Minimum expertise score (0-100) to count toward the bus factor",
			Value:       usecase.DefaultExpertiseThreshold,
			Destination: &expertiseThreshold,
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
		Name:      "domain",
		Usage:     "Score one knowledge domain's bus factor",
		ArgsUsage: "<domain-id>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			domainID := c.Args().First()
			if domainID == "" {
				return goerr.New("domain ID argument is required")
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
			score, err := uc.CalculateDomainBusFactor(ctx, types.OrgID(org), types.DomainID(domainID), usecase.BusFactorOptions{
				LookbackDays:           lookbackDays,
				ExpertiseThreshold:     expertiseThreshold,
				IncludeExternalDomains: includeExternal,
			})
			if err != nil {
				return err
			}
			if score == nil {
				renderNotFound(os.Stdout, "domain", domainID)
				return nil
			}

			if asJSON {
				return writeJSON(os.Stdout, score)
			}
			renderDomainScore(os.Stdout, score)
			return nil
		},
	}
}
