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

func cmdGraph() *cli.Command {
	var org string
	var lookbackDays int
	var minActivity float64
	var includeExternal bool
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
			Name:        "min-activity",
			Usage:       "Minimum expertise score for a person to appear in a domain",
			Value:       usecase.DefaultMinActivityThreshold,
			Destination: &minActivity,
		},
		&cli.BoolFlag{
			Name:        "include-external-domains",
			Usage:       "Also discover topic domains from event metadata",
			Destination: &includeExternal,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, analysisCfg.Flags()...)

	return &cli.Command{
		Name:  "graph",
		Usage: "Build the knowledge dependency graph and emit it as JSON",
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
			graph, err := uc.BuildKnowledgeGraph(ctx, types.OrgID(org), usecase.GraphOptions{
				LookbackDays:           lookbackDays,
				MinActivityThreshold:   minActivity,
				IncludeExternalDomains: includeExternal,
			})
			if err != nil {
				return err
			}

			return writeJSON(os.Stdout, graph)
		},
	}
}
