package config

import (
	"context"

	"github.com/keystone-lab/keystone/pkg/domain/interfaces"
	"github.com/keystone-lab/keystone/pkg/repository/firestore"
	"github.com/keystone-lab/keystone/pkg/repository/memory"
	"github.com/keystone-lab/keystone/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend    string
	projectID  string
	databaseID string
	seedFile   string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (firestore or memory)",
			Value:       "firestore",
			Sources:     cli.EnvVars("KEYSTONE_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Sources:     cli.EnvVars("KEYSTONE_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Sources:     cli.EnvVars("KEYSTONE_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "seed-file",
			Usage:       "TOML fixture loaded into the memory backend (memory backend only)",
			Sources:     cli.EnvVars("KEYSTONE_SEED_FILE"),
			Destination: &r.seedFile,
		},
	}
}

// Configure initializes and returns a repository based on the configured
// backend. The caller is responsible for calling Close() on it.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case "firestore":
		if r.projectID == "" {
			return nil, goerr.New("firestore-project-id is required when using firestore backend")
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		return repo, nil

	case "memory":
		repo := memory.New()
		if r.seedFile != "" {
			seed, err := LoadSeed(r.seedFile)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to load seed file", goerr.V("path", r.seedFile))
			}
			seed.Apply(repo)
			logging.Default().Info("Seeded in-memory repository",
				"path", r.seedFile,
				"people", len(seed.People),
				"processes", len(seed.Processes),
				"events", len(seed.Events),
			)
		}
		logging.Default().Info("Using in-memory repository (development mode)")
		return repo, nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}
}
