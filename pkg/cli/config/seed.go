package config

import (
	"os"
	"time"

	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/keystone-lab/keystone/pkg/repository/memory"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// Seed is a TOML fixture for the in-memory backend, used by local runs and
// demos.
type Seed struct {
	Organization string        `toml:"organization"`
	People       []SeedPerson  `toml:"person"`
	Processes    []SeedProcess `toml:"process"`
	Events       []SeedEvent   `toml:"event"`
}

// SeedPerson is one directory person entry
type SeedPerson struct {
	ID         string `toml:"id"`
	Name       string `toml:"name"`
	Email      string `toml:"email"`
	Department string `toml:"department"`
	Title      string `toml:"title"`
}

// SeedProcess is one directory process entry
type SeedProcess struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Owner       string `toml:"owner"`
}

// SeedEvent is one event store entry
type SeedEvent struct {
	ID        string         `toml:"id"`
	Actor     string         `toml:"actor"`
	Type      string         `toml:"type"`
	Timestamp time.Time      `toml:"timestamp"`
	Metadata  map[string]any `toml:"metadata"`
}

// Validate checks the seed for structural problems
func (s *Seed) Validate() error {
	if err := types.OrgID(s.Organization).Validate(); err != nil {
		return goerr.Wrap(err, "invalid seed organization")
	}
	for i, p := range s.People {
		if p.ID == "" {
			return goerr.New("seed person requires an id", goerr.V("index", i))
		}
	}
	for i, p := range s.Processes {
		if p.ID == "" {
			return goerr.New("seed process requires an id", goerr.V("index", i))
		}
	}
	for i, e := range s.Events {
		if e.Actor == "" || e.Type == "" {
			return goerr.New("seed event requires actor and type", goerr.V("index", i))
		}
	}
	return nil
}

// Apply loads the fixture into the in-memory repository
func (s *Seed) Apply(repo *memory.Memory) {
	orgID := types.OrgID(s.Organization)

	for _, p := range s.People {
		repo.AddPerson(orgID, &model.Person{
			ID:         types.PersonID(p.ID),
			Name:       p.Name,
			Email:      p.Email,
			Department: p.Department,
			Title:      p.Title,
		})
	}
	for _, p := range s.Processes {
		repo.AddProcess(orgID, &model.Process{
			ID:          types.ProcessID(p.ID),
			Name:        p.Name,
			Description: p.Description,
			OwnerID:     types.PersonID(p.Owner),
		})
	}
	for _, e := range s.Events {
		repo.AddEvent(&model.Event{
			ID:             e.ID,
			OrganizationID: orgID,
			ActorID:        types.PersonID(e.Actor),
			Type:           e.Type,
			Timestamp:      e.Timestamp,
			Metadata:       e.Metadata,
		})
	}
}

// LoadSeed reads and validates a seed fixture from a TOML file
func LoadSeed(path string) (*Seed, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read seed file", goerr.V("path", path))
	}

	var seed Seed
	if err := toml.Unmarshal(data, &seed); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML seed", goerr.V("path", path))
	}

	if err := seed.Validate(); err != nil {
		return nil, goerr.Wrap(err, "seed validation failed", goerr.V("path", path))
	}

	return &seed, nil
}
