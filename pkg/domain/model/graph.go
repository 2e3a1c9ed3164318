package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/keystone-lab/keystone/pkg/domain/types"
)

// GraphID identifies one knowledge-graph snapshot
type GraphID string

// NewGraphID generates a new UUID v4 GraphID
func NewGraphID() GraphID {
	return GraphID(uuid.New().String())
}

// KnowledgeGraph is the complete output of one analysis run: discovered
// domains, ranked experts, the dependency edges between them, and the
// domain-level single points of failure. The graph is rebuilt wholesale per
// invocation; nothing in it is mutated incrementally.
//
// ID and GeneratedAt identify the run, not its content: rebuilding from
// unchanged data yields equal domains, experts, dependencies and coverage
// under fresh run identity.
type KnowledgeGraph struct {
	ID                    GraphID
	OrganizationID        types.OrgID
	Domains               []*KnowledgeDomain
	Experts               []*PersonKnowledge
	Dependencies          []KnowledgeDependency
	OrganizationCoverage  float64 // [0,1]
	SinglePointsOfFailure []types.PersonID
	WindowFrom            time.Time
	WindowTo              time.Time
	GeneratedAt           time.Time
}

// Domain returns the domain with the given ID, or nil
func (g *KnowledgeGraph) Domain(id types.DomainID) *KnowledgeDomain {
	for _, d := range g.Domains {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// Expert returns the PersonKnowledge for the given person, or nil
func (g *KnowledgeGraph) Expert(id types.PersonID) *PersonKnowledge {
	for _, e := range g.Experts {
		if e.PersonID == id {
			return e
		}
	}
	return nil
}

// DomainDependencies returns the dependency edges of one domain
func (g *KnowledgeGraph) DomainDependencies(id types.DomainID) []KnowledgeDependency {
	var deps []KnowledgeDependency
	for _, dep := range g.Dependencies {
		if dep.DomainID == id {
			deps = append(deps, dep)
		}
	}
	return deps
}
