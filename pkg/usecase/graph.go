package usecase

import (
	"context"
	"time"

	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/keystone-lab/keystone/pkg/service/knowledge"
	"github.com/keystone-lab/keystone/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// BuildKnowledgeGraph runs the full discovery → scoring → distribution
// pipeline over the lookback window and returns the resulting graph.
// An organization with no people yields an empty graph, not an error; only
// wholesale unavailability of the directory or event store fails the run.
func (uc *UseCases) BuildKnowledgeGraph(ctx context.Context, orgID types.OrgID, opts GraphOptions) (*model.KnowledgeGraph, error) {
	opts = opts.withDefaults()
	if err := orgID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid organization ID", goerr.T(types.TagInvalidOption))
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -opts.LookbackDays)

	cacheKey := graphCacheKey(orgID, from, now, opts)
	if graph, ok := uc.graphCache.get(cacheKey); ok {
		logging.From(ctx).Debug("knowledge graph served from cache", "org", orgID)
		return graph, nil
	}

	graph, err := uc.buildGraph(ctx, orgID, from, now, opts)
	if err != nil {
		return nil, err
	}

	uc.graphCache.set(cacheKey, graph)
	return graph, nil
}

func (uc *UseCases) buildGraph(ctx context.Context, orgID types.OrgID, from, to time.Time, opts GraphOptions) (*model.KnowledgeGraph, error) {
	var domains []*model.KnowledgeDomain
	var err error
	if len(opts.CustomDomains) > 0 {
		domains = knowledge.Normalize(opts.CustomDomains)
	} else {
		domains, err = uc.discoverer.Discover(ctx, orgID, from, to, opts.IncludeExternalDomains)
		if err != nil {
			return nil, err
		}
	}

	persons, err := uc.repo.Directory().ListPeople(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list people", goerr.V("orgID", orgID))
	}

	matrix, err := uc.builder.Build(ctx, orgID, persons, domains, from, to, opts.MinActivityThreshold)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build expertise matrix", goerr.V("orgID", orgID))
	}

	dist := knowledge.Analyze(matrix, domains, persons)

	graph := &model.KnowledgeGraph{
		ID:                    model.NewGraphID(),
		OrganizationID:        orgID,
		Domains:               domains,
		Experts:               dist.Experts,
		Dependencies:          dist.Dependencies,
		OrganizationCoverage:  dist.OrganizationCoverage,
		SinglePointsOfFailure: dist.SinglePointsOfFailure,
		WindowFrom:            from,
		WindowTo:              to,
		GeneratedAt:           time.Now().UTC(),
	}

	logging.From(ctx).Info("knowledge graph built",
		"org", orgID,
		"domains", len(graph.Domains),
		"experts", len(graph.Experts),
		"dependencies", len(graph.Dependencies),
		"spofs", len(graph.SinglePointsOfFailure),
	)

	return graph, nil
}
