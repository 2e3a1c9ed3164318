package knowledge

import (
	"context"
	"time"

	"github.com/keystone-lab/keystone/pkg/domain/interfaces"
	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/model/config"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/keystone-lab/keystone/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Discoverer produces the candidate set of knowledge domains for one
// organization from directory and event data.
type Discoverer struct {
	repo interfaces.Repository
	cfg  *config.AnalysisConfig
}

// NewDiscoverer creates a domain discoverer
func NewDiscoverer(repo interfaces.Repository, cfg *config.AnalysisConfig) *Discoverer {
	return &Discoverer{repo: repo, cfg: cfg}
}

// Discover returns the de-duplicated domain set: one per known process, one
// per distinct department, and (when includeTopics is set) one per distinct
// topic observed on events in the window, capped to avoid unbounded fan-out.
// An organization with no people or processes yields a partial or empty
// list, never an error.
func (d *Discoverer) Discover(ctx context.Context, orgID types.OrgID, from, to time.Time, includeTopics bool) ([]*model.KnowledgeDomain, error) {
	seen := make(map[types.DomainID]bool)
	var domains []*model.KnowledgeDomain

	add := func(domain *model.KnowledgeDomain) {
		if seen[domain.ID] {
			return
		}
		seen[domain.ID] = true
		domains = append(domains, domain)
	}

	processes, err := d.repo.Directory().ListProcesses(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list processes for domain discovery", goerr.V("orgID", orgID))
	}
	for _, p := range processes {
		add(model.NewProcessDomain(p))
	}

	departments, err := d.repo.Directory().Departments(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list departments for domain discovery", goerr.V("orgID", orgID))
	}
	for _, dept := range departments {
		add(model.NewDepartmentDomain(dept))
	}

	if includeTopics {
		topics, err := d.repo.EventStore().Topics(ctx, orgID, from, to, d.cfg.TopicCap())
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list event topics for domain discovery", goerr.V("orgID", orgID))
		}
		for _, topic := range topics {
			add(model.NewTopicDomain(topic))
		}
	}

	logging.From(ctx).Debug("discovered knowledge domains",
		"org", orgID,
		"domains", len(domains),
		"processes", len(processes),
		"departments", len(departments),
	)

	return domains, nil
}

// Normalize prepares a caller-supplied custom domain list: it bypasses
// discovery entirely, de-duplicates by ID and defaults the type to custom.
func Normalize(custom []*model.KnowledgeDomain) []*model.KnowledgeDomain {
	seen := make(map[types.DomainID]bool)
	var domains []*model.KnowledgeDomain
	for _, d := range custom {
		if d == nil || d.ID == "" || seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		copied := d.Clone()
		if !copied.Type.IsValid() {
			copied.Type = types.DomainTypeCustom
		}
		domains = append(domains, copied)
	}
	return domains
}
