package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/keystone-lab/keystone/pkg/utils/logging"
)

// coverageTarget is the fraction of a domain's expertise mass that must stay
// in-house; the bus factor is the minimum head count reaching it.
const coverageTarget = 0.8

// CalculateOrganizationBusFactor builds (or reuses) the knowledge graph and
// rolls it up into the organization-wide risk picture: per-domain bus
// factors, the SPOF list with impact estimates, the knowledge distribution
// health score and actionable recommendations.
func (uc *UseCases) CalculateOrganizationBusFactor(ctx context.Context, orgID types.OrgID, opts BusFactorOptions) (*model.OrganizationBusFactor, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	graph, err := uc.BuildKnowledgeGraph(ctx, orgID, opts.graphOptions())
	if err != nil {
		return nil, err
	}

	scores := make([]*model.BusFactorScore, 0, len(graph.Domains))
	for _, domain := range graph.Domains {
		scores = append(scores, domainBusFactor(graph, domain, opts))
	}

	spofs := assembleSPOFs(graph, scores, opts)

	result := &model.OrganizationBusFactor{
		OrganizationID:             orgID,
		OverallBusFactor:           overallBusFactor(graph, scores),
		DomainScores:               scores,
		SinglePointsOfFailure:      spofs,
		KnowledgeDistributionScore: distributionScore(graph, scores, len(spofs)),
		AnalyzedAt:                 time.Now().UTC(),
	}
	result.RiskLevel = types.RiskLevelFromBusFactor(result.OverallBusFactor)
	result.Recommendations = recommendations(result)

	logging.From(ctx).Info("organization bus factor calculated",
		"org", orgID,
		"bus_factor", result.OverallBusFactor,
		"risk", result.RiskLevel,
		"spofs", len(spofs),
	)

	return result, nil
}

// CalculateDomainBusFactor scores a single domain. An unknown domain yields
// (nil, nil), not an error.
func (uc *UseCases) CalculateDomainBusFactor(ctx context.Context, orgID types.OrgID, domainID types.DomainID, opts BusFactorOptions) (*model.BusFactorScore, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	graph, err := uc.BuildKnowledgeGraph(ctx, orgID, opts.graphOptions())
	if err != nil {
		return nil, err
	}

	domain := graph.Domain(domainID)
	if domain == nil {
		return nil, nil
	}
	return domainBusFactor(graph, domain, opts), nil
}

// rankedExpert pairs a dependency edge with the expert's raw score
type rankedExpert struct {
	dep   model.KnowledgeDependency
	name  string
	score float64
}

// rankDomainExperts returns the domain's experts sorted by dependency
// strength descending, ties broken by person ID for determinism.
func rankDomainExperts(graph *model.KnowledgeGraph, domainID types.DomainID) []rankedExpert {
	deps := graph.DomainDependencies(domainID)

	ranked := make([]rankedExpert, 0, len(deps))
	for _, dep := range deps {
		re := rankedExpert{dep: dep}
		if expert := graph.Expert(dep.PersonID); expert != nil {
			re.name = expert.Name
			for _, de := range expert.Domains {
				if de.DomainID == domainID {
					re.score = de.ExpertiseScore
					break
				}
			}
		}
		ranked = append(ranked, re)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].dep.DependencyStrength != ranked[j].dep.DependencyStrength {
			return ranked[i].dep.DependencyStrength > ranked[j].dep.DependencyStrength
		}
		return ranked[i].dep.PersonID < ranked[j].dep.PersonID
	})
	return ranked
}

// domainBusFactor runs the greedy minimum-cover walk: experts ordered by
// dependency strength are accumulated until 80% of the domain's expertise
// mass is covered. Only experts at or above the expertise threshold count.
func domainBusFactor(graph *model.KnowledgeGraph, domain *model.KnowledgeDomain, opts BusFactorOptions) *model.BusFactorScore {
	ranked := rankDomainExperts(graph, domain.ID)

	busFactor := 0
	coverage := 0.0
	qualified := 0
	for _, re := range ranked {
		if re.score < opts.ExpertiseThreshold {
			continue
		}
		qualified++
	}
	for _, re := range ranked {
		if re.score < opts.ExpertiseThreshold {
			continue
		}
		busFactor++
		coverage += re.dep.DependencyStrength
		if coverage >= coverageTarget {
			break
		}
	}
	if coverage > 1 {
		coverage = 1
	}

	redundancy := 0.0
	if qualified > 1 {
		redundancy = math.Min(1, float64(qualified-1)/3)
	}

	keyExperts := make([]model.KeyExpert, 0, 5)
	for _, re := range ranked {
		if len(keyExperts) == 5 {
			break
		}
		keyExperts = append(keyExperts, model.KeyExpert{
			PersonID:           re.dep.PersonID,
			Name:               re.name,
			ExpertiseScore:     re.score,
			DependencyStrength: re.dep.DependencyStrength,
		})
	}

	score := &model.BusFactorScore{
		DomainID:   domain.ID,
		DomainName: domain.Name,
		BusFactor:  busFactor,
		RiskLevel:  types.RiskLevelFromBusFactor(busFactor),
		Coverage:   coverage,
		Redundancy: redundancy,
		KeyExperts: keyExperts,
	}
	score.VulnerabilityAssessment = vulnerabilityAssessment(score, ranked)
	return score
}

func vulnerabilityAssessment(score *model.BusFactorScore, ranked []rankedExpert) string {
	switch {
	case score.BusFactor == 0:
		return fmt.Sprintf("No identified experts for %s; this knowledge may be undocumented or held outside the organization.", score.DomainName)
	case score.BusFactor == 1:
		top := ranked[0]
		name := top.name
		if name == "" {
			name = top.dep.PersonID.String()
		}
		return fmt.Sprintf("%s holds %.0f%% of the expertise in %s; losing this one person would remove most of the domain's knowledge.",
			name, top.dep.DependencyStrength*100, score.DomainName)
	case score.BusFactor == 2:
		return fmt.Sprintf("Only two people sustain %s; losing both would remove over 80%% of its expertise.", score.DomainName)
	default:
		return fmt.Sprintf("Knowledge of %s is distributed; %d people must leave before 80%% of its expertise is lost.",
			score.DomainName, score.BusFactor)
	}
}

// overallBusFactor weights each domain's bus factor by its type's blast
// radius and takes the minimum: the organization is only as resilient as its
// weakest-covered important domain.
func overallBusFactor(graph *model.KnowledgeGraph, scores []*model.BusFactorScore) int {
	minWeighted := math.Inf(1)
	for _, score := range scores {
		domain := graph.Domain(score.DomainID)
		if domain == nil {
			continue
		}
		weighted := float64(score.BusFactor) / domain.Type.Weight()
		if weighted < minWeighted {
			minWeighted = weighted
		}
	}
	if math.IsInf(minWeighted, 1) {
		return 0
	}
	return int(math.Round(minWeighted))
}

// assembleSPOFs unions (a) every unique expert and (b) every dominant
// primary expert of a domain whose bus factor is exactly 1, accumulating
// domains per person instead of duplicating entries.
func assembleSPOFs(graph *model.KnowledgeGraph, scores []*model.BusFactorScore, opts BusFactorOptions) []*model.SinglePointOfFailure {
	byPerson := make(map[types.PersonID]*model.SinglePointOfFailure)
	domainSeen := make(map[types.PersonID]map[string]bool)
	var order []types.PersonID

	addDomain := func(personID types.PersonID, domainName string) {
		entry, ok := byPerson[personID]
		if !ok {
			entry = &model.SinglePointOfFailure{PersonID: personID}
			if expert := graph.Expert(personID); expert != nil {
				entry.Name = expert.Name
			}
			byPerson[personID] = entry
			domainSeen[personID] = make(map[string]bool)
			order = append(order, personID)
		}
		if domainSeen[personID][domainName] {
			return
		}
		domainSeen[personID][domainName] = true
		entry.UniqueDomains = append(entry.UniqueDomains, domainName)
	}

	for _, expert := range graph.Experts {
		for _, de := range expert.Domains {
			if de.IsUniqueExpert {
				addDomain(expert.PersonID, de.DomainName)
			}
		}
	}

	for _, score := range scores {
		if score.BusFactor != 1 {
			continue
		}
		ranked := rankDomainExperts(graph, score.DomainID)
		if len(ranked) == 0 {
			continue
		}
		top := ranked[0]
		if top.dep.DependencyStrength >= opts.PrimaryThreshold {
			addDomain(top.dep.PersonID, score.DomainName)
		}
	}

	var totalKnowledge float64
	for _, expert := range graph.Experts {
		totalKnowledge += expert.OverallKnowledgeScore
	}

	spofs := make([]*model.SinglePointOfFailure, 0, len(order))
	for _, personID := range order {
		entry := byPerson[personID]
		if len(entry.UniqueDomains) >= 2 {
			entry.Criticality = types.CriticalityCritical
		} else {
			entry.Criticality = types.CriticalityHigh
		}
		entry.ImpactIfLost = assessImpact(graph, personID, totalKnowledge)
		spofs = append(spofs, entry)
	}

	sort.SliceStable(spofs, func(i, j int) bool {
		ci := spofs[i].Criticality == types.CriticalityCritical
		cj := spofs[j].Criticality == types.CriticalityCritical
		if ci != cj {
			return ci
		}
		if len(spofs[i].UniqueDomains) != len(spofs[j].UniqueDomains) {
			return len(spofs[i].UniqueDomains) > len(spofs[j].UniqueDomains)
		}
		return spofs[i].PersonID < spofs[j].PersonID
	})

	return spofs
}

// assessImpact estimates the damage of losing one person: breadth from the
// domains they lead, depth from the domains only they know.
func assessImpact(graph *model.KnowledgeGraph, personID types.PersonID, totalKnowledge float64) model.ImpactAssessment {
	expert := graph.Expert(personID)
	if expert == nil {
		return model.ImpactAssessment{Description: "person has no scored knowledge"}
	}

	domainsAffected := 0
	processesAffected := 0
	for _, de := range expert.Domains {
		if !de.IsUniqueExpert && !de.IsPrimaryExpert {
			continue
		}
		domainsAffected++
		if domain := graph.Domain(de.DomainID); domain != nil && domain.Type == types.DomainTypeProcess {
			processesAffected++
		}
	}

	lossPercent := 0.0
	if totalKnowledge > 0 {
		lossPercent = expert.OverallKnowledgeScore / totalKnowledge * 100
	}

	// Baseline 4 weeks, scaled for breadth and depth of what is lost
	recoveryWeeks := int(math.Round(4 *
		(1 + 0.5*float64(domainsAffected)) *
		(1 + 0.75*float64(expert.UniqueKnowledgeCount))))

	name := expert.Name
	if name == "" {
		name = personID.String()
	}

	return model.ImpactAssessment{
		DomainsAffected:        domainsAffected,
		ProcessesAffected:      processesAffected,
		KnowledgeLossPercent:   lossPercent,
		EstimatedRecoveryWeeks: recoveryWeeks,
		Description: fmt.Sprintf("Losing %s would affect %d domains (%d processes), remove %.1f%% of organizational knowledge, and take an estimated %d weeks to recover.",
			name, domainsAffected, processesAffected, lossPercent, recoveryWeeks),
	}
}

// distributionScore is the 0-100 organizational health metric combining
// redundancy, coverage breadth and SPOF density.
func distributionScore(graph *model.KnowledgeGraph, scores []*model.BusFactorScore, spofCount int) float64 {
	if len(scores) == 0 {
		return 0
	}

	var redundancySum float64
	resilient := 0
	for _, s := range scores {
		redundancySum += s.Redundancy
		if s.BusFactor > 1 {
			resilient++
		}
	}
	avgRedundancy := redundancySum / float64(len(scores))
	resilientRatio := float64(resilient) / float64(len(scores))
	spofPenalty := math.Max(0, 1-float64(spofCount)*0.1)

	return avgRedundancy*25 + resilientRatio*30 + graph.OrganizationCoverage*25 + spofPenalty*20
}

// recommendations renders the deduplicated, ordered action list
func recommendations(result *model.OrganizationBusFactor) []string {
	var recs []string
	seen := make(map[string]bool)
	add := func(rec string) {
		if seen[rec] {
			return
		}
		seen[rec] = true
		recs = append(recs, rec)
	}

	if result.RiskLevel == types.RiskLevelCritical || result.RiskLevel == types.RiskLevelHigh {
		add(fmt.Sprintf("URGENT: organization bus factor is %d (%s risk); prioritize knowledge transfer immediately.",
			result.OverallBusFactor, result.RiskLevel))
	}

	for i, spof := range result.SinglePointsOfFailure {
		if i == 3 {
			break
		}
		name := spof.Name
		if name == "" {
			name = spof.PersonID.String()
		}
		add(fmt.Sprintf("Assign and train a backup for %s in: %s.", name, joinDomains(spof.UniqueDomains)))
	}

	for _, score := range result.DomainScores {
		if score.RiskLevel != types.RiskLevelCritical {
			continue
		}
		add(fmt.Sprintf("Document and cross-train the %q domain (bus factor %d).", score.DomainName, score.BusFactor))
	}

	if len(recs) == 0 {
		add("Knowledge is well distributed across the organization; keep running periodic reviews.")
	}

	return recs
}

func joinDomains(domains []string) string {
	switch len(domains) {
	case 0:
		return "their domains"
	case 1:
		return domains[0]
	default:
		out := domains[0]
		for _, d := range domains[1:] {
			out += ", " + d
		}
		return out
	}
}
