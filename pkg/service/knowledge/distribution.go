package knowledge

import (
	"sort"

	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/types"
)

// Distribution is the analyzed expertise distribution of one organization:
// ranked experts, the dependency edges of every domain, organization-wide
// coverage and the domain-level single points of failure.
type Distribution struct {
	Experts               []*model.PersonKnowledge
	Dependencies          []model.KnowledgeDependency
	OrganizationCoverage  float64
	SinglePointsOfFailure []types.PersonID
}

// wellCoveredStrength is the minimum dependency strength for an expert to
// count toward a domain being "well covered".
const wellCoveredStrength = 0.1

// Analyze ranks experts per domain, derives dependency strength and
// redundancy, flags unique and primary experts, and rolls everything up
// into per-person knowledge profiles.
func Analyze(matrix Matrix, domains []*model.KnowledgeDomain, persons []*model.Person) *Distribution {
	personIndex := make(map[types.PersonID]*model.Person, len(persons))
	for _, p := range persons {
		personIndex[p.ID] = p
	}

	type rankedCell struct {
		personID types.PersonID
		cell     Cell
	}

	// Per-person accumulation, filled domain by domain
	expertise := make(map[types.PersonID][]model.DomainExpertise)
	uniqueCounts := make(map[types.PersonID]int)

	var dependencies []model.KnowledgeDependency
	coveredDomains := 0
	wellCoveredDomains := 0

	for _, domain := range domains {
		var ranked []rankedCell
		for personID, row := range matrix {
			if cell, ok := row[domain.ID]; ok && cell.Score > 0 {
				ranked = append(ranked, rankedCell{personID: personID, cell: cell})
			}
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].cell.Score != ranked[j].cell.Score {
				return ranked[i].cell.Score > ranked[j].cell.Score
			}
			return ranked[i].personID < ranked[j].personID
		})

		if len(ranked) == 0 {
			continue
		}
		coveredDomains++

		var totalScore float64
		for _, r := range ranked {
			totalScore += r.cell.Score
		}

		wellCovered := 0
		for rank, r := range ranked {
			strength := r.cell.Score / totalScore
			redundancy := 0.0
			if len(ranked) >= 2 {
				redundancy = 1 - strength
			}
			if strength > wellCoveredStrength {
				wellCovered++
			}

			dependencies = append(dependencies, model.KnowledgeDependency{
				DomainID:           domain.ID,
				PersonID:           r.personID,
				DependencyStrength: strength,
				RedundancyLevel:    redundancy,
				KnowledgeType:      types.KnowledgeTypeFromStrength(strength),
			})

			isUnique := len(ranked) == 1
			if isUnique {
				uniqueCounts[r.personID]++
			}
			expertise[r.personID] = append(expertise[r.personID], model.DomainExpertise{
				DomainID:            domain.ID,
				DomainName:          domain.Name,
				ExpertiseScore:      r.cell.Score,
				IsUniqueExpert:      isUnique,
				IsPrimaryExpert:     rank == 0,
				ContributionFactors: r.cell.Factors,
			})
		}
		if wellCovered >= 2 {
			wellCoveredDomains++
		}
	}

	experts := make([]*model.PersonKnowledge, 0, len(expertise))
	for personID, entries := range expertise {
		var sum float64
		for _, d := range entries {
			sum += d.ExpertiseScore
		}
		overall := sum / float64(len(entries))
		uniqueCount := uniqueCounts[personID]

		pk := &model.PersonKnowledge{
			PersonID:              personID,
			Domains:               entries,
			OverallKnowledgeScore: overall,
			UniqueKnowledgeCount:  uniqueCount,
			Criticality:           model.CriticalityFor(uniqueCount, overall),
		}
		if p, ok := personIndex[personID]; ok {
			pk.Name = p.Name
			pk.Email = p.Email
			pk.Department = p.Department
		}
		experts = append(experts, pk)
	}

	sort.Slice(experts, func(i, j int) bool {
		if experts[i].UniqueKnowledgeCount != experts[j].UniqueKnowledgeCount {
			return experts[i].UniqueKnowledgeCount > experts[j].UniqueKnowledgeCount
		}
		if experts[i].OverallKnowledgeScore != experts[j].OverallKnowledgeScore {
			return experts[i].OverallKnowledgeScore > experts[j].OverallKnowledgeScore
		}
		return experts[i].PersonID < experts[j].PersonID
	})

	coverage := 0.0
	if len(domains) > 0 {
		coveredRatio := float64(coveredDomains) / float64(len(domains))
		wellCoveredRatio := float64(wellCoveredDomains) / float64(len(domains))
		coverage = coveredRatio*0.4 + wellCoveredRatio*0.6
	}

	var spofs []types.PersonID
	for _, e := range experts {
		if e.UniqueKnowledgeCount > 0 {
			spofs = append(spofs, e.PersonID)
		}
	}

	return &Distribution{
		Experts:               experts,
		Dependencies:          dependencies,
		OrganizationCoverage:  coverage,
		SinglePointsOfFailure: spofs,
	}
}
