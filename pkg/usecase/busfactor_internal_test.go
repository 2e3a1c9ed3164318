package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/keystone-lab/keystone/pkg/usecase"
)

func testOpts() usecase.BusFactorOptions {
	return usecase.BusFactorOptions{
		LookbackDays:       usecase.DefaultLookbackDays,
		ExpertiseThreshold: usecase.DefaultExpertiseThreshold,
		PrimaryThreshold:   usecase.DefaultPrimaryThreshold,
	}
}

// graphWith assembles a graph from per-domain (person, score) rankings.
// Dependency strengths are each person's share of the domain's score mass.
func graphWith(domains []*model.KnowledgeDomain, scores map[types.DomainID]map[types.PersonID]float64) *model.KnowledgeGraph {
	graph := &model.KnowledgeGraph{
		ID:             model.NewGraphID(),
		OrganizationID: "test-org",
		Domains:        domains,
	}

	perPerson := make(map[types.PersonID][]model.DomainExpertise)
	unique := make(map[types.PersonID]int)

	for _, domain := range domains {
		ranking := scores[domain.ID]
		var total float64
		var top types.PersonID
		for personID, score := range ranking {
			total += score
			if top == "" || score > ranking[top] {
				top = personID
			}
		}
		for personID, score := range ranking {
			strength := score / total
			graph.Dependencies = append(graph.Dependencies, model.KnowledgeDependency{
				DomainID:           domain.ID,
				PersonID:           personID,
				DependencyStrength: strength,
				RedundancyLevel:    1 - strength,
				KnowledgeType:      types.KnowledgeTypeFromStrength(strength),
			})
			isUnique := len(ranking) == 1
			if isUnique {
				unique[personID]++
			}
			perPerson[personID] = append(perPerson[personID], model.DomainExpertise{
				DomainID:        domain.ID,
				DomainName:      domain.Name,
				ExpertiseScore:  score,
				IsUniqueExpert:  isUnique,
				IsPrimaryExpert: personID == top,
			})
		}
	}

	for personID, entries := range perPerson {
		var sum float64
		for _, e := range entries {
			sum += e.ExpertiseScore
		}
		graph.Experts = append(graph.Experts, &model.PersonKnowledge{
			PersonID:              personID,
			Domains:               entries,
			OverallKnowledgeScore: sum / float64(len(entries)),
			UniqueKnowledgeCount:  unique[personID],
			Criticality:           model.CriticalityFor(unique[personID], sum/float64(len(entries))),
		})
	}
	return graph
}

func TestDomainBusFactor(t *testing.T) {
	billing := &model.KnowledgeDomain{ID: "topic:billing", Name: "billing", Type: types.DomainTypeTopic}
	payroll := &model.KnowledgeDomain{ID: "process:payroll", Name: "Payroll", Type: types.DomainTypeProcess}

	t.Run("dominant expert alone reaches the coverage target", func(t *testing.T) {
		graph := graphWith([]*model.KnowledgeDomain{billing}, map[types.DomainID]map[types.PersonID]float64{
			"topic:billing": {"alice": 80, "bob": 20},
		})

		score := usecase.DomainBusFactor(graph, billing, testOpts())
		gt.Number(t, score.BusFactor).Equal(1)
		gt.Value(t, score.RiskLevel).Equal(types.RiskLevelCritical)
		gt.Number(t, score.Coverage).Equal(0.8)
		// bob scores below the expertise threshold, so no redundancy
		gt.Number(t, score.Redundancy).Equal(0.0)
		gt.Array(t, score.KeyExperts).Length(2)
		gt.Value(t, score.KeyExperts[0].PersonID).Equal("alice")
	})

	t.Run("sole expert", func(t *testing.T) {
		graph := graphWith([]*model.KnowledgeDomain{payroll}, map[types.DomainID]map[types.PersonID]float64{
			"process:payroll": {"carol": 60},
		})

		score := usecase.DomainBusFactor(graph, payroll, testOpts())
		gt.Number(t, score.BusFactor).Equal(1)
		gt.Number(t, score.Coverage).Equal(1.0)
		gt.Value(t, score.RiskLevel).Equal(types.RiskLevelCritical)
	})

	t.Run("four equal experts need four departures", func(t *testing.T) {
		graph := graphWith([]*model.KnowledgeDomain{billing}, map[types.DomainID]map[types.PersonID]float64{
			"topic:billing": {"p1": 50, "p2": 50, "p3": 50, "p4": 50},
		})

		score := usecase.DomainBusFactor(graph, billing, testOpts())
		gt.Number(t, score.BusFactor).Equal(4)
		gt.Value(t, score.RiskLevel).Equal(types.RiskLevelLow)
		gt.Number(t, score.Redundancy).Equal(1.0)
	})

	t.Run("no qualified experts", func(t *testing.T) {
		graph := graphWith([]*model.KnowledgeDomain{billing}, map[types.DomainID]map[types.PersonID]float64{
			"topic:billing": {"alice": 10, "bob": 5},
		})

		score := usecase.DomainBusFactor(graph, billing, testOpts())
		gt.Number(t, score.BusFactor).Equal(0)
		gt.Value(t, score.RiskLevel).Equal(types.RiskLevelCritical)
		gt.String(t, score.VulnerabilityAssessment).Contains("No identified experts")
	})
}

func TestAssembleSPOFs(t *testing.T) {
	billing := &model.KnowledgeDomain{ID: "topic:billing", Name: "billing", Type: types.DomainTypeTopic}
	payroll := &model.KnowledgeDomain{ID: "process:payroll", Name: "Payroll", Type: types.DomainTypeProcess}
	sales := &model.KnowledgeDomain{ID: "dept:sales", Name: "Sales", Type: types.DomainTypeDepartment}

	t.Run("dominant primary of a bus-factor-1 domain is a SPOF", func(t *testing.T) {
		graph := graphWith([]*model.KnowledgeDomain{billing}, map[types.DomainID]map[types.PersonID]float64{
			"topic:billing": {"alice": 80, "bob": 20},
		})
		scores := []*model.BusFactorScore{usecase.DomainBusFactor(graph, billing, testOpts())}

		spofs := usecase.AssembleSPOFs(graph, scores, testOpts())
		gt.Array(t, spofs).Length(1).Required()
		gt.Value(t, spofs[0].PersonID).Equal("alice")
		gt.Array(t, spofs[0].UniqueDomains).Equal([]string{"billing"})
		gt.Value(t, spofs[0].Criticality).Equal(types.CriticalityHigh)
	})

	t.Run("unique domains accumulate and escalate criticality", func(t *testing.T) {
		domains := []*model.KnowledgeDomain{payroll, sales}
		graph := graphWith(domains, map[types.DomainID]map[types.PersonID]float64{
			"process:payroll": {"carol": 60},
			"dept:sales":      {"carol": 40},
		})
		var scores []*model.BusFactorScore
		for _, d := range domains {
			scores = append(scores, usecase.DomainBusFactor(graph, d, testOpts()))
		}

		spofs := usecase.AssembleSPOFs(graph, scores, testOpts())
		gt.Array(t, spofs).Length(1).Required()
		gt.Value(t, spofs[0].PersonID).Equal("carol")
		gt.Array(t, spofs[0].UniqueDomains).Length(2)
		gt.Value(t, spofs[0].Criticality).Equal(types.CriticalityCritical)

		impact := spofs[0].ImpactIfLost
		gt.Number(t, impact.DomainsAffected).Equal(2)
		gt.Number(t, impact.ProcessesAffected).Equal(1)
		gt.Number(t, impact.KnowledgeLossPercent).Equal(100.0)
		// 4 * (1 + 0.5*2) * (1 + 0.75*2) = 20
		gt.Number(t, impact.EstimatedRecoveryWeeks).Equal(20)
	})

	t.Run("well-distributed domain produces no SPOF", func(t *testing.T) {
		graph := graphWith([]*model.KnowledgeDomain{billing}, map[types.DomainID]map[types.PersonID]float64{
			"topic:billing": {"p1": 50, "p2": 50, "p3": 50, "p4": 50},
		})
		scores := []*model.BusFactorScore{usecase.DomainBusFactor(graph, billing, testOpts())}

		spofs := usecase.AssembleSPOFs(graph, scores, testOpts())
		gt.Array(t, spofs).Length(0)
	})
}

func TestOverallBusFactor(t *testing.T) {
	process := &model.KnowledgeDomain{ID: "process:payroll", Name: "Payroll", Type: types.DomainTypeProcess}
	topic := &model.KnowledgeDomain{ID: "topic:billing", Name: "billing", Type: types.DomainTypeTopic}

	graph := &model.KnowledgeGraph{Domains: []*model.KnowledgeDomain{process, topic}}

	t.Run("weighted minimum over domains", func(t *testing.T) {
		scores := []*model.BusFactorScore{
			{DomainID: "process:payroll", BusFactor: 3}, // 3 / 1.5 = 2
			{DomainID: "topic:billing", BusFactor: 4},   // 4 / 1.0 = 4
		}
		gt.Number(t, usecase.OverallBusFactor(graph, scores)).Equal(2)
	})

	t.Run("no domains yields zero", func(t *testing.T) {
		gt.Number(t, usecase.OverallBusFactor(graph, nil)).Equal(0)
	})
}

func TestDistributionScore(t *testing.T) {
	graph := &model.KnowledgeGraph{OrganizationCoverage: 0.7}
	scores := []*model.BusFactorScore{
		{BusFactor: 4, Redundancy: 1},
		{BusFactor: 1, Redundancy: 0},
	}

	want := 0.5*25 + 0.5*30 + 0.7*25 + 0.9*20
	gt.Number(t, usecase.DistributionScore(graph, scores, 1)).Equal(want)

	t.Run("no scores yields zero", func(t *testing.T) {
		gt.Number(t, usecase.DistributionScore(graph, nil, 0)).Equal(0.0)
	})
}
