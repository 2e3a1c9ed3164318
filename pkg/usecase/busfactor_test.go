package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/keystone-lab/keystone/pkg/repository/memory"
	"github.com/keystone-lab/keystone/pkg/usecase"
)

func TestCalculateOrganizationBusFactor(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedOrg(repo)
	uc := usecase.New(repo)

	result, err := uc.CalculateOrganizationBusFactor(ctx, orgID, usecase.BusFactorOptions{IncludeExternalDomains: true})
	gt.NoError(t, err).Required()
	gt.Value(t, result.OrganizationID).Equal(types.OrgID(orgID))
	gt.Array(t, result.DomainScores).Length(4)

	// payroll has no demonstrated experts at all, which floors the rollup
	gt.Number(t, result.OverallBusFactor).Equal(0)
	gt.Value(t, result.RiskLevel).Equal(types.RiskLevelCritical)

	for _, score := range result.DomainScores {
		switch score.DomainID {
		case "topic:billing":
			gt.Number(t, score.BusFactor).Equal(1)
			gt.Value(t, score.RiskLevel).Equal(types.RiskLevelCritical)
		case "process:payroll":
			gt.Number(t, score.BusFactor).Equal(0)
			gt.String(t, score.VulnerabilityAssessment).Contains("No identified experts")
		}
	}

	// alice is unique in her department and dominant in billing
	gt.Array(t, result.SinglePointsOfFailure).Length(1).Required()
	spof := result.SinglePointsOfFailure[0]
	gt.Value(t, spof.PersonID).Equal("alice")
	gt.Array(t, spof.UniqueDomains).Length(2)
	gt.Value(t, spof.Criticality).Equal(types.CriticalityCritical)
	gt.Bool(t, spof.ImpactIfLost.EstimatedRecoveryWeeks > 0).True()

	gt.Bool(t, result.KnowledgeDistributionScore >= 0).True()
	gt.Bool(t, result.KnowledgeDistributionScore <= 100).True()

	gt.Bool(t, len(result.Recommendations) > 0).True()
	gt.String(t, result.Recommendations[0]).Contains("URGENT")
	joined := strings.Join(result.Recommendations, "\n")
	gt.String(t, joined).Contains("Alice")
}

func TestCalculateDomainBusFactor(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedOrg(repo)
	uc := usecase.New(repo)

	t.Run("known domain", func(t *testing.T) {
		score, err := uc.CalculateDomainBusFactor(ctx, orgID, "topic:billing", usecase.BusFactorOptions{IncludeExternalDomains: true})
		gt.NoError(t, err).Required()
		gt.Value(t, score).NotNil().Required()
		gt.Number(t, score.BusFactor).Equal(1)
		gt.Value(t, score.KeyExperts[0].PersonID).Equal("alice")
	})

	t.Run("unknown domain yields nil without error", func(t *testing.T) {
		score, err := uc.CalculateDomainBusFactor(ctx, orgID, "topic:nonexistent", usecase.BusFactorOptions{})
		gt.NoError(t, err)
		gt.Value(t, score).Nil()
	})

	t.Run("out-of-range threshold is rejected", func(t *testing.T) {
		_, err := uc.CalculateDomainBusFactor(ctx, orgID, "topic:billing", usecase.BusFactorOptions{
			ExpertiseThreshold: 150,
		})
		gt.Error(t, err)
		gt.Bool(t, goerr.HasTag(err, types.TagInvalidOption)).True()
	})
}
