package model

import (
	"time"

	"github.com/keystone-lab/keystone/pkg/domain/types"
)

// BusFactorScore is the per-domain risk result: the minimum number of people
// whose combined departure would remove at least 80% of the domain's
// demonstrated expertise.
type BusFactorScore struct {
	DomainID                types.DomainID
	DomainName              string
	BusFactor               int
	RiskLevel               types.RiskLevel
	Coverage                float64 // cumulative expertise share retained, [0,1]
	Redundancy              float64 // [0,1]
	KeyExperts              []KeyExpert
	VulnerabilityAssessment string
}

// KeyExpert is one of the top experts backing a domain's bus factor
type KeyExpert struct {
	PersonID           types.PersonID
	Name               string
	ExpertiseScore     float64
	DependencyStrength float64
}

// ImpactAssessment estimates the organizational damage of losing one person
type ImpactAssessment struct {
	DomainsAffected        int
	ProcessesAffected      int
	KnowledgeLossPercent   float64
	EstimatedRecoveryWeeks int
	Description            string
}

// SinglePointOfFailure is a person who is the sole or overwhelmingly
// dominant expert in at least one domain.
type SinglePointOfFailure struct {
	PersonID      types.PersonID
	Name          string
	UniqueDomains []string
	Criticality   types.Criticality
	ImpactIfLost  ImpactAssessment
}

// OrganizationBusFactor is the organization-wide risk rollup
type OrganizationBusFactor struct {
	OrganizationID             types.OrgID
	OverallBusFactor           int
	RiskLevel                  types.RiskLevel
	DomainScores               []*BusFactorScore
	SinglePointsOfFailure      []*SinglePointOfFailure
	KnowledgeDistributionScore float64 // organizational health, 0-100
	Recommendations            []string
	AnalyzedAt                 time.Time
}
