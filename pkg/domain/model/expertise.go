package model

import "github.com/keystone-lab/keystone/pkg/domain/types"

// ContributionFactor is one weighted behavioral signal of a person's
// expertise in a domain. Factors are computed per (person, domain, window)
// and never persisted independently.
type ContributionFactor struct {
	Type        types.FactorType
	Weight      float64 // normalized signal magnitude in [0,1]
	Count       int     // raw event occurrences
	Description string
}

// DomainExpertise is one person's derived expertise in one domain
type DomainExpertise struct {
	DomainID            types.DomainID
	DomainName          string
	ExpertiseScore      float64 // 0-100
	IsUniqueExpert      bool
	IsPrimaryExpert     bool
	ContributionFactors []ContributionFactor
}

// PersonKnowledge aggregates one person's expertise across all domains
type PersonKnowledge struct {
	PersonID              types.PersonID
	Name                  string
	Email                 string `masq:"secret"`
	Department            string
	Domains               []DomainExpertise
	OverallKnowledgeScore float64 // mean of domain scores
	UniqueKnowledgeCount  int     // domains where this person is the sole scorer
	Criticality           types.Criticality
}

// CriticalityFor derives a person's criticality from their unique-expert
// count and overall knowledge score.
func CriticalityFor(uniqueCount int, overallScore float64) types.Criticality {
	switch {
	case uniqueCount >= 3 || (uniqueCount >= 2 && overallScore > 70):
		return types.CriticalityCritical
	case uniqueCount >= 1 || overallScore > 80:
		return types.CriticalityHigh
	case overallScore > 50:
		return types.CriticalityMedium
	default:
		return types.CriticalityLow
	}
}

// KnowledgeDependency records how strongly a domain depends on one person.
// DependencyStrength is the person's share of the domain's total expertise
// mass; RedundancyLevel is its complement when at least two experts exist.
type KnowledgeDependency struct {
	DomainID           types.DomainID
	PersonID           types.PersonID
	DependencyStrength float64 // [0,1]
	RedundancyLevel    float64 // [0,1]
	KnowledgeType      types.KnowledgeType
}
