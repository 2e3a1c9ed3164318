package types

import "fmt"

// RiskLevel represents the knowledge-loss risk of a domain or organization
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// AllRiskLevels returns all valid risk levels
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{
		RiskLevelLow,
		RiskLevelMedium,
		RiskLevelHigh,
		RiskLevelCritical,
	}
}

// IsValid checks if the risk level is valid
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLevelLow,
		RiskLevelMedium,
		RiskLevelHigh,
		RiskLevelCritical:
		return true
	default:
		return false
	}
}

// RiskLevelFromBusFactor maps a bus factor to a risk level. Losing one
// person (or having nobody at all) is critical, two is high, three medium.
func RiskLevelFromBusFactor(busFactor int) RiskLevel {
	switch {
	case busFactor <= 1:
		return RiskLevelCritical
	case busFactor <= 2:
		return RiskLevelHigh
	case busFactor <= 3:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// String returns the string representation of the risk level
func (r RiskLevel) String() string {
	return string(r)
}

// ParseRiskLevel parses a string into a RiskLevel
func ParseRiskLevel(s string) (RiskLevel, error) {
	r := RiskLevel(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid risk level: %s", s)
	}
	return r, nil
}
