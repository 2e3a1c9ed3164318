package types

import "fmt"

// Criticality represents how critical a person is to organizational knowledge
type Criticality string

const (
	CriticalityLow      Criticality = "low"
	CriticalityMedium   Criticality = "medium"
	CriticalityHigh     Criticality = "high"
	CriticalityCritical Criticality = "critical"
)

// AllCriticalities returns all valid criticality levels
func AllCriticalities() []Criticality {
	return []Criticality{
		CriticalityLow,
		CriticalityMedium,
		CriticalityHigh,
		CriticalityCritical,
	}
}

// IsValid checks if the criticality is valid
func (c Criticality) IsValid() bool {
	switch c {
	case CriticalityLow,
		CriticalityMedium,
		CriticalityHigh,
		CriticalityCritical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the criticality
func (c Criticality) String() string {
	return string(c)
}

// ParseCriticality parses a string into a Criticality
func ParseCriticality(s string) (Criticality, error) {
	c := Criticality(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid criticality: %s", s)
	}
	return c, nil
}
