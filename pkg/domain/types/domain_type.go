package types

import "fmt"

// DomainType represents the discovery source of a knowledge domain
type DomainType string

const (
	DomainTypeProcess    DomainType = "process"
	DomainTypeDepartment DomainType = "department"
	DomainTypeTopic      DomainType = "topic"
	DomainTypeSystem     DomainType = "system"
	DomainTypeCustom     DomainType = "custom"
)

// AllDomainTypes returns all valid domain types
func AllDomainTypes() []DomainType {
	return []DomainType{
		DomainTypeProcess,
		DomainTypeDepartment,
		DomainTypeTopic,
		DomainTypeSystem,
		DomainTypeCustom,
	}
}

// IsValid checks if the domain type is valid
func (d DomainType) IsValid() bool {
	switch d {
	case DomainTypeProcess,
		DomainTypeDepartment,
		DomainTypeTopic,
		DomainTypeSystem,
		DomainTypeCustom:
		return true
	default:
		return false
	}
}

// Weight returns the blast-radius weight of the domain type used by the
// organization-wide bus factor rollup. Process and departmental knowledge
// loss affects more of the organization than a narrow topic.
func (d DomainType) Weight() float64 {
	switch d {
	case DomainTypeProcess:
		return 1.5
	case DomainTypeDepartment:
		return 1.2
	default:
		return 1.0
	}
}

// String returns the string representation of the domain type
func (d DomainType) String() string {
	return string(d)
}

// ParseDomainType parses a string into a DomainType
func ParseDomainType(s string) (DomainType, error) {
	dt := DomainType(s)
	if !dt.IsValid() {
		return "", fmt.Errorf("invalid domain type: %s", s)
	}
	return dt, nil
}
