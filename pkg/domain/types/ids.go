package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// OrgID represents a unique identifier for an organization
type OrgID string

var idPattern = regexp.MustCompile(`^[a-z0-9]+([-_][a-z0-9]+)*$`)

// Validate checks if the OrgID is valid
func (o OrgID) Validate() error {
	if o == "" {
		return goerr.New("organization ID cannot be empty")
	}
	if !idPattern.MatchString(string(o)) {
		return goerr.New("organization ID must be lowercase alphanumeric with hyphens", goerr.V("id", o))
	}
	return nil
}

// String returns the string representation of OrgID
func (o OrgID) String() string {
	return string(o)
}

// PersonID represents a unique identifier for a person in the directory
type PersonID string

// Validate checks if the PersonID is valid
func (p PersonID) Validate() error {
	if p == "" {
		return goerr.New("person ID cannot be empty")
	}
	return nil
}

// String returns the string representation of PersonID
func (p PersonID) String() string {
	return string(p)
}

// ProcessID represents a unique identifier for an organizational process
type ProcessID string

// Validate checks if the ProcessID is valid
func (p ProcessID) Validate() error {
	if p == "" {
		return goerr.New("process ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ProcessID
func (p ProcessID) String() string {
	return string(p)
}

// DomainID represents a unique identifier for a knowledge domain.
// IDs are namespaced by discovery source: "process:<id>", "dept:<name>",
// "topic:<term>", or caller-chosen for custom domains.
type DomainID string

// Validate checks if the DomainID is valid
func (d DomainID) Validate() error {
	if d == "" {
		return goerr.New("domain ID cannot be empty")
	}
	return nil
}

// String returns the string representation of DomainID
func (d DomainID) String() string {
	return string(d)
}
