package usecase

import (
	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Defaults for analysis options
const (
	DefaultLookbackDays         = 180
	DefaultMinActivityThreshold = 5
	DefaultExpertiseThreshold   = 30
	DefaultPrimaryThreshold     = 0.3
)

// GraphOptions controls a knowledge graph build
type GraphOptions struct {
	// LookbackDays is the analysis window ending now. Zero selects
	// DefaultLookbackDays.
	LookbackDays int

	// MinActivityThreshold drops (person, domain) scores below it from the
	// matrix entirely, excluding inactive people from expert rankings.
	// Zero selects DefaultMinActivityThreshold; zero-score cells never
	// rank regardless, so the smallest meaningful setting is a small
	// positive value.
	MinActivityThreshold float64

	// IncludeExternalDomains also discovers topic domains from event
	// metadata; off, only process and department domains are considered
	IncludeExternalDomains bool

	// CustomDomains bypasses discovery entirely when non-empty
	CustomDomains []*model.KnowledgeDomain
}

// withDefaults fills unset fields
func (o GraphOptions) withDefaults() GraphOptions {
	if o.LookbackDays == 0 {
		o.LookbackDays = DefaultLookbackDays
	}
	if o.MinActivityThreshold == 0 {
		o.MinActivityThreshold = DefaultMinActivityThreshold
	}
	return o
}

// Validate rejects out-of-range options before any computation begins
func (o GraphOptions) Validate() error {
	if o.LookbackDays < 1 {
		return goerr.New("lookback days must be at least 1",
			goerr.V("lookbackDays", o.LookbackDays), goerr.T(types.TagInvalidOption))
	}
	if o.MinActivityThreshold < 0 {
		return goerr.New("minimum activity threshold cannot be negative",
			goerr.V("minActivityThreshold", o.MinActivityThreshold), goerr.T(types.TagInvalidOption))
	}
	return nil
}

// BusFactorOptions controls a bus factor calculation
type BusFactorOptions struct {
	// LookbackDays is the analysis window ending now. Zero selects
	// DefaultLookbackDays.
	LookbackDays int

	// ExpertiseThreshold is the minimum expertise score (0-100) for a
	// person to count toward a domain's bus factor. Zero selects
	// DefaultExpertiseThreshold; to count every ranked expert, pass a
	// small positive value instead (experts enter rankings only with a
	// positive score, so any threshold below the matrix activity floor is
	// equivalent)
	ExpertiseThreshold float64

	// PrimaryThreshold is the minimum dependency strength (0-1) for a
	// domain's top expert to be treated as a single point of failure when
	// the domain's bus factor is 1. Zero selects DefaultPrimaryThreshold.
	PrimaryThreshold float64

	// IncludeExternalDomains mirrors GraphOptions
	IncludeExternalDomains bool
}

// withDefaults fills unset fields
func (o BusFactorOptions) withDefaults() BusFactorOptions {
	if o.LookbackDays == 0 {
		o.LookbackDays = DefaultLookbackDays
	}
	if o.ExpertiseThreshold == 0 {
		o.ExpertiseThreshold = DefaultExpertiseThreshold
	}
	if o.PrimaryThreshold == 0 {
		o.PrimaryThreshold = DefaultPrimaryThreshold
	}
	return o
}

// Validate rejects out-of-range options before any computation begins
func (o BusFactorOptions) Validate() error {
	if o.LookbackDays < 1 {
		return goerr.New("lookback days must be at least 1",
			goerr.V("lookbackDays", o.LookbackDays), goerr.T(types.TagInvalidOption))
	}
	if o.ExpertiseThreshold < 0 || o.ExpertiseThreshold > 100 {
		return goerr.New("expertise threshold must be within [0,100]",
			goerr.V("expertiseThreshold", o.ExpertiseThreshold), goerr.T(types.TagInvalidOption))
	}
	if o.PrimaryThreshold <= 0 || o.PrimaryThreshold > 1 {
		return goerr.New("primary threshold must be within (0,1]",
			goerr.V("primaryThreshold", o.PrimaryThreshold), goerr.T(types.TagInvalidOption))
	}
	return nil
}

// graphOptions converts bus factor options to the graph build they require
func (o BusFactorOptions) graphOptions() GraphOptions {
	return GraphOptions{
		LookbackDays:           o.LookbackDays,
		IncludeExternalDomains: o.IncludeExternalDomains,
	}.withDefaults()
}
