package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classifying failures across the engine
var (
	// TagNotFound marks lookups of unknown organizations, domains or people.
	// Callers translate these to empty results, not failures.
	TagNotFound = goerr.NewTag("not_found")

	// TagInvalidOption marks option validation failures at operation entry
	TagInvalidOption = goerr.NewTag("invalid_option")

	// TagUpstreamUnavailable marks wholesale unavailability of the event
	// store or directory. The only condition that aborts a run.
	TagUpstreamUnavailable = goerr.NewTag("upstream_unavailable")
)
