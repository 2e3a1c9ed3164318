package interfaces

import (
	"context"
	"time"

	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/types"
)

// EventStore is the queryable time-series store of organizational events.
// The engine only counts and aggregates; it never writes.
type EventStore interface {
	// Count returns the number of events matching the query
	Count(ctx context.Context, q model.EventQuery) (int, error)

	// Topics returns up to limit distinct topic metadata values observed
	// on events of the organization within [from, to)
	Topics(ctx context.Context, orgID types.OrgID, from, to time.Time, limit int) ([]string, error)
}
