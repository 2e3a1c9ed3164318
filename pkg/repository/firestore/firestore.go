package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/keystone-lab/keystone/pkg/domain/interfaces"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = goerr.New("not found", goerr.T(types.TagNotFound))

// Collection layout:
//
//	{prefix}organizations/{orgID}/events/{eventID}
//	{prefix}organizations/{orgID}/people/{personID}
//	{prefix}organizations/{orgID}/processes/{processID}
//
// Required composite indexes: events on (ActorID, Timestamp) and
// (Type, Timestamp).
type Firestore struct {
	client    *firestore.Client
	events    *eventStore
	directory *directory
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, mainly for tests
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.events.collectionPrefix = prefix
		f.directory.collectionPrefix = prefix
	}
}

// New creates a Firestore-backed repository
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID),
			goerr.T(types.TagUpstreamUnavailable))
	}

	f := &Firestore{
		client:    client,
		events:    newEventStore(client),
		directory: newDirectory(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// EventStore returns the Firestore-backed event store
func (f *Firestore) EventStore() interfaces.EventStore {
	return f.events
}

// Directory returns the Firestore-backed directory
func (f *Firestore) Directory() interfaces.Directory {
	return f.directory
}

// Close releases the underlying client
func (f *Firestore) Close() error {
	return f.client.Close()
}
