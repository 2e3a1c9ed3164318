package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
)

type eventStore struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEventStore(client *firestore.Client) *eventStore {
	return &eventStore{client: client}
}

// eventDoc is the Firestore document representation of model.Event
type eventDoc struct {
	ID        string         `firestore:"ID"`
	ActorID   string         `firestore:"ActorID"`
	Type      string         `firestore:"Type"`
	Timestamp time.Time      `firestore:"Timestamp"`
	Metadata  map[string]any `firestore:"Metadata,omitempty"`
}

func (d *eventDoc) toModel(orgID types.OrgID) *model.Event {
	return &model.Event{
		ID:             d.ID,
		OrganizationID: orgID,
		ActorID:        types.PersonID(d.ActorID),
		Type:           d.Type,
		Timestamp:      d.Timestamp,
		Metadata:       d.Metadata,
	}
}

func (s *eventStore) collection(orgID types.OrgID) *firestore.CollectionRef {
	return s.client.
		Collection(s.collectionPrefix + "organizations").
		Doc(orgID.String()).
		Collection("events")
}

// Count evaluates the query. Actor, time range and exact metadata matches
// are pushed down to Firestore; the dotted-segment type prefix match is
// applied client side because Firestore only supports lexicographic ranges.
func (s *eventStore) Count(ctx context.Context, q model.EventQuery) (int, error) {
	fq := s.collection(q.OrganizationID).Query
	if q.ActorID != "" {
		fq = fq.Where("ActorID", "==", q.ActorID.String())
	}
	if !q.From.IsZero() {
		fq = fq.Where("Timestamp", ">=", q.From)
	}
	if !q.To.IsZero() {
		fq = fq.Where("Timestamp", "<", q.To)
	}
	for k, v := range q.Metadata {
		fq = fq.Where("Metadata."+k, "==", v)
	}

	iter := fq.Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to iterate events",
				goerr.V("orgID", q.OrganizationID), goerr.T(types.TagUpstreamUnavailable))
		}

		var d eventDoc
		if err := doc.DataTo(&d); err != nil {
			return 0, goerr.Wrap(err, "failed to decode event document", goerr.V("doc", doc.Ref.ID))
		}
		if q.Matches(d.toModel(q.OrganizationID)) {
			count++
		}
	}
	return count, nil
}

func (s *eventStore) Topics(ctx context.Context, orgID types.OrgID, from, to time.Time, limit int) ([]string, error) {
	fq := s.collection(orgID).Query
	if !from.IsZero() {
		fq = fq.Where("Timestamp", ">=", from)
	}
	if !to.IsZero() {
		fq = fq.Where("Timestamp", "<", to)
	}

	iter := fq.Documents(ctx)
	defer iter.Stop()

	seen := make(map[string]bool)
	var topics []string
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate events for topics",
				goerr.V("orgID", orgID), goerr.T(types.TagUpstreamUnavailable))
		}

		var d eventDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode event document", goerr.V("doc", doc.Ref.ID))
		}

		topic := model.ParseEventMeta(d.Metadata).Topic
		if topic == "" || seen[topic] {
			continue
		}
		seen[topic] = true
		topics = append(topics, topic)
		if limit > 0 && len(topics) >= limit {
			break
		}
	}
	return topics, nil
}
