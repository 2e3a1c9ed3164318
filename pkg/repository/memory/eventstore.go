package memory

import (
	"context"
	"sync"
	"time"

	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/types"
)

type eventStore struct {
	mu     sync.RWMutex
	events map[types.OrgID][]*model.Event
}

func newEventStore() *eventStore {
	return &eventStore{
		events: make(map[types.OrgID][]*model.Event),
	}
}

func copyEvent(e *model.Event) *model.Event {
	copied := &model.Event{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		ActorID:        e.ActorID,
		Type:           e.Type,
		Timestamp:      e.Timestamp,
	}
	if e.Metadata != nil {
		copied.Metadata = make(map[string]any, len(e.Metadata))
		for k, v := range e.Metadata {
			copied.Metadata[k] = v
		}
	}
	return copied
}

// Add stores an event. Used by seed loaders and tests; the engine itself
// never writes.
func (s *eventStore) Add(e *model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.OrganizationID] = append(s.events[e.OrganizationID], copyEvent(e))
}

func (s *eventStore) Count(ctx context.Context, q model.EventQuery) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, e := range s.events[q.OrganizationID] {
		if q.Matches(e) {
			count++
		}
	}
	return count, nil
}

func (s *eventStore) Topics(ctx context.Context, orgID types.OrgID, from, to time.Time, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var topics []string
	for _, e := range s.events[orgID] {
		if !from.IsZero() && e.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && !e.Timestamp.Before(to) {
			continue
		}
		topic := e.Meta().Topic
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
