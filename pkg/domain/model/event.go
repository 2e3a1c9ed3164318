package model

import (
	"time"

	"github.com/keystone-lab/keystone/pkg/domain/types"
)

// Event is one organizational event (email, meeting, document edit, task
// activity) from the time-series event store. Metadata is an open key/value
// bag; typed access goes through Meta().
type Event struct {
	ID             string
	OrganizationID types.OrgID
	ActorID        types.PersonID
	Type           string
	Timestamp      time.Time
	Metadata       map[string]any
}

// Well-known metadata keys. Everything else stays in EventMeta.Raw.
const (
	MetaKeyProcessID  = "processId"
	MetaKeyTopic      = "topic"
	MetaKeyDepartment = "department"
)

// EventMeta is the typed view of an event's metadata bag. Fields the schema
// does not know about are preserved in Raw so no signal is silently lost.
type EventMeta struct {
	ProcessID  string
	Topic      string
	Department string
	Raw        map[string]any
}

// ParseEventMeta extracts the typed fields from a raw metadata bag.
// Non-string values for known keys fall through to Raw.
func ParseEventMeta(raw map[string]any) EventMeta {
	meta := EventMeta{}
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			meta.putRaw(k, v)
			continue
		}
		switch k {
		case MetaKeyProcessID:
			meta.ProcessID = s
		case MetaKeyTopic:
			meta.Topic = s
		case MetaKeyDepartment:
			meta.Department = s
		default:
			meta.putRaw(k, v)
		}
	}
	return meta
}

func (m *EventMeta) putRaw(k string, v any) {
	if m.Raw == nil {
		m.Raw = make(map[string]any)
	}
	m.Raw[k] = v
}

// Meta returns the typed view of the event's metadata
func (e *Event) Meta() EventMeta {
	return ParseEventMeta(e.Metadata)
}

// EventQuery describes a count/aggregate request against the event store.
// TypePattern is a prefix match on the event type ("meeting" matches
// "meeting.joined"). Metadata entries are exact matches on well-known keys.
type EventQuery struct {
	OrganizationID types.OrgID
	ActorID        types.PersonID
	TypePattern    string
	Metadata       map[string]string
	From           time.Time
	To             time.Time
}

// Matches reports whether the event satisfies the query. The time range is
// half-open: From inclusive, To exclusive.
func (q EventQuery) Matches(e *Event) bool {
	if e.OrganizationID != q.OrganizationID {
		return false
	}
	if q.ActorID != "" && e.ActorID != q.ActorID {
		return false
	}
	if q.TypePattern != "" && !hasTypePrefix(e.Type, q.TypePattern) {
		return false
	}
	if !q.From.IsZero() && e.Timestamp.Before(q.From) {
		return false
	}
	if !q.To.IsZero() && !e.Timestamp.Before(q.To) {
		return false
	}
	for k, want := range q.Metadata {
		got, ok := e.Metadata[k].(string)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// hasTypePrefix matches whole dotted segments: "meeting" matches "meeting"
// and "meeting.joined" but not "meetings".
func hasTypePrefix(eventType, pattern string) bool {
	if eventType == pattern {
		return true
	}
	return len(eventType) > len(pattern) &&
		eventType[:len(pattern)] == pattern &&
		eventType[len(pattern)] == '.'
}
