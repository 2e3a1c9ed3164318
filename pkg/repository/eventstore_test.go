package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/repository/memory"
)

const testOrgID = "test-org"

func seedEvents(repo *memory.Memory) {
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	events := []*model.Event{
		{ID: "e1", ActorID: "alice", Type: "message.sent", Timestamp: base, Metadata: map[string]any{model.MetaKeyTopic: "billing"}},
		{ID: "e2", ActorID: "alice", Type: "message.sent", Timestamp: base.Add(time.Hour), Metadata: map[string]any{model.MetaKeyTopic: "billing"}},
		{ID: "e3", ActorID: "bob", Type: "message.sent", Timestamp: base, Metadata: map[string]any{model.MetaKeyTopic: "billing"}},
		{ID: "e4", ActorID: "alice", Type: "meeting.joined", Timestamp: base, Metadata: map[string]any{model.MetaKeyDepartment: "Engineering"}},
		{ID: "e5", ActorID: "alice", Type: "document.created", Timestamp: base.Add(48 * time.Hour), Metadata: map[string]any{model.MetaKeyTopic: "onboarding"}},
	}
	for _, e := range events {
		e.OrganizationID = testOrgID
		repo.AddEvent(e)
	}
}

func TestMemoryEventStore_Count(t *testing.T) {
	repo := memory.New()
	seedEvents(repo)
	ctx := context.Background()

	t.Run("counts by actor and type prefix", func(t *testing.T) {
		count, err := repo.EventStore().Count(ctx, model.EventQuery{
			OrganizationID: testOrgID,
			ActorID:        "alice",
			TypePattern:    "message",
		})
		gt.NoError(t, err).Required()
		gt.Number(t, count).Equal(2)
	})

	t.Run("counts by metadata", func(t *testing.T) {
		count, err := repo.EventStore().Count(ctx, model.EventQuery{
			OrganizationID: testOrgID,
			Metadata:       map[string]string{model.MetaKeyTopic: "billing"},
		})
		gt.NoError(t, err).Required()
		gt.Number(t, count).Equal(3)
	})

	t.Run("time range is half-open", func(t *testing.T) {
		base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
		count, err := repo.EventStore().Count(ctx, model.EventQuery{
			OrganizationID: testOrgID,
			From:           base,
			To:             base.Add(time.Hour),
		})
		gt.NoError(t, err).Required()
		gt.Number(t, count).Equal(3)
	})

	t.Run("unknown organization counts zero", func(t *testing.T) {
		count, err := repo.EventStore().Count(ctx, model.EventQuery{OrganizationID: "ghost"})
		gt.NoError(t, err).Required()
		gt.Number(t, count).Equal(0)
	})
}

func TestMemoryEventStore_Topics(t *testing.T) {
	repo := memory.New()
	seedEvents(repo)
	ctx := context.Background()

	t.Run("distinct topics in window", func(t *testing.T) {
		topics, err := repo.EventStore().Topics(ctx, testOrgID, time.Time{}, time.Time{}, 0)
		gt.NoError(t, err).Required()
		gt.Array(t, topics).Length(2)
	})

	t.Run("limit caps the result", func(t *testing.T) {
		topics, err := repo.EventStore().Topics(ctx, testOrgID, time.Time{}, time.Time{}, 1)
		gt.NoError(t, err).Required()
		gt.Array(t, topics).Length(1)
	})

	t.Run("window excludes out-of-range events", func(t *testing.T) {
		from := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
		topics, err := repo.EventStore().Topics(ctx, testOrgID, from, time.Time{}, 0)
		gt.NoError(t, err).Required()
		gt.Array(t, topics).Equal([]string{"onboarding"})
	})
}
