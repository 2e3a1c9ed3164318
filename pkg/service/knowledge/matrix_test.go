package knowledge_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/model/config"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/keystone-lab/keystone/pkg/repository/memory"
	"github.com/keystone-lab/keystone/pkg/service/knowledge"
)

func newMatrixBuilder(repo *memory.Memory, cfg *config.AnalysisConfig) *knowledge.MatrixBuilder {
	scanner := knowledge.NewScanner(repo.EventStore(), cfg)
	return knowledge.NewMatrixBuilder(scanner, cfg)
}

func TestMatrixBuilder(t *testing.T) {
	ctx := context.Background()

	t.Run("single saturated factor scores as expected", func(t *testing.T) {
		repo := memory.New()
		// 20 answers: saturation reached, magnitude 2, factor weight 1.5.
		// Score folds to (1.0*1.5*2.0)/1.5*20 = 40.
		addEvents(repo, "alice", "answer.posted", 20, map[string]any{model.MetaKeyTopic: "billing"})

		cfg := config.DefaultAnalysisConfig()
		builder := newMatrixBuilder(repo, cfg)
		persons := []*model.Person{{ID: "alice"}}
		domains := []*model.KnowledgeDomain{model.NewTopicDomain("billing")}

		matrix, err := builder.Build(ctx, testOrgID, persons, domains, time.Time{}, time.Time{}, 0)
		gt.NoError(t, err).Required()
		gt.Number(t, matrix.Score("alice", "topic:billing")).Equal(40.0)
	})

	t.Run("below-threshold cells are absent not zero", func(t *testing.T) {
		repo := memory.New()
		addEvents(repo, "alice", "message.sent", 1, map[string]any{model.MetaKeyTopic: "billing"})

		builder := newMatrixBuilder(repo, config.DefaultAnalysisConfig())
		persons := []*model.Person{{ID: "alice"}}
		domains := []*model.KnowledgeDomain{model.NewTopicDomain("billing")}

		matrix, err := builder.Build(ctx, testOrgID, persons, domains, time.Time{}, time.Time{}, 5)
		gt.NoError(t, err).Required()
		_, ok := matrix["alice"]
		gt.Bool(t, ok).False()
		gt.Number(t, matrix.Score("alice", "topic:billing")).Equal(0.0)
	})

	t.Run("score is capped at 100", func(t *testing.T) {
		repo := memory.New()
		meta := map[string]any{model.MetaKeyTopic: "billing"}
		addEvents(repo, "alice", "answer.posted", 120, meta)
		addEvents(repo, "alice", "document.created", 120, meta)
		addEvents(repo, "alice", "message.sent", 120, meta)

		builder := newMatrixBuilder(repo, config.DefaultAnalysisConfig())
		persons := []*model.Person{{ID: "alice"}}
		domains := []*model.KnowledgeDomain{model.NewTopicDomain("billing")}

		matrix, err := builder.Build(ctx, testOrgID, persons, domains, time.Time{}, time.Time{}, 0)
		gt.NoError(t, err).Required()
		gt.Number(t, matrix.Score("alice", "topic:billing")).Equal(100.0)
	})

	t.Run("concurrent build is deterministic", func(t *testing.T) {
		repo := memory.New()
		persons := make([]*model.Person, 0, 6)
		for _, id := range []types.PersonID{"p1", "p2", "p3", "p4", "p5", "p6"} {
			persons = append(persons, &model.Person{ID: id})
			addEvents(repo, id, "answer.posted", 8, map[string]any{model.MetaKeyTopic: "billing"})
			addEvents(repo, id, "message.sent", 12, map[string]any{model.MetaKeyTopic: "onboarding"})
		}
		domains := []*model.KnowledgeDomain{
			model.NewTopicDomain("billing"),
			model.NewTopicDomain("onboarding"),
		}

		cfg := config.DefaultAnalysisConfig()
		cfg.MatrixConcurrency = 3
		builder := newMatrixBuilder(repo, cfg)

		first, err := builder.Build(ctx, testOrgID, persons, domains, time.Time{}, time.Time{}, 0)
		gt.NoError(t, err).Required()
		second, err := builder.Build(ctx, testOrgID, persons, domains, time.Time{}, time.Time{}, 0)
		gt.NoError(t, err).Required()

		gt.Number(t, len(first)).Equal(len(second))
		for personID, row := range first {
			for domainID, cell := range row {
				gt.Number(t, second.Score(personID, domainID)).Equal(cell.Score)
			}
		}
	})
}
