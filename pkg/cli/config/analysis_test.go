package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/keystone-lab/keystone/pkg/cli/config"
	domainConfig "github.com/keystone-lab/keystone/pkg/domain/model/config"
	"github.com/keystone-lab/keystone/pkg/domain/types"
)

func TestLoadAnalysisConfiguration(t *testing.T) {
	t.Run("overrides merge over defaults", func(t *testing.T) {
		cfg, err := config.LoadAnalysisConfiguration(writeFile(t, "analysis.toml", `
matrix-concurrency = 4

[factor-weights]
question_responder = 2.0

[saturations]
document_authorship = 10
`))
		gt.NoError(t, err).Required()
		gt.Number(t, cfg.Concurrency()).Equal(4)
		gt.Number(t, cfg.TopicCap()).Equal(domainConfig.DefaultMaxTopicDomains)
		gt.Number(t, cfg.FactorWeight(types.FactorQuestionResponder)).Equal(2.0)
		gt.Number(t, cfg.FactorWeight(types.FactorCommunicationHub)).Equal(1.0)
		gt.Number(t, cfg.Saturation(types.FactorDocumentAuthorship)).Equal(10)
		gt.Number(t, cfg.Saturation(types.FactorMeetingPresence)).Equal(40)
	})

	t.Run("unknown factor type is rejected", func(t *testing.T) {
		_, err := config.LoadAnalysisConfiguration(writeFile(t, "analysis.toml", `
[factor-weights]
standup_attendance = 1.0
`))
		gt.Error(t, err)
	})

	t.Run("non-positive weight is rejected", func(t *testing.T) {
		_, err := config.LoadAnalysisConfiguration(writeFile(t, "analysis.toml", `
[factor-weights]
question_responder = 0.0
`))
		gt.Error(t, err)
	})

	t.Run("saturation below one is rejected", func(t *testing.T) {
		_, err := config.LoadAnalysisConfiguration(writeFile(t, "analysis.toml", `
[saturations]
question_responder = 0
`))
		gt.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadAnalysisConfiguration("no/such/analysis.toml")
		gt.Error(t, err)
	})
}
