package config

import "github.com/keystone-lab/keystone/pkg/domain/types"

// AnalysisConfig holds the tunable constants of the knowledge analysis.
// Zero-value fields fall back to the defaults below.
type AnalysisConfig struct {
	// FactorWeights scales each contribution factor type when combining
	// factors into an expertise score.
	FactorWeights map[types.FactorType]float64

	// Saturations is the per-factor event count at which the factor's
	// normalized weight reaches 1.0.
	Saturations map[types.FactorType]int

	// MatrixConcurrency bounds the worker pool of the expertise matrix
	// build. Bounded by the event store's query capacity, not by CPU.
	MatrixConcurrency int

	// MaxTopicDomains caps discovery of topic domains per run.
	MaxTopicDomains int
}

// Defaults, tuned empirically: answering questions is the strongest
// expertise signal, meeting attendance the weakest.
const (
	DefaultMatrixConcurrency = 8
	DefaultMaxTopicDomains   = 50
)

func defaultFactorWeights() map[types.FactorType]float64 {
	return map[types.FactorType]float64{
		types.FactorProcessParticipation: 1.2,
		types.FactorCommunicationHub:     1.0,
		types.FactorDocumentAuthorship:   1.3,
		types.FactorMeetingPresence:      0.8,
		types.FactorQuestionResponder:    1.5,
	}
}

func defaultSaturations() map[types.FactorType]int {
	return map[types.FactorType]int{
		types.FactorProcessParticipation: 50,
		types.FactorCommunicationHub:     30,
		types.FactorDocumentAuthorship:   20,
		types.FactorMeetingPresence:      40,
		types.FactorQuestionResponder:    20,
	}
}

// DefaultAnalysisConfig returns the built-in tuning
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		FactorWeights:     defaultFactorWeights(),
		Saturations:       defaultSaturations(),
		MatrixConcurrency: DefaultMatrixConcurrency,
		MaxTopicDomains:   DefaultMaxTopicDomains,
	}
}

// FactorWeight returns the combining weight for a factor type
func (c *AnalysisConfig) FactorWeight(ft types.FactorType) float64 {
	if c != nil && c.FactorWeights != nil {
		if w, ok := c.FactorWeights[ft]; ok {
			return w
		}
	}
	return defaultFactorWeights()[ft]
}

// Saturation returns the saturation count for a factor type
func (c *AnalysisConfig) Saturation(ft types.FactorType) int {
	if c != nil && c.Saturations != nil {
		if s, ok := c.Saturations[ft]; ok {
			return s
		}
	}
	return defaultSaturations()[ft]
}

// Concurrency returns the matrix worker pool size
func (c *AnalysisConfig) Concurrency() int {
	if c != nil && c.MatrixConcurrency > 0 {
		return c.MatrixConcurrency
	}
	return DefaultMatrixConcurrency
}

// TopicCap returns the topic-domain discovery cap
func (c *AnalysisConfig) TopicCap() int {
	if c != nil && c.MaxTopicDomains > 0 {
		return c.MaxTopicDomains
	}
	return DefaultMaxTopicDomains
}
