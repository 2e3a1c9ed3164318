package usecase

import (
	"time"

	"github.com/keystone-lab/keystone/pkg/domain/interfaces"
	"github.com/keystone-lab/keystone/pkg/domain/model/config"
	"github.com/keystone-lab/keystone/pkg/service/knowledge"
)

// UseCases exposes the knowledge concentration analysis operations. It is an
// explicit, caller-constructed service holding only its external-store
// handles; there is no shared global instance.
type UseCases struct {
	repo        interfaces.Repository
	analysisCfg *config.AnalysisConfig

	discoverer *knowledge.Discoverer
	builder    *knowledge.MatrixBuilder

	graphCache *graphCache
}

type Option func(*UseCases)

// WithAnalysisConfig overrides the analysis tuning constants
func WithAnalysisConfig(cfg *config.AnalysisConfig) Option {
	return func(uc *UseCases) {
		uc.analysisCfg = cfg
	}
}

// WithGraphCacheTTL sets the memoization TTL of built knowledge graphs.
// Zero disables caching. The cache is an evictable optimization, never
// correctness-bearing.
func WithGraphCacheTTL(ttl time.Duration) Option {
	return func(uc *UseCases) {
		uc.graphCache = newGraphCache(ttl)
	}
}

// New creates the analysis service on top of a repository
func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:        repo,
		analysisCfg: config.DefaultAnalysisConfig(),
		graphCache:  newGraphCache(defaultGraphCacheTTL),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.discoverer = knowledge.NewDiscoverer(repo, uc.analysisCfg)
	scanner := knowledge.NewScanner(repo.EventStore(), uc.analysisCfg)
	uc.builder = knowledge.NewMatrixBuilder(scanner, uc.analysisCfg)

	return uc
}
