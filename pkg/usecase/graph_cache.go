package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/keystone-lab/keystone/pkg/service/knowledge"
)

const defaultGraphCacheTTL = 5 * time.Minute

type cachedGraph struct {
	graph     *model.KnowledgeGraph
	expiresAt time.Time
}

// graphCache memoizes built knowledge graphs. Read-many/write-once per key;
// eviction is lazy on access. Keys incorporate the window truncated to the
// hour so scheduled re-runs naturally miss.
type graphCache struct {
	ttl   time.Duration
	cache sync.Map
}

func newGraphCache(ttl time.Duration) *graphCache {
	return &graphCache{ttl: ttl}
}

// graphCacheKey digests everything that shapes a build: the window, the
// thresholds, and the full content of any custom domains. Keywords and
// related-process bindings are part of the key, not just the IDs, so two
// custom sets sharing IDs never collide.
func graphCacheKey(orgID types.OrgID, from, to time.Time, opts GraphOptions) string {
	domains := knowledge.Normalize(opts.CustomDomains)
	sort.Slice(domains, func(i, j int) bool { return domains[i].ID < domains[j].ID })

	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d|%.2f|%t",
		orgID,
		from.Truncate(time.Hour).Unix(),
		to.Truncate(time.Hour).Unix(),
		opts.MinActivityThreshold,
		opts.IncludeExternalDomains,
	)
	for _, d := range domains {
		fmt.Fprintf(h, "|%s|%s|%s|%v|%v", d.ID, d.Type, d.Name, d.Keywords, d.RelatedProcessIDs)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *graphCache) get(key string) (*model.KnowledgeGraph, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	val, ok := c.cache.Load(key)
	if !ok {
		return nil, false
	}

	cached := val.(*cachedGraph)
	if time.Now().After(cached.expiresAt) {
		c.cache.Delete(key)
		return nil, false
	}
	return cached.graph, true
}

func (c *graphCache) set(key string, graph *model.KnowledgeGraph) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.cache.Store(key, &cachedGraph{
		graph:     graph,
		expiresAt: time.Now().Add(c.ttl),
	})
}
