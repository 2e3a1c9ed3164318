package knowledge

import (
	"context"
	"time"

	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/model/config"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/keystone-lab/keystone/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Cell is one evaluated (person, domain) entry of the expertise matrix
type Cell struct {
	PersonID types.PersonID
	DomainID types.DomainID
	Score    float64 // 0-100
	Factors  []model.ContributionFactor
}

// Matrix maps person → domain → evaluated cell. Entries below the
// minimum-activity threshold are absent, not zero.
type Matrix map[types.PersonID]map[types.DomainID]Cell

// Score returns the expertise score of a cell, or 0 when absent
func (m Matrix) Score(personID types.PersonID, domainID types.DomainID) float64 {
	if row, ok := m[personID]; ok {
		if cell, ok := row[domainID]; ok {
			return cell.Score
		}
	}
	return 0
}

// MatrixBuilder computes the full person × domain expertise matrix. This is
// the dominant cost center of a run: every cell issues its own reads against
// the event store, so cells are evaluated by a bounded worker pool. The pool
// size is bounded by the store's query capacity, not by CPU.
type MatrixBuilder struct {
	scanner *Scanner
	cfg     *config.AnalysisConfig
}

// NewMatrixBuilder creates a matrix builder on top of a contribution scanner
func NewMatrixBuilder(scanner *Scanner, cfg *config.AnalysisConfig) *MatrixBuilder {
	return &MatrixBuilder{scanner: scanner, cfg: cfg}
}

// Build evaluates all (person, domain) cells concurrently and merges them in
// a single aggregating owner; workers never touch the shared map. Entries
// scoring below minActivityThreshold are dropped.
func (b *MatrixBuilder) Build(ctx context.Context, orgID types.OrgID, persons []*model.Person, domains []*model.KnowledgeDomain, from, to time.Time, minActivityThreshold float64) (Matrix, error) {
	results := make(chan Cell, b.cfg.Concurrency())

	matrix := make(Matrix)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for cell := range results {
			if cell.Score < minActivityThreshold {
				continue
			}
			if _, ok := matrix[cell.PersonID]; !ok {
				matrix[cell.PersonID] = make(map[types.DomainID]Cell)
			}
			matrix[cell.PersonID][cell.DomainID] = cell
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Concurrency())

	for _, person := range persons {
		for _, domain := range domains {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return goerr.Wrap(err, "matrix build cancelled")
				}
				results <- b.evaluate(gctx, orgID, person.ID, domain, from, to)
				return nil
			})
		}
	}

	err := g.Wait()
	close(results)
	<-done
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Debug("expertise matrix built",
		"org", orgID,
		"persons", len(persons),
		"domains", len(domains),
		"active_persons", len(matrix),
	)

	return matrix, nil
}

// evaluate scans one cell and folds the factors into a 0-100 score.
// Factor weights are fixed constants reflecting signal strength: directly
// answering questions weighs most, meeting attendance least.
func (b *MatrixBuilder) evaluate(ctx context.Context, orgID types.OrgID, personID types.PersonID, domain *model.KnowledgeDomain, from, to time.Time) Cell {
	factors := b.scanner.Scan(ctx, orgID, personID, domain, from, to)

	var totalScore, totalWeight float64
	for _, f := range factors {
		ftWeight := b.cfg.FactorWeight(f.Type)
		magnitude := float64(f.Count) / 10
		if magnitude > 10 {
			magnitude = 10
		}
		totalScore += f.Weight * ftWeight * magnitude
		totalWeight += ftWeight
	}

	score := 0.0
	if totalWeight > 0 {
		score = totalScore / totalWeight * 20
		if score > 100 {
			score = 100
		}
	}

	return Cell{
		PersonID: personID,
		DomainID: domain.ID,
		Score:    score,
		Factors:  factors,
	}
}
