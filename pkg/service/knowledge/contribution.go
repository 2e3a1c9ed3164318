package knowledge

import (
	"context"
	"fmt"
	"time"

	"github.com/keystone-lab/keystone/pkg/domain/interfaces"
	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/model/config"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/keystone-lab/keystone/pkg/utils/logging"
)

// Scanner collects the weighted contribution factors of one (person, domain)
// pair from behavioral signals in the event store. Read-only.
type Scanner struct {
	events interfaces.EventStore
	cfg    *config.AnalysisConfig
}

// NewScanner creates a contribution scanner
func NewScanner(events interfaces.EventStore, cfg *config.AnalysisConfig) *Scanner {
	return &Scanner{events: events, cfg: cfg}
}

// factorOutcome is the typed result of one factor-source query. A failed
// source degrades to zero contribution instead of aborting the scan.
type factorOutcome struct {
	factorType types.FactorType
	count      int
	desc       string
	err        error
}

// Scan evaluates each structurally applicable factor source independently.
// A query failure in one source is logged and yields no factor from that
// source; the remaining sources still contribute. Scan itself never fails.
func (s *Scanner) Scan(ctx context.Context, orgID types.OrgID, personID types.PersonID, domain *model.KnowledgeDomain, from, to time.Time) []model.ContributionFactor {
	var outcomes []factorOutcome

	if len(domain.RelatedProcessIDs) > 0 {
		outcomes = append(outcomes, s.processParticipation(ctx, orgID, personID, domain, from, to))
	}
	if domain.Type == types.DomainTypeDepartment {
		outcomes = append(outcomes, s.meetingPresence(ctx, orgID, personID, domain, from, to))
	}
	if len(domain.Keywords) > 0 {
		outcomes = append(outcomes, s.communicationHub(ctx, orgID, personID, domain, from, to))
		outcomes = append(outcomes, s.documentAuthorship(ctx, orgID, personID, domain, from, to))
		outcomes = append(outcomes, s.questionResponder(ctx, orgID, personID, domain, from, to))
	}

	var factors []model.ContributionFactor
	for _, o := range outcomes {
		if o.err != nil {
			logging.From(ctx).Warn("contribution factor query degraded to zero",
				"factor", o.factorType,
				"person", personID,
				"domain", domain.ID,
				"error", o.err.Error(),
			)
			continue
		}
		if o.count == 0 {
			continue
		}

		saturation := s.cfg.Saturation(o.factorType)
		weight := float64(o.count) / float64(saturation)
		if weight > 1 {
			weight = 1
		}

		factors = append(factors, model.ContributionFactor{
			Type:        o.factorType,
			Weight:      weight,
			Count:       o.count,
			Description: o.desc,
		})
	}
	return factors
}

func (s *Scanner) processParticipation(ctx context.Context, orgID types.OrgID, personID types.PersonID, domain *model.KnowledgeDomain, from, to time.Time) factorOutcome {
	total := 0
	for _, processID := range domain.RelatedProcessIDs {
		count, err := s.events.Count(ctx, model.EventQuery{
			OrganizationID: orgID,
			ActorID:        personID,
			Metadata:       map[string]string{model.MetaKeyProcessID: processID.String()},
			From:           from,
			To:             to,
		})
		if err != nil {
			return factorOutcome{factorType: types.FactorProcessParticipation, err: err}
		}
		total += count
	}
	return factorOutcome{
		factorType: types.FactorProcessParticipation,
		count:      total,
		desc:       fmt.Sprintf("participated in %d events of process %s", total, domain.Name),
	}
}

func (s *Scanner) meetingPresence(ctx context.Context, orgID types.OrgID, personID types.PersonID, domain *model.KnowledgeDomain, from, to time.Time) factorOutcome {
	count, err := s.events.Count(ctx, model.EventQuery{
		OrganizationID: orgID,
		ActorID:        personID,
		TypePattern:    "meeting",
		Metadata:       map[string]string{model.MetaKeyDepartment: domain.Name},
		From:           from,
		To:             to,
	})
	if err != nil {
		return factorOutcome{factorType: types.FactorMeetingPresence, err: err}
	}
	return factorOutcome{
		factorType: types.FactorMeetingPresence,
		count:      count,
		desc:       fmt.Sprintf("attended %d meetings of %s", count, domain.Name),
	}
}

func (s *Scanner) communicationHub(ctx context.Context, orgID types.OrgID, personID types.PersonID, domain *model.KnowledgeDomain, from, to time.Time) factorOutcome {
	count, err := s.countByKeywords(ctx, orgID, personID, domain, "message", from, to)
	if err != nil {
		return factorOutcome{factorType: types.FactorCommunicationHub, err: err}
	}
	return factorOutcome{
		factorType: types.FactorCommunicationHub,
		count:      count,
		desc:       fmt.Sprintf("sent %d messages about %s", count, domain.Name),
	}
}

func (s *Scanner) documentAuthorship(ctx context.Context, orgID types.OrgID, personID types.PersonID, domain *model.KnowledgeDomain, from, to time.Time) factorOutcome {
	count, err := s.countByKeywords(ctx, orgID, personID, domain, "document", from, to)
	if err != nil {
		return factorOutcome{factorType: types.FactorDocumentAuthorship, err: err}
	}
	return factorOutcome{
		factorType: types.FactorDocumentAuthorship,
		count:      count,
		desc:       fmt.Sprintf("authored %d documents about %s", count, domain.Name),
	}
}

func (s *Scanner) questionResponder(ctx context.Context, orgID types.OrgID, personID types.PersonID, domain *model.KnowledgeDomain, from, to time.Time) factorOutcome {
	count, err := s.countByKeywords(ctx, orgID, personID, domain, "answer", from, to)
	if err != nil {
		return factorOutcome{factorType: types.FactorQuestionResponder, err: err}
	}
	return factorOutcome{
		factorType: types.FactorQuestionResponder,
		count:      count,
		desc:       fmt.Sprintf("answered %d questions about %s", count, domain.Name),
	}
}

func (s *Scanner) countByKeywords(ctx context.Context, orgID types.OrgID, personID types.PersonID, domain *model.KnowledgeDomain, typePattern string, from, to time.Time) (int, error) {
	total := 0
	for _, keyword := range domain.Keywords {
		count, err := s.events.Count(ctx, model.EventQuery{
			OrganizationID: orgID,
			ActorID:        personID,
			TypePattern:    typePattern,
			Metadata:       map[string]string{model.MetaKeyTopic: keyword},
			From:           from,
			To:             to,
		})
		if err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}
