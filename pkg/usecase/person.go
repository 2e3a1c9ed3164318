package usecase

import (
	"context"

	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// GetPersonKnowledge returns one person's knowledge profile from a graph
// build over the window. An unknown person yields (nil, nil) so callers can
// distinguish "no result" from a failure. A known person with no scored
// activity yields an empty profile with low criticality.
func (uc *UseCases) GetPersonKnowledge(ctx context.Context, orgID types.OrgID, personID types.PersonID, opts GraphOptions) (*model.PersonKnowledge, error) {
	opts = opts.withDefaults()
	if err := orgID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid organization ID", goerr.T(types.TagInvalidOption))
	}
	if err := personID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid person ID", goerr.T(types.TagInvalidOption))
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	person, err := uc.repo.Directory().GetPerson(ctx, orgID, personID)
	if err != nil {
		if goerr.HasTag(err, types.TagNotFound) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to look up person", goerr.V("personID", personID))
	}

	graph, err := uc.BuildKnowledgeGraph(ctx, orgID, opts)
	if err != nil {
		return nil, err
	}

	if pk := graph.Expert(personID); pk != nil {
		return pk, nil
	}

	return &model.PersonKnowledge{
		PersonID:    person.ID,
		Name:        person.Name,
		Email:       person.Email,
		Department:  person.Department,
		Criticality: types.CriticalityLow,
	}, nil
}
