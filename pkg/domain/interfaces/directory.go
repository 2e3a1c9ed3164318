package interfaces

import (
	"context"

	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/types"
)

// Directory is the organizational graph of people, departments and processes
type Directory interface {
	// ListPeople returns all people of the organization
	ListPeople(ctx context.Context, orgID types.OrgID) ([]*model.Person, error)

	// GetPerson returns one person, or ErrNotFound
	GetPerson(ctx context.Context, orgID types.OrgID, personID types.PersonID) (*model.Person, error)

	// ListProcesses returns all known processes of the organization
	ListProcesses(ctx context.Context, orgID types.OrgID) ([]*model.Process, error)

	// Departments returns the distinct non-empty department values across
	// the organization's people
	Departments(ctx context.Context, orgID types.OrgID) ([]string, error)
}
