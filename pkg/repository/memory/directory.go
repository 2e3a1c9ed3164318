package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type directory struct {
	mu        sync.RWMutex
	people    map[types.OrgID]map[types.PersonID]*model.Person
	processes map[types.OrgID]map[types.ProcessID]*model.Process
}

func newDirectory() *directory {
	return &directory{
		people:    make(map[types.OrgID]map[types.PersonID]*model.Person),
		processes: make(map[types.OrgID]map[types.ProcessID]*model.Process),
	}
}

// AddPerson stores a person. Used by seed loaders and tests.
func (d *directory) AddPerson(orgID types.OrgID, p *model.Person) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.people[orgID]; !ok {
		d.people[orgID] = make(map[types.PersonID]*model.Person)
	}
	d.people[orgID][p.ID] = p.Clone()
}

// AddProcess stores a process. Used by seed loaders and tests.
func (d *directory) AddProcess(orgID types.OrgID, p *model.Process) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.processes[orgID]; !ok {
		d.processes[orgID] = make(map[types.ProcessID]*model.Process)
	}
	d.processes[orgID][p.ID] = p.Clone()
}

func (d *directory) ListPeople(ctx context.Context, orgID types.OrgID) ([]*model.Person, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	bucket := d.people[orgID]
	result := make([]*model.Person, 0, len(bucket))
	for _, p := range bucket {
		result = append(result, p.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (d *directory) GetPerson(ctx context.Context, orgID types.OrgID, personID types.PersonID) (*model.Person, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	bucket, ok := d.people[orgID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "person not found", goerr.V("personID", personID))
	}
	p, ok := bucket[personID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "person not found", goerr.V("personID", personID))
	}
	return p.Clone(), nil
}

func (d *directory) ListProcesses(ctx context.Context, orgID types.OrgID) ([]*model.Process, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	bucket := d.processes[orgID]
	result := make([]*model.Process, 0, len(bucket))
	for _, p := range bucket {
		result = append(result, p.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (d *directory) Departments(ctx context.Context, orgID types.OrgID) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	seen := make(map[string]bool)
	var departments []string
	for _, p := range d.people[orgID] {
		if p.Department == "" || seen[p.Department] {
			continue
		}
		seen[p.Department] = true
		departments = append(departments, p.Department)
	}
	sort.Strings(departments)
	return departments, nil
}
