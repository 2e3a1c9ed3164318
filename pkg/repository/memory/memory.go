package memory

import (
	"github.com/keystone-lab/keystone/pkg/domain/interfaces"
	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = goerr.New("not found", goerr.T(types.TagNotFound))

// Memory is the in-memory repository used for development and tests
type Memory struct {
	events    *eventStore
	directory *directory
}

var _ interfaces.Repository = &Memory{}

// New creates an empty in-memory repository
func New() *Memory {
	return &Memory{
		events:    newEventStore(),
		directory: newDirectory(),
	}
}

// EventStore returns the in-memory event store
func (m *Memory) EventStore() interfaces.EventStore {
	return m.events
}

// Directory returns the in-memory directory
func (m *Memory) Directory() interfaces.Directory {
	return m.directory
}

// Close is a no-op for the in-memory backend
func (m *Memory) Close() error {
	return nil
}

// AddPerson seeds a directory entry
func (m *Memory) AddPerson(orgID types.OrgID, p *model.Person) {
	m.directory.AddPerson(orgID, p)
}

// AddProcess seeds a process entry
func (m *Memory) AddProcess(orgID types.OrgID, p *model.Process) {
	m.directory.AddProcess(orgID, p)
}

// AddEvent seeds an event
func (m *Memory) AddEvent(e *model.Event) {
	m.events.Add(e)
}
