package model

import "github.com/keystone-lab/keystone/pkg/domain/types"

// Process is a directory entry for an organizational process
type Process struct {
	ID          types.ProcessID
	Name        string
	Description string
	OwnerID     types.PersonID
}

// Clone returns a copy of the process
func (p *Process) Clone() *Process {
	copied := *p
	return &copied
}
