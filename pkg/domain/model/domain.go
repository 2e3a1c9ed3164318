package model

import (
	"strings"

	"github.com/keystone-lab/keystone/pkg/domain/types"
)

// KnowledgeDomain is a unit of organizational knowledge for which expertise
// is tracked: a process, a department, or a topic observed on events.
// Domains are immutable once discovered within a run.
type KnowledgeDomain struct {
	ID                types.DomainID
	Name              string
	Type              types.DomainType
	RelatedProcessIDs []types.ProcessID
	Keywords          []string
}

// NewProcessDomain builds a domain backed by a known organizational process.
func NewProcessDomain(process *Process) *KnowledgeDomain {
	return &KnowledgeDomain{
		ID:                types.DomainID("process:" + process.ID.String()),
		Name:              process.Name,
		Type:              types.DomainTypeProcess,
		RelatedProcessIDs: []types.ProcessID{process.ID},
	}
}

// NewDepartmentDomain builds a domain from a distinct department value.
func NewDepartmentDomain(department string) *KnowledgeDomain {
	return &KnowledgeDomain{
		ID:   types.DomainID("dept:" + strings.ToLower(department)),
		Name: department,
		Type: types.DomainTypeDepartment,
	}
}

// NewTopicDomain builds a domain from a topic metadata value observed on
// events in the lookback window.
func NewTopicDomain(topic string) *KnowledgeDomain {
	return &KnowledgeDomain{
		ID:       types.DomainID("topic:" + topic),
		Name:     topic,
		Type:     types.DomainTypeTopic,
		Keywords: []string{topic},
	}
}

// Clone returns a deep copy of the domain
func (d *KnowledgeDomain) Clone() *KnowledgeDomain {
	copied := &KnowledgeDomain{
		ID:   d.ID,
		Name: d.Name,
		Type: d.Type,
	}
	if d.RelatedProcessIDs != nil {
		copied.RelatedProcessIDs = make([]types.ProcessID, len(d.RelatedProcessIDs))
		copy(copied.RelatedProcessIDs, d.RelatedProcessIDs)
	}
	if d.Keywords != nil {
		copied.Keywords = make([]string, len(d.Keywords))
		copy(copied.Keywords, d.Keywords)
	}
	return copied
}
