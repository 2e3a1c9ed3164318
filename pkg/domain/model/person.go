package model

import "github.com/keystone-lab/keystone/pkg/domain/types"

// Person is a directory entry for one member of the organization.
// Email is redacted from structured logs.
type Person struct {
	ID         types.PersonID
	Name       string
	Email      string `masq:"secret"`
	Department string
	Title      string
}

// Clone returns a copy of the person
func (p *Person) Clone() *Person {
	copied := *p
	return &copied
}
