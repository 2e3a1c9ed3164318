package firestore

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type directory struct {
	client           *firestore.Client
	collectionPrefix string
}

func newDirectory(client *firestore.Client) *directory {
	return &directory{client: client}
}

// personDoc is the Firestore document representation of model.Person
type personDoc struct {
	ID         string `firestore:"ID"`
	Name       string `firestore:"Name"`
	Email      string `firestore:"Email,omitempty"`
	Department string `firestore:"Department,omitempty"`
	Title      string `firestore:"Title,omitempty"`
}

func (d *personDoc) toModel() *model.Person {
	return &model.Person{
		ID:         types.PersonID(d.ID),
		Name:       d.Name,
		Email:      d.Email,
		Department: d.Department,
		Title:      d.Title,
	}
}

// processDoc is the Firestore document representation of model.Process
type processDoc struct {
	ID          string `firestore:"ID"`
	Name        string `firestore:"Name"`
	Description string `firestore:"Description,omitempty"`
	OwnerID     string `firestore:"OwnerID,omitempty"`
}

func (d *processDoc) toModel() *model.Process {
	return &model.Process{
		ID:          types.ProcessID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		OwnerID:     types.PersonID(d.OwnerID),
	}
}

func (r *directory) orgDoc(orgID types.OrgID) *firestore.DocumentRef {
	return r.client.Collection(r.collectionPrefix + "organizations").Doc(orgID.String())
}

func (r *directory) ListPeople(ctx context.Context, orgID types.OrgID) ([]*model.Person, error) {
	iter := r.orgDoc(orgID).Collection("people").OrderBy("ID", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var people []*model.Person
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list people",
				goerr.V("orgID", orgID), goerr.T(types.TagUpstreamUnavailable))
		}

		var d personDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode person document", goerr.V("doc", doc.Ref.ID))
		}
		people = append(people, d.toModel())
	}
	return people, nil
}

func (r *directory) GetPerson(ctx context.Context, orgID types.OrgID, personID types.PersonID) (*model.Person, error) {
	doc, err := r.orgDoc(orgID).Collection("people").Doc(personID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "person not found",
				goerr.V("orgID", orgID), goerr.V("personID", personID))
		}
		return nil, goerr.Wrap(err, "failed to get person",
			goerr.V("personID", personID), goerr.T(types.TagUpstreamUnavailable))
	}

	var d personDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode person document", goerr.V("doc", doc.Ref.ID))
	}
	return d.toModel(), nil
}

func (r *directory) ListProcesses(ctx context.Context, orgID types.OrgID) ([]*model.Process, error) {
	iter := r.orgDoc(orgID).Collection("processes").OrderBy("ID", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var processes []*model.Process
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list processes",
				goerr.V("orgID", orgID), goerr.T(types.TagUpstreamUnavailable))
		}

		var d processDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode process document", goerr.V("doc", doc.Ref.ID))
		}
		processes = append(processes, d.toModel())
	}
	return processes, nil
}

func (r *directory) Departments(ctx context.Context, orgID types.OrgID) ([]string, error) {
	people, err := r.ListPeople(ctx, orgID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var departments []string
	for _, p := range people {
		if p.Department == "" || seen[p.Department] {
			continue
		}
		seen[p.Department] = true
		departments = append(departments, p.Department)
	}
	sort.Strings(departments)
	return departments, nil
}
