package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/keystone-lab/keystone/pkg/domain/model"
	"github.com/keystone-lab/keystone/pkg/repository/firestore"
	"github.com/keystone-lab/keystone/pkg/repository/memory"
)

func seedDirectory(repo *memory.Memory) {
	repo.AddPerson(testOrgID, &model.Person{ID: "alice", Name: "Alice", Email: "alice@example.com", Department: "Engineering"})
	repo.AddPerson(testOrgID, &model.Person{ID: "bob", Name: "Bob", Department: "Engineering"})
	repo.AddPerson(testOrgID, &model.Person{ID: "carol", Name: "Carol", Department: "Sales"})
	repo.AddProcess(testOrgID, &model.Process{ID: "payroll", Name: "Payroll", OwnerID: "alice"})
}

func TestMemoryDirectory(t *testing.T) {
	repo := memory.New()
	seedDirectory(repo)
	ctx := context.Background()

	t.Run("list people sorted by ID", func(t *testing.T) {
		people, err := repo.Directory().ListPeople(ctx, testOrgID)
		gt.NoError(t, err).Required()
		gt.Array(t, people).Length(3)
		gt.Value(t, people[0].ID).Equal("alice")
		gt.Value(t, people[2].ID).Equal("carol")
	})

	t.Run("get person", func(t *testing.T) {
		p, err := repo.Directory().GetPerson(ctx, testOrgID, "bob")
		gt.NoError(t, err).Required()
		gt.Value(t, p.Name).Equal("Bob")
	})

	t.Run("get unknown person returns ErrNotFound", func(t *testing.T) {
		_, err := repo.Directory().GetPerson(ctx, testOrgID, "ghost")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, memory.ErrNotFound)).True()
	})

	t.Run("list processes", func(t *testing.T) {
		processes, err := repo.Directory().ListProcesses(ctx, testOrgID)
		gt.NoError(t, err).Required()
		gt.Array(t, processes).Length(1)
		gt.Value(t, processes[0].ID).Equal("payroll")
	})

	t.Run("departments are distinct and sorted", func(t *testing.T) {
		departments, err := repo.Directory().Departments(ctx, testOrgID)
		gt.NoError(t, err).Required()
		gt.Array(t, departments).Equal([]string{"Engineering", "Sales"})
	})

	t.Run("returned people are copies", func(t *testing.T) {
		p, err := repo.Directory().GetPerson(ctx, testOrgID, "alice")
		gt.NoError(t, err).Required()
		p.Name = "mutated"

		again, err := repo.Directory().GetPerson(ctx, testOrgID, "alice")
		gt.NoError(t, err).Required()
		gt.Value(t, again.Name).Equal("Alice")
	})
}

func TestFirestoreDirectory(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		databaseID = "(default)"
	}

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID)
	gt.NoError(t, err).Required()
	defer repo.Close()

	// Read paths only; the engine never writes through the repository.
	t.Run("unknown person maps to ErrNotFound", func(t *testing.T) {
		_, err := repo.Directory().GetPerson(ctx, "integration-test-org", "no-such-person")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, firestore.ErrNotFound)).True()
	})

	t.Run("empty organization lists nothing", func(t *testing.T) {
		people, err := repo.Directory().ListPeople(ctx, "integration-test-org")
		gt.NoError(t, err).Required()
		gt.Array(t, people).Length(0)
	})
}
