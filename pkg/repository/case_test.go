package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
	"github.com/campus-desk/caseinbox/pkg/repository/firestore"
	"github.com/campus-desk/caseinbox/pkg/repository/memory"
)

func newCase(subject string, dept types.Department) *model.Case {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return &model.Case{
		Department: dept,
		Subject:    subject,
		Requester: model.Requester{
			ID:    "req-0001",
			Name:  "Jordan Lee",
			Email: "jordan.lee@example.edu",
		},
		Priority:  types.PriorityNormal,
		Status:    types.StatusOpen,
		Channel:   types.ChannelEmail,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func runCaseRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns sequential identities", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created1, err := repo.Case().Create(ctx, newCase("Password reset", types.DepartmentIT))
		gt.NoError(t, err).Required()

		gt.Value(t, created1.ID).NotEqual(types.CaseID(""))
		gt.Value(t, created1.TicketNumber).NotEqual(types.TicketNumber(""))
		gt.Value(t, created1.Version).Equal(int64(1))

		created2, err := repo.Case().Create(ctx, newCase("VPN not connecting", types.DepartmentIT))
		gt.NoError(t, err).Required()

		gt.Value(t, created2.ID).NotEqual(created1.ID)
		gt.Value(t, created2.TicketNumber).NotEqual(created1.TicketNumber)
	})

	t.Run("Get retrieves existing case", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Case().Create(ctx, newCase("Tuition invoice wrong", types.DepartmentFinance))
		gt.NoError(t, err).Required()

		retrieved, err := repo.Case().Get(ctx, created.ID)
		gt.NoError(t, err).Required()

		gt.Value(t, retrieved.ID).Equal(created.ID)
		gt.Value(t, retrieved.Subject).Equal("Tuition invoice wrong")
		gt.Value(t, retrieved.Requester.Email).Equal("jordan.lee@example.edu")
	})

	t.Run("Get returns ErrNotFound for missing case", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Case().Get(ctx, types.CaseID("CASE-99999999"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("GetBatch fails as a whole on any missing id", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Case().Create(ctx, newCase("Dorm key lost", types.DepartmentHousing))
		gt.NoError(t, err).Required()

		_, err = repo.Case().GetBatch(ctx, []types.CaseID{created.ID, "CASE-99999999"})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Update bumps version and preserves identity fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Case().Create(ctx, newCase("Transcript request", types.DepartmentRegistrar))
		gt.NoError(t, err).Required()

		modified := created.Clone()
		modified.Subject = "Transcript request (expedited)"
		modified.TicketNumber = "TKT-00000000" // must be ignored
		modified.Priority = types.PriorityHigh

		updated, err := repo.Case().Update(ctx, modified)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Subject).Equal("Transcript request (expedited)")
		gt.Value(t, updated.Priority).Equal(types.PriorityHigh)
		gt.Value(t, updated.Version).Equal(created.Version + 1)
		gt.Value(t, updated.TicketNumber).Equal(created.TicketNumber)
		gt.Bool(t, updated.CreatedAt.Equal(created.CreatedAt)).True()
	})

	t.Run("Update with stale version returns ErrConflict", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Case().Create(ctx, newCase("Enrollment hold", types.DepartmentAdmissions))
		gt.NoError(t, err).Required()

		first := created.Clone()
		first.Status = types.StatusWaiting
		_, err = repo.Case().Update(ctx, first)
		gt.NoError(t, err).Required()

		stale := created.Clone() // still carries version 1
		stale.Status = types.StatusResolved
		_, err = repo.Case().Update(ctx, stale)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrConflict)).True()
	})

	t.Run("BatchUpdate is atomic", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		c1, err := repo.Case().Create(ctx, newCase("Wifi down in library", types.DepartmentIT))
		gt.NoError(t, err).Required()
		c2, err := repo.Case().Create(ctx, newCase("Printer jam", types.DepartmentIT))
		gt.NoError(t, err).Required()

		// Second entry carries a stale version; nothing may be written.
		u1 := c1.Clone()
		u1.Status = types.StatusResolved
		u2 := c2.Clone()
		u2.Status = types.StatusResolved
		u2.Version = 99

		_, err = repo.Case().BatchUpdate(ctx, []*model.Case{u1, u2})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrConflict)).True()

		unchanged, err := repo.Case().Get(ctx, c1.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, unchanged.Status).Equal(types.StatusOpen)
		gt.Value(t, unchanged.Version).Equal(c1.Version)
	})

	t.Run("BatchUpdate with a repeated id commits once, last entry wins", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		c1, err := repo.Case().Create(ctx, newCase("Password reset loop", types.DepartmentIT))
		gt.NoError(t, err).Required()

		u1 := c1.Clone()
		u1.Priority = types.PriorityHigh
		u2 := c1.Clone()
		u2.Priority = types.PriorityUrgent

		out, err := repo.Case().BatchUpdate(ctx, []*model.Case{u1, u2})
		gt.NoError(t, err).Required()
		gt.Array(t, out).Length(2)

		stored, err := repo.Case().Get(ctx, c1.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.Priority).Equal(types.PriorityUrgent)
		gt.Value(t, stored.Version).Equal(c1.Version + 1)
	})

	t.Run("List filters by department and open status", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Case().Create(ctx, newCase("Meal plan change", types.DepartmentHousing))
		gt.NoError(t, err).Required()

		closed := newCase("Old housing request", types.DepartmentHousing)
		closed.Status = types.StatusClosed
		_, err = repo.Case().Create(ctx, closed)
		gt.NoError(t, err).Required()

		_, err = repo.Case().Create(ctx, newCase("Email migration", types.DepartmentIT))
		gt.NoError(t, err).Required()

		housing, err := repo.Case().List(ctx, interfaces.WithDepartment(types.DepartmentHousing))
		gt.NoError(t, err).Required()
		gt.Array(t, housing).Length(2)

		openHousing, err := repo.Case().List(ctx,
			interfaces.WithDepartment(types.DepartmentHousing),
			interfaces.WithOpenOnly(),
		)
		gt.NoError(t, err).Required()
		gt.Array(t, openHousing).Length(1)
		gt.Value(t, openHousing[0].Subject).Equal("Meal plan change")
	})

	t.Run("returned cases are detached copies", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Case().Create(ctx, newCase("Detached copy check", types.DepartmentIT))
		gt.NoError(t, err).Required()

		created.Subject = "mutated by caller"

		retrieved, err := repo.Case().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Subject).Equal("Detached copy check")
	})
}

func TestCaseRepository_Memory(t *testing.T) {
	runCaseRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestCaseRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runCaseRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, "")
		gt.NoError(t, err).Required()
		return repo
	})
}
