package leave_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/leave"
	"github.com/vidyasetu/backend/core/user"
	"github.com/vidyasetu/backend/storage/database/dummy"
	"github.com/vidyasetu/backend/tests"
)

type fixture struct {
	svc     *leave.Service
	users   user.Repository
	teacher user.User
}

func setup(t *testing.T) fixture {
	db, err := dummydb.Open()
	require.NoError(t, err)
	validate, _ := testutil.NewValidator()
	users := dummydb.NewUserRepository(db)
	return fixture{
		svc:     leave.NewService(dummydb.NewLeaveRepository(db), validate),
		users:   users,
		teacher: testutil.CreateUser(t, users, "school-1", "Meena", "9000000001", "", user.RoleTeacher),
	}
}

func TestService_ApplyStaff(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	l, err := f.svc.ApplyStaff(ctx, f.teacher, leave.NewLeave{
		Type:   " Sick ",
		Start:  core.MustParseDate("2024-01-01"),
		End:    core.MustParseDate("2024-01-02"),
		Reason: "fever",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, l.ID)
	assert.Equal(t, "Sick", l.Type)
	assert.Equal(t, "school-1", l.SchoolID)
	assert.Equal(t, leave.StatusPending, l.Status)

	leaves, err := f.svc.SchoolStaffLeaves(ctx, "school-1")
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, "Meena", leaves[0].UserName)
}

func TestService_ApplyStaff_badRange(t *testing.T) {
	f := setup(t)
	_, err := f.svc.ApplyStaff(context.Background(), f.teacher, leave.NewLeave{
		Type:  "Casual",
		Start: core.MustParseDate("2024-01-05"),
		End:   core.MustParseDate("2024-01-04"),
	})
	require.Error(t, err)
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok, "want *core.ValidationError, got %T", err)
	assert.Equal(t, "end_date", vErr.Fields[0].Field)

	leaves, err := f.svc.StaffLeaves(context.Background(), f.teacher.ID)
	require.NoError(t, err)
	assert.Empty(t, leaves)
}

func TestService_LatestStaffLeaves(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	for _, typ := range []string{"Sick", "Casual", "Earned"} {
		_, err := f.svc.ApplyStaff(ctx, f.teacher, leave.NewLeave{
			Type:  typ,
			Start: core.MustParseDate("2024-01-10"),
			End:   core.MustParseDate("2024-01-10"),
		})
		require.NoError(t, err)
	}

	leaves, err := f.svc.LatestStaffLeaves(ctx, f.teacher.ID, 2)
	require.NoError(t, err)
	assert.Len(t, leaves, 2)
}

func TestService_ReviewStaff(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	l, err := f.svc.ApplyStaff(ctx, f.teacher, leave.NewLeave{
		Type:  "Sick",
		Start: core.MustParseDate("2024-01-01"),
		End:   core.MustParseDate("2024-01-01"),
	})
	require.NoError(t, err)

	err = f.svc.ReviewStaff(ctx, "school-1", l.ID, leave.Review{Status: " Approved ", Comment: " get well "})
	require.NoError(t, err)
	leaves, err := f.svc.StaffLeaves(ctx, f.teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, leaves[0].Status)
	assert.Equal(t, "get well", leaves[0].PrincipalComment)

	// another school cannot review it
	err = f.svc.ReviewStaff(ctx, "school-2", l.ID, leave.Review{Status: leave.StatusRejected})
	assert.Equal(t, leave.ErrNotFound, errors.Cause(err))

	err = f.svc.ReviewStaff(ctx, "school-1", "missing", leave.Review{Status: leave.StatusRejected})
	assert.Equal(t, leave.ErrNotFound, errors.Cause(err))

	err = f.svc.ReviewStaff(ctx, "school-1", l.ID, leave.Review{Status: leave.StatusPending})
	assert.Error(t, err)
}

func TestService_ApplyStudent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	parent := testutil.CreateUser(t, f.users, "school-1", "Ravi", "9000000002", "", user.RoleParent)

	_, err := f.svc.ApplyStudent(ctx, parent, leave.NewStudentLeave{
		NewLeave: leave.NewLeave{Type: "Fever", Start: core.MustParseDate("2024-01-01"), End: core.MustParseDate("2024-01-03")},
	})
	assert.Error(t, err, "student id is required")

	l, err := f.svc.ApplyStudent(ctx, parent, leave.NewStudentLeave{
		NewLeave:  leave.NewLeave{Type: "Fever", Start: core.MustParseDate("2024-01-01"), End: core.MustParseDate("2024-01-03")},
		StudentID: "student-1",
	})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, l.ParentID)

	leaves, err := f.svc.ParentLeaves(ctx, parent.ID)
	require.NoError(t, err)
	assert.Len(t, leaves, 1)

	latest, err := f.svc.LatestStudentLeaves(ctx, "student-1", 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, l.ID, latest[0].ID)

	require.NoError(t, f.svc.ReviewStudent(ctx, "school-1", l.ID, leave.Review{Status: leave.StatusRejected}))
	latest, err = f.svc.LatestStudentLeaves(ctx, "student-1", 1)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, latest[0].Status)
}
