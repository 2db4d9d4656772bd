package attendance_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/attendance"
	"github.com/vidyasetu/backend/core/user"
	"github.com/vidyasetu/backend/storage/database/dummy"
	"github.com/vidyasetu/backend/tests"
)

var today = core.MustParseDate("2024-06-15")

func TestService(t *testing.T) {
	db, err := dummydb.Open()
	require.NoError(t, err)
	validate, _ := testutil.NewValidator()
	students := dummydb.NewStudentRepository(db)
	svc := attendance.NewService(dummydb.NewAttendanceRepository(db), students, validate)
	ctx := context.Background()

	teacher := testutil.CreateUser(t, dummydb.NewUserRepository(db), "school-1", "Meena", "9000000001", "", user.RoleTeacher)
	asha := testutil.CreateStudent(t, students, "school-1", "Asha", "5A", "")
	bina := testutil.CreateStudent(t, students, "school-1", "Bina", "5A", "")
	testutil.CreateStudent(t, students, "school-1", "Chetan", "6B", "")

	status, err := svc.StatusOn(ctx, asha.ID, today)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPending, status)

	err = svc.Submit(ctx, "school-1", teacher.ID, today, attendance.Batch{ClassName: "5A"})
	require.Error(t, err)
	_, ok := err.(validator.ValidationErrors)
	assert.True(t, ok, "want validator.ValidationErrors, got %T", err)

	err = svc.Submit(ctx, "school-1", teacher.ID, today, attendance.Batch{ClassName: "5A", Records: []attendance.Entry{
		{StudentID: asha.ID, Status: attendance.StatusPresent},
		{StudentID: bina.ID, Status: attendance.StatusAbsent},
	}})
	require.NoError(t, err)

	// resubmitting replaces the day's mark
	err = svc.Submit(ctx, "school-1", teacher.ID, today, attendance.Batch{ClassName: "5A", Records: []attendance.Entry{
		{StudentID: bina.ID, Status: attendance.StatusLeave},
	}})
	require.NoError(t, err)

	status, err = svc.StatusOn(ctx, bina.ID, today)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLeave, status)

	classes, err := svc.CompletedClasses(ctx, "school-1", today)
	require.NoError(t, err)
	assert.Equal(t, []string{"5A"}, classes)

	marks, err := svc.ClassAttendance(ctx, "school-1", "5A", today)
	require.NoError(t, err)
	assert.Equal(t, map[string]attendance.Status{asha.ID: attendance.StatusPresent, bina.ID: attendance.StatusLeave}, marks)

	marks, err = svc.ClassAttendance(ctx, "school-1", "6B", today)
	require.NoError(t, err)
	assert.Empty(t, marks)

	err = svc.Submit(ctx, "school-1", teacher.ID, today.AddDays(-1), attendance.Batch{ClassName: "5A", Records: []attendance.Entry{
		{StudentID: bina.ID, Status: attendance.StatusPresent},
	}})
	require.NoError(t, err)

	history, err := svc.History(ctx, bina.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, today, history[0].Date)
	assert.Equal(t, "Meena", history[0].MarkedByName)
	assert.Equal(t, attendance.StatusPresent, history[1].Status)
}

func TestService_Submit_foreignStudents(t *testing.T) {
	db, err := dummydb.Open()
	require.NoError(t, err)
	validate, _ := testutil.NewValidator()
	students := dummydb.NewStudentRepository(db)
	svc := attendance.NewService(dummydb.NewAttendanceRepository(db), students, validate)
	ctx := context.Background()

	asha := testutil.CreateStudent(t, students, "school-1", "Asha", "5A", "")
	chetan := testutil.CreateStudent(t, students, "school-1", "Chetan", "6B", "")
	require.NoError(t, svc.Submit(ctx, "school-1", "t1", today, attendance.Batch{ClassName: "5A", Records: []attendance.Entry{
		{StudentID: asha.ID, Status: attendance.StatusPresent},
	}}))

	tests := []struct {
		name     string
		schoolID string
		batch    attendance.Batch
	}{
		{name: "other school", schoolID: "school-2", batch: attendance.Batch{ClassName: "5A", Records: []attendance.Entry{
			{StudentID: asha.ID, Status: attendance.StatusAbsent},
		}}},
		{name: "other class", schoolID: "school-1", batch: attendance.Batch{ClassName: "5A", Records: []attendance.Entry{
			{StudentID: asha.ID, Status: attendance.StatusAbsent},
			{StudentID: chetan.ID, Status: attendance.StatusAbsent},
		}}},
		{name: "unknown student", schoolID: "school-1", batch: attendance.Batch{ClassName: "5A", Records: []attendance.Entry{
			{StudentID: "nope", Status: attendance.StatusAbsent},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Submit(ctx, tt.schoolID, "t2", today, tt.batch)
			require.Error(t, err)
			assert.True(t, core.IsValidationError(err))
		})
	}

	// nothing was overwritten
	status, err := svc.StatusOn(ctx, asha.ID, today)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, status)
	classes, err := svc.CompletedClasses(ctx, "school-1", today)
	require.NoError(t, err)
	assert.Equal(t, []string{"5A"}, classes)
}
