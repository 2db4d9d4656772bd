package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vidyasetu/backend/core/period"
	"github.com/vidyasetu/backend/core/user"
)

func rowsFor(teacherID string, n int) []period.Period {
	rows := make([]period.Period, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, period.Period{TeacherID: teacherID, Number: i})
	}
	return rows
}

func TestTeachers(t *testing.T) {
	teachers := []user.User{
		{ID: "a", Name: "Anita", Mobile: "9000000001"},
		{ID: "b", Name: "Bharat", Mobile: "9000000002"},
		{ID: "c", Name: "Chitra", Mobile: "9000000003"},
	}
	var rows []period.Period
	rows = append(rows, rowsFor("a", 8)...)
	rows = append(rows, rowsFor("c", 2)...)

	got := Teachers(teachers, rows, 8)

	assert.Equal(t, 3, got.TotalTeachers)
	assert.Equal(t, 2, got.ActiveTeachers)
	assert.Equal(t, 1, got.InactiveTeachers)
	assert.Equal(t, 24, got.TotalPeriodsExpected)
	assert.Equal(t, 10, got.TotalPeriodsSubmitted)
	assert.Equal(t, []TeacherProgress{
		{ID: "a", Name: "Anita", Mobile: "9000000001", PeriodsSubmitted: 8, TotalPeriods: 8},
		{ID: "b", Name: "Bharat", Mobile: "9000000002", PeriodsSubmitted: 0, TotalPeriods: 8},
		{ID: "c", Name: "Chitra", Mobile: "9000000003", PeriodsSubmitted: 2, TotalPeriods: 8},
	}, got.Teachers)
}

func TestTeachers_noTeachers(t *testing.T) {
	got := Teachers(nil, rowsFor("principal", 1), 6)
	assert.Equal(t, TeacherSummary{TotalPeriodsSubmitted: 1, Teachers: []TeacherProgress{}}, got)
}

func TestTeachers_capacityIsFixed(t *testing.T) {
	// a teacher submitting more than the school capacity still counts against the same capacity
	got := Teachers([]user.User{{ID: "a"}}, rowsFor("a", 9), 6)
	assert.Equal(t, 6, got.TotalPeriodsExpected)
	assert.Equal(t, 9, got.TotalPeriodsSubmitted)
	assert.Equal(t, 6, got.Teachers[0].TotalPeriods)
}
