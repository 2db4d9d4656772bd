// Package analytics builds the principal's daily overview of teachers and homework.
package analytics

import (
	"context"

	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/homework"
	"github.com/vidyasetu/backend/core/period"
	"github.com/vidyasetu/backend/core/school"
	"github.com/vidyasetu/backend/core/user"
)

type TeacherProgress struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Mobile           string `json:"mobile"`
	PeriodsSubmitted int    `json:"periods_submitted"`
	TotalPeriods     int    `json:"total_periods"`
}

// Active reports whether the teacher submitted at least one period.
func (tp TeacherProgress) Active() bool {
	return tp.PeriodsSubmitted > 0
}

type TeacherSummary struct {
	TotalTeachers         int               `json:"total_teachers"`
	ActiveTeachers        int               `json:"active_teachers"`
	InactiveTeachers      int               `json:"inactive_teachers"`
	TotalPeriodsExpected  int               `json:"total_periods_expected"`
	TotalPeriodsSubmitted int               `json:"total_periods_submitted"`
	Teachers              []TeacherProgress `json:"teacher_list"`
}

// Teachers summarizes a day of period submissions. capacity is the school's configured number of daily
// periods and is used as every teacher's expected load, whatever they were actually scheduled for.
// TotalPeriodsSubmitted counts every row of rows, including rows of users not in teachers.
func Teachers(teachers []user.User, rows []period.Period, capacity int) TeacherSummary {
	submitted := make(map[string]int, len(teachers))
	for _, p := range rows {
		submitted[p.TeacherID]++
	}

	summary := TeacherSummary{
		TotalTeachers:         len(teachers),
		TotalPeriodsExpected:  len(teachers) * capacity,
		TotalPeriodsSubmitted: len(rows),
		Teachers:              make([]TeacherProgress, 0, len(teachers)),
	}
	for _, t := range teachers {
		tp := TeacherProgress{
			ID:               t.ID,
			Name:             t.Name,
			Mobile:           t.Mobile,
			PeriodsSubmitted: submitted[t.ID],
			TotalPeriods:     capacity,
		}
		if tp.Active() {
			summary.ActiveTeachers++
		} else {
			summary.InactiveTeachers++
		}
		summary.Teachers = append(summary.Teachers, tp)
	}
	return summary
}

type Service struct {
	schools  school.Repository
	users    user.Repository
	periods  period.Repository
	homework *homework.Service
}

func NewService(schools school.Repository, users user.Repository, periods period.Repository, hw *homework.Service) *Service {
	return &Service{schools: schools, users: users, periods: periods, homework: hw}
}

func (svc *Service) Teachers(ctx context.Context, schoolID string, date core.Date) (TeacherSummary, error) {
	sch, err := svc.schools.GetSchool(ctx, school.GetFilter{ID: schoolID})
	if err != nil {
		return TeacherSummary{}, errors.Wrap(err, "getting school")
	}
	teachers, err := svc.users.QueryUsers(ctx, user.QueryFilter{SchoolID: schoolID, Roles: []user.Role{user.RoleTeacher}})
	if err != nil {
		return TeacherSummary{}, errors.Wrap(err, "querying teachers")
	}
	rows, err := svc.periods.QueryPeriods(ctx, period.QueryFilter{SchoolID: schoolID, Date: date})
	if err != nil {
		return TeacherSummary{}, errors.Wrap(err, "querying periods")
	}
	return Teachers(teachers, rows, sch.Periods()), nil
}

func (svc *Service) Homework(ctx context.Context, schoolID string, date core.Date) (homework.Summary, error) {
	return svc.homework.Analytics(ctx, schoolID, date)
}
