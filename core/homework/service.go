package homework

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/period"
	"github.com/vidyasetu/backend/core/student"
)

type (
	Repository interface {
		// UpsertSubmission replaces any row with the same (student, date, period number).
		UpsertSubmission(ctx context.Context, sub Submission) (Submission, error)
		QuerySubmissions(ctx context.Context, filter SubmissionFilter) ([]Submission, error)
	}

	Service struct {
		repo     Repository
		students student.Repository
		periods  period.Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, students student.Repository, periods period.Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, students: students, periods: periods, validate: validate}
}

// Analytics classifies every student of the school for date.
func (svc *Service) Analytics(ctx context.Context, schoolID string, date core.Date) (Summary, error) {
	sts, err := svc.students.QueryStudents(ctx, student.QueryFilter{SchoolID: schoolID})
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying students")
	}
	pds, err := svc.periods.QueryPeriods(ctx, period.QueryFilter{SchoolID: schoolID, Date: date})
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying periods")
	}
	subs, err := svc.repo.QuerySubmissions(ctx, SubmissionFilter{SchoolID: schoolID, Date: date})
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying submissions")
	}
	return Summarize(sts, pds, subs), nil
}

// ForParent lists the homework of the student's class on date with the student's status per period.
func (svc *Service) ForParent(ctx context.Context, st student.Student, date core.Date) ([]ParentItem, error) {
	pds, err := svc.periods.QueryPeriods(ctx, period.QueryFilter{SchoolID: st.SchoolID, ClassName: st.ClassName, Date: date})
	if err != nil {
		return nil, errors.Wrap(err, "querying class periods")
	}
	subs, err := svc.repo.QuerySubmissions(ctx, SubmissionFilter{StudentID: st.ID, Date: date})
	if err != nil {
		return nil, errors.Wrap(err, "querying submissions")
	}
	return ParentView(pds, subs), nil
}

// MarkDone records the homework of a period as completed.
func (svc *Service) MarkDone(ctx context.Context, date core.Date, data MarkDone) (Submission, error) {
	if err := svc.validate.Struct(data); err != nil {
		return Submission{}, err
	}
	sub, err := svc.repo.UpsertSubmission(ctx, Submission{
		StudentID:    data.StudentID,
		Date:         date,
		PeriodNumber: ParsePeriodLabel(data.Period),
		Status:       SubmissionCompleted,
	})
	return sub, errors.Wrap(err, "upserting submission")
}
