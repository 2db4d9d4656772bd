package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/homework"
)

type submissionRow struct {
	ID           string    `db:"id"`
	StudentID    string    `db:"student_id"`
	Date         core.Date `db:"date"`
	PeriodNumber int       `db:"period_number"`
	Status       string    `db:"status"`
}

type homeworkRepository struct {
	db core.DB
}

var _ homework.Repository = (*homeworkRepository)(nil) // interface compliance check

func NewHomeworkRepository(db core.DB) *homeworkRepository {
	return &homeworkRepository{db: db}
}

func (repo homeworkRepository) UpsertSubmission(ctx context.Context, sub homework.Submission) (homework.Submission, error) {
	q := psql.Insert("homework_submissions").
		Columns("id", "student_id", "date", "period_number", "status").
		Values(newID(), sub.StudentID, sub.Date, sub.PeriodNumber, string(sub.Status)).
		Suffix("ON CONFLICT (student_id, date, period_number) DO UPDATE SET status = EXCLUDED.status RETURNING id")
	if err := getQuery(ctx, repo.db, &sub.ID, q); err != nil {
		return homework.Submission{}, errors.Wrap(err, "upserting submission")
	}
	return sub, nil
}

func (repo homeworkRepository) QuerySubmissions(ctx context.Context, filter homework.SubmissionFilter) ([]homework.Submission, error) {
	q := psql.Select("h.id", "h.student_id", "h.date", "h.period_number", "h.status").
		From("homework_submissions h").
		OrderBy("h.student_id", "h.period_number")
	eq := sq.Eq{}
	if filter.SchoolID != "" {
		q = q.Join("students s ON s.id = h.student_id")
		eq["s.school_id"] = filter.SchoolID
	}
	if filter.StudentID != "" {
		eq["h.student_id"] = filter.StudentID
	}
	if !filter.Date.IsZero() {
		eq["h.date"] = filter.Date
	}
	if len(eq) > 0 {
		q = q.Where(eq)
	}

	var rows []submissionRow
	if err := selectQuery(ctx, repo.db, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying submissions")
	}
	subs := make([]homework.Submission, 0, len(rows))
	for _, r := range rows {
		subs = append(subs, homework.Submission{
			ID:           r.ID,
			StudentID:    r.StudentID,
			Date:         r.Date,
			PeriodNumber: r.PeriodNumber,
			Status:       homework.SubmissionStatus(r.Status),
		})
	}
	return subs, nil
}
