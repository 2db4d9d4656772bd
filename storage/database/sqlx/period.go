package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/period"
)

type periodRow struct {
	ID           string      `db:"id"`
	SchoolID     string      `db:"school_id"`
	TeacherID    string      `db:"teacher_user_id"`
	TeacherName  null.String `db:"teacher_name"`
	Date         core.Date   `db:"date"`
	Number       int         `db:"period_number"`
	ClassName    string      `db:"class_name"`
	Subject      string      `db:"subject"`
	Lesson       string      `db:"lesson"`
	Homework     string      `db:"homework"`
	HomeworkType string      `db:"homework_type"`
}

func (r periodRow) unboil() period.Period {
	return period.Period{
		ID:           r.ID,
		SchoolID:     r.SchoolID,
		TeacherID:    r.TeacherID,
		TeacherName:  r.TeacherName.String,
		Date:         r.Date,
		Number:       r.Number,
		ClassName:    r.ClassName,
		Subject:      r.Subject,
		Lesson:       r.Lesson,
		Homework:     r.Homework,
		HomeworkType: r.HomeworkType,
	}
}

type periodRepository struct {
	db core.DB
}

var _ period.Repository = (*periodRepository)(nil) // interface compliance check

func NewPeriodRepository(db core.DB) *periodRepository {
	return &periodRepository{db: db}
}

func (repo periodRepository) UpsertPeriod(ctx context.Context, p period.Period) (period.Period, error) {
	q := psql.Insert("daily_periods").
		Columns("id", "school_id", "teacher_user_id", "date", "period_number", "class_name", "subject", "lesson", "homework", "homework_type").
		Values(newID(), p.SchoolID, p.TeacherID, p.Date, p.Number, p.ClassName, p.Subject, p.Lesson, p.Homework, p.HomeworkType).
		Suffix("ON CONFLICT (teacher_user_id, date, period_number) DO UPDATE SET " +
			"class_name = EXCLUDED.class_name, subject = EXCLUDED.subject, lesson = EXCLUDED.lesson, " +
			"homework = EXCLUDED.homework, homework_type = EXCLUDED.homework_type RETURNING id")
	if err := getQuery(ctx, repo.db, &p.ID, q); err != nil {
		return period.Period{}, errors.Wrap(err, "upserting period")
	}
	return p, nil
}

func (repo periodRepository) QueryPeriods(ctx context.Context, filter period.QueryFilter) ([]period.Period, error) {
	q := psql.Select(
		"d.id", "d.school_id", "d.teacher_user_id", "u.name AS teacher_name", "d.date", "d.period_number",
		"d.class_name", "d.subject", "d.lesson", "d.homework", "d.homework_type",
	).From("daily_periods d").
		LeftJoin("users u ON u.id = d.teacher_user_id").
		OrderBy("d.period_number", "d.class_name")

	eq := sq.Eq{}
	if filter.SchoolID != "" {
		eq["d.school_id"] = filter.SchoolID
	}
	if filter.TeacherID != "" {
		eq["d.teacher_user_id"] = filter.TeacherID
	}
	if filter.ClassName != "" {
		eq["d.class_name"] = filter.ClassName
	}
	if !filter.Date.IsZero() {
		eq["d.date"] = filter.Date
	}
	if len(eq) > 0 {
		q = q.Where(eq)
	}

	var rows []periodRow
	if err := selectQuery(ctx, repo.db, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying periods")
	}
	periods := make([]period.Period, 0, len(rows))
	for _, r := range rows {
		periods = append(periods, r.unboil())
	}
	return periods, nil
}
