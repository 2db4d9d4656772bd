package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/attendance"
)

type attendanceRow struct {
	ID        string      `db:"id"`
	SchoolID  string      `db:"school_id"`
	StudentID string      `db:"student_id"`
	MarkedBy  null.String `db:"marked_by_user_id"`
	Date      core.Date   `db:"date"`
	Status    string      `db:"status"`
}

type attendanceHistoryRow struct {
	ID           string      `db:"id"`
	Date         core.Date   `db:"date"`
	Status       string      `db:"status"`
	MarkedByName null.String `db:"marked_by_name"`
}

type attendanceRepository struct {
	db core.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db core.DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

func (repo attendanceRepository) UpsertRecords(ctx context.Context, recs []attendance.Record) error {
	return inTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		for _, rec := range recs {
			q := psql.Insert("attendance").
				Columns("id", "school_id", "student_id", "marked_by_user_id", "date", "status").
				Values(newID(), rec.SchoolID, rec.StudentID, null.NewString(rec.MarkedBy, rec.MarkedBy != ""), rec.Date, string(rec.Status)).
				Suffix("ON CONFLICT (student_id, date) DO UPDATE SET status = EXCLUDED.status, " +
					"marked_by_user_id = EXCLUDED.marked_by_user_id")
			if _, err := execQuery(ctx, tx, q); err != nil {
				return errors.Wrapf(err, "upserting attendance of student %s", rec.StudentID)
			}
		}
		return nil
	})
}

func (repo attendanceRepository) QueryClassMarks(ctx context.Context, schoolID, className string, date core.Date) ([]attendance.ClassMark, error) {
	q := psql.Select("a.student_id", "s.class_name", "a.status").
		From("attendance a").
		Join("students s ON s.id = a.student_id").
		Where(sq.Eq{"a.school_id": schoolID, "a.date": date})
	if className != "" {
		q = q.Where(sq.Eq{"s.class_name": className})
	}
	marks := make([]attendance.ClassMark, 0)
	if err := selectQuery(ctx, repo.db, &marks, q); err != nil {
		return nil, errors.Wrap(err, "querying class marks")
	}
	return marks, nil
}

func (repo attendanceRepository) GetRecord(ctx context.Context, studentID string, date core.Date) (attendance.Record, error) {
	q := psql.Select("id", "school_id", "student_id", "marked_by_user_id", "date", "status").
		From("attendance").
		Where(sq.Eq{"student_id": studentID, "date": date})
	var row attendanceRow
	if err := getQuery(ctx, repo.db, &row, q); err != nil {
		return attendance.Record{}, trapNoRowsErr(err, attendance.ErrNotFound, "getting attendance record")
	}
	return attendance.Record{
		ID:        row.ID,
		SchoolID:  row.SchoolID,
		StudentID: row.StudentID,
		MarkedBy:  row.MarkedBy.String,
		Date:      row.Date,
		Status:    attendance.Status(row.Status),
	}, nil
}

func (repo attendanceRepository) QueryHistory(ctx context.Context, studentID string, limit int) ([]attendance.HistoryItem, error) {
	q := psql.Select("a.id", "a.date", "a.status", "u.name AS marked_by_name").
		From("attendance a").
		LeftJoin("users u ON u.id = a.marked_by_user_id").
		Where(sq.Eq{"a.student_id": studentID}).
		OrderBy("a.date DESC").
		Limit(uint64(limit))
	var rows []attendanceHistoryRow
	if err := selectQuery(ctx, repo.db, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying attendance history")
	}
	items := make([]attendance.HistoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, attendance.HistoryItem{
			ID:           r.ID,
			Date:         r.Date,
			Status:       attendance.Status(r.Status),
			MarkedByName: r.MarkedByName.String,
		})
	}
	return items, nil
}
