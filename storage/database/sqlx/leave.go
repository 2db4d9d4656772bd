package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/leave"
)

type leaveRow struct {
	ID               string      `db:"id"`
	SchoolID         string      `db:"school_id"`
	Type             string      `db:"leave_type"`
	Start            core.Date   `db:"start_date"`
	End              core.Date   `db:"end_date"`
	Reason           string      `db:"reason"`
	Status           string      `db:"status"`
	PrincipalComment null.String `db:"principal_comment"`
	CreatedAt        time.Time   `db:"created_at"`
}

func (r leaveRow) unboil() leave.Request {
	return leave.Request{
		ID:               r.ID,
		SchoolID:         r.SchoolID,
		Type:             r.Type,
		Start:            r.Start,
		End:              r.End,
		Reason:           r.Reason,
		Status:           leave.Status(r.Status),
		PrincipalComment: r.PrincipalComment.String,
		CreatedAt:        r.CreatedAt.UTC(),
	}
}

type staffLeaveRow struct {
	leaveRow
	UserID   string      `db:"user_id"`
	UserName null.String `db:"user_name"`
}

type studentLeaveRow struct {
	leaveRow
	StudentID   string      `db:"student_id"`
	ParentID    string      `db:"parent_id"`
	StudentName null.String `db:"student_name"`
}

var leaveColumns = []string{
	"l.id", "l.school_id", "l.leave_type", "l.start_date", "l.end_date", "l.reason", "l.status", "l.principal_comment", "l.created_at",
}

type leaveRepository struct {
	db core.DB
}

var _ leave.Repository = (*leaveRepository)(nil) // interface compliance check

func NewLeaveRepository(db core.DB) *leaveRepository {
	return &leaveRepository{db: db}
}

func insertLeave(table string, r leave.Request, extraCols []string, extraVals ...interface{}) sq.InsertBuilder {
	cols := append([]string{"id", "school_id", "leave_type", "start_date", "end_date", "reason", "status", "principal_comment", "created_at"}, extraCols...)
	vals := append([]interface{}{
		r.ID, r.SchoolID, r.Type, r.Start, r.End, r.Reason, string(r.Status),
		null.NewString(r.PrincipalComment, r.PrincipalComment != ""), r.CreatedAt.UTC(),
	}, extraVals...)
	return psql.Insert(table).Columns(cols...).Values(vals...)
}

func leaveFilter(q sq.SelectBuilder, filter leave.QueryFilter, extra sq.Eq) sq.SelectBuilder {
	if filter.SchoolID != "" {
		extra["l.school_id"] = filter.SchoolID
	}
	if len(extra) > 0 {
		q = q.Where(extra)
	}
	q = q.OrderBy("l.created_at DESC", "l.id DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	return q
}

func (repo leaveRepository) review(ctx context.Context, table, schoolID, id string, review leave.Review) error {
	q := psql.Update(table).SetMap(map[string]interface{}{
		"status":            string(review.Status),
		"principal_comment": null.NewString(review.Comment, review.Comment != ""),
	}).Where(sq.Eq{"id": id, "school_id": schoolID})
	n, err := execQuery(ctx, repo.db, q)
	if err != nil {
		return errors.Wrapf(err, "reviewing %s", table)
	}
	if n == 0 {
		return leave.ErrNotFound
	}
	return nil
}

func (repo leaveRepository) CreateStaffLeave(ctx context.Context, l leave.StaffLeave) (leave.StaffLeave, error) {
	l.ID = newID()
	q := insertLeave("staff_leaves", l.Request, []string{"user_id"}, l.UserID)
	if _, err := execQuery(ctx, repo.db, q); err != nil {
		return leave.StaffLeave{}, errors.Wrap(err, "inserting staff leave")
	}
	return l, nil
}

func (repo leaveRepository) QueryStaffLeaves(ctx context.Context, filter leave.QueryFilter) ([]leave.StaffLeave, error) {
	q := psql.Select(append(leaveColumns, "l.user_id", "u.name AS user_name")...).
		From("staff_leaves l").
		LeftJoin("users u ON u.id = l.user_id")
	eq := sq.Eq{}
	if filter.UserID != "" {
		eq["l.user_id"] = filter.UserID
	}
	q = leaveFilter(q, filter, eq)

	var rows []staffLeaveRow
	if err := selectQuery(ctx, repo.db, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying staff leaves")
	}
	leaves := make([]leave.StaffLeave, 0, len(rows))
	for _, r := range rows {
		leaves = append(leaves, leave.StaffLeave{Request: r.unboil(), UserID: r.UserID, UserName: r.UserName.String})
	}
	return leaves, nil
}

func (repo leaveRepository) ReviewStaffLeave(ctx context.Context, schoolID, id string, review leave.Review) error {
	return repo.review(ctx, "staff_leaves", schoolID, id, review)
}

func (repo leaveRepository) CreateStudentLeave(ctx context.Context, l leave.StudentLeave) (leave.StudentLeave, error) {
	l.ID = newID()
	q := insertLeave("student_leaves", l.Request, []string{"student_id", "parent_id"}, l.StudentID, l.ParentID)
	if _, err := execQuery(ctx, repo.db, q); err != nil {
		return leave.StudentLeave{}, errors.Wrap(err, "inserting student leave")
	}
	return l, nil
}

func (repo leaveRepository) QueryStudentLeaves(ctx context.Context, filter leave.QueryFilter) ([]leave.StudentLeave, error) {
	q := psql.Select(append(leaveColumns, "l.student_id", "l.parent_id", "s.name AS student_name")...).
		From("student_leaves l").
		LeftJoin("students s ON s.id = l.student_id")
	eq := sq.Eq{}
	if filter.StudentID != "" {
		eq["l.student_id"] = filter.StudentID
	}
	if filter.ParentID != "" {
		eq["l.parent_id"] = filter.ParentID
	}
	q = leaveFilter(q, filter, eq)

	var rows []studentLeaveRow
	if err := selectQuery(ctx, repo.db, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying student leaves")
	}
	leaves := make([]leave.StudentLeave, 0, len(rows))
	for _, r := range rows {
		leaves = append(leaves, leave.StudentLeave{
			Request:     r.unboil(),
			StudentID:   r.StudentID,
			ParentID:    r.ParentID,
			StudentName: r.StudentName.String,
		})
	}
	return leaves, nil
}

func (repo leaveRepository) ReviewStudentLeave(ctx context.Context, schoolID, id string, review leave.Review) error {
	return repo.review(ctx, "student_leaves", schoolID, id, review)
}
