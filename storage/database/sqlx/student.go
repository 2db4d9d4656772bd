package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/student"
)

type studentRow struct {
	ID            string      `db:"id"`
	SchoolID      string      `db:"school_id"`
	Name          string      `db:"name"`
	ClassName     string      `db:"class_name"`
	Section       string      `db:"section"`
	FatherName    string      `db:"father_name"`
	ParentUserID  null.String `db:"parent_user_id"`
	StudentUserID null.String `db:"student_user_id"`
	ParentName    null.String `db:"parent_name"`
	ParentMobile  null.String `db:"parent_mobile"`
	CreatedAt     time.Time   `db:"created_at"`
}

func (r studentRow) unboil() student.Student {
	return student.Student{
		ID:            r.ID,
		SchoolID:      r.SchoolID,
		Name:          r.Name,
		ClassName:     r.ClassName,
		Section:       r.Section,
		FatherName:    r.FatherName,
		ParentUserID:  r.ParentUserID.String,
		StudentUserID: r.StudentUserID.String,
		ParentName:    r.ParentName.String,
		ParentMobile:  r.ParentMobile.String,
		CreatedAt:     r.CreatedAt.UTC(),
	}
}

func studentSelect() sq.SelectBuilder {
	return psql.Select(
		"s.id", "s.school_id", "s.name", "s.class_name", "s.section", "s.father_name",
		"s.parent_user_id", "s.student_user_id", "p.name AS parent_name", "p.mobile AS parent_mobile", "s.created_at",
	).From("students s").LeftJoin("users p ON p.id = s.parent_user_id")
}

type studentRepository struct {
	db core.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db core.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo studentRepository) CreateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	st.ID = newID()
	q := psql.Insert("students").
		Columns("id", "school_id", "name", "class_name", "section", "father_name", "parent_user_id", "student_user_id", "created_at").
		Values(st.ID, st.SchoolID, st.Name, st.ClassName, st.Section, st.FatherName,
			null.NewString(st.ParentUserID, st.ParentUserID != ""),
			null.NewString(st.StudentUserID, st.StudentUserID != ""),
			st.CreatedAt.UTC())
	if _, err := execQuery(ctx, repo.db, q); err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return repo.GetStudent(ctx, st.ID)
}

func (repo studentRepository) GetStudent(ctx context.Context, id string) (student.Student, error) {
	var row studentRow
	if err := getQuery(ctx, repo.db, &row, studentSelect().Where(sq.Eq{"s.id": id})); err != nil {
		return student.Student{}, trapNoRowsErr(err, student.ErrNotFound, "getting student")
	}
	return row.unboil(), nil
}

func (repo studentRepository) QueryStudents(ctx context.Context, filter student.QueryFilter) ([]student.Student, error) {
	q := studentSelect().OrderBy("s.name", "s.id")
	eq := sq.Eq{}
	if filter.SchoolID != "" {
		eq["s.school_id"] = filter.SchoolID
	}
	if filter.ClassName != "" {
		eq["s.class_name"] = filter.ClassName
	}
	if filter.ParentUserID != "" {
		eq["s.parent_user_id"] = filter.ParentUserID
	}
	if filter.StudentUserID != "" {
		eq["s.student_user_id"] = filter.StudentUserID
	}
	if filter.Name != "" {
		eq["s.name"] = filter.Name
	}
	if len(eq) > 0 {
		q = q.Where(eq)
	}

	var rows []studentRow
	if err := selectQuery(ctx, repo.db, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]student.Student, 0, len(rows))
	for _, r := range rows {
		students = append(students, r.unboil())
	}
	return students, nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	q := psql.Update("students").SetMap(map[string]interface{}{
		"name":            st.Name,
		"class_name":      st.ClassName,
		"section":         st.Section,
		"father_name":     st.FatherName,
		"parent_user_id":  null.NewString(st.ParentUserID, st.ParentUserID != ""),
		"student_user_id": null.NewString(st.StudentUserID, st.StudentUserID != ""),
	}).Where(sq.Eq{"id": st.ID})
	n, err := execQuery(ctx, repo.db, q)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return repo.GetStudent(ctx, st.ID)
}

func (repo studentRepository) DeleteStudent(ctx context.Context, id string) error {
	n, err := execQuery(ctx, repo.db, psql.Delete("students").Where(sq.Eq{"id": id}))
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if n == 0 {
		return student.ErrNotFound
	}
	return nil
}
