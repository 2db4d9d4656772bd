package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/school"
)

type schoolRow struct {
	ID              string     `db:"id"`
	Name            string     `db:"name"`
	Code            string     `db:"school_code"`
	IsActive        bool       `db:"is_active"`
	SubscriptionEnd *core.Date `db:"subscription_end_date"`
	TotalPeriods    int        `db:"total_periods"`
	CreatedAt       time.Time  `db:"created_at"`
}

var schoolColumns = []string{"id", "name", "school_code", "is_active", "subscription_end_date", "total_periods", "created_at"}

func (r schoolRow) unboil() school.School {
	return school.School{
		ID:              r.ID,
		Name:            r.Name,
		Code:            r.Code,
		IsActive:        r.IsActive,
		SubscriptionEnd: r.SubscriptionEnd,
		TotalPeriods:    r.TotalPeriods,
		CreatedAt:       r.CreatedAt.UTC(),
	}
}

type schoolRepository struct {
	db core.DB
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db core.DB) *schoolRepository {
	return &schoolRepository{db: db}
}

func (repo schoolRepository) CreateSchool(ctx context.Context, sch school.School) (school.School, error) {
	sch.ID = newID()
	q := psql.Insert("schools").Columns(schoolColumns...).Values(
		sch.ID, sch.Name, sch.Code, sch.IsActive, sch.SubscriptionEnd, sch.TotalPeriods, sch.CreatedAt.UTC(),
	)
	if _, err := execQuery(ctx, repo.db, q); err != nil {
		if isUniqueViolation(err) {
			return school.School{}, school.ErrCodeExists
		}
		return school.School{}, errors.Wrap(err, "inserting school")
	}
	return sch, nil
}

func (repo schoolRepository) GetSchool(ctx context.Context, filter school.GetFilter) (school.School, error) {
	q := psql.Select(schoolColumns...).From("schools").Limit(1)
	if filter.ID != "" {
		q = q.Where(sq.Eq{"id": filter.ID})
	}
	if filter.Code != "" {
		q = q.Where("upper(school_code) = upper(?)", core.CleanCode(filter.Code))
	}
	var row schoolRow
	if err := getQuery(ctx, repo.db, &row, q); err != nil {
		return school.School{}, trapNoRowsErr(err, school.ErrNotFound, "getting school")
	}
	return row.unboil(), nil
}

func (repo schoolRepository) QuerySchools(ctx context.Context) ([]school.School, error) {
	var rows []schoolRow
	q := psql.Select(schoolColumns...).From("schools").OrderBy("created_at DESC", "id DESC")
	if err := selectQuery(ctx, repo.db, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying schools")
	}
	schools := make([]school.School, 0, len(rows))
	for _, r := range rows {
		schools = append(schools, r.unboil())
	}
	return schools, nil
}

func (repo schoolRepository) UpdateSchool(ctx context.Context, sch school.School) (school.School, error) {
	q := psql.Update("schools").SetMap(map[string]interface{}{
		"name":                  sch.Name,
		"is_active":             sch.IsActive,
		"subscription_end_date": sch.SubscriptionEnd,
		"total_periods":         sch.TotalPeriods,
	}).Where(sq.Eq{"id": sch.ID})
	n, err := execQuery(ctx, repo.db, q)
	if err != nil {
		return school.School{}, errors.Wrap(err, "updating school")
	}
	if n == 0 {
		return school.School{}, school.ErrNotFound
	}
	return sch, nil
}

func (repo schoolRepository) DeleteSchool(ctx context.Context, id string) error {
	n, err := execQuery(ctx, repo.db, psql.Delete("schools").Where(sq.Eq{"id": id}))
	if err != nil {
		return errors.Wrap(err, "deleting school")
	}
	if n == 0 {
		return school.ErrNotFound
	}
	return nil
}
