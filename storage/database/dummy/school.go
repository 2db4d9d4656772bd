package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/vidyasetu/backend/core/school"
)

type schoolRepository struct {
	db *DB
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *DB) *schoolRepository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) CreateSchool(_ context.Context, sch school.School) (school.School, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, s := range repo.db.schools {
		if strings.EqualFold(s.Code, sch.Code) {
			return school.School{}, school.ErrCodeExists
		}
	}
	sch.ID = newID()
	repo.db.schools[sch.ID] = sch
	return sch, nil
}

func (repo *schoolRepository) GetSchool(_ context.Context, filter school.GetFilter) (school.School, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	code := strings.TrimSpace(filter.Code)
	for _, s := range repo.db.schools {
		if filter.ID != "" && s.ID != filter.ID {
			continue
		}
		if code != "" && !strings.EqualFold(s.Code, code) {
			continue
		}
		return s, nil
	}
	return school.School{}, school.ErrNotFound
}

func (repo *schoolRepository) QuerySchools(_ context.Context) ([]school.School, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	schools := make([]school.School, 0, len(repo.db.schools))
	for _, s := range repo.db.schools {
		schools = append(schools, s)
	}
	sort.SliceStable(schools, func(i, j int) bool {
		return newerFirst(schools[i].CreatedAt, schools[i].ID, schools[j].CreatedAt, schools[j].ID)
	})
	return schools, nil
}

func (repo *schoolRepository) UpdateSchool(_ context.Context, sch school.School) (school.School, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.schools[sch.ID]
	if !ok {
		return school.School{}, school.ErrNotFound
	}
	orig.Name = sch.Name
	orig.IsActive = sch.IsActive
	orig.SubscriptionEnd = sch.SubscriptionEnd
	orig.TotalPeriods = sch.TotalPeriods
	repo.db.schools[sch.ID] = orig
	return orig, nil
}

func (repo *schoolRepository) DeleteSchool(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.schools[id]; !ok {
		return school.ErrNotFound
	}
	delete(repo.db.schools, id)
	return nil
}
