package dummydb

import (
	"context"
	"sort"

	"github.com/vidyasetu/backend/core/period"
)

type periodRepository struct {
	db *DB
}

var _ period.Repository = (*periodRepository)(nil) // interface compliance check

func NewPeriodRepository(db *DB) *periodRepository {
	return &periodRepository{db: db}
}

func (repo *periodRepository) UpsertPeriod(_ context.Context, p period.Period) (period.Period, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	key := periodKey{teacherID: p.TeacherID, date: p.Date, number: p.Number}
	if old, ok := repo.db.periods[key]; ok {
		p.ID = old.ID
	} else {
		p.ID = newID()
	}
	p.TeacherName = ""
	repo.db.periods[key] = p
	return p, nil
}

func (repo *periodRepository) QueryPeriods(_ context.Context, filter period.QueryFilter) ([]period.Period, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	periods := make([]period.Period, 0)
	for _, p := range repo.db.periods {
		if filter.SchoolID != "" && p.SchoolID != filter.SchoolID {
			continue
		}
		if filter.TeacherID != "" && p.TeacherID != filter.TeacherID {
			continue
		}
		if filter.ClassName != "" && p.ClassName != filter.ClassName {
			continue
		}
		if !filter.Date.IsZero() && p.Date != filter.Date {
			continue
		}
		p.TeacherName = repo.db.userName(p.TeacherID)
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool {
		if periods[i].Number != periods[j].Number {
			return periods[i].Number < periods[j].Number
		}
		return periods[i].ClassName < periods[j].ClassName
	})
	return periods, nil
}
