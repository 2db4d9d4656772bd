package dummydb

import (
	"context"
	"sort"

	"github.com/vidyasetu/backend/core/homework"
)

type homeworkRepository struct {
	db *DB
}

var _ homework.Repository = (*homeworkRepository)(nil) // interface compliance check

func NewHomeworkRepository(db *DB) *homeworkRepository {
	return &homeworkRepository{db: db}
}

func (repo *homeworkRepository) UpsertSubmission(_ context.Context, sub homework.Submission) (homework.Submission, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	key := submissionKey{studentID: sub.StudentID, date: sub.Date, number: sub.PeriodNumber}
	if old, ok := repo.db.submissions[key]; ok {
		sub.ID = old.ID
	} else {
		sub.ID = newID()
	}
	repo.db.submissions[key] = sub
	return sub, nil
}

func (repo *homeworkRepository) QuerySubmissions(_ context.Context, filter homework.SubmissionFilter) ([]homework.Submission, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	subs := make([]homework.Submission, 0)
	for _, sub := range repo.db.submissions {
		if filter.SchoolID != "" && repo.db.students[sub.StudentID].SchoolID != filter.SchoolID {
			continue
		}
		if filter.StudentID != "" && sub.StudentID != filter.StudentID {
			continue
		}
		if !filter.Date.IsZero() && sub.Date != filter.Date {
			continue
		}
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool {
		if subs[i].StudentID != subs[j].StudentID {
			return subs[i].StudentID < subs[j].StudentID
		}
		return subs[i].PeriodNumber < subs[j].PeriodNumber
	})
	return subs, nil
}
