package dummydb

import (
	"context"
	"sort"

	"github.com/vidyasetu/backend/core/leave"
)

type leaveRepository struct {
	db *DB
}

var _ leave.Repository = (*leaveRepository)(nil) // interface compliance check

func NewLeaveRepository(db *DB) *leaveRepository {
	return &leaveRepository{db: db}
}

func (repo *leaveRepository) CreateStaffLeave(_ context.Context, l leave.StaffLeave) (leave.StaffLeave, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	l.ID = newID()
	l.UserName = ""
	repo.db.staffLeaves[l.ID] = l
	return l, nil
}

func (repo *leaveRepository) QueryStaffLeaves(_ context.Context, filter leave.QueryFilter) ([]leave.StaffLeave, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	leaves := make([]leave.StaffLeave, 0)
	for _, l := range repo.db.staffLeaves {
		if filter.SchoolID != "" && l.SchoolID != filter.SchoolID {
			continue
		}
		if filter.UserID != "" && l.UserID != filter.UserID {
			continue
		}
		l.UserName = repo.db.userName(l.UserID)
		leaves = append(leaves, l)
	}
	sort.SliceStable(leaves, func(i, j int) bool {
		return newerFirst(leaves[i].CreatedAt, leaves[i].ID, leaves[j].CreatedAt, leaves[j].ID)
	})
	if filter.Limit > 0 && len(leaves) > filter.Limit {
		leaves = leaves[:filter.Limit]
	}
	return leaves, nil
}

func (repo *leaveRepository) ReviewStaffLeave(_ context.Context, schoolID, id string, review leave.Review) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	l, ok := repo.db.staffLeaves[id]
	if !ok || l.SchoolID != schoolID {
		return leave.ErrNotFound
	}
	l.Status, l.PrincipalComment = review.Status, review.Comment
	repo.db.staffLeaves[id] = l
	return nil
}

func (repo *leaveRepository) CreateStudentLeave(_ context.Context, l leave.StudentLeave) (leave.StudentLeave, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	l.ID = newID()
	l.StudentName = ""
	repo.db.studentLeaves[l.ID] = l
	return l, nil
}

func (repo *leaveRepository) QueryStudentLeaves(_ context.Context, filter leave.QueryFilter) ([]leave.StudentLeave, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	leaves := make([]leave.StudentLeave, 0)
	for _, l := range repo.db.studentLeaves {
		if filter.SchoolID != "" && l.SchoolID != filter.SchoolID {
			continue
		}
		if filter.StudentID != "" && l.StudentID != filter.StudentID {
			continue
		}
		if filter.ParentID != "" && l.ParentID != filter.ParentID {
			continue
		}
		l.StudentName = repo.db.students[l.StudentID].Name
		leaves = append(leaves, l)
	}
	sort.SliceStable(leaves, func(i, j int) bool {
		return newerFirst(leaves[i].CreatedAt, leaves[i].ID, leaves[j].CreatedAt, leaves[j].ID)
	})
	if filter.Limit > 0 && len(leaves) > filter.Limit {
		leaves = leaves[:filter.Limit]
	}
	return leaves, nil
}

func (repo *leaveRepository) ReviewStudentLeave(_ context.Context, schoolID, id string, review leave.Review) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	l, ok := repo.db.studentLeaves[id]
	if !ok || l.SchoolID != schoolID {
		return leave.ErrNotFound
	}
	l.Status, l.PrincipalComment = review.Status, review.Comment
	repo.db.studentLeaves[id] = l
	return nil
}
