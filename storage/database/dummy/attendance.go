package dummydb

import (
	"context"
	"sort"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/attendance"
)

type attendanceRepository struct {
	db *DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) UpsertRecords(_ context.Context, recs []attendance.Record) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, rec := range recs {
		key := attendanceKey{studentID: rec.StudentID, date: rec.Date}
		if old, ok := repo.db.attendance[key]; ok {
			rec.ID = old.ID
			rec.SchoolID = old.SchoolID
		} else {
			rec.ID = newID()
		}
		repo.db.attendance[key] = rec
	}
	return nil
}

func (repo *attendanceRepository) QueryClassMarks(_ context.Context, schoolID, className string, date core.Date) ([]attendance.ClassMark, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	marks := make([]attendance.ClassMark, 0)
	for _, rec := range repo.db.attendance {
		if rec.SchoolID != schoolID || rec.Date != date {
			continue
		}
		st, ok := repo.db.students[rec.StudentID]
		if !ok {
			continue
		}
		if className != "" && st.ClassName != className {
			continue
		}
		marks = append(marks, attendance.ClassMark{StudentID: rec.StudentID, ClassName: st.ClassName, Status: rec.Status})
	}
	return marks, nil
}

func (repo *attendanceRepository) GetRecord(_ context.Context, studentID string, date core.Date) (attendance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rec, ok := repo.db.attendance[attendanceKey{studentID: studentID, date: date}]
	if !ok {
		return attendance.Record{}, attendance.ErrNotFound
	}
	return rec, nil
}

func (repo *attendanceRepository) QueryHistory(_ context.Context, studentID string, limit int) ([]attendance.HistoryItem, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	items := make([]attendance.HistoryItem, 0)
	for _, rec := range repo.db.attendance {
		if rec.StudentID != studentID {
			continue
		}
		items = append(items, attendance.HistoryItem{
			ID:           rec.ID,
			Date:         rec.Date,
			Status:       rec.Status,
			MarkedByName: repo.db.userName(rec.MarkedBy),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
