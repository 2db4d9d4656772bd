package dummydb

import (
	"context"
	"sort"

	"github.com/vidyasetu/backend/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db}
}

// withParent fills the joined parent fields. Callers hold the lock.
func (repo *studentRepository) withParent(st student.Student) student.Student {
	if parent, ok := repo.db.users[st.ParentUserID]; ok {
		st.ParentName = parent.Name
		st.ParentMobile = parent.Mobile
	}
	return st
}

func (repo *studentRepository) CreateStudent(_ context.Context, st student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	st.ID = newID()
	st.ParentName, st.ParentMobile = "", ""
	repo.db.students[st.ID] = st
	return repo.withParent(st), nil
}

func (repo *studentRepository) GetStudent(_ context.Context, id string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	st, ok := repo.db.students[id]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	return repo.withParent(st), nil
}

func (repo *studentRepository) QueryStudents(_ context.Context, filter student.QueryFilter) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]student.Student, 0)
	for _, st := range repo.db.students {
		if filter.SchoolID != "" && st.SchoolID != filter.SchoolID {
			continue
		}
		if filter.ClassName != "" && st.ClassName != filter.ClassName {
			continue
		}
		if filter.ParentUserID != "" && st.ParentUserID != filter.ParentUserID {
			continue
		}
		if filter.StudentUserID != "" && st.StudentUserID != filter.StudentUserID {
			continue
		}
		if filter.Name != "" && st.Name != filter.Name {
			continue
		}
		students = append(students, repo.withParent(st))
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].Name != students[j].Name {
			return students[i].Name < students[j].Name
		}
		return students[i].ID < students[j].ID
	})
	return students, nil
}

func (repo *studentRepository) UpdateStudent(_ context.Context, st student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.students[st.ID]; !ok {
		return student.Student{}, student.ErrNotFound
	}
	st.ParentName, st.ParentMobile = "", ""
	repo.db.students[st.ID] = st
	return repo.withParent(st), nil
}

func (repo *studentRepository) DeleteStudent(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.students[id]; !ok {
		return student.ErrNotFound
	}
	delete(repo.db.students, id)
	return nil
}
