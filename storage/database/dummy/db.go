// Package dummydb keeps every repository in memory. It backs tests and the "dummy" database engine.
package dummydb

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/attendance"
	"github.com/vidyasetu/backend/core/curriculum"
	"github.com/vidyasetu/backend/core/homework"
	"github.com/vidyasetu/backend/core/leave"
	"github.com/vidyasetu/backend/core/notice"
	"github.com/vidyasetu/backend/core/period"
	"github.com/vidyasetu/backend/core/school"
	"github.com/vidyasetu/backend/core/student"
	"github.com/vidyasetu/backend/core/user"
	"github.com/vidyasetu/backend/core/vehicle"
)

// DB is guarded by a single lock so repositories can join across tables.
type DB struct {
	sync.RWMutex

	schools       map[string]school.School
	users         map[string]user.User
	students      map[string]student.Student
	attendance    map[attendanceKey]attendance.Record
	periods       map[periodKey]period.Period
	submissions   map[submissionKey]homework.Submission
	notices       map[string]notice.Notice
	staffLeaves   map[string]leave.StaffLeave
	studentLeaves map[string]leave.StudentLeave
	vehicles      map[string]vehicle.Vehicle
	curriculum    map[curriculum.Level]map[string]curriculum.Item
}

type (
	attendanceKey struct {
		studentID string
		date      core.Date
	}

	periodKey struct {
		teacherID string
		date      core.Date
		number    int
	}

	submissionKey struct {
		studentID string
		date      core.Date
		number    int
	}
)

func Open() (*DB, error) {
	db := &DB{
		schools:       make(map[string]school.School),
		users:         make(map[string]user.User),
		students:      make(map[string]student.Student),
		attendance:    make(map[attendanceKey]attendance.Record),
		periods:       make(map[periodKey]period.Period),
		submissions:   make(map[submissionKey]homework.Submission),
		notices:       make(map[string]notice.Notice),
		staffLeaves:   make(map[string]leave.StaffLeave),
		studentLeaves: make(map[string]leave.StudentLeave),
		vehicles:      make(map[string]vehicle.Vehicle),
		curriculum: map[curriculum.Level]map[string]curriculum.Item{
			curriculum.LevelClass:    make(map[string]curriculum.Item),
			curriculum.LevelSubject:  make(map[string]curriculum.Item),
			curriculum.LevelLesson:   make(map[string]curriculum.Item),
			curriculum.LevelHomework: make(map[string]curriculum.Item),
		},
	}
	return db, nil
}

func newID() string {
	return uuid.New().String()
}

// newerFirst orders by creation time, newest first, then by ID descending, as "ORDER BY created_at DESC, id DESC".
func newerFirst(at1 time.Time, id1 string, at2 time.Time, id2 string) bool {
	if at1.Equal(at2) {
		return id1 > id2
	}
	return at1.After(at2)
}

// userName returns the name of the user with id, or "". Callers hold the lock.
func (db *DB) userName(id string) string {
	return db.users[id].Name
}
