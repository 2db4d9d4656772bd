package attendance

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/student"
)

const HistoryLimit = 60

var (
	ErrNotFound   = errors.New("attendance not marked")
	ErrNotInClass = errors.New("records must only contain students of the class")
)

type (
	Repository interface {
		// UpsertRecords writes all records atomically, replacing any existing (student, date) row.
		UpsertRecords(ctx context.Context, recs []Record) error
		// QueryClassMarks returns the school's marks for a date, optionally restricted to one class.
		QueryClassMarks(ctx context.Context, schoolID, className string, date core.Date) ([]ClassMark, error)
		GetRecord(ctx context.Context, studentID string, date core.Date) (Record, error)
		// QueryHistory returns the latest records of a student, newest first.
		QueryHistory(ctx context.Context, studentID string, limit int) ([]HistoryItem, error)
	}

	Service struct {
		repo     Repository
		students student.Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, students student.Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, students: students, validate: validate}
}

// Submit marks a class for the day. An empty batch, or one naming a student outside the school's class,
// is rejected before reaching the store.
func (svc *Service) Submit(ctx context.Context, schoolID, markedBy string, today core.Date, batch Batch) error {
	if err := batch.Validate(svc.validate); err != nil {
		return err
	}
	if err := svc.checkClass(ctx, schoolID, batch); err != nil {
		return err
	}
	recs := make([]Record, 0, len(batch.Records))
	for _, e := range batch.Records {
		recs = append(recs, Record{
			SchoolID:  schoolID,
			StudentID: e.StudentID,
			MarkedBy:  markedBy,
			Date:      today,
			Status:    e.Status,
		})
	}
	return errors.Wrap(svc.repo.UpsertRecords(ctx, recs), "upserting attendance")
}

func (svc *Service) checkClass(ctx context.Context, schoolID string, batch Batch) error {
	for _, e := range batch.Records {
		st, err := svc.students.GetStudent(ctx, e.StudentID)
		if err != nil {
			if errors.Cause(err) == student.ErrNotFound {
				return core.NewValidationError(nil, core.FieldError{Field: "records", Error: ErrNotInClass.Error()})
			}
			return errors.Wrap(err, "getting student")
		}
		if st.SchoolID != schoolID || st.ClassName != batch.ClassName {
			return core.NewValidationError(nil, core.FieldError{Field: "records", Error: ErrNotInClass.Error()})
		}
	}
	return nil
}

// CompletedClasses lists the classes already marked on date.
func (svc *Service) CompletedClasses(ctx context.Context, schoolID string, date core.Date) ([]string, error) {
	marks, err := svc.repo.QueryClassMarks(ctx, schoolID, "", date)
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance marks")
	}
	return CompletedClasses(marks), nil
}

func (svc *Service) ClassAttendance(ctx context.Context, schoolID, className string, date core.Date) (map[string]Status, error) {
	marks, err := svc.repo.QueryClassMarks(ctx, schoolID, className, date)
	if err != nil {
		return nil, errors.Wrap(err, "querying class attendance")
	}
	return ByStudent(marks), nil
}

// StatusOn returns the student's status on date, or StatusPending when not marked.
func (svc *Service) StatusOn(ctx context.Context, studentID string, date core.Date) (Status, error) {
	rec, err := svc.repo.GetRecord(ctx, studentID, date)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return StatusPending, nil
		}
		return "", errors.Wrap(err, "getting attendance record")
	}
	return rec.Status, nil
}

func (svc *Service) History(ctx context.Context, studentID string) ([]HistoryItem, error) {
	return svc.repo.QueryHistory(ctx, studentID, HistoryLimit)
}
