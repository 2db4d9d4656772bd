package assistant

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/attendance"
	"github.com/vidyasetu/backend/core/leave"
	"github.com/vidyasetu/backend/core/notice"
	"github.com/vidyasetu/backend/core/period"
	"github.com/vidyasetu/backend/core/school"
	"github.com/vidyasetu/backend/core/user"
)

const (
	noticeLimit       = 3
	staffLeaveLimit   = 2
	studentLeaveLimit = 1
)

var ErrEmptyQuestion = errors.New("question cannot be empty")

// Model answers a question given the digest of the asker's school data.
type Model interface {
	Answer(ctx context.Context, digest, question string) (string, error)
}

// Request identifies whose digest is built. StudentID and ClassName only matter for parents and students.
type Request struct {
	Role       user.Role `json:"role"`
	SchoolCode string    `json:"school_code"`
	UserID     string    `json:"user_id"`
	StudentID  string    `json:"student_id"`
	ClassName  string    `json:"class_name"`
}

type Service struct {
	schools    *school.Service
	notices    *notice.Service
	leaves     *leave.Service
	attendance *attendance.Service
	periods    *period.Service
	model      Model
}

func NewService(
	schools *school.Service,
	notices *notice.Service,
	leaves *leave.Service,
	att *attendance.Service,
	periods *period.Service,
	model Model,
) *Service {
	return &Service{
		schools:    schools,
		notices:    notices,
		leaves:     leaves,
		attendance: att,
		periods:    periods,
		model:      model,
	}
}

// Digest always returns text that can be handed to the model: on failure it is one of the fallbacks
// and err carries the cause for logging.
func (svc *Service) Digest(ctx context.Context, req Request, today core.Date) (string, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return FallbackNoContext, nil
	}
	sch, err := svc.schools.GetByCode(ctx, req.SchoolCode)
	if err != nil {
		if errors.Cause(err) == school.ErrNotFound {
			return FallbackNoContext, nil
		}
		return FallbackUnavailable, errors.Wrap(err, "resolving school")
	}

	c, err := svc.gather(ctx, sch, req, today)
	if err != nil {
		return FallbackUnavailable, err
	}
	return Build(c), nil
}

func (svc *Service) gather(ctx context.Context, sch school.School, req Request, today core.Date) (Context, error) {
	c := Context{Today: today}
	var err error

	if c.Notices, err = svc.notices.Latest(ctx, sch.ID, noticeLimit); err != nil {
		return c, errors.Wrap(err, "querying notices")
	}

	switch req.Role {
	case user.RoleTeacher, user.RoleDriver, user.RolePrincipal:
		if c.StaffLeaves, err = svc.leaves.LatestStaffLeaves(ctx, req.UserID, staffLeaveLimit); err != nil {
			return c, errors.Wrap(err, "querying staff leaves")
		}
	case user.RoleParent, user.RoleStudent, user.RoleAdmin:
	}

	if req.Role.IsFamily() && req.StudentID != "" {
		st := &StudentContext{ClassName: strings.TrimSpace(req.ClassName)}
		if st.Attendance, err = svc.attendance.StatusOn(ctx, req.StudentID, today); err != nil {
			return c, errors.Wrap(err, "querying attendance")
		}
		if st.ClassName != "" {
			if st.Homework, err = svc.periods.ClassPeriods(ctx, sch.ID, st.ClassName, today); err != nil {
				return c, errors.Wrap(err, "querying class periods")
			}
		}
		leaves, err := svc.leaves.LatestStudentLeaves(ctx, req.StudentID, studentLeaveLimit)
		if err != nil {
			return c, errors.Wrap(err, "querying student leaves")
		}
		if len(leaves) > 0 {
			st.LatestLeave = &leaves[0]
		}
		c.Student = st
	}

	if req.Role == user.RoleTeacher {
		if c.Submissions, err = svc.periods.TeacherPeriods(ctx, req.UserID, today); err != nil {
			return c, errors.Wrap(err, "querying teacher periods")
		}
	}
	return c, nil
}

// Ask forwards a digest built by Digest and the question to the model.
func (svc *Service) Ask(ctx context.Context, digest, question string) (string, error) {
	question = core.CleanString(question)
	if question == "" {
		return "", core.NewValidationError(nil, core.FieldError{Field: "question", Error: ErrEmptyQuestion.Error()})
	}
	answer, err := svc.model.Answer(ctx, digest, question)
	return answer, errors.Wrap(err, "asking model")
}
