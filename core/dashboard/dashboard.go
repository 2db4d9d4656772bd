// Package dashboard assembles what a user sees after logging in, and the principal's school overview.
package dashboard

import (
	"context"

	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/attendance"
	"github.com/vidyasetu/backend/core/period"
	"github.com/vidyasetu/backend/core/school"
	"github.com/vidyasetu/backend/core/student"
	"github.com/vidyasetu/backend/core/subscription"
	"github.com/vidyasetu/backend/core/user"
)

const (
	DefaultPrincipalName = "Principal"
	NoContact            = "No Contact"

	periodSubmitted = "submitted"
)

var ErrInvalidCredentials = errors.New("invalid school code, mobile number or password")

type Credentials struct {
	SchoolCode string `json:"school_code" validate:"required"`
	Mobile     string `json:"mobile" validate:"required"`
	Password   string `json:"password" validate:"required"`
	StudentID  string `json:"student_id"` // parents: which child to show
}

type (
	Data struct {
		UserID       string    `json:"user_id"`
		SchoolID     string    `json:"school_db_id"`
		UserName     string    `json:"user_name"`
		Role         user.Role `json:"user_role"`
		Mobile       string    `json:"mobile_number"`
		SchoolName   string    `json:"school_name"`
		SchoolCode   string    `json:"school_code"`
		TotalPeriods int       `json:"total_periods"`
		subscription.Access

		Periods []TodayPeriod `json:"periods,omitempty"` // teachers
		*Child
	}

	TodayPeriod struct {
		ID           string `json:"id"`
		Number       int    `json:"period_number"`
		Status       string `json:"status"`
		ClassName    string `json:"class_name"`
		Subject      string `json:"subject"`
		Lesson       string `json:"lesson"`
		Homework     string `json:"homework"`
		HomeworkType string `json:"homework_type"`
	}

	// Child is the student shown to parents and students.
	Child struct {
		StudentID       string            `json:"student_id"`
		StudentName     string            `json:"student_name"`
		ClassName       string            `json:"class_name"`
		Section         string            `json:"section"`
		FatherName      string            `json:"father_name,omitempty"`
		LinkedParentID  string            `json:"linked_parent_id,omitempty"`
		TodayAttendance attendance.Status `json:"today_attendance"`
		Siblings        []Sibling         `json:"siblings,omitempty"`
	}

	Sibling struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		ClassName string `json:"class_name"`
		Section   string `json:"section"`
	}

	Summary struct {
		SchoolName    string `json:"school_name"`
		SchoolCode    string `json:"school_code"`
		PrincipalName string `json:"principal_name"`
		TotalTeachers int    `json:"total_teachers"`
		TotalDrivers  int    `json:"total_drivers"`
		TotalStudents int    `json:"total_students"`
		TotalPeriods  int    `json:"total_periods"`
	}

	// Member is a row of the principal's user directory.
	Member struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Mobile string `json:"mobile"`
	}
)

// Directory categories.
const (
	CategoryStudents = "students"
	CategoryTeachers = "teachers"
	CategoryDrivers  = "drivers"
)

type Service struct {
	schools    *school.Service
	users      *user.Service
	students   *student.Service
	attendance *attendance.Service
	periods    *period.Service
}

func NewService(
	schools *school.Service,
	users *user.Service,
	students *student.Service,
	att *attendance.Service,
	periods *period.Service,
) *Service {
	return &Service{schools: schools, users: users, students: students, attendance: att, periods: periods}
}

// Login resolves the school and user behind creds and loads their dashboard.
func (svc *Service) Login(ctx context.Context, creds Credentials, today core.Date) (user.User, Data, error) {
	sch, err := svc.schools.GetByCode(ctx, creds.SchoolCode)
	if err != nil {
		if errors.Cause(err) == school.ErrNotFound {
			return user.User{}, Data{}, ErrInvalidCredentials
		}
		return user.User{}, Data{}, errors.Wrap(err, "resolving school")
	}
	usr, err := svc.users.Authenticate(ctx, sch.ID, core.CleanString(creds.Mobile), creds.Password)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return user.User{}, Data{}, ErrInvalidCredentials
		}
		return user.User{}, Data{}, errors.Wrap(err, "authenticating user")
	}
	data, err := svc.load(ctx, sch, usr, creds.StudentID, today)
	return usr, data, err
}

// Load rebuilds the dashboard of an already authenticated user.
func (svc *Service) Load(ctx context.Context, usr user.User, studentID string, today core.Date) (Data, error) {
	sch, err := svc.schools.GetByID(ctx, usr.SchoolID)
	if err != nil {
		return Data{}, errors.Wrap(err, "getting school")
	}
	return svc.load(ctx, sch, usr, studentID, today)
}

func (svc *Service) load(ctx context.Context, sch school.School, usr user.User, studentID string, today core.Date) (Data, error) {
	data := Data{
		UserID:       usr.ID,
		SchoolID:     sch.ID,
		UserName:     usr.Name,
		Role:         usr.Role,
		Mobile:       usr.Mobile,
		SchoolName:   sch.Name,
		SchoolCode:   sch.Code,
		TotalPeriods: sch.Periods(),
		Access:       subscription.Determine(sch, usr, today),
	}

	var err error
	switch usr.Role {
	case user.RoleTeacher:
		data.Periods, err = svc.teacherPeriods(ctx, usr, today)
	case user.RoleParent:
		data.Child, err = svc.parentChild(ctx, usr, studentID, today)
	case user.RoleStudent:
		data.Child, err = svc.studentSelf(ctx, usr, today)
	case user.RolePrincipal, user.RoleDriver, user.RoleAdmin:
	}
	return data, err
}

func (svc *Service) teacherPeriods(ctx context.Context, usr user.User, today core.Date) ([]TodayPeriod, error) {
	rows, err := svc.periods.TeacherPeriods(ctx, usr.ID, today)
	if err != nil {
		return nil, errors.Wrap(err, "querying today's periods")
	}
	periods := make([]TodayPeriod, 0, len(rows))
	for _, p := range rows {
		periods = append(periods, TodayPeriod{
			ID:           p.ID,
			Number:       p.Number,
			Status:       periodSubmitted,
			ClassName:    p.ClassName,
			Subject:      p.Subject,
			Lesson:       p.Lesson,
			Homework:     p.Homework,
			HomeworkType: p.HomeworkType,
		})
	}
	return periods, nil
}

// parentChild shows the child with studentID, or the first child. A parent without children gets no Child.
func (svc *Service) parentChild(ctx context.Context, usr user.User, studentID string, today core.Date) (*Child, error) {
	kids, err := svc.students.Children(ctx, usr.ID)
	if err != nil {
		return nil, errors.Wrap(err, "querying children")
	}
	if len(kids) == 0 {
		return nil, nil
	}

	selected := kids[0]
	if studentID != "" {
		found := false
		for _, k := range kids {
			if k.ID == studentID {
				selected, found = k, true
				break
			}
		}
		if !found {
			return nil, nil
		}
	}

	child, err := svc.child(ctx, selected, today)
	if err != nil {
		return nil, err
	}
	child.Siblings = make([]Sibling, 0, len(kids))
	for _, k := range kids {
		child.Siblings = append(child.Siblings, Sibling{ID: k.ID, Name: k.Name, ClassName: k.ClassName, Section: k.Section})
	}
	return child, nil
}

func (svc *Service) studentSelf(ctx context.Context, usr user.User, today core.Date) (*Child, error) {
	st, err := svc.students.ForUser(ctx, usr)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(err, "finding student record")
	}
	child, err := svc.child(ctx, st, today)
	if err != nil {
		return nil, err
	}
	child.FatherName = st.FatherName
	child.LinkedParentID = st.ParentUserID
	return child, nil
}

func (svc *Service) child(ctx context.Context, st student.Student, today core.Date) (*Child, error) {
	status, err := svc.attendance.StatusOn(ctx, st.ID, today)
	if err != nil {
		return nil, errors.Wrap(err, "getting today's attendance")
	}
	return &Child{
		StudentID:       st.ID,
		StudentName:     st.Name,
		ClassName:       st.ClassName,
		Section:         st.Section,
		TodayAttendance: status,
	}, nil
}

// Summary is the principal's overview of a school.
func (svc *Service) Summary(ctx context.Context, schoolID string) (Summary, error) {
	sch, err := svc.schools.GetByID(ctx, schoolID)
	if err != nil {
		return Summary{}, errors.Wrap(err, "getting school")
	}
	staff, err := svc.users.Query(ctx, schoolID, user.RolePrincipal, user.RoleTeacher, user.RoleDriver)
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying staff")
	}
	students, err := svc.students.ListSchool(ctx, schoolID)
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying students")
	}

	summary := Summary{
		SchoolName:    sch.Name,
		SchoolCode:    sch.Code,
		PrincipalName: DefaultPrincipalName,
		TotalStudents: len(students),
		TotalPeriods:  sch.Periods(),
	}
	principalFound := false
	for _, u := range staff {
		switch u.Role {
		case user.RolePrincipal:
			if !principalFound {
				summary.PrincipalName = core.StringOr(u.Name, DefaultPrincipalName)
				principalFound = true
			}
		case user.RoleTeacher:
			summary.TotalTeachers++
		case user.RoleDriver:
			summary.TotalDrivers++
		case user.RoleParent, user.RoleStudent, user.RoleAdmin:
		}
	}
	return summary, nil
}

// Members lists the students, teachers or drivers of a school by name. Any other category lists drivers.
func (svc *Service) Members(ctx context.Context, schoolID, category string) ([]Member, error) {
	if category == CategoryStudents {
		students, err := svc.students.ListSchool(ctx, schoolID)
		if err != nil {
			return nil, errors.Wrap(err, "querying students")
		}
		members := make([]Member, 0, len(students))
		for _, st := range students {
			members = append(members, Member{ID: st.ID, Name: st.Name, Mobile: core.StringOr(st.ParentMobile, NoContact)})
		}
		return members, nil
	}

	role := user.RoleDriver
	if category == CategoryTeachers {
		role = user.RoleTeacher
	}
	users, err := svc.users.Query(ctx, schoolID, role)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	members := make([]Member, 0, len(users))
	for _, u := range users {
		members = append(members, Member{ID: u.ID, Name: u.Name, Mobile: u.Mobile})
	}
	return members, nil
}
