package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/notice"
	"github.com/vidyasetu/backend/core/school"
	"github.com/vidyasetu/backend/core/student"
	"github.com/vidyasetu/backend/core/user"
)

// NewValidator returns a validator with every custom validation and English translation registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	notice.InitValidators(validate, translator)
	return validate, translator
}

func CreateSchool(t *testing.T, repo school.Repository, name, code string, subscriptionEnd *core.Date, createdAt ...time.Time) school.School {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	sch, err := repo.CreateSchool(context.Background(), school.School{
		Name:            name,
		Code:            code,
		IsActive:        true,
		SubscriptionEnd: subscriptionEnd,
		TotalPeriods:    school.DefaultTotalPeriods,
		CreatedAt:       tstamp,
	})
	if err != nil {
		t.Fatalf("CreateSchool() failed: %v", err)
	}
	return sch
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	schoolID, name, mobile, pwd string,
	role user.Role,
	subscriptionEnd ...*core.Date,
) user.User {
	usr := user.User{
		SchoolID:  schoolID,
		Name:      name,
		Mobile:    mobile,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if len(subscriptionEnd) > 0 {
		usr.SubscriptionEnd = subscriptionEnd[0]
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateStudent(t *testing.T, repo student.Repository, schoolID, name, className, parentID string) student.Student {
	st, err := repo.CreateStudent(context.Background(), student.Student{
		SchoolID:     schoolID,
		Name:         name,
		ClassName:    className,
		ParentUserID: parentID,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return st
}
