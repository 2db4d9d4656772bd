package main

import (
	"context"
	"strings"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/school"
	"github.com/vidyasetu/backend/core/user"
)

func (cli *commandLine) addSchool(name, code string) error {
	sch, err := cli.schools.Create(context.Background(), school.NewSchool{Name: name, Code: code}, core.TodayIST())
	if err != nil {
		return err
	}
	logger.Printf("school %s (%s) created, subscribed until %s", sch.Code, sch.ID, sch.SubscriptionEnd)
	return nil
}

func (cli *commandLine) addUser(schoolCode, mobile, name, role, pwd string) error {
	ctx := context.Background()
	sch, err := cli.schools.GetByCode(ctx, schoolCode)
	if err != nil {
		return err
	}
	usr, err := cli.users.Create(ctx, user.NewUser{
		SchoolID:        sch.ID,
		Name:            name,
		Mobile:          mobile,
		Role:            user.Role(role),
		Password:        pwd,
		PasswordConfirm: pwd,
	})
	if err != nil {
		return err
	}
	logger.Printf("%s %s (%s) added to %s", usr.Role, usr.Name, usr.ID, sch.Code)
	return nil
}

func (cli *commandLine) findUser(ctx context.Context, schoolCode, mobile string) (user.User, error) {
	sch, err := cli.schools.GetByCode(ctx, schoolCode)
	if err != nil {
		return user.User{}, err
	}
	return cli.users.GetByMobile(ctx, sch.ID, core.CleanString(mobile))
}

func (cli *commandLine) resetPassword(schoolCode, mobile, pwd string) error {
	ctx := context.Background()
	usr, err := cli.findUser(ctx, schoolCode, mobile)
	if err != nil {
		return err
	}
	_, err = cli.users.ResetPassword(ctx, usr.ID, user.ResetUserPassword{Password: pwd, PasswordConfirm: pwd})
	return err
}

// setSubscription sets the subscription end of the school, or of one of its users when mobile is given.
// until "none" removes it.
func (cli *commandLine) setSubscription(schoolCode, mobile, until string) error {
	var end *core.Date
	if !strings.EqualFold(until, "none") {
		d, err := core.ParseDate(until)
		if err != nil {
			return err
		}
		end = &d
	}

	ctx := context.Background()
	if mobile != "" {
		usr, err := cli.findUser(ctx, schoolCode, mobile)
		if err != nil {
			return err
		}
		_, err = cli.users.SetSubscriptionEnd(ctx, usr.ID, end)
		return err
	}

	sch, err := cli.schools.GetByCode(ctx, schoolCode)
	if err != nil {
		return err
	}
	_, err = cli.schools.SetSubscriptionEnd(ctx, sch.ID, end)
	return err
}
