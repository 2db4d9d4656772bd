package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/school"
	"github.com/vidyasetu/backend/core/user"
	"github.com/vidyasetu/backend/storage/database/dummy"
	"github.com/vidyasetu/backend/tests"
)

const pwd = "Vidya@2024"

var (
	schRepo school.Repository
	usrRepo user.Repository
)

func setup(t *testing.T) *commandLine {
	logger = log.New(os.Stdout, "ADMIN : ", 0)

	db, err := dummydb.Open()
	require.NoError(t, err)
	validate, _ := testutil.NewValidator()
	schRepo = dummydb.NewSchoolRepository(db)
	usrRepo = dummydb.NewUserRepository(db)

	// start CLI
	return &commandLine{
		schools: school.NewService(schRepo, validate),
		users:   user.NewService(usrRepo, validate),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func checkRun(t *testing.T, cli *commandLine, tt cliTest) error {
	args := append([]string{"admin"}, tt.args...)
	err := cli.run(args)
	switch {
	case err == nil:
		if tt.wantErr != nil || tt.wantErrStr != "" {
			t.Errorf("cli.run() error = nil, want an error")
		}
	case tt.wantErr != nil:
		if errors.Cause(err) != tt.wantErr {
			t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
		}
	case tt.wantErrStr != "":
		if err.Error() != tt.wantErrStr {
			t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
		}
	default:
		t.Errorf("cli.run() unexpected error = %v", err)
	}
	return err
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(_ *sqlx.DB, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "create", args: []string{"migrate", "create", "vehicles_route", "sql"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkRun(t, cli, tt)
		})
	}
}

func Test_commandLine_addSchoolAndUser(t *testing.T) {
	cli := setup(t)
	readPasswordFunc = func(int) ([]byte, error) { return []byte(pwd), nil }

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "addschool: no args", args: []string{"addschool"}, wantErr: errHelp},
		{name: "addschool", args: []string{"addschool", "-name", "Green Valley", "-code", "gvs01"}},
		{name: "addschool: code taken", args: []string{"addschool", "-name", "Other", "-code", "GVS01"}, wantErrStr: school.ErrCodeExists.Error()},
		{name: "adduser: missing role", args: []string{"adduser", "-school", "GVS01", "-mobile", "9000000001", "-name", "Lakshmi"}, wantErr: errHelp},
		{name: "adduser: unknown school", args: []string{"adduser", "-school", "NOPE", "-mobile", "9000000001", "-name", "Lakshmi", "-role", "principal"}, wantErr: school.ErrNotFound},
		{name: "adduser", args: []string{"adduser", "-school", "gvs01", "-mobile", "9000000001", "-name", "Lakshmi", "-role", "Principal"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkRun(t, cli, tt)
		})
	}

	sch, err := schRepo.GetSchool(context.Background(), school.GetFilter{Code: "GVS01"})
	require.NoError(t, err)
	assert.Equal(t, core.TodayIST().AddYears(1), *sch.SubscriptionEnd)

	usr, err := usrRepo.GetUser(context.Background(), user.GetFilter{SchoolID: sch.ID, Mobile: "9000000001"})
	require.NoError(t, err)
	assert.Equal(t, user.RolePrincipal, usr.Role)
	assert.NoError(t, usr.CheckPassword(pwd))
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)
	sch := testutil.CreateSchool(t, schRepo, "Green Valley", "GVS01", nil)
	usr := testutil.CreateUser(t, usrRepo, sch.ID, "Meena", "9000000002", pwd, user.RoleTeacher)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "mobile but no password", args: []string{"resetpassword", "-school", "GVS01", "-mobile", "9000000002"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-school", "GVS01", "-mobile", "9000000009"}, extra: extra{pwd: "Shala#2025"}, wantErr: user.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-school", "GVS01", "-mobile", "9000000002"}, extra: extra{pwd: "Shala#2025"}},
	}
	for _, tt := range tests {
		readPasswordFunc = func(int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := checkRun(t, cli, tt); err == nil {
				refreshedUsr, err := usrRepo.GetUser(context.Background(), user.GetFilter{ID: usr.ID})
				if err != nil {
					t.Fatalf("GetUser() failed, %v", err)
				}
				if bytes.Equal(refreshedUsr.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			}
		})
	}
}

func Test_commandLine_subscription(t *testing.T) {
	cli := setup(t)
	sch := testutil.CreateSchool(t, schRepo, "Green Valley", "GVS01", nil)
	usr := testutil.CreateUser(t, usrRepo, sch.ID, "Ravi", "9000000003", pwd, user.RoleParent)

	tests := []cliTest{
		{name: "no until", args: []string{"subscription", "-school", "GVS01"}, wantErr: errHelp},
		{name: "bad date", args: []string{"subscription", "-school", "GVS01", "-until", "31/12/2024"}, wantErrStr: `parsing date "31/12/2024": parsing time "31/12/2024" as "2006-01-02": cannot parse "31/12/2024" as "2006"`},
		{name: "school", args: []string{"subscription", "-school", "GVS01", "-until", "2024-12-31"}},
		{name: "user", args: []string{"subscription", "-school", "GVS01", "-mobile", "9000000003", "-until", "2025-03-31"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkRun(t, cli, tt)
		})
	}

	ctx := context.Background()
	gotSch, err := schRepo.GetSchool(ctx, school.GetFilter{ID: sch.ID})
	require.NoError(t, err)
	assert.Equal(t, core.MustParseDate("2024-12-31").Ptr(), gotSch.SubscriptionEnd)
	gotUsr, err := usrRepo.GetUser(ctx, user.GetFilter{ID: usr.ID})
	require.NoError(t, err)
	assert.Equal(t, core.MustParseDate("2025-03-31").Ptr(), gotUsr.SubscriptionEnd)

	// none removes the school's subscription
	checkRun(t, cli, cliTest{args: []string{"subscription", "-school", "GVS01", "-until", "none"}})
	gotSch, err = schRepo.GetSchool(ctx, school.GetFilter{ID: sch.ID})
	require.NoError(t, err)
	assert.Nil(t, gotSch.SubscriptionEnd)
}
