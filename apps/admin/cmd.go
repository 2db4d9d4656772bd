package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/vidyasetu/backend/core/school"
	"github.com/vidyasetu/backend/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db      *sqlx.DB
	schools *school.Service
	users   *user.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose command (up, down, status, ...)")
	fmt.Println("  addschool -name NAME -code CODE - register a school with a one year subscription")
	fmt.Println("  adduser -school CODE -mobile MOBILE -name NAME -role ROLE - add a user; the password is prompted next")
	fmt.Println("  resetpassword -school CODE -mobile MOBILE - reset a user's password")
	fmt.Println("  subscription -school CODE [-mobile MOBILE] -until YYYY-MM-DD|none - set a school's or a user's subscription end")
}

// readPassword prompts for a password. An empty password prints the usage of cmd.
func readPassword(cmd *flag.FlagSet) (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		cmd.Usage()
		return "", errHelp
	}
	return string(pwd), nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addSchoolCmd := flag.NewFlagSet("addschool", flag.ContinueOnError)
	addSchoolName := addSchoolCmd.String("name", "", "The school's name.")
	addSchoolCode := addSchoolCmd.String("code", "", "The school code users log in with.")

	addUserCmd := flag.NewFlagSet("adduser", flag.ContinueOnError)
	addUserSchool := addUserCmd.String("school", "", "The school code.")
	addUserMobile := addUserCmd.String("mobile", "", "The user's 10 digit mobile number.")
	addUserName := addUserCmd.String("name", "", "The user's name.")
	addUserRole := addUserCmd.String("role", "", "One of principal, teacher, driver, parent, student, admin.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
	resetPasswordSchool := resetPasswordCmd.String("school", "", "The school code.")
	resetPasswordMobile := resetPasswordCmd.String("mobile", "", "The user's mobile number. The password will be prompted next.")

	subscriptionCmd := flag.NewFlagSet("subscription", flag.ContinueOnError)
	subscriptionSchool := subscriptionCmd.String("school", "", "The school code.")
	subscriptionMobile := subscriptionCmd.String("mobile", "", "Set the subscription of this user instead of the school's.")
	subscriptionUntil := subscriptionCmd.String("until", "", "The last day of the subscription, or none.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "addschool":
		if err := addSchoolCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addSchoolName == "" || *addSchoolCode == "" {
			addSchoolCmd.Usage()
			return errHelp
		}
		return cli.addSchool(*addSchoolName, *addSchoolCode)

	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserSchool == "" || *addUserMobile == "" || *addUserName == "" || *addUserRole == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := readPassword(addUserCmd)
		if err != nil {
			return err
		}
		return cli.addUser(*addUserSchool, *addUserMobile, *addUserName, *addUserRole, pwd)

	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordSchool == "" || *resetPasswordMobile == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := readPassword(resetPasswordCmd)
		if err != nil {
			return err
		}
		return cli.resetPassword(*resetPasswordSchool, *resetPasswordMobile, pwd)

	case "subscription":
		if err := subscriptionCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *subscriptionSchool == "" || *subscriptionUntil == "" {
			subscriptionCmd.Usage()
			return errHelp
		}
		return cli.setSubscription(*subscriptionSchool, *subscriptionMobile, *subscriptionUntil)

	default:
		cli.printUsage()
		return errHelp
	}
}
