package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/school"
	"github.com/vidyasetu/backend/core/user"
	"github.com/vidyasetu/backend/storage/database"
	sqlxrepos "github.com/vidyasetu/backend/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	// set up DB
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	errAndDie(database.CreateIfNotExist(ctx, conf))
	db, err := database.Open(ctx, conf)
	cancel()
	errAndDie(err)
	defer db.Close()

	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		db:      db,
		schools: school.NewService(sqlxrepos.NewSchoolRepository(db), validate),
		users:   user.NewService(sqlxrepos.NewUserRepository(db), validate),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
