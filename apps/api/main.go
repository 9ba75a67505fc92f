package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/frankspastic/psia-gradebook/apps/api/echo"
	"github.com/frankspastic/psia-gradebook/core"
	"github.com/frankspastic/psia-gradebook/core/gradebook"
	"github.com/frankspastic/psia-gradebook/core/mailer"
	"github.com/frankspastic/psia-gradebook/services/email"
	"github.com/frankspastic/psia-gradebook/services/logger"
	"github.com/frankspastic/psia-gradebook/storage/database"
	"github.com/frankspastic/psia-gradebook/storage/database/sqlite"
)

func main() {
	conf := core.NewConfig()

	stdLogger := log.New(os.Stdout, conf.AppName+" : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var appLogger core.Logger
	if conf.RollbarToken != "" {
		appLogger = logsvc.NewRollbarLogger(stdLogger, conf)
	} else {
		appLogger = logsvc.NewStdLogger(stdLogger)
	}

	// set up DB
	db, err := database.Open(conf)
	errAndDie(appLogger, err)
	defer db.Close()
	errAndDie(appLogger, database.Migrate(db))

	// set up services
	gradebookSvc := gradebook.NewService(sqliterepos.NewGradebookRepository(db))

	var transport core.EmailTransport
	if conf.Debug {
		transport = emailsvc.NewConsoleTransport()
	} else {
		transport = emailsvc.NewSMTPTransport()
	}
	dispatcher := mailer.NewDispatcher(gradebookSvc, transport, appLogger)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Conf:         conf,
			Logger:       appLogger,
			DB:           db,
			GradebookSvc: gradebookSvc,
			Dispatcher:   dispatcher,
		},
	)
	go app.Start()

	// graceful shutdown on OS signal or on the app asking for it
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var sig os.Signal
	select {
	case sig = <-shutdown:
	case sig = <-app.ShutdownSignal():
	}
	appLogger.Info(sig.String() + ": shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		appLogger.Error("could not stop server gracefully", err)
	}
}

func errAndDie(logger core.Logger, err error) {
	if err != nil {
		logger.Fatal(err.Error())
	}
}
