package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/frankspastic/psia-gradebook/core/gradebook"
	"github.com/frankspastic/psia-gradebook/core/mailer"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db  *sqlx.DB
	svc *gradebook.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate - apply the database schema")
	fmt.Println("  smtp -email EMAIL [-host HOST] [-port PORT] [-fromname NAME] - store the SMTP sender settings")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	smtpCmd := flag.NewFlagSet("smtp", flag.ExitOnError)
	smtpEmail := smtpCmd.String("email", "", "The sender email address. The app password will be prompted next.")
	smtpHost := smtpCmd.String("host", mailer.DefaultHost, "The SMTP server host.")
	smtpPort := smtpCmd.Int("port", mailer.DefaultPort, "The SMTP server port.")
	smtpFromName := smtpCmd.String("fromname", mailer.DefaultFromName, "The sender display name.")

	switch args[1] {
	case "migrate":
		return cli.migrate()
	case "smtp":
		if err := smtpCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *smtpEmail == "" {
			smtpCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			smtpCmd.Usage()
			return errHelp
		}
		return cli.configureSMTP(*smtpEmail, string(pwd), *smtpFromName, *smtpHost, *smtpPort)
	default:
		cli.printUsage()
		return errHelp
	}
}
