package main

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/frankspastic/psia-gradebook/core/gradebook"
	"github.com/frankspastic/psia-gradebook/core/mailer"
	"github.com/frankspastic/psia-gradebook/storage/database/dummy"
)

var repo gradebook.Repository

func setup(t *testing.T) *commandLine {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed, %v", err)
	}
	repo = dummydb.NewGradebookRepository(db)

	return &commandLine{
		svc: gradebook.NewService(repo),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	var migrated bool
	migrateFunc = func(db *sqlx.DB) error {
		migrated = true
		return nil
	}

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "migrate", args: []string{"migrate"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			migrated = false
			if err := cli.run(args); err != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if !migrated {
				t.Error("migrate command did not run the migration")
			}
		})
	}
}

func Test_commandLine_smtp(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"smtp"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"smtp", "-email", "t@x.cd"}, wantErr: errHelp},
		{
			name:  "defaults applied",
			args:  []string{"smtp", "-email", "Teacher@School.ORG"},
			extra: extra{pwd: "app-pwd"},
		},
		{
			name:  "explicit host and port",
			args:  []string{"smtp", "-email", "t@school.org", "-host", "mail.school.org", "-port", "465", "-fromname", "Ms. Frizzle"},
			extra: extra{pwd: "s3cret"},
		},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			settings, err := mailer.LoadSMTPSettings(context.Background(), cli.svc)
			if err != nil {
				t.Fatalf("LoadSMTPSettings() failed, %v", err)
			}
			if !settings.IsConfigured() {
				t.Error("settings not stored")
			}
			if extra, ok := tt.extra.(extra); ok && settings.Password != extra.pwd {
				t.Errorf("stored password = %q, want %q", settings.Password, extra.pwd)
			}
		})
	}
}

func Test_commandLine_smtp_emailLowercased(t *testing.T) {
	cli := setup(t)

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("pwd"), nil }

	if err := cli.run([]string{"admin", "smtp", "-email", "Teacher@School.ORG"}); err != nil {
		t.Fatalf("cli.run() failed, %v", err)
	}

	settings, err := mailer.LoadSMTPSettings(context.Background(), cli.svc)
	if err != nil {
		t.Fatalf("LoadSMTPSettings() failed, %v", err)
	}
	if settings.Email != "teacher@school.org" {
		t.Errorf("stored email = %q, want %q", settings.Email, "teacher@school.org")
	}
}
