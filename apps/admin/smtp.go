package main

import (
	"context"
	"strconv"

	"github.com/frankspastic/psia-gradebook/core"
	"github.com/frankspastic/psia-gradebook/core/mailer"
)

// configureSMTP stores the SMTP sender settings in the settings store.
func (cli *commandLine) configureSMTP(email, pwd, fromName, host string, port int) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)

	pairs := [][2]string{
		{mailer.SettingSMTPEmail, email},
		{mailer.SettingSMTPPassword, pwd},
		{mailer.SettingSMTPFromName, fromName},
		{mailer.SettingSMTPHost, host},
		{mailer.SettingSMTPPort, strconv.Itoa(port)},
	}
	for _, kv := range pairs {
		if err := cli.svc.SetSetting(ctx, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}
