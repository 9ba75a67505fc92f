package mailer

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/frankspastic/psia-gradebook/core"
	"github.com/frankspastic/psia-gradebook/core/gradebook"
)

// Settings-store keys holding the SMTP configuration.
const (
	SettingSMTPEmail    = "smtp_email"
	SettingSMTPPassword = "smtp_password"
	SettingSMTPFromName = "smtp_from_name"
	SettingSMTPHost     = "smtp_host"
	SettingSMTPPort     = "smtp_port"
)

// Defaults applied when the corresponding setting is absent. Configuration
// counts as present only when both email and password are set.
const (
	DefaultFromName = "PSIA Gradebook"
	DefaultHost     = "smtp.gmail.com"
	DefaultPort     = 587
)

var ErrSettingsNotConfigured = errors.New("SMTP settings not configured")

// SettingsStore is the slice of the gradebook repository the dispatcher
// needs; *gradebook.Service satisfies it.
type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (gradebook.Setting, error)
}

// LoadSMTPSettings assembles an explicit SMTPSettings value from the
// key-value store. ErrSettingsNotConfigured is returned when email or
// password is missing; other fields fall back to defaults.
func LoadSMTPSettings(ctx context.Context, store SettingsStore) (core.SMTPSettings, error) {
	email, err := getSetting(ctx, store, SettingSMTPEmail)
	if err != nil {
		return core.SMTPSettings{}, err
	}
	password, err := getSetting(ctx, store, SettingSMTPPassword)
	if err != nil {
		return core.SMTPSettings{}, err
	}

	settings := core.SMTPSettings{
		Email:    email,
		Password: password,
		FromName: DefaultFromName,
		Host:     DefaultHost,
		Port:     DefaultPort,
	}
	if !settings.IsConfigured() {
		return core.SMTPSettings{}, ErrSettingsNotConfigured
	}

	if fromName, err := getSetting(ctx, store, SettingSMTPFromName); err != nil {
		return core.SMTPSettings{}, err
	} else if fromName != "" {
		settings.FromName = fromName
	}
	if host, err := getSetting(ctx, store, SettingSMTPHost); err != nil {
		return core.SMTPSettings{}, err
	} else if host != "" {
		settings.Host = host
	}
	if port, err := getSetting(ctx, store, SettingSMTPPort); err != nil {
		return core.SMTPSettings{}, err
	} else if port != "" {
		// a malformed stored port falls back to the default
		if p, err := strconv.Atoi(port); err == nil {
			settings.Port = p
		}
	}
	return settings, nil
}

// getSetting treats an absent key as the empty value.
func getSetting(ctx context.Context, store SettingsStore, key string) (string, error) {
	s, err := store.GetSetting(ctx, key)
	if err == gradebook.ErrSettingNotFound {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "reading setting %q", key)
	}
	return s.Value, nil
}
