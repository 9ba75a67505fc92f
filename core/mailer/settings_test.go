package mailer

import (
	"context"
	"testing"
)

func TestLoadSMTPSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults applied", func(t *testing.T) {
		settings, err := LoadSMTPSettings(ctx, configuredStore())
		if err != nil {
			t.Fatalf("LoadSMTPSettings() failed: %v", err)
		}
		if settings.FromName != DefaultFromName {
			t.Errorf("FromName = %q, want default %q", settings.FromName, DefaultFromName)
		}
		if settings.Host != DefaultHost {
			t.Errorf("Host = %q, want default %q", settings.Host, DefaultHost)
		}
		if settings.Port != DefaultPort {
			t.Errorf("Port = %d, want default %d", settings.Port, DefaultPort)
		}
	})

	t.Run("stored values win", func(t *testing.T) {
		store := configuredStore()
		store[SettingSMTPFromName] = "Ms. Frizzle"
		store[SettingSMTPHost] = "mail.school.org"
		store[SettingSMTPPort] = "465"

		settings, err := LoadSMTPSettings(ctx, store)
		if err != nil {
			t.Fatalf("LoadSMTPSettings() failed: %v", err)
		}
		if settings.FromName != "Ms. Frizzle" || settings.Host != "mail.school.org" || settings.Port != 465 {
			t.Errorf("stored values not applied: %+v", settings)
		}
	})

	t.Run("malformed port falls back", func(t *testing.T) {
		store := configuredStore()
		store[SettingSMTPPort] = "lol"

		settings, err := LoadSMTPSettings(ctx, store)
		if err != nil {
			t.Fatalf("LoadSMTPSettings() failed: %v", err)
		}
		if settings.Port != DefaultPort {
			t.Errorf("Port = %d, want default %d", settings.Port, DefaultPort)
		}
	})

	t.Run("missing email or password", func(t *testing.T) {
		if _, err := LoadSMTPSettings(ctx, fakeStore{SettingSMTPEmail: "t@x.cd"}); err != ErrSettingsNotConfigured {
			t.Errorf("error = %v, want ErrSettingsNotConfigured", err)
		}
		if _, err := LoadSMTPSettings(ctx, fakeStore{}); err != ErrSettingsNotConfigured {
			t.Errorf("error = %v, want ErrSettingsNotConfigured", err)
		}
	})
}
