package core

import "testing"

func TestCalDateValidation(t *testing.T) {
	type payload struct {
		Date string `json:"date" validate:"caldate"`
	}

	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{name: "valid date", date: "2026-01-12"},
		{name: "leap day", date: "2024-02-29"},
		{name: "impossible month", date: "2026-13-45", wantErr: true},
		{name: "impossible day", date: "2026-02-30", wantErr: true},
		{name: "non-leap feb 29", date: "2026-02-29", wantErr: true},
		{name: "not zero-padded", date: "2026-1-2", wantErr: true},
		{name: "wrong format", date: "12/01/2026", wantErr: true},
		{name: "not a date", date: "soon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate.Struct(&payload{Date: tt.date})
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate.Struct(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
		})
	}
}
