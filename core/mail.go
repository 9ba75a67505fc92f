package core

import (
	"net/mail"
	"strconv"
	"strings"
)

type (
	// SMTPSettings is the explicit SMTP configuration handed to an
	// EmailTransport. It is loaded from the settings store per operation,
	// never read ambiently.
	SMTPSettings struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FromName string `json:"fromName"`
		Host     string `json:"host"`
		Port     int    `json:"port"`
	}

	EmailMessage struct {
		From    mail.Address
		To      []mail.Address
		Subject string

		// HTMLContent is the fully merged text/html body.
		HTMLContent string
	}

	// EmailSession is one authenticated connection to a mail server.
	// A single session carries all messages of a batch.
	EmailSession interface {
		Send(msg *EmailMessage) error
		Close() error
	}

	// EmailTransport dials and authenticates mail sessions.
	EmailTransport interface {
		Open(settings SMTPSettings) (EmailSession, error)
	}
)

// IsConfigured reports whether the settings are complete enough to attempt a
// connection. Only email and password are mandatory; the rest have defaults.
func (s SMTPSettings) IsConfigured() bool {
	return s.Email != "" && s.Password != ""
}

func (s SMTPSettings) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// From is the sender address, display name included.
func (s SMTPSettings) From() mail.Address {
	return mail.Address{Name: s.FromName, Address: s.Email}
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }

// ToHeader joins all recipient addresses for the To: header.
func (m *EmailMessage) ToHeader() string {
	toJoin := make([]string, 0, len(m.To))
	for _, a := range m.To {
		toJoin = append(toJoin, a.String())
	}
	return strings.Join(toJoin, ", ")
}
