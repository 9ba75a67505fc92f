package emailsvc

import (
	"log"
	"sync"

	"github.com/frankspastic/psia-gradebook/core"
)

// ConsoleTransport prints messages instead of dialing anything. Used in
// debug mode so grade reports never leave the machine by accident.
type ConsoleTransport struct {
	disableOutput bool

	mu   sync.Mutex
	sent []core.EmailMessage
}

var _ core.EmailTransport = (*ConsoleTransport)(nil)

func NewConsoleTransport() core.EmailTransport {
	return &ConsoleTransport{}
}

// NewConsoleTransportMock is the test variant: silent, and it records every
// sent message for inspection via SentMessages.
func NewConsoleTransportMock() *ConsoleTransport {
	return &ConsoleTransport{disableOutput: true}
}

func (t *ConsoleTransport) Open(settings core.SMTPSettings) (core.EmailSession, error) {
	if !settings.IsConfigured() {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "email", Error: "missing SMTP credentials"})
	}
	return &consoleSession{transport: t}, nil
}

func (t *ConsoleTransport) SentMessages() []core.EmailMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	res := make([]core.EmailMessage, len(t.sent))
	copy(res, t.sent)
	return res
}

type consoleSession struct {
	transport *ConsoleTransport
}

func (s *consoleSession) Send(msg *core.EmailMessage) error {
	if !msg.HasRecipients() {
		return nil
	}
	s.transport.mu.Lock()
	s.transport.sent = append(s.transport.sent, *msg)
	s.transport.mu.Unlock()

	if !s.transport.disableOutput {
		log.Printf("From: %s\nTo: %s\nSubject: %s\n\n%s\n",
			msg.From.String(), msg.ToHeader(), msg.Subject, msg.HTMLContent)
	}
	return nil
}

func (s *consoleSession) Close() error { return nil }
