package emailsvc

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/frankspastic/psia-gradebook/core"
)

type smtpTransport struct {
	helloHost string
}

var _ core.EmailTransport = (*smtpTransport)(nil)

// NewSMTPTransport returns the production transport: plain dial on the
// configured port, STARTTLS when the server offers it (always the case on
// 587), implicit TLS on 465, then PLAIN auth.
func NewSMTPTransport() core.EmailTransport {
	return &smtpTransport{helloHost: "localhost"}
}

func (t *smtpTransport) Open(settings core.SMTPSettings) (core.EmailSession, error) {
	client, err := t.dial(settings)
	if err != nil {
		return nil, err
	}

	auth := smtp.PlainAuth("", settings.Email, settings.Password, settings.Host)
	if err = client.Auth(auth); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "authenticating")
	}
	return &smtpSession{client: client, host: settings.Host}, nil
}

func (t *smtpTransport) dial(settings core.SMTPSettings) (*smtp.Client, error) {
	tlsConfig := &tls.Config{
		ServerName: settings.Host,
		MinVersion: tls.VersionTLS12,
	}

	// implicit TLS
	if settings.Port == 465 {
		conn, err := tls.Dial("tcp", settings.Addr(), tlsConfig)
		if err != nil {
			return nil, errors.Wrap(err, "connecting to SMTP server")
		}
		client, err := smtp.NewClient(conn, settings.Host)
		if err != nil {
			_ = conn.Close()
			return nil, errors.Wrap(err, "connecting to SMTP server")
		}
		return client, nil
	}

	client, err := smtp.Dial(settings.Addr())
	if err != nil {
		return nil, errors.Wrap(err, "connecting to SMTP server")
	}
	if err = client.Hello(t.helloHost); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "greeting SMTP server")
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err = client.StartTLS(tlsConfig); err != nil {
			_ = client.Close()
			return nil, errors.Wrap(err, "starting TLS")
		}
	}
	return client, nil
}

type smtpSession struct {
	client *smtp.Client
	host   string
}

func (s *smtpSession) Send(msg *core.EmailMessage) error {
	if !msg.HasRecipients() {
		return nil
	}

	if err := s.client.Mail(msg.From.Address); err != nil {
		return err
	}
	for _, to := range msg.To {
		if err := s.client.Rcpt(to.Address); err != nil {
			return err
		}
	}

	w, err := s.client.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(buildMessage(msg, s.host)); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (s *smtpSession) Close() error {
	return s.client.Quit()
}

// buildMessage serializes the headers and HTML body into wire format.
func buildMessage(msg *core.EmailMessage, host string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From.String())
	fmt.Fprintf(&b, "To: %s\r\n", msg.ToHeader())
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: <%s@%s>\r\n", uuid.NewString(), host)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTMLContent)
	b.WriteString("\r\n")
	return []byte(b.String())
}
