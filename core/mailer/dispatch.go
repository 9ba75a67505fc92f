package mailer

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/frankspastic/psia-gradebook/core"
	"github.com/frankspastic/psia-gradebook/core/gradebook"
)

type (
	// Dispatcher sends one personalized email per recipient over a single
	// authenticated SMTP session per batch.
	Dispatcher struct {
		settings  SettingsStore
		transport core.EmailTransport
		logger    core.Logger
	}

	// Result is the aggregate outcome of one dispatch. SentCount is the
	// number of messages submitted before any failure, so a failed batch
	// still reports the partial progress alongside Err.
	Result struct {
		Success   bool `json:"success"`
		SentCount int  `json:"sentCount"`
		Err       error
	}
)

func NewDispatcher(settings SettingsStore, transport core.EmailTransport, logger core.Logger) *Dispatcher {
	return &Dispatcher{
		settings:  settings,
		transport: transport,
		logger:    logger,
	}
}

// Dispatch sends the merged template to every recipient in list order.
// Recipients without contacts are skipped: no error, not counted. A
// transport failure aborts the remaining batch; no retries.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	recipients []gradebook.EmailRecipient,
	tmpl gradebook.EmailTemplate,
	assignments []gradebook.Assignment,
	allGrades []gradebook.Grade,
) Result {
	settings, err := LoadSMTPSettings(ctx, d.settings)
	if err != nil {
		return Result{Err: err}
	}

	session, err := d.transport.Open(settings)
	if err != nil {
		return Result{Err: errors.Wrap(err, "opening SMTP session")}
	}
	defer func() { _ = session.Close() }()

	relevant := filterAssignments(assignments, tmpl.SelectedAssignments)
	from := settings.From()

	var sent int
	for _, rcpt := range recipients {
		if len(rcpt.Contacts) == 0 {
			d.logger.Debug(fmt.Sprintf("skipping %s %s: no email contacts", rcpt.Student.FirstName, rcpt.Student.LastName))
			continue
		}

		grades := gradesForStudent(allGrades, rcpt.Student.ID)

		var gradeTable string
		if tmpl.IncludeGrades {
			gradeTable = GradeTable(grades, relevant)
		}

		msg := &core.EmailMessage{
			From:        from,
			To:          contactAddresses(rcpt.Contacts),
			Subject:     MergeFields(tmpl.Subject, rcpt.Student, ""),
			HTMLContent: MergeFields(tmpl.Message, rcpt.Student, gradeTable),
		}

		if err := session.Send(msg); err != nil {
			return Result{SentCount: sent, Err: errors.Wrap(err, "sending email")}
		}
		sent++
		d.logger.Debug(fmt.Sprintf("sent grade report for %s %s to %d contact(s)",
			rcpt.Student.FirstName, rcpt.Student.LastName, len(rcpt.Contacts)))
	}

	return Result{Success: true, SentCount: sent}
}

// TestConnection opens and immediately closes an authenticated session
// without sending mail.
func (d *Dispatcher) TestConnection(_ context.Context, settings core.SMTPSettings) error {
	if !settings.IsConfigured() {
		return ErrSettingsNotConfigured
	}
	session, err := d.transport.Open(settings)
	if err != nil {
		return err
	}
	return session.Close()
}

// Error returns the failure message for serialization, or "".
func (r Result) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

func gradesForStudent(grades []gradebook.Grade, studentID int) []gradebook.Grade {
	res := make([]gradebook.Grade, 0, len(grades))
	for _, g := range grades {
		if g.StudentID == studentID {
			res = append(res, g)
		}
	}
	return res
}

// filterAssignments keeps the given order; an empty allow-list keeps the
// full class assignment list.
func filterAssignments(assignments []gradebook.Assignment, selected []int) []gradebook.Assignment {
	if len(selected) == 0 {
		return assignments
	}
	allowed := make(map[int]struct{}, len(selected))
	for _, id := range selected {
		allowed[id] = struct{}{}
	}
	res := make([]gradebook.Assignment, 0, len(selected))
	for _, a := range assignments {
		if _, ok := allowed[a.ID]; ok {
			res = append(res, a)
		}
	}
	return res
}

func contactAddresses(contacts []gradebook.EmailContact) []mail.Address {
	addrs := make([]mail.Address, 0, len(contacts))
	for _, c := range contacts {
		addrs = append(addrs, mail.Address{Name: c.ContactName, Address: c.Email})
	}
	return addrs
}
