package mailer

import (
	"fmt"
	"strings"
	"time"

	"github.com/frankspastic/psia-gradebook/core/gradebook"
)

// Merge tokens recognized in subjects and bodies. Unknown bracket sequences
// pass through untouched.
const (
	tokenFirstName = "{{student_first_name}}"
	tokenLastName  = "{{student_last_name}}"
	tokenFullName  = "{{student_full_name}}"
	tokenDriveURL  = "{{google_drive_url}}"
	tokenTable     = "{{grade_table}}"

	driveURLMissing = "Not available"
)

// MergeFields substitutes every merge token in text with the student's data
// and the caller-supplied grade-table fragment. Substitution is global and
// order-independent.
func MergeFields(text string, st gradebook.Student, gradeTable string) string {
	driveURL := driveURLMissing
	if st.GoogleDriveURL != "" {
		driveURL = fmt.Sprintf(
			`<a href="%s" style="color: #2563eb; text-decoration: underline;">%s</a>`,
			st.GoogleDriveURL, st.GoogleDriveURL,
		)
	}

	r := strings.NewReplacer(
		tokenFirstName, st.FirstName,
		tokenLastName, st.LastName,
		tokenFullName, st.FirstName+" "+st.LastName,
		tokenDriveURL, driveURL,
		tokenTable, gradeTable,
	)
	return r.Replace(text)
}

// GradeTable renders the tabular grade fragment for one recipient: one row
// per assignment with a matching grade, in the given assignment order
// (callers pass assignments date-descending). Assignments without a grade
// are omitted. Empty input on either side yields "".
func GradeTable(grades []gradebook.Grade, assignments []gradebook.Assignment) string {
	if len(grades) == 0 || len(assignments) == 0 {
		return ""
	}

	byAssignment := make(map[int]gradebook.Grade, len(grades))
	for _, g := range grades {
		byAssignment[g.AssignmentID] = g
	}

	var b strings.Builder
	b.WriteString(`<table style="border-collapse: collapse; width: 100%; margin: 20px 0;">`)
	b.WriteString(`<thead><tr style="background-color: #f3f4f6;">`)
	b.WriteString(`<th style="border: 1px solid #d1d5db; padding: 12px; text-align: left;">Assignment</th>`)
	b.WriteString(`<th style="border: 1px solid #d1d5db; padding: 12px; text-align: left;">Date</th>`)
	b.WriteString(`<th style="border: 1px solid #d1d5db; padding: 12px; text-align: left;">Grade</th>`)
	b.WriteString(`</tr></thead><tbody>`)

	for _, a := range assignments {
		g, ok := byAssignment[a.ID]
		if !ok {
			continue
		}
		b.WriteString(`<tr>`)
		fmt.Fprintf(&b, `<td style="border: 1px solid #d1d5db; padding: 12px;">%s</td>`, a.Label)
		fmt.Fprintf(&b, `<td style="border: 1px solid #d1d5db; padding: 12px;">%s</td>`, formatDate(a.Date))
		fmt.Fprintf(&b, `<td style="border: 1px solid #d1d5db; padding: 12px;"><strong>%s</strong></td>`, g.Grade)
		b.WriteString(`</tr>`)
	}

	b.WriteString(`</tbody></table>`)
	return b.String()
}

// formatDate renders a stored assignment date for display; unparseable
// values come through verbatim.
func formatDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("Jan 2, 2006")
}
