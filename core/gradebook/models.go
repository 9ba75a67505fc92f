package gradebook

import "time"

type (
	// Class is a teacher's course/section grouping students and assignments.
	Class struct {
		ID          int       `db:"id" json:"id"`
		Name        string    `db:"name" json:"name"`
		Description string    `db:"description" json:"description"`
		CreatedAt   time.Time `db:"created_at" json:"created_at"`
	}

	Student struct {
		ID             int    `db:"id" json:"id"`
		ClassID        int    `db:"class_id" json:"class_id"`
		FirstName      string `db:"first_name" json:"first_name"`
		LastName       string `db:"last_name" json:"last_name"`
		GoogleDriveURL string `db:"google_drive_url" json:"google_drive_url"`
	}

	// EmailContact is a parent/guardian address attached to a student.
	EmailContact struct {
		ID           int    `db:"id" json:"id"`
		StudentID    int    `db:"student_id" json:"student_id"`
		Email        string `db:"email" json:"email"`
		ContactName  string `db:"contact_name" json:"contact_name"`
		Relationship string `db:"relationship" json:"relationship"`
	}

	Assignment struct {
		ID      int    `db:"id" json:"id"`
		ClassID int    `db:"class_id" json:"class_id"`
		Label   string `db:"label" json:"label"`
		// Date is a calendar date (YYYY-MM-DD); lexicographic order is
		// chronological order.
		Date        string `db:"date" json:"date"`
		Description string `db:"description" json:"description"`
	}

	// Grade is one cell of the grade matrix. At most one Grade exists per
	// (student, assignment) pair.
	Grade struct {
		ID           int    `db:"id" json:"id"`
		StudentID    int    `db:"student_id" json:"student_id"`
		AssignmentID int    `db:"assignment_id" json:"assignment_id"`
		Grade        string `db:"grade" json:"grade"`
		Notes        string `db:"notes" json:"notes"`
	}

	Setting struct {
		ID    int    `db:"id" json:"id"`
		Key   string `db:"key" json:"key"`
		Value string `db:"value" json:"value"`
	}
)

// Creation / partial-update payloads. Update fields are pointers: only
// supplied fields change.

type (
	NewClass struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
	}

	UpdateClass struct {
		Name        *string `json:"name" validate:"omitempty,min=1"`
		Description *string `json:"description"`
	}

	NewStudent struct {
		ClassID        int    `json:"class_id" validate:"required"`
		FirstName      string `json:"first_name" validate:"required"`
		LastName       string `json:"last_name" validate:"required"`
		GoogleDriveURL string `json:"google_drive_url" validate:"omitempty,url"`
	}

	UpdateStudent struct {
		ClassID        *int    `json:"class_id"`
		FirstName      *string `json:"first_name" validate:"omitempty,min=1"`
		LastName       *string `json:"last_name" validate:"omitempty,min=1"`
		GoogleDriveURL *string `json:"google_drive_url" validate:"omitempty,url"`
	}

	NewEmailContact struct {
		StudentID    int    `json:"student_id" validate:"required"`
		Email        string `json:"email" validate:"required,email"`
		ContactName  string `json:"contact_name" validate:"required"`
		Relationship string `json:"relationship"`
	}

	UpdateEmailContact struct {
		Email        *string `json:"email" validate:"omitempty,email"`
		ContactName  *string `json:"contact_name" validate:"omitempty,min=1"`
		Relationship *string `json:"relationship"`
	}

	NewAssignment struct {
		ClassID     int    `json:"class_id" validate:"required"`
		Label       string `json:"label" validate:"required"`
		Date        string `json:"date" validate:"required,caldate"`
		Description string `json:"description"`
	}

	UpdateAssignment struct {
		ClassID     *int    `json:"class_id"`
		Label       *string `json:"label" validate:"omitempty,min=1"`
		Date        *string `json:"date" validate:"omitempty,caldate"`
		Description *string `json:"description"`
	}

	NewGrade struct {
		StudentID    int    `json:"student_id" validate:"required"`
		AssignmentID int    `json:"assignment_id" validate:"required"`
		Grade        string `json:"grade" validate:"required"`
		Notes        string `json:"notes"`
	}

	UpdateGrade struct {
		Grade *string `json:"grade" validate:"omitempty,min=1"`
		Notes *string `json:"notes"`
	}
)

// Email dispatch types.

type (
	// EmailRecipient is a student paired with their resolved contact list
	// for one dispatch operation. One message goes out per student; all
	// contacts share it.
	EmailRecipient struct {
		Student  Student        `json:"student"`
		Contacts []EmailContact `json:"contacts"`
	}

	EmailTemplate struct {
		Subject       string `json:"subject"`
		Message       string `json:"message"`
		IncludeGrades bool   `json:"includeGrades"`
		// SelectedAssignments restricts the grade table to the listed
		// assignment ids when non-empty.
		SelectedAssignments []int `json:"selectedAssignments,omitempty"`
	}
)
