package gradebook

import (
	"context"
	"errors"

	"github.com/frankspastic/psia-gradebook/core"
)

var (
	// errors
	ErrClassNotFound      = errors.New("class not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrContactNotFound    = errors.New("email contact not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrGradeNotFound      = errors.New("grade not found")
	ErrSettingNotFound    = errors.New("setting not found")
	ErrGradeExists        = errors.New("a grade already exists for this student and assignment")
)

type (
	Repository interface {
		QueryAllClasses(ctx context.Context) ([]Class, error)
		GetClassByID(ctx context.Context, id int) (Class, error)
		CreateClass(ctx context.Context, cls Class) (Class, error)
		// UpdateClass applies the non-nil fields of uc.
		UpdateClass(ctx context.Context, id int, uc UpdateClass) error
		DeleteClass(ctx context.Context, id int) error

		// QueryStudentsByClass orders by last name then first name.
		QueryStudentsByClass(ctx context.Context, classID int) ([]Student, error)
		GetStudentByID(ctx context.Context, id int) (Student, error)
		CreateStudent(ctx context.Context, st Student) (Student, error)
		UpdateStudent(ctx context.Context, id int, us UpdateStudent) error
		DeleteStudent(ctx context.Context, id int) error

		QueryContactsByStudent(ctx context.Context, studentID int) ([]EmailContact, error)
		CreateContact(ctx context.Context, ec EmailContact) (EmailContact, error)
		UpdateContact(ctx context.Context, id int, uc UpdateEmailContact) error
		DeleteContact(ctx context.Context, id int) error

		// QueryAssignmentsByClass orders by date descending, the listing
		// convention shared with the grade grid and the email composer.
		QueryAssignmentsByClass(ctx context.Context, classID int) ([]Assignment, error)
		GetAssignmentByID(ctx context.Context, id int) (Assignment, error)
		CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		UpdateAssignment(ctx context.Context, id int, ua UpdateAssignment) error
		DeleteAssignment(ctx context.Context, id int) error

		QueryGradesByStudent(ctx context.Context, studentID int) ([]Grade, error)
		QueryGradesByAssignment(ctx context.Context, assignmentID int) ([]Grade, error)
		// GetGrade returns ErrGradeNotFound when the cell is empty.
		GetGrade(ctx context.Context, studentID, assignmentID int) (Grade, error)
		CreateGrade(ctx context.Context, g Grade) (Grade, error)
		UpdateGrade(ctx context.Context, id int, ug UpdateGrade) error
		DeleteGrade(ctx context.Context, id int) error

		GetSetting(ctx context.Context, key string) (Setting, error)
		// SetSetting upserts.
		SetSetting(ctx context.Context, key, value string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Classes

func (svc *Service) QueryClasses(ctx context.Context) ([]Class, error) {
	return svc.repo.QueryAllClasses(ctx)
}

func (svc *Service) GetClass(ctx context.Context, id int) (Class, error) {
	return svc.repo.GetClassByID(ctx, id)
}

func (svc *Service) CreateClass(ctx context.Context, nc NewClass) (Class, error) {
	cls := Class{
		Name:        core.CleanString(nc.Name),
		Description: core.CleanString(nc.Description),
	}
	return svc.repo.CreateClass(ctx, cls)
}

func (svc *Service) UpdateClass(ctx context.Context, id int, uc UpdateClass) error {
	return svc.repo.UpdateClass(ctx, id, uc)
}

func (svc *Service) DeleteClass(ctx context.Context, id int) error {
	return svc.repo.DeleteClass(ctx, id)
}

// Students

func (svc *Service) QueryStudents(ctx context.Context, classID int) ([]Student, error) {
	return svc.repo.QueryStudentsByClass(ctx, classID)
}

func (svc *Service) GetStudent(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) CreateStudent(ctx context.Context, ns NewStudent) (Student, error) {
	if _, err := svc.repo.GetClassByID(ctx, ns.ClassID); err != nil {
		return Student{}, err
	}
	st := Student{
		ClassID:        ns.ClassID,
		FirstName:      core.CleanString(ns.FirstName),
		LastName:       core.CleanString(ns.LastName),
		GoogleDriveURL: core.CleanString(ns.GoogleDriveURL),
	}
	return svc.repo.CreateStudent(ctx, st)
}

func (svc *Service) UpdateStudent(ctx context.Context, id int, us UpdateStudent) error {
	if us.ClassID != nil {
		if _, err := svc.repo.GetClassByID(ctx, *us.ClassID); err != nil {
			return err
		}
	}
	return svc.repo.UpdateStudent(ctx, id, us)
}

func (svc *Service) DeleteStudent(ctx context.Context, id int) error {
	return svc.repo.DeleteStudent(ctx, id)
}

// Email contacts

func (svc *Service) QueryContacts(ctx context.Context, studentID int) ([]EmailContact, error) {
	return svc.repo.QueryContactsByStudent(ctx, studentID)
}

func (svc *Service) CreateContact(ctx context.Context, nc NewEmailContact) (EmailContact, error) {
	if _, err := svc.repo.GetStudentByID(ctx, nc.StudentID); err != nil {
		return EmailContact{}, err
	}
	ec := EmailContact{
		StudentID:    nc.StudentID,
		Email:        core.CleanString(nc.Email, true /* lower */),
		ContactName:  core.CleanString(nc.ContactName),
		Relationship: core.CleanString(nc.Relationship),
	}
	return svc.repo.CreateContact(ctx, ec)
}

func (svc *Service) UpdateContact(ctx context.Context, id int, uc UpdateEmailContact) error {
	if uc.Email != nil {
		email := core.CleanString(*uc.Email, true)
		uc.Email = &email
	}
	return svc.repo.UpdateContact(ctx, id, uc)
}

func (svc *Service) DeleteContact(ctx context.Context, id int) error {
	return svc.repo.DeleteContact(ctx, id)
}

// Assignments

func (svc *Service) QueryAssignments(ctx context.Context, classID int) ([]Assignment, error) {
	return svc.repo.QueryAssignmentsByClass(ctx, classID)
}

func (svc *Service) GetAssignment(ctx context.Context, id int) (Assignment, error) {
	return svc.repo.GetAssignmentByID(ctx, id)
}

func (svc *Service) CreateAssignment(ctx context.Context, na NewAssignment) (Assignment, error) {
	if _, err := svc.repo.GetClassByID(ctx, na.ClassID); err != nil {
		return Assignment{}, err
	}
	a := Assignment{
		ClassID:     na.ClassID,
		Label:       core.CleanString(na.Label),
		Date:        core.CleanString(na.Date),
		Description: core.CleanString(na.Description),
	}
	return svc.repo.CreateAssignment(ctx, a)
}

func (svc *Service) UpdateAssignment(ctx context.Context, id int, ua UpdateAssignment) error {
	if ua.ClassID != nil {
		if _, err := svc.repo.GetClassByID(ctx, *ua.ClassID); err != nil {
			return err
		}
	}
	return svc.repo.UpdateAssignment(ctx, id, ua)
}

func (svc *Service) DeleteAssignment(ctx context.Context, id int) error {
	return svc.repo.DeleteAssignment(ctx, id)
}

// Grades

func (svc *Service) QueryGradesByStudent(ctx context.Context, studentID int) ([]Grade, error) {
	return svc.repo.QueryGradesByStudent(ctx, studentID)
}

func (svc *Service) QueryGradesByAssignment(ctx context.Context, assignmentID int) ([]Grade, error) {
	return svc.repo.QueryGradesByAssignment(ctx, assignmentID)
}

func (svc *Service) GetGrade(ctx context.Context, studentID, assignmentID int) (Grade, error) {
	return svc.repo.GetGrade(ctx, studentID, assignmentID)
}

func (svc *Service) CreateGrade(ctx context.Context, ng NewGrade) (Grade, error) {
	if _, err := svc.repo.GetStudentByID(ctx, ng.StudentID); err != nil {
		return Grade{}, err
	}
	if _, err := svc.repo.GetAssignmentByID(ctx, ng.AssignmentID); err != nil {
		return Grade{}, err
	}
	g := Grade{
		StudentID:    ng.StudentID,
		AssignmentID: ng.AssignmentID,
		Grade:        core.CleanString(ng.Grade),
		Notes:        core.CleanString(ng.Notes),
	}
	return svc.repo.CreateGrade(ctx, g)
}

func (svc *Service) UpdateGrade(ctx context.Context, id int, ug UpdateGrade) error {
	if ug.Grade != nil {
		grade := core.CleanString(*ug.Grade)
		ug.Grade = &grade
	}
	return svc.repo.UpdateGrade(ctx, id, ug)
}

func (svc *Service) DeleteGrade(ctx context.Context, id int) error {
	return svc.repo.DeleteGrade(ctx, id)
}

// Settings

func (svc *Service) GetSetting(ctx context.Context, key string) (Setting, error) {
	return svc.repo.GetSetting(ctx, key)
}

func (svc *Service) SetSetting(ctx context.Context, key, value string) error {
	return svc.repo.SetSetting(ctx, core.CleanString(key), value)
}
