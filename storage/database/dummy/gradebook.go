package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/frankspastic/psia-gradebook/core/gradebook"
)

type gradebookRepository struct {
	db *gradebookTables
}

var _ gradebook.Repository = (*gradebookRepository)(nil) // interface compliance check

func NewGradebookRepository(db *DB) gradebook.Repository {
	return &gradebookRepository{db: db.gradebook}
}

// Classes

func (repo *gradebookRepository) QueryAllClasses(_ context.Context) ([]gradebook.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	classes := make([]gradebook.Class, 0, len(repo.db.classes))
	for _, cls := range repo.db.classes {
		classes = append(classes, *cls)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].CreatedAt.After(classes[j].CreatedAt) })
	return classes, nil
}

func (repo *gradebookRepository) GetClassByID(_ context.Context, id int) (gradebook.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cls, ok := repo.db.classes[id]; ok {
		return *cls, nil
	}
	return gradebook.Class{}, gradebook.ErrClassNotFound
}

func (repo *gradebookRepository) CreateClass(_ context.Context, cls gradebook.Class) (gradebook.Class, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	cls.ID = repo.db.nextPK()
	cls.CreatedAt = time.Now().UTC()
	repo.db.classes[cls.ID] = &cls
	return cls, nil
}

func (repo *gradebookRepository) UpdateClass(_ context.Context, id int, uc gradebook.UpdateClass) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	cls, ok := repo.db.classes[id]
	if !ok {
		return gradebook.ErrClassNotFound
	}
	if uc.Name != nil {
		cls.Name = *uc.Name
	}
	if uc.Description != nil {
		cls.Description = *uc.Description
	}
	return nil
}

func (repo *gradebookRepository) DeleteClass(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.classes[id]; !ok {
		return gradebook.ErrClassNotFound
	}
	delete(repo.db.classes, id)
	// cascade: students (with their contacts and grades), then assignments
	for sid, st := range repo.db.students {
		if st.ClassID == id {
			repo.deleteStudentLocked(sid)
		}
	}
	for aid, a := range repo.db.assignments {
		if a.ClassID == id {
			repo.deleteAssignmentLocked(aid)
		}
	}
	return nil
}

// Students

func (repo *gradebookRepository) QueryStudentsByClass(_ context.Context, classID int) ([]gradebook.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]gradebook.Student, 0)
	for _, st := range repo.db.students {
		if st.ClassID == classID {
			students = append(students, *st)
		}
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].LastName != students[j].LastName {
			return students[i].LastName < students[j].LastName
		}
		return students[i].FirstName < students[j].FirstName
	})
	return students, nil
}

func (repo *gradebookRepository) GetStudentByID(_ context.Context, id int) (gradebook.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if st, ok := repo.db.students[id]; ok {
		return *st, nil
	}
	return gradebook.Student{}, gradebook.ErrStudentNotFound
}

func (repo *gradebookRepository) CreateStudent(_ context.Context, st gradebook.Student) (gradebook.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.classes[st.ClassID]; !ok {
		return gradebook.Student{}, gradebook.ErrClassNotFound
	}
	st.ID = repo.db.nextPK()
	repo.db.students[st.ID] = &st
	return st, nil
}

func (repo *gradebookRepository) UpdateStudent(_ context.Context, id int, us gradebook.UpdateStudent) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	st, ok := repo.db.students[id]
	if !ok {
		return gradebook.ErrStudentNotFound
	}
	if us.ClassID != nil {
		if _, ok := repo.db.classes[*us.ClassID]; !ok {
			return gradebook.ErrClassNotFound
		}
		st.ClassID = *us.ClassID
	}
	if us.FirstName != nil {
		st.FirstName = *us.FirstName
	}
	if us.LastName != nil {
		st.LastName = *us.LastName
	}
	if us.GoogleDriveURL != nil {
		st.GoogleDriveURL = *us.GoogleDriveURL
	}
	return nil
}

func (repo *gradebookRepository) DeleteStudent(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.students[id]; !ok {
		return gradebook.ErrStudentNotFound
	}
	repo.deleteStudentLocked(id)
	return nil
}

func (repo *gradebookRepository) deleteStudentLocked(id int) {
	delete(repo.db.students, id)
	for cid, c := range repo.db.contacts {
		if c.StudentID == id {
			delete(repo.db.contacts, cid)
		}
	}
	for gid, g := range repo.db.grades {
		if g.StudentID == id {
			delete(repo.db.grades, gid)
		}
	}
}

// Email contacts

func (repo *gradebookRepository) QueryContactsByStudent(_ context.Context, studentID int) ([]gradebook.EmailContact, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	contacts := make([]gradebook.EmailContact, 0)
	for _, c := range repo.db.contacts {
		if c.StudentID == studentID {
			contacts = append(contacts, *c)
		}
	}
	sort.Slice(contacts, func(i, j int) bool { return contacts[i].ID < contacts[j].ID })
	return contacts, nil
}

func (repo *gradebookRepository) CreateContact(_ context.Context, ec gradebook.EmailContact) (gradebook.EmailContact, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.students[ec.StudentID]; !ok {
		return gradebook.EmailContact{}, gradebook.ErrStudentNotFound
	}
	ec.ID = repo.db.nextPK()
	repo.db.contacts[ec.ID] = &ec
	return ec, nil
}

func (repo *gradebookRepository) UpdateContact(_ context.Context, id int, uc gradebook.UpdateEmailContact) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	c, ok := repo.db.contacts[id]
	if !ok {
		return gradebook.ErrContactNotFound
	}
	if uc.Email != nil {
		c.Email = *uc.Email
	}
	if uc.ContactName != nil {
		c.ContactName = *uc.ContactName
	}
	if uc.Relationship != nil {
		c.Relationship = *uc.Relationship
	}
	return nil
}

func (repo *gradebookRepository) DeleteContact(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.contacts[id]; !ok {
		return gradebook.ErrContactNotFound
	}
	delete(repo.db.contacts, id)
	return nil
}

// Assignments

func (repo *gradebookRepository) QueryAssignmentsByClass(_ context.Context, classID int) ([]gradebook.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	assignments := make([]gradebook.Assignment, 0)
	for _, a := range repo.db.assignments {
		if a.ClassID == classID {
			assignments = append(assignments, *a)
		}
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].Date > assignments[j].Date })
	return assignments, nil
}

func (repo *gradebookRepository) GetAssignmentByID(_ context.Context, id int) (gradebook.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if a, ok := repo.db.assignments[id]; ok {
		return *a, nil
	}
	return gradebook.Assignment{}, gradebook.ErrAssignmentNotFound
}

func (repo *gradebookRepository) CreateAssignment(_ context.Context, a gradebook.Assignment) (gradebook.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.classes[a.ClassID]; !ok {
		return gradebook.Assignment{}, gradebook.ErrClassNotFound
	}
	a.ID = repo.db.nextPK()
	repo.db.assignments[a.ID] = &a
	return a, nil
}

func (repo *gradebookRepository) UpdateAssignment(_ context.Context, id int, ua gradebook.UpdateAssignment) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	a, ok := repo.db.assignments[id]
	if !ok {
		return gradebook.ErrAssignmentNotFound
	}
	if ua.ClassID != nil {
		if _, ok := repo.db.classes[*ua.ClassID]; !ok {
			return gradebook.ErrClassNotFound
		}
		a.ClassID = *ua.ClassID
	}
	if ua.Label != nil {
		a.Label = *ua.Label
	}
	if ua.Date != nil {
		a.Date = *ua.Date
	}
	if ua.Description != nil {
		a.Description = *ua.Description
	}
	return nil
}

func (repo *gradebookRepository) DeleteAssignment(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.assignments[id]; !ok {
		return gradebook.ErrAssignmentNotFound
	}
	repo.deleteAssignmentLocked(id)
	return nil
}

func (repo *gradebookRepository) deleteAssignmentLocked(id int) {
	delete(repo.db.assignments, id)
	for gid, g := range repo.db.grades {
		if g.AssignmentID == id {
			delete(repo.db.grades, gid)
		}
	}
}

// Grades

func (repo *gradebookRepository) QueryGradesByStudent(_ context.Context, studentID int) ([]gradebook.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	grades := make([]gradebook.Grade, 0)
	for _, g := range repo.db.grades {
		if g.StudentID == studentID {
			grades = append(grades, *g)
		}
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i].ID < grades[j].ID })
	return grades, nil
}

func (repo *gradebookRepository) QueryGradesByAssignment(_ context.Context, assignmentID int) ([]gradebook.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	grades := make([]gradebook.Grade, 0)
	for _, g := range repo.db.grades {
		if g.AssignmentID == assignmentID {
			grades = append(grades, *g)
		}
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i].ID < grades[j].ID })
	return grades, nil
}

func (repo *gradebookRepository) GetGrade(_ context.Context, studentID, assignmentID int) (gradebook.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, g := range repo.db.grades {
		if g.StudentID == studentID && g.AssignmentID == assignmentID {
			return *g, nil
		}
	}
	return gradebook.Grade{}, gradebook.ErrGradeNotFound
}

func (repo *gradebookRepository) CreateGrade(_ context.Context, g gradebook.Grade) (gradebook.Grade, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.students[g.StudentID]; !ok {
		return gradebook.Grade{}, gradebook.ErrStudentNotFound
	}
	if _, ok := repo.db.assignments[g.AssignmentID]; !ok {
		return gradebook.Grade{}, gradebook.ErrAssignmentNotFound
	}
	for _, existing := range repo.db.grades {
		if existing.StudentID == g.StudentID && existing.AssignmentID == g.AssignmentID {
			return gradebook.Grade{}, gradebook.ErrGradeExists
		}
	}
	g.ID = repo.db.nextPK()
	repo.db.grades[g.ID] = &g
	return g, nil
}

func (repo *gradebookRepository) UpdateGrade(_ context.Context, id int, ug gradebook.UpdateGrade) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	g, ok := repo.db.grades[id]
	if !ok {
		return gradebook.ErrGradeNotFound
	}
	if ug.Grade != nil {
		g.Grade = *ug.Grade
	}
	if ug.Notes != nil {
		g.Notes = *ug.Notes
	}
	return nil
}

func (repo *gradebookRepository) DeleteGrade(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.grades[id]; !ok {
		return gradebook.ErrGradeNotFound
	}
	delete(repo.db.grades, id)
	return nil
}

// Settings

func (repo *gradebookRepository) GetSetting(_ context.Context, key string) (gradebook.Setting, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.settings[key]; ok {
		return *s, nil
	}
	return gradebook.Setting{}, gradebook.ErrSettingNotFound
}

func (repo *gradebookRepository) SetSetting(_ context.Context, key, value string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if s, ok := repo.db.settings[key]; ok {
		s.Value = value
		return nil
	}
	repo.db.settings[key] = &gradebook.Setting{ID: repo.db.nextPK(), Key: key, Value: value}
	return nil
}
