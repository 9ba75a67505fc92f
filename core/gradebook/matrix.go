package gradebook

import (
	"context"

	"github.com/frankspastic/psia-gradebook/core"
)

// GradeKey identifies one cell of the grade matrix.
type GradeKey struct {
	StudentID    int
	AssignmentID int
}

// Matrix is the sparse in-memory student×assignment grade mapping for one
// loaded class. Absent entries mean "no grade yet". It is a cache over the
// store, never authoritative: reload after any external mutation.
type Matrix map[GradeKey]Grade

// Lookup returns the grade text for a cell, or "" when the cell is empty.
// It never fails.
func (m Matrix) Lookup(studentID, assignmentID int) string {
	if g, ok := m[GradeKey{studentID, assignmentID}]; ok {
		return g.Grade
	}
	return ""
}

// LoadMatrix assembles the full grade matrix for a class: all students are
// fetched, then each student's grades.
func (svc *Service) LoadMatrix(ctx context.Context, classID int) (Matrix, error) {
	students, err := svc.repo.QueryStudentsByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	m := make(Matrix)
	for _, st := range students {
		grades, err := svc.repo.QueryGradesByStudent(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		for _, g := range grades {
			m[GradeKey{g.StudentID, g.AssignmentID}] = g
		}
	}
	return m, nil
}

// CommitCell reconciles a single cell edit against the store and, on success,
// against the matrix. A blank value clears the cell; a non-blank value
// updates the existing grade (resetting notes, which have no place on this
// edit surface) or creates a new one. Existence is checked against the store
// first so a second grade is never created for a pair that already has one.
// The matrix is left untouched when the store write fails.
func (svc *Service) CommitCell(ctx context.Context, m Matrix, studentID, assignmentID int, value string) error {
	value = core.CleanString(value)
	key := GradeKey{studentID, assignmentID}

	existing, err := svc.repo.GetGrade(ctx, studentID, assignmentID)
	exists := err == nil
	if err != nil && err != ErrGradeNotFound {
		return err
	}

	if value == "" {
		if !exists {
			return nil
		}
		if err := svc.repo.DeleteGrade(ctx, existing.ID); err != nil {
			return err
		}
		delete(m, key)
		return nil
	}

	if exists {
		emptyNotes := ""
		if err := svc.repo.UpdateGrade(ctx, existing.ID, UpdateGrade{Grade: &value, Notes: &emptyNotes}); err != nil {
			return err
		}
		existing.Grade = value
		existing.Notes = ""
		m[key] = existing
		return nil
	}

	created, err := svc.repo.CreateGrade(ctx, Grade{
		StudentID:    studentID,
		AssignmentID: assignmentID,
		Grade:        value,
	})
	if err != nil {
		return err
	}
	m[key] = created
	return nil
}
