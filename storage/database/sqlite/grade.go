package sqliterepos

import (
	"context"

	"github.com/frankspastic/psia-gradebook/core/gradebook"
)

func (repo *gradebookRepository) QueryGradesByStudent(ctx context.Context, studentID int) ([]gradebook.Grade, error) {
	grades := make([]gradebook.Grade, 0)
	err := repo.db.SelectContext(ctx, &grades,
		"SELECT * FROM grades WHERE student_id = ?", studentID)
	return grades, err
}

func (repo *gradebookRepository) QueryGradesByAssignment(ctx context.Context, assignmentID int) ([]gradebook.Grade, error) {
	grades := make([]gradebook.Grade, 0)
	err := repo.db.SelectContext(ctx, &grades,
		"SELECT * FROM grades WHERE assignment_id = ?", assignmentID)
	return grades, err
}

func (repo *gradebookRepository) GetGrade(ctx context.Context, studentID, assignmentID int) (gradebook.Grade, error) {
	var g gradebook.Grade
	err := repo.db.GetContext(ctx, &g,
		"SELECT * FROM grades WHERE student_id = ? AND assignment_id = ?", studentID, assignmentID)
	return g, translateNoRows(err, gradebook.ErrGradeNotFound)
}

func (repo *gradebookRepository) getGradeByID(ctx context.Context, id int) (gradebook.Grade, error) {
	var g gradebook.Grade
	err := repo.db.GetContext(ctx, &g, "SELECT * FROM grades WHERE id = ?", id)
	return g, translateNoRows(err, gradebook.ErrGradeNotFound)
}

func (repo *gradebookRepository) CreateGrade(ctx context.Context, g gradebook.Grade) (gradebook.Grade, error) {
	// the UNIQUE(student_id, assignment_id) constraint backs up the
	// check-then-create done by the matrix engine
	if _, err := repo.GetGrade(ctx, g.StudentID, g.AssignmentID); err == nil {
		return gradebook.Grade{}, gradebook.ErrGradeExists
	} else if err != gradebook.ErrGradeNotFound {
		return gradebook.Grade{}, err
	}

	res, err := repo.db.ExecContext(ctx,
		"INSERT INTO grades (student_id, assignment_id, grade, notes) VALUES (?, ?, ?, ?)",
		g.StudentID, g.AssignmentID, g.Grade, g.Notes,
	)
	if err != nil {
		return gradebook.Grade{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return gradebook.Grade{}, err
	}
	return repo.getGradeByID(ctx, int(id))
}

func (repo *gradebookRepository) UpdateGrade(ctx context.Context, id int, ug gradebook.UpdateGrade) error {
	fields := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)
	if ug.Grade != nil {
		fields = append(fields, "grade = ?")
		args = append(args, *ug.Grade)
	}
	if ug.Notes != nil {
		fields = append(fields, "notes = ?")
		args = append(args, *ug.Notes)
	}
	return repo.partialUpdate(ctx, "grades", id, gradebook.ErrGradeNotFound, fields, args)
}

func (repo *gradebookRepository) DeleteGrade(ctx context.Context, id int) error {
	return repo.exec(ctx, gradebook.ErrGradeNotFound, "DELETE FROM grades WHERE id = ?", id)
}
