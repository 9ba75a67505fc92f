package sqliterepos

import (
	"context"

	"github.com/frankspastic/psia-gradebook/core/gradebook"
)

func (repo *gradebookRepository) QueryAssignmentsByClass(ctx context.Context, classID int) ([]gradebook.Assignment, error) {
	assignments := make([]gradebook.Assignment, 0)
	err := repo.db.SelectContext(ctx, &assignments,
		"SELECT * FROM assignments WHERE class_id = ? ORDER BY date DESC", classID)
	return assignments, err
}

func (repo *gradebookRepository) GetAssignmentByID(ctx context.Context, id int) (gradebook.Assignment, error) {
	var a gradebook.Assignment
	err := repo.db.GetContext(ctx, &a, "SELECT * FROM assignments WHERE id = ?", id)
	return a, translateNoRows(err, gradebook.ErrAssignmentNotFound)
}

func (repo *gradebookRepository) CreateAssignment(ctx context.Context, a gradebook.Assignment) (gradebook.Assignment, error) {
	res, err := repo.db.ExecContext(ctx,
		"INSERT INTO assignments (class_id, label, date, description) VALUES (?, ?, ?, ?)",
		a.ClassID, a.Label, a.Date, a.Description,
	)
	if err != nil {
		return gradebook.Assignment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return gradebook.Assignment{}, err
	}
	return repo.GetAssignmentByID(ctx, int(id))
}

func (repo *gradebookRepository) UpdateAssignment(ctx context.Context, id int, ua gradebook.UpdateAssignment) error {
	fields := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)
	if ua.ClassID != nil {
		fields = append(fields, "class_id = ?")
		args = append(args, *ua.ClassID)
	}
	if ua.Label != nil {
		fields = append(fields, "label = ?")
		args = append(args, *ua.Label)
	}
	if ua.Date != nil {
		fields = append(fields, "date = ?")
		args = append(args, *ua.Date)
	}
	if ua.Description != nil {
		fields = append(fields, "description = ?")
		args = append(args, *ua.Description)
	}
	return repo.partialUpdate(ctx, "assignments", id, gradebook.ErrAssignmentNotFound, fields, args)
}

func (repo *gradebookRepository) DeleteAssignment(ctx context.Context, id int) error {
	return repo.exec(ctx, gradebook.ErrAssignmentNotFound, "DELETE FROM assignments WHERE id = ?", id)
}
