package sqliterepos

import (
	"context"

	"github.com/frankspastic/psia-gradebook/core/gradebook"
)

func (repo *gradebookRepository) QueryStudentsByClass(ctx context.Context, classID int) ([]gradebook.Student, error) {
	students := make([]gradebook.Student, 0)
	err := repo.db.SelectContext(ctx, &students,
		"SELECT * FROM students WHERE class_id = ? ORDER BY last_name, first_name", classID)
	return students, err
}

func (repo *gradebookRepository) GetStudentByID(ctx context.Context, id int) (gradebook.Student, error) {
	var st gradebook.Student
	err := repo.db.GetContext(ctx, &st, "SELECT * FROM students WHERE id = ?", id)
	return st, translateNoRows(err, gradebook.ErrStudentNotFound)
}

func (repo *gradebookRepository) CreateStudent(ctx context.Context, st gradebook.Student) (gradebook.Student, error) {
	res, err := repo.db.ExecContext(ctx,
		"INSERT INTO students (class_id, first_name, last_name, google_drive_url) VALUES (?, ?, ?, ?)",
		st.ClassID, st.FirstName, st.LastName, st.GoogleDriveURL,
	)
	if err != nil {
		return gradebook.Student{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return gradebook.Student{}, err
	}
	return repo.GetStudentByID(ctx, int(id))
}

func (repo *gradebookRepository) UpdateStudent(ctx context.Context, id int, us gradebook.UpdateStudent) error {
	fields := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)
	if us.ClassID != nil {
		fields = append(fields, "class_id = ?")
		args = append(args, *us.ClassID)
	}
	if us.FirstName != nil {
		fields = append(fields, "first_name = ?")
		args = append(args, *us.FirstName)
	}
	if us.LastName != nil {
		fields = append(fields, "last_name = ?")
		args = append(args, *us.LastName)
	}
	if us.GoogleDriveURL != nil {
		fields = append(fields, "google_drive_url = ?")
		args = append(args, *us.GoogleDriveURL)
	}
	return repo.partialUpdate(ctx, "students", id, gradebook.ErrStudentNotFound, fields, args)
}

func (repo *gradebookRepository) DeleteStudent(ctx context.Context, id int) error {
	return repo.exec(ctx, gradebook.ErrStudentNotFound, "DELETE FROM students WHERE id = ?", id)
}
