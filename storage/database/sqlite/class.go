package sqliterepos

import (
	"context"
	"time"

	"github.com/frankspastic/psia-gradebook/core/gradebook"
)

func (repo *gradebookRepository) QueryAllClasses(ctx context.Context) ([]gradebook.Class, error) {
	classes := make([]gradebook.Class, 0)
	err := repo.db.SelectContext(ctx, &classes, "SELECT * FROM classes ORDER BY created_at DESC")
	return classes, err
}

func (repo *gradebookRepository) GetClassByID(ctx context.Context, id int) (gradebook.Class, error) {
	var cls gradebook.Class
	err := repo.db.GetContext(ctx, &cls, "SELECT * FROM classes WHERE id = ?", id)
	return cls, translateNoRows(err, gradebook.ErrClassNotFound)
}

func (repo *gradebookRepository) CreateClass(ctx context.Context, cls gradebook.Class) (gradebook.Class, error) {
	cls.CreatedAt = time.Now().UTC()
	res, err := repo.db.ExecContext(ctx,
		"INSERT INTO classes (name, description, created_at) VALUES (?, ?, ?)",
		cls.Name, cls.Description, cls.CreatedAt,
	)
	if err != nil {
		return gradebook.Class{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return gradebook.Class{}, err
	}
	return repo.GetClassByID(ctx, int(id))
}

func (repo *gradebookRepository) UpdateClass(ctx context.Context, id int, uc gradebook.UpdateClass) error {
	fields := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)
	if uc.Name != nil {
		fields = append(fields, "name = ?")
		args = append(args, *uc.Name)
	}
	if uc.Description != nil {
		fields = append(fields, "description = ?")
		args = append(args, *uc.Description)
	}
	return repo.partialUpdate(ctx, "classes", id, gradebook.ErrClassNotFound, fields, args)
}

func (repo *gradebookRepository) DeleteClass(ctx context.Context, id int) error {
	return repo.exec(ctx, gradebook.ErrClassNotFound, "DELETE FROM classes WHERE id = ?", id)
}
