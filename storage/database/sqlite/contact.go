package sqliterepos

import (
	"context"

	"github.com/frankspastic/psia-gradebook/core/gradebook"
)

func (repo *gradebookRepository) QueryContactsByStudent(ctx context.Context, studentID int) ([]gradebook.EmailContact, error) {
	contacts := make([]gradebook.EmailContact, 0)
	err := repo.db.SelectContext(ctx, &contacts,
		"SELECT * FROM email_contacts WHERE student_id = ?", studentID)
	return contacts, err
}

func (repo *gradebookRepository) getContactByID(ctx context.Context, id int) (gradebook.EmailContact, error) {
	var ec gradebook.EmailContact
	err := repo.db.GetContext(ctx, &ec, "SELECT * FROM email_contacts WHERE id = ?", id)
	return ec, translateNoRows(err, gradebook.ErrContactNotFound)
}

func (repo *gradebookRepository) CreateContact(ctx context.Context, ec gradebook.EmailContact) (gradebook.EmailContact, error) {
	res, err := repo.db.ExecContext(ctx,
		"INSERT INTO email_contacts (student_id, email, contact_name, relationship) VALUES (?, ?, ?, ?)",
		ec.StudentID, ec.Email, ec.ContactName, ec.Relationship,
	)
	if err != nil {
		return gradebook.EmailContact{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return gradebook.EmailContact{}, err
	}
	return repo.getContactByID(ctx, int(id))
}

func (repo *gradebookRepository) UpdateContact(ctx context.Context, id int, uc gradebook.UpdateEmailContact) error {
	fields := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	if uc.Email != nil {
		fields = append(fields, "email = ?")
		args = append(args, *uc.Email)
	}
	if uc.ContactName != nil {
		fields = append(fields, "contact_name = ?")
		args = append(args, *uc.ContactName)
	}
	if uc.Relationship != nil {
		fields = append(fields, "relationship = ?")
		args = append(args, *uc.Relationship)
	}
	return repo.partialUpdate(ctx, "email_contacts", id, gradebook.ErrContactNotFound, fields, args)
}

func (repo *gradebookRepository) DeleteContact(ctx context.Context, id int) error {
	return repo.exec(ctx, gradebook.ErrContactNotFound, "DELETE FROM email_contacts WHERE id = ?", id)
}
