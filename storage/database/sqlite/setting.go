package sqliterepos

import (
	"context"

	"github.com/frankspastic/psia-gradebook/core/gradebook"
)

func (repo *gradebookRepository) GetSetting(ctx context.Context, key string) (gradebook.Setting, error) {
	var s gradebook.Setting
	err := repo.db.GetContext(ctx, &s, `SELECT * FROM settings WHERE "key" = ?`, key)
	return s, translateNoRows(err, gradebook.ErrSettingNotFound)
}

func (repo *gradebookRepository) SetSetting(ctx context.Context, key, value string) error {
	_, err := repo.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO settings ("key", value) VALUES (?, ?)`, key, value)
	return err
}
