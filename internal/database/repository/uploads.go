package repository

import "context"

// UploadRepo handles the upload journal.
type UploadRepo struct {
	db DBTX
}

func NewUploadRepo(db DBTX) *UploadRepo { return &UploadRepo{db: db} }

func (r *UploadRepo) Insert(ctx context.Context, u Upload) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO uploads(id, category, file_name, document_type, remark, row_count, sample_json, submitted_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?);
	`, u.ID, u.Category, u.FileName, u.DocumentType, u.Remark, u.RowCount, u.SampleJSON, u.SubmittedAt)
	return err
}

// Recent returns up to limit uploads, newest first. limit <= 0 returns all.
func (r *UploadRepo) Recent(ctx context.Context, limit int) ([]Upload, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, category, file_name, document_type, remark, row_count, sample_json, submitted_at
	FROM uploads ORDER BY submitted_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Upload
	for rows.Next() {
		var u Upload
		if err := rows.Scan(&u.ID, &u.Category, &u.FileName, &u.DocumentType, &u.Remark,
			&u.RowCount, &u.SampleJSON, &u.SubmittedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UploadRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM uploads`).Scan(&n)
	return n, err
}
