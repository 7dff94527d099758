package repository

import "context"

// NoticeRepo records exported notice registers.
type NoticeRepo struct {
	db DBTX
}

func NewNoticeRepo(db DBTX) *NoticeRepo { return &NoticeRepo{db: db} }

func (r *NoticeRepo) Insert(ctx context.Context, n Notice) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO notices(id, kind, path, loan_count, created_at) VALUES(?, ?, ?, ?, ?);
	`, n.ID, n.Kind, n.Path, n.LoanCount, n.CreatedAt)
	return err
}

func (r *NoticeRepo) List(ctx context.Context) ([]Notice, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, kind, path, loan_count, created_at FROM notices ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Notice
	for rows.Next() {
		var n Notice
		if err := rows.Scan(&n.ID, &n.Kind, &n.Path, &n.LoanCount, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
