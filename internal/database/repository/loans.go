package repository

import "context"

// LoanRepo handles loans.
type LoanRepo struct {
	db DBTX
}

func NewLoanRepo(db DBTX) *LoanRepo { return &LoanRepo{db: db} }

func (r *LoanRepo) Upsert(ctx context.Context, l Loan) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO loans(
	 id, loan_type, borrower, borrower_address, co_borrower_name, co_borrower_address,
	 current_dpd, sanction_amount, region, status, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 loan_type=excluded.loan_type,
	 borrower=excluded.borrower,
	 borrower_address=excluded.borrower_address,
	 co_borrower_name=excluded.co_borrower_name,
	 co_borrower_address=excluded.co_borrower_address,
	 current_dpd=excluded.current_dpd,
	 sanction_amount=excluded.sanction_amount,
	 region=excluded.region,
	 status=excluded.status,
	 updated_at=CURRENT_TIMESTAMP;
	`,
		l.ID, l.LoanType, l.Borrower, l.BorrowerAddress, l.CoBorrowerName, l.CoBorrowerAddress,
		l.CurrentDPD, l.SanctionAmount, l.Region, l.Status)
	return err
}

// List returns loans in insertion order.
func (r *LoanRepo) List(ctx context.Context) ([]Loan, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, loan_type, borrower, borrower_address, co_borrower_name, co_borrower_address,
	 current_dpd, sanction_amount, region, status, created_at, updated_at
	FROM loans ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LoanRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM loans`).Scan(&n)
	return n, err
}

func (r *LoanRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM loans`)
	return err
}

func scanLoan(row scanner) (Loan, error) {
	var l Loan
	err := row.Scan(&l.ID, &l.LoanType, &l.Borrower, &l.BorrowerAddress, &l.CoBorrowerName,
		&l.CoBorrowerAddress, &l.CurrentDPD, &l.SanctionAmount, &l.Region, &l.Status,
		&l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// Insert adds l unless a loan with the same ID exists. It reports whether a
// row was written.
func (r *LoanRepo) Insert(ctx context.Context, l Loan) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO loans(
	 id, loan_type, borrower, borrower_address, co_borrower_name, co_borrower_address,
	 current_dpd, sanction_amount, region, status, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO NOTHING;
	`,
		l.ID, l.LoanType, l.Borrower, l.BorrowerAddress, l.CoBorrowerName, l.CoBorrowerAddress,
		l.CurrentDPD, l.SanctionAmount, l.Region, l.Status)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
