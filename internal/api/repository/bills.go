package repository

import (
	"context"
	"database/sql"
	"errors"

	"billed/internal/models"
)

// ErrBillNotFound represents missing bill rows.
var ErrBillNotFound = errors.New("bill not found")

const billColumns = `id, email, type, name, amount, date, vat, pct, commentary, file_url, file_name, status`

// BillRepository handles persistence of expense bills.
type BillRepository struct {
	db *sql.DB
}

// NewBillRepository returns repository instance.
func NewBillRepository(db *sql.DB) *BillRepository {
	return &BillRepository{db: db}
}

// Create inserts the stub row produced by a receipt upload.
func (r *BillRepository) Create(ctx context.Context, bill *models.Bill) error {
	const query = `
		INSERT INTO bills (id, email, type, name, amount, date, vat, pct, commentary, file_url, file_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`
	_, err := r.db.ExecContext(ctx, query,
		bill.ID,
		bill.Email,
		bill.Type,
		bill.Name,
		bill.Amount,
		bill.Date,
		bill.VAT,
		bill.Pct,
		bill.Commentary,
		bill.FileURL,
		bill.FileName,
		bill.Status,
	)
	return err
}

// Update overwrites the bill metadata committed on form confirmation.
func (r *BillRepository) Update(ctx context.Context, bill *models.Bill) (*models.Bill, error) {
	const query = `
		UPDATE bills
		SET email = $2,
		    type = $3,
		    name = $4,
		    amount = $5,
		    date = $6,
		    vat = $7,
		    pct = $8,
		    commentary = $9,
		    file_url = COALESCE(NULLIF($10, ''), file_url),
		    file_name = COALESCE(NULLIF($11, ''), file_name),
		    status = $12,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + billColumns + `
	`
	row := r.db.QueryRowContext(ctx, query,
		bill.ID,
		bill.Email,
		bill.Type,
		bill.Name,
		bill.Amount,
		bill.Date,
		bill.VAT,
		bill.Pct,
		bill.Commentary,
		bill.FileURL,
		bill.FileName,
		bill.Status,
	)
	return scanBill(row)
}

// SetStatus moves a bill through the review workflow.
func (r *BillRepository) SetStatus(ctx context.Context, id, status string) (*models.Bill, error) {
	const query = `
		UPDATE bills
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + billColumns + `
	`
	return scanBill(r.db.QueryRowContext(ctx, query, id, status))
}

// ListByEmail returns the bills owned by one employee.
func (r *BillRepository) ListByEmail(ctx context.Context, email string) ([]models.Bill, error) {
	const query = `
		SELECT ` + billColumns + `
		FROM bills
		WHERE email = $1
		ORDER BY date DESC, created_at DESC
	`
	return r.list(ctx, query, email)
}

// ListAll returns every bill, for the admin dashboard.
func (r *BillRepository) ListAll(ctx context.Context) ([]models.Bill, error) {
	const query = `
		SELECT ` + billColumns + `
		FROM bills
		ORDER BY date DESC, created_at DESC
	`
	return r.list(ctx, query)
}

func (r *BillRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Bill, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(
			&b.ID,
			&b.Email,
			&b.Type,
			&b.Name,
			&b.Amount,
			&b.Date,
			&b.VAT,
			&b.Pct,
			&b.Commentary,
			&b.FileURL,
			&b.FileName,
			&b.Status,
		); err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bills, nil
}

func scanBill(row *sql.Row) (*models.Bill, error) {
	var b models.Bill
	if err := row.Scan(
		&b.ID,
		&b.Email,
		&b.Type,
		&b.Name,
		&b.Amount,
		&b.Date,
		&b.VAT,
		&b.Pct,
		&b.Commentary,
		&b.FileURL,
		&b.FileName,
		&b.Status,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}
	return &b, nil
}
