package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billed/internal/models"
)

var billRowColumns = []string{
	"id", "email", "type", "name", "amount", "date", "vat", "pct",
	"commentary", "file_url", "file_name", "status",
}

func billRow(bill models.Bill) *sqlmock.Rows {
	return sqlmock.NewRows(billRowColumns).AddRow(
		bill.ID, bill.Email, bill.Type, bill.Name, bill.Amount, bill.Date,
		bill.VAT, bill.Pct, bill.Commentary, bill.FileURL, bill.FileName, bill.Status,
	)
}

func TestBillRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO bills").
		WithArgs("1234", "employee@test.tld", "", "", 0, "", "", 0, "", "https://files/image.jpg", "image.jpg", models.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewBillRepository(db)
	err = repo.Create(context.Background(), &models.Bill{
		ID:       "1234",
		Email:    "employee@test.tld",
		FileURL:  "https://files/image.jpg",
		FileName: "image.jpg",
		Status:   models.StatusPending,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillRepositoryUpdateReturnsRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	stored := models.Bill{
		ID:       "1234",
		Email:    "employee@test.tld",
		Type:     "Transports",
		Name:     "Vol Paris Londres",
		Amount:   348,
		Date:     "2004-04-04",
		VAT:      "70",
		Pct:      20,
		FileURL:  "https://files/image.jpg",
		FileName: "image.jpg",
		Status:   models.StatusPending,
	}
	mock.ExpectQuery("UPDATE bills").
		WithArgs("1234", stored.Email, stored.Type, stored.Name, stored.Amount, stored.Date,
			stored.VAT, stored.Pct, "", "", "", stored.Status).
		WillReturnRows(billRow(stored))

	repo := NewBillRepository(db)
	updated, err := repo.Update(context.Background(), &models.Bill{
		ID:     "1234",
		Email:  stored.Email,
		Type:   stored.Type,
		Name:   stored.Name,
		Amount: stored.Amount,
		Date:   stored.Date,
		VAT:    stored.VAT,
		Pct:    stored.Pct,
		Status: stored.Status,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://files/image.jpg", updated.FileURL, "empty file fields keep the stored receipt")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillRepositoryUpdateMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("UPDATE bills").
		WillReturnRows(sqlmock.NewRows(billRowColumns))

	repo := NewBillRepository(db)
	_, err = repo.Update(context.Background(), &models.Bill{ID: "missing"})
	assert.ErrorIs(t, err, ErrBillNotFound)
}

func TestBillRepositorySetStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("UPDATE bills").
		WithArgs("1234", models.StatusAccepted).
		WillReturnRows(billRow(models.Bill{ID: "1234", Status: models.StatusAccepted}))

	repo := NewBillRepository(db)
	bill, err := repo.SetStatus(context.Background(), "1234", models.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, bill.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillRepositoryListByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := billRow(models.Bill{ID: "1", Email: "employee@test.tld", Date: "2004-04-04"}).
		AddRow("2", "employee@test.tld", "", "", 0, "2001-01-01", "", 0, "", "", "", models.StatusRefused)
	mock.ExpectQuery("SELECT (.+) FROM bills").
		WithArgs("employee@test.tld").
		WillReturnRows(rows)

	repo := NewBillRepository(db)
	bills, err := repo.ListByEmail(context.Background(), "employee@test.tld")
	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.Equal(t, "2004-04-04", bills[0].Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillRepositoryListAllEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bills").
		WillReturnRows(sqlmock.NewRows(billRowColumns))

	repo := NewBillRepository(db)
	bills, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bills)
}
