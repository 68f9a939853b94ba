// Package containers mediates between rendered markup and the remote
// store, one container per page flow.
package containers

import (
	"context"

	"go.uber.org/zap"

	"billed/internal/format"
	"billed/internal/routes"
	"billed/internal/store"
	"billed/internal/views"
)

// Navigator moves the router to a logical path.
type Navigator func(ctx context.Context, path string)

// Bills produces the expense list for display and hands off the
// "create new bill" intent.
type Bills struct {
	store      store.Store
	onNavigate Navigator
	logger     *zap.Logger
}

// NewBills builds the bills container.
func NewBills(st store.Store, onNavigate Navigator, logger *zap.Logger) *Bills {
	return &Bills{store: st, onNavigate: onNavigate, logger: logger}
}

// GetBills fetches the bill list and formats each record for display.
// A record whose date cannot be formatted keeps its raw date and is
// logged; malformed data never drops a row. A rejected list call is not
// swallowed here: the router mount renders it.
func (b *Bills) GetBills(ctx context.Context) ([]views.BillRow, error) {
	if b.store == nil {
		return []views.BillRow{}, nil
	}

	bills, err := b.store.Bills().List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]views.BillRow, 0, len(bills))
	for _, bill := range bills {
		date, err := format.Date(bill.Date)
		if err != nil {
			b.logger.Warn("bill date left unformatted",
				zap.String("bill_id", bill.ID),
				zap.String("date", bill.Date),
				zap.Error(err))
			date = bill.Date
		}
		rows = append(rows, views.BillRow{
			Type:    bill.Type,
			Name:    bill.Name,
			Date:    date,
			RawDate: bill.Date,
			Amount:  bill.Amount,
			Status:  format.Status(bill.Status),
			FileURL: bill.FileURL,
		})
	}
	return rows, nil
}

// HandleClickNewBill navigates to the new bill form.
func (b *Bills) HandleClickNewBill(ctx context.Context) {
	b.onNavigate(ctx, routes.NewBill)
}
