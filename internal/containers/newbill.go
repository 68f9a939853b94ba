package containers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"billed/internal/forms"
	"billed/internal/models"
	"billed/internal/routes"
	"billed/internal/session"
	"billed/internal/store"
)

// ErrInvalidForm is returned when required fields are missing; the store
// is never reached and the form stays on screen.
var ErrInvalidForm = errors.New("newbill: form failed validity check")

const defaultPct = 20

// ChangeFileEvent carries the selected receipt. Path is the raw input
// value, which browsers prefix with a fake OS path.
type ChangeFileEvent struct {
	Path string
	File store.File
}

// NewBill owns the two-phase submission flow: upload the receipt on
// selection, then commit the metadata on form confirmation. The draft
// accumulated between the two phases lives on the instance.
type NewBill struct {
	store      store.Store
	sessions   session.Store
	onNavigate Navigator
	logger     *zap.Logger

	mu       sync.Mutex
	fileURL  string
	fileName string
	billID   string
}

// NewNewBill builds a container with an empty draft.
func NewNewBill(st store.Store, sessions session.Store, onNavigate Navigator, logger *zap.Logger) *NewBill {
	return &NewBill{store: st, sessions: sessions, onNavigate: onNavigate, logger: logger}
}

// HandleChangeFile uploads the selected file right away and records the
// resulting draft. Re-selecting a file re-runs the upload and overwrites
// the draft. File type validation is the API's concern, not ours.
func (n *NewBill) HandleChangeFile(ctx context.Context, ev ChangeFileEvent) error {
	if n.store == nil {
		return nil
	}

	name := fileBaseName(ev.Path)
	if name == "" {
		name = fileBaseName(ev.File.Name)
	}

	user, err := session.CurrentUser(ctx, n.sessions)
	if err != nil {
		return err
	}

	result, err := n.store.Bills().Create(ctx, store.CreateInput{
		File:  store.File{Name: name, Content: ev.File.Content},
		Email: user.Email,
	})
	if err != nil {
		n.logger.Error("receipt upload failed", zap.String("file", name), zap.Error(err))
		return err
	}

	n.mu.Lock()
	n.fileURL = result.FileURL
	n.fileName = name
	n.billID = result.Key
	n.mu.Unlock()
	return nil
}

// HandleSubmit assembles the bill from the form values and whatever draft
// state the upload has produced so far, then commits it. A rejected update
// is logged, never surfaced: the receipt is already safe on the API side,
// so the flow navigates back to the list in every outcome.
func (n *NewBill) HandleSubmit(ctx context.Context, form *forms.NewBillForm) error {
	if !form.CheckValidity() {
		return ErrInvalidForm
	}

	if n.store != nil {
		email := ""
		if user, err := session.CurrentUser(ctx, n.sessions); err == nil {
			email = user.Email
		} else {
			n.logger.Warn("no session user at submit time", zap.Error(err))
		}

		amount, err := strconv.Atoi(form.Value(forms.FieldAmount))
		if err != nil {
			n.logger.Warn("amount not numeric", zap.String("amount", form.Value(forms.FieldAmount)))
		}
		pct, err := strconv.Atoi(form.Value(forms.FieldPct))
		if err != nil || pct == 0 {
			pct = defaultPct
		}

		n.mu.Lock()
		fileURL, fileName, billID := n.fileURL, n.fileName, n.billID
		n.fileURL, n.fileName, n.billID = "", "", ""
		n.mu.Unlock()

		bill := models.Bill{
			Email:      email,
			Type:       form.Value(forms.FieldExpenseType),
			Name:       form.Value(forms.FieldExpenseName),
			Amount:     amount,
			Date:       form.Value(forms.FieldDatepicker),
			VAT:        form.Value(forms.FieldVAT),
			Pct:        pct,
			Commentary: form.Value(forms.FieldCommentary),
			FileURL:    fileURL,
			FileName:   fileName,
			Status:     models.StatusPending,
		}

		if _, err := n.store.Bills().Update(ctx, store.UpdateInput{Selector: billID, Data: bill}); err != nil {
			n.logger.Error("bill update failed", zap.String("bill_id", billID), zap.Error(err))
		}
	}

	n.onNavigate(ctx, routes.Bills)
	return nil
}

// Draft returns the in-progress upload state.
func (n *NewBill) Draft() (fileURL, fileName, billID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.fileURL, n.fileName, n.billID
}

// fileBaseName strips any client OS path prefix, whichever separator the
// browser used.
func fileBaseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
