package containers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"billed/internal/forms"
	"billed/internal/models"
	"billed/internal/routes"
	"billed/internal/session"
	"billed/internal/store"
)

func employeeSession(t *testing.T) session.Store {
	t.Helper()
	scope := session.NewMemorySessions().Scope("tab-1")
	err := session.SaveUser(context.Background(), scope, models.User{Type: models.RoleEmployee, Email: "employee@test.tld"})
	require.NoError(t, err)
	return scope
}

func submittableForm(t *testing.T, overrides map[string]string) *forms.NewBillForm {
	t.Helper()
	values := map[string]string{
		"expense-type": "Restaurants et bars",
		"expense-name": "Lunch Meeting",
		"datepicker":   "2023-04-04",
		"amount":       "200",
		"vat":          "40",
		"pct":          "20",
		"commentary":   "Business discussion",
	}
	for key, value := range overrides {
		values[key] = value
	}
	form, err := forms.NewBillFormFromValues(values)
	require.NoError(t, err)
	return form
}

func TestHandleChangeFileStripsFakepath(t *testing.T) {
	resource := &fakeResource{
		createFn: func(_ context.Context, input store.CreateInput) (store.CreateResult, error) {
			return store.CreateResult{FileURL: "https://localhost:3456/images/test.jpg", Key: "1234"}, nil
		},
	}
	newBill := NewNewBill(&fakeStore{resource: resource}, employeeSession(t), nil, zap.NewNop())

	err := newBill.HandleChangeFile(context.Background(), ChangeFileEvent{
		Path: `C:\fakepath\image.jpg`,
		File: store.File{Name: `C:\fakepath\image.jpg`, Content: []byte("file-content")},
	})
	require.NoError(t, err)

	fileURL, fileName, billID := newBill.Draft()
	assert.Equal(t, "https://localhost:3456/images/test.jpg", fileURL)
	assert.Equal(t, "image.jpg", fileName, "only the trailing path segment is kept")
	assert.Equal(t, "1234", billID)

	require.Equal(t, 1, resource.createCount())
	assert.Equal(t, "employee@test.tld", resource.createCalls[0].Email)
	assert.Equal(t, "image.jpg", resource.createCalls[0].File.Name)
}

func TestHandleChangeFileOverwritesDraftOnReselect(t *testing.T) {
	keys := []string{"first-key", "second-key"}
	resource := &fakeResource{}
	resource.createFn = func(_ context.Context, input store.CreateInput) (store.CreateResult, error) {
		key := keys[resource.createCount()-1]
		return store.CreateResult{FileURL: "https://files/" + input.File.Name, Key: key}, nil
	}
	newBill := NewNewBill(&fakeStore{resource: resource}, employeeSession(t), nil, zap.NewNop())

	require.NoError(t, newBill.HandleChangeFile(context.Background(), ChangeFileEvent{Path: "one.jpg"}))
	require.NoError(t, newBill.HandleChangeFile(context.Background(), ChangeFileEvent{Path: "two.png"}))

	fileURL, fileName, billID := newBill.Draft()
	assert.Equal(t, "https://files/two.png", fileURL)
	assert.Equal(t, "two.png", fileName)
	assert.Equal(t, "second-key", billID)
}

func TestHandleChangeFileRejectionLeavesDraftEmpty(t *testing.T) {
	resource := &fakeResource{
		createFn: func(context.Context, store.CreateInput) (store.CreateResult, error) {
			return store.CreateResult{}, errors.New("Erreur 500")
		},
	}
	core, logs := observer.New(zap.ErrorLevel)
	newBill := NewNewBill(&fakeStore{resource: resource}, employeeSession(t), nil, zap.New(core))

	err := newBill.HandleChangeFile(context.Background(), ChangeFileEvent{Path: "image.jpg"})
	require.Error(t, err)

	fileURL, fileName, billID := newBill.Draft()
	assert.Empty(t, fileURL)
	assert.Empty(t, fileName)
	assert.Empty(t, billID)
	assert.Equal(t, 1, logs.FilterMessage("receipt upload failed").Len())
}

func TestHandleChangeFileWithoutSession(t *testing.T) {
	resource := &fakeResource{}
	scope := session.NewMemorySessions().Scope("anonymous")
	newBill := NewNewBill(&fakeStore{resource: resource}, scope, nil, zap.NewNop())

	err := newBill.HandleChangeFile(context.Background(), ChangeFileEvent{Path: "image.jpg"})
	require.ErrorIs(t, err, session.ErrNoItem)
	assert.Zero(t, resource.createCount(), "no upload without an identity")
}

func TestHandleSubmitInvalidFormNeverReachesStore(t *testing.T) {
	resource := &fakeResource{}
	var navigated []string
	onNavigate := func(_ context.Context, path string) { navigated = append(navigated, path) }
	newBill := NewNewBill(&fakeStore{resource: resource}, employeeSession(t), onNavigate, zap.NewNop())

	form := submittableForm(t, map[string]string{"datepicker": ""})
	err := newBill.HandleSubmit(context.Background(), form)

	require.ErrorIs(t, err, ErrInvalidForm)
	assert.Zero(t, resource.updateCount())
	assert.Empty(t, navigated, "the form stays on screen")
	assert.False(t, form.CheckValidity())
}

func TestHandleSubmitAssemblesBillFromDraftAndForm(t *testing.T) {
	resource := &fakeResource{
		createFn: func(context.Context, store.CreateInput) (store.CreateResult, error) {
			return store.CreateResult{FileURL: "https://files/receipt.jpg", Key: "bill-key"}, nil
		},
	}
	var navigated []string
	onNavigate := func(_ context.Context, path string) { navigated = append(navigated, path) }
	newBill := NewNewBill(&fakeStore{resource: resource}, employeeSession(t), onNavigate, zap.NewNop())

	require.NoError(t, newBill.HandleChangeFile(context.Background(), ChangeFileEvent{Path: "receipt.jpg"}))
	require.NoError(t, newBill.HandleSubmit(context.Background(), submittableForm(t, nil)))

	require.Equal(t, 1, resource.updateCount())
	update := resource.lastUpdate()
	assert.Equal(t, "bill-key", update.Selector)
	assert.Equal(t, "employee@test.tld", update.Data.Email)
	assert.Equal(t, "Restaurants et bars", update.Data.Type)
	assert.Equal(t, "Lunch Meeting", update.Data.Name)
	assert.Equal(t, 200, update.Data.Amount)
	assert.Equal(t, 20, update.Data.Pct)
	assert.Equal(t, "40", update.Data.VAT)
	assert.Equal(t, "2023-04-04", update.Data.Date)
	assert.Equal(t, "https://files/receipt.jpg", update.Data.FileURL)
	assert.Equal(t, "receipt.jpg", update.Data.FileName)
	assert.Equal(t, models.StatusPending, update.Data.Status)

	assert.Equal(t, []string{routes.Bills}, navigated)

	fileURL, fileName, billID := newBill.Draft()
	assert.Empty(t, fileURL+fileName+billID, "draft consumed by submit")
}

func TestHandleSubmitPctFallsBackToTwenty(t *testing.T) {
	resource := &fakeResource{}
	newBill := NewNewBill(&fakeStore{resource: resource}, employeeSession(t), func(context.Context, string) {}, zap.NewNop())

	require.NoError(t, newBill.HandleSubmit(context.Background(), submittableForm(t, map[string]string{"pct": "abc"})))

	require.Equal(t, 1, resource.updateCount())
	assert.Equal(t, 20, resource.lastUpdate().Data.Pct)
}

func TestHandleSubmitRejectionStillNavigates(t *testing.T) {
	resource := &fakeResource{
		updateFn: func(context.Context, store.UpdateInput) (models.Bill, error) {
			return models.Bill{}, errors.New("Erreur 404")
		},
	}
	var navigated []string
	onNavigate := func(_ context.Context, path string) { navigated = append(navigated, path) }
	core, logs := observer.New(zap.ErrorLevel)
	newBill := NewNewBill(&fakeStore{resource: resource}, employeeSession(t), onNavigate, zap.New(core))

	err := newBill.HandleSubmit(context.Background(), submittableForm(t, nil))
	require.NoError(t, err, "a rejected update is best-effort, not an error")

	assert.Equal(t, []string{routes.Bills}, navigated)
	assert.Equal(t, 1, logs.FilterMessage("bill update failed").Len())
}

func TestHandleSubmitBeforeUploadSettles(t *testing.T) {
	resource := &fakeResource{}
	newBill := NewNewBill(&fakeStore{resource: resource}, employeeSession(t), func(context.Context, string) {}, zap.NewNop())

	// The user outran the upload; whatever draft values exist are used.
	require.NoError(t, newBill.HandleSubmit(context.Background(), submittableForm(t, nil)))

	require.Equal(t, 1, resource.updateCount())
	update := resource.lastUpdate()
	assert.Empty(t, update.Selector)
	assert.Empty(t, update.Data.FileURL)
	assert.Empty(t, update.Data.FileName)
}
