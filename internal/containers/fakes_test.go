package containers

import (
	"context"
	"sync"

	"billed/internal/models"
	"billed/internal/store"
)

// fixtureBills mirrors the four records the remote API serves for the
// test employee.
var fixtureBills = []models.Bill{
	{ID: "47qAXb6fIm2zOKkLzMro", Type: "Hôtel et logement", Name: "encore", Date: "2004-04-04", Amount: 400, Pct: 20, Status: "pending", FileURL: "https://test.storage.tld/sn-1.jpg"},
	{ID: "BeKy5Mo4jkmdfPGYpTxZ", Type: "Transports", Name: "test1", Date: "2001-01-01", Amount: 100, Pct: 20, Status: "refused", FileURL: "https://test.storage.tld/sn-2.jpg"},
	{ID: "UIUZtnPQvnbFnB0ozvJh", Type: "Services en ligne", Name: "test3", Date: "2003-03-03", Amount: 300, Pct: 20, Status: "accepted", FileURL: "https://test.storage.tld/sn-3.jpg"},
	{ID: "qcCK3SzECmaZAGRrHjaC", Type: "Restaurants et bars", Name: "test2", Date: "2002-02-02", Amount: 200, Pct: 20, Status: "refused", FileURL: "https://test.storage.tld/sn-4.jpg"},
}

type fakeResource struct {
	mu sync.Mutex

	listFn   func(ctx context.Context) ([]models.Bill, error)
	createFn func(ctx context.Context, input store.CreateInput) (store.CreateResult, error)
	updateFn func(ctx context.Context, input store.UpdateInput) (models.Bill, error)

	createCalls []store.CreateInput
	updateCalls []store.UpdateInput
}

func (r *fakeResource) List(ctx context.Context) ([]models.Bill, error) {
	if r.listFn == nil {
		return nil, nil
	}
	return r.listFn(ctx)
}

func (r *fakeResource) Create(ctx context.Context, input store.CreateInput) (store.CreateResult, error) {
	r.mu.Lock()
	r.createCalls = append(r.createCalls, input)
	r.mu.Unlock()
	if r.createFn == nil {
		return store.CreateResult{}, nil
	}
	return r.createFn(ctx, input)
}

func (r *fakeResource) Update(ctx context.Context, input store.UpdateInput) (models.Bill, error) {
	r.mu.Lock()
	r.updateCalls = append(r.updateCalls, input)
	r.mu.Unlock()
	if r.updateFn == nil {
		return input.Data, nil
	}
	return r.updateFn(ctx, input)
}

func (r *fakeResource) createCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.createCalls)
}

func (r *fakeResource) updateCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.updateCalls)
}

func (r *fakeResource) lastUpdate() store.UpdateInput {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateCalls[len(r.updateCalls)-1]
}

type fakeStore struct {
	resource *fakeResource
}

func (s *fakeStore) Bills() store.Resource { return s.resource }
