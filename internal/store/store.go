// Package store abstracts the remote bills API. The web application only
// ever talks to it through this contract; the transport lives in client.go
// and a reference server implementation under internal/api.
package store

import (
	"context"

	"billed/internal/models"
)

// Store exposes resource handles on the remote API.
type Store interface {
	Bills() Resource
}

// Resource is the per-resource CRUD surface.
type Resource interface {
	List(ctx context.Context) ([]models.Bill, error)
	Create(ctx context.Context, input CreateInput) (CreateResult, error)
	Update(ctx context.Context, input UpdateInput) (models.Bill, error)
}

// File is a receipt attachment selected in the browser.
type File struct {
	Name    string
	Content []byte
}

// CreateInput uploads the receipt before the rest of the form is confirmed.
type CreateInput struct {
	File  File
	Email string
}

// CreateResult is what the API hands back for a stored receipt.
type CreateResult struct {
	FileURL string `json:"fileUrl"`
	Key     string `json:"key"`
}

// UpdateInput commits the bill metadata onto the record created by the
// earlier file upload.
type UpdateInput struct {
	Selector string
	Data     models.Bill
}
