package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"go.uber.org/zap"

	"billed/internal/models"
)

// ErrBadStatus rejects statuses outside the review workflow.
var ErrBadStatus = errors.New("bills: unknown status")

// BillRepo is the persistence contract used by the service.
type BillRepo interface {
	Create(ctx context.Context, bill *models.Bill) error
	Update(ctx context.Context, bill *models.Bill) (*models.Bill, error)
	SetStatus(ctx context.Context, id, status string) (*models.Bill, error)
	ListByEmail(ctx context.Context, email string) ([]models.Bill, error)
	ListAll(ctx context.Context) ([]models.Bill, error)
}

// ReceiptStore keeps uploaded receipt files and exposes their URLs.
type ReceiptStore interface {
	Save(ctx context.Context, name string, content []byte) (string, error)
}

// StatusNotifier fans a status change out to connected watchers.
type StatusNotifier interface {
	NotifyStatusChange(bill models.Bill)
}

// BillsService owns the bill lifecycle on the API side.
type BillsService struct {
	repo     BillRepo
	receipts ReceiptStore
	notifier StatusNotifier
	logger   *zap.Logger
}

// NewBillsService builds the service.
func NewBillsService(repo BillRepo, receipts ReceiptStore, notifier StatusNotifier, logger *zap.Logger) *BillsService {
	return &BillsService{repo: repo, receipts: receipts, notifier: notifier, logger: logger}
}

// CreateFromUpload stores the receipt and creates the stub bill the web
// app later fills in with Update. Returns the stub with its generated key.
func (s *BillsService) CreateFromUpload(ctx context.Context, email, fileName string, content []byte) (*models.Bill, error) {
	id := newID()
	fileURL, err := s.receipts.Save(ctx, id+"-"+fileName, content)
	if err != nil {
		return nil, err
	}

	bill := &models.Bill{
		ID:       id,
		Email:    email,
		FileURL:  fileURL,
		FileName: fileName,
		Status:   models.StatusPending,
	}
	if err := s.repo.Create(ctx, bill); err != nil {
		return nil, err
	}

	s.logger.Info("receipt stored", zap.String("bill_id", id), zap.String("email", email))
	return bill, nil
}

// Update commits the metadata onto an uploaded bill. Employees can only
// write their own records; the caller enforces that by forcing email.
func (s *BillsService) Update(ctx context.Context, id string, data models.Bill) (*models.Bill, error) {
	data.ID = id
	if data.Status == "" {
		data.Status = models.StatusPending
	}
	return s.repo.Update(ctx, &data)
}

// SetStatus moves a bill through the review workflow and notifies
// watchers.
func (s *BillsService) SetStatus(ctx context.Context, id, status string) (*models.Bill, error) {
	switch status {
	case models.StatusPending, models.StatusAccepted, models.StatusRefused:
	default:
		return nil, ErrBadStatus
	}

	bill, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.NotifyStatusChange(*bill)
	}
	return bill, nil
}

// List returns the caller's bills; admins see everything.
func (s *BillsService) List(ctx context.Context, email, role string) ([]models.Bill, error) {
	if role == models.RoleAdmin {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByEmail(ctx, email)
}

func newID() string {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
