package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"

	"go.uber.org/zap"

	"billed/internal/api/middleware"
	"billed/internal/api/repository"
	"billed/internal/api/service"
	"billed/internal/models"
)

const maxReceiptBytes = 10 << 20

// BillHandlers serves the /bills resource.
type BillHandlers struct {
	svc    *service.BillsService
	logger *zap.Logger
}

// NewBillHandlers returns handler struct.
func NewBillHandlers(svc *service.BillsService, logger *zap.Logger) *BillHandlers {
	return &BillHandlers{svc: svc, logger: logger}
}

// Collection serves GET /bills (list) and POST /bills (receipt upload).
func (h *BillHandlers) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Item serves PUT /bills/{id} and PATCH /bills/{id}/status.
func (h *BillHandlers) Item(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/bills/"), "/")
	id, action := rest, ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		id, action = rest[:i], rest[i+1:]
	}
	if id == "" {
		writeError(w, http.StatusNotFound, "bill id missing")
		return
	}

	switch {
	case r.Method == http.MethodPut && action == "":
		h.update(w, r, id)
	case r.Method == http.MethodPatch && action == "status":
		h.setStatus(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "no such operation")
	}
}

func (h *BillHandlers) list(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	bills, err := h.svc.List(r.Context(), claims.Email, claims.Role)
	if err != nil {
		h.logger.Error("list bills failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list bills")
		return
	}
	if bills == nil {
		bills = []models.Bill{}
	}
	writeJSON(w, http.StatusOK, bills)
}

func (h *BillHandlers) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxReceiptBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file part missing")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable file part")
		return
	}

	bill, err := h.svc.CreateFromUpload(r.Context(), claims.Email, path.Base(header.Filename), content)
	if err != nil {
		h.logger.Error("receipt upload failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store receipt")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"fileUrl": bill.FileURL,
		"key":     bill.ID,
	})
}

func (h *BillHandlers) update(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var data models.Bill
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if claims.Role != models.RoleAdmin {
		data.Email = claims.Email
	}

	updated, err := h.svc.Update(r.Context(), id, data)
	if err != nil {
		if errors.Is(err, repository.ErrBillNotFound) {
			writeError(w, http.StatusNotFound, "bill not found")
			return
		}
		h.logger.Error("bill update failed", zap.String("bill_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update bill")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *BillHandlers) setStatus(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.Role != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin only")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	bill, err := h.svc.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadStatus):
			writeError(w, http.StatusBadRequest, "unknown status")
		case errors.Is(err, repository.ErrBillNotFound):
			writeError(w, http.StatusNotFound, "bill not found")
		default:
			h.logger.Error("status change failed", zap.String("bill_id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to change status")
		}
		return
	}
	writeJSON(w, http.StatusOK, bill)
}
