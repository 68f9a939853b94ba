package web

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"billed/internal/containers"
	"billed/internal/forms"
	"billed/internal/models"
	"billed/internal/routes"
	"billed/internal/session"
	"billed/internal/store"
	"billed/internal/views"
)

const maxUploadBytes = 10 << 20

// Handlers bridges HTTP requests to the per-tab router and containers.
type Handlers struct {
	sessions session.Sessions
	tabs     *tabRegistry
	views    *views.Renderer
	auth     *store.Client
	logger   *zap.Logger
}

// NewHandlers builds the web handler set.
func NewHandlers(sessions session.Sessions, tabs *tabRegistry, renderer *views.Renderer, auth *store.Client, logger *zap.Logger) *Handlers {
	return &Handlers{
		sessions: sessions,
		tabs:     tabs,
		views:    renderer,
		auth:     auth,
		logger:   logger,
	}
}

// Page serves a logical path through the tab's router. Back/forward hits
// the same URL again and resolves to the identical view.
func (h *Handlers) Page(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := ensureSID(w, r)
		rtr := h.tabs.routerFor(sid)
		rtr.Navigate(r.Context(), path)
		writeHTML(w, http.StatusOK, rtr.Mount().HTML())
	}
}

// PageFromURL resolves the browser address to its logical path. Unknown
// addresses fall through to the router's not-found view.
func (h *Handlers) PageFromURL(w http.ResponseWriter, r *http.Request) {
	h.Page(routes.FromURL(r.URL.Path))(w, r)
}

// Login handles POST /login: exchanges credentials at the API, saves the
// identity and token into the tab session, then lands on the role's page.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	sid := ensureSID(w, r)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		h.logger.Warn("login rejected", zap.String("email", email), zap.Error(err))
		html, rerr := h.views.Login("Identifiants invalides")
		if rerr != nil {
			writeError(w, http.StatusInternalServerError, "render failed")
			return
		}
		writeHTML(w, http.StatusUnauthorized, html)
		return
	}

	scope := h.sessions.Scope(sid)
	if err := session.SaveUser(r.Context(), scope, result.User); err != nil {
		h.logger.Error("failed to persist session user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "session unavailable")
		return
	}
	if err := scope.SetItem(r.Context(), session.TokenKey, result.Token); err != nil {
		h.logger.Error("failed to persist session token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	target := routes.Bills
	if result.User.Type == models.RoleAdmin {
		target = routes.Dashboard
	}
	http.Redirect(w, r, routes.URL(target), http.StatusSeeOther)
}

// Upload handles the immediate receipt upload fired on file selection.
// It responds with the accumulated draft so the form page can carry on.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	sid := ensureSID(w, r)
	rtr := h.tabs.routerFor(sid)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
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

	ev := containers.ChangeFileEvent{
		Path: header.Filename,
		File: store.File{Name: header.Filename, Content: content},
	}
	if err := rtr.NewBill().HandleChangeFile(r.Context(), ev); err != nil {
		if errors.Is(err, session.ErrNoItem) {
			writeError(w, http.StatusUnauthorized, "no session")
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	fileURL, fileName, billID := rtr.NewBill().Draft()
	writeJSON(w, http.StatusOK, map[string]string{
		"fileUrl":  fileURL,
		"fileName": fileName,
		"billId":   billID,
	})
}

// Submit handles the form confirmation. An invalid form re-renders in
// place; everything else lands back on the bills list, whatever the
// store said.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	sid := ensureSID(w, r)
	rtr := h.tabs.routerFor(sid)

	values, err := formValues(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	form, err := forms.NewBillFormFromValues(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := rtr.NewBill().HandleSubmit(r.Context(), form); err != nil {
		if errors.Is(err, containers.ErrInvalidForm) {
			html, rerr := h.views.NewBill()
			if rerr != nil {
				writeError(w, http.StatusInternalServerError, "render failed")
				return
			}
			writeHTML(w, http.StatusUnprocessableEntity, html)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	http.Redirect(w, r, routes.URL(rtr.Mount().Path()), http.StatusSeeOther)
}

// Logout clears the tab session and forgets the tab's router, so a later
// login starts with a fresh mount and no leftover upload draft.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	sid := ensureSID(w, r)
	scope := h.sessions.Scope(sid)
	_ = scope.RemoveItem(r.Context(), session.UserKey)
	_ = scope.RemoveItem(r.Context(), session.TokenKey)
	h.tabs.drop(sid)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// formValues flattens the submitted form. The file part, when re-posted
// by the browser, only contributes its filename; the upload itself went
// through Upload already.
func formValues(r *http.Request) (map[string]string, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, err
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, err
	}

	values := make(map[string]string)
	for key, vals := range r.PostForm {
		if len(vals) > 0 {
			values[key] = vals[0]
		}
	}
	if r.MultipartForm != nil {
		for key, files := range r.MultipartForm.File {
			if len(files) > 0 {
				values[key] = files[0].Filename
			}
		}
	}
	return values, nil
}
