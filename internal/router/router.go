// Package router maps logical paths to rendered views and keeps exactly
// one view mounted at a time.
package router

import (
	"context"

	"go.uber.org/zap"

	"billed/internal/containers"
	"billed/internal/format"
	"billed/internal/models"
	"billed/internal/routes"
	"billed/internal/session"
	"billed/internal/store"
	"billed/internal/views"
)

// allowlist maps each logical path to the roles permitted to mount it.
var allowlist = map[string][]string{
	routes.Bills:     {models.RoleEmployee},
	routes.NewBill:   {models.RoleEmployee},
	routes.Dashboard: {models.RoleAdmin},
}

// icons per view; empty means no nav marker.
var icons = map[string]string{
	routes.Bills:   "icon-window",
	routes.NewBill: "icon-mail",
}

// Deps collects what the router wires into its containers.
type Deps struct {
	Sessions session.Store
	Store    store.Store
	Views    *views.Renderer
	Logger   *zap.Logger
}

// Router resolves in-app navigation for one tab session.
type Router struct {
	sessions session.Store
	store    store.Store
	views    *views.Renderer
	logger   *zap.Logger
	mount    Mount

	bills   *containers.Bills
	newBill *containers.NewBill
}

// New builds a router and its two containers. The containers get the
// router's own Navigate as their navigation callback.
func New(deps Deps) *Router {
	r := &Router{
		sessions: deps.Sessions,
		store:    deps.Store,
		views:    deps.Views,
		logger:   deps.Logger,
	}
	r.bills = containers.NewBills(deps.Store, r.Navigate, deps.Logger)
	r.newBill = containers.NewNewBill(deps.Store, deps.Sessions, r.Navigate, deps.Logger)
	return r
}

// Mount exposes the mount point.
func (r *Router) Mount() *Mount { return &r.mount }

// Bills exposes the bills container.
func (r *Router) Bills() *containers.Bills { return r.bills }

// NewBill exposes the new bill container.
func (r *Router) NewBill() *containers.NewBill { return r.newBill }

// Navigate clears the mount point and mounts the view for path. No session
// redirects to the login view whatever the path; a role outside the
// allow-list gets the forbidden view; unknown paths get the 404 view.
// Nothing escapes this boundary: failures render as in-page messages.
func (r *Router) Navigate(ctx context.Context, path string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("navigation panicked", zap.String("path", path), zap.Any("panic", rec))
			r.mountView(path, "", func() (string, error) { return r.views.Error("Erreur 500") })
		}
	}()

	r.mount.clear()

	user, err := session.CurrentUser(ctx, r.sessions)
	if err != nil {
		r.mountView(routes.Login, "", func() (string, error) { return r.views.Login("") })
		return
	}

	if roles, guarded := allowlist[path]; guarded && !roleAllowed(roles, user.Type) {
		r.mountView(path, "", func() (string, error) { return r.views.Error("Erreur 403") })
		return
	}

	switch path {
	case routes.Login:
		r.mountView(path, "", func() (string, error) { return r.views.Login("") })
	case routes.Bills:
		rows, err := r.bills.GetBills(ctx)
		if err != nil {
			r.mountView(path, "", func() (string, error) { return r.views.Error(err.Error()) })
			return
		}
		r.mountView(path, icons[path], func() (string, error) { return r.views.Bills(rows) })
	case routes.NewBill:
		r.mountView(path, icons[path], func() (string, error) { return r.views.NewBill() })
	case routes.Dashboard:
		groups, err := r.dashboardGroups(ctx)
		if err != nil {
			r.mountView(path, "", func() (string, error) { return r.views.Error(err.Error()) })
			return
		}
		r.mountView(path, icons[path], func() (string, error) { return r.views.Dashboard(groups) })
	default:
		r.mountView(path, "", func() (string, error) { return r.views.NotFound() })
	}
}

// OnLocationChange re-resolves the recorded path after a history
// notification. The result is identical to an explicit Navigate call.
func (r *Router) OnLocationChange(ctx context.Context) {
	path := r.mount.Path()
	if path == "" {
		path = routes.Login
	}
	r.Navigate(ctx, path)
}

// mountView renders and mounts; the icon marker is only set when the
// intended view rendered, so an error page never claims a nav highlight.
func (r *Router) mountView(path, activeIcon string, render func() (string, error)) {
	html, err := render()
	if err != nil {
		r.logger.Error("view render failed", zap.String("path", path), zap.Error(err))
		html = "Erreur 500"
		activeIcon = ""
	}
	r.mount.set(path, html, activeIcon)
}

func (r *Router) dashboardGroups(ctx context.Context) ([]views.StatusGroup, error) {
	if r.store == nil {
		return nil, nil
	}
	bills, err := r.store.Bills().List(ctx)
	if err != nil {
		return nil, err
	}

	byStatus := map[string][]models.Bill{}
	for _, bill := range bills {
		byStatus[bill.Status] = append(byStatus[bill.Status], bill)
	}

	groups := make([]views.StatusGroup, 0, 3)
	for _, status := range []string{models.StatusPending, models.StatusAccepted, models.StatusRefused} {
		groups = append(groups, views.StatusGroup{
			Status: status,
			Label:  format.Status(status),
			Bills:  byStatus[status],
		})
	}
	return groups, nil
}

func roleAllowed(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
