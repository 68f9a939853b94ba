// Package views renders page markup. Render calls are pure: data in,
// markup string out, no state kept between calls.
package views

import (
	"embed"
	"html/template"
	"sort"
	"strings"

	"billed/internal/models"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses all embedded templates once.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// BillRow is one display row of the bills table. Date holds the formatted
// value, RawDate the ISO value used for ordering.
type BillRow struct {
	Type    string
	Name    string
	Date    string
	RawDate string
	Amount  int
	Status  string
	FileURL string
}

// StatusGroup is one status section of the admin dashboard.
type StatusGroup struct {
	Status string
	Label  string
	Bills  []models.Bill
}

// Bills renders the employee bills list. Rows are displayed most recent
// first regardless of input order; that ordering is a rendering contract.
func (r *Renderer) Bills(rows []BillRow) (string, error) {
	sorted := make([]BillRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RawDate > sorted[j].RawDate
	})

	return r.execute("bills", struct {
		ActiveIcon string
		Rows       []BillRow
	}{ActiveIcon: "icon-window", Rows: sorted})
}

// NewBill renders the new bill form.
func (r *Renderer) NewBill() (string, error) {
	return r.execute("newbill", struct {
		ActiveIcon string
	}{ActiveIcon: "icon-mail"})
}

// Login renders the login page with an optional failure message.
func (r *Renderer) Login(errMsg string) (string, error) {
	return r.execute("login", struct {
		Error string
	}{Error: errMsg})
}

// Error renders the in-page error view with the verbatim message.
func (r *Renderer) Error(message string) (string, error) {
	return r.execute("error", struct {
		ActiveIcon string
		Message    string
	}{Message: message})
}

// NotFound renders the unknown-path page.
func (r *Renderer) NotFound() (string, error) {
	return r.execute("notfound", struct {
		ActiveIcon string
	}{})
}

// Loading renders the transient loading page.
func (r *Renderer) Loading() (string, error) {
	return r.execute("loading", struct {
		ActiveIcon string
	}{})
}

// Dashboard renders the admin validations page.
func (r *Renderer) Dashboard(groups []StatusGroup) (string, error) {
	return r.execute("dashboard", struct {
		ActiveIcon string
		Groups     []StatusGroup
	}{Groups: groups})
}

func (r *Renderer) execute(name string, data interface{}) (string, error) {
	var out strings.Builder
	if err := r.tmpl.ExecuteTemplate(&out, name, data); err != nil {
		return "", err
	}
	return out.String(), nil
}
