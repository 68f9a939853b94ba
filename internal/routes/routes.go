// Package routes names the logical navigation paths. Paths are route
// names, not URLs; the web layer maps them onto the address bar.
package routes

const (
	Login     = "Login"
	Bills     = "Bills"
	NewBill   = "NewBill"
	Dashboard = "Dashboard"
)

// URL returns the browser address for a logical path, so back/forward
// history re-resolves to the same view.
func URL(path string) string {
	switch path {
	case Bills:
		return "/bills"
	case NewBill:
		return "/bills/new"
	case Dashboard:
		return "/dashboard"
	default:
		return "/"
	}
}

// FromURL resolves a browser address back to its logical path.
func FromURL(url string) string {
	switch url {
	case "/bills":
		return Bills
	case "/bills/new":
		return NewBill
	case "/dashboard":
		return Dashboard
	case "/", "/login":
		return Login
	default:
		return url
	}
}
