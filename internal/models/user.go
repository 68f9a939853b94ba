package models

// User roles recognised by the router allow-list.
const (
	RoleEmployee = "Employee"
	RoleAdmin    = "Admin"
)

// User is the identity kept in the session under the "user" key.
type User struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}
