package model

import "time"

// Roles stored in users.role.
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// User represents an application user record as stored in the `users`
// table. The profile columns (full name, age) live on the same row.
//
// Fields:
//
//	ID           – UUID primary key.
//	Email        – unique, lower-cased email address.
//	PasswordHash – bcrypt hash; never serialised.
//	FullName     – optional display name.
//	Age          – optional age.
//	Role         – CUSTOMER or ADMIN.
//	CreatedAt    – creation timestamp.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     *string   `json:"full_name"`
	Age          *int      `json:"age"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
