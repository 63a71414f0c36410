package models

// Role names seeded on startup.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// Role is a staff permission level.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User is a staff account that can log in to the till.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	RoleID      int64  `json:"roleId"`
	Role        string `json:"role"`
	Active      bool   `json:"active"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`

	// PasswordHash is never serialized.
	PasswordHash string `json:"-"`
}
