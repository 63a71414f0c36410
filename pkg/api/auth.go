package api

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type ListRolesRequest struct{}

type ListRolesResponse struct {
	Roles []*Role `json:"roles"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}

// SaveUserRequest inserts when User.ID is 0. Password is required on insert
// and, when empty on update, leaves the stored password unchanged.
type SaveUserRequest struct {
	User     *User  `json:"user"`
	Password string `json:"password,omitempty"`
}

type SaveUserResponse struct {
	ID int64 `json:"id"`
}

type DeleteUserRequest struct {
	UserID int64 `json:"userId"`
}

type DeleteUserResponse struct{}
