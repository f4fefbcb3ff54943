package model

const (
	RoleUser    = "USER"
	RoleAdmin   = "ADMIN"
	RoleFaculty = "FACULTY"
	RoleStudent = "STUDENT"
)

// User document fields.
const (
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldRole      = "role"
)

// SessionUser is the identifying snapshot kept for a session. It is copied
// at sign-in and does not follow later updates to the user document.
type SessionUser struct {
	ID        string `json:"_id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
}

func SnapshotOf(user Document) SessionUser {
	return SessionUser{
		ID:        user.ID(),
		Username:  user.String(FieldUsername),
		FirstName: user.String(FieldFirstName),
		LastName:  user.String(FieldLastName),
		Email:     user.String(FieldEmail),
		Role:      user.String(FieldRole),
	}
}
