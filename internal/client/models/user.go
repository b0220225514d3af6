// Package models defines the data the client exchanges with the booking API
// and keeps in its session store.
package models

// User is the profile returned with a freshly issued session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Credentials is the session token and the user it belongs to. Both halves
// are always present together.
type Credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (c Credentials) Valid() bool {
	return c.Token != "" && c.User != (User{})
}
