package entity

import (
	"time"
)

// User is a registered shopper.
// Passwords are kept as typed; the store offers no credential security.
// Email is unique among users, checked at registration time only.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Password     string    `json:"password"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// Session is the reduced projection of User written on login.
// It is overwritten by the next login and never expires on its own.
type Session struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionFor projects u into a Session.
func SessionFor(u *User) Session {
	return Session{ID: u.ID, Name: u.Name, Email: u.Email}
}
