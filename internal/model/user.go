package model

// User represents an application user as stored in the `users` table. The
// username is the immutable primary key. The bcrypt password hash lives only
// in the repository layer and is never part of this struct, so it cannot
// leak through JSON serialization by accident.
type User struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
}
