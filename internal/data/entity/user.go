package entity

// User is an account. Email is always stored normalized (trimmed, lowercased).
type User struct {
	Base
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
