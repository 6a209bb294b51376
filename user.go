package valutatrade

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 4

// User is a registered account. The password is stored as a bcrypt hash.
type User struct {
	ID               int       `json:"user_id"`
	Username         string    `json:"username"`
	HashedPassword   string    `json:"hashed_password"`
	RegistrationDate time.Time `json:"registration_date"`
}

// NewUser creates a user with a freshly hashed password.
func NewUser(id int, username, password string) (User, error) {
	if username == "" {
		return User{}, &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if len(password) < minPasswordLen {
		return User{}, &ValidationError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", minPasswordLen)}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("cannot hash password: %w", err)
	}
	return User{
		ID:               id,
		Username:         username,
		HashedPassword:   string(hash),
		RegistrationDate: time.Now().UTC(),
	}, nil
}

// VerifyPassword reports whether the password matches the stored hash.
func (u User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) == nil
}

// Info returns a one-line account description.
func (u User) Info() string {
	return fmt.Sprintf("ID: %d, User: %s, Reg: %s", u.ID, u.Username, u.RegistrationDate.Format(time.RFC3339))
}
