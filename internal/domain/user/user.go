package user

import (
	"strings"
	"time"

	"github.com/loopmarket/service-rental/internal/pkg/apperrors"
)

// User is the aggregate root for a registered account.
type User struct {
	id        int64
	name      string
	email     string
	createdAt time.Time
}

// NewUser creates a new user with validated fields. The id is assigned by the
// repository on first save.
func NewUser(name, email string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewBadRequest("user name must not be blank")
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.NewBadRequest("user email must not be blank")
	}
	if !strings.Contains(email, "@") {
		return nil, apperrors.NewBadRequest("user email must be valid")
	}

	return &User{
		name:      name,
		email:     email,
		createdAt: time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id int64, name, email string, createdAt time.Time) *User {
	return &User{id: id, name: name, email: email, createdAt: createdAt}
}

// ID returns the user's unique identifier.
func (u *User) ID() int64 { return u.id }

// Name returns the display name.
func (u *User) Name() string { return u.name }

// Email returns the account email.
func (u *User) Email() string { return u.email }

// CreatedAt returns the registration timestamp.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// SetID assigns the persistence-generated identifier. Called once by the
// repository after insert.
func (u *User) SetID(id int64) { u.id = id }

// Rename changes the display name.
func (u *User) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewBadRequest("user name must not be blank")
	}
	u.name = name
	return nil
}

// ChangeEmail changes the account email. Uniqueness is the service's concern.
func (u *User) ChangeEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return apperrors.NewBadRequest("user email must be valid")
	}
	u.email = email
	return nil
}
