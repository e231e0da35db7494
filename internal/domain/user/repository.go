package user

import "context"

// Repository defines the persistence contract for user accounts.
type Repository interface {
	// Save inserts a new user and assigns its id.
	Save(ctx context.Context, u *User) error

	// Update persists changes to an existing user.
	Update(ctx context.Context, u *User) error

	// FindByID retrieves a user by id.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindAll retrieves every registered user.
	FindAll(ctx context.Context) ([]*User, error)

	// Delete removes a user by id. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id int64) error

	// ExistsByEmail reports whether any user has the given email,
	// case-insensitively.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
