package application

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/loopmarket/service-rental/internal/domain/user"
	"github.com/loopmarket/service-rental/internal/pkg/apperrors"
)

// CreateUserRequest holds the data needed to register a user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserRequest holds a partial user update. Nil fields are left
// untouched.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserService manages user accounts.
type UserService struct {
	users  user.Repository
	logger *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(users user.Repository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Create registers a new user. Emails are unique case-insensitively; a
// duplicate fails with Conflict.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserView, error) {
	u, err := user.NewUser(req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsByEmail(ctx, u.Email())
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if taken {
		return nil, apperrors.NewConflict("email %s is already registered", u.Email())
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("user registered", zap.Int64("user_id", u.ID()))

	view := toUserView(u)
	return &view, nil
}

// Update applies a partial update. Changing the email re-checks uniqueness
// against everyone else.
func (s *UserService) Update(ctx context.Context, userID int64, req UpdateUserRequest) (*UserView, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := u.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Email != nil && !strings.EqualFold(*req.Email, u.Email()) {
		taken, err := s.users.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if taken {
			return nil, apperrors.NewConflict("email %s is already registered", *req.Email)
		}
		if err := u.ChangeEmail(*req.Email); err != nil {
			return nil, err
		}
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	view := toUserView(u)
	return &view, nil
}

// GetByID returns a single user.
func (s *UserService) GetByID(ctx context.Context, userID int64) (*UserView, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := toUserView(u)
	return &view, nil
}

// List returns every registered user.
func (s *UserService) List(ctx context.Context) ([]UserView, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	views := make([]UserView, len(users))
	for i, u := range users {
		views[i] = toUserView(u)
	}
	return views, nil
}

// Delete removes a user account.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.Info("user deleted", zap.Int64("user_id", userID))
	return nil
}
