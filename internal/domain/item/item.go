package item

import (
	"strings"

	"github.com/loopmarket/service-rental/internal/domain/user"
	"github.com/loopmarket/service-rental/internal/pkg/apperrors"
)

// Item is the aggregate root for a listed, shareable item.
type Item struct {
	id          int64
	name        string
	description string
	available   bool
	owner       *user.User
	requestID   *int64
}

// NewItem creates a new item listing. requestID links the listing to the item
// request it answers, if any.
func NewItem(name, description string, available bool, owner *user.User, requestID *int64) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewBadRequest("item name must not be blank")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.NewBadRequest("item description must not be blank")
	}
	if owner == nil {
		return nil, apperrors.NewBadRequest("item owner is required")
	}

	return &Item{
		name:        name,
		description: description,
		available:   available,
		owner:       owner,
		requestID:   requestID,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(id int64, name, description string, available bool, owner *user.User, requestID *int64) *Item {
	return &Item{
		id:          id,
		name:        name,
		description: description,
		available:   available,
		owner:       owner,
		requestID:   requestID,
	}
}

// ID returns the item's unique identifier.
func (i *Item) ID() int64 { return i.id }

// Name returns the listing name.
func (i *Item) Name() string { return i.name }

// Description returns the listing description.
func (i *Item) Description() string { return i.description }

// Available reports whether the item can currently be booked.
func (i *Item) Available() bool { return i.available }

// Owner returns the listing owner.
func (i *Item) Owner() *user.User { return i.owner }

// RequestID returns the id of the item request this listing answers, or nil.
func (i *Item) RequestID() *int64 { return i.requestID }

// SetID assigns the persistence-generated identifier.
func (i *Item) SetID(id int64) { i.id = id }

// IsOwnedBy reports whether the given user owns this item.
func (i *Item) IsOwnedBy(userID int64) bool {
	return i.owner != nil && i.owner.ID() == userID
}

// Rename changes the listing name.
func (i *Item) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewBadRequest("item name must not be blank")
	}
	i.name = name
	return nil
}

// Redescribe changes the listing description.
func (i *Item) Redescribe(description string) error {
	if strings.TrimSpace(description) == "" {
		return apperrors.NewBadRequest("item description must not be blank")
	}
	i.description = description
	return nil
}

// SetAvailable toggles whether the item can be booked.
func (i *Item) SetAvailable(available bool) {
	i.available = available
}
