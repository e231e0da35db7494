package request

import (
	"strings"
	"time"

	"github.com/loopmarket/service-rental/internal/domain/user"
	"github.com/loopmarket/service-rental/internal/pkg/apperrors"
)

// ItemRequest is a wish for an item that does not exist yet. Other users can
// answer it by listing an item that references the request.
type ItemRequest struct {
	id        int64
	desc      string
	requestor *user.User
	created   time.Time
}

// NewItemRequest creates a request by the given user.
func NewItemRequest(description string, requestor *user.User) (*ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.NewBadRequest("request description must not be blank")
	}
	if requestor == nil {
		return nil, apperrors.NewBadRequest("request requestor is required")
	}

	return &ItemRequest{
		desc:      description,
		requestor: requestor,
		created:   time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds an ItemRequest from persistence data.
func Reconstruct(id int64, description string, requestor *user.User, created time.Time) *ItemRequest {
	return &ItemRequest{id: id, desc: description, requestor: requestor, created: created}
}

// ID returns the request's unique identifier.
func (r *ItemRequest) ID() int64 { return r.id }

// Description returns what the requestor is looking for.
func (r *ItemRequest) Description() string { return r.desc }

// Requestor returns the user who posted the request.
func (r *ItemRequest) Requestor() *user.User { return r.requestor }

// Created returns the request timestamp.
func (r *ItemRequest) Created() time.Time { return r.created }

// SetID assigns the persistence-generated identifier.
func (r *ItemRequest) SetID(id int64) { r.id = id }
