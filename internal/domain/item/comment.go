package item

import (
	"strings"
	"time"

	"github.com/loopmarket/service-rental/internal/domain/user"
	"github.com/loopmarket/service-rental/internal/pkg/apperrors"
)

// Comment is feedback left on an item by a past renter. Eligibility (a
// completed approved booking) is enforced by the item service, not here.
type Comment struct {
	id      int64
	text    string
	itemID  int64
	author  *user.User
	created time.Time
}

// NewComment creates a comment by author on the given item.
func NewComment(text string, itemID int64, author *user.User) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewBadRequest("comment text must not be blank")
	}
	if author == nil {
		return nil, apperrors.NewBadRequest("comment author is required")
	}

	return &Comment{
		text:    text,
		itemID:  itemID,
		author:  author,
		created: time.Now().UTC(),
	}, nil
}

// ReconstructComment rebuilds a Comment from persistence data.
func ReconstructComment(id int64, text string, itemID int64, author *user.User, created time.Time) *Comment {
	return &Comment{id: id, text: text, itemID: itemID, author: author, created: created}
}

// ID returns the comment's unique identifier.
func (c *Comment) ID() int64 { return c.id }

// Text returns the comment body.
func (c *Comment) Text() string { return c.text }

// ItemID returns the id of the commented item.
func (c *Comment) ItemID() int64 { return c.itemID }

// Author returns the commenting user.
func (c *Comment) Author() *user.User { return c.author }

// Created returns the comment timestamp.
func (c *Comment) Created() time.Time { return c.created }

// SetID assigns the persistence-generated identifier.
func (c *Comment) SetID(id int64) { c.id = id }
