package item

import "context"

// Repository defines the persistence contract for item listings.
type Repository interface {
	// Save inserts a new item and assigns its id.
	Save(ctx context.Context, i *Item) error

	// Update persists changes to an existing item.
	Update(ctx context.Context, i *Item) error

	// FindByID retrieves an item by id.
	FindByID(ctx context.Context, id int64) (*Item, error)

	// FindAllByOwnerID retrieves every item listed by the given owner.
	FindAllByOwnerID(ctx context.Context, ownerID int64) ([]*Item, error)

	// FindByRequestIDIn retrieves items answering any of the given item
	// requests.
	FindByRequestIDIn(ctx context.Context, requestIDs []int64) ([]*Item, error)

	// SearchAvailable retrieves available items whose name or description
	// contains text, case-insensitively.
	SearchAvailable(ctx context.Context, text string) ([]*Item, error)
}

// CommentRepository defines the persistence contract for item comments.
type CommentRepository interface {
	// Save inserts a new comment and assigns its id.
	Save(ctx context.Context, c *Comment) error

	// FindByItemID retrieves all comments on the given item.
	FindByItemID(ctx context.Context, itemID int64) ([]*Comment, error)

	// FindByItemIDIn retrieves all comments on any of the given items.
	FindByItemIDIn(ctx context.Context, itemIDs []int64) ([]*Comment, error)
}
