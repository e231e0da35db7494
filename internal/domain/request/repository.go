package request

import "context"

// Repository defines the persistence contract for item requests.
type Repository interface {
	// Save inserts a new request and assigns its id.
	Save(ctx context.Context, r *ItemRequest) error

	// FindByID retrieves a request by id.
	FindByID(ctx context.Context, id int64) (*ItemRequest, error)

	// FindAllByRequestorID retrieves the user's own requests, newest first.
	FindAllByRequestorID(ctx context.Context, requestorID int64) ([]*ItemRequest, error)

	// FindByRequestorIDNot retrieves other users' requests, newest first,
	// with offset/limit paging.
	FindByRequestorIDNot(ctx context.Context, requestorID int64, offset, limit int) ([]*ItemRequest, error)
}
