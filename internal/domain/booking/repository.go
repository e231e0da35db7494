package booking

import (
	"context"
	"time"
)

// Repository defines the persistence contract for booking aggregates. The
// store is passive: all lifecycle rules live in the aggregate and the
// booking service.
type Repository interface {
	// Save inserts a new booking and assigns its id.
	Save(ctx context.Context, b *Booking) error

	// FindByID retrieves a booking by id.
	FindByID(ctx context.Context, id int64) (*Booking, error)

	// FindByBookerID retrieves all bookings created by the given user,
	// ordered by start descending.
	FindByBookerID(ctx context.Context, bookerID int64) ([]*Booking, error)

	// FindByItemIDIn retrieves all bookings for any of the given items.
	FindByItemIDIn(ctx context.Context, itemIDs []int64) ([]*Booking, error)

	// FindByItemIDInAndStatus retrieves bookings for any of the given items
	// with the given status, ordered by start descending.
	FindByItemIDInAndStatus(ctx context.Context, itemIDs []int64, status Status) ([]*Booking, error)

	// FindLastApprovedBefore retrieves the approved booking for the item
	// with the latest start strictly before now, or nil if none exists.
	FindLastApprovedBefore(ctx context.Context, itemID int64, now time.Time) (*Booking, error)

	// FindNextApprovedAfter retrieves the approved booking for the item
	// with the earliest start strictly after now, or nil if none exists.
	FindNextApprovedAfter(ctx context.Context, itemID int64, now time.Time) (*Booking, error)

	// ExistsCompletedApproved reports whether the user has an approved
	// booking on the item that ended at or before now.
	ExistsCompletedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)

	// UpdateStatusIfWaiting atomically sets the booking's status if and only
	// if it is currently WAITING, and reports whether the update applied.
	// This is the serialization point for concurrent approve/reject calls:
	// exactly one of two racing resolutions observes true.
	UpdateStatusIfWaiting(ctx context.Context, id int64, status Status) (bool, error)
}
