package booking

import (
	"time"

	"github.com/loopmarket/service-rental/internal/domain/item"
	"github.com/loopmarket/service-rental/internal/domain/user"
	"github.com/loopmarket/service-rental/internal/pkg/apperrors"
)

// Booking is the aggregate root for a reservation of an item over a time
// window. It is created WAITING by the booker and resolved exactly once by
// the item's owner; item, booker and the window are immutable afterwards.
type Booking struct {
	id     int64
	start  time.Time
	end    time.Time
	itm    *item.Item
	booker *user.User
	status Status
}

// NewBooking creates a WAITING booking after validating the item's
// availability and the time window. Checks run in a fixed order so the first
// violated rule determines the reported error: availability, then range,
// then future-dating. The no-self-booking rule is checked by the service
// before this constructor because it reports NotFound, not BadRequest.
func NewBooking(itm *item.Item, booker *user.User, start, end time.Time) (*Booking, error) {
	if !itm.Available() {
		return nil, apperrors.NewBadRequest("item is unavailable")
	}
	if !start.Before(end) {
		return nil, apperrors.NewBadRequest("start must be before end")
	}
	now := time.Now()
	if !start.After(now) || !end.After(now) {
		return nil, apperrors.NewBadRequest("booking dates must be in the future")
	}

	return &Booking{
		start:  start,
		end:    end,
		itm:    itm,
		booker: booker,
		status: StatusWaiting,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(id int64, start, end time.Time, itm *item.Item, booker *user.User, status Status) *Booking {
	return &Booking{
		id:     id,
		start:  start,
		end:    end,
		itm:    itm,
		booker: booker,
		status: status,
	}
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() int64 { return b.id }

// Start returns the beginning of the booked window.
func (b *Booking) Start() time.Time { return b.start }

// End returns the end of the booked window.
func (b *Booking) End() time.Time { return b.end }

// Item returns the booked item.
func (b *Booking) Item() *item.Item { return b.itm }

// Booker returns the user who requested the booking.
func (b *Booking) Booker() *user.User { return b.booker }

// Status returns the current lifecycle status.
func (b *Booking) Status() Status { return b.status }

// SetID assigns the persistence-generated identifier.
func (b *Booking) SetID(id int64) { b.id = id }

// IsBookedBy reports whether the given user created this booking.
func (b *Booking) IsBookedBy(userID int64) bool {
	return b.booker != nil && b.booker.ID() == userID
}

// IsOwnedBy reports whether the given user owns the booked item.
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.itm != nil && b.itm.IsOwnedBy(userID)
}

// Resolve transitions the booking from WAITING to APPROVED or REJECTED.
// This is the only status mutation a booking ever undergoes; a booking that
// was already resolved reports BadRequest.
func (b *Booking) Resolve(approved bool) error {
	target := StatusRejected
	if approved {
		target = StatusApproved
	}
	if !b.status.CanTransitionTo(target) {
		return apperrors.NewBadRequest("booking already processed")
	}
	b.status = target
	return nil
}
