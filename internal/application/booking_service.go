package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/loopmarket/service-rental/internal/domain/booking"
	"github.com/loopmarket/service-rental/internal/domain/item"
	"github.com/loopmarket/service-rental/internal/domain/user"
	"github.com/loopmarket/service-rental/internal/events"
	"github.com/loopmarket/service-rental/internal/pkg/apperrors"
)

// StateAll is the listByOwner filter value selecting every status.
const StateAll = "ALL"

// CreateBookingRequest holds the data needed to place a new booking.
type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// BookingService owns the booking lifecycle: creation, the single
// owner-driven approve/reject transition, and booking reads. It is the only
// writer of booking status.
type BookingService struct {
	bookings  booking.Repository
	items     item.Repository
	users     user.Repository
	publisher *events.Publisher
	logger    *zap.Logger
}

// NewBookingService creates a BookingService.
func NewBookingService(
	bookings booking.Repository,
	items item.Repository,
	users user.Repository,
	publisher *events.Publisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		items:     items,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// Create places a new WAITING booking for the requester. Preconditions run
// in a fixed order, first failure wins: booker exists, item exists, the
// requester is not the item's owner, the item is available, start < end,
// both dates in the future.
//
// An owner booking their own item gets NotFound rather than Forbidden; the
// API has always hidden the item's existence on that path and clients
// depend on the status.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest, requesterID int64) (*BookingView, error) {
	booker, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	itm, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if itm.IsOwnedBy(requesterID) {
		return nil, apperrors.NewNotFound("owner can't book own item")
	}

	b, err := booking.NewBooking(itm, booker, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", b.ID()),
		zap.Int64("item_id", itm.ID()),
		zap.Int64("booker_id", requesterID),
	)
	s.publisher.BookingCreated(ctx, b)

	view := toBookingView(b)
	return &view, nil
}

// GetByID returns a booking to exactly two actors: the booker and the
// item's owner. Anyone else gets AccessDenied.
func (s *BookingService) GetByID(ctx context.Context, bookingID, requesterID int64) (*BookingView, error) {
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !b.IsBookedBy(requesterID) && !b.IsOwnedBy(requesterID) {
		return nil, apperrors.NewAccessDenied("access denied")
	}

	view := toBookingView(b)
	return &view, nil
}

// Approve resolves a WAITING booking to APPROVED or REJECTED. Only the
// item's owner may call it, and only the first resolution ever succeeds.
// The status write goes through the repository's compare-and-set so two
// racing resolutions serialize: the loser observes a non-WAITING booking
// and fails with BadRequest.
func (s *BookingService) Approve(ctx context.Context, bookingID, ownerID int64, approved bool) (*BookingView, error) {
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !b.IsOwnedBy(ownerID) {
		s.logger.Warn("approve attempt by non-owner",
			zap.Int64("booking_id", bookingID),
			zap.Int64("caller_id", ownerID),
		)
		return nil, apperrors.NewForbidden("only owner can approve bookings")
	}

	if err := b.Resolve(approved); err != nil {
		return nil, err
	}

	applied, err := s.bookings.UpdateStatusIfWaiting(ctx, b.ID(), b.Status())
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	if !applied {
		// Lost the race against a concurrent resolution.
		return nil, apperrors.NewBadRequest("booking already processed")
	}

	s.logger.Info("booking resolved",
		zap.Int64("booking_id", b.ID()),
		zap.String("status", b.Status().String()),
	)
	s.publisher.BookingResolved(ctx, b)

	view := toBookingView(b)
	return &view, nil
}

// ListByBooker returns all bookings created by the user, most recent start
// first.
func (s *BookingService) ListByBooker(ctx context.Context, userID int64) ([]BookingView, error) {
	bookings, err := s.bookings.FindByBookerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by booker: %w", err)
	}
	return toBookingViews(bookings), nil
}

// ListByOwner returns bookings on any of the owner's items, optionally
// filtered by status, most recent start first. An owner without items gets
// NotFound; an unrecognized state filter gets BadRequest.
func (s *BookingService) ListByOwner(ctx context.Context, ownerID int64, state string) ([]BookingView, error) {
	items, err := s.items.FindAllByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner items: %w", err)
	}
	if len(items) == 0 {
		return nil, apperrors.NewNotFound("user has no items")
	}

	itemIDs := make([]int64, len(items))
	for i, itm := range items {
		itemIDs[i] = itm.ID()
	}

	var bookings []*booking.Booking
	if strings.EqualFold(state, StateAll) {
		bookings, err = s.bookings.FindByItemIDIn(ctx, itemIDs)
		if err == nil {
			sort.Slice(bookings, func(i, j int) bool {
				return bookings[i].Start().After(bookings[j].Start())
			})
		}
	} else {
		status, parseErr := booking.ParseStatus(strings.ToUpper(state))
		if parseErr != nil {
			return nil, apperrors.NewBadRequest("unknown booking state: %s", state)
		}
		bookings, err = s.bookings.FindByItemIDInAndStatus(ctx, itemIDs, status)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by owner: %w", err)
	}

	return toBookingViews(bookings), nil
}
