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
	"github.com/loopmarket/service-rental/internal/domain/request"
	"github.com/loopmarket/service-rental/internal/domain/user"
	"github.com/loopmarket/service-rental/internal/pkg/apperrors"
)

// CreateItemRequest holds the data needed to list a new item.
type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

// UpdateItemRequest holds a partial item update. Nil fields are left
// untouched.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// AddCommentRequest holds the body of a new item comment.
type AddCommentRequest struct {
	Text string `json:"text"`
}

// ItemService manages item listings, their comments, and the owner-facing
// projection of items with their nearest approved bookings.
type ItemService struct {
	items    item.Repository
	comments item.CommentRepository
	bookings booking.Repository
	users    user.Repository
	requests request.Repository
	logger   *zap.Logger
}

// NewItemService creates an ItemService.
func NewItemService(
	items item.Repository,
	comments item.CommentRepository,
	bookings booking.Repository,
	users user.Repository,
	requests request.Repository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		comments: comments,
		bookings: bookings,
		users:    users,
		requests: requests,
		logger:   logger,
	}
}

// Create lists a new item for the owner. When requestId is set, the item
// answers that item request, which must exist.
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest, ownerID int64) (*ItemView, error) {
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if req.Available == nil {
		return nil, apperrors.NewBadRequest("item availability must not be blank")
	}
	if req.RequestID != nil {
		if _, err := s.requests.FindByID(ctx, *req.RequestID); err != nil {
			return nil, err
		}
	}

	itm, err := item.NewItem(req.Name, req.Description, *req.Available, owner, req.RequestID)
	if err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, itm); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.Info("item created",
		zap.Int64("item_id", itm.ID()),
		zap.Int64("owner_id", ownerID),
	)

	view := toItemView(itm)
	return &view, nil
}

// Update applies a partial update to an item. Only the owner may update;
// anyone else gets NotFound, hiding the item's existence.
func (s *ItemService) Update(ctx context.Context, itemID, ownerID int64, req UpdateItemRequest) (*ItemView, error) {
	itm, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !itm.IsOwnedBy(ownerID) {
		return nil, apperrors.NewNotFound("only owner can update item")
	}

	if req.Name != nil {
		if err := itm.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if err := itm.Redescribe(*req.Description); err != nil {
			return nil, err
		}
	}
	if req.Available != nil {
		itm.SetAvailable(*req.Available)
	}

	if err := s.items.Update(ctx, itm); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	view := toItemView(itm)
	return &view, nil
}

// GetByID returns an item with its comments. The nearest past and future
// approved bookings are attached only when the requester owns the item;
// everyone else sees null for both.
func (s *ItemService) GetByID(ctx context.Context, itemID, requesterID int64) (*ItemWithBookingsView, error) {
	itm, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	var last, next *BookingShortView
	if itm.IsOwnedBy(requesterID) {
		now := time.Now()
		lastBooking, err := s.bookings.FindLastApprovedBefore(ctx, itemID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to load last booking: %w", err)
		}
		nextBooking, err := s.bookings.FindNextApprovedAfter(ctx, itemID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to load next booking: %w", err)
		}
		last = toBookingShortView(lastBooking)
		next = toBookingShortView(nextBooking)
	}

	view := toItemWithBookingsView(itm, last, next, toCommentViews(comments))
	return &view, nil
}

// ListByOwner returns all of the owner's items, each with its comments and
// nearest past and future approved bookings. Bookings and comments are
// loaded in two batch queries and grouped in memory, so the result matches
// what GetByID would return item by item.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]ItemWithBookingsView, error) {
	items, err := s.items.FindAllByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner items: %w", err)
	}
	if len(items) == 0 {
		return []ItemWithBookingsView{}, nil
	}

	itemIDs := make([]int64, len(items))
	for i, itm := range items {
		itemIDs[i] = itm.ID()
	}

	approved, err := s.bookings.FindByItemIDInAndStatus(ctx, itemIDs, booking.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to load approved bookings: %w", err)
	}
	comments, err := s.comments.FindByItemIDIn(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	bookingsByItem := make(map[int64][]*booking.Booking)
	for _, b := range approved {
		bookingsByItem[b.Item().ID()] = append(bookingsByItem[b.Item().ID()], b)
	}
	commentsByItem := make(map[int64][]*item.Comment)
	for _, c := range comments {
		commentsByItem[c.ItemID()] = append(commentsByItem[c.ItemID()], c)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID() < items[j].ID() })

	now := time.Now()
	views := make([]ItemWithBookingsView, len(items))
	for i, itm := range items {
		last := lastApprovedBooking(bookingsByItem[itm.ID()], now)
		next := nextApprovedBooking(bookingsByItem[itm.ID()], now)
		views[i] = toItemWithBookingsView(itm,
			toBookingShortView(last),
			toBookingShortView(next),
			toCommentViews(commentsByItem[itm.ID()]),
		)
	}
	return views, nil
}

// Search returns available items whose name or description contains text,
// case-insensitively. Blank text returns an empty result without touching
// the store.
func (s *ItemService) Search(ctx context.Context, text string) ([]ItemView, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemView{}, nil
	}

	items, err := s.items.SearchAvailable(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return toItemViews(items), nil
}

// AddComment leaves a comment on an item. The author must have an approved
// booking of the item that has already ended; without one the request fails
// with CommentNotAllowed.
func (s *ItemService) AddComment(ctx context.Context, itemID, authorID int64, req AddCommentRequest) (*CommentView, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	itm, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	eligible, err := s.bookings.ExistsCompletedApproved(ctx, authorID, itm.ID(), time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to check comment eligibility: %w", err)
	}
	if !eligible {
		return nil, apperrors.NewCommentNotAllowed("user has not completed a booking of this item")
	}

	comment, err := item.NewComment(req.Text, itm.ID(), author)
	if err != nil {
		return nil, err
	}

	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	s.logger.Info("comment added",
		zap.Int64("item_id", itm.ID()),
		zap.Int64("author_id", authorID),
	)

	view := toCommentView(comment)
	return &view, nil
}

// lastApprovedBooking picks the booking with the latest start strictly
// before now, or nil.
func lastApprovedBooking(bookings []*booking.Booking, now time.Time) *booking.Booking {
	var last *booking.Booking
	for _, b := range bookings {
		if !b.Start().Before(now) {
			continue
		}
		if last == nil || b.Start().After(last.Start()) {
			last = b
		}
	}
	return last
}

// nextApprovedBooking picks the booking with the earliest start strictly
// after now, or nil.
func nextApprovedBooking(bookings []*booking.Booking, now time.Time) *booking.Booking {
	var next *booking.Booking
	for _, b := range bookings {
		if !b.Start().After(now) {
			continue
		}
		if next == nil || b.Start().Before(next.Start()) {
			next = b
		}
	}
	return next
}
