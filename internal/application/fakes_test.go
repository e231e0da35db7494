package application

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/loopmarket/service-rental/internal/domain/booking"
	"github.com/loopmarket/service-rental/internal/domain/item"
	"github.com/loopmarket/service-rental/internal/domain/request"
	"github.com/loopmarket/service-rental/internal/domain/user"
	"github.com/loopmarket/service-rental/internal/pkg/apperrors"
)

// In-memory implementations of the repository ports, mirroring the ordering
// and matching rules the SQL implementations promise.

type fakeUserRepo struct {
	users  map[int64]*user.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*user.User)}
}

func (r *fakeUserRepo) add(u *user.User) *user.User {
	r.users[u.ID()] = u
	return u
}

func (r *fakeUserRepo) Save(_ context.Context, u *user.User) error {
	r.nextID++
	u.SetID(r.nextID)
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	if _, ok := r.users[u.ID()]; !ok {
		return apperrors.NewNotFound("user %d not found", u.ID())
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NewNotFound("user %d not found", id)
	}
	return u, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*user.User, error) {
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	users := make([]*user.User, len(ids))
	for i, id := range ids {
		users[i] = r.users[id]
	}
	return users, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email(), email) {
			return true, nil
		}
	}
	return false, nil
}

type fakeItemRepo struct {
	items  map[int64]*item.Item
	nextID int64
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[int64]*item.Item)}
}

func (r *fakeItemRepo) add(i *item.Item) *item.Item {
	r.items[i.ID()] = i
	return i
}

func (r *fakeItemRepo) Save(_ context.Context, i *item.Item) error {
	r.nextID++
	i.SetID(r.nextID)
	r.items[i.ID()] = i
	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, i *item.Item) error {
	if _, ok := r.items[i.ID()]; !ok {
		return apperrors.NewNotFound("item %d not found", i.ID())
	}
	r.items[i.ID()] = i
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id int64) (*item.Item, error) {
	i, ok := r.items[id]
	if !ok {
		return nil, apperrors.NewNotFound("item %d not found", id)
	}
	return i, nil
}

func (r *fakeItemRepo) FindAllByOwnerID(_ context.Context, ownerID int64) ([]*item.Item, error) {
	var items []*item.Item
	for _, i := range r.items {
		if i.IsOwnedBy(ownerID) {
			items = append(items, i)
		}
	}
	sort.Slice(items, func(a, b int) bool { return items[a].ID() < items[b].ID() })
	return items, nil
}

func (r *fakeItemRepo) FindByRequestIDIn(_ context.Context, requestIDs []int64) ([]*item.Item, error) {
	wanted := make(map[int64]bool, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = true
	}
	var items []*item.Item
	for _, i := range r.items {
		if i.RequestID() != nil && wanted[*i.RequestID()] {
			items = append(items, i)
		}
	}
	return items, nil
}

func (r *fakeItemRepo) SearchAvailable(_ context.Context, text string) ([]*item.Item, error) {
	needle := strings.ToLower(text)
	var items []*item.Item
	for _, i := range r.items {
		if !i.Available() {
			continue
		}
		if strings.Contains(strings.ToLower(i.Name()), needle) ||
			strings.Contains(strings.ToLower(i.Description()), needle) {
			items = append(items, i)
		}
	}
	sort.Slice(items, func(a, b int) bool { return items[a].ID() < items[b].ID() })
	return items, nil
}

type fakeBookingRepo struct {
	bookings map[int64]*booking.Booking
	nextID   int64
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int64]*booking.Booking)}
}

func (r *fakeBookingRepo) add(b *booking.Booking) *booking.Booking {
	r.bookings[b.ID()] = b
	return b
}

func (r *fakeBookingRepo) Save(_ context.Context, b *booking.Booking) error {
	r.nextID++
	b.SetID(r.nextID)
	r.bookings[b.ID()] = b
	return nil
}

// FindByID returns a detached copy, the way a SQL row read would: mutating
// the returned aggregate must not change the store until a write lands.
func (r *fakeBookingRepo) FindByID(_ context.Context, id int64) (*booking.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, apperrors.NewNotFound("booking %d not found", id)
	}
	return cloneBooking(b), nil
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	return booking.Reconstruct(b.ID(), b.Start(), b.End(), b.Item(), b.Booker(), b.Status())
}

func (r *fakeBookingRepo) FindByBookerID(_ context.Context, bookerID int64) ([]*booking.Booking, error) {
	var bookings []*booking.Booking
	for _, b := range r.bookings {
		if b.IsBookedBy(bookerID) {
			bookings = append(bookings, b)
		}
	}
	sortByStartDesc(bookings)
	return bookings, nil
}

func (r *fakeBookingRepo) FindByItemIDIn(_ context.Context, itemIDs []int64) ([]*booking.Booking, error) {
	return r.byItems(itemIDs, nil), nil
}

func (r *fakeBookingRepo) FindByItemIDInAndStatus(_ context.Context, itemIDs []int64, status booking.Status) ([]*booking.Booking, error) {
	bookings := r.byItems(itemIDs, &status)
	sortByStartDesc(bookings)
	return bookings, nil
}

func (r *fakeBookingRepo) FindLastApprovedBefore(_ context.Context, itemID int64, now time.Time) (*booking.Booking, error) {
	var last *booking.Booking
	for _, b := range r.bookings {
		if b.Item().ID() != itemID || b.Status() != booking.StatusApproved || !b.Start().Before(now) {
			continue
		}
		if last == nil || b.Start().After(last.Start()) {
			last = b
		}
	}
	return last, nil
}

func (r *fakeBookingRepo) FindNextApprovedAfter(_ context.Context, itemID int64, now time.Time) (*booking.Booking, error) {
	var next *booking.Booking
	for _, b := range r.bookings {
		if b.Item().ID() != itemID || b.Status() != booking.StatusApproved || !b.Start().After(now) {
			continue
		}
		if next == nil || b.Start().Before(next.Start()) {
			next = b
		}
	}
	return next, nil
}

func (r *fakeBookingRepo) ExistsCompletedApproved(_ context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	for _, b := range r.bookings {
		if b.IsBookedBy(bookerID) && b.Item().ID() == itemID &&
			b.Status() == booking.StatusApproved && !b.End().After(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) UpdateStatusIfWaiting(_ context.Context, id int64, status booking.Status) (bool, error) {
	b, ok := r.bookings[id]
	if !ok || b.Status() != booking.StatusWaiting {
		return false, nil
	}
	r.bookings[id] = booking.Reconstruct(b.ID(), b.Start(), b.End(), b.Item(), b.Booker(), status)
	return true, nil
}

func (r *fakeBookingRepo) byItems(itemIDs []int64, status *booking.Status) []*booking.Booking {
	wanted := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	var bookings []*booking.Booking
	for _, b := range r.bookings {
		if !wanted[b.Item().ID()] {
			continue
		}
		if status != nil && b.Status() != *status {
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings
}

func sortByStartDesc(bookings []*booking.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].Start().After(bookings[j].Start())
	})
}

type fakeCommentRepo struct {
	comments map[int64]*item.Comment
	nextID   int64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[int64]*item.Comment)}
}

func (r *fakeCommentRepo) Save(_ context.Context, c *item.Comment) error {
	r.nextID++
	c.SetID(r.nextID)
	r.comments[c.ID()] = c
	return nil
}

func (r *fakeCommentRepo) FindByItemID(_ context.Context, itemID int64) ([]*item.Comment, error) {
	return r.FindByItemIDIn(nil, []int64{itemID})
}

func (r *fakeCommentRepo) FindByItemIDIn(_ context.Context, itemIDs []int64) ([]*item.Comment, error) {
	wanted := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	var comments []*item.Comment
	for _, c := range r.comments {
		if wanted[c.ItemID()] {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].Created().Before(comments[j].Created())
	})
	return comments, nil
}

type fakeRequestRepo struct {
	requests map[int64]*request.ItemRequest
	nextID   int64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[int64]*request.ItemRequest)}
}

func (r *fakeRequestRepo) add(req *request.ItemRequest) *request.ItemRequest {
	r.requests[req.ID()] = req
	return req
}

func (r *fakeRequestRepo) Save(_ context.Context, req *request.ItemRequest) error {
	r.nextID++
	req.SetID(r.nextID)
	r.requests[req.ID()] = req
	return nil
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id int64) (*request.ItemRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, apperrors.NewNotFound("request %d not found", id)
	}
	return req, nil
}

func (r *fakeRequestRepo) FindAllByRequestorID(_ context.Context, requestorID int64) ([]*request.ItemRequest, error) {
	var requests []*request.ItemRequest
	for _, req := range r.requests {
		if req.Requestor().ID() == requestorID {
			requests = append(requests, req)
		}
	}
	sortByCreatedDesc(requests)
	return requests, nil
}

func (r *fakeRequestRepo) FindByRequestorIDNot(_ context.Context, requestorID int64, offset, limit int) ([]*request.ItemRequest, error) {
	var requests []*request.ItemRequest
	for _, req := range r.requests {
		if req.Requestor().ID() != requestorID {
			requests = append(requests, req)
		}
	}
	sortByCreatedDesc(requests)
	if offset >= len(requests) {
		return nil, nil
	}
	requests = requests[offset:]
	if limit < len(requests) {
		requests = requests[:limit]
	}
	return requests, nil
}

func sortByCreatedDesc(requests []*request.ItemRequest) {
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].Created().After(requests[j].Created())
	})
}
