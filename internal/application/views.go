package application

import (
	"time"

	"github.com/loopmarket/service-rental/internal/domain/booking"
	"github.com/loopmarket/service-rental/internal/domain/item"
	"github.com/loopmarket/service-rental/internal/domain/request"
	"github.com/loopmarket/service-rental/internal/domain/user"
)

// ItemRef is the minimal item embedded in a booking view.
type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookerRef is the minimal booker embedded in a booking view.
type BookerRef struct {
	ID int64 `json:"id"`
}

// BookingView is the full response representation of a booking.
type BookingView struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Item   ItemRef   `json:"item"`
	Booker BookerRef `json:"booker"`
}

// BookingShortView is the compact booking reference embedded in item views.
type BookingShortView struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// UserView is the response representation of a user.
type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ItemView is the response representation of an item listing.
type ItemView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// CommentView is the response representation of an item comment.
type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// ItemWithBookingsView is an item listing enriched with its comments and,
// for the owner only, its nearest past and future approved bookings.
type ItemWithBookingsView struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	LastBooking *BookingShortView `json:"lastBooking"`
	NextBooking *BookingShortView `json:"nextBooking"`
	Comments    []CommentView     `json:"comments"`
}

// RequestView is the response representation of an item request, including
// the listings answering it.
type RequestView struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Created     time.Time  `json:"created"`
	Items       []ItemView `json:"items"`
}

// --- Mappers ---

func toBookingView(b *booking.Booking) BookingView {
	return BookingView{
		ID:     b.ID(),
		Start:  b.Start(),
		End:    b.End(),
		Status: b.Status().String(),
		Item:   ItemRef{ID: b.Item().ID(), Name: b.Item().Name()},
		Booker: BookerRef{ID: b.Booker().ID()},
	}
}

func toBookingViews(bookings []*booking.Booking) []BookingView {
	views := make([]BookingView, len(bookings))
	for i, b := range bookings {
		views[i] = toBookingView(b)
	}
	return views
}

func toBookingShortView(b *booking.Booking) *BookingShortView {
	if b == nil {
		return nil
	}
	return &BookingShortView{
		ID:       b.ID(),
		BookerID: b.Booker().ID(),
		Start:    b.Start(),
		End:      b.End(),
	}
}

func toUserView(u *user.User) UserView {
	return UserView{ID: u.ID(), Name: u.Name(), Email: u.Email()}
}

func toItemView(i *item.Item) ItemView {
	return ItemView{
		ID:          i.ID(),
		Name:        i.Name(),
		Description: i.Description(),
		Available:   i.Available(),
		RequestID:   i.RequestID(),
	}
}

func toItemViews(items []*item.Item) []ItemView {
	views := make([]ItemView, len(items))
	for i, it := range items {
		views[i] = toItemView(it)
	}
	return views
}

func toCommentView(c *item.Comment) CommentView {
	return CommentView{
		ID:         c.ID(),
		Text:       c.Text(),
		AuthorName: c.Author().Name(),
		Created:    c.Created(),
	}
}

func toCommentViews(comments []*item.Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, toCommentView(c))
	}
	return views
}

func toItemWithBookingsView(i *item.Item, last, next *BookingShortView, comments []CommentView) ItemWithBookingsView {
	if comments == nil {
		comments = []CommentView{}
	}
	return ItemWithBookingsView{
		ID:          i.ID(),
		Name:        i.Name(),
		Description: i.Description(),
		Available:   i.Available(),
		LastBooking: last,
		NextBooking: next,
		Comments:    comments,
	}
}

func toRequestView(r *request.ItemRequest, items []*item.Item) RequestView {
	views := toItemViews(items)
	if views == nil {
		views = []ItemView{}
	}
	return RequestView{
		ID:          r.ID(),
		Description: r.Description(),
		Created:     r.Created(),
		Items:       views,
	}
}
