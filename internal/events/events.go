package events

import "time"

// TopicBookingEvents is the Kafka topic carrying booking lifecycle events.
const TopicBookingEvents = "booking.events"

// Booking lifecycle event types.
const (
	BookingCreated  = "booking.created"
	BookingApproved = "booking.approved"
	BookingRejected = "booking.rejected"
)

// BookingCreatedEvent is emitted when a booker places a new WAITING booking.
type BookingCreatedEvent struct {
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	ItemName   string    `json:"item_name"`
	BookerID   int64     `json:"booker_id"`
	OwnerID    int64     `json:"owner_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingResolvedEvent is emitted when the owner approves or rejects a
// booking. Status is the terminal status the booking reached.
type BookingResolvedEvent struct {
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	BookerID   int64     `json:"booker_id"`
	OwnerID    int64     `json:"owner_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
