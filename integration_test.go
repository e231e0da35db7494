//go:build integration

package main_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopmarket/service-rental/internal/application"
	"github.com/loopmarket/service-rental/internal/events"
	"github.com/loopmarket/service-rental/internal/pkg/apperrors"
)

// TestBookingLifecycle_CreateApprovePublish walks the full lifecycle against
// real PostgreSQL and Kafka: create a WAITING booking, approve it as the
// owner, and observe both lifecycle events on the booking topic.
func TestBookingLifecycle_CreateApprovePublish(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupRentalStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()
	owner := seedUser(t, infra.DB, "owner", "owner@example.com")
	booker := seedUser(t, infra.DB, "booker", "booker@example.com")

	itemView, err := stack.Items.Create(ctx, application.CreateItemRequest{
		Name:        "drill",
		Description: "cordless drill",
		Available:   boolPtr(true),
	}, owner.ID())
	require.NoError(t, err)

	start := time.Now().Add(time.Hour).UTC()
	created, err := stack.Bookings.Create(ctx, application.CreateBookingRequest{
		ItemID: itemView.ID,
		Start:  start,
		End:    start.Add(time.Hour),
	}, booker.ID())
	require.NoError(t, err)
	assert.Equal(t, "WAITING", created.Status)

	approved, err := stack.Bookings.Approve(ctx, created.ID, owner.ID(), true)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.Status)

	model := waitForBookingStatus(t, infra.DB, created.ID, "APPROVED", 10*time.Second)
	assert.Equal(t, itemView.ID, model.ItemID)

	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicBookingEvents,
		events.BookingCreated, 15*time.Second)
	var createdEvt events.BookingCreatedEvent
	require.NoError(t, ce.ParseData(&createdEvt))
	assert.Equal(t, created.ID, createdEvt.BookingID)
	assert.Equal(t, booker.ID(), createdEvt.BookerID)

	ce = consumeOneEvent(t, infra.KafkaBrokers, events.TopicBookingEvents,
		events.BookingApproved, 15*time.Second)
	var resolvedEvt events.BookingResolvedEvent
	require.NoError(t, ce.ParseData(&resolvedEvt))
	assert.Equal(t, created.ID, resolvedEvt.BookingID)
	assert.Equal(t, "APPROVED", resolvedEvt.Status)
}

// TestBookingLifecycle_ConcurrentResolutions fires approve and reject at the
// same WAITING booking in parallel; the conditional status update must let
// exactly one of them through.
func TestBookingLifecycle_ConcurrentResolutions(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupRentalStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()
	owner := seedUser(t, infra.DB, "owner", "owner@example.com")
	booker := seedUser(t, infra.DB, "booker", "booker@example.com")

	itemView, err := stack.Items.Create(ctx, application.CreateItemRequest{
		Name:        "ladder",
		Description: "3m aluminium ladder",
		Available:   boolPtr(true),
	}, owner.ID())
	require.NoError(t, err)

	start := time.Now().Add(time.Hour).UTC()
	created, err := stack.Bookings.Create(ctx, application.CreateBookingRequest{
		ItemID: itemView.ID,
		Start:  start,
		End:    start.Add(time.Hour),
	}, booker.ID())
	require.NoError(t, err)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, approve := range []bool{true, false} {
		wg.Add(1)
		go func(i int, approve bool) {
			defer wg.Done()
			_, errs[i] = stack.Bookings.Approve(ctx, created.ID, owner.ID(), approve)
		}(i, approve)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			failures++
			assert.True(t, apperrors.IsKind(err, apperrors.KindBadRequest))
		}
	}
	assert.Equal(t, 1, failures, "exactly one resolution must lose the race")

	final, err := stack.Bookings.GetByID(ctx, created.ID, owner.ID())
	require.NoError(t, err)
	assert.Contains(t, []string{"APPROVED", "REJECTED"}, final.Status)
}

// TestCommentGate_RequiresCompletedBooking verifies the comment eligibility
// rule end to end against the SQL queries.
func TestCommentGate_RequiresCompletedBooking(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupRentalStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()
	owner := seedUser(t, infra.DB, "owner", "owner@example.com")
	renter := seedUser(t, infra.DB, "renter", "renter@example.com")

	itemView, err := stack.Items.Create(ctx, application.CreateItemRequest{
		Name:        "saw",
		Description: "hand saw",
		Available:   boolPtr(true),
	}, owner.ID())
	require.NoError(t, err)

	_, err = stack.Items.AddComment(ctx, itemView.ID, renter.ID(), application.AddCommentRequest{
		Text: "never rented it",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindCommentNotAllowed))

	// Insert a completed approved booking directly, then commenting works.
	require.NoError(t, infra.DB.Exec(
		`INSERT INTO bookings (start_date, end_date, item_id, booker_id, status) VALUES (?, ?, ?, ?, ?)`,
		time.Now().Add(-48*time.Hour), time.Now().Add(-24*time.Hour),
		itemView.ID, renter.ID(), "APPROVED",
	).Error)

	comment, err := stack.Items.AddComment(ctx, itemView.ID, renter.ID(), application.AddCommentRequest{
		Text: "sharp and sturdy",
	})
	require.NoError(t, err)
	assert.Equal(t, "renter", comment.AuthorName)

	view, err := stack.Items.GetByID(ctx, itemView.ID, renter.ID())
	require.NoError(t, err)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "sharp and sturdy", view.Comments[0].Text)
}

func boolPtr(b bool) *bool { return &b }
