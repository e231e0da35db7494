package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/loopmarket/service-rental/internal/domain/booking"
	"github.com/loopmarket/service-rental/internal/pkg/apperrors"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	StartDate time.Time `gorm:"column:start_date;not null;index"`
	EndDate   time.Time `gorm:"column:end_date;not null"`
	ItemID    int64     `gorm:"index;not null"`
	Item      ItemModel `gorm:"foreignKey:ItemID"`
	BookerID  int64     `gorm:"index;not null"`
	Booker    UserModel `gorm:"foreignKey:BookerID"`
	Status    string    `gorm:"not null;size:20;index"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of
// booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save inserts a new booking and assigns its generated id.
func (r *GormBookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	model := toBookingModel(b)
	if err := r.db.WithContext(ctx).Omit("Item", "Booker").Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	b.SetID(model.ID)
	return nil
}

// FindByID retrieves a booking with its item, the item's owner, and the
// booker.
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*booking.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Item.Owner").Preload("Booker").
		Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("booking %d not found", id)
		}
		return nil, fmt.Errorf("failed to find booking by id: %w", err)
	}
	return toDomainBooking(&model), nil
}

// FindByBookerID retrieves all bookings created by the user, latest start
// first.
func (r *GormBookingRepository) FindByBookerID(ctx context.Context, bookerID int64) ([]*booking.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Item.Owner").Preload("Booker").
		Where("booker_id = ?", bookerID).
		Order("start_date DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by booker: %w", err)
	}
	return toDomainBookings(models), nil
}

// FindByItemIDIn retrieves all bookings for any of the given items.
func (r *GormBookingRepository) FindByItemIDIn(ctx context.Context, itemIDs []int64) ([]*booking.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Item.Owner").Preload("Booker").
		Where("item_id IN ?", itemIDs).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by items: %w", err)
	}
	return toDomainBookings(models), nil
}

// FindByItemIDInAndStatus retrieves bookings for any of the given items
// with the given status, latest start first.
func (r *GormBookingRepository) FindByItemIDInAndStatus(ctx context.Context, itemIDs []int64, status booking.Status) ([]*booking.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Item.Owner").Preload("Booker").
		Where("item_id IN ? AND status = ?", itemIDs, status.String()).
		Order("start_date DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by items and status: %w", err)
	}
	return toDomainBookings(models), nil
}

// FindLastApprovedBefore retrieves the approved booking for the item with
// the latest start strictly before now, or nil.
func (r *GormBookingRepository) FindLastApprovedBefore(ctx context.Context, itemID int64, now time.Time) (*booking.Booking, error) {
	return r.findOneApproved(ctx, itemID, "start_date < ?", "start_date DESC", now)
}

// FindNextApprovedAfter retrieves the approved booking for the item with
// the earliest start strictly after now, or nil.
func (r *GormBookingRepository) FindNextApprovedAfter(ctx context.Context, itemID int64, now time.Time) (*booking.Booking, error) {
	return r.findOneApproved(ctx, itemID, "start_date > ?", "start_date ASC", now)
}

func (r *GormBookingRepository) findOneApproved(ctx context.Context, itemID int64, cond, order string, now time.Time) (*booking.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Preload("Item.Owner").Preload("Booker").
		Where("item_id = ? AND status = ?", itemID, booking.StatusApproved.String()).
		Where(cond, now).
		Order(order).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find approved booking: %w", err)
	}
	return toDomainBooking(&model), nil
}

// ExistsCompletedApproved reports whether the user has an approved booking
// on the item that ended at or before now.
func (r *GormBookingRepository) ExistsCompletedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("booker_id = ? AND item_id = ? AND status = ? AND end_date <= ?",
			bookerID, itemID, booking.StatusApproved.String(), now).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check completed bookings: %w", err)
	}
	return count > 0, nil
}

// UpdateStatusIfWaiting atomically sets the status if the booking is still
// WAITING. The conditional update is what serializes racing approve and
// reject calls: whichever lands second matches zero rows.
func (r *GormBookingRepository) UpdateStatusIfWaiting(ctx context.Context, id int64, status booking.Status) (bool, error) {
	result := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("id = ? AND status = ?", id, booking.StatusWaiting.String()).
		Update("status", status.String())
	if result.Error != nil {
		return false, fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func toBookingModel(b *booking.Booking) *BookingModel {
	return &BookingModel{
		ID:        b.ID(),
		StartDate: b.Start(),
		EndDate:   b.End(),
		ItemID:    b.Item().ID(),
		BookerID:  b.Booker().ID(),
		Status:    b.Status().String(),
	}
}

func toDomainBooking(m *BookingModel) *booking.Booking {
	return booking.Reconstruct(
		m.ID,
		m.StartDate,
		m.EndDate,
		toDomainItem(&m.Item),
		toDomainUser(&m.Booker),
		booking.Status(m.Status),
	)
}

func toDomainBookings(models []BookingModel) []*booking.Booking {
	bookings := make([]*booking.Booking, len(models))
	for i := range models {
		bookings[i] = toDomainBooking(&models[i])
	}
	return bookings
}
