package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/loopmarket/service-rental/internal/domain/item"
	"github.com/loopmarket/service-rental/internal/pkg/apperrors"
)

// ItemModel is the GORM model for the items table.
type ItemModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"not null;size:255"`
	Description string    `gorm:"not null;size:1000"`
	Available   bool      `gorm:"not null"`
	OwnerID     int64     `gorm:"index;not null"`
	Owner       UserModel `gorm:"foreignKey:OwnerID"`
	RequestID   *int64    `gorm:"index"`
}

// TableName returns the table name for the GORM model.
func (ItemModel) TableName() string {
	return "items"
}

// GormItemRepository is the GORM-based implementation of item.Repository.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository.
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// Save inserts a new item and assigns its generated id.
func (r *GormItemRepository) Save(ctx context.Context, i *item.Item) error {
	model := toItemModel(i)
	if err := r.db.WithContext(ctx).Omit("Owner").Create(model).Error; err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}
	i.SetID(model.ID)
	return nil
}

// Update persists changes to an existing item.
func (r *GormItemRepository) Update(ctx context.Context, i *item.Item) error {
	result := r.db.WithContext(ctx).Model(&ItemModel{}).
		Where("id = ?", i.ID()).
		Updates(map[string]any{
			"name":        i.Name(),
			"description": i.Description(),
			"available":   i.Available(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("item %d not found", i.ID())
	}
	return nil
}

// FindByID retrieves an item with its owner.
func (r *GormItemRepository) FindByID(ctx context.Context, id int64) (*item.Item, error) {
	var model ItemModel
	if err := r.db.WithContext(ctx).Preload("Owner").
		Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("item %d not found", id)
		}
		return nil, fmt.Errorf("failed to find item by id: %w", err)
	}
	return toDomainItem(&model), nil
}

// FindAllByOwnerID retrieves every item listed by the given owner.
func (r *GormItemRepository) FindAllByOwnerID(ctx context.Context, ownerID int64) ([]*item.Item, error) {
	var models []ItemModel
	if err := r.db.WithContext(ctx).Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find items by owner: %w", err)
	}
	return toDomainItems(models), nil
}

// FindByRequestIDIn retrieves items answering any of the given requests.
func (r *GormItemRepository) FindByRequestIDIn(ctx context.Context, requestIDs []int64) ([]*item.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	var models []ItemModel
	if err := r.db.WithContext(ctx).Preload("Owner").
		Where("request_id IN ?", requestIDs).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find items by request: %w", err)
	}
	return toDomainItems(models), nil
}

// SearchAvailable retrieves available items whose name or description
// contains text, case-insensitively.
func (r *GormItemRepository) SearchAvailable(ctx context.Context, text string) ([]*item.Item, error) {
	var models []ItemModel
	pattern := "%" + text + "%"
	if err := r.db.WithContext(ctx).Preload("Owner").
		Where("available = ?", true).
		Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return toDomainItems(models), nil
}

func toItemModel(i *item.Item) *ItemModel {
	return &ItemModel{
		ID:          i.ID(),
		Name:        i.Name(),
		Description: i.Description(),
		Available:   i.Available(),
		OwnerID:     i.Owner().ID(),
		RequestID:   i.RequestID(),
	}
}

func toDomainItem(m *ItemModel) *item.Item {
	return item.Reconstruct(m.ID, m.Name, m.Description, m.Available, toDomainUser(&m.Owner), m.RequestID)
}

func toDomainItems(models []ItemModel) []*item.Item {
	items := make([]*item.Item, len(models))
	for i := range models {
		items[i] = toDomainItem(&models[i])
	}
	return items
}
