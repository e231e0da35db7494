package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/loopmarket/service-rental/internal/domain/item"
)

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	Text     string    `gorm:"not null;size:1000"`
	ItemID   int64     `gorm:"index;not null"`
	AuthorID int64     `gorm:"index;not null"`
	Author   UserModel `gorm:"foreignKey:AuthorID"`
	Created  time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CommentModel) TableName() string {
	return "comments"
}

// GormCommentRepository is the GORM-based implementation of
// item.CommentRepository.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Save inserts a new comment and assigns its generated id.
func (r *GormCommentRepository) Save(ctx context.Context, c *item.Comment) error {
	model := toCommentModel(c)
	if err := r.db.WithContext(ctx).Omit("Author").Create(model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	c.SetID(model.ID)
	return nil
}

// FindByItemID retrieves all comments on the given item, oldest first.
func (r *GormCommentRepository) FindByItemID(ctx context.Context, itemID int64) ([]*item.Comment, error) {
	var models []CommentModel
	if err := r.db.WithContext(ctx).Preload("Author").
		Where("item_id = ?", itemID).
		Order("created ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments by item: %w", err)
	}
	return toDomainComments(models), nil
}

// FindByItemIDIn retrieves all comments on any of the given items, oldest
// first.
func (r *GormCommentRepository) FindByItemIDIn(ctx context.Context, itemIDs []int64) ([]*item.Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var models []CommentModel
	if err := r.db.WithContext(ctx).Preload("Author").
		Where("item_id IN ?", itemIDs).
		Order("created ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments by items: %w", err)
	}
	return toDomainComments(models), nil
}

func toCommentModel(c *item.Comment) *CommentModel {
	return &CommentModel{
		ID:       c.ID(),
		Text:     c.Text(),
		ItemID:   c.ItemID(),
		AuthorID: c.Author().ID(),
		Created:  c.Created(),
	}
}

func toDomainComments(models []CommentModel) []*item.Comment {
	comments := make([]*item.Comment, len(models))
	for i := range models {
		m := &models[i]
		comments[i] = item.ReconstructComment(m.ID, m.Text, m.ItemID, toDomainUser(&m.Author), m.Created)
	}
	return comments
}
