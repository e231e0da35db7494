package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/loopmarket/service-rental/internal/domain/request"
	"github.com/loopmarket/service-rental/internal/pkg/apperrors"
)

// RequestModel is the GORM model for the requests table.
type RequestModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Description string    `gorm:"not null;size:1000"`
	RequestorID int64     `gorm:"index;not null"`
	Requestor   UserModel `gorm:"foreignKey:RequestorID"`
	Created     time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the GORM model.
func (RequestModel) TableName() string {
	return "requests"
}

// GormRequestRepository is the GORM-based implementation of
// request.Repository.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// Save inserts a new request and assigns its generated id.
func (r *GormRequestRepository) Save(ctx context.Context, req *request.ItemRequest) error {
	model := toRequestModel(req)
	if err := r.db.WithContext(ctx).Omit("Requestor").Create(model).Error; err != nil {
		return fmt.Errorf("failed to save request: %w", err)
	}
	req.SetID(model.ID)
	return nil
}

// FindByID retrieves a request by id.
func (r *GormRequestRepository) FindByID(ctx context.Context, id int64) (*request.ItemRequest, error) {
	var model RequestModel
	if err := r.db.WithContext(ctx).Preload("Requestor").
		Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("request %d not found", id)
		}
		return nil, fmt.Errorf("failed to find request by id: %w", err)
	}
	return toDomainRequest(&model), nil
}

// FindAllByRequestorID retrieves the user's own requests, newest first.
func (r *GormRequestRepository) FindAllByRequestorID(ctx context.Context, requestorID int64) ([]*request.ItemRequest, error) {
	var models []RequestModel
	if err := r.db.WithContext(ctx).Preload("Requestor").
		Where("requestor_id = ?", requestorID).
		Order("created DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find requests by requestor: %w", err)
	}
	return toDomainRequests(models), nil
}

// FindByRequestorIDNot retrieves other users' requests, newest first, with
// offset/limit paging.
func (r *GormRequestRepository) FindByRequestorIDNot(ctx context.Context, requestorID int64, offset, limit int) ([]*request.ItemRequest, error) {
	var models []RequestModel
	if err := r.db.WithContext(ctx).Preload("Requestor").
		Where("requestor_id <> ?", requestorID).
		Order("created DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find other requests: %w", err)
	}
	return toDomainRequests(models), nil
}

func toRequestModel(req *request.ItemRequest) *RequestModel {
	return &RequestModel{
		ID:          req.ID(),
		Description: req.Description(),
		RequestorID: req.Requestor().ID(),
		Created:     req.Created(),
	}
}

func toDomainRequest(m *RequestModel) *request.ItemRequest {
	return request.Reconstruct(m.ID, m.Description, toDomainUser(&m.Requestor), m.Created)
}

func toDomainRequests(models []RequestModel) []*request.ItemRequest {
	requests := make([]*request.ItemRequest, len(models))
	for i := range models {
		requests[i] = toDomainRequest(&models[i])
	}
	return requests
}
