package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/loopmarket/service-rental/internal/domain/item"
	"github.com/loopmarket/service-rental/internal/domain/request"
	"github.com/loopmarket/service-rental/internal/domain/user"
	"github.com/loopmarket/service-rental/internal/pkg/apperrors"
)

// CreateRequestRequest holds the body of a new item request.
type CreateRequestRequest struct {
	Description string `json:"description"`
}

// RequestService manages item requests and attaches the listings answering
// them.
type RequestService struct {
	requests request.Repository
	items    item.Repository
	users    user.Repository
	logger   *zap.Logger
}

// NewRequestService creates a RequestService.
func NewRequestService(
	requests request.Repository,
	items item.Repository,
	users user.Repository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		logger:   logger,
	}
}

// Create posts a new item request for the user.
func (s *RequestService) Create(ctx context.Context, req CreateRequestRequest, requestorID int64) (*RequestView, error) {
	requestor, err := s.users.FindByID(ctx, requestorID)
	if err != nil {
		return nil, err
	}

	r, err := request.NewItemRequest(req.Description, requestor)
	if err != nil {
		return nil, err
	}

	if err := s.requests.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save request: %w", err)
	}

	s.logger.Info("item request created",
		zap.Int64("request_id", r.ID()),
		zap.Int64("requestor_id", requestorID),
	)

	view := toRequestView(r, nil)
	return &view, nil
}

// ListOwn returns the user's own requests, newest first, each with the
// items answering it.
func (s *RequestService) ListOwn(ctx context.Context, requestorID int64) ([]RequestView, error) {
	if _, err := s.users.FindByID(ctx, requestorID); err != nil {
		return nil, err
	}

	requests, err := s.requests.FindAllByRequestorID(ctx, requestorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return s.attachItems(ctx, requests)
}

// ListOthers returns other users' requests, newest first, paged by
// from/size, each with the items answering it.
func (s *RequestService) ListOthers(ctx context.Context, requestorID int64, from, size int) ([]RequestView, error) {
	if from < 0 || size <= 0 {
		return nil, apperrors.NewBadRequest("invalid paging parameters")
	}
	if _, err := s.users.FindByID(ctx, requestorID); err != nil {
		return nil, err
	}

	requests, err := s.requests.FindByRequestorIDNot(ctx, requestorID, from, size)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return s.attachItems(ctx, requests)
}

// GetByID returns one request with the items answering it. Any registered
// user may look at any request.
func (s *RequestService) GetByID(ctx context.Context, requestID, requesterID int64) (*RequestView, error) {
	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		return nil, err
	}

	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.FindByRequestIDIn(ctx, []int64{r.ID()})
	if err != nil {
		return nil, fmt.Errorf("failed to load answering items: %w", err)
	}

	view := toRequestView(r, items)
	return &view, nil
}

// attachItems loads the answering items for all requests in one query and
// groups them per request.
func (s *RequestService) attachItems(ctx context.Context, requests []*request.ItemRequest) ([]RequestView, error) {
	if len(requests) == 0 {
		return []RequestView{}, nil
	}

	requestIDs := make([]int64, len(requests))
	for i, r := range requests {
		requestIDs[i] = r.ID()
	}

	items, err := s.items.FindByRequestIDIn(ctx, requestIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load answering items: %w", err)
	}

	itemsByRequest := make(map[int64][]*item.Item)
	for _, itm := range items {
		if itm.RequestID() == nil {
			continue
		}
		itemsByRequest[*itm.RequestID()] = append(itemsByRequest[*itm.RequestID()], itm)
	}

	views := make([]RequestView, len(requests))
	for i, r := range requests {
		views[i] = toRequestView(r, itemsByRequest[r.ID()])
	}
	return views, nil
}
