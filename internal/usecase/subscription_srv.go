package usecase

import (
	"context"
	"fmt"

	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/pkg/apperror"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type SubscriptionService interface {
	Subscribe(ctx context.Context, req *request.CreateSubscriptionRequest) (*response.SubscriptionResponse, error)
	GetAll(ctx context.Context, req *request.PaginatedRequest, isActive *bool) (*response.PaginatedResponse[response.SubscriptionResponse], error)
	Unsubscribe(ctx context.Context, id int64) error
	Toggle(ctx context.Context, id int64) (*response.SubscriptionResponse, error)
}

type subscriptionService struct {
	repo repository.SubscriptionRepository
	log  *zap.Logger
}

func NewSubscriptionService(repo repository.SubscriptionRepository, log *zap.Logger) SubscriptionService {
	return &subscriptionService{
		repo: repo,
		log:  log.With(zap.String("service", "subscription")),
	}
}

// Subscribe reactivates an unsubscribed email instead of failing on the unique key
func (s *subscriptionService) Subscribe(ctx context.Context, req *request.CreateSubscriptionRequest) (*response.SubscriptionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}
	email := normalizeEmail(req.Email)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find subscription: %w", err)
	}

	if existing != nil {
		if existing.IsActive {
			s.log.Warn("Email already subscribed", zap.String("email", email))
			return nil, fmt.Errorf("%w: email already subscribed", apperror.ErrConstraintViolation)
		}
		reactivated, err := s.repo.SetActive(ctx, existing.ID, true)
		if err != nil {
			return nil, fmt.Errorf("reactivate subscription: %w", err)
		}
		s.log.Info("Subscription reactivated", zap.Int64("subscription_id", existing.ID))
		resp := response.SubscriptionToResponse(reactivated)
		return &resp, nil
	}

	created, err := s.repo.Create(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	resp := response.SubscriptionToResponse(created)
	return &resp, nil
}

func (s *subscriptionService) GetAll(ctx context.Context, req *request.PaginatedRequest, isActive *bool) (*response.PaginatedResponse[response.SubscriptionResponse], error) {
	req.Page, req.Limit = utils.NormalizePage(req.Page, req.Limit)

	page, err := s.repo.FindAll(ctx, req.Page, req.Limit, isActive)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return response.NewPaginatedResponse(response.SubscriptionsToResponse(page.Data), page.Page, page.Limit, page.Total), nil
}

// Unsubscribe is a soft delete
func (s *subscriptionService) Unsubscribe(ctx context.Context, id int64) error {
	if _, err := s.repo.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("unsubscribe %d: %w", id, err)
	}
	return nil
}

func (s *subscriptionService) Toggle(ctx context.Context, id int64) (*response.SubscriptionResponse, error) {
	subscription, err := s.repo.Toggle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle subscription %d: %w", id, err)
	}
	resp := response.SubscriptionToResponse(subscription)
	return &resp, nil
}
