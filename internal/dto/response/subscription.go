package response

import (
	"time"

	"travel-agency/internal/data/entity"
)

type SubscriptionResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func SubscriptionToResponse(s *entity.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        s.ID,
		Email:     s.Email,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func SubscriptionsToResponse(subscriptions []*entity.Subscription) []SubscriptionResponse {
	return mapSlice(subscriptions, func(s *entity.Subscription) SubscriptionResponse {
		return SubscriptionToResponse(s)
	})
}
