package request

type CreateSubscriptionRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}
