package request

type CreateTestimonialRequest struct {
	Name            string   `json:"name" validate:"required,max=255"`
	AvatarImageURL  *string  `json:"avatarImageUrl,omitempty" validate:"omitempty,max=255"`
	Rating          int      `json:"rating" validate:"required,min=1,max=5"`
	TestimonialText string   `json:"testimonialText" validate:"required"`
	TripImageURLs   []string `json:"tripImageUrls,omitempty" validate:"omitempty,dive,required"`
}

type UpdateTestimonialRequest struct {
	Name            *string   `json:"name,omitempty" validate:"omitempty,max=255"`
	AvatarImageURL  *string   `json:"avatarImageUrl,omitempty" validate:"omitempty,max=255"`
	Rating          *int      `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	TestimonialText *string   `json:"testimonialText,omitempty" validate:"omitempty,min=1"`
	TripImageURLs   *[]string `json:"tripImageUrls,omitempty" validate:"omitempty,dive,required"`
}

type TestimonialListRequest struct {
	PaginatedRequest
	SortBy    string `validate:"omitempty,oneof=created_at createdAt rating name"`
	SortOrder string `validate:"omitempty,oneof=ASC DESC asc desc"`
}
