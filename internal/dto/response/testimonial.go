package response

import (
	"time"

	"travel-agency/internal/data/entity"
)

type TestimonialResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	AvatarImageURL  *string   `json:"avatarImageUrl"`
	Rating          int       `json:"rating"`
	TestimonialText string    `json:"testimonialText"`
	TripImageURLs   []string  `json:"tripImageUrls"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func TestimonialToResponse(t *entity.Testimonial) TestimonialResponse {
	trip := t.TripImageURLs
	if trip == nil {
		trip = []string{}
	}
	return TestimonialResponse{
		ID:              t.ID,
		Name:            t.Name,
		AvatarImageURL:  t.AvatarImageURL,
		Rating:          t.Rating,
		TestimonialText: t.TestimonialText,
		TripImageURLs:   trip,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func TestimonialsToResponse(testimonials []*entity.Testimonial) []TestimonialResponse {
	return mapSlice(testimonials, func(t *entity.Testimonial) TestimonialResponse {
		return TestimonialToResponse(t)
	})
}
