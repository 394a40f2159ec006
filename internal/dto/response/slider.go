package response

import (
	"time"

	"travel-agency/internal/data/entity"
)

type SliderResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle"`
	Location     string    `json:"location"`
	ImageURL     string    `json:"imageUrl"`
	ButtonText   *string   `json:"buttonText"`
	ButtonURL    *string   `json:"buttonUrl"`
	IsActive     bool      `json:"isActive"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ReorderResponse struct {
	Moved bool `json:"moved"`
}

func SliderToResponse(s *entity.Slider) SliderResponse {
	return SliderResponse{
		ID:           s.ID,
		Title:        s.Title,
		Subtitle:     s.Subtitle,
		Location:     s.Location,
		ImageURL:     s.ImageURL,
		ButtonText:   s.ButtonText,
		ButtonURL:    s.ButtonURL,
		IsActive:     s.IsActive,
		DisplayOrder: s.DisplayOrder,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func SlidersToResponse(sliders []*entity.Slider) []SliderResponse {
	return mapSlice(sliders, func(s *entity.Slider) SliderResponse {
		return SliderToResponse(s)
	})
}
