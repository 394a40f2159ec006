package request

type CreateSliderRequest struct {
	Title        string  `json:"title" validate:"required,max=255"`
	Subtitle     string  `json:"subtitle" validate:"required,max=255"`
	Location     string  `json:"location" validate:"required,max=100"`
	ImageURL     string  `json:"imageUrl" validate:"omitempty,url"`
	ButtonText   *string `json:"buttonText,omitempty" validate:"omitempty,max=100"`
	ButtonURL    *string `json:"buttonUrl,omitempty" validate:"omitempty,max=255"`
	IsActive     *bool   `json:"isActive,omitempty"`
	DisplayOrder *int    `json:"displayOrder,omitempty" validate:"omitempty,min=0"`
}

type UpdateSliderRequest struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Subtitle     *string `json:"subtitle,omitempty" validate:"omitempty,max=255"`
	Location     *string `json:"location,omitempty" validate:"omitempty,max=100"`
	ImageURL     *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	ButtonText   *string `json:"buttonText,omitempty" validate:"omitempty,max=100"`
	ButtonURL    *string `json:"buttonUrl,omitempty" validate:"omitempty,max=255"`
	IsActive     *bool   `json:"isActive,omitempty"`
	DisplayOrder *int    `json:"displayOrder,omitempty" validate:"omitempty,min=0"`
}

type ReorderSliderRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}
