package request

import "strings"

type ItineraryDetailRequest struct {
	Detail string `json:"detail" validate:"required"`
}

type ItineraryItemRequest struct {
	Day     string                   `json:"day" validate:"required,max=50"`
	Title   string                   `json:"title" validate:"required,max=255"`
	Details []ItineraryDetailRequest `json:"details" validate:"required,min=1,dive"`
}

type IncludeRequest struct {
	Item string `json:"item" validate:"required"`
}

type ExcludeRequest struct {
	Item string `json:"item" validate:"required"`
}

type TipRequest struct {
	Tip string `json:"tip" validate:"required"`
}

type FaqRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type GalleryImageRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

// CreateDestinationRequest. ImageSrc may be empty when a main image file is uploaded.
type CreateDestinationRequest struct {
	Title         string   `json:"title" validate:"required,max=255"`
	Slug          string   `json:"slug" validate:"required,max=255,slug"`
	ImageSrc      string   `json:"imageSrc" validate:"omitempty,url"`
	Duration      string   `json:"duration" validate:"required,max=100"`
	ActivityLevel string   `json:"activityLevel" validate:"required,max=50"`
	ActivityType  []string `json:"activityType" validate:"required,min=1,dive,required,max=50"`
	GroupSize     *string  `json:"groupSize,omitempty" validate:"omitempty,max=100"`
	Description   string   `json:"description" validate:"required"`
	Price         float64  `json:"price" validate:"gte=0"`
	Location      string   `json:"location" validate:"required,max=255"`
	IsRecommended bool     `json:"isRecommended"`
	IsSpecial     bool     `json:"isSpecial"`
	Type          string   `json:"type" validate:"required,oneof=national international"`

	Itinerary     []ItineraryItemRequest `json:"itinerary" validate:"omitempty,dive"`
	Includes      []IncludeRequest       `json:"includes" validate:"omitempty,dive"`
	Excludes      []ExcludeRequest       `json:"excludes" validate:"omitempty,dive"`
	Tips          []TipRequest           `json:"tips" validate:"omitempty,dive"`
	Faqs          []FaqRequest           `json:"faqs" validate:"omitempty,dive"`
	GalleryImages []GalleryImageRequest  `json:"galleryImages" validate:"omitempty,dive"`
}

// Normalize accepts the enum names NATIONAL / INTERNATIONAL as well as the stored values
func (r *CreateDestinationRequest) Normalize() {
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.Slug = strings.TrimSpace(r.Slug)
}

// UpdateDestinationRequest is a partial update. A nil collection pointer
// means "leave as is"; a pointer to an empty slice clears the collection.
//
// Gallery: ExistingGalleryImages is the keep list new uploads are appended
// to. GalleryImages is accepted as the keep list when ExistingGalleryImages
// is absent. ClearGallery empties it.
type UpdateDestinationRequest struct {
	Title         *string   `json:"title,omitempty" validate:"omitempty,max=255"`
	Slug          *string   `json:"slug,omitempty" validate:"omitempty,max=255,slug"`
	ImageSrc      *string   `json:"imageSrc,omitempty" validate:"omitempty,url"`
	Duration      *string   `json:"duration,omitempty" validate:"omitempty,max=100"`
	ActivityLevel *string   `json:"activityLevel,omitempty" validate:"omitempty,max=50"`
	ActivityType  *[]string `json:"activityType,omitempty" validate:"omitempty,min=1,dive,required,max=50"`
	GroupSize     *string   `json:"groupSize,omitempty" validate:"omitempty,max=100"`
	Description   *string   `json:"description,omitempty" validate:"omitempty,min=1"`
	Price         *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Location      *string   `json:"location,omitempty" validate:"omitempty,max=255"`
	IsRecommended *bool     `json:"isRecommended,omitempty"`
	IsSpecial     *bool     `json:"isSpecial,omitempty"`
	Type          *string   `json:"type,omitempty" validate:"omitempty,oneof=national international"`

	Itinerary *[]ItineraryItemRequest `json:"itinerary,omitempty" validate:"omitempty,dive"`
	Includes  *[]IncludeRequest       `json:"includes,omitempty" validate:"omitempty,dive"`
	Excludes  *[]ExcludeRequest       `json:"excludes,omitempty" validate:"omitempty,dive"`
	Tips      *[]TipRequest           `json:"tips,omitempty" validate:"omitempty,dive"`
	Faqs      *[]FaqRequest           `json:"faqs,omitempty" validate:"omitempty,dive"`

	GalleryImages         *[]GalleryImageRequest `json:"galleryImages,omitempty" validate:"omitempty,dive"`
	ExistingGalleryImages *[]GalleryImageRequest `json:"existingGalleryImages,omitempty" validate:"omitempty,dive"`
	ClearGallery          bool                   `json:"clearGallery,omitempty"`
}

// KeepGallery returns the gallery images the caller wants kept, nil when
// the request says nothing about the gallery.
func (r *UpdateDestinationRequest) KeepGallery() *[]GalleryImageRequest {
	if r.ExistingGalleryImages != nil {
		return r.ExistingGalleryImages
	}
	return r.GalleryImages
}

func (r *UpdateDestinationRequest) Normalize() {
	if r.Type != nil {
		t := strings.ToLower(strings.TrimSpace(*r.Type))
		r.Type = &t
	}
	if r.Slug != nil {
		s := strings.TrimSpace(*r.Slug)
		r.Slug = &s
	}
}
