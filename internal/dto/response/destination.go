package response

import (
	"time"

	"travel-agency/internal/data/entity"
)

type ItineraryDetailResponse struct {
	ID     int64  `json:"id"`
	Detail string `json:"detail"`
}

type ItineraryItemResponse struct {
	ID      int64                     `json:"id"`
	Day     string                    `json:"day"`
	Title   string                    `json:"title"`
	Details []ItineraryDetailResponse `json:"details"`
}

type IncludeResponse struct {
	ID   int64  `json:"id"`
	Item string `json:"item"`
}

type ExcludeResponse struct {
	ID   int64  `json:"id"`
	Item string `json:"item"`
}

type TipResponse struct {
	ID  int64  `json:"id"`
	Tip string `json:"tip"`
}

type FaqResponse struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type GalleryImageResponse struct {
	ID       int64  `json:"id"`
	ImageURL string `json:"imageUrl"`
}

type DestinationResponse struct {
	ID            int64                  `json:"id"`
	Title         string                 `json:"title"`
	Slug          string                 `json:"slug"`
	ImageSrc      string                 `json:"imageSrc"`
	Duration      string                 `json:"duration"`
	ActivityLevel string                 `json:"activityLevel"`
	ActivityType  []string               `json:"activityType"`
	GroupSize     *string                `json:"groupSize"`
	Description   string                 `json:"description"`
	Price         float64                `json:"price"`
	Location      string                 `json:"location"`
	IsRecommended bool                   `json:"isRecommended"`
	IsSpecial     bool                   `json:"isSpecial"`
	Type          entity.DestinationType `json:"type"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`

	Itinerary     []ItineraryItemResponse `json:"itinerary"`
	Includes      []IncludeResponse       `json:"includes"`
	Excludes      []ExcludeResponse       `json:"excludes"`
	Tips          []TipResponse           `json:"tips"`
	Faqs          []FaqResponse           `json:"faqs"`
	GalleryImages []GalleryImageResponse  `json:"galleryImages"`
}

func DestinationToResponse(d *entity.Destination) DestinationResponse {
	activityType := d.ActivityType
	if activityType == nil {
		activityType = []string{}
	}

	return DestinationResponse{
		ID:            d.ID,
		Title:         d.Title,
		Slug:          d.Slug,
		ImageSrc:      d.ImageSrc,
		Duration:      d.Duration,
		ActivityLevel: d.ActivityLevel,
		ActivityType:  activityType,
		GroupSize:     d.GroupSize,
		Description:   d.Description,
		Price:         d.Price,
		Location:      d.Location,
		IsRecommended: d.IsRecommended,
		IsSpecial:     d.IsSpecial,
		Type:          d.Type,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		Itinerary: mapSlice(d.Itinerary, func(it entity.ItineraryItem) ItineraryItemResponse {
			return ItineraryItemResponse{
				ID:    it.ID,
				Day:   it.Day,
				Title: it.Title,
				Details: mapSlice(it.Details, func(dt entity.ItineraryDetail) ItineraryDetailResponse {
					return ItineraryDetailResponse{ID: dt.ID, Detail: dt.Detail}
				}),
			}
		}),
		Includes: mapSlice(d.Includes, func(i entity.Include) IncludeResponse {
			return IncludeResponse{ID: i.ID, Item: i.Item}
		}),
		Excludes: mapSlice(d.Excludes, func(e entity.Exclude) ExcludeResponse {
			return ExcludeResponse{ID: e.ID, Item: e.Item}
		}),
		Tips: mapSlice(d.Tips, func(t entity.Tip) TipResponse {
			return TipResponse{ID: t.ID, Tip: t.Tip}
		}),
		Faqs: mapSlice(d.Faqs, func(f entity.Faq) FaqResponse {
			return FaqResponse{ID: f.ID, Question: f.Question, Answer: f.Answer}
		}),
		GalleryImages: mapSlice(d.GalleryImages, func(g entity.GalleryImage) GalleryImageResponse {
			return GalleryImageResponse{ID: g.ID, ImageURL: g.ImageURL}
		}),
	}
}

func DestinationsToResponse(destinations []*entity.Destination) []DestinationResponse {
	return mapSlice(destinations, func(d *entity.Destination) DestinationResponse {
		return DestinationToResponse(d)
	})
}
