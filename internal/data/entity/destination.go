package entity

type DestinationType string

const (
	DestinationTypeNational      DestinationType = "national"
	DestinationTypeInternational DestinationType = "international"
)

func (t DestinationType) Valid() bool {
	return t == DestinationTypeNational || t == DestinationTypeInternational
}

// Destination is the aggregate root; its child collections are owned rows
// keyed by destination_id and removed with it.
type Destination struct {
	Base
	Title         string          `db:"title"`
	Slug          string          `db:"slug"`
	ImageSrc      string          `db:"image_src"`
	Duration      string          `db:"duration"`
	ActivityLevel string          `db:"activity_level"`
	ActivityType  []string        `db:"activity_type"`
	GroupSize     *string         `db:"group_size"`
	Description   string          `db:"description"`
	Price         float64         `db:"price"`
	Location      string          `db:"location"`
	IsRecommended bool            `db:"is_recommended"`
	IsSpecial     bool            `db:"is_special"`
	Type          DestinationType `db:"type"`

	Itinerary     []ItineraryItem
	Includes      []Include
	Excludes      []Exclude
	Tips          []Tip
	Faqs          []Faq
	GalleryImages []GalleryImage
}

type ItineraryItem struct {
	ID            int64  `db:"id"`
	DestinationID int64  `db:"destination_id"`
	Day           string `db:"day"`
	Title         string `db:"title"`
	Details       []ItineraryDetail
}

type ItineraryDetail struct {
	ID              int64  `db:"id"`
	ItineraryItemID int64  `db:"itinerary_item_id"`
	Detail          string `db:"detail"`
}

type Include struct {
	ID            int64  `db:"id"`
	DestinationID int64  `db:"destination_id"`
	Item          string `db:"item"`
}

type Exclude struct {
	ID            int64  `db:"id"`
	DestinationID int64  `db:"destination_id"`
	Item          string `db:"item"`
}

type Tip struct {
	ID            int64  `db:"id"`
	DestinationID int64  `db:"destination_id"`
	Tip           string `db:"tip"`
}

type Faq struct {
	ID            int64  `db:"id"`
	DestinationID int64  `db:"destination_id"`
	Question      string `db:"question"`
	Answer        string `db:"answer"`
}

type GalleryImage struct {
	ID            int64  `db:"id"`
	DestinationID int64  `db:"destination_id"`
	ImageURL      string `db:"image_url"`
}

// AssetURLs lists the main image and every gallery image
func (d *Destination) AssetURLs() []string {
	urls := make([]string, 0, len(d.GalleryImages)+1)
	if d.ImageSrc != "" {
		urls = append(urls, d.ImageSrc)
	}
	for _, img := range d.GalleryImages {
		if img.ImageURL != "" {
			urls = append(urls, img.ImageURL)
		}
	}
	return urls
}

// DestinationPatch carries a partial update. A nil scalar is left unchanged;
// a nil collection is left untouched while a non-nil one, even empty,
// replaces the stored set.
type DestinationPatch struct {
	Title         *string
	Slug          *string
	ImageSrc      *string
	Duration      *string
	ActivityLevel *string
	ActivityType  *[]string
	GroupSize     *string
	Description   *string
	Price         *float64
	Location      *string
	IsRecommended *bool
	IsSpecial     *bool
	Type          *DestinationType

	Itinerary     *[]ItineraryItem
	Includes      *[]Include
	Excludes      *[]Exclude
	Tips          *[]Tip
	Faqs          *[]Faq
	GalleryImages *[]GalleryImage
}
