package entity

type Testimonial struct {
	Base
	Name            string   `db:"name"`
	AvatarImageURL  *string  `db:"avatar_image_url"`
	Rating          int      `db:"rating"` // 1-5
	TestimonialText string   `db:"testimonial_text"`
	TripImageURLs   []string `db:"trip_image_urls"`
}
