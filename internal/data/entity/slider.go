package entity

type Slider struct {
	Base
	Title        string  `db:"title"`
	Subtitle     string  `db:"subtitle"`
	Location     string  `db:"location"`
	ImageURL     string  `db:"image_url"`
	ButtonText   *string `db:"button_text"`
	ButtonURL    *string `db:"button_url"`
	IsActive     bool    `db:"is_active"`
	DisplayOrder int     `db:"display_order"`
}

type ReorderDirection string

const (
	ReorderUp   ReorderDirection = "up"
	ReorderDown ReorderDirection = "down"
)
