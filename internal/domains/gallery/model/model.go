package model

import "rkhub/shared/model"

const (
	TableName  = "gallery"
	EntityName = "gallery"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldImageURL    = "image_url"
	FieldDescription = "description"

	ThumbnailDirectory = "gallery/thumbnails"
)

type GalleryItem struct {
	ID          string  `db:"id"          insert:"-"`
	Title       string  `db:"title"`
	ImageURL    string  `db:"image_url"`
	Description *string `db:"description"`
	model.Metadata
}
