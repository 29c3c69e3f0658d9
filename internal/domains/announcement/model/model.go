package model

import "rkhub/shared/model"

const (
	TableName  = "updates"
	EntityName = "update"

	FieldID       = "id"
	FieldTitle    = "title"
	FieldContent  = "content"
	FieldImageURL = "image_url"
)

// Announcement is a row of the updates table. ImageURL is NULL when absent.
type Announcement struct {
	ID       string  `db:"id"        insert:"-"`
	Title    string  `db:"title"`
	Content  string  `db:"content"`
	ImageURL *string `db:"image_url"`
	model.Metadata
}
