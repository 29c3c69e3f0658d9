package dto

import (
	"rkhub/internal/domains/gallery/model"
	gDto "rkhub/shared/dto"
	"rkhub/shared/form"
)

// FormSchema describes the admin "Add Gallery Item" form.
var FormSchema = form.Schema{
	Name:     model.EntityName,
	Fields:   []string{model.FieldTitle, model.FieldImageURL, model.FieldDescription},
	Required: []string{model.FieldTitle, model.FieldImageURL},
}

type CreateGalleryItemRequest struct {
	Title       string  `json:"title"       validate:"required,notblank,max=200"`
	ImageURL    string  `json:"image_url"   validate:"required,url,max=2048"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

func FromValues(values form.Values) CreateGalleryItemRequest {
	return CreateGalleryItemRequest{
		Title:       values.Required(model.FieldTitle),
		ImageURL:    values.Required(model.FieldImageURL),
		Description: values.Optional(model.FieldDescription),
	}
}

func (c *CreateGalleryItemRequest) ToModel() model.GalleryItem {
	return model.GalleryItem{
		Title:       c.Title,
		ImageURL:    c.ImageURL,
		Description: c.Description,
	}
}

type GalleryItemResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	ImageURL    string  `json:"image_url"`
	Description *string `json:"description"`
	gDto.Metadata
}

func (r *GalleryItemResponse) FromModel(m model.GalleryItem) {
	r.ID = m.ID
	r.Title = m.Title
	r.ImageURL = m.ImageURL
	r.Description = m.Description
	r.Metadata.FromModel(m.Metadata)
}

func FromModels(models []model.GalleryItem) []GalleryItemResponse {
	res := make([]GalleryItemResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}

type UploadImageRequest struct {
	FileName    string
	ContentType string `validate:"required,mimetypes=image/png image/jpeg image/webp"`
	Size        int64  `validate:"gt=0,maxfilesize=10"`
	Data        []byte `validate:"-"`
}

type UploadImageResponse struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	FileName     string `json:"file_name"`
}
