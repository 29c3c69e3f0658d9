package dto

import (
	"rkhub/internal/domains/announcement/model"
	gDto "rkhub/shared/dto"
	"rkhub/shared/form"
	"rkhub/shared/markdown"
)

// FormSchema describes the admin "Add Update" form.
var FormSchema = form.Schema{
	Name:     model.EntityName,
	Fields:   []string{model.FieldTitle, model.FieldContent, model.FieldImageURL},
	Required: []string{model.FieldTitle, model.FieldContent},
}

type CreateAnnouncementRequest struct {
	Title    string  `json:"title"     validate:"required,notblank,max=200"`
	Content  string  `json:"content"   validate:"required,notblank,max=10000"`
	ImageURL *string `json:"image_url" validate:"omitempty,url,max=2048"`
}

// FromValues builds the request from form values; a blank image URL is absent.
func FromValues(values form.Values) CreateAnnouncementRequest {
	return CreateAnnouncementRequest{
		Title:    values.Required(model.FieldTitle),
		Content:  values.Required(model.FieldContent),
		ImageURL: values.Optional(model.FieldImageURL),
	}
}

func (c *CreateAnnouncementRequest) ToModel() model.Announcement {
	return model.Announcement{
		Title:    c.Title,
		Content:  c.Content,
		ImageURL: c.ImageURL,
	}
}

type AnnouncementResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	ContentHTML string  `json:"content_html"`
	ImageURL    *string `json:"image_url"`
	gDto.Metadata
}

func (r *AnnouncementResponse) FromModel(m model.Announcement) {
	r.ID = m.ID
	r.Title = m.Title
	r.Content = m.Content
	r.ContentHTML = markdown.ToHTML(m.Content)
	r.ImageURL = m.ImageURL
	r.Metadata.FromModel(m.Metadata)
}

func FromModels(models []model.Announcement) []AnnouncementResponse {
	res := make([]AnnouncementResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}
