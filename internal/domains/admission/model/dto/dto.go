package dto

import (
	"rkhub/internal/domains/admission/model"
	gDto "rkhub/shared/dto"
	"rkhub/shared/form"
)

// FormSchema describes the public admission enquiry form.
var FormSchema = form.Schema{
	Name:     model.EntityName,
	Fields:   []string{model.FieldName, model.FieldEmail, model.FieldPhone, model.FieldCourse, model.FieldMessage},
	Required: []string{model.FieldName, model.FieldEmail, model.FieldPhone, model.FieldCourse},
}

type CreateAdmissionRequest struct {
	Name    string  `json:"name"    validate:"required,notblank,max=100"`
	Email   string  `json:"email"   validate:"required,email,max=254"`
	Phone   string  `json:"phone"   validate:"required,notblank,max=20"`
	Course  string  `json:"course"  validate:"required,notblank,max=100"`
	Message *string `json:"message" validate:"omitempty,max=2000"`
}

// FromValues builds the request from form values; a blank message is absent.
func FromValues(values form.Values) CreateAdmissionRequest {
	return CreateAdmissionRequest{
		Name:    values.Required(model.FieldName),
		Email:   values.Required(model.FieldEmail),
		Phone:   values.Required(model.FieldPhone),
		Course:  values.Required(model.FieldCourse),
		Message: values.Optional(model.FieldMessage),
	}
}

func (c *CreateAdmissionRequest) ToModel() model.Admission {
	return model.Admission{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Course:  c.Course,
		Message: c.Message,
	}
}

type AdmissionResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Course  string  `json:"course"`
	Message *string `json:"message"`
	gDto.Metadata
}

func (r *AdmissionResponse) FromModel(m model.Admission) {
	r.ID = m.ID
	r.Name = m.Name
	r.Email = m.Email
	r.Phone = m.Phone
	r.Course = m.Course
	r.Message = m.Message
	r.Metadata.FromModel(m.Metadata)
}

func FromModels(models []model.Admission) []AdmissionResponse {
	res := make([]AdmissionResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}

// SubmittedEvent is published after an enquiry is stored.
type SubmittedEvent struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Course    string  `json:"course"`
	Message   *string `json:"message,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func NewSubmittedEvent(m model.Admission) SubmittedEvent {
	var meta gDto.Metadata
	meta.FromModel(m.Metadata)

	return SubmittedEvent{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Course:    m.Course,
		Message:   m.Message,
		CreatedAt: meta.CreatedAt,
	}
}

type CoursesResponse struct {
	Courses []string `json:"courses"`
}
