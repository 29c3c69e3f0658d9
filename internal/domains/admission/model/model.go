package model

import (
	"fmt"
	"rkhub/shared/model"
)

const (
	TableName  = "admissions"
	EntityName = "admission"

	FieldID      = "id"
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldCourse  = "course"
	FieldMessage = "message"
)

// Admission is an enquiry submitted from the public admission form.
// Rows are never updated.
type Admission struct {
	ID      string  `db:"id"      insert:"-"`
	Name    string  `db:"name"`
	Email   string  `db:"email"`
	Phone   string  `db:"phone"`
	Course  string  `db:"course"`
	Message *string `db:"message"`
	model.Metadata
}

// Courses is the catalog offered on the admission form, in display order.
var Courses = buildCourses()

func buildCourses() []string {
	courses := make([]string, 0, 12)
	for class := 1; class <= 10; class++ {
		courses = append(courses, fmt.Sprintf("Class %d All Subjects", class))
	}

	return append(courses, "Class 11 PCM", "Class 12 PCB")
}
