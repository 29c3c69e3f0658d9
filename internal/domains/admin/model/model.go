package model

import (
	"rkhub/shared/model"
	"time"
)

const (
	TableName  = "admins"
	EntityName = "admin"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldActive    = "active"
	FieldLastLogin = "last_login"
)

// Admin is an account allowed into the administrative panel. Password holds
// a bcrypt hash.
type Admin struct {
	ID        string     `db:"id"         insert:"-"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	Role      string     `db:"role"`
	Active    bool       `db:"active"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}
