package dto

import (
	"rkhub/internal/domains/admin/model"
	"rkhub/shared/constant"
	gDto "rkhub/shared/dto"
	"strings"
	"time"
)

type CreateAdminRequest struct {
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=superadmin admin"`
}

// Normalize trims the email and lower-cases it.
func (r *CreateAdminRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *CreateAdminRequest) ToModel(hashedPassword string) model.Admin {
	role := r.Role
	if role == constant.Empty {
		role = constant.RoleAdmin
	}

	return model.Admin{
		Email:    r.Email,
		Password: hashedPassword,
		Role:     role,
		Active:   true,
	}
}

type AdminResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login"`
	gDto.Metadata
}

func (r *AdminResponse) FromModel(m model.Admin) {
	r.ID = m.ID
	r.Email = m.Email
	r.Role = m.Role
	r.Active = m.Active
	r.LastLogin = m.LastLogin
	r.Metadata.FromModel(m.Metadata)
}
