package handler

import (
	"strings"
	"time"
)

// --- Request payloads ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *registerRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// updateProfileRequest uses pointers so an absent field is distinguishable
// from an empty one; present fields are validated even when empty.
type updateProfileRequest struct {
	Name     *string `json:"name"     validate:"omitnil,min=1,max=100"`
	Email    *string `json:"email"    validate:"omitnil,email"`
	Password *string `json:"password" validate:"omitnil,min=6"`
}

func (r *updateProfileRequest) normalize() {
	r.Name = trimPtr(r.Name)
	r.Email = trimPtr(r.Email)
}

// --- Response payloads ---

type accountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	User  accountResponse `json:"user"`
	Token string          `json:"token"`
}

type profileResponse struct {
	User accountResponse `json:"user"`
}

type accountListResponse struct {
	Count int               `json:"count"`
	Users []accountResponse `json:"users"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
