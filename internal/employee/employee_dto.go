package employee

import "time"

type CreateEmployeeRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	IsActive *bool  `json:"is_active"`
}

type UpdateEmployeeRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	IsActive *bool   `json:"is_active"`
}

type ActivateRequest struct {
	Token    string  `json:"token" binding:"required"`
	Password *string `json:"password"`
}

type EmployeeResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	IsActive    bool    `json:"is_active"`
	IsActivated bool    `json:"is_activated"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at,omitempty"`
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:          e.ID.String(),
		Name:        e.Name,
		Email:       e.Email,
		IsActive:    e.IsActive,
		IsActivated: e.IsActivated,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if !e.UpdatedAt.IsZero() {
		v := e.UpdatedAt.UTC().Format(time.RFC3339)
		resp.UpdatedAt = &v
	}
	return resp
}

func mapToListResponse(rows []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		res[i] = mapToResponse(e)
	}
	return res
}
