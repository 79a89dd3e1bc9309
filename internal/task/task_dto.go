package task

import "time"

type CreateTaskRequest struct {
	ProjectID   string  `json:"project_id" binding:"required,uuid"`
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

type UpdateTaskRequest struct {
	ProjectID   *string `json:"project_id" binding:"omitempty,uuid"`
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

type TaskResponse struct {
	ID          string  `json:"id"`
	ProjectID   string  `json:"project_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func mapToResponse(t *Task) *TaskResponse {
	return &TaskResponse{
		ID:          t.ID.String(),
		ProjectID:   t.ProjectID.String(),
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(rows []Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *mapToResponse(&rows[i]))
	}
	return out
}
