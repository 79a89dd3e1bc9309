package task

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index:idx_tasks_project_id"`
	Name        string    `gorm:"size:255;not null"`
	Description *string   `gorm:"size:2000"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Task) TableName() string {
	return "tasks"
}
