package task

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=task_repo.go -destination=mock/task_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindAll(ctx context.Context, projectID *uuid.UUID, skip, limit int) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id uuid.UUID) error

	ProjectExists(ctx context.Context, projectID uuid.UUID) (bool, error)

	// Cascade helpers for a task delete.
	ScreenshotKeysByTask(ctx context.Context, id uuid.UUID) ([]string, error)
	DeleteScreenshotsByTask(ctx context.Context, id uuid.UUID) error
	DeleteTimeEntriesByTask(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	var t Task
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindAll(ctx context.Context, projectID *uuid.UUID, skip, limit int) ([]Task, error) {
	q := r.db.WithContext(ctx).Order("created_at ASC")
	if projectID != nil {
		q = q.Where("project_id = ?", *projectID)
	}
	var rows []Task
	err := q.Offset(skip).Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Task{}, "id = ?", id).Error
}

func (r *repository) ProjectExists(ctx context.Context, projectID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.WithContext(ctx).
		Raw(`SELECT EXISTS (SELECT 1 FROM projects WHERE id = ?)`, projectID).
		Scan(&exists).Error
	return exists, err
}

func (r *repository) ScreenshotKeysByTask(ctx context.Context, id uuid.UUID) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT s.file_name
		FROM screenshots s
		JOIN time_entries te ON te.id = s.time_entry_id
		WHERE te.task_id = ?
	`, id).Scan(&keys).Error
	return keys, err
}

func (r *repository) DeleteScreenshotsByTask(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
		DELETE FROM screenshots
		WHERE time_entry_id IN (SELECT id FROM time_entries WHERE task_id = ?)
	`, id).Error
}

func (r *repository) DeleteTimeEntriesByTask(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM time_entries WHERE task_id = ?`, id).Error
}
