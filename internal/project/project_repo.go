package project

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=project_repo.go -destination=mock/project_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, p *Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	FindByName(ctx context.Context, name string) (*Project, error)
	FindAll(ctx context.Context, skip, limit int) ([]Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Cascade helpers: a project delete removes its tasks and, through them,
	// time entries and screenshots, all in the owning transaction.
	ScreenshotKeysByProject(ctx context.Context, id uuid.UUID) ([]string, error)
	DeleteScreenshotsByProject(ctx context.Context, id uuid.UUID) error
	DeleteTimeEntriesByProject(ctx context.Context, id uuid.UUID) error
	DeleteTasksByProject(ctx context.Context, id uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, p *Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	var p Project
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*Project, error) {
	var p Project
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAll(ctx context.Context, skip, limit int) ([]Project, error) {
	var rows []Project
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(skip).
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, p *Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Project{}, "id = ?", id).Error
}

func (r *repository) ScreenshotKeysByProject(ctx context.Context, id uuid.UUID) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT s.file_name
		FROM screenshots s
		JOIN time_entries te ON te.id = s.time_entry_id
		JOIN tasks t ON t.id = te.task_id
		WHERE t.project_id = ?
	`, id).Scan(&keys).Error
	return keys, err
}

func (r *repository) DeleteScreenshotsByProject(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
		DELETE FROM screenshots
		WHERE time_entry_id IN (
			SELECT te.id FROM time_entries te
			JOIN tasks t ON t.id = te.task_id
			WHERE t.project_id = ?
		)
	`, id).Error
}

func (r *repository) DeleteTimeEntriesByProject(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
		DELETE FROM time_entries
		WHERE task_id IN (SELECT id FROM tasks WHERE project_id = ?)
	`, id).Error
}

func (r *repository) DeleteTasksByProject(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM tasks WHERE project_id = ?`, id).Error
}
