package timeentry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListFilter narrows FindAll. Nil fields are not applied.
type ListFilter struct {
	EmployeeID *uuid.UUID
	TaskID     *uuid.UUID
	ActiveOnly bool
	Skip       int
	Limit      int
}

//go:generate mockgen -source=time_entry_repo.go -destination=mock/time_entry_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *TimeEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*TimeEntry, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*TimeEntry, error)
	FindActiveByEmployee(ctx context.Context, employeeID uuid.UUID) (*TimeEntry, error)
	FindAll(ctx context.Context, f ListFilter) ([]TimeEntry, error)
	Update(ctx context.Context, e *TimeEntry) error
	Delete(ctx context.Context, id uuid.UUID) error

	TaskExists(ctx context.Context, taskID uuid.UUID) (bool, error)

	// Cascade helpers for an entry delete.
	ScreenshotKeysByEntry(ctx context.Context, id uuid.UUID) ([]string, error)
	DeleteScreenshotsByEntry(ctx context.Context, id uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, e *TimeEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByIDForUpdate locks the row so clock-out and concurrent edits
// serialize on it.
func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindActiveByEmployee(ctx context.Context, employeeID uuid.UUID) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND end_time IS NULL", employeeID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindAll(ctx context.Context, f ListFilter) ([]TimeEntry, error) {
	q := r.db.WithContext(ctx).Order("start_time DESC")
	if f.EmployeeID != nil {
		q = q.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.TaskID != nil {
		q = q.Where("task_id = ?", *f.TaskID)
	}
	if f.ActiveOnly {
		q = q.Where("end_time IS NULL")
	}
	var rows []TimeEntry
	err := q.Offset(f.Skip).Limit(f.Limit).Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, e *TimeEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&TimeEntry{}, "id = ?", id).Error
}

func (r *repository) TaskExists(ctx context.Context, taskID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.WithContext(ctx).
		Raw(`SELECT EXISTS (SELECT 1 FROM tasks WHERE id = ?)`, taskID).
		Scan(&exists).Error
	return exists, err
}

func (r *repository) ScreenshotKeysByEntry(ctx context.Context, id uuid.UUID) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).
		Raw(`SELECT file_name FROM screenshots WHERE time_entry_id = ?`, id).
		Scan(&keys).Error
	return keys, err
}

func (r *repository) DeleteScreenshotsByEntry(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec(`DELETE FROM screenshots WHERE time_entry_id = ?`, id).Error
}
