package screenshot

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilter narrows FindAll. Nil fields are not applied.
type ListFilter struct {
	EmployeeID  *uuid.UUID
	TimeEntryID *uuid.UUID
	From        *time.Time
	To          *time.Time
	Skip        int
	Limit       int
}

// entryRow is the slice of a time entry the admission checks need. Queried
// raw to keep this package off the time entry internals.
type entryRow struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
	EndTime    *time.Time
}

//go:generate mockgen -source=screenshot_repo.go -destination=mock/screenshot_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, s *Screenshot) error
	FindByID(ctx context.Context, id uuid.UUID) (*Screenshot, error)
	FindAll(ctx context.Context, f ListFilter) ([]Screenshot, error)
	Delete(ctx context.Context, id uuid.UUID) error

	FindTimeEntry(ctx context.Context, id uuid.UUID) (*entryRow, error)
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

func (r *repository) Create(ctx context.Context, s *Screenshot) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Screenshot, error) {
	var s Screenshot
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindAll(ctx context.Context, f ListFilter) ([]Screenshot, error) {
	q := r.db.WithContext(ctx).Order("captured_at DESC")
	if f.EmployeeID != nil {
		q = q.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.TimeEntryID != nil {
		q = q.Where("time_entry_id = ?", *f.TimeEntryID)
	}
	if f.From != nil {
		q = q.Where("captured_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("captured_at <= ?", *f.To)
	}
	var rows []Screenshot
	err := q.Offset(f.Skip).Limit(f.Limit).Find(&rows).Error
	return rows, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Screenshot{}, "id = ?", id).Error
}

func (r *repository) FindTimeEntry(ctx context.Context, id uuid.UUID) (*entryRow, error) {
	var row entryRow
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, employee_id, end_time FROM time_entries WHERE id = ?`, id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}
