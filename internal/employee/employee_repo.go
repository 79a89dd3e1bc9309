package employee

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	// FindByActivationTokenForUpdate locks the row so a token can only be
	// consumed once even under racing activation calls.
	FindByActivationTokenForUpdate(ctx context.Context, token string) (*Employee, error)
	FindAll(ctx context.Context, skip, limit int) ([]Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Cascade helpers: deleting an employee removes owned time entries and
	// screenshots inside the same transaction, with screenshot keys
	// collected first for best-effort blob cleanup after commit.
	ScreenshotKeysByEmployee(ctx context.Context, id uuid.UUID) ([]string, error)
	DeleteScreenshotsByEmployee(ctx context.Context, id uuid.UUID) error
	DeleteTimeEntriesByEmployee(ctx context.Context, id uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByActivationTokenForUpdate(ctx context.Context, token string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("activation_token = ?", token).
		Where("is_activated = ?", false).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindAll(ctx context.Context, skip, limit int) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(skip).
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}

func (r *repository) ScreenshotKeysByEmployee(ctx context.Context, id uuid.UUID) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).
		Raw(`SELECT file_name FROM screenshots WHERE employee_id = ?`, id).
		Scan(&keys).Error
	return keys, err
}

func (r *repository) DeleteScreenshotsByEmployee(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec(`DELETE FROM screenshots WHERE employee_id = ?`, id).Error
}

func (r *repository) DeleteTimeEntriesByEmployee(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec(`DELETE FROM time_entries WHERE employee_id = ?`, id).Error
}
