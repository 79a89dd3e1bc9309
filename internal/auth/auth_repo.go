package auth

import (
	"context"

	"go-timetrack/internal/employee"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// FindLoginCandidateForUpdate locks the row so the fingerprint write that
	// follows cannot race a concurrent logout or login.
	FindLoginCandidateForUpdate(ctx context.Context, email string) (*employee.Employee, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*employee.Employee, error)
	// FindBySubject resolves a token's claims to a live account. Email is part
	// of the lookup as an integrity check against stale claims.
	FindBySubject(ctx context.Context, id uuid.UUID, email string) (*employee.Employee, error)
	SetFingerprint(ctx context.Context, id uuid.UUID, fingerprint *string) error
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

func (r *repository) FindLoginCandidateForUpdate(ctx context.Context, email string) (*employee.Employee, error) {
	var e employee.Employee
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("email = ?", email).
		Where("is_active = ?", true).
		Where("is_activated = ?", true).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	var e employee.Employee
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindBySubject(ctx context.Context, id uuid.UUID, email string) (*employee.Employee, error) {
	var e employee.Employee
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("email = ?", email).
		Where("is_active = ?", true).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) SetFingerprint(ctx context.Context, id uuid.UUID, fingerprint *string) error {
	return r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Where("id = ?", id).
		Update("session_fingerprint", fingerprint).Error
}
