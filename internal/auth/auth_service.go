package auth

import (
	"context"
	"errors"

	autherrors "go-timetrack/internal/auth/errors"
	"go-timetrack/internal/employee"
	"go-timetrack/internal/security"
	"go-timetrack/internal/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	// Login verifies credentials and issues a fresh access token. Issuing a
	// new token replaces the stored fingerprint, silently invalidating any
	// previously issued token for the same employee.
	Login(ctx context.Context, email, password string) (string, error)
	// Logout clears the stored fingerprint so no outstanding token verifies.
	Logout(ctx context.Context, employeeID uuid.UUID) error
	// Authenticate resolves a presented bearer token to a live employee.
	Authenticate(ctx context.Context, rawToken string) (*employee.Employee, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	tokens    *token.Manager
	passwords *security.PasswordManager
	logger    *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, tokens *token.Manager, passwords *security.PasswordManager, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		tokens:    tokens,
		passwords: passwords,
		logger:    l,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return "", tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindLoginCandidateForUpdate(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", autherrors.ErrInvalidCredentials
		}
		return "", err
	}

	if empl.PasswordHash == nil {
		return "", autherrors.ErrPasswordNotSet
	}
	if !s.passwords.Verify(password, *empl.PasswordHash) {
		s.logger.Warn("login password mismatch", zap.String("employee_id", empl.ID.String()))
		return "", autherrors.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(empl.ID, empl.Email)
	if err != nil {
		return "", err
	}

	fingerprint := s.tokens.Fingerprint(accessToken)
	if err := qtx.SetFingerprint(ctx, empl.ID, &fingerprint); err != nil {
		return "", err
	}
	if err := tx.Commit().Error; err != nil {
		return "", err
	}

	s.logger.Info("login success", zap.String("employee_id", empl.ID.String()))
	return accessToken, nil
}

func (s *service) Logout(ctx context.Context, employeeID uuid.UUID) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByIDForUpdate(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return autherrors.ErrEmployeeNotFound
		}
		return err
	}
	if err := qtx.SetFingerprint(ctx, employeeID, nil); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.logger.Info("logout success", zap.String("employee_id", employeeID.String()))
	return nil
}

func (s *service) Authenticate(ctx context.Context, rawToken string) (*employee.Employee, error) {
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil, err
	}

	empl, err := s.repo.FindBySubject(ctx, claims.EmployeeID, claims.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	// Only the most recently issued token is honored. A null fingerprint
	// means the session was ended by logout, so nothing verifies.
	fingerprint := s.tokens.Fingerprint(rawToken)
	if empl.SessionFingerprint == nil || *empl.SessionFingerprint != fingerprint {
		return nil, autherrors.ErrTokenRevoked
	}

	return empl, nil
}
