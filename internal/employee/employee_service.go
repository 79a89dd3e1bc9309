package employee

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	employeeerrors "go-timetrack/internal/employee/errors"
	"go-timetrack/internal/events"
	"go-timetrack/internal/messaging/kafka"
	"go-timetrack/internal/security"
	"go-timetrack/internal/shared/contextutil"
	"go-timetrack/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, skip, limit int) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	Activate(ctx context.Context, req ActivateRequest) (EmployeeResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	passwords *security.PasswordManager
	outbox    kafka.OutboxRepository
	store     storage.Store
	logger    *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, passwords *security.PasswordManager) Service {
	return NewServiceWithOutbox(db, repo, passwords, nil, nil)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	passwords *security.PasswordManager,
	outbox kafka.OutboxRepository,
	store storage.Store,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		passwords: passwords,
		outbox:    outbox,
		store:     store,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByEmail(ctx, req.Email); err == nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return EmployeeResponse{}, err
	}

	activationToken, err := generateActivationToken()
	if err != nil {
		return EmployeeResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	empl := &Employee{
		ID:              uuid.New(),
		Name:            req.Name,
		Email:           req.Email,
		IsActive:        isActive,
		IsActivated:     false,
		ActivationToken: &activationToken,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:       "employee_created",
			RequestID:       rid,
			EmployeeID:      empl.ID.String(),
			Email:           empl.Email,
			Name:            empl.Name,
			ActivationToken: activationToken,
			OccurredAt:      time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return EmployeeResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, skip, limit int) ([]EmployeeResponse, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.repo.FindAll(ctx, skip, limit)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, employeeID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		empl.Name = *req.Name
	}
	if req.Email != nil && *req.Email != empl.Email {
		if existing, err := qtx.FindByEmail(ctx, *req.Email); err == nil && existing.ID != employeeID {
			return EmployeeResponse{}, employeeerrors.ErrEmailTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, err
		}
		empl.Email = *req.Email
	}
	if req.IsActive != nil {
		empl.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, empl); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, employeeID); err != nil {
		return mapRepositoryError(err)
	}

	blobKeys, err := qtx.ScreenshotKeysByEmployee(ctx, employeeID)
	if err != nil {
		return err
	}

	// Cascade order: screenshots, then time entries, then the employee.
	if err := qtx.DeleteScreenshotsByEmployee(ctx, employeeID); err != nil {
		return err
	}
	if err := qtx.DeleteTimeEntriesByEmployee(ctx, employeeID); err != nil {
		return err
	}
	if err := qtx.Delete(ctx, employeeID); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	// Blob cleanup is best effort after the rows are gone.
	if s.store != nil {
		for _, key := range blobKeys {
			if err := s.store.Delete(ctx, key); err != nil {
				s.logger.Warn("cascade blob delete failed",
					zap.String("key", key),
					zap.Error(err),
				)
			}
		}
	}

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) Activate(ctx context.Context, req ActivateRequest) (EmployeeResponse, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByActivationTokenForUpdate(ctx, req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrInvalidActivationToken
		}
		return EmployeeResponse{}, err
	}

	if req.Password != nil {
		if ok, reason := s.passwords.CheckStrength(*req.Password); !ok {
			return EmployeeResponse{}, employeeerrors.ErrWeakPassword(reason)
		}
		hashed, err := s.passwords.Hash(*req.Password)
		if err != nil {
			return EmployeeResponse{}, err
		}
		empl.PasswordHash = &hashed
	}

	empl.IsActivated = true
	empl.ActivationToken = nil // single use

	if err := qtx.Update(ctx, empl); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("employee activated", zap.String("employee_id", empl.ID.String()))
	return mapToResponse(*empl), nil
}

func generateActivationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
