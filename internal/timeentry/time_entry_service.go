package timeentry

import (
	"context"
	"errors"
	"time"

	"go-timetrack/internal/netmeta"
	"go-timetrack/internal/shared/contextutil"
	"go-timetrack/internal/storage"
	timeentryerrors "go-timetrack/internal/timeentry/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=time_entry_service.go -destination=mock/time_entry_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, employeeID uuid.UUID, req ClockInRequest) (*TimeEntryResponse, error)
	Stop(ctx context.Context, employeeID uuid.UUID, entryID string) (*TimeEntryResponse, error)
	GetAll(ctx context.Context, q ListQuery) ([]TimeEntryResponse, error)
	GetByID(ctx context.Context, id string) (*TimeEntryResponse, error)
	Update(ctx context.Context, employeeID uuid.UUID, id string, req UpdateTimeEntryRequest) (*TimeEntryResponse, error)
	Delete(ctx context.Context, id string) error
}

// ListQuery carries the raw query parameters of a list request.
type ListQuery struct {
	EmployeeID string
	TaskID     string
	ActiveOnly bool
	Skip       int
	Limit      int
}

type service struct {
	db     *gorm.DB
	repo   Repository
	store  storage.Store
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, store storage.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("timeentry.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeentry.service")
	}
	return &service{db: db, repo: repo, store: store, logger: l}
}

// ClockIn opens a session for the employee. At most one open session per
// employee: a transactional pre-check catches the common case and the
// partial unique index settles races.
func (s *service) ClockIn(ctx context.Context, employeeID uuid.UUID, req ClockInRequest) (*TimeEntryResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	taskID, err := uuid.Parse(req.TaskID)
	if err != nil {
		return nil, timeentryerrors.ErrTaskMissing
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ok, err := qtx.TaskExists(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, timeentryerrors.ErrTaskMissing
	}

	if _, err := qtx.FindActiveByEmployee(ctx, employeeID); err == nil {
		return nil, timeentryerrors.ErrActiveEntryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ip, mac := netmeta.Sanitize(req.IPAddress, req.MACAddress)

	entry := &TimeEntry{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		TaskID:     taskID,
		StartTime:  time.Now().UTC(),
		IPAddress:  ip,
		MACAddress: mac,
	}
	if err := qtx.Create(ctx, entry); err != nil {
		s.logger.Error("clock-in persist failed",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID.String()),
			zap.Error(err),
		)
		return nil, mapRepoError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, mapRepoError(err)
	}

	s.logger.Info("clock-in success",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID.String()),
		zap.String("time_entry_id", entry.ID.String()),
	)
	return mapToResponse(entry), nil
}

// Stop clocks the entry out. Only the owner may stop it, and a closed entry
// stays closed.
func (s *service) Stop(ctx context.Context, employeeID uuid.UUID, entryID string) (*TimeEntryResponse, error) {
	id, err := uuid.Parse(entryID)
	if err != nil {
		return nil, timeentryerrors.ErrInvalidTimeEntryID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entry, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if entry.EmployeeID != employeeID {
		return nil, timeentryerrors.ErrNotOwner
	}
	if entry.EndTime != nil {
		return nil, timeentryerrors.ErrAlreadyClosed
	}

	// End must land strictly after start even when the clock reads earlier
	// than the recorded start.
	now := time.Now().UTC()
	if !now.After(entry.StartTime) {
		now = entry.StartTime.Add(time.Second)
	}
	entry.EndTime = &now

	if err := qtx.Update(ctx, entry); err != nil {
		return nil, mapRepoError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info("clock-out success",
		zap.String("employee_id", employeeID.String()),
		zap.String("time_entry_id", entry.ID.String()),
		zap.Duration("duration", entry.Duration()),
	)
	return mapToResponse(entry), nil
}

func (s *service) GetAll(ctx context.Context, q ListQuery) ([]TimeEntryResponse, error) {
	f := ListFilter{ActiveOnly: q.ActiveOnly, Skip: q.Skip, Limit: q.Limit}
	if f.Limit <= 0 {
		f.Limit = 100
	}
	if q.EmployeeID != "" {
		id, err := uuid.Parse(q.EmployeeID)
		if err != nil {
			return nil, timeentryerrors.ErrInvalidTimeEntryID
		}
		f.EmployeeID = &id
	}
	if q.TaskID != "" {
		id, err := uuid.Parse(q.TaskID)
		if err != nil {
			return nil, timeentryerrors.ErrInvalidTimeEntryID
		}
		f.TaskID = &id
	}

	rows, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*TimeEntryResponse, error) {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return nil, timeentryerrors.ErrInvalidTimeEntryID
	}
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return mapToResponse(entry), nil
}

func (s *service) Update(ctx context.Context, employeeID uuid.UUID, id string, req UpdateTimeEntryRequest) (*TimeEntryResponse, error) {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return nil, timeentryerrors.ErrInvalidTimeEntryID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entry, err := qtx.FindByIDForUpdate(ctx, entryID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if entry.EmployeeID != employeeID {
		return nil, timeentryerrors.ErrNotOwner
	}

	if req.EndTime != nil {
		end := req.EndTime.UTC()
		entry.EndTime = &end
	}
	if entry.EndTime != nil && !entry.EndTime.After(entry.StartTime) {
		return nil, timeentryerrors.ErrEndBeforeStart
	}
	if req.IPAddress != nil || req.MACAddress != nil {
		ip, mac := netmeta.Sanitize(req.IPAddress, req.MACAddress)
		if req.IPAddress != nil {
			entry.IPAddress = ip
		}
		if req.MACAddress != nil {
			entry.MACAddress = mac
		}
	}

	if err := qtx.Update(ctx, entry); err != nil {
		return nil, mapRepoError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, mapRepoError(err)
	}
	return mapToResponse(entry), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return timeentryerrors.ErrInvalidTimeEntryID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, entryID); err != nil {
		return mapRepoError(err)
	}

	blobKeys, err := qtx.ScreenshotKeysByEntry(ctx, entryID)
	if err != nil {
		return err
	}

	if err := qtx.DeleteScreenshotsByEntry(ctx, entryID); err != nil {
		return err
	}
	if err := qtx.Delete(ctx, entryID); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

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

	s.logger.Info("delete time entry success", zap.String("time_entry_id", id))
	return nil
}
