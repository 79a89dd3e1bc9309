package screenshot

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-timetrack/internal/netmeta"
	screenshoterrors "go-timetrack/internal/screenshot/errors"
	"go-timetrack/internal/shared/apperror"
	"go-timetrack/internal/shared/contextutil"
	"go-timetrack/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=screenshot_service.go -destination=mock/screenshot_service_mock.go -package=mock
type Service interface {
	Upload(ctx context.Context, callerID uuid.UUID, req UploadRequest) (*ScreenshotResponse, error)
	GetAll(ctx context.Context, q ListQuery) ([]ScreenshotResponse, error)
	GetByID(ctx context.Context, id string) (*ScreenshotResponse, error)
	Delete(ctx context.Context, id string) error
}

// ListQuery carries the raw query parameters of a list request.
type ListQuery struct {
	EmployeeID  string
	TimeEntryID string
	From        *time.Time
	To          *time.Time
	Skip        int
	Limit       int
}

type service struct {
	db       *gorm.DB
	repo     Repository
	store    storage.Store
	maxBytes int64
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, store storage.Store, maxBytes int64, logger ...*zap.Logger) Service {
	l := zap.L().Named("screenshot.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("screenshot.service")
	}
	return &service{db: db, repo: repo, store: store, maxBytes: maxBytes, logger: l}
}

// Upload admits the image, pushes the blob, then records the row. Checks run
// cheapest first so oversized junk is rejected before any storage traffic.
// The blob goes up before the insert: an orphan blob is recoverable garbage,
// a row pointing at nothing is a broken gallery.
func (s *service) Upload(ctx context.Context, callerID uuid.UUID, req UploadRequest) (*ScreenshotResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if len(req.Data) == 0 {
		return nil, screenshoterrors.ErrMissingFile
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return nil, screenshoterrors.ErrNotAnImage
	}
	if int64(len(req.Data)) > s.maxBytes {
		return nil, screenshoterrors.ErrFileTooLarge(s.maxBytes)
	}

	employeeID := callerID
	if req.EmployeeID != "" {
		id, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			return nil, screenshoterrors.ErrBadFormValue("employee_id")
		}
		employeeID = id
	}
	if employeeID != callerID {
		return nil, screenshoterrors.ErrNotEntryOwner
	}

	entryID, err := uuid.Parse(req.TimeEntryID)
	if err != nil {
		return nil, screenshoterrors.ErrBadFormValue("time_entry_id")
	}

	entry, err := s.repo.FindTimeEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, screenshoterrors.ErrEntryMissing
		}
		return nil, err
	}
	if entry.EmployeeID != employeeID {
		return nil, screenshoterrors.ErrNotEntryOwner
	}
	if entry.EndTime != nil {
		return nil, screenshoterrors.ErrEntryClosed
	}

	capturedAt := time.Now().UTC()
	key := storage.BuildObjectKey(employeeID, entryID, capturedAt)

	url, err := s.store.Upload(ctx, key, req.Data, req.ContentType)
	if err != nil {
		s.logger.Error("screenshot blob upload failed",
			zap.String("request_id", rid),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, screenshoterrors.ErrUploadFailed
	}

	ip, mac := netmeta.Sanitize(req.IPAddress, req.MACAddress)

	shot := &Screenshot{
		ID:          uuid.New(),
		TimeEntryID: entryID,
		EmployeeID:  employeeID,
		FileName:    key,
		FileURL:     url,
		ContentType: req.ContentType,
		SizeBytes:   int64(len(req.Data)),
		Permission:  req.Permission,
		IPAddress:   ip,
		MACAddress:  mac,
		CapturedAt:  capturedAt,
	}
	if err := s.repo.Create(ctx, shot); err != nil {
		// Row insert failed, reclaim the blob so nothing leaks.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Warn("orphan blob cleanup failed", zap.String("key", key), zap.Error(delErr))
		}
		s.logger.Error("screenshot persist failed", zap.String("request_id", rid), zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "screenshot storage failure", 500)
	}

	s.logger.Info("screenshot upload success",
		zap.String("request_id", rid),
		zap.String("screenshot_id", shot.ID.String()),
		zap.String("time_entry_id", entryID.String()),
		zap.Int64("size_bytes", shot.SizeBytes),
	)
	return mapToResponse(shot), nil
}

func (s *service) GetAll(ctx context.Context, q ListQuery) ([]ScreenshotResponse, error) {
	f := ListFilter{From: q.From, To: q.To, Skip: q.Skip, Limit: q.Limit}
	if f.Limit <= 0 {
		f.Limit = 100
	}
	if q.EmployeeID != "" {
		id, err := uuid.Parse(q.EmployeeID)
		if err != nil {
			return nil, screenshoterrors.ErrBadFormValue("employee_id")
		}
		f.EmployeeID = &id
	}
	if q.TimeEntryID != "" {
		id, err := uuid.Parse(q.TimeEntryID)
		if err != nil {
			return nil, screenshoterrors.ErrBadFormValue("time_entry_id")
		}
		f.TimeEntryID = &id
	}

	rows, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*ScreenshotResponse, error) {
	shotID, err := uuid.Parse(id)
	if err != nil {
		return nil, screenshoterrors.ErrInvalidScreenshotID
	}
	shot, err := s.repo.FindByID(ctx, shotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, screenshoterrors.ErrScreenshotNotFound
		}
		return nil, err
	}
	return mapToResponse(shot), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	shotID, err := uuid.Parse(id)
	if err != nil {
		return screenshoterrors.ErrInvalidScreenshotID
	}

	shot, err := s.repo.FindByID(ctx, shotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return screenshoterrors.ErrScreenshotNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, shotID); err != nil {
		return err
	}

	// Blob cleanup is best effort after the row is gone.
	if err := s.store.Delete(ctx, shot.FileName); err != nil {
		s.logger.Warn("blob delete failed", zap.String("key", shot.FileName), zap.Error(err))
	}

	s.logger.Info("delete screenshot success", zap.String("screenshot_id", id))
	return nil
}
