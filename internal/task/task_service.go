package task

import (
	"context"
	"fmt"

	"go-timetrack/internal/shared/contextutil"
	"go-timetrack/internal/storage"
	taskerrors "go-timetrack/internal/task/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error)
	GetAll(ctx context.Context, projectID string, skip, limit int) ([]TaskResponse, error)
	GetByID(ctx context.Context, id string) (*TaskResponse, error)
	Update(ctx context.Context, id string, req UpdateTaskRequest) (*TaskResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	store  storage.Store
	cache  *listCache
	sf     singleflight.Group
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, store storage.Store, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		store:  store,
		cache:  newListCache(rdb),
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, taskerrors.ErrProjectMissing
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ok, err := qtx.ProjectExists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, taskerrors.ErrProjectMissing
	}

	t := &Task{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := qtx.Create(ctx, t); err != nil {
		s.logger.Error("create task persist failed", zap.String("request_id", rid), zap.Error(err))
		return nil, mapRepoError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.bump(ctx)
	}
	s.logger.Info("create task success",
		zap.String("request_id", rid),
		zap.String("task_id", t.ID.String()),
		zap.String("project_id", projectID.String()),
	)
	return mapToResponse(t), nil
}

func (s *service) GetAll(ctx context.Context, projectID string, skip, limit int) ([]TaskResponse, error) {
	if limit <= 0 {
		limit = 100
	}

	var filter *uuid.UUID
	if projectID != "" {
		id, err := uuid.Parse(projectID)
		if err != nil {
			return nil, taskerrors.ErrInvalidProjectFilter
		}
		filter = &id
	}

	if s.cache == nil {
		rows, err := s.repo.FindAll(ctx, filter, skip, limit)
		if err != nil {
			return nil, mapRepoError(err)
		}
		return mapToListResponse(rows), nil
	}

	key := s.cache.key(ctx, filter, skip, limit)
	if cached, ok := s.cache.get(ctx, key); ok {
		return cached, nil
	}

	// Collapse concurrent misses for the same key into one DB load.
	v, err, _ := s.sf.Do(key, func() (any, error) {
		rows, err := s.repo.FindAll(ctx, filter, skip, limit)
		if err != nil {
			return nil, mapRepoError(err)
		}
		resp := mapToListResponse(rows)
		s.cache.set(ctx, key, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	resp, ok := v.([]TaskResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected cached value type %T", v)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*TaskResponse, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return nil, taskerrors.ErrInvalidTaskID
	}
	t, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return mapToResponse(t), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTaskRequest) (*TaskResponse, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return nil, taskerrors.ErrInvalidTaskID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, taskID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if req.ProjectID != nil {
		projectID, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			return nil, taskerrors.ErrProjectMissing
		}
		if projectID != t.ProjectID {
			ok, err := qtx.ProjectExists(ctx, projectID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, taskerrors.ErrProjectMissing
			}
			t.ProjectID = projectID
		}
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = req.Description
	}

	if err := qtx.Update(ctx, t); err != nil {
		return nil, mapRepoError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.bump(ctx)
	}
	return mapToResponse(t), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return taskerrors.ErrInvalidTaskID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, taskID); err != nil {
		return mapRepoError(err)
	}

	blobKeys, err := qtx.ScreenshotKeysByTask(ctx, taskID)
	if err != nil {
		return err
	}

	// Cascade order: screenshots, then time entries, then the task.
	if err := qtx.DeleteScreenshotsByTask(ctx, taskID); err != nil {
		return err
	}
	if err := qtx.DeleteTimeEntriesByTask(ctx, taskID); err != nil {
		return err
	}
	if err := qtx.Delete(ctx, taskID); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.bump(ctx)
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

	s.logger.Info("delete task success", zap.String("task_id", id))
	return nil
}
