package project

import (
	"context"
	"errors"

	projecterrors "go-timetrack/internal/project/errors"
	"go-timetrack/internal/shared/contextutil"
	"go-timetrack/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=project_service.go -destination=mock/project_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error)
	GetAll(ctx context.Context, skip, limit int) ([]ProjectResponse, error)
	GetByID(ctx context.Context, id string) (*ProjectResponse, error)
	Update(ctx context.Context, id string, req UpdateProjectRequest) (*ProjectResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	store  storage.Store
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, store storage.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("project.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("project.service")
	}
	return &service{db: db, repo: repo, store: store, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByName(ctx, req.Name); err == nil {
		return nil, projecterrors.ErrProjectNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := &Project{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("create project persist failed", zap.String("request_id", rid), zap.Error(err))
		return nil, mapRepoError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info("create project success",
		zap.String("request_id", rid),
		zap.String("project_id", p.ID.String()),
	)
	return mapToResponse(p), nil
}

func (s *service) GetAll(ctx context.Context, skip, limit int) ([]ProjectResponse, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.repo.FindAll(ctx, skip, limit)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*ProjectResponse, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return nil, projecterrors.ErrInvalidProjectID
	}
	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return mapToResponse(p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateProjectRequest) (*ProjectResponse, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return nil, projecterrors.ErrInvalidProjectID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, projectID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if req.Name != nil && *req.Name != p.Name {
		if existing, err := qtx.FindByName(ctx, *req.Name); err == nil && existing.ID != projectID {
			return nil, projecterrors.ErrProjectNameTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}

	if err := qtx.Update(ctx, p); err != nil {
		return nil, mapRepoError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return mapToResponse(p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return projecterrors.ErrInvalidProjectID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, projectID); err != nil {
		return mapRepoError(err)
	}

	blobKeys, err := qtx.ScreenshotKeysByProject(ctx, projectID)
	if err != nil {
		return err
	}

	// Cascade order: screenshots, then time entries, then tasks, then the project.
	if err := qtx.DeleteScreenshotsByProject(ctx, projectID); err != nil {
		return err
	}
	if err := qtx.DeleteTimeEntriesByProject(ctx, projectID); err != nil {
		return err
	}
	if err := qtx.DeleteTasksByProject(ctx, projectID); err != nil {
		return err
	}
	if err := qtx.Delete(ctx, projectID); err != nil {
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

	s.logger.Info("delete project success", zap.String("project_id", id))
	return nil
}
