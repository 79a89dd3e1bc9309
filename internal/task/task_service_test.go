package task

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	taskerrors "go-timetrack/internal/task/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn                  func(ctx context.Context, t *Task) error
	findByIDFn                func(ctx context.Context, id uuid.UUID) (*Task, error)
	findAllFn                 func(ctx context.Context, projectID *uuid.UUID, skip, limit int) ([]Task, error)
	updateFn                  func(ctx context.Context, t *Task) error
	deleteFn                  func(ctx context.Context, id uuid.UUID) error
	projectExistsFn           func(ctx context.Context, projectID uuid.UUID) (bool, error)
	screenshotKeysByTaskFn    func(ctx context.Context, id uuid.UUID) ([]string, error)
	deleteScreenshotsByTaskFn func(ctx context.Context, id uuid.UUID) error
	deleteTimeEntriesByTaskFn func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository             { return f }
func (f *fakeRepo) Create(ctx context.Context, t *Task) error { return f.createFn(ctx, t) }
func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAll(ctx context.Context, projectID *uuid.UUID, skip, limit int) ([]Task, error) {
	return f.findAllFn(ctx, projectID, skip, limit)
}
func (f *fakeRepo) Update(ctx context.Context, t *Task) error   { return f.updateFn(ctx, t) }
func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteFn(ctx, id)
}
func (f *fakeRepo) ProjectExists(ctx context.Context, projectID uuid.UUID) (bool, error) {
	return f.projectExistsFn(ctx, projectID)
}
func (f *fakeRepo) ScreenshotKeysByTask(ctx context.Context, id uuid.UUID) ([]string, error) {
	return f.screenshotKeysByTaskFn(ctx, id)
}
func (f *fakeRepo) DeleteScreenshotsByTask(ctx context.Context, id uuid.UUID) error {
	return f.deleteScreenshotsByTaskFn(ctx, id)
}
func (f *fakeRepo) DeleteTimeEntriesByTask(ctx context.Context, id uuid.UUID) error {
	return f.deleteTimeEntriesByTaskFn(ctx, id)
}

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gdb, mock
}

func TestService_Create(t *testing.T) {
	gdb, mock := newGormMock(t)

	projectID := uuid.New()
	var saved Task
	repo := &fakeRepo{
		projectExistsFn: func(ctx context.Context, id uuid.UUID) (bool, error) {
			assert.Equal(t, projectID, id)
			return true, nil
		},
		createFn: func(ctx context.Context, tk *Task) error { saved = *tk; return nil },
	}
	svc := NewService(gdb, repo, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreateTaskRequest{
		ProjectID: projectID.String(),
		Name:      "Implement login",
	})
	assert.NoError(t, err)
	assert.Equal(t, saved.ID.String(), resp.ID)
	assert.Equal(t, projectID.String(), resp.ProjectID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_ProjectMissing(t *testing.T) {
	gdb, mock := newGormMock(t)

	repo := &fakeRepo{
		projectExistsFn: func(ctx context.Context, id uuid.UUID) (bool, error) { return false, nil },
	}
	svc := NewService(gdb, repo, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), CreateTaskRequest{
		ProjectID: uuid.NewString(),
		Name:      "Orphan",
	})
	assert.True(t, errors.Is(err, taskerrors.ErrProjectMissing))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetAll_InvalidProjectFilter(t *testing.T) {
	gdb, _ := newGormMock(t)
	svc := NewService(gdb, &fakeRepo{}, nil, nil)

	_, err := svc.GetAll(context.Background(), "nope", 0, 100)
	assert.True(t, errors.Is(err, taskerrors.ErrInvalidProjectFilter))
}

func TestService_GetAll_CacheMissThenStore(t *testing.T) {
	gdb, _ := newGormMock(t)
	rdb, rmock := redismock.NewClientMock()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	task := Task{ID: uuid.New(), ProjectID: uuid.New(), Name: "Cached task", CreatedAt: now, UpdatedAt: now}
	repo := &fakeRepo{
		findAllFn: func(ctx context.Context, projectID *uuid.UUID, skip, limit int) ([]Task, error) {
			return []Task{task}, nil
		},
	}
	svc := NewService(gdb, repo, nil, rdb)

	expected := mapToListResponse([]Task{task})
	raw, err := json.Marshal(expected)
	assert.NoError(t, err)

	key := "tasks:list:0:all:0:100"
	rmock.ExpectGet(cacheVersionKey).RedisNil()
	rmock.ExpectGet(key).RedisNil()
	rmock.ExpectSet(key, raw, cacheTTL).SetVal("OK")

	resp, err := svc.GetAll(context.Background(), "", 0, 100)
	assert.NoError(t, err)
	assert.Equal(t, expected, resp)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestService_GetAll_CacheHitSkipsRepo(t *testing.T) {
	gdb, _ := newGormMock(t)
	rdb, rmock := redismock.NewClientMock()

	cached := []TaskResponse{{ID: uuid.NewString(), Name: "From cache"}}
	raw, err := json.Marshal(cached)
	assert.NoError(t, err)

	repo := &fakeRepo{
		findAllFn: func(ctx context.Context, projectID *uuid.UUID, skip, limit int) ([]Task, error) {
			t.Fatal("repository should not be hit on a cache hit")
			return nil, nil
		},
	}
	svc := NewService(gdb, repo, nil, rdb)

	rmock.ExpectGet(cacheVersionKey).SetVal("3")
	rmock.ExpectGet("tasks:list:3:all:0:100").SetVal(string(raw))

	resp, err := svc.GetAll(context.Background(), "", 0, 100)
	assert.NoError(t, err)
	assert.Equal(t, cached, resp)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestService_Delete_Cascades(t *testing.T) {
	gdb, mock := newGormMock(t)

	taskID := uuid.New()
	var order []string
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*Task, error) {
			return &Task{ID: taskID, Name: "Doomed"}, nil
		},
		screenshotKeysByTaskFn: func(ctx context.Context, id uuid.UUID) ([]string, error) {
			return nil, nil
		},
		deleteScreenshotsByTaskFn: func(ctx context.Context, id uuid.UUID) error {
			order = append(order, "screenshots")
			return nil
		},
		deleteTimeEntriesByTaskFn: func(ctx context.Context, id uuid.UUID) error {
			order = append(order, "time_entries")
			return nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			order = append(order, "task")
			return nil
		},
	}
	svc := NewService(gdb, repo, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := svc.Delete(context.Background(), taskID.String())
	assert.NoError(t, err)
	assert.Equal(t, []string{"screenshots", "time_entries", "task"}, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}
