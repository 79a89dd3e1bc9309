package project

import (
	"context"
	"errors"
	"testing"

	projecterrors "go-timetrack/internal/project/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn                     func(ctx context.Context, p *Project) error
	findByIDFn                   func(ctx context.Context, id uuid.UUID) (*Project, error)
	findByNameFn                 func(ctx context.Context, name string) (*Project, error)
	findAllFn                    func(ctx context.Context, skip, limit int) ([]Project, error)
	updateFn                     func(ctx context.Context, p *Project) error
	deleteFn                     func(ctx context.Context, id uuid.UUID) error
	screenshotKeysByProjectFn    func(ctx context.Context, id uuid.UUID) ([]string, error)
	deleteScreenshotsByProjectFn func(ctx context.Context, id uuid.UUID) error
	deleteTimeEntriesByProjectFn func(ctx context.Context, id uuid.UUID) error
	deleteTasksByProjectFn       func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository                 { return f }
func (f *fakeRepo) Create(ctx context.Context, p *Project) error  { return f.createFn(ctx, p) }
func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByName(ctx context.Context, name string) (*Project, error) {
	return f.findByNameFn(ctx, name)
}
func (f *fakeRepo) FindAll(ctx context.Context, skip, limit int) ([]Project, error) {
	return f.findAllFn(ctx, skip, limit)
}
func (f *fakeRepo) Update(ctx context.Context, p *Project) error { return f.updateFn(ctx, p) }
func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteFn(ctx, id)
}
func (f *fakeRepo) ScreenshotKeysByProject(ctx context.Context, id uuid.UUID) ([]string, error) {
	return f.screenshotKeysByProjectFn(ctx, id)
}
func (f *fakeRepo) DeleteScreenshotsByProject(ctx context.Context, id uuid.UUID) error {
	return f.deleteScreenshotsByProjectFn(ctx, id)
}
func (f *fakeRepo) DeleteTimeEntriesByProject(ctx context.Context, id uuid.UUID) error {
	return f.deleteTimeEntriesByProjectFn(ctx, id)
}
func (f *fakeRepo) DeleteTasksByProject(ctx context.Context, id uuid.UUID) error {
	return f.deleteTasksByProjectFn(ctx, id)
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

	var saved Project
	repo := &fakeRepo{
		findByNameFn: func(ctx context.Context, name string) (*Project, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, p *Project) error { saved = *p; return nil },
	}
	svc := NewService(gdb, repo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreateProjectRequest{Name: "Website Redesign"})
	assert.NoError(t, err)
	assert.Equal(t, "Website Redesign", resp.Name)
	assert.Equal(t, saved.ID.String(), resp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_NameTaken(t *testing.T) {
	gdb, mock := newGormMock(t)

	repo := &fakeRepo{
		findByNameFn: func(ctx context.Context, name string) (*Project, error) {
			return &Project{ID: uuid.New(), Name: name}, nil
		},
	}
	svc := NewService(gdb, repo, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), CreateProjectRequest{Name: "Website Redesign"})
	assert.True(t, errors.Is(err, projecterrors.ErrProjectNameTaken))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByID_InvalidID(t *testing.T) {
	gdb, _ := newGormMock(t)
	svc := NewService(gdb, &fakeRepo{}, nil)

	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	assert.True(t, errors.Is(err, projecterrors.ErrInvalidProjectID))
}

func TestService_GetByID_NotFound(t *testing.T) {
	gdb, _ := newGormMock(t)
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*Project, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(gdb, repo, nil)

	_, err := svc.GetByID(context.Background(), uuid.NewString())
	assert.True(t, errors.Is(err, projecterrors.ErrProjectNotFound))
}

func TestService_Update_RenameConflict(t *testing.T) {
	gdb, mock := newGormMock(t)

	projectID := uuid.New()
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*Project, error) {
			return &Project{ID: projectID, Name: "Old Name"}, nil
		},
		findByNameFn: func(ctx context.Context, name string) (*Project, error) {
			return &Project{ID: uuid.New(), Name: name}, nil
		},
	}
	svc := NewService(gdb, repo, nil)

	newName := "Taken Name"
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Update(context.Background(), projectID.String(), UpdateProjectRequest{Name: &newName})
	assert.True(t, errors.Is(err, projecterrors.ErrProjectNameTaken))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete_Cascades(t *testing.T) {
	gdb, mock := newGormMock(t)

	projectID := uuid.New()
	var order []string
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*Project, error) {
			return &Project{ID: projectID, Name: "Doomed"}, nil
		},
		screenshotKeysByProjectFn: func(ctx context.Context, id uuid.UUID) ([]string, error) {
			return nil, nil
		},
		deleteScreenshotsByProjectFn: func(ctx context.Context, id uuid.UUID) error {
			order = append(order, "screenshots")
			return nil
		},
		deleteTimeEntriesByProjectFn: func(ctx context.Context, id uuid.UUID) error {
			order = append(order, "time_entries")
			return nil
		},
		deleteTasksByProjectFn: func(ctx context.Context, id uuid.UUID) error {
			order = append(order, "tasks")
			return nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			order = append(order, "project")
			return nil
		},
	}
	svc := NewService(gdb, repo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := svc.Delete(context.Background(), projectID.String())
	assert.NoError(t, err)
	assert.Equal(t, []string{"screenshots", "time_entries", "tasks", "project"}, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}
