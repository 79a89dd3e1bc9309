package project_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-timetrack/internal/project"
	projecterrors "go-timetrack/internal/project/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	createFn  func(ctx context.Context, req project.CreateProjectRequest) (*project.ProjectResponse, error)
	getAllFn  func(ctx context.Context, skip, limit int) ([]project.ProjectResponse, error)
	getByIDFn func(ctx context.Context, id string) (*project.ProjectResponse, error)
	updateFn  func(ctx context.Context, id string, req project.UpdateProjectRequest) (*project.ProjectResponse, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (f *fakeService) Create(ctx context.Context, req project.CreateProjectRequest) (*project.ProjectResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeService) GetAll(ctx context.Context, skip, limit int) ([]project.ProjectResponse, error) {
	return f.getAllFn(ctx, skip, limit)
}
func (f *fakeService) GetByID(ctx context.Context, id string) (*project.ProjectResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeService) Update(ctx context.Context, id string, req project.UpdateProjectRequest) (*project.ProjectResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakeService) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

func TestHandler_CreateAndGetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		createFn: func(ctx context.Context, req project.CreateProjectRequest) (*project.ProjectResponse, error) {
			assert.Equal(t, "Mobile App", req.Name)
			return &project.ProjectResponse{ID: uuid.NewString(), Name: req.Name}, nil
		},
		getAllFn: func(ctx context.Context, skip, limit int) ([]project.ProjectResponse, error) {
			assert.Equal(t, 5, skip)
			assert.Equal(t, 10, limit)
			return []project.ProjectResponse{{ID: uuid.NewString()}}, nil
		},
	}
	h := project.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(`{"name":"Mobile App"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Mobile App")

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/projects?skip=5&limit=10", nil)
	h.GetAll(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
}

func TestHandler_Create_MissingName(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := project.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "\"error\"")
}

func TestHandler_GetByID_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{
		getByIDFn: func(ctx context.Context, id string) (*project.ProjectResponse, error) {
			return nil, projecterrors.ErrProjectNotFound
		},
	}
	h := project.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	c.Request = httptest.NewRequest(http.MethodGet, "/projects/x", nil)
	h.GetByID(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	called := false
	svc := &fakeService{
		deleteFn: func(ctx context.Context, id string) error { called = true; return nil },
	}
	h := project.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	c.Request = httptest.NewRequest(http.MethodDelete, "/projects/x", nil)
	h.Delete(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, called)
}
