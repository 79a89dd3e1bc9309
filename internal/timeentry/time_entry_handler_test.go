package timeentry_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-timetrack/internal/timeentry"
	timeentryerrors "go-timetrack/internal/timeentry/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	clockInFn func(ctx context.Context, employeeID uuid.UUID, req timeentry.ClockInRequest) (*timeentry.TimeEntryResponse, error)
	stopFn    func(ctx context.Context, employeeID uuid.UUID, entryID string) (*timeentry.TimeEntryResponse, error)
	getAllFn  func(ctx context.Context, q timeentry.ListQuery) ([]timeentry.TimeEntryResponse, error)
	getByIDFn func(ctx context.Context, id string) (*timeentry.TimeEntryResponse, error)
	updateFn  func(ctx context.Context, employeeID uuid.UUID, id string, req timeentry.UpdateTimeEntryRequest) (*timeentry.TimeEntryResponse, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (f *fakeService) ClockIn(ctx context.Context, employeeID uuid.UUID, req timeentry.ClockInRequest) (*timeentry.TimeEntryResponse, error) {
	return f.clockInFn(ctx, employeeID, req)
}
func (f *fakeService) Stop(ctx context.Context, employeeID uuid.UUID, entryID string) (*timeentry.TimeEntryResponse, error) {
	return f.stopFn(ctx, employeeID, entryID)
}
func (f *fakeService) GetAll(ctx context.Context, q timeentry.ListQuery) ([]timeentry.TimeEntryResponse, error) {
	return f.getAllFn(ctx, q)
}
func (f *fakeService) GetByID(ctx context.Context, id string) (*timeentry.TimeEntryResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeService) Update(ctx context.Context, employeeID uuid.UUID, id string, req timeentry.UpdateTimeEntryRequest) (*timeentry.TimeEntryResponse, error) {
	return f.updateFn(ctx, employeeID, id, req)
}
func (f *fakeService) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

func TestHandler_ClockIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New()
	taskID := uuid.NewString()

	svc := &fakeService{
		clockInFn: func(ctx context.Context, eid uuid.UUID, req timeentry.ClockInRequest) (*timeentry.TimeEntryResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, taskID, req.TaskID)
			return &timeentry.TimeEntryResponse{ID: uuid.NewString(), EmployeeID: eid.String()}, nil
		},
	}
	h := timeentry.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID.String())
	c.Request = httptest.NewRequest(http.MethodPost, "/time_entries", strings.NewReader(`{"task_id":"`+taskID+`"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.ClockIn(c)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_ClockIn_NoIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := timeentry.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/time_entries", strings.NewReader(`{"task_id":"x"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.ClockIn(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_Stop_Conflicts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New()

	svc := &fakeService{
		stopFn: func(ctx context.Context, eid uuid.UUID, entryID string) (*timeentry.TimeEntryResponse, error) {
			return nil, timeentryerrors.ErrAlreadyClosed
		},
	}
	h := timeentry.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID.String())
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	c.Request = httptest.NewRequest(http.MethodPost, "/time_entries/x/stop", nil)
	h.Stop(c)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "already clocked out")
}

func TestHandler_Update_IgnoresImmutableFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New()
	entryID := uuid.NewString()

	var seen timeentry.UpdateTimeEntryRequest
	svc := &fakeService{
		updateFn: func(ctx context.Context, eid uuid.UUID, id string, req timeentry.UpdateTimeEntryRequest) (*timeentry.TimeEntryResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, entryID, id)
			seen = req
			return &timeentry.TimeEntryResponse{ID: id}, nil
		},
	}
	h := timeentry.NewHandler(svc)

	body := `{"start_time":"2020-01-01T00:00:00Z","task_id":"` + uuid.NewString() + `","end_time":"2024-05-10T17:00:00Z"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID.String())
	c.Params = gin.Params{{Key: "id", Value: entryID}}
	c.Request = httptest.NewRequest(http.MethodPatch, "/time_entries/"+entryID, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, seen.EndTime)
	assert.Nil(t, seen.IPAddress)
	assert.Nil(t, seen.MACAddress)
}

func TestHandler_GetAll_PassesFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getAllFn: func(ctx context.Context, q timeentry.ListQuery) ([]timeentry.TimeEntryResponse, error) {
			assert.True(t, q.ActiveOnly)
			assert.Equal(t, 10, q.Limit)
			return nil, nil
		},
	}
	h := timeentry.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/time_entries?active_only=true&limit=10", nil)
	h.GetAll(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
