package plans_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/2beens/fitrack/internal/auth"
	"github.com/2beens/fitrack/internal/workouts/plans"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	m.Run()
	goleak.VerifyTestMain(m)
}

const testUserID = "user-1"

func authedRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequest(method, target, nil)
	}
	require.NoError(t, err)
	return req.WithContext(auth.ContextWithUserID(context.Background(), testUserID))
}

func planRequest(t *testing.T, method, planDate string, body []byte) *http.Request {
	t.Helper()
	req := authedRequest(t, method, "/api/planned-workouts/"+planDate, body)
	return mux.SetURLVars(req, map[string]string{"date": planDate})
}

func testPlan(planDate string) plans.PlannedWorkout {
	now := time.Now()
	return plans.PlannedWorkout{
		ID:            gofakeit.UUID(),
		UserID:        testUserID,
		PlanDate:      planDate,
		Title:         "Push Day",
		ScheduledTime: "07:30",
		Notes:         "focus on form",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestHandler_HandleGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockplansRepo(ctrl)
	h := plans.NewHandler(repoMock)

	// nothing planned for that day
	repoMock.EXPECT().
		GetForDate(gomock.Any(), testUserID, "2025-03-14").
		Return(nil, nil)

	rec := httptest.NewRecorder()
	h.HandleGet(rec, planRequest(t, "GET", "2025-03-14", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// a planned day
	plan := testPlan("2025-03-15")
	repoMock.EXPECT().
		GetForDate(gomock.Any(), testUserID, "2025-03-15").
		Return(&plan, nil)

	rec = httptest.NewRecorder()
	h.HandleGet(rec, planRequest(t, "GET", "2025-03-15", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got plans.PlannedWorkout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, plan.ID, got.ID)
	assert.Equal(t, "Push Day", got.Title)
}

func TestHandler_HandleGet_InvalidDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockplansRepo(ctrl)
	h := plans.NewHandler(repoMock)

	for _, planDate := range []string{"", "tomorrow", "2025-13-40", "15-03-2025"} {
		rec := httptest.NewRecorder()
		h.HandleGet(rec, planRequest(t, "GET", planDate, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "date: %q", planDate)
	}
}

func TestHandler_HandleGet_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockplansRepo(ctrl)
	h := plans.NewHandler(repoMock)

	req, err := http.NewRequest("GET", "/api/planned-workouts/2025-03-15", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"date": "2025-03-15"})

	rec := httptest.NewRecorder()
	h.HandleGet(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_HandleUpsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockplansRepo(ctrl)
	h := plans.NewHandler(repoMock)

	upsertReq := plans.UpsertRequest{
		Title:         "Leg Day",
		ScheduledTime: "18:00",
		Notes:         "squats first",
	}
	reqJson, err := json.Marshal(upsertReq)
	require.NoError(t, err)

	repoMock.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params plans.UpsertParams) (*plans.PlannedWorkout, error) {
			assert.Equal(t, testUserID, params.UserID)
			assert.Equal(t, "2025-03-15", params.PlanDate)
			assert.Equal(t, "Leg Day", params.Title)
			assert.Equal(t, "18:00", params.ScheduledTime)
			saved := testPlan(params.PlanDate)
			saved.Title = params.Title
			saved.ScheduledTime = params.ScheduledTime
			saved.Notes = params.Notes
			return &saved, nil
		})

	rec := httptest.NewRecorder()
	h.HandleUpsert(rec, planRequest(t, "PUT", "2025-03-15", reqJson))
	require.Equal(t, http.StatusOK, rec.Code)

	var got plans.PlannedWorkout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Leg Day", got.Title)
	assert.Equal(t, "2025-03-15", got.PlanDate)
}

func TestHandler_HandleUpsert_InvalidScheduledTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockplansRepo(ctrl)
	h := plans.NewHandler(repoMock)

	reqJson, err := json.Marshal(plans.UpsertRequest{
		Title:         "Leg Day",
		ScheduledTime: "around noon",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.HandleUpsert(rec, planRequest(t, "PUT", "2025-03-15", reqJson))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleUpsert_InvalidContentType(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockplansRepo(ctrl)
	h := plans.NewHandler(repoMock)

	req, err := http.NewRequest("PUT", "/api/planned-workouts/2025-03-15", bytes.NewReader([]byte("{}")))
	require.NoError(t, err)
	req = req.WithContext(auth.ContextWithUserID(context.Background(), testUserID))
	req = mux.SetURLVars(req, map[string]string{"date": "2025-03-15"})

	rec := httptest.NewRecorder()
	h.HandleUpsert(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockplansRepo(ctrl)
	h := plans.NewHandler(repoMock)

	repoMock.EXPECT().
		DeleteForDate(gomock.Any(), testUserID, "2025-03-15").
		Return(nil)

	rec := httptest.NewRecorder()
	h.HandleDelete(rec, planRequest(t, "DELETE", "2025-03-15", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// nothing planned that day
	repoMock.EXPECT().
		DeleteForDate(gomock.Any(), testUserID, "2025-03-16").
		Return(plans.ErrPlanNotFound)

	rec = httptest.NewRecorder()
	h.HandleDelete(rec, planRequest(t, "DELETE", "2025-03-16", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_HandleListRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockplansRepo(ctrl)
	h := plans.NewHandler(repoMock)

	list := []plans.PlannedWorkout{testPlan("2025-03-10"), testPlan("2025-03-12")}
	repoMock.EXPECT().
		ListRange(gomock.Any(), testUserID, "2025-03-10", "2025-03-16").
		Return(list, nil)

	rec := httptest.NewRecorder()
	h.HandleListRange(rec, authedRequest(t, "GET", "/api/planned-workouts?from=2025-03-10&to=2025-03-16", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp plans.ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Plans, 2)
	assert.Equal(t, "2025-03-10", resp.Plans[0].PlanDate)
}

func TestHandler_HandleListRange_InvalidRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockplansRepo(ctrl)
	h := plans.NewHandler(repoMock)

	for _, target := range []string{
		"/api/planned-workouts",
		"/api/planned-workouts?from=2025-03-10",
		"/api/planned-workouts?from=2025-03-10&to=soon",
	} {
		rec := httptest.NewRecorder()
		h.HandleListRange(rec, authedRequest(t, "GET", target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "target: %s", target)
	}
}
