package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/dayplan/internal/app"
	"github.com/felixgeelhaar/dayplan/internal/planner/application/commands"
	"github.com/felixgeelhaar/dayplan/internal/planner/application/queries"
	"github.com/felixgeelhaar/dayplan/pkg/config"
	"github.com/felixgeelhaar/dayplan/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 9, 14, 16, 45, 0, 0, time.Local)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		AppEnv:          "development",
		SQLitePath:      filepath.Join(t.TempDir(), "dayplan.db"),
		CacheTTL:        time.Hour,
		BreakerFailures: 3,
		BreakerTimeout:  time.Second,
		TipMode:         config.TipModeDaily,
	}
	logger := observability.NewDiscardLogger()
	container, err := app.NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	handler := NewPlannerHandler(PlannerHandlerConfig{
		UpdateDay:    container.UpdateDayHandler,
		SetTaskDone:  container.SetTaskDoneHandler,
		SetHabit:     container.SetHabitHandler,
		ResetDay:     container.ResetDayHandler,
		GeneratePlan: container.GeneratePlanHandler,
		GetDay:       container.GetDayHandler,
		ListTasks:    container.ListTasksHandler,
		ListHabits:   container.ListHabitsHandler,
		Clock:        func() time.Time { return testNow },
		Logger:       logger,
	})
	return NewServer(DefaultServerConfig(), handler, logger).Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[map[string]string](t, rec)["status"])
}

func TestGetPlan_TimeNotSet(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/plan", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	body := decode[APIError](t, rec)
	assert.Equal(t, "time_not_set", body.Code)
	assert.Equal(t, queries.TimeNotSetPrompt, body.Message)
}

func TestGetPlan_QueryOverrides(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/plan?time=09:30&energy=low", "")
	require.Equal(t, http.StatusOK, rec.Code)
	plan := decode[queries.PlanDTO](t, rec)
	assert.Equal(t, "09:30", plan.Now)
	assert.Equal(t, "low", plan.Energy)

	rec = do(t, h, http.MethodGet, "/api/v1/plan?time=now", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "16:45", decode[queries.PlanDTO](t, rec).Now)

	rec = do(t, h, http.MethodGet, "/api/v1/plan?time=25:00", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateDayAndPlan(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPatch, "/api/v1/day", `{"time":"now","energy":"high","context":"exam friday"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[commands.UpdateDayResult](t, rec)
	assert.True(t, result.Changed)
	assert.Equal(t, "2026-09-14", result.Date)

	rec = do(t, h, http.MethodGet, "/api/v1/day", "")
	require.Equal(t, http.StatusOK, rec.Code)
	day := decode[queries.DayDTO](t, rec)
	assert.Equal(t, "16:45", day.CurrentTime)
	assert.Equal(t, "high", day.Energy)
	assert.Equal(t, "exam friday", day.Context)

	rec = do(t, h, http.MethodPut, "/api/v1/tasks/sat/done", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[commands.SetTaskDoneResult](t, rec).Completion.SAT)

	rec = do(t, h, http.MethodGet, "/api/v1/plan", "")
	require.Equal(t, http.StatusOK, rec.Code)
	plan := decode[queries.PlanDTO](t, rec)
	assert.Equal(t, "gym", string(plan.Recommendation.ID))
	assert.Equal(t, "exam friday", plan.Context)
}

func TestUpdateDay_BadInput(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPatch, "/api/v1/day", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPatch, "/api/v1/day", `{"energy":"turbo"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPatch, "/api/v1/day", `{"time":"7pm"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTasks(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Tasks []queries.TaskDTO `json:"tasks"`
		Total int               `json:"total"`
	}](t, rec)
	assert.Equal(t, 5, list.Total)
	assert.Len(t, list.Tasks, 5)

	rec = do(t, h, http.MethodPut, "/api/v1/tasks/gym/done", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/v1/tasks/gym/done", "")
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[commands.SetTaskDoneResult](t, rec)
	assert.True(t, result.Changed)
	assert.False(t, result.Completion.Gym)

	rec = do(t, h, http.MethodPut, "/api/v1/tasks/laundry/done", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[APIError](t, rec).Code)
}

func TestHabits(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPut, "/api/v1/habits/water", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[commands.SetHabitResult](t, rec).Tally.Good)

	rec = do(t, h, http.MethodPut, "/api/v1/habits/doomscroll", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/habits", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[map[string]json.RawMessage](t, rec)
	assert.JSONEq(t, `{"good":1,"neutral":0,"bad":1}`, string(list["tally"]))

	rec = do(t, h, http.MethodDelete, "/api/v1/habits/water", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[commands.SetHabitResult](t, rec).Tally.Good)

	rec = do(t, h, http.MethodPut, "/api/v1/habits/flossing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResetDay(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPatch, "/api/v1/day", `{"time":"12:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/v1/day", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/plan", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAPIError(t *testing.T) {
	err := ErrNotFound.withMessage("unknown task")
	assert.Equal(t, "not_found: unknown task", err.Error())
	assert.Equal(t, "Resource not found", ErrNotFound.Message)
}
