package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskline/taskline-api/internal/api/shared"
	"github.com/taskline/taskline-api/internal/domain"
	"github.com/taskline/taskline-api/internal/mocks"
)

// newAuthedRequest builds a request carrying an authenticated user ID in its
// context, the way the authentication middleware would.
func newAuthedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

// withTaskIDParam attaches a chi route context carrying the {id} URL param.
func withTaskIDParam(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// mustCreateTask seeds a task into the mock store.
func mustCreateTask(t *testing.T, store *mocks.MockTaskStore, userID uuid.UUID, title string, completed bool) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(userID, title, "", domain.PriorityMedium, nil)
	require.NoError(t, err)
	task.Completed = completed
	require.NoError(t, store.Create(context.Background(), task))
	return task
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
	}{
		{
			name: "valid task",
			payload: map[string]interface{}{
				"title":       "Write report",
				"description": "Quarterly numbers",
				"priority":    "high",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "priority defaults to medium",
			payload: map[string]interface{}{
				"title": "Walk the dog",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing title",
			payload:    map[string]interface{}{"description": "no title"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid priority",
			payload: map[string]interface{}{
				"title":    "Write report",
				"priority": "urgent",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			taskStore := mocks.NewMockTaskStore()
			handler := NewTaskHandler(taskStore, slog.Default())

			body, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := newAuthedRequest("POST", "/api/tasks", body, userID)
			recorder := httptest.NewRecorder()
			handler.CreateTask(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp TaskResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.NotEqual(t, uuid.Nil, resp.ID)
				assert.Equal(t, tt.payload["title"], resp.Title)
				assert.False(t, resp.Completed)
				if tt.payload["priority"] == nil {
					assert.Equal(t, "medium", resp.Priority)
				}
			}
		})
	}
}

func TestCreateTaskUnauthenticated(t *testing.T) {
	t.Parallel()

	handler := NewTaskHandler(mocks.NewMockTaskStore(), slog.Default())

	body := []byte(`{"title":"Write report"}`)
	req := httptest.NewRequest("POST", "/api/tasks", bytes.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.CreateTask(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestListTasks(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	otherUserID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	handler := NewTaskHandler(taskStore, slog.Default())

	mustCreateTask(t, taskStore, userID, "Mine first", false)
	mustCreateTask(t, taskStore, userID, "Mine second", true)
	mustCreateTask(t, taskStore, otherUserID, "Someone else's", false)

	req := newAuthedRequest("GET", "/api/tasks", nil, userID)
	recorder := httptest.NewRecorder()
	handler.ListTasks(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp []TaskResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Len(t, resp, 2)
	for _, task := range resp {
		assert.NotEqual(t, "Someone else's", task.Title)
	}
}

func TestListTasksEmpty(t *testing.T) {
	t.Parallel()

	handler := NewTaskHandler(mocks.NewMockTaskStore(), slog.Default())

	req := newAuthedRequest("GET", "/api/tasks", nil, uuid.New())
	recorder := httptest.NewRecorder()
	handler.ListTasks(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	// An empty list must encode as [], never null
	assert.JSONEq(t, "[]", recorder.Body.String())
}

func TestGetTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	otherUserID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	handler := NewTaskHandler(taskStore, slog.Default())

	task := mustCreateTask(t, taskStore, userID, "Write report", false)

	tests := []struct {
		name       string
		callerID   uuid.UUID
		taskID     string
		wantStatus int
	}{
		{
			name:       "owner fetches task",
			callerID:   userID,
			taskID:     task.ID.String(),
			wantStatus: http.StatusOK,
		},
		{
			name:       "other user's task looks absent",
			callerID:   otherUserID,
			taskID:     task.ID.String(),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown task",
			callerID:   userID,
			taskID:     uuid.New().String(),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed task ID",
			callerID:   userID,
			taskID:     "not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := newAuthedRequest("GET", "/api/tasks/"+tt.taskID, nil, tt.callerID)
			req = withTaskIDParam(req, tt.taskID)

			recorder := httptest.NewRecorder()
			handler.GetTask(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantStatus == http.StatusOK {
				var resp TaskResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, task.ID, resp.ID)
			}
		})
	}
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	handler := NewTaskHandler(taskStore, slog.Default())

	task := mustCreateTask(t, taskStore, userID, "Write report", false)

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	payload := map[string]interface{}{
		"title":       "Write final report",
		"description": "Include appendix",
		"completed":   true,
		"priority":    "high",
		"due_date":    due.Format(time.RFC3339),
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := newAuthedRequest("PUT", "/api/tasks/"+task.ID.String(), body, userID)
	req = withTaskIDParam(req, task.ID.String())

	recorder := httptest.NewRecorder()
	handler.UpdateTask(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp TaskResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "Write final report", resp.Title)
	assert.Equal(t, "Include appendix", resp.Description)
	assert.True(t, resp.Completed)
	assert.Equal(t, "high", resp.Priority)
	require.NotNil(t, resp.DueDate)
	assert.True(t, resp.DueDate.Equal(due))
}

func TestUpdateTaskResetsOmittedFields(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	handler := NewTaskHandler(taskStore, slog.Default())

	task := mustCreateTask(t, taskStore, userID, "Write report", true)
	task.Priority = domain.PriorityHigh
	require.NoError(t, taskStore.Update(context.Background(), task))

	// PUT is a full replace: omitted fields fall back to their defaults
	body := []byte(`{"title":"Write report"}`)
	req := newAuthedRequest("PUT", "/api/tasks/"+task.ID.String(), body, userID)
	req = withTaskIDParam(req, task.ID.String())

	recorder := httptest.NewRecorder()
	handler.UpdateTask(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp TaskResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.False(t, resp.Completed)
	assert.Equal(t, "medium", resp.Priority)
	assert.Nil(t, resp.DueDate)
}

func TestPatchTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	handler := NewTaskHandler(taskStore, slog.Default())

	task := mustCreateTask(t, taskStore, userID, "Write report", false)
	task.Description = "Quarterly numbers"
	task.Priority = domain.PriorityHigh
	require.NoError(t, taskStore.Update(context.Background(), task))

	// Patch only the completed flag; everything else must survive
	body := []byte(`{"completed":true}`)
	req := newAuthedRequest("PATCH", "/api/tasks/"+task.ID.String(), body, userID)
	req = withTaskIDParam(req, task.ID.String())

	recorder := httptest.NewRecorder()
	handler.PatchTask(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp TaskResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.True(t, resp.Completed)
	assert.Equal(t, "Write report", resp.Title)
	assert.Equal(t, "Quarterly numbers", resp.Description)
	assert.Equal(t, "high", resp.Priority)
}

func TestPatchTaskRejectsInvalidPriority(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	handler := NewTaskHandler(taskStore, slog.Default())

	task := mustCreateTask(t, taskStore, userID, "Write report", false)

	body := []byte(`{"priority":"urgent"}`)
	req := newAuthedRequest("PATCH", "/api/tasks/"+task.ID.String(), body, userID)
	req = withTaskIDParam(req, task.ID.String())

	recorder := httptest.NewRecorder()
	handler.PatchTask(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	otherUserID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	handler := NewTaskHandler(taskStore, slog.Default())

	task := mustCreateTask(t, taskStore, userID, "Write report", false)

	// Another user cannot delete it
	req := newAuthedRequest("DELETE", "/api/tasks/"+task.ID.String(), nil, otherUserID)
	req = withTaskIDParam(req, task.ID.String())
	recorder := httptest.NewRecorder()
	handler.DeleteTask(recorder, req)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	// The owner can
	req = newAuthedRequest("DELETE", "/api/tasks/"+task.ID.String(), nil, userID)
	req = withTaskIDParam(req, task.ID.String())
	recorder = httptest.NewRecorder()
	handler.DeleteTask(recorder, req)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())

	// A second delete finds nothing
	req = newAuthedRequest("DELETE", "/api/tasks/"+task.ID.String(), nil, userID)
	req = withTaskIDParam(req, task.ID.String())
	recorder = httptest.NewRecorder()
	handler.DeleteTask(recorder, req)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestToggleTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	handler := NewTaskHandler(taskStore, slog.Default())

	task := mustCreateTask(t, taskStore, userID, "Write report", false)

	toggle := func() TaskResponse {
		req := newAuthedRequest("PATCH", "/api/tasks/"+task.ID.String()+"/toggle", nil, userID)
		req = withTaskIDParam(req, task.ID.String())
		recorder := httptest.NewRecorder()
		handler.ToggleTask(recorder, req)
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp TaskResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		return resp
	}

	// Toggling twice returns to the original state
	assert.True(t, toggle().Completed)
	assert.False(t, toggle().Completed)
}

func TestGetStats(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	handler := NewTaskHandler(taskStore, slog.Default())

	mustCreateTask(t, taskStore, userID, "Done one", true)
	mustCreateTask(t, taskStore, userID, "Pending one", false)
	mustCreateTask(t, taskStore, userID, "Pending two", false)
	mustCreateTask(t, taskStore, userID, "Pending three", false)

	req := newAuthedRequest("GET", "/api/tasks/stats", nil, userID)
	recorder := httptest.NewRecorder()
	handler.GetStats(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var stats domain.TaskStats
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&stats))
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 3, stats.Incomplete)
	assert.Equal(t, 25.0, stats.CompletionRate)
	assert.Equal(t, 4, stats.PriorityBreakdown["medium"])
}

func TestGetStatsEmpty(t *testing.T) {
	t.Parallel()

	handler := NewTaskHandler(mocks.NewMockTaskStore(), slog.Default())

	req := newAuthedRequest("GET", "/api/tasks/stats", nil, uuid.New())
	recorder := httptest.NewRecorder()
	handler.GetStats(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var stats domain.TaskStats
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&stats))
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0.0, stats.CompletionRate)
}

func TestSearchTasks(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	taskStore := mocks.NewMockTaskStore()
	handler := NewTaskHandler(taskStore, slog.Default())

	mustCreateTask(t, taskStore, userID, "Write quarterly report", false)
	mustCreateTask(t, taskStore, userID, "Walk the dog", false)
	other := mustCreateTask(t, taskStore, userID, "Groceries", false)
	other.Description = "buy dog food"
	require.NoError(t, taskStore.Update(context.Background(), other))

	tests := []struct {
		name       string
		query      string
		wantTitles []string
	}{
		{
			name:       "matches title case-insensitively",
			query:      "REPORT",
			wantTitles: []string{"Write quarterly report"},
		},
		{
			name:       "matches description too",
			query:      "dog",
			wantTitles: []string{"Walk the dog", "Groceries"},
		},
		{
			name:       "no matches",
			query:      "vacation",
			wantTitles: []string{},
		},
		{
			name:       "empty query returns everything",
			query:      "",
			wantTitles: []string{"Write quarterly report", "Walk the dog", "Groceries"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := newAuthedRequest("GET", "/api/tasks/search?q="+tt.query, nil, userID)
			recorder := httptest.NewRecorder()
			handler.SearchTasks(recorder, req)

			require.Equal(t, http.StatusOK, recorder.Code)

			var resp []TaskResponse
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))

			titles := make([]string, 0, len(resp))
			for _, task := range resp {
				titles = append(titles, task.Title)
			}
			assert.ElementsMatch(t, tt.wantTitles, titles)
		})
	}
}

func TestTaskHandlerStoreFailure(t *testing.T) {
	t.Parallel()

	taskStore := mocks.NewMockTaskStore()
	taskStore.Err = errors.New("connection reset")
	handler := NewTaskHandler(taskStore, slog.Default())

	req := newAuthedRequest("GET", "/api/tasks", nil, uuid.New())
	recorder := httptest.NewRecorder()
	handler.ListTasks(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.NotContains(t, resp.Error, "connection reset")
}
