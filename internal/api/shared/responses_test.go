package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/api/tasks", nil)
	recorder := httptest.NewRecorder()

	RespondWithJSON(recorder, req, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"hello":"world"}`, recorder.Body.String())
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/api/tasks", nil)
	req = req.WithContext(SetTraceID(req.Context()))

	recorder := httptest.NewRecorder()
	RespondWithError(recorder, req, http.StatusNotFound, "Task not found")

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "Task not found", resp.Error)
	assert.NotEmpty(t, resp.TraceID)
}

func TestRespondWithErrorAndLogHidesDetails(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/api/tasks", nil)
	recorder := httptest.NewRecorder()

	internalErr := errors.New("pq: relation tasks does not exist")
	RespondWithErrorAndLog(recorder, req, http.StatusInternalServerError, "Failed to list tasks", internalErr)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "relation tasks")

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "Failed to list tasks", resp.Error)
}

func TestTraceID(t *testing.T) {
	t.Parallel()

	// No trace ID on a bare context
	assert.Empty(t, GetTraceID(context.Background()))

	// SetTraceID installs a fresh hex ID
	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)
	assert.Len(t, traceID, TraceIDLength*2)

	// Each request gets its own
	other := GetTraceID(SetTraceID(context.Background()))
	assert.NotEqual(t, traceID, other)
}
