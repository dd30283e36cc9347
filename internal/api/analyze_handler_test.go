package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskline/taskline-api/internal/analysis"
	"github.com/taskline/taskline-api/internal/api/shared"
	"github.com/taskline/taskline-api/internal/mocks"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        []byte
		analyzer    *mocks.MockAnalyzer
		wantStatus  int
		wantError   string
		wantSummary string
	}{
		{
			name:        "successful analysis",
			body:        []byte(`{"tasks":[{"title":"Write report","completed":true}]}`),
			analyzer:    &mocks.MockAnalyzer{Summary: "Great momentum."},
			wantStatus:  http.StatusOK,
			wantSummary: "Great momentum.",
		},
		{
			name:       "invalid JSON",
			body:       []byte(`{"tasks": [`),
			analyzer:   &mocks.MockAnalyzer{Summary: "unused"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid JSON",
		},
		{
			name:       "empty task list",
			body:       []byte(`{"tasks":[]}`),
			analyzer:   &mocks.MockAnalyzer{Summary: "unused"},
			wantStatus: http.StatusBadRequest,
			wantError:  "No tasks provided",
		},
		{
			name:       "missing tasks field",
			body:       []byte(`{}`),
			analyzer:   &mocks.MockAnalyzer{Summary: "unused"},
			wantStatus: http.StatusBadRequest,
			wantError:  "No tasks provided",
		},
		{
			name: "upstream rate limit passes through",
			body: []byte(`{"tasks":[{"title":"Write report"}]}`),
			analyzer: &mocks.MockAnalyzer{
				Err: &analysis.UpstreamError{StatusCode: http.StatusTooManyRequests, Body: "slow down"},
			},
			wantStatus: http.StatusTooManyRequests,
			wantError:  "upstream request error: 429 slow down",
		},
		{
			name: "upstream server error passes through",
			body: []byte(`{"tasks":[{"title":"Write report"}]}`),
			analyzer: &mocks.MockAnalyzer{
				Err: &analysis.UpstreamError{StatusCode: http.StatusBadGateway, Body: "bad gateway"},
			},
			wantStatus: http.StatusBadGateway,
			wantError:  "upstream server error: 502 bad gateway",
		},
		{
			name:       "transport failure is a 500",
			body:       []byte(`{"tasks":[{"title":"Write report"}]}`),
			analyzer:   &mocks.MockAnalyzer{Err: errors.New("connection refused")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			handler := NewAnalyzeHandler(tt.analyzer, "deepseek", slog.Default())

			req := httptest.NewRequest("POST", "/api/analyze", bytes.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			recorder := httptest.NewRecorder()
			handler.Analyze(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				var resp AnalyzeResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, tt.wantSummary, resp.Summary)
				assert.Equal(t, "deepseek", resp.Provider)
			} else {
				var resp shared.ErrorResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, tt.wantError, resp.Error)
			}
		})
	}
}

func TestAnalyzeDoesNotCallUpstreamOnEmptyInput(t *testing.T) {
	t.Parallel()

	analyzer := &mocks.MockAnalyzer{Summary: "unused"}
	handler := NewAnalyzeHandler(analyzer, "deepseek", slog.Default())

	req := httptest.NewRequest("POST", "/api/analyze", bytes.NewReader([]byte(`{"tasks":[]}`)))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	handler.Analyze(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Nil(t, analyzer.LastTasks, "analyzer should not have been called")
}
