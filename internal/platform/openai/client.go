// Package openai implements the analysis.Analyzer interface against an
// OpenAI-compatible chat-completions HTTP endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"text/template"
	"time"

	"github.com/taskline/taskline-api/internal/analysis"
	"github.com/taskline/taskline-api/internal/config"
	"github.com/taskline/taskline-api/internal/platform/logger"
)

// Fixed sampling parameters. Policy values carried over unchanged from the
// production prompt tuning; not semantics to optimize.
const (
	temperature = 0.8
	topP        = 0.1
	maxTokens   = 2048
)

// Client calls an OpenAI-compatible chat-completions endpoint to generate
// task-list analyses. A single request is made per call with a bounded
// timeout; failures surface immediately without retries.
type Client struct {
	logger         *slog.Logger
	endpoint       string
	apiKey         string
	model          string
	promptTemplate *template.Template
	httpClient     *http.Client
}

// chatRequest is the chat-completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the chat-completions response we read.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewClient creates a Client from the LLM configuration.
// Returns an error wrapping analysis.ErrInvalidConfig when required
// settings are missing.
func NewClient(log *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", analysis.ErrInvalidConfig)
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: endpoint cannot be empty", analysis.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model cannot be empty", analysis.ErrInvalidConfig)
	}

	tmpl, err := template.New("analyze").Parse(promptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", analysis.ErrInvalidConfig, err)
	}

	if log == nil {
		log = slog.Default()
	}

	return &Client{
		logger:         log.With(slog.String("component", "openai_client")),
		endpoint:       strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:         cfg.APIKey,
		model:          cfg.Model,
		promptTemplate: tmpl,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Ensure Client implements analysis.Analyzer
var _ analysis.Analyzer = (*Client)(nil)

// Analyze implements analysis.Analyzer.Analyze
func (c *Client) Analyze(ctx context.Context, tasks []analysis.TaskSummary) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	prompt, err := c.buildPrompt(tasks)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: ""},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %v", analysis.ErrGenerationFailed, err)
	}

	url := c.endpoint + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to build request: %v", analysis.ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Debug("calling chat-completions endpoint",
		slog.String("model", c.model),
		slog.Int("task_count", len(tasks)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("chat-completions request failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %v", analysis.ErrGenerationFailed, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error("failed to close response body", slog.String("error", err.Error()))
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", analysis.ErrGenerationFailed, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		log.Warn("upstream returned error status",
			slog.Int("status_code", resp.StatusCode))
		return "", &analysis.UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: malformed response body: %v", analysis.ErrGenerationFailed, err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: response contains no choices", analysis.ErrGenerationFailed)
	}

	summary := parsed.Choices[0].Message.Content
	log.Debug("analysis generated", slog.Int("summary_length", len(summary)))
	return summary, nil
}

// buildPrompt renders the prompt template around a comma-joined
// "{title} (completed|pending)" rendering of the tasks.
func (c *Client) buildPrompt(tasks []analysis.TaskSummary) (string, error) {
	parts := make([]string, 0, len(tasks))
	for _, t := range tasks {
		status := "pending"
		if t.Completed {
			status = "completed"
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", t.Title, status))
	}

	var buf bytes.Buffer
	err := c.promptTemplate.Execute(&buf, struct{ TaskText string }{
		TaskText: strings.Join(parts, ", "),
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to render prompt: %v", analysis.ErrGenerationFailed, err)
	}

	return buf.String(), nil
}
