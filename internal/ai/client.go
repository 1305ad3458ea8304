package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single completion call.
const DefaultTimeout = 30 * time.Second

// Client talks to an OpenAI-style chat-completions endpoint.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(endpoint, model, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint:   endpoint,
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete performs one completion round trip and returns the assistant text.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("completion request rejected", "status", resp.StatusCode)
		return "", fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: completion has no choices", ErrInvalidResponse)
	}

	return parsed.Choices[0].Message.Content, nil
}

func (c *Client) GeneratePlan(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	raw, err := c.complete(ctx, planSystemPrompt, buildPlanPrompt(req))
	if err != nil {
		return nil, err
	}
	return parsePlanResponse(raw)
}

func (c *Client) GenerateDailyTasks(ctx context.Context, req DailyTasksRequest) (*DailyTasksResponse, error) {
	raw, err := c.complete(ctx, tasksSystemPrompt, buildDailyTasksPrompt(req))
	if err != nil {
		return nil, err
	}
	return parseDailyTasksResponse(raw)
}

func (c *Client) GenerateDaySummary(ctx context.Context, req DaySummaryRequest) (string, error) {
	raw, err := c.complete(ctx, summarySystemPrompt, buildDaySummaryPrompt(req))
	if err != nil {
		return "", err
	}
	summary := sanitizeSummary(raw)
	if summary == "" {
		return "", fmt.Errorf("%w: empty summary", ErrDecode)
	}
	return summary, nil
}

func (c *Client) AnalyzeJournal(ctx context.Context, req JournalAnalysisRequest) (*JournalAnalysisResponse, error) {
	raw, err := c.complete(ctx, journalSystemPrompt, buildJournalPrompt(req))
	if err != nil {
		return nil, err
	}
	return parseJournalResponse(raw)
}
