package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractJSON pulls the JSON object out of a completion, tolerating markdown
// code fences and prose around the payload.
func extractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("%w: no JSON object in completion", ErrInvalidResponse)
	}

	return s[start : end+1], nil
}

func decodeResponse(raw string, v any) error {
	payload, err := extractJSON(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func parsePlanResponse(raw string) (*PlanResponse, error) {
	var resp PlanResponse
	if err := decodeResponse(raw, &resp); err != nil {
		return nil, err
	}
	if len(resp.Goals) == 0 {
		return nil, fmt.Errorf("%w: plan response has no goals", ErrDecode)
	}
	for _, g := range resp.Goals {
		if g.Title == "" {
			return nil, fmt.Errorf("%w: plan response goal missing title", ErrDecode)
		}
	}
	return &resp, nil
}

func parseDailyTasksResponse(raw string) (*DailyTasksResponse, error) {
	var resp DailyTasksResponse
	if err := decodeResponse(raw, &resp); err != nil {
		return nil, err
	}
	if len(resp.DailyTasks) == 0 {
		return nil, fmt.Errorf("%w: daily tasks response is empty", ErrDecode)
	}
	for _, gt := range resp.DailyTasks {
		if gt.GoalTitle == "" {
			return nil, fmt.Errorf("%w: daily tasks response missing goal title", ErrDecode)
		}
	}
	return &resp, nil
}

func parseJournalResponse(raw string) (*JournalAnalysisResponse, error) {
	var resp JournalAnalysisResponse
	if err := decodeResponse(raw, &resp); err != nil {
		return nil, err
	}
	if resp.Analysis == "" {
		return nil, fmt.Errorf("%w: journal analysis is empty", ErrDecode)
	}
	return &resp, nil
}

// sanitizeSummary strips quotes and fences from a plain-text summary reply.
func sanitizeSummary(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'`")
	return strings.TrimSpace(s)
}
