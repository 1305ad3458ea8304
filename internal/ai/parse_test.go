package ai

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced without language", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around object", "Here you go:\n{\"a\":1}\nEnjoy!", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.raw)
			if err != nil {
				t.Fatalf("extractJSON failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}

	if _, err := extractJSON("no json here"); !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse for missing object, got %v", err)
	}
}

func TestParsePlanResponse(t *testing.T) {
	raw := "```json\n{\"goals\":[{\"title\":\"Read more\",\"strategy\":\"start small\",\"subPlans\":[\"10 pages\"]}]}\n```"
	resp, err := parsePlanResponse(raw)
	if err != nil {
		t.Fatalf("parsePlanResponse failed: %v", err)
	}
	if len(resp.Goals) != 1 || resp.Goals[0].Title != "Read more" {
		t.Errorf("unexpected plan response: %+v", resp)
	}

	if _, err := parsePlanResponse(`{"goals":[]}`); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for empty goals, got %v", err)
	}
	if _, err := parsePlanResponse(`{"goals":[{"strategy":"x"}]}`); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for missing title, got %v", err)
	}
	if _, err := parsePlanResponse(`not even close`); !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse for garbage, got %v", err)
	}
}

func TestParseDailyTasksResponse(t *testing.T) {
	raw := `{"dailyTasks":[{"goalTitle":"Read","tasks":[{"description":"Read 10 pages","emoji":"📚"}]}]}`
	resp, err := parseDailyTasksResponse(raw)
	if err != nil {
		t.Fatalf("parseDailyTasksResponse failed: %v", err)
	}
	if len(resp.DailyTasks) != 1 || len(resp.DailyTasks[0].Tasks) != 1 {
		t.Errorf("unexpected tasks response: %+v", resp)
	}

	if _, err := parseDailyTasksResponse(`{"dailyTasks":[]}`); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for empty tasks, got %v", err)
	}
}

func TestParseJournalResponse(t *testing.T) {
	raw := `{"analysis":"a calm week","suggestedGoals":["a","b","c"]}`
	resp, err := parseJournalResponse(raw)
	if err != nil {
		t.Fatalf("parseJournalResponse failed: %v", err)
	}
	if resp.Analysis != "a calm week" || len(resp.SuggestedGoals) != 3 {
		t.Errorf("unexpected journal response: %+v", resp)
	}

	if _, err := parseJournalResponse(`{"suggestedGoals":["a"]}`); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for empty analysis, got %v", err)
	}
}

func TestSanitizeSummary(t *testing.T) {
	tests := []struct{ raw, want string }{
		{`"Keep going, Sam."`, "Keep going, Sam."},
		{"  Nice start.  ", "Nice start."},
		{"`steady does it`", "steady does it"},
	}
	for _, tt := range tests {
		if got := sanitizeSummary(tt.raw); got != tt.want {
			t.Errorf("sanitizeSummary(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
