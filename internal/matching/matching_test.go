package matching

import "testing"

func TestTitlesMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"exact", "Read more", "Read more", true},
		{"case insensitive", "read MORE", "Read More", true},
		{"whitespace trimmed", "  Read more  ", "Read more", true},
		{"local contains ai", "Read more every day", "read more", true},
		{"ai contains local", "Read", "Read more", true},
		{"unrelated", "Read more", "Exercise", false},
		{"both empty", "", "", true},
		{"one empty never matches", "Read", "", false},
		{"whitespace only is empty", "Read", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitlesMatch(tt.a, tt.b); got != tt.want {
				t.Errorf("TitlesMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFindTitle_FirstMatchWins(t *testing.T) {
	candidates := []string{"Exercise daily", "Read more books", "Read"}

	// "read" is contained in both candidates 1 and 2; the first wins.
	if got := FindTitle("read", candidates); got != 1 {
		t.Errorf("expected first matching index 1, got %d", got)
	}

	if got := FindTitle("meditate", candidates); got != -1 {
		t.Errorf("expected -1 for unmatched title, got %d", got)
	}

	if got := FindTitle("read", nil); got != -1 {
		t.Errorf("expected -1 for empty candidates, got %d", got)
	}
}
