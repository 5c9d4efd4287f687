package adapter

import "testing"

func TestExtractText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "encoded HTML",
			input: "We are hiring. &lt;p&gt;Any HTML included.&lt;/p&gt;",
			want:  "We are hiring. Any HTML included.",
		},
		{
			name:  "nested tags and whitespace",
			input: "<p>We are hiring.</p>\n<ul>\n  <li>Write code</li>\n</ul>",
			want:  "We are hiring. Write code",
		},
		{
			name:  "plain text",
			input: "No tags here.",
			want:  "No tags here.",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractText(tc.input); got != tc.want {
				t.Errorf("extractText(%q)\n got  %q\n want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestBetween(t *testing.T) {
	body := `<h3>First &amp; Foremost</h3> junk <h3> Second </h3> tail <h3>unterminated`
	got := between(body, "<h3>", "</h3>")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(got), got)
	}
	if got[0] != "First & Foremost" {
		t.Errorf("expected entity-unescaped match, got %q", got[0])
	}
	if got[1] != "Second" {
		t.Errorf("expected trimmed match, got %q", got[1])
	}
}

func TestBetweenNoMatches(t *testing.T) {
	if got := between("nothing here", "<h3>", "</h3>"); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestJoinTags(t *testing.T) {
	if got := joinTags([]string{"aws", "terraform"}); got != "aws, terraform" {
		t.Errorf("unexpected join: %q", got)
	}
	if got := joinTags(nil); got != "N/A" {
		t.Errorf("expected N/A placeholder, got %q", got)
	}
}

func TestOrUnknown(t *testing.T) {
	if got := orUnknown("  "); got != "Unknown" {
		t.Errorf("expected Unknown, got %q", got)
	}
	if got := orUnknown("Acme"); got != "Acme" {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestParseWhen(t *testing.T) {
	if parseWhen("") != nil {
		t.Error("expected nil for empty timestamp")
	}
	if parseWhen("not-a-date") != nil {
		t.Error("expected nil for garbage timestamp")
	}
	got := parseWhen("2026-08-24T10:00:00Z")
	if got == nil || got.Year() != 2026 {
		t.Errorf("unexpected parse result: %v", got)
	}
}
