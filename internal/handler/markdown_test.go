package handler

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantContain string
		wantAbsent  string
	}{
		{
			name:        "heading",
			content:     "## Title",
			wantContain: "Title</h2>",
		},
		{
			name:        "emphasis",
			content:     "some *emphasis* here",
			wantContain: "<em>emphasis</em>",
		},
		{
			name:        "list",
			content:     "- one\n- two",
			wantContain: "<li>one</li>",
		},
		{
			name:        "script stripped",
			content:     "hello <script>alert('x')</script> world",
			wantContain: "hello",
			wantAbsent:  "<script>",
		},
		{
			name:        "event handler stripped",
			content:     `<a href="https://example.com" onclick="evil()">link</a>`,
			wantContain: "link",
			wantAbsent:  "onclick",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderMarkdown(tt.content)
			if tt.wantContain != "" && !strings.Contains(got, tt.wantContain) {
				t.Errorf("renderMarkdown(%q) = %q, want it to contain %q", tt.content, got, tt.wantContain)
			}
			if tt.wantAbsent != "" && strings.Contains(got, tt.wantAbsent) {
				t.Errorf("renderMarkdown(%q) = %q, want %q stripped", tt.content, got, tt.wantAbsent)
			}
		})
	}
}
