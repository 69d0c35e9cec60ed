package vocabulary

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	v := New([]string{"go", "Rust", "c++", "react native", "asp.net", "sql", "node"})

	tests := []struct {
		name   string
		text   string
		expect []string
	}{
		{
			name:   "word boundaries",
			text:   "Good engineer. Go, RUST and PostgreSQL.",
			expect: []string{"go", "rust"},
		},
		{
			name:   "symbols inside terms",
			text:   "Shipped C++ services and ASP.NET portals",
			expect: []string{"c++", "asp.net"},
		},
		{
			name:   "multi word terms",
			text:   "Built apps in React Native on top of Node.js",
			expect: []string{"react native", "node"},
		},
		{
			name:   "later occurrence counts when the first is glued",
			text:   "mysql then sql",
			expect: []string{"sql"},
		},
		{
			name:   "nothing found",
			text:   "Painter and sculptor",
			expect: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := v.Extract(tt.text)
			if len(got) != len(tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
			for i := range got {
				if got[i] != tt.expect[i] {
					t.Fatalf("expected %v, got %v", tt.expect, got)
				}
			}
		})
	}
}

func TestNewDeduplicatesAndKeepsOrder(t *testing.T) {
	t.Parallel()

	v := New([]string{" Docker ", "docker", "", "Kafka", "DOCKER"})
	terms := v.Terms()
	if len(terms) != 2 || terms[0] != "docker" || terms[1] != "kafka" {
		t.Fatalf("unexpected terms: %v", terms)
	}

	v.Extend("kafka", "Helm")
	if v.Len() != 3 {
		t.Fatalf("expected 3 terms, got %d", v.Len())
	}
	if !v.Contains(" HELM ") {
		t.Fatalf("expected helm to be present")
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	v := Default()
	for _, term := range []string{"python", "c++", "nestjs", "machine learning", "notion"} {
		if !v.Contains(term) {
			t.Fatalf("expected default vocabulary to contain %q", term)
		}
	}

	got := v.Extract("Senior React and NestJS developer, TypeScript, Docker")
	want := map[string]bool{"typescript": true, "react": true, "nestjs": true, "docker": true}
	if len(got) != len(want) {
		t.Fatalf("unexpected extraction: %v", got)
	}
	for _, term := range got {
		if !want[term] {
			t.Fatalf("unexpected term %q in %v", term, got)
		}
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "terms.txt")
	content := "# custom terms\n\nTemporal\n  ClickHouse  \n# trailing comment\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	terms, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(terms) != 2 || terms[0] != "Temporal" || terms[1] != "ClickHouse" {
		t.Fatalf("unexpected terms: %v", terms)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
