package scanner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatcher_Count(t *testing.T) {
	content := []byte(`
const key = process.env.API_KEY;
const again = process.env.API_KEY;
const backup = process.env.API_KEY_BACKUP;
`)

	matcher, err := New().Compile([]string{"API_KEY", "API_KEY_BACKUP", "MISSING"})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	got := matcher.Count(content)
	want := map[string]int{
		"API_KEY":        2,
		"API_KEY_BACKUP": 1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Count mismatch (-want +got):\n%s", diff)
	}
}

func TestMatcher_AccessIdioms(t *testing.T) {
	tests := []struct {
		name    string
		content string
		count   int
	}{
		{"dot access", `process.env.PORT`, 1},
		{"bracket single quotes", `process.env['PORT']`, 1},
		{"bracket double quotes", `process.env["PORT"]`, 1},
		{"bracket with spaces", `env[ "PORT" ]`, 1},
		{"go getenv", `os.Getenv("PORT")`, 1},
		{"call idiom", `env("PORT")`, 1},
		{"longer identifier", `process.env.PORT_NUMBER`, 0},
		{"substring of identifier", `process.env.EXPORT`, 0},
		{"mismatched quotes", `env['PORT"]`, 0},
		{"bare mention", `PORT is documented here`, 0},
	}

	matcher, err := New().Compile([]string{"PORT"})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := matcher.Count([]byte(tt.content))
			if counts["PORT"] != tt.count {
				t.Errorf("Count(%q) = %d, want %d", tt.content, counts["PORT"], tt.count)
			}
		})
	}
}

func TestScanner_AddPatterns(t *testing.T) {
	s := New()
	s.AddPatterns(`\bgetenv\('%s'\)`)

	matcher, err := s.Compile([]string{"HOME"})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	counts := matcher.Count([]byte(`getenv('HOME')`))
	if counts["HOME"] != 1 {
		t.Errorf("Expected custom pattern to match once, got %d", counts["HOME"])
	}
}

func TestScanner_InvalidPattern(t *testing.T) {
	s := New()
	s.SetPatterns([]string{`(%s`})
	if _, err := s.Compile([]string{"KEY"}); err == nil {
		t.Fatal("Expected error for invalid pattern")
	}
}

func TestCompile_MetaCharactersQuoted(t *testing.T) {
	// Names are quoted before substitution, so regex metacharacters in a
	// declared name never change the pattern's meaning.
	matcher, err := New().Compile([]string{"A.B"})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	counts := matcher.Count([]byte(`env["AxB"] env["A.B"]`))
	if counts["A.B"] != 1 {
		t.Errorf("Expected 1 literal match, got %d", counts["A.B"])
	}
}

func TestUsage_Record(t *testing.T) {
	var u Usage
	u.Record("a.js", 2)
	u.Record("b.js", 0)
	u.Record("c.js", 3)

	if u.Total != 5 {
		t.Errorf("Expected total 5, got %d", u.Total)
	}
	if len(u.Occurrences) != 2 {
		t.Fatalf("Expected 2 occurrences, got %d", len(u.Occurrences))
	}

	sum := 0
	for _, occ := range u.Occurrences {
		sum += occ.Count
	}
	if sum != u.Total {
		t.Errorf("Total %d != sum of occurrence counts %d", u.Total, sum)
	}
}

func TestIsBinary(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content []byte
		want    bool
	}{
		{"png extension", "logo.png", nil, true},
		{"nul byte", "data.bin", []byte("abc\x00def"), true},
		{"plain text", "main.go", []byte("package main"), false},
		{"empty", "empty.txt", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBinary(tt.path, tt.content); got != tt.want {
				t.Errorf("IsBinary(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
