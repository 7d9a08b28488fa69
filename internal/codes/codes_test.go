package codes

import (
	"strings"
	"testing"
)

func TestGenerateLength(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantLen int
	}{
		{"default", DefaultLength, 6},
		{"short", 4, 4},
		{"long", 12, 12},
		{"zero", 0, 0},
		{"negative", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := Generate(tt.length)
			if err != nil {
				t.Fatalf("Generate(%d) error = %v", tt.length, err)
			}
			if len(code) != tt.wantLen {
				t.Errorf("Generate(%d) length = %d, want %d", tt.length, len(code), tt.wantLen)
			}
		})
	}
}

func TestGenerateAlphabet(t *testing.T) {
	if len(Alphabet) != 31 {
		t.Fatalf("Alphabet size = %d, want 31", len(Alphabet))
	}
	for _, c := range "O0I1L" {
		if strings.ContainsRune(Alphabet, c) {
			t.Errorf("Alphabet contains confusable char %c", c)
		}
	}

	for i := 0; i < 200; i++ {
		code, err := Generate(DefaultLength)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		for _, c := range code {
			if !strings.ContainsRune(Alphabet, c) {
				t.Errorf("Generate() produced char %c outside alphabet", c)
			}
		}
		if strings.ContainsAny(code, "O0I1L") {
			t.Errorf("Generate() produced confusable char in %q", code)
		}
	}
}

func TestGenerateRandomness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := Generate(DefaultLength)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if seen[code] {
			t.Errorf("Generate() produced duplicate code %s (extremely unlikely)", code)
		}
		seen[code] = true
	}
}

func BenchmarkGenerate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Generate(DefaultLength)
	}
}
