package overlay

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		relPath string
		want    bool
	}{
		{"exact single segment", "b", "b", true},
		{"segment name mismatch", "b", "a", false},
		{"pattern matches trailing segment", "b", "x/b", true},
		{"pattern does not match leading segment", "b", "b/c", false},
		{"exact multi segment", "a/b", "a/b", true},
		{"multi segment suffix", "b/c", "a/b/c", true},
		{"multi segment wrong order", "c/b", "a/b/c", false},
		{"star within segment", "*.img", "efiboot.img", true},
		{"star within nested segment", "*.img", "images/efiboot.img", true},
		{"star is single segment only", "images/*", "images/efiboot.img", true},
		{"star does not cross separator", "*", "images/efiboot.img", false},
		{"question mark", "?", "a", true},
		{"question mark two chars", "?", "ab", false},
		{"char class", "[bc]", "b", true},
		{"char class miss", "[bc]", "d", false},
		{"doublestar matches everything", "**", "a/b/c", true},
		{"doublestar prefix", "**/c", "a/b/c", true},
		{"doublestar prefix single", "**/c", "c", true},
		{"doublestar middle", "a/**/d", "a/b/c/d", true},
		{"doublestar middle empty", "a/**/d", "a/d", true},
		{"doublestar suffix", "a/**", "a/b/c", true},
		{"longer pattern than path", "a/b/c", "b/c", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(tt.pattern, tt.relPath)
			if err != nil {
				t.Fatalf("Match(%q, %q) error = %v", tt.pattern, tt.relPath, err)
			}
			if got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.relPath, got, tt.want)
			}
		})
	}
}

func TestMatch_BadPattern(t *testing.T) {
	if _, err := Match("[", "a"); err == nil {
		t.Error("expected error for malformed pattern")
	}
	if _, err := Match("", "a"); err == nil {
		t.Error("expected error for empty pattern")
	}
}

func TestMatchAny(t *testing.T) {
	patterns := []string{"isolinux", "*.tmp"}

	ok, err := MatchAny(patterns, "work/scratch.tmp")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected match on *.tmp")
	}

	ok, err = MatchAny(patterns, "images/efiboot.img")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("unexpected match")
	}

	ok, err = MatchAny(nil, "anything")
	if err != nil || ok {
		t.Errorf("MatchAny(nil) = (%v, %v)", ok, err)
	}
}
