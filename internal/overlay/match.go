package overlay

import (
	"fmt"
	"path"
	"strings"
)

// Match reports whether relPath matches pattern.
//
// Patterns use slash-separated segments. Within a segment the usual glob
// metacharacters apply ('*', '?', '[...]'); a segment of "**" matches any
// number of segments, including none. Matching is anchored at the end of
// the path: a pattern with fewer segments than the path matches against
// the path's trailing segments, so the pattern "b" matches both "b" and
// "x/b". relPath must be slash separated and relative.
func Match(pattern, relPath string) (bool, error) {
	if pattern == "" {
		return false, fmt.Errorf("empty pattern")
	}
	psegs := strings.Split(strings.Trim(pattern, "/"), "/")
	for _, seg := range psegs {
		if seg == "**" {
			continue
		}
		if _, err := path.Match(seg, ""); err != nil {
			return false, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
	}
	segs := strings.Split(strings.Trim(relPath, "/"), "/")
	return matchReversed(reverse(psegs), reverse(segs)), nil
}

// MatchAny reports whether relPath matches any of the patterns.
func MatchAny(patterns []string, relPath string) (bool, error) {
	for _, p := range patterns {
		ok, err := Match(p, relPath)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// matchReversed matches pattern segments against path segments, both in
// right-to-left order. The pattern must consume its own segments fully;
// leftover path segments on the left are fine (suffix anchoring).
func matchReversed(psegs, segs []string) bool {
	if len(psegs) == 0 {
		return true
	}
	if psegs[0] == "**" {
		if matchReversed(psegs[1:], segs) {
			return true
		}
		if len(segs) > 0 {
			return matchReversed(psegs, segs[1:])
		}
		return false
	}
	if len(segs) == 0 {
		return false
	}
	// Pattern validated up front, so Match cannot fail here.
	ok, _ := path.Match(psegs[0], segs[0])
	return ok && matchReversed(psegs[1:], segs[1:])
}

func reverse(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}
