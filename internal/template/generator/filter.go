package generator

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/tacogips/scaffold/internal/debug"
)

// Matcher is a compiled list of glob patterns over template-relative paths.
// A nil Matcher matches nothing.
type Matcher struct {
	patterns []string
}

// CompileMatcher compiles glob patterns. A leading "./" is stripped from
// each pattern. Patterns use doublestar syntax (*, ?, [...], {a,b}, **).
func CompileMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{patterns: make([]string, 0, len(patterns))}
	for _, raw := range patterns {
		p := normalizePattern(raw)
		if !doublestar.ValidatePattern(p) {
			return nil, newGeneratorError(PatternCompileError, raw,
				fmt.Errorf("invalid glob pattern %q", raw))
		}
		m.patterns = append(m.patterns, p)
	}
	debug.Debug("[generator] Compiled matcher: %v", m.patterns)
	return m, nil
}

// MustCompileMatcher is like CompileMatcher but panics on error.
func MustCompileMatcher(patterns ...string) *Matcher {
	m, err := CompileMatcher(patterns)
	if err != nil {
		panic(err)
	}
	return m
}

// Patterns returns the normalized patterns.
func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.patterns...)
}

// Matches reports whether relPath matches any pattern.
func (m *Matcher) Matches(relPath string) bool {
	if m == nil {
		return false
	}
	for _, p := range m.patterns {
		if MatchesPattern(relPath, p) {
			return true
		}
	}
	return false
}

// MatchesPattern checks if a template-relative path matches one
// normalized glob pattern.
func MatchesPattern(relPath, pattern string) bool {
	relPath = strings.TrimPrefix(filepath.ToSlash(relPath), "./")

	if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
		return true
	}

	// A pattern without a separator also matches the base name
	// (e.g., "*.log" matches "logs/app.log").
	if !strings.Contains(pattern, "/") {
		if ok, err := doublestar.Match(pattern, path.Base(relPath)); err == nil && ok {
			return true
		}
	}

	return false
}

func normalizePattern(p string) string {
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}
