package provider

import (
	"fmt"
	"path/filepath"
	"strings"
)

// IsGitLocation reports whether a template location names a git
// repository to clone rather than a local directory. Locations ending in
// ".git" are repositories, as are scp-style and git/ssh URLs.
func IsGitLocation(location string) bool {
	location = strings.TrimSpace(location)
	if location == "" {
		return false
	}
	if strings.HasSuffix(strings.TrimSuffix(location, "/"), ".git") {
		return true
	}
	for _, prefix := range []string{"git@", "git://", "ssh://"} {
		if strings.HasPrefix(location, prefix) {
			return true
		}
	}
	return false
}

// ValidateSubpath validates a subdirectory inside a template source.
// Returns an error if the path is absolute or leaves the source root.
func ValidateSubpath(subpath string) error {
	if subpath == "" {
		return nil
	}
	if filepath.IsAbs(subpath) {
		return fmt.Errorf("template subpath must be relative: %s", subpath)
	}
	cleaned := filepath.Clean(subpath)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("template subpath escapes the template source: %s", subpath)
	}
	return nil
}

// joinSubpath joins subpath under root after validating it.
func joinSubpath(root, subpath string) (string, error) {
	if err := ValidateSubpath(subpath); err != nil {
		return "", err
	}
	joined := filepath.Join(root, subpath)
	if !isSubPath(root, joined) {
		return "", fmt.Errorf("template subpath escapes the template source: %s", subpath)
	}
	return joined, nil
}

// isSubPath checks if child is parent or lies under it.
func isSubPath(parent, child string) bool {
	parent = filepath.Clean(parent)
	child = filepath.Clean(child)

	if !filepath.IsAbs(parent) || !filepath.IsAbs(child) {
		return false
	}

	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
