package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tacogips/scaffold/internal/debug"
	"github.com/tacogips/scaffold/internal/template/model"
	"github.com/tacogips/scaffold/internal/template/render"
)

// RenderFilename renders a template-relative path into a target-relative path.
//
// Each component is rendered on its own and the results are joined with
// the native separator. Rendering the joined string would let a separator
// interfere with placeholders next to it. ".", ".." and empty components
// pass through unrendered. Returns an error if a rendered component:
//   - contains a path separator
//   - is "." or ".."
//   - is empty or whitespace only
func RenderFilename(r render.Renderer, relPath string, params model.ParameterSet) (string, error) {
	debug.Debug("[generator] RenderFilename: input=%s", relPath)

	components := strings.Split(filepath.ToSlash(relPath), "/")
	rendered := make([]string, 0, len(components))

	for _, component := range components {
		switch component {
		case "", ".":
			continue
		case "..":
			rendered = append(rendered, component)
			continue
		}

		out, err := r.Render(relPath, component, params)
		if err != nil {
			return "", err
		}

		if err := validateFilenameComponent(out, component); err != nil {
			return "", err
		}
		rendered = append(rendered, out)
	}

	result := filepath.Join(rendered...)
	if err := validateRenderedPath(result, relPath); err != nil {
		return "", err
	}

	debug.Debug("[generator] RenderFilename: result=%s", result)
	return result, nil
}

// validateFilenameComponent validates a single rendered component.
func validateFilenameComponent(rendered, original string) error {
	if strings.ContainsAny(rendered, `/\`) {
		return fmt.Errorf("invalid filename component: %q contains path separator after rendering (original: %q)", rendered, original)
	}

	if rendered == "." || rendered == ".." {
		return fmt.Errorf("invalid filename component: %q is a relative reference after rendering (original: %q)", rendered, original)
	}

	if strings.TrimSpace(rendered) == "" {
		return fmt.Errorf("filename component %q resulted in empty value after rendering (original: %q)", rendered, original)
	}

	if strings.ContainsRune(rendered, 0) {
		return fmt.Errorf("invalid filename component: %q contains a null byte (original: %q)", rendered, original)
	}

	return nil
}

// validateRenderedPath validates the complete rendered path.
func validateRenderedPath(rendered, original string) error {
	if filepath.IsAbs(rendered) {
		return fmt.Errorf("invalid filename: %q is absolute path after rendering (original: %q)", rendered, original)
	}

	cleaned := filepath.Clean(rendered)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("invalid filename: %q escapes the target directory (original: %q)", rendered, original)
	}

	if cleaned == "." {
		return fmt.Errorf("invalid filename: %q resolves to the target directory itself (original: %q)", rendered, original)
	}

	return nil
}
