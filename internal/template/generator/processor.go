package generator

import (
	"unicode/utf8"

	"github.com/tacogips/scaffold/internal/debug"
	"github.com/tacogips/scaffold/internal/template/model"
	"github.com/tacogips/scaffold/internal/template/render"
)

// Processor produces the target bytes of a single file entry.
type Processor interface {
	// Process returns the content to write for entry. Entries matched by
	// the disable-templating matcher are returned unchanged.
	Process(entry model.SourceEntry, params model.ParameterSet) ([]byte, error)

	// ShouldProcess reports whether the content of entry is rendered.
	ShouldProcess(entry model.SourceEntry) bool
}

// FileProcessor implements Processor with a Renderer.
type FileProcessor struct {
	renderer          render.Renderer
	disableTemplating *Matcher
}

// NewFileProcessor creates a new FileProcessor.
func NewFileProcessor(r render.Renderer, disableTemplating *Matcher) *FileProcessor {
	return &FileProcessor{
		renderer:          r,
		disableTemplating: disableTemplating,
	}
}

// ShouldProcess reports false for entries matched by disable_templating.
func (p *FileProcessor) ShouldProcess(entry model.SourceEntry) bool {
	return !p.disableTemplating.Matches(entry.RelativePath)
}

// Process renders the entry content. Rendered content must be valid UTF-8.
func (p *FileProcessor) Process(entry model.SourceEntry, params model.ParameterSet) ([]byte, error) {
	if !p.ShouldProcess(entry) {
		debug.Debug("[generator] Copying verbatim: %s (size: %d bytes)", entry.RelativePath, len(entry.RawBytes))
		return entry.RawBytes, nil
	}

	if !utf8.Valid(entry.RawBytes) {
		return nil, newGeneratorError(InvalidEncoding, entry.RelativePath, nil)
	}

	out, err := p.renderer.Render(entry.RelativePath, string(entry.RawBytes), params)
	if err != nil {
		debug.Debug("[generator] Failed to render: %s, error: %v", entry.RelativePath, err)
		return nil, newRenderError(RenderContent, entry.RelativePath, err)
	}

	debug.Debug("[generator] Rendered: %s (input: %d bytes, output: %d bytes)",
		entry.RelativePath, len(entry.RawBytes), len(out))
	return []byte(out), nil
}
