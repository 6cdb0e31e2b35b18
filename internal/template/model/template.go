package model

// TemplateRef identifies where a template came from.
type TemplateRef struct {
	// Provider is the provider name ("local" or "git").
	Provider string
	// Location is the location as given by the user.
	Location string
	// Path is the subdirectory inside the fetched source, if any.
	Path string
	// Ref is the git branch, tag or commit, if any.
	Ref string
}

// Template represents a fetched template ready for generation.
type Template struct {
	// Ref is the template reference (source location).
	Ref TemplateRef
	// Description is the parsed .scaffold.toml.
	Description *ScaffoldDescription
	// RootPath is the local path to the template root directory.
	RootPath string
}
