package model

import (
	"fmt"
	"os"
)

// Special file and directory names used by scaffold.
const (
	// DescriptorFile is the template description file name in template root.
	DescriptorFile = ".scaffold.toml"
	// VCSDir is the version-control metadata directory skipped during traversal.
	VCSDir = ".git"
)

// Reserved parameter names.
const (
	// ParamName holds the project name. Always a string once resolved.
	ParamName = "name"
	// ParamTargetDir holds the canonical target directory, set by the generator.
	ParamTargetDir = "target_dir"
)

// ParameterType represents the type of a declared template parameter.
type ParameterType string

const (
	// ParamTypeString is a free-form string parameter.
	ParamTypeString ParameterType = "string"
	// ParamTypeInteger is a signed 64-bit integer parameter.
	ParamTypeInteger ParameterType = "integer"
	// ParamTypeFloat is a 64-bit floating-point parameter.
	ParamTypeFloat ParameterType = "float"
	// ParamTypeBoolean is a yes/no parameter.
	ParamTypeBoolean ParameterType = "boolean"
	// ParamTypeSelect picks exactly one of the declared values.
	ParamTypeSelect ParameterType = "select"
	// ParamTypeMultiSelect picks zero or more of the declared values.
	ParamTypeMultiSelect ParameterType = "multiselect"
)

// Valid reports whether t is one of the known parameter types.
func (t ParameterType) Valid() bool {
	switch t {
	case ParamTypeString, ParamTypeInteger, ParamTypeFloat, ParamTypeBoolean,
		ParamTypeSelect, ParamTypeMultiSelect:
		return true
	}
	return false
}

// EntryKind distinguishes files from directories in a template tree.
type EntryKind int

const (
	// EntryFile is a regular file.
	EntryFile EntryKind = iota
	// EntryDirectory is a directory.
	EntryDirectory
)

func (k EntryKind) String() string {
	if k == EntryDirectory {
		return "directory"
	}
	return "file"
}

// SourceEntry is one entry of the template tree as seen by traversal.
type SourceEntry struct {
	// RelativePath is the path relative to the template root, using the native separator.
	RelativePath string
	// Kind is the entry kind.
	Kind EntryKind
	// RawBytes holds the file content (files only).
	RawBytes []byte
	// Mode holds the source permission bits.
	Mode os.FileMode
}

// ConflictPolicy decides what happens when a target entry already exists.
type ConflictPolicy int

const (
	// PolicyFail refuses to touch an existing target directory.
	PolicyFail ConflictPolicy = iota
	// PolicyForce removes existing entries and recreates them.
	PolicyForce
	// PolicyAppend keeps existing entries and only adds missing ones.
	PolicyAppend
)

// PolicyFromFlags maps the --force/--append flags to a policy.
// Force wins when both are set.
func PolicyFromFlags(force, appendMode bool) ConflictPolicy {
	switch {
	case force:
		return PolicyForce
	case appendMode:
		return PolicyAppend
	default:
		return PolicyFail
	}
}

func (p ConflictPolicy) String() string {
	switch p {
	case PolicyFail:
		return "fail"
	case PolicyForce:
		return "force"
	case PolicyAppend:
		return "append"
	default:
		return fmt.Sprintf("ConflictPolicy(%d)", int(p))
	}
}
