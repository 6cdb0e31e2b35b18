package cli

import (
	"fmt"
	"regexp"
	"strings"
)

// Flag names and descriptions
const (
	FlagPath       = "path"
	FlagGitRef     = "git_ref"
	FlagName       = "name"
	FlagTargetDir  = "target_directory"
	FlagForce      = "force"
	FlagAppend     = "append"
	FlagParam      = "param"
	FlagParamsFile = "params-file"
	FlagNoInput    = "no-input"
	FlagNoColor    = "no-color"
	FlagQuiet      = "quiet"
	FlagDebug      = "debug"
	FlagConfig     = "config"
	FlagPrivateKey = "private_key_path"

	DescPath       = "Subdirectory of the template source to use"
	DescGitRef     = "Git branch, tag, or commit to check out (git sources only)"
	DescName       = "Project name, overrides the name parameter"
	DescTargetDir  = "Directory to generate into (default ./<name>)"
	DescForce      = "Replace the target directory if it exists"
	DescAppend     = "Generate into an existing target directory, keeping existing files"
	DescParam      = "Seed a parameter as key=value (repeatable)"
	DescParamsFile = "Seed parameters from a TOML or YAML file"
	DescNoInput    = "Never prompt; use defaults for missing parameters"
	DescNoColor    = "Disable colored output"
	DescQuiet      = "Suppress non-error output"
	DescDebug      = "Enable debug logging"
	DescConfig     = "Path to config file"
	DescPrivateKey = "SSH private key used to clone git sources"
)

// Git ref patterns
var (
	refBranchPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-/\.]+$`)
	refCommitPattern = regexp.MustCompile(`^[a-fA-F0-9]{7,40}$`)
)

// ValidateGitRef validates a git reference (branch, tag, or commit).
// Refs are handed to git as a separate argument, so this only rejects
// values git would misread as an option.
func ValidateGitRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("git reference cannot be empty")
	}
	if strings.HasPrefix(ref, "-") {
		return fmt.Errorf("invalid git reference: %s", ref)
	}
	if refBranchPattern.MatchString(ref) || refCommitPattern.MatchString(ref) {
		return nil
	}
	return fmt.Errorf("invalid git reference: %s", ref)
}
