// Package domain implements the audit pipeline: ignore evaluation, query
// scanning, CODEOWNERS matching and the workflow tying them together.
package domain

import (
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// gitDirName is the version-control metadata directory; it is always skipped
// before ignore rules are even consulted.
const gitDirName = ".git"

// ignoreFileName is the optional root-level ignore-rules file.
const ignoreFileName = ".gitignore"

// defaultIgnoreRules apply after any rules loaded from the root ignore file:
// the VCS metadata directory, vendored `lib` directories nested one level
// under any directory, and common binary formats the scanner cannot read.
var defaultIgnoreRules = []string{
	gitDirName + "/",
	"*/lib/",
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.bmp", "*.ico",
	"*.zip", "*.tar", "*.gz", "*.tgz", "*.rar", "*.7z",
}

// IgnoreEvaluator answers whether a root-relative path is excluded from the
// scan. It is a pure predicate once constructed.
type IgnoreEvaluator struct {
	matcher *ignore.GitIgnore
}

// NewIgnoreEvaluator compiles the given ignore-file content (empty for a
// missing file) together with the fixed default rules. Rules follow gitignore
// semantics, so later patterns can re-include paths excluded by earlier ones.
func NewIgnoreEvaluator(ignoreFileContent []byte) *IgnoreEvaluator {
	var lines []string

	if len(ignoreFileContent) > 0 {
		normalized := strings.ReplaceAll(string(ignoreFileContent), "\r\n", "\n")
		lines = strings.Split(normalized, "\n")
	}

	lines = append(lines, defaultIgnoreRules...)

	return &IgnoreEvaluator{matcher: ignore.CompileIgnoreLines(lines...)}
}

// Ignores reports whether the root-relative path is excluded. Directories are
// matched with a trailing separator so directory-only patterns apply; callers
// must not descend into an ignored directory.
func (e *IgnoreEvaluator) Ignores(relPath string, isDir bool) bool {
	p := filepath.ToSlash(relPath)
	if isDir {
		p += "/"
	}

	return e.matcher.MatchesPath(p)
}
