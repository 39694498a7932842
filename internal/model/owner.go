package model

// OwnershipRule maps a single CODEOWNERS glob pattern to the owners declared
// for it. Rules apply as a union: every rule matching a file contributes its
// owners, there is no "most specific wins" ranking.
type OwnershipRule struct {
	Pattern string
	Owners  []string
}

// FileOccurrence is one (file, lines) attribution inside an owner's report.
// The same file appears once per matching rule, so duplicates are expected.
type FileOccurrence struct {
	File  Path
	Lines []int
}

// OwnerReport accumulates every occurrence attributed to a single owner.
// Count equals len(Files).
type OwnerReport struct {
	Owner string
	Count int
	Files []FileOccurrence
}
