package model

// OwnerSummary is one row of the run manifest: an owner, its total match
// count, and the CSV file its detail table was written to.
type OwnerSummary struct {
	Owner string `yaml:"owner"`
	Count int    `yaml:"count"`
	File  string `yaml:"file"`
}

// RunManifest summarizes a completed audit run. It is persisted next to the
// CSV reports so the view command can reload a results directory without
// re-scanning, and so the owner detail files can be located despite filename
// sanitization.
type RunManifest struct {
	Query        string         `yaml:"query"`
	Root         string         `yaml:"root"`
	Codeowners   string         `yaml:"codeowners"`
	FilesMatched int            `yaml:"files_matched"`
	TotalCount   int            `yaml:"total_count"`
	Owners       []OwnerSummary `yaml:"owners"`
}
