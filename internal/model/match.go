package model

// FileMatch records where the query occurred inside a single file.
// Line numbers are 1-based and kept in scan order, so they are strictly
// increasing. Files without any occurrence are never represented as a
// FileMatch with empty Lines; they simply do not appear.
type FileMatch struct {
	File  Path // path relative to the scan root, slash-separated
	Lines []int
}
