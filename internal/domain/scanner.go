package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ScanContent returns the 1-based line numbers whose line contains query as a
// literal, case-sensitive substring. Both LF and CRLF line endings are
// supported. A file with no occurrence yields a nil slice.
//
// Content that is not valid text is an error: a binary slipping past the
// ignore rules aborts the run rather than producing garbage attributions.
func ScanContent(name string, content []byte, query string) ([]int, error) {
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("scan %s: not a text file", name)
	}

	var matched []int

	for i, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.Contains(line, query) {
			matched = append(matched, i+1)
		}
	}

	return matched, nil
}
