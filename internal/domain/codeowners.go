package domain

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar"

	m "owngrep.dev/pkg/owngrep/internal/model"
)

// commentMarker starts a comment line in a CODEOWNERS-style file.
const commentMarker = "#"

// ParseCodeowners parses CODEOWNERS-style content into ownership rules in
// declaration order. Blank lines and comment lines are skipped. On each
// remaining line the first whitespace-separated token is the file pattern;
// its leading path-anchor character is stripped so the pattern matches
// root-relative paths. All following tokens are owner identifiers.
//
// Malformed lines are not validated: a pattern without owners yields a rule
// with an empty owner list, which simply never contributes to any aggregate.
func ParseCodeowners(content []byte) []m.OwnershipRule {
	var rules []m.OwnershipRule

	normalized := strings.ReplaceAll(string(content), "\r\n", "\n")
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, commentMarker) {
			continue
		}

		fields := strings.Fields(line)
		rules = append(rules, m.OwnershipRule{
			Pattern: fields[0][1:],
			Owners:  fields[1:],
		})
	}

	return rules
}

// MatchOwners attributes every scanned file to the owners whose patterns
// match it. Every (file, rule) pair is evaluated with doublestar glob
// semantics: `*` matches within a path segment, `**` across segments, `?` a
// single character, plus bracket classes.
//
// A file matching several rules that name the same owner is recorded once per
// rule, deliberately without dedup, so counts reflect rule coverage. Owners
// keep first-encounter order. Files matching no rule are silently omitted.
func MatchOwners(files []m.FileMatch, rules []m.OwnershipRule) ([]m.OwnerReport, error) {
	var reports []m.OwnerReport

	index := make(map[string]int)

	for _, file := range files {
		for _, rule := range rules {
			ok, err := doublestar.Match(rule.Pattern, string(file.File))
			if err != nil {
				return nil, fmt.Errorf("match pattern %q: %w", rule.Pattern, err)
			}

			if !ok {
				continue
			}

			for _, owner := range rule.Owners {
				i, seen := index[owner]
				if !seen {
					i = len(reports)
					index[owner] = i
					reports = append(reports, m.OwnerReport{Owner: owner})
				}

				reports[i].Count++
				reports[i].Files = append(reports[i].Files, m.FileOccurrence{
					File:  file.File,
					Lines: file.Lines,
				})
			}
		}
	}

	return reports, nil
}
