package domain

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"owngrep.dev/pkg/owngrep/internal/adapter"
	m "owngrep.dev/pkg/owngrep/internal/model"
)

// AuditArgs carries everything a single audit run needs.
type AuditArgs struct {
	Root       m.Path // directory to scan
	Codeowners m.Path // ownership-rules file, resolved relative to Root
	Query      string // literal substring to search for
	Out        m.Path // results directory, resolved against the working dir
}

// Workflow is the sequential audit pipeline: walk the tree respecting ignore
// rules, scan each file for the query, attribute matches to owners and
// persist the reports. View reloads a previously written results directory.
type Workflow interface {
	Audit(args AuditArgs) (m.RunManifest, []m.OwnerReport, error)
	View(out m.Path) (m.RunManifest, []m.OwnerReport, error)
}

type workflow struct {
	adapter.SourceFS
	adapter.ReportStore
}

// NewWorkflow creates a Workflow wired to the provided adapters.
func NewWorkflow(fs adapter.SourceFS, store adapter.ReportStore) Workflow {
	return &workflow{SourceFS: fs, ReportStore: store}
}

func (w *workflow) Audit(args AuditArgs) (m.RunManifest, []m.OwnerReport, error) {
	if strings.TrimSpace(string(args.Root)) == "" {
		return m.RunManifest{}, nil, errors.New("root directory is required")
	}

	if _, err := w.FileInfo(args.Root); err != nil {
		return m.RunManifest{}, nil, fmt.Errorf("root path error: %w", err)
	}

	evaluator, err := w.loadIgnoreRules(args.Root)
	if err != nil {
		return m.RunManifest{}, nil, fmt.Errorf("load ignore rules: %w", err)
	}

	files, err := w.collectFiles(args.Root, evaluator)
	if err != nil {
		return m.RunManifest{}, nil, fmt.Errorf("walk %s: %w", args.Root, err)
	}

	matches, err := w.scanFiles(args.Root, files, args.Query)
	if err != nil {
		return m.RunManifest{}, nil, err
	}

	rules, err := w.loadOwnershipRules(args.Root, args.Codeowners)
	if err != nil {
		return m.RunManifest{}, nil, err
	}

	reports, err := MatchOwners(matches, rules)
	if err != nil {
		return m.RunManifest{}, nil, err
	}

	manifest := buildManifest(args, matches, reports)

	if err := w.SaveReports(args.Out, manifest, reports); err != nil {
		return m.RunManifest{}, nil, fmt.Errorf("save reports: %w", err)
	}

	slog.Info("audit complete",
		"root", args.Root,
		"query", args.Query,
		"files_matched", manifest.FilesMatched,
		"owners", len(reports),
		"out", args.Out,
	)

	return manifest, reports, nil
}

func (w *workflow) View(out m.Path) (m.RunManifest, []m.OwnerReport, error) {
	return w.LoadReports(out)
}

// loadIgnoreRules reads the root-level ignore file. A missing file is
// tolerated and treated as an empty ruleset.
func (w *workflow) loadIgnoreRules(root m.Path) (*IgnoreEvaluator, error) {
	content, err := w.ReadFile(w.JoinPath(string(root), ignoreFileName))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}

		content = nil
	}

	return NewIgnoreEvaluator(content), nil
}

// collectFiles lists every non-ignored file under root as a root-relative
// path, in directory-listing order. Ignored directories are pruned before
// descent, so nothing below them is ever visited.
func (w *workflow) collectFiles(root m.Path, evaluator *IgnoreEvaluator) ([]string, error) {
	var files []string

	err := w.Walk(root, func(relPath string, entry os.DirEntry) error {
		if relPath == gitDirName || evaluator.Ignores(relPath, entry.IsDir()) {
			if entry.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if !entry.IsDir() {
			files = append(files, relPath)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// scanFiles reads each file sequentially and records where the query occurs.
// Files without a single occurrence are dropped, not recorded empty.
func (w *workflow) scanFiles(root m.Path, files []string, query string) ([]m.FileMatch, error) {
	var matches []m.FileMatch

	for _, relPath := range files {
		content, err := w.ReadFile(w.JoinPath(string(root), relPath))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", relPath, err)
		}

		lines, err := ScanContent(relPath, content, query)
		if err != nil {
			return nil, err
		}

		if len(lines) == 0 {
			continue
		}

		matches = append(matches, m.FileMatch{File: m.Path(relPath), Lines: lines})
	}

	return matches, nil
}

func (w *workflow) loadOwnershipRules(root, codeowners m.Path) ([]m.OwnershipRule, error) {
	path := w.JoinPath(string(root), string(codeowners))

	content, err := w.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ownership rules %s: %w", path, err)
	}

	return ParseCodeowners(content), nil
}

func buildManifest(args AuditArgs, matches []m.FileMatch, reports []m.OwnerReport) m.RunManifest {
	manifest := m.RunManifest{
		Query:        args.Query,
		Root:         string(args.Root),
		Codeowners:   string(args.Codeowners),
		FilesMatched: len(matches),
	}

	for _, report := range reports {
		manifest.TotalCount += report.Count
		manifest.Owners = append(manifest.Owners, m.OwnerSummary{
			Owner: report.Owner,
			Count: report.Count,
			File:  adapter.OwnerFileName(report.Owner),
		})
	}

	return manifest
}
