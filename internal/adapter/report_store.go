package adapter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	m "owngrep.dev/pkg/owngrep/internal/model"
)

const (
	summaryFileName  = "results.csv"
	manifestFileName = "manifest.yaml"

	reportDirPerm  = 0o750
	reportFilePerm = 0o600
)

// ReportStore persists and reloads the per-owner audit reports.
type ReportStore interface {
	SaveReports(dir m.Path, manifest m.RunManifest, reports []m.OwnerReport) error
	LoadReports(dir m.Path) (m.RunManifest, []m.OwnerReport, error)
}

// CSVReportStore writes one summary CSV, one detail CSV per owner and a YAML
// run manifest into a results directory. Pre-existing files are overwritten.
type CSVReportStore struct{}

// NewCSVReportStore constructs a CSVReportStore.
func NewCSVReportStore() *CSVReportStore {
	return &CSVReportStore{}
}

// SaveReports writes the summary table, the per-owner detail tables and the
// run manifest under dir, creating the directory (and missing parents) first.
// Owners keep the order they were first encountered during matching.
func (s *CSVReportStore) SaveReports(dir m.Path, manifest m.RunManifest, reports []m.OwnerReport) error {
	dirStr := string(dir)
	if err := os.MkdirAll(dirStr, reportDirPerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := s.writeSummary(dirStr, reports); err != nil {
		return err
	}

	for _, report := range reports {
		if err := s.writeOwnerDetail(dirStr, report); err != nil {
			return err
		}
	}

	return s.writeManifest(dirStr, manifest)
}

func (s *CSVReportStore) writeSummary(dir string, reports []m.OwnerReport) error {
	rows := make([][]string, 0, len(reports))
	for _, report := range reports {
		rows = append(rows, []string{report.Owner, strconv.Itoa(report.Count)})
	}

	return writeCSV(filepath.Join(dir, summaryFileName), []string{"owner", "count"}, rows)
}

func (s *CSVReportStore) writeOwnerDetail(dir string, report m.OwnerReport) error {
	rows := make([][]string, 0, len(report.Files))
	for _, occurrence := range report.Files {
		rows = append(rows, []string{string(occurrence.File), joinLines(occurrence.Lines)})
	}

	return writeCSV(filepath.Join(dir, OwnerFileName(report.Owner)), []string{"file", "lines"}, rows)
}

func (s *CSVReportStore) writeManifest(dir string, manifest m.RunManifest) error {
	content, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	path := filepath.Join(dir, manifestFileName)
	if err := os.WriteFile(path, content, reportFilePerm); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// LoadReports reads a previously written results directory back. The manifest
// drives the load: it carries the owner order and the sanitized detail file
// names. Detail tables load concurrently since each lives in its own file.
func (s *CSVReportStore) LoadReports(dir m.Path) (m.RunManifest, []m.OwnerReport, error) {
	manifest, err := s.loadManifest(string(dir))
	if err != nil {
		return m.RunManifest{}, nil, err
	}

	reports := make([]m.OwnerReport, len(manifest.Owners))

	var group errgroup.Group

	for i, summary := range manifest.Owners {
		group.Go(func() error {
			report, err := s.loadOwnerDetail(string(dir), summary)
			if err != nil {
				return err
			}

			reports[i] = report

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return m.RunManifest{}, nil, err
	}

	return manifest, reports, nil
}

func (s *CSVReportStore) loadManifest(dir string) (m.RunManifest, error) {
	content, err := os.ReadFile(filepath.Join(dir, manifestFileName))
	if err != nil {
		return m.RunManifest{}, fmt.Errorf("read manifest (is %s a results directory?): %w", dir, err)
	}

	var manifest m.RunManifest
	if err := yaml.Unmarshal(content, &manifest); err != nil {
		return m.RunManifest{}, fmt.Errorf("decode manifest: %w", err)
	}

	return manifest, nil
}

func (s *CSVReportStore) loadOwnerDetail(dir string, summary m.OwnerSummary) (m.OwnerReport, error) {
	f, err := os.Open(filepath.Join(dir, summary.File))
	if err != nil {
		return m.OwnerReport{}, fmt.Errorf("open detail table for %s: %w", summary.Owner, err)
	}

	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return m.OwnerReport{}, fmt.Errorf("read detail table for %s: %w", summary.Owner, err)
	}

	report := m.OwnerReport{Owner: summary.Owner, Count: summary.Count}

	for i, record := range records {
		if i == 0 {
			continue // header
		}

		if len(record) != 2 {
			return m.OwnerReport{}, fmt.Errorf("detail table for %s: row %d has %d fields, want 2", summary.Owner, i, len(record))
		}

		lines, err := parseLines(record[1])
		if err != nil {
			return m.OwnerReport{}, fmt.Errorf("detail table for %s: row %d: %w", summary.Owner, i, err)
		}

		report.Files = append(report.Files, m.FileOccurrence{File: m.Path(record[0]), Lines: lines})
	}

	return report, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}

	w := csv.NewWriter(f)

	err = w.Write(header)
	for _, row := range rows {
		if err != nil {
			break
		}

		err = w.Write(row)
	}

	if err == nil {
		w.Flush()
		err = w.Error()
	}

	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}

	return nil
}

// OwnerFileName maps an owner identifier to its detail CSV name. Every rune
// outside [A-Za-z0-9_-] becomes '_', so identifiers like "@org/team" stay
// filesystem-safe.
func OwnerFileName(owner string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, owner)

	return sanitized + ".csv"
}

// joinLines renders a line-number list the way the detail tables expect it,
// e.g. "1, 3". Order is preserved.
func joinLines(lines []int) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, strconv.Itoa(line))
	}

	return strings.Join(parts, ", ")
}

func parseLines(field string) ([]int, error) {
	if field == "" {
		return nil, nil
	}

	var lines []int

	for _, part := range strings.Split(field, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad line number %q: %w", part, err)
		}

		lines = append(lines, n)
	}

	return lines, nil
}
