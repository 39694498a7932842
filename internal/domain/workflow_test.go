package domain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"owngrep.dev/pkg/owngrep/internal/adapter"
	m "owngrep.dev/pkg/owngrep/internal/model"
)

func newTestWorkflow() Workflow {
	return NewWorkflow(adapter.NewLocalSourceFS(), adapter.NewCSVReportStore())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	return string(content)
}

func TestWorkflowAudit(t *testing.T) {
	t.Run("single owner single pattern", func(t *testing.T) {
		root := t.TempDir()
		out := filepath.Join(t.TempDir(), "results")
		writeFile(t, filepath.Join(root, "a", "b.txt"), "foo\nbar\nfoo\n")
		writeFile(t, filepath.Join(root, "CODEOWNERS"), "/a/* alice\n")

		wf := newTestWorkflow()
		manifest, reports, err := wf.Audit(AuditArgs{
			Root:       m.Path(root),
			Codeowners: "CODEOWNERS",
			Query:      "foo",
			Out:        m.Path(out),
		})
		if err != nil {
			t.Fatalf("Audit error: %v", err)
		}

		if len(reports) != 1 || reports[0].Owner != "alice" || reports[0].Count != 1 {
			t.Fatalf("expected alice with count 1, got %+v", reports)
		}
		if manifest.TotalCount != 1 || manifest.FilesMatched != 1 {
			t.Errorf("unexpected manifest totals: %+v", manifest)
		}

		summary := readFile(t, filepath.Join(out, "results.csv"))
		if !strings.Contains(summary, "owner,count\n") || !strings.Contains(summary, "alice,1\n") {
			t.Errorf("unexpected summary content:\n%s", summary)
		}

		detail := readFile(t, filepath.Join(out, "alice.csv"))
		if !strings.Contains(detail, "file,lines\n") || !strings.Contains(detail, "a/b.txt,\"1, 3\"\n") {
			t.Errorf("unexpected detail content:\n%s", detail)
		}
	})

	t.Run("two rules naming the same owner double-count a file", func(t *testing.T) {
		root := t.TempDir()
		out := filepath.Join(t.TempDir(), "results")
		writeFile(t, filepath.Join(root, "a", "b.txt"), "foo\n")
		writeFile(t, filepath.Join(root, "CODEOWNERS"), "/a/* alice\n/a/b.txt alice\n")

		wf := newTestWorkflow()
		_, reports, err := wf.Audit(AuditArgs{
			Root:       m.Path(root),
			Codeowners: "CODEOWNERS",
			Query:      "foo",
			Out:        m.Path(out),
		})
		if err != nil {
			t.Fatalf("Audit error: %v", err)
		}

		if len(reports) != 1 || reports[0].Count != 2 || len(reports[0].Files) != 2 {
			t.Fatalf("expected alice with two entries, got %+v", reports)
		}

		summary := readFile(t, filepath.Join(out, "results.csv"))
		if !strings.Contains(summary, "alice,2\n") {
			t.Errorf("expected alice,2 in summary:\n%s", summary)
		}
	})

	t.Run("ignored files never reach the output", func(t *testing.T) {
		root := t.TempDir()
		out := filepath.Join(t.TempDir(), "results")
		writeFile(t, filepath.Join(root, ".gitignore"), "a/b.txt\n")
		writeFile(t, filepath.Join(root, "a", "b.txt"), "foo\n")
		writeFile(t, filepath.Join(root, "CODEOWNERS"), "/a/* alice\n")

		wf := newTestWorkflow()
		manifest, reports, err := wf.Audit(AuditArgs{
			Root:       m.Path(root),
			Codeowners: "CODEOWNERS",
			Query:      "foo",
			Out:        m.Path(out),
		})
		if err != nil {
			t.Fatalf("Audit error: %v", err)
		}

		if len(reports) != 0 || manifest.FilesMatched != 0 {
			t.Fatalf("expected no matches for ignored file, got %+v", reports)
		}
		if strings.Contains(readFile(t, filepath.Join(out, "results.csv")), "alice") {
			t.Errorf("ignored file produced a summary row")
		}
	})

	t.Run("ignored directories are not descended into", func(t *testing.T) {
		root := t.TempDir()
		out := filepath.Join(t.TempDir(), "results")
		writeFile(t, filepath.Join(root, ".gitignore"), "vendor/\n")
		writeFile(t, filepath.Join(root, "vendor", "dep", "x.txt"), "foo\n")
		writeFile(t, filepath.Join(root, "keep.txt"), "foo\n")
		writeFile(t, filepath.Join(root, "CODEOWNERS"), "/** team\n")

		wf := newTestWorkflow()
		_, reports, err := wf.Audit(AuditArgs{
			Root:       m.Path(root),
			Codeowners: "CODEOWNERS",
			Query:      "foo",
			Out:        m.Path(out),
		})
		if err != nil {
			t.Fatalf("Audit error: %v", err)
		}

		if len(reports) != 1 {
			t.Fatalf("expected one owner, got %+v", reports)
		}
		for _, occurrence := range reports[0].Files {
			if strings.HasPrefix(string(occurrence.File), "vendor/") {
				t.Errorf("vendored file leaked into the report: %s", occurrence.File)
			}
		}
	})

	t.Run("summary counts equal the detail row totals", func(t *testing.T) {
		root := t.TempDir()
		out := filepath.Join(t.TempDir(), "results")
		writeFile(t, filepath.Join(root, "a", "one.txt"), "foo\nfoo\n")
		writeFile(t, filepath.Join(root, "a", "two.txt"), "foo\n")
		writeFile(t, filepath.Join(root, "docs", "guide.md"), "foo here\n")
		writeFile(t, filepath.Join(root, "CODEOWNERS"), "/a/* alice bob\n/docs/* alice\n")

		wf := newTestWorkflow()
		manifest, reports, err := wf.Audit(AuditArgs{
			Root:       m.Path(root),
			Codeowners: "CODEOWNERS",
			Query:      "foo",
			Out:        m.Path(out),
		})
		if err != nil {
			t.Fatalf("Audit error: %v", err)
		}

		total := 0
		for _, report := range reports {
			if report.Count != len(report.Files) {
				t.Errorf("owner %s: count %d != %d detail rows", report.Owner, report.Count, len(report.Files))
			}
			total += report.Count
		}
		if manifest.TotalCount != total {
			t.Errorf("manifest total %d != summed counts %d", manifest.TotalCount, total)
		}
	})

	t.Run("codeowners file resolved relative to root", func(t *testing.T) {
		root := t.TempDir()
		out := filepath.Join(t.TempDir(), "results")
		writeFile(t, filepath.Join(root, "a.txt"), "foo\n")
		writeFile(t, filepath.Join(root, ".github", "CODEOWNERS"), "/* team\n")

		wf := newTestWorkflow()
		_, reports, err := wf.Audit(AuditArgs{
			Root:       m.Path(root),
			Codeowners: ".github/CODEOWNERS",
			Query:      "foo",
			Out:        m.Path(out),
		})
		if err != nil {
			t.Fatalf("Audit error: %v", err)
		}
		if len(reports) != 1 || reports[0].Owner != "team" {
			t.Fatalf("expected team, got %+v", reports)
		}
	})

	t.Run("missing codeowners file is fatal", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a.txt"), "foo\n")

		wf := newTestWorkflow()
		_, _, err := wf.Audit(AuditArgs{
			Root:       m.Path(root),
			Codeowners: "CODEOWNERS",
			Query:      "foo",
			Out:        m.Path(filepath.Join(t.TempDir(), "results")),
		})
		if err == nil {
			t.Fatalf("expected error for missing CODEOWNERS")
		}
	})

	t.Run("empty root is rejected", func(t *testing.T) {
		wf := newTestWorkflow()
		_, _, err := wf.Audit(AuditArgs{Root: "", Query: "foo"})
		if err == nil {
			t.Fatalf("expected error for empty root")
		}
	})

	t.Run("nonexistent root is fatal", func(t *testing.T) {
		wf := newTestWorkflow()
		_, _, err := wf.Audit(AuditArgs{
			Root:  m.Path(filepath.Join(t.TempDir(), "no_such_dir")),
			Query: "foo",
		})
		if err == nil {
			t.Fatalf("expected error for nonexistent root")
		}
	})
}

func TestWorkflowView(t *testing.T) {
	t.Run("round-trips a saved run", func(t *testing.T) {
		root := t.TempDir()
		out := filepath.Join(t.TempDir(), "results")
		writeFile(t, filepath.Join(root, "a", "b.txt"), "foo\nbar\nfoo\n")
		writeFile(t, filepath.Join(root, "CODEOWNERS"), "/a/* alice\n")

		wf := newTestWorkflow()
		savedManifest, savedReports, err := wf.Audit(AuditArgs{
			Root:       m.Path(root),
			Codeowners: "CODEOWNERS",
			Query:      "foo",
			Out:        m.Path(out),
		})
		if err != nil {
			t.Fatalf("Audit error: %v", err)
		}

		manifest, reports, err := wf.View(m.Path(out))
		if err != nil {
			t.Fatalf("View error: %v", err)
		}
		if manifest.Query != savedManifest.Query || manifest.TotalCount != savedManifest.TotalCount {
			t.Errorf("manifest mismatch: saved %+v, loaded %+v", savedManifest, manifest)
		}
		if len(reports) != len(savedReports) {
			t.Fatalf("expected %d reports, got %d", len(savedReports), len(reports))
		}
		if reports[0].Owner != "alice" || len(reports[0].Files) != 1 {
			t.Fatalf("unexpected loaded report: %+v", reports[0])
		}
		if got := reports[0].Files[0].Lines; len(got) != 2 || got[0] != 1 || got[1] != 3 {
			t.Errorf("expected lines [1 3], got %v", got)
		}
	})

	t.Run("missing results directory is an error", func(t *testing.T) {
		wf := newTestWorkflow()
		_, _, err := wf.View(m.Path(filepath.Join(t.TempDir(), "nope")))
		if err == nil {
			t.Fatalf("expected error for missing results directory")
		}
	})
}
