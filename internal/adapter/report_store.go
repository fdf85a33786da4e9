package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/faultline/internal/model"
)

const (
	indexFile     = "_index.yaml"
	reportExt     = ".yaml"
	maxSaveWorker = 8
)

// ReportStore persists and retrieves test reports.
type ReportStore interface {
	SaveReports(path m.Path, reports []m.Report) error
	LoadReports(path m.Path) ([]m.Report, error)
	RegenerateIndex(path m.Path, summary m.Summary) error
	LoadSummary(path m.Path) (m.Summary, error)
	CleanReports(path m.Path) error
}

// LocalReportStore keeps one YAML file per report in a directory, plus an
// index with the run summary.
type LocalReportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() ReportStore {
	return &LocalReportStore{}
}

type indexEntry struct {
	RunID   string        `yaml:"run_id"`
	Summary summaryYAML   `yaml:"summary"`
	Reports []resultEntry `yaml:"reports"`
}

type summaryYAML struct {
	Assertions  int  `yaml:"assertions"`
	Total       int  `yaml:"total"`
	Passes      int  `yaml:"passes"`
	Fails       int  `yaml:"fails"`
	Errors      int  `yaml:"errors"`
	Skipped     int  `yaml:"skipped"`
	SuitePasses int  `yaml:"suite_passes"`
	SuiteFails  int  `yaml:"suite_fails"`
	Aborted     bool `yaml:"aborted"`
}

type resultEntry struct {
	Suite  string   `yaml:"suite,omitempty"`
	Test   string   `yaml:"test"`
	Status m.Status `yaml:"status"`
	File   string   `yaml:"file"`
}

// SaveReports writes every report to its own hashed file under path.
func (rs *LocalReportStore) SaveReports(path m.Path, reports []m.Report) error {
	if path == "" {
		return errors.New("reports path is empty")
	}

	if err := os.MkdirAll(string(path), 0o755); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}

	var g errgroup.Group

	g.SetLimit(maxSaveWorker)

	for _, report := range reports {
		g.Go(func() error {
			return rs.saveReport(path, report)
		})
	}

	return g.Wait()
}

func (rs *LocalReportStore) saveReport(path m.Path, report m.Report) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report for %s: %w", report.Test, err)
	}

	file := filepath.Join(string(path), rs.computeReportHash(report)+reportExt)
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", file, err)
	}

	return nil
}

// LoadReports reads every report under path in execution order.
func (rs *LocalReportStore) LoadReports(path m.Path) ([]m.Report, error) {
	files, err := rs.reportFiles(path)
	if err != nil {
		return nil, err
	}

	reports := make([]m.Report, 0, len(files))

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read report %s: %w", file, err)
		}

		var report m.Report
		if err := yaml.Unmarshal(data, &report); err != nil {
			return nil, fmt.Errorf("failed to parse report %s: %w", file, err)
		}

		reports = append(reports, report)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Index < reports[j].Index
	})

	return reports, nil
}

// RegenerateIndex rewrites the index from the reports on disk and summary.
func (rs *LocalReportStore) RegenerateIndex(path m.Path, summary m.Summary) error {
	reports, err := rs.LoadReports(path)
	if err != nil {
		return err
	}

	idx := indexEntry{
		Summary: summaryYAML(summary),
		Reports: make([]resultEntry, 0, len(reports)),
	}

	for _, report := range reports {
		idx.RunID = report.RunID
		idx.Reports = append(idx.Reports, resultEntry{
			Suite:  report.Suite,
			Test:   report.Test,
			Status: report.Result.Outcome.Status,
			File:   rs.computeReportHash(report) + reportExt,
		})
	}

	data, err := yaml.Marshal(idx)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	if err := os.WriteFile(filepath.Join(string(path), indexFile), data, 0o644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}

	return nil
}

// LoadSummary reads the run summary from the index.
func (rs *LocalReportStore) LoadSummary(path m.Path) (m.Summary, error) {
	data, err := os.ReadFile(filepath.Join(string(path), indexFile))
	if err != nil {
		return m.Summary{}, fmt.Errorf("failed to read index: %w", err)
	}

	var idx indexEntry
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return m.Summary{}, fmt.Errorf("failed to parse index: %w", err)
	}

	return m.Summary(idx.Summary), nil
}

// CleanReports removes the reports and the index of a previous run. A
// missing directory is not an error.
func (rs *LocalReportStore) CleanReports(path m.Path) error {
	files, err := rs.reportFiles(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return err
	}

	files = append(files, filepath.Join(string(path), indexFile))

	for _, file := range files {
		if err := os.Remove(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", file, err)
		}
	}

	return nil
}

func (rs *LocalReportStore) reportFiles(path m.Path) ([]string, error) {
	if path == "" {
		return nil, errors.New("reports path is empty")
	}

	entries, err := os.ReadDir(string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read reports directory: %w", err)
	}

	var files []string

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == indexFile || !strings.HasSuffix(name, reportExt) {
			continue
		}

		files = append(files, filepath.Join(string(path), name))
	}

	return files, nil
}

// computeReportHash names a report file after the run, position and test it
// belongs to.
func (rs *LocalReportStore) computeReportHash(report m.Report) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%d\x00%s\x00%s", report.RunID, report.Index, report.Suite, report.Test)))

	return hex.EncodeToString(sum[:8])
}
