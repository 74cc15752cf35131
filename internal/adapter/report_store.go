package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "shelve.dev/pkg/shelve/internal/model"
)

const (
	reportFilePrefix = "run-"
	reportFileExt    = ".yaml"
	reportTimeLayout = "20060102T150405"
)

// ReportStore persists run reports inside a reports directory.
type ReportStore interface {
	SaveReport(ctx context.Context, dir m.Path, report m.RunReport) (m.Path, error)
	LoadReports(ctx context.Context, dir m.Path) ([]m.RunReport, error)
}

// YAMLReportStore writes one YAML document per run.
type YAMLReportStore struct{}

// NewReportStore creates a YAML-backed ReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReport writes report to dir, creating dir when needed.
func (s *YAMLReportStore) SaveReport(ctx context.Context, dir m.Path, report m.RunReport) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	name := reportFilePrefix + report.StartedAt.UTC().Format(reportTimeLayout) + "-" + shortID(report.ID) + reportFileExt
	path := filepath.Join(string(dir), name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	slog.Debug("saved run report", "path", path, "moves", len(report.Moves))

	return m.Path(path), nil
}

// LoadReports reads every report in dir, oldest first.
// A missing directory yields no reports.
func (s *YAMLReportStore) LoadReports(ctx context.Context, dir m.Path) ([]m.RunReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(string(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("read reports dir: %w", err)
	}

	var reports []m.RunReport

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, reportFilePrefix) || filepath.Ext(name) != reportFileExt {
			continue
		}

		path := filepath.Join(string(dir), name)

		// #nosec G304 - path is built from the reports directory listing
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read report %s: %w", name, err)
		}

		var report m.RunReport
		if err := yaml.Unmarshal(data, &report); err != nil {
			slog.Warn("skipping unreadable report", "path", path, "error", err)
			continue
		}

		reports = append(reports, report)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].StartedAt.Before(reports[j].StartedAt)
	})

	return reports, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}

	if id == "" {
		return "local"
	}

	return id
}
