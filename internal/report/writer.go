/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

// Writer is the persistence boundary. Pipelines never touch the filesystem
// directly; tests inject an in-memory implementation.
type Writer interface {
	WriteFile(path string, data []byte) error
	ReadFile(path string) ([]byte, error)
	Exists(path string) bool
}

// FSWriter writes the on-disk report tree, creating intermediate directories.
type FSWriter struct{}

func (FSWriter) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { return err }
	return os.WriteFile(path, data, 0o644)
}

func (FSWriter) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func (FSWriter) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Path returns the report location for one (user, period, tool) key:
// <reportsDir>/<slug>/<period>/<tool>-analysis.md.
func Path(reportsDir, slug, periodKey string, tool domain.Tool) string {
	return filepath.Join(reportsDir, slug, periodKey, string(tool)+"-analysis.md")
}

// ArtifactsDir is where fetched source material (exported Google Docs and the
// like) is kept alongside the report.
func ArtifactsDir(reportsDir, slug, periodKey string) string {
	return filepath.Join(reportsDir, slug, periodKey, "artifacts")
}

// PackagePath is the location of the final aggregated review package.
func PackagePath(reportsDir, slug, periodKey string) string {
	return filepath.Join(reportsDir, slug, periodKey, "review-package.md")
}

// Write validates structural completeness and persists one report.
func Write(w Writer, path, markdown string) error {
	if err := CheckFilled(markdown); err != nil { return err }
	if err := w.WriteFile(path, []byte(markdown)); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
