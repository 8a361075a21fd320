// Package reporting renders and publishes completed grading reports.
// Sink failures are never grading failures.
package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/gradebot/autograder/types"
)

// ReportSink receives the completed report for persistence or upload.
type ReportSink interface {
	Publish(report *types.Report) error
}

// StatusSink receives the short score summary string for display in an
// external status surface.
type StatusSink interface {
	PublishStatus(text string) error
}

// JSONFileSink writes the report as a JSON artifact under a results
// directory, one subdirectory per run.
type JSONFileSink struct {
	baseDir string
	log     *zap.SugaredLogger
}

// NewJSONFileSink creates a sink rooted at baseDir.
func NewJSONFileSink(baseDir string, log *zap.SugaredLogger) *JSONFileSink {
	return &JSONFileSink{baseDir: baseDir, log: log}
}

// Publish writes results/<grading-runID>/report.json.
func (s *JSONFileSink) Publish(report *types.Report) error {
	outputDir := filepath.Join(s.baseDir, "grading-"+report.RunID)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	reportFile := filepath.Join(outputDir, "report.json")
	if err := os.WriteFile(reportFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	s.log.Debugw("Report published", "path", reportFile)
	return nil
}

// NoticeStatusSink surfaces the score as a workflow notice command on the
// given stream, where the surrounding log processor picks it up.
type NoticeStatusSink struct {
	out io.Writer
}

// NewNoticeStatusSink creates a status sink writing to out.
func NewNoticeStatusSink(out io.Writer) *NoticeStatusSink {
	return &NoticeStatusSink{out: out}
}

func (s *NoticeStatusSink) PublishStatus(text string) error {
	_, err := fmt.Fprintf(s.out, "::notice::%s\n", text)
	return err
}
