package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/report"
)

// readAssessment decodes a file, or stdin as JSON when path is "-"
func readAssessment(path string, stdin io.Reader) (*domain.AssessmentData, error) {
	if path == "-" {
		return report.DecodeAssessment(stdin, report.InputJSON)
	}

	format, err := report.InputFormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open assessment: %w", err)
	}
	defer f.Close()

	return report.DecodeAssessment(f, format)
}
