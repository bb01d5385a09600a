package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"gopkg.in/yaml.v3"
)

// InputFormat is the serialisation of an assessment document
type InputFormat string

const (
	InputJSON InputFormat = "json"
	InputYAML InputFormat = "yaml"
)

var ErrUnsupportedFormat = errors.New("unsupported input format")

// InputFormatFromPath picks the format from a file extension
func InputFormatFromPath(path string) (InputFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return InputJSON, nil
	case ".yaml", ".yml":
		return InputYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// DecodeAssessment reads one assessment document. Unknown fields are ignored.
func DecodeAssessment(r io.Reader, format InputFormat) (*domain.AssessmentData, error) {
	var data domain.AssessmentData
	switch format {
	case InputJSON:
		if err := json.NewDecoder(r).Decode(&data); err != nil {
			return nil, fmt.Errorf("failed to decode JSON assessment: %w", err)
		}
	case InputYAML:
		if err := yaml.NewDecoder(r).Decode(&data); err != nil {
			return nil, fmt.Errorf("failed to decode YAML assessment: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &data, nil
}
