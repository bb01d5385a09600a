package terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/assessment-atlas/pkg/models/api"
	"github.com/de-tools/assessment-atlas/pkg/runtime/terminal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const assessmentJSON = `{
  "id": "assessment-9",
  "date": "2024-06-01",
  "demographics": {"firstName": "Sam", "lastName": "Rivera", "dateOfBirth": "1975-01-20"},
  "functionalAssessment": {"bergBalance": {"totalScore": 45}}
}`

const assessmentYAML = `
id: assessment-9
date: "2024-06-01"
demographics:
  firstName: Sam
  lastName: Rivera
`

type recordingSink struct {
	objects []export.Object
}

func (s *recordingSink) Publish(_ context.Context, obj export.Object) error {
	s.objects = append(s.objects, obj)
	return nil
}

func writeAssessment(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, opts Options, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	opts.Output = &out
	cli := NewCLI(opts)
	cli.SetArgs(args)
	err := cli.Execute()
	return out.String(), err
}

func TestCLI_Agents(t *testing.T) {
	out, err := run(t, Options{}, "agents")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 13)
	assert.True(t, strings.HasPrefix(lines[0], "1.0"))
	assert.Contains(t, lines[0], "demographics")
	assert.Contains(t, lines[12], "environment")
}

func TestCLI_ReportJSON(t *testing.T) {
	path := writeAssessment(t, "assessment.json", assessmentJSON)

	out, err := run(t, Options{}, "report", path, "--format", "json", "--detail", "brief", "--agents", "demographics,mobility")
	require.NoError(t, err)

	var rep api.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "assessment-9", rep.AssessmentID)
	assert.Equal(t, "brief", rep.DetailLevel)
	require.Len(t, rep.Sections, 2)
	assert.Equal(t, "mobility", rep.Sections[1].SectionName)
}

func TestCLI_ReportText_YAMLInput(t *testing.T) {
	path := writeAssessment(t, "assessment.yaml", assessmentYAML)

	out, err := run(t, Options{}, "report", path, "--agents", "demographics")
	require.NoError(t, err)

	assert.Contains(t, out, "Assessment: assessment-9")
	assert.Contains(t, out, "Detail Level: standard")
	assert.Contains(t, out, "=== Demographics ===")
}

func TestCLI_ReportFromStdin(t *testing.T) {
	out, err := run(t, Options{Input: strings.NewReader(assessmentJSON)}, "report", "-", "--agents", "demographics")
	require.NoError(t, err)

	assert.Contains(t, out, "Assessment: assessment-9")
}

func TestCLI_ReportToS3(t *testing.T) {
	t.Setenv("ATLAS_S3_BUCKET", "clinic-reports")
	path := writeAssessment(t, "assessment.json", assessmentJSON)

	sink := &recordingSink{}
	var gotBucket, gotPrefix string
	opts := Options{
		S3Sink: func(_ context.Context, _, bucket, prefix string) (export.Sink, error) {
			gotBucket, gotPrefix = bucket, prefix
			return sink, nil
		},
	}

	out, err := run(t, opts, "report", path, "--s3", "--format", "json", "--agents", "demographics")
	require.NoError(t, err)

	assert.Empty(t, out)
	assert.Equal(t, "clinic-reports", gotBucket)
	assert.Equal(t, "reports", gotPrefix)
	require.Len(t, sink.objects, 1)
	assert.True(t, strings.HasPrefix(sink.objects[0].Key, "assessment-9/"))
	assert.Equal(t, "application/json", sink.objects[0].ContentType)
}

func TestCLI_ReportErrors(t *testing.T) {
	jsonPath := writeAssessment(t, "assessment.json", assessmentJSON)

	tests := []struct {
		name string
		args []string
		err  string
	}{
		{name: "unsupported extension", args: []string{"report", writeAssessment(t, "a.txt", "x")}, err: "unsupported input format"},
		{name: "bad detail", args: []string{"report", jsonPath, "--detail", "verbose"}, err: "unknown detail level"},
		{name: "bad format", args: []string{"report", jsonPath, "--format", "pdf"}, err: "unsupported output format"},
		{name: "unknown agent", args: []string{"report", jsonPath, "--agents", "palmistry"}, err: "agent is not registered"},
		{name: "s3 without bucket", args: []string{"report", jsonPath, "--s3"}, err: "requires s3.bucket"},
		{name: "missing profile", args: []string{"report", jsonPath, "--profile", "absent"}, err: "failed to load profiles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ATLAS_PROFILES_PATH", filepath.Join(t.TempDir(), "none"))
			_, err := run(t, Options{}, tt.args...)
			assert.ErrorContains(t, err, tt.err)
		})
	}
}

func TestCLI_ReportWithProfile(t *testing.T) {
	profiles := writeAssessment(t, ".atlasprofiles", "[quick]\ndetail_level = brief\nagents = demographics\n")
	t.Setenv("ATLAS_PROFILES_PATH", profiles)
	path := writeAssessment(t, "assessment.json", assessmentJSON)

	out, err := run(t, Options{}, "report", path, "--profile", "quick", "--format", "json")
	require.NoError(t, err)

	var rep api.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "brief", rep.DetailLevel)
	assert.Len(t, rep.Sections, 1)
}

func TestCLI_Validate(t *testing.T) {
	path := writeAssessment(t, "assessment.json", assessmentJSON)

	t.Run("valid subset", func(t *testing.T) {
		out, err := run(t, Options{}, "validate", path, "--agents", "demographics,mobility")
		require.NoError(t, err)
		assert.Contains(t, out, "| demographics")
		assert.NotContains(t, out, "invalid")
	})

	t.Run("rejected", func(t *testing.T) {
		out, err := run(t, Options{}, "validate", path, "--agents", "transfers")
		assert.ErrorContains(t, err, "1 of 1 agents rejected the assessment")
		assert.Contains(t, out, "invalid")
	})
}
