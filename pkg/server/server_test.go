package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/assessment-atlas/pkg/models/api"
	"github.com/de-tools/assessment-atlas/pkg/models/domain"
	"github.com/de-tools/assessment-atlas/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const assessment = `{
  "id": "assessment-7",
  "date": "2024-06-01",
  "demographics": {"firstName": "Jane", "lastName": "Doe", "dateOfBirth": "1980-03-15", "gender": "female"},
  "functionalAssessment": {"bergBalance": {"totalScore": 30}}
}`

type panickingService struct {
	mock.Mock
}

func (m *panickingService) Generate(ctx context.Context, data *domain.AssessmentData, req report.Request) (domain.Report, error) {
	m.Called(ctx, data, req)
	return domain.Report{}, nil
}

func (m *panickingService) Validate(data *domain.AssessmentData, req report.Request) ([]report.AgentValidation, error) {
	m.Called(data, req)
	return nil, nil
}

func (m *panickingService) ListAgents() []report.AgentInfo {
	m.Called()
	return nil
}

func newTestConfig(t *testing.T, svc report.Service) Config {
	return Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Reports:  svc,
			Defaults: report.Request{DetailLevel: domain.DetailStandard},
			Logger:   zerolog.New(zerolog.NewTestWriter(t)),
		},
	}
}

func TestWebAPI_Endpoints(t *testing.T) {
	testServer := httptest.NewServer(ConfigureRouter(newTestConfig(t, report.NewService(report.DefaultRegistry()))))
	defer testServer.Close()

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		check          func(t *testing.T, resp *http.Response)
	}{
		{
			name:           "ListAgents",
			method:         http.MethodGet,
			path:           "/api/v1/agents",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, resp *http.Response) {
				agents := decode[[]api.Agent](t, resp)
				require.Len(t, agents, 13)
				assert.Equal(t, api.Agent{Name: "demographics", Title: "Demographics", Order: 1.0}, agents[0])
			},
		},
		{
			name:           "GenerateReport",
			method:         http.MethodPost,
			path:           "/api/v1/reports?detail=brief&agents=demographics,mobility",
			body:           assessment,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, resp *http.Response) {
				rep := decode[api.Report](t, resp)
				assert.Equal(t, "assessment-7", rep.AssessmentID)
				assert.Equal(t, "brief", rep.DetailLevel)
				require.Len(t, rep.Sections, 2)
				assert.Equal(t, "demographics", rep.Sections[0].SectionName)
				assert.Contains(t, rep.Sections[1].Content, "30/56")
			},
		},
		{
			name:           "GenerateReport_IncompleteAssessment",
			method:         http.MethodPost,
			path:           "/api/v1/reports",
			body:           `{"demographics": {"firstName": "Jane"}}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, resp *http.Response) {
				rep := decode[api.Report](t, resp)
				require.Len(t, rep.Sections, 1)
				assert.Contains(t, rep.Sections[0].Content, "missing id and date")
			},
		},
		{
			name:           "GenerateReport_BadJSON",
			method:         http.MethodPost,
			path:           "/api/v1/reports",
			body:           "not json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "GenerateReport_UnknownAgent",
			method:         http.MethodPost,
			path:           "/api/v1/reports?agents=horoscope",
			body:           assessment,
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, resp *http.Response) {
				assert.Contains(t, decode[api.Error](t, resp).Message, "agent is not registered")
			},
		},
		{
			name:           "ValidateAssessment",
			method:         http.MethodPost,
			path:           "/api/v1/reports/validate?agents=mobility",
			body:           `{"id": "a-1", "date": "2024-06-01"}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, resp *http.Response) {
				results := decode[[]api.ValidationResult](t, resp)
				require.Len(t, results, 1)
				assert.False(t, results[0].IsValid)
				assert.Contains(t, results[0].Errors, "Missing required field: functionalAssessment")
			},
		},
		{
			name:           "MethodNotAllowed",
			method:         http.MethodGet,
			path:           "/api/v1/reports",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, testServer.URL+tc.path, strings.NewReader(tc.body))
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")
			if tc.check != nil {
				tc.check(t, resp)
			}
		})
	}
}

func TestWebAPI_RecoversFromPanics(t *testing.T) {
	svc := new(panickingService)
	svc.On("ListAgents").Panic("registry corrupted")

	testServer := httptest.NewServer(ConfigureRouter(newTestConfig(t, svc)))
	defer testServer.Close()

	resp, err := http.Get(testServer.URL + "/api/v1/agents")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
