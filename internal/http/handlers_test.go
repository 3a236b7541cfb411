package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"medassist/internal/core"
	httpserver "medassist/internal/http"
	"medassist/pkg"
)

// fakeService returns a canned result, or ErrEmptyInput when the symptom
// text is blank, mirroring the consultor's contract.
type fakeService struct {
	result pkg.ConsultationResult
	err    error
}

func (f *fakeService) RunConsultation(ctx context.Context, req pkg.ConsultationRequest) (pkg.ConsultationResult, error) {
	if strings.TrimSpace(req.Symptoms) == "" {
		return pkg.ConsultationResult{}, core.ErrEmptyInput
	}
	return f.result, f.err
}

func postConsultation(t *testing.T, srv http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/consultations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestConsultationEndpoint(t *testing.T) {
	svc := &fakeService{result: pkg.ConsultationResult{
		Kind: pkg.KindCompleted,
		Summary: &pkg.ConsultationSummary{
			UrgencyLevel: pkg.UrgencyLow,
			NextStep:     "Rest.",
			Rationale:    "Mild.",
		},
		Transcript: []pkg.TranscriptEntry{{Role: pkg.RoleIntake, Content: "hi"}},
	}}
	srv := httpserver.NewServer(svc, nil)

	rec := postConsultation(t, srv, `{"symptoms":"sore throat","age":"26"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res pkg.ConsultationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, pkg.KindCompleted, res.Kind)
	require.NotNil(t, res.Summary)
	require.Equal(t, pkg.UrgencyLow, res.Summary.UrgencyLevel)
}

func TestConsultationHaltedIsSuccess(t *testing.T) {
	svc := &fakeService{result: pkg.ConsultationResult{
		Kind:             pkg.KindHalted,
		EmergencyMessage: "Seek immediate care.",
		Categories:       []string{"chest pain"},
	}}
	srv := httpserver.NewServer(svc, nil)

	rec := postConsultation(t, srv, `{"symptoms":"chest pain"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res pkg.ConsultationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, pkg.KindHalted, res.Kind)
	require.NotEmpty(t, res.EmergencyMessage)
}

func TestConsultationEmptyInput(t *testing.T) {
	srv := httpserver.NewServer(&fakeService{}, nil)

	rec := postConsultation(t, srv, `{"symptoms":"   "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, core.EmptyInputPrompt, body["error"])
}

func TestConsultationInvalidBody(t *testing.T) {
	srv := httpserver.NewServer(&fakeService{}, nil)

	rec := postConsultation(t, srv, `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	srv := httpserver.NewServer(&fakeService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
