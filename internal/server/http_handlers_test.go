package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"resumecrafter/internal/config"
	"resumecrafter/internal/diff"
	"resumecrafter/internal/errors"
	"resumecrafter/internal/observability"
	"resumecrafter/internal/resume"
)

func newTestMux(t *testing.T, apiKeys []string) *http.ServeMux {
	t.Helper()

	logger := errors.NewLogger(slog.LevelError)
	cfg := &config.Config{}

	srv := NewServer(cfg, ServerConfig{
		Host:           "localhost",
		Port:           "8080",
		Version:        "test",
		APIKeys:        apiKeys,
		MaxRequestSize: 1 << 20,
	}, logger)

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, cfg)
	if err != nil {
		t.Fatalf("NewObservabilityManager: %v", err)
	}

	return srv.setupRoutes(om)
}

func postJSON(t *testing.T, mux *http.ServeMux, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func sampleRecordJSON(t *testing.T) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(resume.SampleRecord())
	if err != nil {
		t.Fatalf("marshal sample record: %v", err)
	}
	return data
}

func TestCompareEndpoint(t *testing.T) {
	mux := newTestMux(t, nil)
	original := sampleRecordJSON(t)

	optimizedRec := resume.SampleRecord()
	optimizedRec.Certifications = append(optimizedRec.Certifications, "Invented Certification")
	optimized, err := json.Marshal(optimizedRec)
	if err != nil {
		t.Fatalf("marshal optimized record: %v", err)
	}

	rec := postJSON(t, mux, "/compare", CompareRequest{
		Original:  original,
		Optimized: optimized,
	}, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var report diff.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(report.Checks) == 0 {
		t.Fatal("expected fabrication checks in report")
	}
	if !report.HasWarnings() {
		t.Error("expected a warning for the added certification")
	}
}

func TestCompareEndpointMissingFields(t *testing.T) {
	mux := newTestMux(t, nil)

	rec := postJSON(t, mux, "/compare", CompareRequest{Original: sampleRecordJSON(t)}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Error == "" {
		t.Error("expected error field to be populated")
	}
}

func TestCompareEndpointRejectsInvalidJSON(t *testing.T) {
	mux := newTestMux(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/compare", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRenderEndpointPDF(t *testing.T) {
	mux := newTestMux(t, nil)

	rec := postJSON(t, mux, "/render", RenderRequest{
		Resume: sampleRecordJSON(t),
		Kind:   "resume",
		Format: "pdf",
	}, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("response body does not start with a PDF header")
	}
}

func TestRenderEndpointDOCX(t *testing.T) {
	mux := newTestMux(t, nil)

	rec := postJSON(t, mux, "/render", RenderRequest{
		Resume:  sampleRecordJSON(t),
		Format:  "docx",
		Variant: "plain",
	}, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	// DOCX files are zip archives
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("response body does not start with a zip header")
	}
}

func TestRenderEndpointInvalidFormat(t *testing.T) {
	mux := newTestMux(t, nil)

	rec := postJSON(t, mux, "/render", RenderRequest{
		Resume: sampleRecordJSON(t),
		Format: "odt",
	}, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAuthMiddleware(t *testing.T) {
	mux := newTestMux(t, []string{"secret-key-12345"})
	body := CompareRequest{
		Original:  sampleRecordJSON(t),
		Optimized: sampleRecordJSON(t),
	}

	t.Run("MissingKey", func(t *testing.T) {
		rec := postJSON(t, mux, "/compare", body, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("InvalidKey", func(t *testing.T) {
		rec := postJSON(t, mux, "/compare", body, map[string]string{"X-API-Key": "wrong"})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("ValidKeyHeader", func(t *testing.T) {
		rec := postJSON(t, mux, "/compare", body, map[string]string{"X-API-Key": "secret-key-12345"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("ValidBearerToken", func(t *testing.T) {
		rec := postJSON(t, mux, "/compare", body, map[string]string{"Authorization": "Bearer secret-key-12345"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})
}

func TestStatsEndpoint(t *testing.T) {
	mux := newTestMux(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var stats map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats["service"] != "resumecrafter" {
		t.Errorf("service = %v, want resumecrafter", stats["service"])
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "****"},
		{"12345678", "****"},
		{"123456789abcdef", "12345678****"},
	}
	for _, tt := range tests {
		if got := maskAPIKey(tt.in); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
