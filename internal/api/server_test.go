package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/regdocs/sheetchunk/internal/config"
	"github.com/regdocs/sheetchunk/internal/record"
)

const sampleCSV = `NodeId,Title,Content
1,Manual,
,,Scope statement.
1.1,Purpose,
,,Defines the criteria.
`

func testServer(cfg config.Config) *Server {
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 300
	}
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = 1 << 20
	}
	return NewServer(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
}

// uploadRequest builds a multipart POST with one file field plus any
// extra form fields.
func uploadRequest(t *testing.T, url, filename, content string, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(fw, content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	srv := testServer(config.Config{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestChunkEndpoint(t *testing.T) {
	srv := testServer(config.Config{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/chunk", "sample.csv", sampleCSV, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/x-ndjson" {
		t.Errorf("unexpected content type %q", ct)
	}
	if rec.Header().Get("X-Chunk-Count") != "2" {
		t.Errorf("expected X-Chunk-Count 2, got %q", rec.Header().Get("X-Chunk-Count"))
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 chunk lines, got %d", len(lines))
	}
	var c record.Chunk
	if err := json.Unmarshal([]byte(lines[1]), &c); err != nil {
		t.Fatalf("decode chunk: %v", err)
	}
	if len(c.SemanticPath) != 2 || c.SemanticPath[1] != "Purpose" {
		t.Errorf("expected path [Manual Purpose], got %v", c.SemanticPath)
	}
	if c.Content != "Defines the criteria." {
		t.Errorf("unexpected content %q", c.Content)
	}
}

func TestPathsEndpoint(t *testing.T) {
	srv := testServer(config.Config{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/paths", "sample.csv", sampleCSV, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 path records, got %d", len(lines))
	}
}

func TestValidateEndpoint(t *testing.T) {
	srv := testServer(config.Config{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/validate", "sample.csv", sampleCSV, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var report struct {
		Rows            int      `json:"rows"`
		MissingRequired []string `json:"missing_required"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Rows != 4 {
		t.Errorf("expected 4 rows, got %d", report.Rows)
	}
	if len(report.MissingRequired) != 0 {
		t.Errorf("unexpected missing columns: %v", report.MissingRequired)
	}
}

func TestUnsupportedExtension(t *testing.T) {
	srv := testServer(config.Config{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/chunk", "sample.pdf", "%PDF-1.4", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUnknownTokenizer(t *testing.T) {
	srv := testServer(config.Config{})
	rec := httptest.NewRecorder()
	req := uploadRequest(t, "/api/chunk", "sample.csv", sampleCSV, map[string]string{
		"tokenizer": "no-such-encoding",
	})
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown tokenizer, got %d", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv := testServer(config.Config{APIKey: "secret"})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/chunk", "sample.csv", sampleCSV, nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := uploadRequest(t, "/api/chunk", "sample.csv", sampleCSV, nil)
	req.Header.Set("Authorization", "Bearer secret")
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with key, got %d: %s", rec.Code, rec.Body.String())
	}

	// Health stays open.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected open health endpoint, got %d", rec.Code)
	}
}

func TestRequestOverrides(t *testing.T) {
	srv := testServer(config.Config{})
	rec := httptest.NewRecorder()
	req := uploadRequest(t, "/api/paths", "sample.csv", sampleCSV, map[string]string{
		"emit_headings": "true",
	})
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	// Two content-less headings join the two content records.
	if len(lines) != 4 {
		t.Fatalf("expected 4 records with emit_headings, got %d", len(lines))
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"report.csv":        "report.csv",
		"/etc/passwd":       "passwd",
		"../../evil.csv":    "evil.csv",
		"..":                "upload",
		"dir/inner/doc.csv": "doc.csv",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
