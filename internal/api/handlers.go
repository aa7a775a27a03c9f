package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/regdocs/sheetchunk/internal/config"
	"github.com/regdocs/sheetchunk/internal/jsonl"
	"github.com/regdocs/sheetchunk/internal/parser"
	"github.com/regdocs/sheetchunk/internal/pipeline"
	"github.com/regdocs/sheetchunk/internal/record"
	"github.com/regdocs/sheetchunk/internal/token"
)

// handleChunk runs the full pipeline on an uploaded file and streams
// the chunks back as NDJSON.
func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	rows, runner, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	result, err := runner.Run(rows)
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("X-Chunk-Count", strconv.Itoa(len(result.Chunks)))
	if err := jsonl.Write(w, result.Chunks); err != nil {
		s.log.Error("write chunk stream", "error", err)
	}
}

// handlePaths stops after path assignment and streams the intermediate
// records.
func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	rows, runner, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	paths, err := runner.Paths(rows)
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	if err := jsonl.Write(w, paths); err != nil {
		s.log.Error("write path stream", "error", err)
	}
}

// handleValidate checks a tabular upload's column layout.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	file, filename, ok := s.openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	report, err := parser.Validate(file, filename, parser.Options{HeaderRow: s.headerRow(r)})
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// readUpload parses the uploaded file into rows and builds a runner
// from the request's config overrides.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]record.Row, *pipeline.Runner, bool) {
	file, filename, ok := s.openUpload(w, r)
	if !ok {
		return nil, nil, false
	}
	defer file.Close()

	p, err := parser.ForFile(filename, parser.Options{HeaderRow: s.headerRow(r)})
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}

	rows, err := p.Parse(file, filename)
	if err != nil {
		jsonError(w, fmt.Sprintf("parse %s: %v", filename, err), http.StatusBadRequest)
		return nil, nil, false
	}

	cfg := s.requestConfig(r)
	counter, err := token.ForName(cfg.Tokenizer)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}

	return rows, pipeline.NewRunner(cfg, counter, s.log), true
}

func (s *Server) openUpload(w http.ResponseWriter, r *http.Request) (multipart.File, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		file.Close()
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return nil, "", false
	}

	return file, filename, true
}

// requestConfig applies per-request form overrides on top of the
// server defaults.
func (s *Server) requestConfig(r *http.Request) config.Config {
	cfg := s.cfg
	if v := r.FormValue("max_tokens"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := r.FormValue("tokenizer"); v != "" {
		cfg.Tokenizer = v
	}
	if v := r.FormValue("clean"); v != "" {
		cfg.CleanContent = v == "true"
	}
	if v := r.FormValue("emit_headings"); v != "" {
		cfg.EmitHeadings = v == "true"
	}
	return cfg
}

func (s *Server) headerRow(r *http.Request) int {
	if v := r.FormValue("header_row"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return s.cfg.HeaderRow
}

// pipelineError maps the failure taxonomy to status codes: contract
// violations in the data are the client's problem.
func (s *Server) pipelineError(w http.ResponseWriter, err error) {
	var malformed *record.MalformedInputError
	var chunking *record.ChunkingError
	switch {
	case errors.As(err, &malformed):
		jsonError(w, malformed.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &chunking):
		jsonError(w, chunking.Error(), http.StatusUnprocessableEntity)
	default:
		s.log.Error("pipeline failure", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// sanitizeFilename strips any path components from a client-supplied
// filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." || name == "/" {
		name = "upload"
	}
	return name
}
