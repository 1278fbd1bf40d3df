package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/scitextlab/scirender/internal/input"
	"github.com/scitextlab/scirender/internal/latex"
	"github.com/scitextlab/scirender/internal/render"
)

type renderRequest struct {
	Text     string `json:"text"`
	Markdown *bool  `json:"markdown,omitempty"`
	Inline   bool   `json:"inline,omitempty"`
}

type renderResponse struct {
	RenderID string `json:"render_id"`
	HTML     string `json:"html"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestBytes)

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}

	s.renderText(w, req.Text, req.Markdown, req.Inline)
}

func (s *Server) handleRenderFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !input.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	src, err := input.ForFile(filename, s.cfg.PDFFallbackPdftotext)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	text, err := src.Extract(io.LimitReader(file, s.cfg.MaxUploadBytes), filename)
	if err != nil {
		s.log.Error("text extraction failed", "filename", filename, "error", err)
		jsonError(w, "failed to extract text", http.StatusUnprocessableEntity)
		return
	}

	var markdown *bool
	if v := r.FormValue("markdown"); v != "" {
		b := v == "true"
		markdown = &b
	}
	inline := r.FormValue("inline") == "true"

	s.renderText(w, text, markdown, inline)
}

func (s *Server) renderText(w http.ResponseWriter, text string, markdown *bool, inline bool) {
	opts := render.Options{
		Markdown: s.cfg.DefaultMarkdown,
		Inline:   inline,
	}
	if markdown != nil {
		opts.Markdown = *markdown
	}

	renderID := uuid.NewString()
	html, err := s.renderer.Render(text, opts)
	if err != nil {
		var verr *latex.ValidationError
		if errors.As(err, &verr) {
			s.log.Warn("content rejected", "render_id", renderID, "error", verr)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]any{
				"render_id":        renderID,
				"validation_error": verr.Error(),
			})
			return
		}
		s.log.Error("render failed", "render_id", renderID, "error", err)
		jsonError(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(renderResponse{RenderID: renderID, HTML: html})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	return name
}
