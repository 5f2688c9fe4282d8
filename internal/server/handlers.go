package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/parsing"
	"github.com/jonathan/resume-importer/internal/types"
)

const (
	// maxTextBytes bounds the resume text accepted by POST /parse
	maxTextBytes = 200000
	// maxBodyBytes leaves room for JSON escaping around maxTextBytes of text
	maxBodyBytes = 4 * maxTextBytes
	// requestSource labels metadata for text that arrived over HTTP
	requestSource = "request"
)

// ParseRequest represents the request body for POST /parse
type ParseRequest struct {
	Text   string `json:"text" validate:"max=200000"`
	Format string `json:"format,omitempty" validate:"omitempty,oneof=text html"`
	Locale string `json:"locale,omitempty"`
	Full   bool   `json:"full,omitempty"`
}

// ParseResponse represents the response for POST /parse. Draft holds a
// types.ResumeDraft, or a types.ResumeData when the request asked for full.
type ParseResponse struct {
	Draft    any                 `json:"draft"`
	Blank    bool                `json:"blank"`
	Metadata *ingestion.Metadata `json:"metadata"`
}

// LocalesResponse represents the response for GET /locales
type LocalesResponse struct {
	Locales []string `json:"locales"`
	Default string   `json:"default"`
}

// handleParse extracts a resume draft from the submitted text
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, (&ErrBodyTooLarge{Limit: tooLarge.Limit}).Error())
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validator.Struct(req); err != nil {
		verr := fromValidator(err)
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	parser, err := s.parserFor(req.Locale)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	format := ingestion.Format(req.Format)
	if format == "" {
		format = ingestion.DetectFormat("", []byte(req.Text))
	}

	text, metadata, err := ingestion.IngestText(req.Text, requestSource, format)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	draft := parser.Parse(text)
	resp := ParseResponse{
		Draft:    draft,
		Blank:    parser.IsBlank(draft),
		Metadata: metadata,
	}
	if req.Full {
		resp.Draft = types.MergeDraft(types.DefaultResumeData(), draft)
	}

	s.log.Debug().
		Str("locale", parser.Locale().Name).
		Str("format", string(format)).
		Int("experiences", len(draft.Experiences)).
		Int("education", len(draft.Education)).
		Bool("blank", resp.Blank).
		Msg("parsed request")

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleLocales lists the locales the server can parse with
func (s *Server) handleLocales(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, LocalesResponse{
		Locales: s.localeNames(),
		Default: s.defaultLocale,
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parserFor returns the parser for the named locale, or the default parser
// when name is empty.
func (s *Server) parserFor(name string) (*parsing.Parser, error) {
	if name == "" {
		name = s.defaultLocale
	}
	p, ok := s.parsers[name]
	if !ok {
		return nil, &ErrUnknownLocale{Name: name}
	}
	return p, nil
}
