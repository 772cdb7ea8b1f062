package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/rendering"
	"github.com/jonathan/resume-matcher/internal/service"
	"go.uber.org/zap"
)

// MaxBodyBytes caps request bodies. Profiles with long histories stay well
// below it.
const MaxBodyBytes = 4 << 20

type matchRequest struct {
	ProfileID string `json:"profile_id"`
	JobID     string `json:"job_id"`
}

type rankJobsRequest struct {
	ProfileID string   `json:"profile_id"`
	JobIDs    []string `json:"job_ids"`
}

// errorResponse writes err as JSON with the status derived from its kind
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	desc := service.Describe(err)
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	s.jsonResponse(w, status, errorBody{
		Error:      desc.Message,
		Kind:       desc.Kind,
		Suggestion: desc.Suggestion,
	})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &service.InputError{Message: "request body too large"}
		}
		return nil, &service.InputError{Message: "failed to read request body", Cause: err}
	}
	if len(data) == 0 {
		return nil, &service.InputError{Message: "request body is empty"}
	}
	return data, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	data, err := readBody(w, r)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &service.InputError{Message: "invalid request body", Cause: err}
	}
	return nil
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	profile, err := s.svc.LoadProfile(r.Context(), data)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, profile)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.svc.Profile(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	job, err := s.svc.LoadJob(r.Context(), data)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, job)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.svc.Job(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	match, err := s.svc.Analyze(r.Context(), req.ProfileID, req.JobID)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, match)
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := s.svc.Match(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, match)
}

// handleRankAchievements ranks every achievement of the match's profile
// against its job
func (s *Server) handleRankAchievements(w http.ResponseWriter, r *http.Request) {
	match, err := s.svc.Match(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	ranked, err := s.svc.RankAchievements(r.Context(), match.ProfileID, match.JobID)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"match_id":     match.MatchID,
		"achievements": ranked,
	})
}

func (s *Server) handleRankJobs(w http.ResponseWriter, r *http.Request) {
	var req rankJobsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if len(req.JobIDs) == 0 {
		s.errorResponse(w, r, &service.InputError{Message: "job_ids must not be empty"})
		return
	}
	rankings, err := s.svc.AnalyzeJobs(r.Context(), req.ProfileID, req.JobIDs)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"profile_id": req.ProfileID,
		"rankings":   rankings,
	})
}

func (s *Server) handleCreateCustomization(w http.ResponseWriter, r *http.Request) {
	var req service.CustomizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	result, err := s.svc.Customize(r.Context(), req)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, result)
}

func (s *Server) handleGetCustomization(w http.ResponseWriter, r *http.Request) {
	resume, err := s.svc.Customization(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

var contentTypes = map[rendering.Format]string{
	rendering.FormatMarkdown: "text/markdown; charset=utf-8",
	rendering.FormatLaTeX:    "application/x-tex; charset=utf-8",
}

// handleRenderCustomization renders a customization as markdown (default)
// or latex
func (s *Server) handleRenderCustomization(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	format := rendering.FormatMarkdown
	if name := query.Get("format"); name != "" {
		parsed, err := rendering.ParseFormat(name)
		if err != nil {
			s.errorResponse(w, r, &service.InputError{Message: "invalid format", Cause: err})
			return
		}
		format = parsed
	}

	doc, err := s.svc.Generate(r.Context(), r.PathValue("id"), format, query.Get("template"))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, doc); err != nil {
		s.logger.Warn("failed to write rendered resume", zap.Error(err))
	}
}

func (s *Server) handleListCustomizations(w http.ResponseWriter, r *http.Request) {
	filter, err := parseCustomizationFilter(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	records, err := s.svc.ListCustomizations(r.Context(), filter)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if records == nil {
		records = []db.CustomizationRecord{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"customizations": records,
		"count":          len(records),
	})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := s.svc.Analytics(r.Context())
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analytics)
}

// parseCustomizationFilter reads profile_id, job_id, company, since, until
// (RFC 3339 or YYYY-MM-DD) and limit from the query string
func parseCustomizationFilter(r *http.Request) (db.CustomizationFilter, error) {
	query := r.URL.Query()
	filter := db.CustomizationFilter{
		ProfileID: query.Get("profile_id"),
		JobID:     query.Get("job_id"),
		Company:   query.Get("company"),
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return filter, &service.InputError{Message: "limit must be a non-negative integer"}
		}
		filter.Limit = limit
	}
	for name, dst := range map[string]**time.Time{"since": &filter.Since, "until": &filter.Until} {
		v := query.Get(name)
		if v == "" {
			continue
		}
		t, err := parseTime(v)
		if err != nil {
			return filter, &service.InputError{Message: "invalid " + name, Cause: err}
		}
		*dst = &t
	}
	return filter, nil
}

func parseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, v)
}
