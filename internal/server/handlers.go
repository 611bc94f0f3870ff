package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/admission-advisor/internal/pipeline"
	"github.com/jonathan/admission-advisor/internal/types"
)

// maxBodyBytes bounds request bodies; the largest is an application form.
const maxBodyBytes = 1 << 20

var validate = validator.New()

// decode reads a JSON body into v and validates its struct tags.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := validate.Struct(v); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return &ErrValidation{Field: ve[0].Field(), Message: ve[0].Tag()}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": Banner})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSuggest returns the full ranked list in one response.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var profile types.StudentProfile
	if err := decode(w, r, &profile); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	results := s.suggester.Suggest(r.Context(), &profile)
	if results == nil {
		results = []types.Suggestion{}
	}
	writeJSON(w, http.StatusOK, results)
}

// handleSuggestStream sends each suggestion as an SSE event as soon as it is explained.
func (s *Server) handleSuggestStream(w http.ResponseWriter, r *http.Request) {
	var profile types.StudentProfile
	if err := decode(w, r, &profile); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.suggester.Stream(r.Context(), &profile, func(event pipeline.ProgressEvent) {
		if r.Context().Err() != nil {
			return
		}
		var writeErr error
		switch event.Step {
		case pipeline.StepSuggestion:
			writeErr = sse.WriteEvent("suggestion", event.Content)
		case pipeline.StepComplete:
			count, _ := event.Content.(int)
			sse.WriteComplete(count)
		default:
			writeErr = sse.WriteEvent("progress", event)
		}
		if writeErr != nil {
			log.Printf("[server] failed to write SSE event: %v", writeErr)
		}
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.counselor == nil {
		writeError(w, http.StatusServiceUnavailable, "Chat is not configured")
		return
	}

	var req types.ChatRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		err := &ErrValidation{Field: "Message", Message: "required"}
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, types.ChatResponse{Reply: s.counselor.Reply(r.Context(), req.Message)})
}

func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	if s.applications == nil {
		writeError(w, http.StatusServiceUnavailable, "Applications are not configured")
		return
	}

	var req types.ApplicationRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	resp, err := s.applications.Submit(r.Context(), &req)
	if err != nil {
		err = toHTTPError(err)
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("[server] submit application failed: %v", err)
			writeError(w, status, "Failed to submit application")
			return
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	if s.applications == nil {
		writeError(w, http.StatusServiceUnavailable, "Applications are not configured")
		return
	}

	apps, err := s.applications.List(r.Context())
	if err != nil {
		log.Printf("[server] list applications failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list applications")
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

func (s *Server) handleCatalogReload(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, http.StatusServiceUnavailable, "Catalog reload is not configured")
		return
	}

	cat, err := s.catalog.Reload(r.Context())
	if err != nil {
		err = &ErrCatalogUnavailable{Err: err}
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"offerings": cat.Len(),
		"courses":   len(cat.CourseNames()),
		"source":    cat.Source(),
	})
}
