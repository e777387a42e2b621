package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Elephante152/habitat/listing"
	"github.com/Elephante152/habitat/models"
	"github.com/Elephante152/habitat/session"
	"github.com/Elephante152/habitat/units"

	"github.com/go-chi/chi/v5"
)

type inputRequest struct {
	Query string `json:"query"`
}

type searchRequest struct {
	Query *string `json:"query"`
}

type selectSuggestionRequest struct {
	Suggestion string `json:"suggestion"`
}

type unitRequest struct {
	Celsius *bool `json:"celsius"`
}

type tabRequest struct {
	Tab session.Tab `json:"tab"`
}

type neighborhoodRequest struct {
	Neighborhood string `json:"neighborhood"`
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"sessions":  s.sessions.Len(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleFormatTemperature(w http.ResponseWriter, r *http.Request) {
	value, err := strconv.ParseFloat(r.URL.Query().Get("value"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "value must be a number")
		return
	}

	celsius := true
	if raw := r.URL.Query().Get("celsius"); raw != "" {
		celsius, err = strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "celsius must be true or false")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"value":   value,
		"celsius": celsius,
		"display": units.FormatTemperature(value, celsius),
	})
}

func (s *Server) handleSubmitBusiness(w http.ResponseWriter, r *http.Request) {
	var sub models.BusinessSubmission
	if err := decodeJSON(r, &sub, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.intake.Submit(r.Context(), sub); err != nil {
		var verr *listing.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":   http.StatusText(http.StatusUnprocessableEntity),
				"message": verr.Error(),
				"fields":  verr.Fields,
			})
			return
		}
		writeSessionError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "received"})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	writeJSON(w, http.StatusCreated, sess.View())
}

// session resolves the {id} URL parameter, writing a 404 when it is unknown
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeSessionError(w, r, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		writeSessionError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req inputRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := sess.Input(r.Context(), req.Query)
	respondView(w, r, view, err)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req searchRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Query != nil {
		if _, err := sess.Input(r.Context(), *req.Query); err != nil {
			writeSessionError(w, r, err)
			return
		}
	}

	view, err := sess.Submit(r.Context())
	respondView(w, r, view, err)
}

func (s *Server) handleSelectSuggestion(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req selectSuggestionRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Suggestion == "" {
		writeError(w, http.StatusBadRequest, "suggestion is required")
		return
	}

	view, err := sess.SelectSuggestion(r.Context(), req.Suggestion)
	respondView(w, r, view, err)
}

func (s *Server) handleSetUnit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req unitRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Celsius == nil {
		writeError(w, http.StatusBadRequest, "celsius is required")
		return
	}

	view, err := sess.SetCelsius(*req.Celsius)
	respondView(w, r, view, err)
}

func (s *Server) handleSetTab(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req tabRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := sess.SetTab(req.Tab)
	respondView(w, r, view, err)
}

func (s *Server) handleSelectNeighborhood(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req neighborhoodRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := sess.SelectNeighborhood(r.Context(), req.Neighborhood)
	respondView(w, r, view, err)
}

func respondView(w http.ResponseWriter, r *http.Request, view session.View, err error) {
	if err != nil {
		writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
