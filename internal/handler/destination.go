package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tripfolio/internal/assistant"
	"github.com/pkordes/tripfolio/internal/domain"
)

// CreateDestinationRequest is the POST /destinations body. Dates and budget
// arrive as strings and go through the validated construction path, exactly
// like CLI input.
type CreateDestinationRequest struct {
	City       string   `json:"city"`
	Country    string   `json:"country"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	Budget     string   `json:"budget"`
	Activities []string `json:"activities"`
}

// UpdateDestinationRequest is the PATCH /destinations/{city} body.
// Absent fields keep their current values. Unknown fields are rejected by
// the strict decoder, which is the only place an "unknown field" can still
// occur — the typed domain.Update makes it unrepresentable further down.
type UpdateDestinationRequest struct {
	City       *string  `json:"city"`
	Country    *string  `json:"country"`
	StartDate  *string  `json:"start_date"`
	EndDate    *string  `json:"end_date"`
	Budget     *string  `json:"budget"`
	Activities []string `json:"activities"`
}

// DestinationsResponse wraps a list of destinations.
type DestinationsResponse struct {
	Data []domain.Destination `json:"data"`
}

// SuggestionResponse is the assistant's text for one destination.
type SuggestionResponse struct {
	Mode string `json:"mode"`
	Text string `json:"text"`
}

// ListDestinations handles GET /destinations.
// With ?q= it returns the case-insensitive substring matches over city,
// country, and activities; without it (or with an empty q) it returns the
// whole collection, since the empty term matches everything.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	data := s.itinerary.Search(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, DestinationsResponse{Data: data})
}

// CreateDestination handles POST /destinations.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var req CreateDestinationRequest
	if err := decodeStrict(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	d, err := domain.New(req.City, req.Country, req.StartDate, req.EndDate, req.Budget, req.Activities)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	s.itinerary.Add(d)
	if err := s.itinerary.Save(); err != nil {
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// DeleteDestination handles DELETE /destinations/{city}.
// Removes every entry matching the city (case-insensitive).
func (s *Server) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	city := cityParam(r)
	if !s.itinerary.Remove(city) {
		writeNotFound(w, "no destination named "+city)
		return
	}
	if err := s.itinerary.Save(); err != nil {
		writeInternalError(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateDestination handles PATCH /destinations/{city}.
// Applies the partial update to every entry matching the city and returns
// the refreshed matching entries.
func (s *Server) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	var req UpdateDestinationRequest
	if err := decodeStrict(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	update, err := toUpdate(req)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	city := cityParam(r)
	found, err := s.itinerary.Update(city, update)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeValidationError(w, err)
			return
		}
		writeInternalError(w)
		return
	}
	if !found {
		writeNotFound(w, "no destination named "+city)
		return
	}

	if err := s.itinerary.Save(); err != nil {
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, DestinationsResponse{Data: matchesByCity(s.itinerary.List(), city)})
}

// GetSuggestions handles GET /destinations/{city}/suggestions?mode=.
// mode is "itinerary" (default) or "budget_tips". The first matching entry is
// handed to the assistant; its failures come back as text, never as 5xx.
func (s *Server) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	rawMode := r.URL.Query().Get("mode")
	if rawMode == "" {
		rawMode = string(assistant.ModeItinerary)
	}
	mode, ok := assistant.ParseMode(rawMode)
	if !ok {
		writeBadRequest(w, "mode must be one of: itinerary, budget_tips")
		return
	}

	city := cityParam(r)
	matched := matchesByCity(s.itinerary.List(), city)
	if len(matched) == 0 {
		writeNotFound(w, "no destination named "+city)
		return
	}

	text := s.assistant.Generate(r.Context(), matched[0], mode)
	writeJSON(w, http.StatusOK, SuggestionResponse{Mode: string(mode), Text: text})
}

// --- helpers ----------------------------------------------------------------

// decodeStrict decodes a JSON body rejecting unknown fields.
func decodeStrict(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// cityParam returns the {city} path parameter, unescaped.
func cityParam(r *http.Request) string {
	raw := chi.URLParam(r, "city")
	if city, err := url.PathUnescape(raw); err == nil {
		return city
	}
	return raw
}

// toUpdate converts the PATCH body into a typed domain.Update, parsing date
// and budget strings with the same parsers the construction path uses.
func toUpdate(req UpdateDestinationRequest) (domain.Update, error) {
	u := domain.Update{
		City:       req.City,
		Country:    req.Country,
		Activities: req.Activities,
	}
	if req.StartDate != nil {
		d, err := domain.ParseDate(*req.StartDate)
		if err != nil {
			return domain.Update{}, err
		}
		u.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := domain.ParseDate(*req.EndDate)
		if err != nil {
			return domain.Update{}, err
		}
		u.EndDate = &d
	}
	if req.Budget != nil {
		b, err := domain.ParseBudget(*req.Budget)
		if err != nil {
			return domain.Update{}, err
		}
		u.Budget = &b
	}
	return u, nil
}

// matchesByCity filters destinations by case-insensitive exact city match.
func matchesByCity(destinations []domain.Destination, city string) []domain.Destination {
	out := []domain.Destination{}
	for _, d := range destinations {
		if strings.EqualFold(d.City, city) {
			out = append(out, d)
		}
	}
	return out
}
