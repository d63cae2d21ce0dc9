package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"obp_engine/internal/adapters/observability"
	"obp_engine/internal/app"
	"obp_engine/internal/domain"
	"obp_engine/internal/obp"
)

type Handlers struct {
	Q *app.QuoteService
	T *app.TableService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/room-types/{id}/combinations", h.listCombinations)
	s.mux.Post("/v1/room-types/{id}/combinations/regenerate", h.regenerate)
	s.mux.Put("/v1/room-types/{id}/combinations", h.saveOverrides)
	s.mux.With(RateLimit(s.limiter)).Get("/v1/room-types/{id}/quote", h.quote)
}

// selectLocale prefers an explicit ?locale=, then the first supported tag in
// Accept-Language; the catalog's primary language is the final fallback.
func selectLocale(r *http.Request) string {
	if l := r.URL.Query().Get("locale"); l != "" {
		return strings.ToLower(l)
	}
	for _, part := range strings.Split(r.Header.Get("Accept-Language"), ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if i := strings.IndexByte(tag, ';'); i >= 0 { // drop q-weight
			tag = tag[:i]
		}
		switch {
		case strings.HasPrefix(tag, "tr"):
			return "tr"
		case strings.HasPrefix(tag, "en"):
			return "en"
		}
	}
	return obp.DefaultLocale
}

// parseChildren turns "infant,child" into ordered child slots.
func parseChildren(raw string) []domain.ChildSlot {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []domain.ChildSlot
	for _, p := range strings.Split(raw, ",") {
		code := strings.TrimSpace(p)
		if code == "" {
			continue
		}
		out = append(out, domain.ChildSlot{Order: len(out) + 1, AgeGroup: code})
	}
	return out
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func roomTypeID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (h *Handlers) listCombinations(w http.ResponseWriter, r *http.Request) {
	id, ok := roomTypeID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	views, err := h.Q.ListCombinations(r.Context(), id, selectLocale(r))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "room type not found")
		return
	case err != nil:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "listing failed")
		return
	}

	etag, body := calcETagAndBody(views)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write combinations body")
	}
}

func (h *Handlers) regenerate(w http.ResponseWriter, r *http.Request) {
	id, ok := roomTypeID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	entries, vres, err := h.T.Regenerate(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "room type not found")
		return
	case errors.Is(err, obp.ErrTableTooLarge):
		writeProblem(w, http.StatusUnprocessableEntity, "Table Too Large", err.Error())
		return
	case err != nil:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "regeneration failed")
		return
	}
	observability.ObserveTableSize(len(entries))
	if !vres.IsValid {
		observability.ObserveValidationFailure()
	}
	writeJSON(w, http.StatusOK, regenerateResponse{Entries: len(entries), Validation: vres})
}

// regenerateResponse reports the rebuilt table size and any violations
// inherited from carried-forward operator edits.
type regenerateResponse struct {
	Entries    int                  `json:"entries"`
	Validation obp.ValidationResult `json:"validation"`
}

func (h *Handlers) saveOverrides(w http.ResponseWriter, r *http.Request) {
	id, ok := roomTypeID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	var edits []domain.CombinationEdit
	if err := json.NewDecoder(r.Body).Decode(&edits); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "expected a JSON array of combination edits")
		return
	}
	res, err := h.T.SaveOverrides(r.Context(), id, edits)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "room type or combination not found")
		return
	case err != nil:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "save failed")
		return
	}
	if !res.IsValid {
		observability.ObserveValidationFailure()
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) quote(w http.ResponseWriter, r *http.Request) {
	id, ok := roomTypeID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	adults, err := strconv.Atoi(r.URL.Query().Get("adults"))
	if err != nil || adults < 1 {
		writeProblem(w, http.StatusBadRequest, "Invalid adults", "adults must be a positive integer")
		return
	}
	children := parseChildren(r.URL.Query().Get("children"))

	q, err := h.Q.Quote(r.Context(), id, adults, children, selectLocale(r))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		observability.ObserveQuote("not_found")
		writeProblem(w, http.StatusNotFound, "Not Found", "no such room type or combination")
		return
	case err != nil:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "quoting failed")
		return
	}
	if !q.Sellable {
		observability.ObserveQuote("unsellable")
		writeProblem(w, http.StatusConflict, "Not Sellable", "combination "+q.Key+" is not sellable")
		return
	}
	observability.ObserveQuote("sellable")
	writeJSON(w, http.StatusOK, q)
}
