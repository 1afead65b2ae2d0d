package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dusk-indust/edstrip/internal/mcptools"
	"github.com/dusk-indust/edstrip/internal/strip"
)

// handleStrip accepts either a JSON StripSourceInput or the raw source as
// the body, with language, filename, docstrings, keepComments and
// noCollapse given as query parameters.
func (s *Server) handleStrip(w http.ResponseWriter, r *http.Request) {
	if s.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}

	in, err := decodeStripRequest(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "request body exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	out, err := s.svc.Strip(r.Context(), in)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mcptools.ListLanguagesOutput{Languages: s.svc.Languages()})
}

func decodeStripRequest(r *http.Request) (mcptools.StripSourceInput, error) {
	var in mcptools.StripSourceInput

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&in)
		return in, err
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return in, err
	}
	q := r.URL.Query()
	in.Source = string(body)
	in.Language = q.Get("language")
	in.Filename = q.Get("filename")
	in.Docstrings = q.Get("docstrings")
	if in.KeepComments, err = queryBool(q, "keepComments"); err != nil {
		return in, err
	}
	if in.NoCollapse, err = queryBool(q, "noCollapse"); err != nil {
		return in, err
	}
	return in, nil
}

// queryBool parses the boolean query parameter name. An absent or empty
// parameter is false.
func queryBool(q url.Values, name string) (bool, error) {
	v := q.Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %q is not a boolean", name, v)
	}
	return b, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, mcptools.ErrMissingLanguage),
		errors.Is(err, strip.ErrInvalidDocstringMode):
		return http.StatusBadRequest
	case errors.Is(err, strip.ErrUnsupportedLanguage),
		errors.Is(err, strip.ErrNoStripperFound),
		errors.Is(err, strip.ErrAmbiguousLanguage),
		errors.Is(err, strip.ErrInvalidEncoding):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
