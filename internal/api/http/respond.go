// internal/api/http/respond.go
package http

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mind-engage/mindengage-guidance/internal/validation"
)

// errorBody matches the {"detail": "..."} shape the web front end displays.
type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}

const maxBodyBytes = 1 << 20

// ratings is a map of 1-5 answers. Whole-number floats such as 4.0 are
// accepted; fractional ones are not.
type ratings map[string]int

func (m *ratings) UnmarshalJSON(b []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		*m = nil
		return nil
	}
	out := make(ratings, len(raw))
	for k, v := range raw {
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
			return fmt.Errorf("rating %q is not a whole number", k)
		}
		out[k] = int(v)
	}
	*m = out
	return nil
}

// decodeBody decodes a single JSON value from the request body into dst and
// runs struct validation. It writes the 400 response itself and returns false
// on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := unmarshalBody(r, dst); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return false
	}
	if err := validation.Struct(dst); err != nil {
		var ve *validation.RequestValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// decodeFlat decodes a legacy flat JSON object.
func decodeFlat(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var m map[string]any
	if err := unmarshalBody(r, &m); err != nil || m == nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return nil, false
	}
	return m, true
}

var errBodyTooLarge = errors.New("request body too large")

// unmarshalBody reads at most maxBodyBytes and decodes exactly one JSON value.
// Unmarshal rejects anything after that value.
func unmarshalBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return err
	}
	if len(body) > maxBodyBytes {
		return errBodyTooLarge
	}
	return json.Unmarshal(body, dst)
}
