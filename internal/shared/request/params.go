package request

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"starfield-server/internal/shared/errors"
)

const maxBodyBytes = 1 << 12

// QueryFloat reads a finite float query parameter, returning def when it is
// absent.
func QueryFloat(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.WrapValidation("invalid "+name, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Validationf("%s must be finite", name)
	}
	return v, nil
}

// RequiredQueryFloat is QueryFloat without a default.
func RequiredQueryFloat(r *http.Request, name string) (float64, error) {
	if r.URL.Query().Get(name) == "" {
		return 0, errors.Validationf("%s is required", name)
	}
	return QueryFloat(r, name, 0)
}

func PathInt64(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return 0, errors.Validationf("%s is required", name)
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.WrapValidation("invalid "+name+" format", err)
	}
	return v, nil
}

// DecodeJSON reads a small JSON body into v, rejecting unknown fields.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.WrapValidation("invalid request body", err)
	}
	return nil
}
