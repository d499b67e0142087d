package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starfield-server/internal/shared/errors"
)

func TestErrorWritesMappedStatus(t *testing.T) {
	cases := map[error]int{
		errors.NotFoundf("no star"):       http.StatusNotFound,
		errors.Validation("bad"):          http.StatusBadRequest,
		errors.Unauthorized("no token"):   http.StatusUnauthorized,
		errors.MethodNotAllowed("PATCH"):  http.StatusMethodNotAllowed,
		errors.WrapExternal("redis", nil): http.StatusServiceUnavailable,
		errors.WrapInternal("scan", nil):  http.StatusInternalServerError,
		errors.RateLimited("slow down"):   http.StatusTooManyRequests,
	}

	for err, status := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/galaxy", nil)
		Error(rec, req, slog.Default(), err)

		require.Equal(t, status, rec.Code, err.Error())
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, status, body.Code)
		assert.Equal(t, string(errors.GetType(err)), body.Error)
	}
}

func TestErrorWithMessageHidesInternalText(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/view", nil)
	ErrorWithMessage(rec, req, slog.Default(), errors.WrapExternal("dial tcp 10.0.0.1:6379", nil), "session store unavailable")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "session store unavailable", body.Message)
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, map[string]int{"stars": 3})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"stars":3}`, rec.Body.String())
}
