package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{ValidationError("bad"), http.StatusBadRequest},
		{UnprocessableError("nope"), http.StatusUnprocessableEntity},
		{NotFoundError("gone"), http.StatusNotFound},
		{InternalError("boom", nil), http.StatusInternalServerError},
		{ExternalError("upstream", nil), http.StatusBadGateway},
		{&Error{Type: "mystery"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Type), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestError_MessageAndUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := ExternalError("classifier unavailable", cause)

	assert.Equal(t, "external: classifier unavailable: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "validation: bad", ValidationError("bad").Error())
}

func TestAsStructuredError(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))

	orig := UnprocessableError("invalid sentence")
	wrapped := fmt.Errorf("analyze: %w", orig)
	assert.Same(t, orig, AsStructuredError(wrapped))

	plain := AsStructuredError(stderrors.New("oops"))
	assert.Equal(t, TypeInternal, plain.Type)
	assert.Equal(t, "internal server error", plain.Message)
}

func TestWithContext(t *testing.T) {
	err := ValidationError("bad").WithContext("field", "text")

	resp := err.ToResponse()
	assert.Equal(t, "bad", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, "text", resp.Context["field"])
}

func TestMiddleware_StructuredError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Middleware()(func(c echo.Context) error {
		return UnprocessableError("Invalid sentence.")
	})

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid sentence.", body.Error)
	assert.Equal(t, TypeUnprocessable, body.Type)
}

func TestMiddleware_PlainErrorBecomesInternal(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	h := Middleware()(func(c echo.Context) error {
		return stderrors.New("db down")
	})

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestMiddleware_PassesEchoHTTPError(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	h := Middleware()(func(c echo.Context) error {
		return echo.ErrNotFound
	})

	err := h(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
