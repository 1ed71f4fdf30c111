package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gretastore/pkg/errors"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccessAndCreated(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, Success(c, map[string]int{"n": 1}))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.True(t, body.Success)
	assert.Nil(t, body.Error)
	assert.NotEmpty(t, body.Timestamp)

	c, rec = newContext()
	require.NoError(t, Created(c, "ok"))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "ok", decode(t, rec).Data)
}

func TestAcceptedCarriesBackendError(t *testing.T) {
	c, rec := newContext()
	err := apperrors.Unavailable("Could not save product", fmt.Errorf("dial tcp: refused"))
	require.NoError(t, Accepted(c, "local", err))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	body := decode(t, rec)
	assert.True(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "BACKEND_UNAVAILABLE", body.Error.Code)
	assert.Equal(t, "Could not save product", body.Error.Message)
}

func TestPaginatedRoundsPagesUp(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, Paginated(c, []int{1, 2}, 50, 5, 12))

	var body struct {
		Data PaginatedResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(50), body.Data.Total)
	assert.Equal(t, 5, body.Data.TotalPages)
	assert.Equal(t, 12, body.Data.PageSize)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"app error", apperrors.NotFound("Product", nil), http.StatusNotFound, "NOT_FOUND"},
		{"wrapped app error", fmt.Errorf("checkout: %w", apperrors.BadRequest("Cart is empty", nil)), http.StatusBadRequest, "BAD_REQUEST"},
		{"echo not found", echo.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"echo too many", echo.NewHTTPError(http.StatusTooManyRequests), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()
			require.NoError(t, Error(c, tt.err))
			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestErrorFormatsValidationFailures(t *testing.T) {
	type loginRequest struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=6"`
	}

	err := validator.New().Struct(loginRequest{Email: "ana@greta.pe", Password: "123"})
	require.Error(t, err)

	c, rec := newContext()
	require.NoError(t, Error(c, err))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "password must be at least 6", body.Error.Message)
}

func TestErrorHandlerSkipsCommittedResponses(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, c.String(http.StatusOK, "done"))

	ErrorHandler(fmt.Errorf("late failure"), c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
