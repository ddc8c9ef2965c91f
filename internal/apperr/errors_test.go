package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("field is required")

	assert.Equal(t, "field is required", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid body", inner)

	assert.Equal(t, "invalid body: parse failed", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestNewValidationFields(t *testing.T) {
	err := apperr.NewValidationFields("validation failed",
		apperr.FieldError{Field: "title", Message: "must be at least 5 characters"},
		apperr.FieldError{Field: "content", Message: "is required"},
	)

	assert.Equal(t, "validation failed (title must be at least 5 characters; content is required)", err.Error())
	assert.Len(t, err.Fields, 2)
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("unsupported language")

	doubleWrapped := fmt.Errorf("router: %w", fmt.Errorf("parse: %w", original))

	var ve *apperr.ValidationError
	require.True(t, errors.As(doubleWrapped, &ve))
	assert.Equal(t, "unsupported language", ve.Message)
}

func TestKind_Status(t *testing.T) {
	tests := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.InvalidIdentifier, http.StatusBadRequest},
		{apperr.NotFound, http.StatusNotFound},
		{apperr.Unauthorized, http.StatusUnauthorized},
		{apperr.Forbidden, http.StatusForbidden},
		{apperr.Conflict, http.StatusConflict},
		{apperr.Internal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Status())
		})
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name: "validation with fields",
			err: apperr.NewValidationFields("validation failed",
				apperr.FieldError{Field: "title", Message: "is required"}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"validation failed","errors":[{"field":"title","message":"is required"}]}`,
		},
		{
			name:       "invalid identifier",
			err:        apperr.NewInvalidIdentifier("id", "abc"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"invalid id: \"abc\" is not a numeric identifier"}`,
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("handler: %w", apperr.NewNotFound("article %d not found", 7)),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"message":"article 7 not found"}`,
		},
		{
			name:       "internal hides cause",
			err:        apperr.Wrap(apperr.Internal, "store failed", errors.New("connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"internal server error"}`,
		},
		{
			name:       "echo http error",
			err:        echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"),
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   `{"message":"method not allowed"}`,
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			apperr.GlobalErrorHandler()(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
