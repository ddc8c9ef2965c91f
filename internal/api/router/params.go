package router

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/apperr"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/DjordjeVuckovic/nouvel-ayiti/pkg/pagination"
	"github.com/labstack/echo/v4"
)

func pathID(c echo.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NewInvalidIdentifier(name, raw)
	}
	return id, nil
}

// queryLanguage parses ?language=. With fallback empty an absent parameter
// means "any language".
func queryLanguage(c echo.Context, fallback domain.Language) (domain.Language, error) {
	raw := c.QueryParam("language")
	if raw == "" {
		return fallback, nil
	}
	lang := domain.Language(raw)
	if !lang.Valid() {
		return "", apperr.NewValidationFields("validation failed", apperr.FieldError{
			Field:   "language",
			Message: "must be one of ht, fr, en",
		})
	}
	return lang, nil
}

func queryLimit(c echo.Context) (int, error) {
	n, err := pagination.ParseLimit(c.QueryParam("limit"))
	if err != nil {
		return 0, apperr.NewValidationFields("validation failed", apperr.FieldError{
			Field:   "limit",
			Message: "must be a number",
		})
	}
	return n, nil
}

// bind decodes the body and runs the validate tags. A field of the wrong JSON
// type is reported like any other rejected field.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		cause := err
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Internal != nil {
			cause = he.Internal
		}
		var ute *json.UnmarshalTypeError
		if errors.As(cause, &ute) {
			return apperr.NewValidationFields("validation failed", apperr.FieldError{
				Field:   typeErrorField(ute),
				Message: "must be " + jsonTypeName(ute.Type),
			})
		}
		return apperr.NewValidationWrap("invalid request body", cause)
	}
	return c.Validate(req)
}

func typeErrorField(ute *json.UnmarshalTypeError) string {
	if ute.Field != "" {
		return ute.Field
	}
	return "body"
}

func jsonTypeName(t reflect.Type) string {
	if t == nil {
		return "of a different type"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Map, reflect.Struct:
		return "an object"
	case reflect.Pointer:
		return jsonTypeName(t.Elem())
	default:
		return "of type " + t.String()
	}
}

// storeError translates storage sentinels into API errors.
func storeError(err error, what string, id int64) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return apperr.NewNotFound("%s %d not found", what, id)
	case errors.Is(err, storage.ErrConflict):
		return apperr.Wrap(apperr.Conflict, what+" already exists", err)
	default:
		return apperr.Wrap(apperr.Internal, "failed to access "+what, err)
	}
}

func emptyPatch() error {
	return apperr.NewValidation("request body must contain at least one field")
}
