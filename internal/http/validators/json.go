package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"task-tracker.com/task-tracker/pkg/exceptions"
)

const unknownFieldPrefix = "json: unknown field "

// DecodeJSON strictly decodes the request body into dst. An empty body is
// treated as an empty object so that required-field checks report the
// missing field instead of a decoding failure.
func DecodeJSON(c echo.Context, dst interface{}) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if strings.HasPrefix(err.Error(), unknownFieldPrefix) {
			field := strings.TrimPrefix(err.Error(), unknownFieldPrefix)
			return exceptions.NewValidation(fmt.Sprintf("unknown field %s", field))
		}
		return exceptions.ErrInvalidJSON
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return exceptions.ErrInvalidJSON
	}

	return nil
}
