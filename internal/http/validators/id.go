package validators

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// ParseID reads a positive integer path parameter. Anything else cannot name
// an existing row, so callers answer with their not-found error.
func ParseID(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
