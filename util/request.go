// Package util holds request helpers shared by the handlers
package util

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/charsheet/core"
)

// ReadBody decodes a JSON object or a form-encoded body into its fields.
// JSON numbers are kept as json.Number. Form values are strings.
// An empty body yields no fields.
func ReadBody(c echo.Context) (map[string]any, error) {
	req := c.Request()
	fields := map[string]any{}

	ctype := req.Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ctype, echo.MIMEApplicationForm) || strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		params, err := c.FormParams()
		if err != nil {
			return nil, core.NewErrorBadRequest("malformed form body")
		}
		for key := range params {
			fields[key] = params.Get(key)
		}
		return fields, nil
	}

	if req.Body == nil {
		return fields, nil
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fields, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	err = decoder.Decode(&fields)
	if err != nil {
		return nil, core.NewErrorBadRequest("body must be a JSON object")
	}
	if fields == nil {
		fields = map[string]any{}
	}

	return fields, nil
}

// StringField returns a field that must be a string when present
func StringField(fields map[string]any, name string) (*string, error) {
	value, ok := fields[name]
	if !ok || value == nil {
		return nil, nil
	}
	str, ok := value.(string)
	if !ok {
		return nil, core.NewErrorBadRequest("%s must be a string", name)
	}
	return &str, nil
}

// ParseID reads a numeric path parameter
func ParseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, core.NewErrorBadRequest("invalid %s", name)
	}
	return uint(id), nil
}
