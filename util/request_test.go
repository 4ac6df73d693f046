package util

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/totegamma/charsheet/core"
)

func newContext(body, contentType string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestReadBodyJSON(t *testing.T) {
	c := newContext(`{"name": "Torch", "number": 3, "description": null}`, echo.MIMEApplicationJSON)

	fields, err := ReadBody(c)
	if assert.NoError(t, err) {
		assert.Equal(t, "Torch", fields["name"])
		assert.Equal(t, json.Number("3"), fields["number"])
		value, ok := fields["description"]
		assert.True(t, ok)
		assert.Nil(t, value)
	}
}

func TestReadBodyForm(t *testing.T) {
	form := url.Values{}
	form.Set("name", "Torch")
	form.Set("number", "3")
	c := newContext(form.Encode(), echo.MIMEApplicationForm)

	fields, err := ReadBody(c)
	if assert.NoError(t, err) {
		assert.Equal(t, map[string]any{"name": "Torch", "number": "3"}, fields)
	}
}

func TestReadBodyEmpty(t *testing.T) {
	fields, err := ReadBody(newContext("", ""))
	if assert.NoError(t, err) {
		assert.Empty(t, fields)
	}
}

func TestReadBodyNotAnObject(t *testing.T) {
	_, err := ReadBody(newContext(`[1, 2]`, echo.MIMEApplicationJSON))
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})
}

func TestStringField(t *testing.T) {
	fields := map[string]any{"name": "Aria", "user": json.Number("1"), "empty": nil}

	name, err := StringField(fields, "name")
	if assert.NoError(t, err) && assert.NotNil(t, name) {
		assert.Equal(t, "Aria", *name)
	}

	missing, err := StringField(fields, "missing")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	empty, err := StringField(fields, "empty")
	assert.NoError(t, err)
	assert.Nil(t, empty)

	_, err = StringField(fields, "user")
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})
}
