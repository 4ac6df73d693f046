package resource

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/totegamma/charsheet/core"
)

func TestCoerceBoolean(t *testing.T) {
	field := Field{Name: "prepared", Type: FieldBoolean}

	for token, expected := range map[any]bool{
		"0":     false,
		"1":     true,
		"false": false,
		"true":  true,
		true:    true,
		false:   false,
	} {
		value, err := field.Coerce(token)
		if assert.NoError(t, err, "%v", token) {
			assert.Equal(t, expected, value, "%v", token)
		}
	}

	for _, invalid := range []any{"maybe", "True", "yes", "", json.Number("1")} {
		_, err := field.Coerce(invalid)
		assert.ErrorAs(t, err, &core.ErrorBadRequest{}, "%v", invalid)
	}
}

func TestCoerceInteger(t *testing.T) {
	field := Field{Name: "level", Type: FieldInteger}

	for input, expected := range map[any]int64{
		json.Number("3"):   3,
		json.Number("-2"):  -2,
		json.Number("4.0"): 4,
		"7":                7,
		" 8 ":              8,
		float64(9):         9,
	} {
		value, err := field.Coerce(input)
		if assert.NoError(t, err, "%v", input) {
			assert.Equal(t, expected, value, "%v", input)
		}
	}

	for _, invalid := range []any{json.Number("1.5"), "1.5", "three", "", true} {
		_, err := field.Coerce(invalid)
		assert.ErrorAs(t, err, &core.ErrorBadRequest{}, "%v", invalid)
	}
}

func TestCoerceString(t *testing.T) {
	field := Field{Name: "name", Type: FieldString}

	for input, expected := range map[any]string{
		"Shield":           "Shield",
		json.Number("12"):  "12",
		json.Number("1.5"): "1.5",
		true:               "true",
	} {
		value, err := field.Coerce(input)
		if assert.NoError(t, err, "%v", input) {
			assert.Equal(t, expected, value, "%v", input)
		}
	}

	_, err := field.Coerce(map[string]any{})
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})
}

func TestCoerceEnum(t *testing.T) {
	field := Field{Name: "recover", Type: FieldEnum, Enum: core.RestEnum}

	value, err := field.Coerce("short")
	if assert.NoError(t, err) {
		assert.Equal(t, "short", value)
	}

	_, err = field.Coerce("nap")
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})

	_, err = field.Coerce(json.Number("0"))
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})
}

func TestForCreate(t *testing.T) {
	values, err := ItemKind.Fields.ForCreate(map[string]any{
		"name":        "Rope",
		"description": nil,
		"unknown":     "ignored",
	})
	if assert.NoError(t, err) {
		assert.Equal(t, map[string]any{"name": "Rope"}, values)
	}

	_, err = ItemKind.Fields.ForCreate(map[string]any{"number": "many"})
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})
}

func TestForUpdate(t *testing.T) {
	values, err := InformationKind.Fields.ForUpdate(map[string]any{
		"description": "",
		"group":       nil,
		"name":        "",
	})
	if assert.NoError(t, err) {
		assert.Equal(t, map[string]any{"description": nil, "group": nil, "name": ""}, values)
	}

	_, err = VariableKind.Fields.ForUpdate(map[string]any{"value": nil})
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})

	_, err = SpellKind.Fields.ForUpdate(map[string]any{"name": "Shield", "prepared": "maybe"})
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})
}
