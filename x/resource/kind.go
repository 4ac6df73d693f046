// Package resource serves the typed records hanging off a character
package resource

import (
	"github.com/totegamma/charsheet/core"
)

// Record is a row owned by a character
type Record interface {
	core.Information | core.Variable | core.Roll | core.Resource | core.Spell | core.Item
	RecordID() uint
}

// Kind describes one child record type and how it is exposed
type Kind[T Record] struct {
	Tag        string
	Collection string
	Fields     Schema
	Order      []string
}

var (
	InformationKind = Kind[core.Information]{
		Tag:        "info",
		Collection: "information",
		Fields: Schema{
			{Name: "name", Type: FieldString},
			{Name: "description", Type: FieldString, Nullable: true},
			{Name: "group", Type: FieldString, Nullable: true},
		},
		Order: []string{`"group" ASC NULLS FIRST`, "name ASC"},
	}

	VariableKind = Kind[core.Variable]{
		Tag:        "variable",
		Collection: "variables",
		Fields: Schema{
			{Name: "name", Type: FieldString},
			{Name: "value", Type: FieldInteger},
		},
		Order: []string{"name ASC"},
	}

	RollKind = Kind[core.Roll]{
		Tag:        "roll",
		Collection: "rolls",
		Fields: Schema{
			{Name: "name", Type: FieldString},
			{Name: "expression", Type: FieldString},
			{Name: "group", Type: FieldString, Nullable: true},
		},
		Order: []string{`"group" ASC NULLS FIRST`, "name ASC"},
	}

	ResourceKind = Kind[core.Resource]{
		Tag:        "resource",
		Collection: "resources",
		Fields: Schema{
			{Name: "name", Type: FieldString},
			{Name: "current", Type: FieldInteger},
			{Name: "max", Type: FieldInteger},
			{Name: "recover", Type: FieldEnum, Enum: core.RestEnum},
		},
		Order: []string{"name ASC"},
	}

	SpellKind = Kind[core.Spell]{
		Tag:        "spell",
		Collection: "spells",
		Fields: Schema{
			{Name: "name", Type: FieldString},
			{Name: "level", Type: FieldInteger},
			{Name: "description", Type: FieldString, Nullable: true},
			{Name: "prepared", Type: FieldBoolean},
		},
		Order: []string{"level ASC", "name ASC"},
	}

	ItemKind = Kind[core.Item]{
		Tag:        "item",
		Collection: "inventory",
		Fields: Schema{
			{Name: "name", Type: FieldString},
			{Name: "number", Type: FieldInteger},
			{Name: "description", Type: FieldString, Nullable: true},
		},
		Order: []string{"name ASC"},
	}
)
