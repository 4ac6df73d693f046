package core

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Enum is a bidirectional symbol table for a closed enumeration.
// Values are the positions of the symbols.
type Enum struct {
	name    string
	symbols []string
	index   map[string]int
}

func NewEnum(name string, symbols ...string) *Enum {
	index := make(map[string]int, len(symbols))
	for i, symbol := range symbols {
		index[symbol] = i
	}
	return &Enum{name: name, symbols: symbols, index: index}
}

func (e *Enum) Name() string {
	return e.name
}

func (e *Enum) Symbols() []string {
	return append([]string(nil), e.symbols...)
}

// Value looks up the value of a symbol
func (e *Enum) Value(symbol string) (int, bool) {
	v, ok := e.index[symbol]
	return v, ok
}

// Symbol looks up the symbol of a value
func (e *Enum) Symbol(value int) (string, bool) {
	if value < 0 || value >= len(e.symbols) {
		return "", false
	}
	return e.symbols[value], true
}

// Rest is the kind of rest a resource recovers on.
type Rest int

const (
	RestShort Rest = iota
	RestLong
	RestOther
)

var RestEnum = NewEnum("rest", "short", "long", "other")

func ParseRest(symbol string) (Rest, error) {
	v, ok := RestEnum.Value(symbol)
	if !ok {
		return 0, fmt.Errorf("unknown %s %q", RestEnum.Name(), symbol)
	}
	return Rest(v), nil
}

func (r Rest) String() string {
	symbol, ok := RestEnum.Symbol(int(r))
	if !ok {
		return fmt.Sprintf("Rest(%d)", int(r))
	}
	return symbol
}

func (r Rest) MarshalJSON() ([]byte, error) {
	symbol, ok := RestEnum.Symbol(int(r))
	if !ok {
		return nil, fmt.Errorf("invalid rest value %d", int(r))
	}
	return json.Marshal(symbol)
}

func (r *Rest) UnmarshalJSON(b []byte) error {
	var symbol string
	if err := json.Unmarshal(b, &symbol); err != nil {
		return err
	}
	parsed, err := ParseRest(symbol)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value stores the symbol so the column stays readable.
func (r Rest) Value() (driver.Value, error) {
	symbol, ok := RestEnum.Symbol(int(r))
	if !ok {
		return nil, fmt.Errorf("invalid rest value %d", int(r))
	}
	return symbol, nil
}

func (r *Rest) Scan(src any) error {
	var symbol string
	switch v := src.(type) {
	case string:
		symbol = v
	case []byte:
		symbol = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Rest", src)
	}
	parsed, err := ParseRest(symbol)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
