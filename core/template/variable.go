package template

import (
	"fmt"
	"strconv"

	"milvus-server/core/utils"
)

// Type is the declared type of a template variable.
type Type int

const (
	// TypeString is the type of unannotated variables.
	TypeString Type = iota
	// TypeInteger holds decimal integers.
	TypeInteger
	// TypeBoolean holds the literals true and false.
	TypeBoolean
)

// String returns the canonical type identifier used in templates.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeBoolean:
		return "boolean"
	default:
		return "invalid"
	}
}

// ParseType maps a type identifier from a placeholder to a Type.
// The short forms str, int and bool are accepted for older templates.
func ParseType(name string) (Type, error) {
	switch name {
	case "string", "str":
		return TypeString, nil
	case "integer", "int":
		return TypeInteger, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	default:
		return TypeString, fmt.Errorf("unsupported type %q", name)
	}
}

// Coerce converts text into a value of type t.
// Integers accept decimal digits only; empty text is 0.
// Booleans accept exactly "true" or "false".
func (t Type) Coerce(text string) (any, error) {
	switch t {
	case TypeInteger:
		if text == "" {
			return 0, nil
		}
		for _, r := range text {
			if r < '0' || r > '9' {
				return nil, fmt.Errorf("invalid integer %q", text)
			}
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", text, err)
		}
		return n, nil
	case TypeBoolean:
		switch text {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean %q, expected true or false", text)
	default:
		return text, nil
	}
}

// convert normalizes an arbitrary caller value to the Go type backing t.
func (t Type) convert(val any) (any, error) {
	if s, ok := val.(string); ok {
		return t.Coerce(s)
	}
	switch t {
	case TypeInteger:
		return utils.ToInt(val)
	case TypeBoolean:
		return utils.ToBool(val)
	default:
		return utils.ToString(val), nil
	}
}

// Variable is one entry of the variable table.
type Variable struct {
	Name string
	Type Type
	// Value is nil while the variable is unresolved.
	Value any
}

// Resolved reports whether the variable holds a concrete value.
func (v Variable) Resolved() bool {
	return v.Value != nil
}

// Text renders the value the way it is written into the configuration.
func (v Variable) Text() string {
	switch val := v.Value.(type) {
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case nil:
		return ""
	default:
		return utils.ToString(val)
	}
}

// Table is the variable table built from a template.
// Variables keep declaration order so every pass over them is deterministic.
type Table struct {
	order   []string
	vars    map[string]*Variable
	markers map[string]string
	marks   []string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		vars:    make(map[string]*Variable),
		markers: make(map[string]string),
	}
}

func (t *Table) declare(marker string, v Variable) {
	if _, ok := t.markers[marker]; !ok {
		t.marks = append(t.marks, marker)
	}
	t.markers[marker] = v.Name
	if _, ok := t.vars[v.Name]; !ok {
		t.order = append(t.order, v.Name)
	}
	t.vars[v.Name] = &v
}

// Lookup returns a copy of the named variable.
func (t *Table) Lookup(name string) (Variable, bool) {
	v, ok := t.vars[name]
	if !ok {
		return Variable{}, false
	}
	return *v, true
}

// Names returns variable names in declaration order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Variables returns copies of all variables in declaration order.
func (t *Table) Variables() []Variable {
	out := make([]Variable, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, *t.vars[name])
	}
	return out
}

// Markers returns the marker text to variable name mapping.
func (t *Table) Markers() map[string]string {
	out := make(map[string]string, len(t.markers))
	for k, v := range t.markers {
		out[k] = v
	}
	return out
}

// Set writes a value to a declared variable, converting it to the declared type.
func (t *Table) Set(name string, val any) error {
	v, ok := t.vars[name]
	if !ok {
		return fmt.Errorf("unknown variable %q", name)
	}
	converted, err := v.Type.convert(val)
	if err != nil {
		return fmt.Errorf("set %s(%s): %w", name, v.Type, err)
	}
	v.Value = converted
	return nil
}

// Put declares the variable if needed and overwrites its type and value.
func (t *Table) Put(name string, typ Type, val any) error {
	converted, err := typ.convert(val)
	if err != nil {
		return fmt.Errorf("put %s(%s): %w", name, typ, err)
	}
	if _, ok := t.vars[name]; !ok {
		t.order = append(t.order, name)
	}
	t.vars[name] = &Variable{Name: name, Type: typ, Value: converted}
	return nil
}

// Unresolved returns the names of variables without a value, in declaration order.
func (t *Table) Unresolved() []string {
	var out []string
	for _, name := range t.order {
		if !t.vars[name].Resolved() {
			out = append(out, name)
		}
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := NewTable()
	c.order = append(c.order, t.order...)
	c.marks = append(c.marks, t.marks...)
	for k, v := range t.vars {
		cp := *v
		c.vars[k] = &cp
	}
	for k, v := range t.markers {
		c.markers[k] = v
	}
	return c
}
