// Package patch turns a partial JSON payload into the column map of a single
// UPDATE statement. Only keys declared in a Set reach the database; values are
// converted to the column's type before they are bound as parameters.
package patch

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gwp-backend/internal/models"
)

// Kind is the value type a column accepts.
type Kind int

const (
	// String is a non-null text column.
	String Kind = iota
	// NullableString accepts null; numbers are formatted as text.
	NullableString
	// Int is a nullable integer column; "" and null clear it.
	Int
	// Date is a nullable calendar date; "" and null clear it.
	Date
	// Bool is a non-null boolean column.
	Bool
)

// ConvertFunc converts a raw JSON value. Returning keep=false drops the key
// from the update without an error.
type ConvertFunc func(raw interface{}) (value interface{}, keep bool, err error)

// Field maps a payload key to a column.
type Field struct {
	Key     string
	Column  string
	Kind    Kind
	Convert ConvertFunc // overrides Kind when set
}

// FieldError reports a payload value that cannot be stored in its column.
type FieldError struct {
	Key    string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("valor inválido para %s: %s", e.Key, e.Reason)
}

// Set is the allow-list of updatable fields of one table.
type Set struct {
	fields []Field
}

// NewSet builds an allow-list. Column defaults to Key.
func NewSet(fields ...Field) *Set {
	s := &Set{fields: make([]Field, 0, len(fields))}
	for _, f := range fields {
		if f.Column == "" {
			f.Column = f.Key
		}
		s.fields = append(s.fields, f)
	}
	return s
}

// Keys lists the accepted payload keys in declaration order.
func (s *Set) Keys() []string {
	keys := make([]string, len(s.fields))
	for i, f := range s.fields {
		keys[i] = f.Key
	}
	return keys
}

// Build converts the recognised keys of payload. Unknown keys are ignored.
func (s *Set) Build(payload map[string]interface{}) (*Update, error) {
	u := &Update{values: make(map[string]interface{})}
	for _, f := range s.fields {
		raw, ok := payload[f.Key]
		if !ok {
			continue
		}
		convert := f.Convert
		if convert == nil {
			convert = converterFor(f.Kind)
		}
		value, keep, err := convert(raw)
		if err != nil {
			return nil, &FieldError{Key: f.Key, Reason: err.Error()}
		}
		if !keep {
			continue
		}
		u.set(f.Column, value)
	}
	return u, nil
}

// Update is the ordered column → value assignment list of one UPDATE.
type Update struct {
	columns []string
	values  map[string]interface{}
}

func (u *Update) set(column string, value interface{}) {
	if _, exists := u.values[column]; !exists {
		u.columns = append(u.columns, column)
	}
	u.values[column] = value
}

// Empty reports whether the payload contributed no recognised field.
func (u *Update) Empty() bool {
	return u == nil || len(u.columns) == 0
}

// Touch adds a bookkeeping column such as updated_by or updated_at.
func (u *Update) Touch(column string, value interface{}) *Update {
	u.set(column, value)
	return u
}

// Stamp records who changed the row and when.
func (u *Update) Stamp(userID uint, now time.Time) *Update {
	return u.Touch("updated_by", userID).Touch("updated_at", now)
}

// Columns returns the assigned columns in payload order.
func (u *Update) Columns() []string {
	out := make([]string, len(u.columns))
	copy(out, u.columns)
	return out
}

// Map returns the assignments in the form gorm's Updates expects.
func (u *Update) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(u.values))
	for k, v := range u.values {
		out[k] = v
	}
	return out
}

// Value returns the assigned value of column.
func (u *Update) Value(column string) (interface{}, bool) {
	v, ok := u.values[column]
	return v, ok
}

func converterFor(kind Kind) ConvertFunc {
	switch kind {
	case NullableString:
		return toNullableString
	case Int:
		return toInt
	case Date:
		return toDate
	case Bool:
		return toBool
	default:
		return toString
	}
}

func toString(raw interface{}) (interface{}, bool, error) {
	switch v := raw.(type) {
	case string:
		return v, true, nil
	case nil:
		return nil, false, fmt.Errorf("no puede ser nulo")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true, nil
	}
	return nil, false, fmt.Errorf("se esperaba texto")
}

func toNullableString(raw interface{}) (interface{}, bool, error) {
	if raw == nil {
		return nil, true, nil
	}
	return toString(raw)
}

func toInt(raw interface{}) (interface{}, bool, error) {
	switch v := raw.(type) {
	case nil:
		return nil, true, nil
	case float64:
		if v != math.Trunc(v) {
			return nil, false, fmt.Errorf("se esperaba un entero")
		}
		return int(v), true, nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, true, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, false, fmt.Errorf("se esperaba un entero")
		}
		return n, true, nil
	}
	return nil, false, fmt.Errorf("se esperaba un entero")
}

func toDate(raw interface{}) (interface{}, bool, error) {
	switch v := raw.(type) {
	case nil:
		return models.Date{}, true, nil
	case string:
		d, err := models.ParseDate(v)
		if err != nil {
			return nil, false, err
		}
		return d, true, nil
	}
	return nil, false, fmt.Errorf("se esperaba una fecha %s", models.DateLayout)
}

func toBool(raw interface{}) (interface{}, bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, true, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, false, fmt.Errorf("se esperaba un booleano")
		}
		return b, true, nil
	}
	return nil, false, fmt.Errorf("se esperaba un booleano")
}
