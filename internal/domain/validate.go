package domain

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"
)

// Validatable describes a single input value and the constraints it must meet.
// Nil bounds are skipped. MinLength and MaxLength apply only when Value has a
// string kind; Min and Max apply only when it has a numeric kind. Named types
// are checked by their underlying kind.
type Validatable struct {
	Value     any
	Required  bool
	MinLength *int
	MaxLength *int
	Min       *float64
	Max       *float64
}

// Bound returns a pointer to v for use as a Validatable constraint.
func Bound[T int | float64](v T) *T {
	return &v
}

// Validate reports whether v satisfies every constraint set on it.
// All checks are conjunctive; a mismatched constraint kind is ignored.
func Validate(v Validatable) bool {
	valid := true

	if v.Required {
		valid = valid && strings.TrimSpace(stringForm(v.Value)) != ""
	}

	rv := reflect.ValueOf(v.Value)

	if rv.Kind() == reflect.String {
		n := utf8.RuneCountInString(rv.String())
		if v.MinLength != nil {
			valid = valid && n >= *v.MinLength
		}
		if v.MaxLength != nil {
			valid = valid && n <= *v.MaxLength
		}
	}

	if f, ok := numeric(rv); ok {
		if v.Min != nil {
			valid = valid && f >= *v.Min
		}
		if v.Max != nil {
			valid = valid && f <= *v.Max
		}
	}

	return valid
}

func stringForm(value any) string {
	switch x := value.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// numeric converts any integer or float kind to float64.
func numeric(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
