package datagrid

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
	"time"

	"golang.org/x/text/collate"
)

// kind ranks values of different types against each other so mixed columns still get a
// deterministic order instead of a panic.
type kind int

const (
	kindNil kind = iota
	kindBool
	kindNumber
	kindTime
	kindString
	kindOther
)

type cellValue struct {
	kind kind
	b    bool
	n    float64
	t    time.Time
	s    string
}

func classify(v any) cellValue {
	if v == nil {
		return cellValue{kind: kindNil}
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return cellValue{kind: kindNil}
		}
		rv = rv.Elem()
	}
	if !rv.CanInterface() {
		return cellValue{kind: kindOther}
	}

	inner := rv.Interface()
	if t, ok := inner.(time.Time); ok {
		return cellValue{kind: kindTime, t: t}
	}
	if s, ok := inner.(fmt.Stringer); ok && !isValueKind(rv.Kind()) {
		return cellValue{kind: kindString, s: s.String()}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return cellValue{kind: kindBool, b: rv.Bool()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cellValue{kind: kindNumber, n: float64(rv.Int())}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cellValue{kind: kindNumber, n: float64(rv.Uint())}
	case reflect.Float32, reflect.Float64:
		return cellValue{kind: kindNumber, n: rv.Float()}
	case reflect.String:
		return cellValue{kind: kindString, s: rv.String()}
	default:
		return cellValue{kind: kindOther, s: fmt.Sprintf("%v", inner)}
	}
}

// isValueKind is true for values whose underlying kind should win over a String method,
// e.g. a numeric enum that also implements fmt.Stringer.
func isValueKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Bool:
		return true
	}
	return false
}

// compareValues orders two cell values. Strings use the collator, numbers compare
// numerically, and values of different kinds fall back to the kind rank.
func compareValues(a, b any, coll *collate.Collator) int {
	ca, cb := classify(a), classify(b)
	if ca.kind != cb.kind {
		return cmp.Compare(ca.kind, cb.kind)
	}

	switch ca.kind {
	case kindNil:
		return 0
	case kindBool:
		switch {
		case ca.b == cb.b:
			return 0
		case !ca.b:
			return -1
		default:
			return 1
		}
	case kindNumber:
		return cmp.Compare(ca.n, cb.n)
	case kindTime:
		return ca.t.Compare(cb.t)
	case kindString:
		if coll == nil {
			return strings.Compare(ca.s, cb.s)
		}
		return coll.CompareString(ca.s, cb.s)
	default:
		return strings.Compare(ca.s, cb.s)
	}
}
