package dataset

import (
	"fmt"
	"strconv"
	"time"
)

// Kind identifies the declared type of a column's cells.
type Kind int

const (
	KindString Kind = iota
	KindFloat
	KindInt
	KindTime
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindTime:
		return "time"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a single nullable cell. The zero value is null.
type Value struct {
	kind    Kind
	present bool
	s       string
	f       float64
	i       int64
	t       time.Time
}

// Null returns the null value.
func Null() Value { return Value{} }

// String wraps a string cell.
func String(s string) Value { return Value{kind: KindString, present: true, s: s} }

// Float wraps a float cell.
func Float(f float64) Value { return Value{kind: KindFloat, present: true, f: f} }

// Int wraps an integer cell.
func Int(i int64) Value { return Value{kind: KindInt, present: true, i: i} }

// Time wraps a timestamp cell.
func Time(t time.Time) Value { return Value{kind: KindTime, present: true, t: t} }

// IsNull reports whether the cell holds no value.
func (v Value) IsNull() bool { return !v.present }

// Kind returns the kind of the stored value. Null cells report KindString.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string content and whether the cell is a non-null string.
func (v Value) AsString() (string, bool) {
	if !v.present || v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsFloat returns a numeric cell as float64. Integer cells convert.
func (v Value) AsFloat() (float64, bool) {
	if !v.present {
		return 0, false
	}
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// AsInt returns the integer content and whether the cell is a non-null int.
func (v Value) AsInt() (int64, bool) {
	if !v.present || v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// AsTime returns the timestamp content and whether the cell is a non-null time.
func (v Value) AsTime() (time.Time, bool) {
	if !v.present || v.kind != KindTime {
		return time.Time{}, false
	}
	return v.t, true
}

// Format renders the cell for output. Null cells render as the empty string.
func (v Value) Format() string {
	if !v.present {
		return ""
	}
	switch v.kind {
	case KindString:
		return v.s
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindTime:
		return v.t.Format("2006-01-02")
	default:
		return ""
	}
}

// Key returns a stable encoding used for deduplication keys. Null cells share
// a single key, so two null cells compare equal.
func (v Value) Key() string {
	if !v.present {
		return "\x00null"
	}
	switch v.kind {
	case KindString:
		return "s:" + v.s
	case KindFloat:
		return "f:" + strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindInt:
		return "i:" + strconv.FormatInt(v.i, 10)
	case KindTime:
		return "t:" + v.t.Format(time.RFC3339Nano)
	default:
		return ""
	}
}

// Equal reports whether two cells hold the same value. Nulls are equal to
// each other regardless of column kind.
func (v Value) Equal(o Value) bool {
	if !v.present || !o.present {
		return v.present == o.present
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == o.s
	case KindFloat:
		return v.f == o.f
	case KindInt:
		return v.i == o.i
	case KindTime:
		return v.t.Equal(o.t)
	default:
		return false
	}
}
