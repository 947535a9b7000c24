package scope

import "strconv"

// VariableKind identifies which member of the Variable union is set.
type VariableKind int

const (
	// KindInvalid is the kind of the zero Variable. Contexts reject it.
	KindInvalid VariableKind = iota
	// KindText is a string value.
	KindText
	// KindNumber is a float64 value.
	KindNumber
	// KindBoolean is a bool value.
	KindBoolean
)

func (k VariableKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	default:
		return "invalid"
	}
}

// Variable is a closed union over the value kinds the template language can
// hold: text, number or boolean. Variables are immutable and compare
// structurally, two variables are equal when kind and value agree. Construct
// them with Text, Number or Boolean; the zero value is invalid.
type Variable struct {
	kind    VariableKind
	text    string
	number  float64
	boolean bool
}

func Text(value string) Variable {
	return Variable{kind: KindText, text: value}
}

func Number(value float64) Variable {
	return Variable{kind: KindNumber, number: value}
}

func Boolean(value bool) Variable {
	return Variable{kind: KindBoolean, boolean: value}
}

func (v Variable) Kind() VariableKind {
	return v.kind
}

// AsText returns the text value. The second return is false when the
// variable holds a different kind.
func (v Variable) AsText() (string, bool) {
	return v.text, v.kind == KindText
}

// AsNumber returns the numeric value. The second return is false when the
// variable holds a different kind.
func (v Variable) AsNumber() (float64, bool) {
	return v.number, v.kind == KindNumber
}

// AsBoolean returns the boolean value. The second return is false when the
// variable holds a different kind.
func (v Variable) AsBoolean() (bool, bool) {
	return v.boolean, v.kind == KindBoolean
}

// String renders the held value the way a template would print it.
func (v Variable) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.boolean)
	default:
		return "<invalid>"
	}
}
