package registry

import "fmt"

// FieldKind is the closed set of column kinds the presentation layer knows
// how to render. Adding a kind requires extending every switch over it.
type FieldKind int

const (
	KindString FieldKind = iota
	KindNumber
	KindBool
	KindDate
	KindArray
	KindCurrency
	KindDuration
	KindStatus
	KindRelation
)

// String returns the wire name of the kind as used in YAML overrides
func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindArray:
		return "array"
	case KindCurrency:
		return "currency"
	case KindDuration:
		return "duration"
	case KindStatus:
		return "status"
	case KindRelation:
		return "relation"
	default:
		return "unknown"
	}
}

// ParseKind parses a wire name into a FieldKind
func ParseKind(s string) (FieldKind, error) {
	switch s {
	case "string", "text":
		return KindString, nil
	case "number", "int", "numeric":
		return KindNumber, nil
	case "bool", "boolean":
		return KindBool, nil
	case "date", "timestamp":
		return KindDate, nil
	case "array":
		return KindArray, nil
	case "currency", "price":
		return KindCurrency, nil
	case "duration":
		return KindDuration, nil
	case "status", "enum":
		return KindStatus, nil
	case "relation", "fk":
		return KindRelation, nil
	default:
		return KindString, fmt.Errorf("unknown field kind: %q", s)
	}
}

// Field describes one column of a table. The declaration is a UI hint, not a
// runtime constraint.
type Field struct {
	Name       string
	Kind       FieldKind
	Required   bool
	PrimaryKey bool
}
