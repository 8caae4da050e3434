package refdata

import (
	"fmt"
	"strings"
)

// ReservedFieldError means a field was declared under the name reserved for
// record identity.
type ReservedFieldError struct {
	Type  string
	Field string
}

func (e *ReservedFieldError) Error() string {
	return fmt.Sprintf("%s: field name %q is reserved for record identity", e.Type, e.Field)
}

// FieldTypeError means a field declaration or a coercion referenced a type
// tag that is not in the coercion registry.
type FieldTypeError struct {
	Type  string
	Field string
	Tag   string
}

func (e *FieldTypeError) Error() string {
	var buf strings.Builder
	if e.Type != "" {
		buf.WriteString(e.Type)
		if e.Field != "" {
			buf.WriteByte('.')
			buf.WriteString(e.Field)
		}
		buf.WriteString(": ")
	}
	fmt.Fprintf(&buf, "unknown field type %q", e.Tag)
	return buf.String()
}

// IDError means an identifier could not be accepted or assigned: a duplicate
// identity inserted into a non-empty collection, or a next-id computation
// over non-numeric identities.
type IDError struct {
	Type string
	ID   any
	Msg  string
}

func idErrf(typeName string, id any, format string, args ...any) error {
	return &IDError{typeName, id, fmt.Sprintf(format, args...)}
}

func (e *IDError) Error() string {
	return fmt.Sprintf("%s: id %v: %s", e.Type, e.ID, e.Msg)
}

// NotFoundError means a strict lookup (Scope.Find, Scope.FindAll) resolved to
// nothing. Non-strict finders (First, FindBy, FindByID) return nil instead.
type NotFoundError struct {
	Type string
	ID   any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no record with id %v", e.Type, e.ID)
}
