package refdata

import (
	"errors"
	"testing"
)

func TestDeclareReservedField(t *testing.T) {
	scm := newSchema("countries")
	err := scm.DeclareField("id", FieldOptions{Type: TypeInteger})
	var rfe *ReservedFieldError
	if !errors.As(err, &rfe) {
		t.Fatalf("** got %v, wanted ReservedFieldError", err)
	}
	deepEqual(t, rfe.Field, "id")
	deepEqual(t, len(scm.FieldNames()), 0)
}

func TestDeclareUnknownType(t *testing.T) {
	scm := newSchema("countries")
	err := scm.DeclareField("name", FieldOptions{Type: "text"})
	var fte *FieldTypeError
	if !errors.As(err, &fte) {
		t.Fatalf("** got %v, wanted FieldTypeError", err)
	}
	deepEqual(t, fte.Tag, "text")
	isnil(t, scm.FieldNamed("name"))
}

func TestRedeclareOverwrites(t *testing.T) {
	scm := newSchema("countries")
	ensure(scm.DeclareField("code", FieldOptions{Type: TypeInteger}))
	ensure(scm.DeclareField("code", FieldOptions{Type: TypeString, Default: "??"}))

	f := scm.FieldNamed("code")
	isnonnil(t, f)
	deepEqual(t, f.TypeTag(), TypeString)
	deepEqual(t, f.Default(), any("??"))
	deepEqual(t, scm.FieldNames(), []string{"code"})
}

func TestFieldNamesOrder(t *testing.T) {
	scm := newSchema("countries")
	ensure(scm.DeclareField("name", FieldOptions{Type: TypeString}))
	ensure(scm.DeclareField("population", FieldOptions{Type: TypeInteger}))
	ensure(scm.DeclareField("landlocked", FieldOptions{Type: TypeBoolean}))
	deepEqual(t, scm.FieldNames(), []string{"name", "population", "landlocked"})
}
