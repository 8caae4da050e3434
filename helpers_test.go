package refdata

import (
	"reflect"
	"testing"
)

func setupCountries(t testing.TB) (*Registry, *Collection) {
	t.Helper()

	reg := NewRegistry(Options{Logf: t.Logf})
	countries := reg.Define("countries")
	scm := countries.Schema()
	ensure(scm.DeclareField("name", FieldOptions{Type: TypeString}))
	ensure(scm.DeclareField("population", FieldOptions{Type: TypeInteger}))
	ensure(scm.DeclareField("continent", FieldOptions{Type: TypeString, Default: "Europe"}))
	return reg, countries
}

func insertRow(t testing.TB, coll *Collection, row map[string]any) *Record {
	t.Helper()
	r := must(NewRecord(coll.Schema(), row))
	return must(coll.Insert(r))
}

func deepEqual[T any](t testing.TB, a, e T) {
	if !reflect.DeepEqual(a, e) {
		t.Helper()
		t.Errorf("** got %v, wanted %v", a, e)
	}
}

func isnil[T any, P ~*T](t testing.TB, a P) {
	if a != nil {
		t.Helper()
		t.Errorf("** got &%v, wanted nil", *a)
	}
}

func isnonnil[T any](t testing.TB, a *T) {
	if a == nil {
		t.Helper()
		t.Errorf("** got nil %T, wanted non-nil", a)
	}
}

func attrEqual(t testing.TB, r *Record, name string, want any) {
	t.Helper()
	v, _ := r.Get(name)
	if !reflect.DeepEqual(v, want) {
		t.Errorf("** %s = %v (%T), wanted %v (%T)", name, v, v, want, want)
	}
}

func attrAbsent(t testing.TB, r *Record, name string) {
	t.Helper()
	if v, present := r.Get(name); present {
		t.Errorf("** %s = %v (%T), wanted absent", name, v, v)
	}
}
