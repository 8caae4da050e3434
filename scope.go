package refdata

import (
	"reflect"
	"strings"
	"time"
)

// Predicates maps field names to match specs. Three match kinds:
//
//   - a scalar matches records whose attribute equals the value after the
//     field's coercion is applied to the value;
//   - a slice matches records whose attribute equals any element, raw or
//     coerced, so callers may mix pre-coerced and raw elements;
//   - a Range matches records whose attribute falls inside it, inclusive on
//     both ends; range endpoints are compared as given, never coerced.
//
// A record satisfies the predicates iff it matches every field.
type Predicates map[string]any

// Range is an inclusive range match spec. Endpoints must already be typed to
// order against the attribute (numeric, string or time.Time).
type Range struct {
	Low  any
	High any
}

// Scope is an immutable view over the records of one collection. Filtering
// operations return a new scope and never mutate the receiver or the
// underlying collection.
type Scope struct {
	coll    *Collection
	records []*Record
}

// Schema returns the schema of the scope's record type.
func (s Scope) Schema() *Schema {
	return s.coll.schema
}

// Count returns the number of records in the scope.
func (s Scope) Count() int {
	return len(s.records)
}

// Records returns the scope's records in order.
func (s Scope) Records() []*Record {
	return append([]*Record(nil), s.records...)
}

// First returns the first record, nil when the scope is empty.
func (s Scope) First() *Record {
	if len(s.records) == 0 {
		return nil
	}
	return s.records[0]
}

// Last returns the last record, nil when the scope is empty.
func (s Scope) Last() *Record {
	if len(s.records) == 0 {
		return nil
	}
	return s.records[len(s.records)-1]
}

// Filter narrows the scope to records matching every predicate.
func (s Scope) Filter(preds Predicates) Scope {
	out := make([]*Record, 0, len(s.records))
	for _, r := range s.records {
		if s.matches(r, preds) {
			out = append(out, r)
		}
	}
	return Scope{coll: s.coll, records: out}
}

// Negate narrows the scope to records whose every named attribute is NOT
// equal to the given value. Values are compared as given, with no coercion
// and no list or range handling; this is deliberately narrower than Filter.
func (s Scope) Negate(preds Predicates) Scope {
	out := make([]*Record, 0, len(s.records))
	for _, r := range s.records {
		keep := true
		for name, want := range preds {
			attr, _ := r.Get(name)
			if valuesEqual(attr, want) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return Scope{coll: s.coll, records: out}
}

// Find resolves an identity strictly, returning *NotFoundError when absent.
// Lookup goes against the collection's full index, not the narrowed view, so
// Find on a filtered scope can return a record outside the narrowing.
func (s Scope) Find(id any) (*Record, error) {
	r := s.coll.FindByID(id)
	if r == nil {
		return nil, &NotFoundError{Type: s.coll.schema.name, ID: id}
	}
	return r, nil
}

// FindAll resolves identities element-wise via Find; the first unresolved
// identity fails the whole call.
func (s Scope) FindAll(ids []any) ([]*Record, error) {
	out := make([]*Record, 0, len(ids))
	for _, id := range ids {
		r, err := s.Find(id)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// FindBy returns the first record matching the predicates, nil when none.
func (s Scope) FindBy(preds Predicates) *Record {
	return s.Filter(preds).First()
}

func (s Scope) matches(r *Record, preds Predicates) bool {
	for name, spec := range preds {
		attr, _ := r.Get(name)
		f := s.coll.schema.fields[name]
		if !matchSpec(f, attr, spec) {
			return false
		}
	}
	return true
}

func matchSpec(f *Field, attr, spec any) bool {
	switch spec := spec.(type) {
	case Range:
		return matchRange(attr, spec)
	default:
		rv := reflect.ValueOf(spec)
		if spec != nil && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
			return matchList(f, attr, rv)
		}
		return matchScalar(f, attr, spec)
	}
}

func matchScalar(f *Field, attr, want any) bool {
	if f != nil && f.coerce != nil && want != nil {
		if cv, err := f.coerce(want); err == nil {
			want = cv
		}
	}
	return valuesEqual(attr, want)
}

func matchList(f *Field, attr any, list reflect.Value) bool {
	for i, n := 0, list.Len(); i < n; i++ {
		el := list.Index(i).Interface()
		if valuesEqual(attr, el) {
			return true
		}
		if f != nil && f.coerce != nil && el != nil {
			if cv, err := f.coerce(el); err == nil && valuesEqual(attr, cv) {
				return true
			}
		}
	}
	return false
}

func matchRange(attr any, rng Range) bool {
	lo, ok := compareValues(rng.Low, attr)
	if !ok || lo > 0 {
		return false
	}
	hi, ok := compareValues(attr, rng.High)
	return ok && hi <= 0
}

// valuesEqual compares attribute values across representation shapes:
// numeric values compare by magnitude regardless of Go type, times via
// time.Time.Equal, everything else via reflect.DeepEqual.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	if ai, ok := asInt64(a); ok {
		if bi, ok := asInt64(b); ok {
			return ai == bi
		}
	}
	if af, ok := asFloat64(a); ok {
		if bf, ok := asFloat64(b); ok {
			return af == bf
		}
	}
	return reflect.DeepEqual(a, b)
}

func compareValues(a, b any) (int, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	if ai, ok := asInt64(a); ok {
		if bi, ok := asInt64(b); ok {
			switch {
			case ai < bi:
				return -1, true
			case ai > bi:
				return 1, true
			default:
				return 0, true
			}
		}
	}
	if af, ok := asFloat64(a); ok {
		if bf, ok := asFloat64(b); ok {
			switch {
			case af < bf:
				return -1, true
			case af > bf:
				return 1, true
			default:
				return 0, true
			}
		}
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs), true
		}
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt), true
		}
	}
	return 0, false
}
