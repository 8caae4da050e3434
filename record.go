package refdata

import "fmt"

// Record is one attribute bag plus identity, belonging to a record type.
// Records are built through a schema and inserted into that type's
// collection; the collection is the source of truth for whether a record
// exists in the store.
type Record struct {
	schema *Schema
	coll   *Collection
	id     any
	attrs  map[string]any
}

// NewRecord builds a record from raw attributes. Values of typed fields are
// coerced; an explicitly nil value is stored as absent even for typed fields.
// Declared fields with a default that are missing from raw are materialized
// with the default. An "id" key is taken as the identity, uncoerced.
func NewRecord(scm *Schema, raw map[string]any) (*Record, error) {
	r := &Record{
		schema: scm,
		attrs:  make(map[string]any, len(raw)),
	}
	for name, v := range raw {
		if name == IdentityField {
			r.id = v
			continue
		}
		if v == nil {
			continue
		}
		cv, err := scm.coerceField(name, v)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", scm.name, name, err)
		}
		r.attrs[name] = cv
	}
	for _, name := range scm.order {
		f := scm.fields[name]
		if f.hasDefault {
			if _, present := r.attrs[name]; !present {
				r.attrs[name] = f.def
			}
		}
	}
	return r, nil
}

// Schema returns the record type's schema.
func (r *Record) Schema() *Schema {
	return r.schema
}

// ID returns the record's identity, nil when not yet assigned.
func (r *Record) ID() any {
	return r.id
}

// Get returns the attribute value and whether it is present. An absent
// attribute of a field declared with a default reads as the default, so
// fields declared after the record was built still resolve.
func (r *Record) Get(name string) (any, bool) {
	if name == IdentityField {
		return r.id, r.id != nil
	}
	if v, present := r.attrs[name]; present {
		return v, true
	}
	if f := r.schema.fields[name]; f != nil && f.hasDefault {
		return f.def, true
	}
	return nil, false
}

// Set stores an attribute value, re-applying the field's coercion; nil clears
// the attribute to absent. Setting "id" assigns the identity once; identity
// is immutable after first assignment.
func (r *Record) Set(name string, raw any) error {
	if name == IdentityField {
		if r.id != nil {
			panic(fmt.Errorf("%s: record identity is immutable once assigned", r.schema.name))
		}
		r.id = raw
		return nil
	}
	if raw == nil {
		delete(r.attrs, name)
		return nil
	}
	cv, err := r.schema.coerceField(name, raw)
	if err != nil {
		return fmt.Errorf("%s.%s: %w", r.schema.name, name, err)
	}
	r.attrs[name] = cv
	return nil
}

// Attributes returns a copy of the record's attributes, with the identity
// under "id" when assigned.
func (r *Record) Attributes() map[string]any {
	m := make(map[string]any, len(r.attrs)+1)
	for k, v := range r.attrs {
		m[k] = v
	}
	if r.id != nil {
		m[IdentityField] = r.id
	}
	return m
}

// Equal reports whether both records belong to the same record type and
// carry the same non-absent identity.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == nil && other == nil
	}
	if r.schema != other.schema {
		return false
	}
	if r.id == nil || other.id == nil {
		return false
	}
	return idKey(r.id) == idKey(other.id)
}

// IsNew reports whether the record's identity does not currently resolve to
// this record inside its collection: never inserted, or the collection was
// cleared since.
func (r *Record) IsNew() bool {
	return r.coll == nil || !r.coll.Exists(r)
}

// idKey stringifies an identity for index lookups, so integer-ish identities
// of different Go types resolve to the same record.
func idKey(id any) string {
	return fmt.Sprint(id)
}
