package refdata

import "fmt"

// Collection holds the ordered records of one record type plus an index from
// stringified identity to position. The two are kept consistent at all
// times: inserts extend both, ReplaceAll and DeleteAll rebuild or clear both
// together.
type Collection struct {
	schema  *Schema
	records []*Record
	index   map[string]int
	dirty   bool
	logf    func(format string, args ...any)
}

func newCollection(scm *Schema, logf func(format string, args ...any)) *Collection {
	return &Collection{
		schema: scm,
		index:  make(map[string]int),
		logf:   logf,
	}
}

// Schema returns the record type's schema.
func (c *Collection) Schema() *Schema {
	return c.schema
}

// Len returns the number of records in the collection.
func (c *Collection) Len() int {
	return len(c.records)
}

// Insert appends a record, assigning the next numeric identity when the
// record has none. Inserting a duplicate identity into a collection that has
// held records returns *IDError, without touching the sequence or the index.
func (c *Collection) Insert(r *Record) (*Record, error) {
	if r.schema != c.schema {
		panic(fmt.Errorf("%s: record belongs to record type %s", c.schema.name, r.schema.name))
	}
	if r.id == nil {
		id, err := c.nextID()
		if err != nil {
			return nil, err
		}
		r.id = id
	}
	key := idKey(r.id)
	if c.dirty {
		if _, exists := c.index[key]; exists {
			return nil, idErrf(c.schema.name, r.id, "duplicate identifier")
		}
	}
	c.dirty = true
	r.coll = c
	c.records = append(c.records, r)
	c.index[key] = len(c.records) - 1
	return r, nil
}

// nextID is 1 for an empty collection, otherwise the successor of the
// maximum identity. Defined only while every existing identity is numeric;
// anything else is an explicit *IDError rather than a guess.
func (c *Collection) nextID() (any, error) {
	var maxID int64
	var found bool
	for _, r := range c.records {
		if r.id == nil {
			continue
		}
		n, ok := asInt64(r.id)
		if !ok {
			return nil, idErrf(c.schema.name, r.id, "cannot assign next id over a non-numeric identifier")
		}
		if !found || n > maxID {
			maxID, found = n, true
		}
	}
	if !found {
		return int64(1), nil
	}
	return maxID + 1, nil
}

// ReplaceAll clears the collection and loads the given rows in order. Any
// attribute key not yet declared on the schema is auto-declared as an
// untyped field first, so raw data can be loaded without upfront
// declarations.
func (c *Collection) ReplaceAll(rows []map[string]any) error {
	for _, row := range rows {
		for name := range row {
			if name == IdentityField {
				continue
			}
			if c.schema.fields[name] == nil {
				if err := c.schema.DeclareField(name, FieldOptions{}); err != nil {
					return err
				}
			}
		}
	}
	c.DeleteAll()
	for _, row := range rows {
		r, err := NewRecord(c.schema, row)
		if err != nil {
			return err
		}
		if _, err := c.Insert(r); err != nil {
			return err
		}
	}
	if c.logf != nil {
		c.logf("refdata: %s: replaced contents with %d rows", c.schema.name, len(rows))
	}
	return nil
}

// FindByID returns the record with the given identity, nil when absent.
func (c *Collection) FindByID(id any) *Record {
	pos, ok := c.index[idKey(id)]
	if !ok {
		return nil
	}
	return c.records[pos]
}

// All returns a scope over the full sequence.
func (c *Collection) All() Scope {
	return Scope{coll: c, records: c.records}
}

// DeleteAll empties the sequence and the index.
func (c *Collection) DeleteAll() {
	c.records = nil
	clear(c.index)
}

// Exists reports whether the record's identity resolves to this exact record
// in the collection.
func (c *Collection) Exists(r *Record) bool {
	if r == nil || r.id == nil {
		return false
	}
	pos, ok := c.index[idKey(r.id)]
	return ok && c.records[pos] == r
}
