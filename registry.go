package refdata

import "fmt"

// Registry owns the collections of an application, keyed by record-type
// name. Create one at startup, define record types, and hand the registry
// (or individual collections) to the code that needs them.
type Registry struct {
	colls map[string]*Collection
	names []string
	logf  func(format string, args ...any)
}

type Options struct {
	Logf func(format string, args ...any)
}

func NewRegistry(opt Options) *Registry {
	return &Registry{
		colls: make(map[string]*Collection),
		logf:  opt.Logf,
	}
}

// Define creates an empty collection with a fresh schema for a new record
// type. Defining the same name twice is a programmer error.
func (reg *Registry) Define(name string) *Collection {
	if reg.colls[name] != nil {
		panic(fmt.Errorf("refdata: record type %q already defined", name))
	}
	coll := newCollection(newSchema(name), reg.logf)
	reg.colls[name] = coll
	reg.names = append(reg.names, name)
	return coll
}

// Collection returns the collection for a record type, nil when undefined.
func (reg *Registry) Collection(name string) *Collection {
	return reg.colls[name]
}

// Names returns the defined record-type names in definition order.
func (reg *Registry) Names() []string {
	return append([]string(nil), reg.names...)
}
