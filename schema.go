package refdata

// IdentityField is the attribute name reserved for record identity.
// Schemas cannot declare a field under this name.
const IdentityField = "id"

// Field describes one declared attribute: its type tag, coercion and default.
// Fields form the dispatch table that Record get/set operations run through.
type Field struct {
	name       string
	typeTag    string
	coerce     CoerceFunc
	def        any
	hasDefault bool
}

func (f *Field) Name() string {
	return f.name
}

func (f *Field) TypeTag() string {
	return f.typeTag
}

func (f *Field) HasDefault() bool {
	return f.hasDefault
}

// Default returns the field's default value, already typed; nil when the
// field has none.
func (f *Field) Default() any {
	return f.def
}

// FieldOptions configures a field declaration. A zero value declares an
// untyped, default-less field.
type FieldOptions struct {
	// Type is a coercion registry tag; empty means no coercion.
	Type string
	// Default must already be a typed value; it is stored as given.
	Default any
}

// Schema holds the declared fields of one record type. Fields may be added
// at any time but never removed; redeclaring a name overwrites the previous
// descriptor, which keeps bulk reloads with evolving columns working.
type Schema struct {
	name   string
	fields map[string]*Field
	order  []string
}

func newSchema(name string) *Schema {
	return &Schema{
		name:   name,
		fields: make(map[string]*Field),
	}
}

// Name returns the record-type name this schema belongs to.
func (scm *Schema) Name() string {
	return scm.name
}

// DeclareField adds or overwrites a field descriptor.
func (scm *Schema) DeclareField(name string, opt FieldOptions) error {
	if name == IdentityField {
		return &ReservedFieldError{Type: scm.name, Field: name}
	}
	var fn CoerceFunc
	if opt.Type != "" {
		fn = coercions[opt.Type]
		if fn == nil {
			return &FieldTypeError{Type: scm.name, Field: name, Tag: opt.Type}
		}
	}
	if scm.fields[name] == nil {
		scm.order = append(scm.order, name)
	}
	scm.fields[name] = &Field{
		name:       name,
		typeTag:    opt.Type,
		coerce:     fn,
		def:        opt.Default,
		hasDefault: opt.Default != nil,
	}
	return nil
}

// FieldNamed returns the descriptor for name, or nil if undeclared.
func (scm *Schema) FieldNamed(name string) *Field {
	return scm.fields[name]
}

// FieldNames returns the declared field names in declaration order.
func (scm *Schema) FieldNames() []string {
	return append([]string(nil), scm.order...)
}

func (scm *Schema) coerceField(name string, raw any) (any, error) {
	f := scm.fields[name]
	if f == nil || f.coerce == nil {
		return raw, nil
	}
	return f.coerce(raw)
}
