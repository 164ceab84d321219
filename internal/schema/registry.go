// Package schema describes the entities managed through the dashboard.
// Definitions are static: the registry is populated once at startup and
// read-only afterwards. The CRUD orchestrator, the dependent-record guard
// and the meta API all work off the same table.
package schema

// FieldType defines the data type of a field.
type FieldType string

const (
	TypeText      FieldType = "text"
	TypeInteger   FieldType = "integer" // non-negative whole number
	TypeReal      FieldType = "real"    // decimal value, sign policy per field
	TypeBoolean   FieldType = "boolean"
	TypeDate      FieldType = "date" // YYYY-MM-DD
	TypeEnum      FieldType = "enum"
	TypeReference FieldType = "reference" // foreign key to another entity
)

// LookupKind describes how a backend lookup endpoint receives its argument.
type LookupKind string

const (
	// LookupPath appends the value to the path: GET {prefix}/{name}/{value}
	LookupPath LookupKind = "path"
	// LookupQuery passes the value as a query parameter: GET {prefix}/{name}?{field}={value}
	LookupQuery LookupKind = "query"
)

// FieldDef describes a field.
type FieldDef struct {
	Name          string    `json:"name"`
	Label         string    `json:"label,omitempty"`
	Type          FieldType `json:"type"`
	Required      bool      `json:"required,omitempty"`
	ReferenceTo   string    `json:"referenceTo,omitempty"` // entity name for references
	Options       []string  `json:"options,omitempty"`     // enum values
	AllowNegative bool      `json:"allowNegative,omitempty"`
	// ServerDerived fields are computed by a before-hook, never collected from
	// the user (e.g. a reservation's total cost).
	ServerDerived bool `json:"serverDerived,omitempty"`
}

// UniqueRule declares a single-field uniqueness constraint enforced through a
// backend lookup before any mutating call.
type UniqueRule struct {
	Field   string     `json:"field"`
	Lookup  string     `json:"lookup"` // lookup segment, e.g. "byemployeeid"
	Kind    LookupKind `json:"kind"`
	Message string     `json:"message"` // conflict message shown to the user
}

// DependentDef declares another entity whose records reference this one.
// Lookup is the dependent entity's by-foreign-key endpoint segment.
type DependentDef struct {
	Entity string `json:"entity"`
	Lookup string `json:"lookup"` // e.g. "bychid" on the Hotel prefix
}

// EntityDef describes a manageable entity.
type EntityDef struct {
	Name       string         `json:"name"`
	Label      string         `json:"label,omitempty"`
	PathPrefix string         `json:"-"` // backend path, e.g. "/dataops/chains"
	IDField    string         `json:"idField"`
	Fields     []FieldDef     `json:"fields"`
	Uniques    []UniqueRule   `json:"-"`
	Dependents []DependentDef `json:"dependents,omitempty"`
}

// Field returns the definition of a named field.
func (e EntityDef) Field(name string) (FieldDef, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// UserFields returns the fields collected from the user, in declaration order.
func (e EntityDef) UserFields() []FieldDef {
	out := make([]FieldDef, 0, len(e.Fields))
	for _, f := range e.Fields {
		if !f.ServerDerived {
			out = append(out, f)
		}
	}
	return out
}

// Registry stores entity definitions.
type Registry struct {
	entities map[string]EntityDef
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{
		entities: make(map[string]EntityDef),
	}
}

func (r *Registry) Register(def EntityDef) {
	if _, ok := r.entities[def.Name]; !ok {
		r.order = append(r.order, def.Name)
	}
	r.entities[def.Name] = def
}

func (r *Registry) Get(name string) (EntityDef, bool) {
	d, ok := r.entities[name]
	return d, ok
}

// List returns definitions in registration order.
func (r *Registry) List() []EntityDef {
	list := make([]EntityDef, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, r.entities[name])
	}
	return list
}
