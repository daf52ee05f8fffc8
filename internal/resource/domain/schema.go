package domain

// FieldType enumerates the value kinds the resource schema understands.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldEmail   FieldType = "email"
	FieldNumber  FieldType = "number"
	FieldInteger FieldType = "integer"
	FieldDate    FieldType = "date"
	FieldEnum    FieldType = "enum"
)

// Field describes one writable column of a resource: its type, constraints
// and whether it is accepted on create and update. The schema is explicit
// and enumerated; nothing is derived by reflection at runtime.
type Field struct {
	Name      string    `json:"name"`
	Type      FieldType `json:"type"`
	Required  bool      `json:"required"`
	MaxLength int       `json:"maxLength,omitempty"`
	Nullable  bool      `json:"nullable,omitempty"`
	Enum      []string  `json:"enum,omitempty"`
	Create    bool      `json:"create"`
	Update    bool      `json:"update"`
}

// Resource describes one table exposed through the generic CRUD surface.
type Resource struct {
	Key          string
	Label        string
	Table        string
	IDField      string
	OrderBy      string
	SelectFields []string
	Fields       []Field
}

// Meta is the client-facing descriptor of a resource.
type Meta struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	IDField string  `json:"idField"`
	Fields  []Field `json:"fields"`
}

func (r Resource) Meta() Meta {
	return Meta{
		Key:     r.Key,
		Label:   r.Label,
		IDField: r.IDField,
		Fields:  r.Fields,
	}
}

func (r Resource) Field(name string) (Field, bool) {
	for _, field := range r.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
