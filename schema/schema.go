package schema

// Node is a declarative description of a configuration value.
//
// A schema is built from a closed set of node types: Object, String, Number, Bool, Enum,
// Literal, Array, Set, Record, Any, and the wrappers Optional, Nullable, Default, Union and
// Effects. Every consumer (Defaults, Normalize, Document) is a visitor over this set, so a
// new field with a default becomes visible to all of them at once.
type Node interface {
	node()
}

// Field is a named member of an Object
type Field struct {
	Name string
	Node Node
}

// Object a fixed set of named fields. Unknown keys are stripped on normalize.
type Object struct {
	Fields []Field
}

// String formats
const (
	FormatDateTime = "date-time"
	FormatUUID     = "uuid"
)

// String a string leaf. FormatDateTime is checked on normalize (RFC 3339), other formats
// are informational.
type String struct {
	Format string
}

// Number a numeric leaf. Int rejects values with a fractional part.
type Number struct {
	Int bool
}

// Bool a boolean leaf
type Bool struct{}

// Enum one of a fixed set of string values
type Enum struct {
	Values []string
}

// Literal a single constant value, used as union discriminant
type Literal struct {
	Value interface{}
}

// Array an ordered list
type Array struct {
	Items Node
}

// Set an ordered list of unique items
type Set struct {
	Items Node
}

// Record a map with string keys
type Record struct {
	Values Node
}

// Any accepts every value as is
type Any struct{}

// Optional the wrapped value may be absent
type Optional struct {
	Inner Node
}

// Nullable the wrapped value may be null
type Nullable struct {
	Inner Node
}

// Default supplies Value (or the result of Factory) when the wrapped value is absent
type Default struct {
	Inner   Node
	Value   interface{}
	Factory func() interface{}
}

// Union one of several variants. When Discriminator is set the variant is chosen by the
// literal value of that key, otherwise the first variant that normalizes cleanly wins.
type Union struct {
	Discriminator string
	Variants      []Node
}

// Effects marks a schema whose output passes through a refinement or transform. The
// wrapped shape is still used for normalization, but it is opaque to Defaults.
type Effects struct {
	Inner Node
	Name  string
}

func (*Object) node()   {}
func (*String) node()   {}
func (*Number) node()   {}
func (*Bool) node()     {}
func (*Enum) node()     {}
func (*Literal) node()  {}
func (*Array) node()    {}
func (*Set) node()      {}
func (*Record) node()   {}
func (*Any) node()      {}
func (*Optional) node() {}
func (*Nullable) node() {}
func (*Default) node()  {}
func (*Union) node()    {}
func (*Effects) node()  {}

// Obj builds an Object from name/node pairs in declaration order
func Obj(fields ...Field) *Object {
	return &Object{Fields: fields}
}

// F shorthand for a Field
func F(name string, node Node) Field {
	return Field{Name: name, Node: node}
}

// Opt wraps node as Optional
func Opt(node Node) *Optional {
	return &Optional{Inner: node}
}

// Null wraps node as Nullable
func Null(node Node) *Nullable {
	return &Nullable{Inner: node}
}

// Def wraps node with a default value
func Def(node Node, value interface{}) *Default {
	return &Default{Inner: node, Value: value}
}

// DefFunc wraps node with a default factory
func DefFunc(node Node, factory func() interface{}) *Default {
	return &Default{Inner: node, Factory: factory}
}

// Str a plain string leaf
func Str() *String {
	return &String{}
}

// DateTime an RFC 3339 timestamp string
func DateTime() *String {
	return &String{Format: FormatDateTime}
}

// UUID a UUID string
func UUID() *String {
	return &String{Format: FormatUUID}
}

// Int an integer leaf
func Int() *Number {
	return &Number{Int: true}
}

// Num a number leaf
func Num() *Number {
	return &Number{}
}

// Boolean a bool leaf
func Boolean() *Bool {
	return &Bool{}
}

// OneOf an enum leaf
func OneOf(values ...string) *Enum {
	return &Enum{Values: values}
}

// Lit a literal leaf
func Lit(value interface{}) *Literal {
	return &Literal{Value: value}
}

// List an array of items
func List(items Node) *Array {
	return &Array{Items: items}
}

// Refine marks node as refined by name
func Refine(node Node, name string) *Effects {
	return &Effects{Inner: node, Name: name}
}

// Field looks up a field by name
func (o *Object) Field(name string) (Node, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f.Node, true
		}
	}
	return nil, false
}

// Unwrap strips Optional, Nullable, Default and Effects wrappers
func Unwrap(n Node) Node {
	for {
		switch v := n.(type) {
		case *Optional:
			n = v.Inner
		case *Nullable:
			n = v.Inner
		case *Default:
			n = v.Inner
		case *Effects:
			n = v.Inner
		default:
			return n
		}
	}
}
