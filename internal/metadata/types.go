package metadata

// ModuleGraph is the root container of a module's type metadata.
type ModuleGraph struct {
	// Name is the module name; local TypeRefs resolve against it.
	Name string
	// CoreLibrary is the scope defining System.Object.
	CoreLibrary string
	// References lists the modules this module depends on.
	References []string
	// Types holds the top-level types in declaration order.
	Types []*TypeDef
}

// NewModuleGraph creates an empty graph for the named module.
func NewModuleGraph(name string) *ModuleGraph {
	return &ModuleGraph{
		Name:        name,
		CoreLibrary: DefaultCoreLibrary,
	}
}

// ObjectType returns the universal object-reference type of this module.
func (g *ModuleGraph) ObjectType() TypeRef {
	scope := g.CoreLibrary
	if scope == "" {
		scope = DefaultCoreLibrary
	}

	return Resolved(scope, ObjectTypeName)
}

// AddType appends a top-level type.
func (g *ModuleGraph) AddType(t *TypeDef) *TypeDef {
	t.DeclaringType = nil
	g.Types = append(g.Types, t)

	return t
}

// AllTypes returns every type of the graph, nested types following their
// declaring type.
func (g *ModuleGraph) AllTypes() []*TypeDef {
	var out []*TypeDef

	var walk func(types []*TypeDef)
	walk = func(types []*TypeDef) {
		for _, t := range types {
			out = append(out, t)
			walk(t.NestedTypes)
		}
	}
	walk(g.Types)

	return out
}

// FindType returns the type with the given full name, or nil if not found.
func (g *ModuleGraph) FindType(fullName string) *TypeDef {
	for _, t := range g.AllTypes() {
		if t.FullName() == fullName {
			return t
		}
	}

	return nil
}

// TypeDef describes one declared type.
type TypeDef struct {
	Namespace        string
	Name             string
	Attributes       TypeAttributes
	BaseType         TypeRef // unresolved zero value for interfaces and System.Object
	Methods          []*MethodDef
	Properties       []*PropertyDef
	Fields           []*FieldDef
	NestedTypes      []*TypeDef
	CustomAttributes []*AttributeUsage
	DeclaringType    *TypeDef // nil for top-level types
}

// FullName returns "Namespace.Name" for top-level types and
// "Declaring/Name" for nested types.
func (t *TypeDef) FullName() string {
	if t.DeclaringType != nil {
		return t.DeclaringType.FullName() + "/" + t.Name
	}

	if t.Namespace == "" {
		return t.Name
	}

	return t.Namespace + "." + t.Name
}

// IsInterface reports whether the type is an interface.
func (t *TypeDef) IsInterface() bool {
	return t.Attributes&TypeInterface != 0
}

// IsNested reports whether the type is declared inside another type.
func (t *TypeDef) IsNested() bool {
	return t.DeclaringType != nil
}

// AddMethod appends a method and sets its declaring type.
func (t *TypeDef) AddMethod(m *MethodDef) *MethodDef {
	m.DeclaringType = t
	t.Methods = append(t.Methods, m)

	return m
}

// AddField appends a field.
func (t *TypeDef) AddField(f *FieldDef) *FieldDef {
	t.Fields = append(t.Fields, f)

	return f
}

// AddProperty appends a property.
func (t *TypeDef) AddProperty(p *PropertyDef) *PropertyDef {
	t.Properties = append(t.Properties, p)

	return p
}

// AddNestedType appends a nested type and sets its declaring type.
func (t *TypeDef) AddNestedType(n *TypeDef) *TypeDef {
	n.DeclaringType = t
	t.NestedTypes = append(t.NestedTypes, n)

	return n
}

// OwnsMethod reports whether m is one of t's methods.
func (t *TypeDef) OwnsMethod(m *MethodDef) bool {
	for _, own := range t.Methods {
		if own == m {
			return true
		}
	}

	return false
}

// MethodDef describes a method.
type MethodDef struct {
	Name             string
	Attributes       MethodAttributes
	ReturnType       TypeRef
	Parameters       []*ParameterDef
	CustomAttributes []*AttributeUsage
	DeclaringType    *TypeDef // back-reference, not ownership
}

// AddParameter appends a parameter at the next position.
func (m *MethodDef) AddParameter(p *ParameterDef) *ParameterDef {
	p.Sequence = len(m.Parameters)
	m.Parameters = append(m.Parameters, p)

	return p
}

// FullName returns "DeclaringType::Name".
func (m *MethodDef) FullName() string {
	if m.DeclaringType == nil {
		return m.Name
	}

	return m.DeclaringType.FullName() + "::" + m.Name
}

// ParameterDef describes one method parameter.
type ParameterDef struct {
	Name          string
	Sequence      int // zero-based position in the signature
	Attributes    ParameterAttributes
	ParameterType TypeRef
}

// PropertyDef describes a property. GetMethod and SetMethod point into the
// declaring type's Methods and are nil when absent.
type PropertyDef struct {
	Name             string
	PropertyType     TypeRef
	GetMethod        *MethodDef
	SetMethod        *MethodDef
	CustomAttributes []*AttributeUsage
}

// FieldDef describes a field.
type FieldDef struct {
	Name             string
	Attributes       FieldAttributes
	FieldType        TypeRef
	CustomAttributes []*AttributeUsage
}

// AttributeUsage is one custom attribute applied to an entity.
type AttributeUsage struct {
	AttributeType TypeRef
	Arguments     []string
}

// IsResolved reports whether the attribute type was found.
func (a *AttributeUsage) IsResolved() bool {
	return a.AttributeType.IsResolved()
}

// HasUnresolved reports whether any usage has an unresolved attribute type.
func HasUnresolved(usages []*AttributeUsage) bool {
	for _, u := range usages {
		if !u.IsResolved() {
			return true
		}
	}

	return false
}
