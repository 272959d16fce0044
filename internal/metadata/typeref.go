package metadata

import "strings"

// Well-known type names.
const (
	// DefaultCoreLibrary is the scope that defines System.Object when a module
	// does not name its core library.
	DefaultCoreLibrary = "mscorlib"
	// ObjectTypeName is the universal object-reference type.
	ObjectTypeName = "System.Object"
	// CompilerGeneratedAttributeName marks types emitted by the compiler.
	CompilerGeneratedAttributeName = "System.Runtime.CompilerServices.CompilerGeneratedAttribute"
)

// TypeRef references a type by scope and full name.
//
// A reference is either resolved or unresolved. Unresolved references are the
// expected residue of an upstream stripping pass: a signature type whose name
// was erased, or an attribute type that no loaded module defines. The name of
// an unresolved reference is kept (possibly empty) for diagnostics only.
//
// An empty scope denotes the module that owns the graph.
type TypeRef struct {
	scope    string
	name     string
	resolved bool
}

// Resolved returns a resolved reference. An empty name yields an unresolved reference.
func Resolved(scope, name string) TypeRef {
	if name == "" {
		return TypeRef{scope: scope}
	}

	return TypeRef{scope: scope, name: name, resolved: true}
}

// Unresolved returns an unresolved reference remembering the spelling it had.
func Unresolved(scope, name string) TypeRef {
	return TypeRef{scope: scope, name: name}
}

// Local returns a resolved reference to a type of the owning module.
func Local(name string) TypeRef {
	return Resolved("", name)
}

// Scope returns the defining module name, empty for the owning module.
func (r TypeRef) Scope() string {
	return r.scope
}

// Name returns the full type name.
func (r TypeRef) Name() string {
	return r.name
}

// IsResolved reports whether the reference points at a known type.
func (r TypeRef) IsResolved() bool {
	return r.resolved
}

// IsLocal reports whether the reference targets the owning module.
func (r TypeRef) IsLocal() bool {
	return r.scope == ""
}

// Is reports whether r is a resolved reference to the named type, ignoring scope.
func (r TypeRef) Is(name string) bool {
	return r.resolved && r.name == name
}

// String returns the IL-style spelling "[scope]Name", or "Name" for local
// references. Unresolved references with no name print as "".
func (r TypeRef) String() string {
	if r.scope == "" || r.name == "" {
		return r.name
	}

	return "[" + r.scope + "]" + r.name
}

// ParseTypeRef parses the IL-style spelling produced by String.
// The result is resolved whenever a name is present; callers that can check
// the target downgrade it with Unresolved.
func ParseTypeRef(s string) TypeRef {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		if end := strings.IndexByte(s, ']'); end > 0 {
			return Resolved(strings.TrimSpace(s[1:end]), strings.TrimSpace(s[end+1:]))
		}
	}

	return Resolved("", s)
}
