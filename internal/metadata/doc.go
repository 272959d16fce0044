// Package metadata provides the in-memory model of a managed module's
// type-metadata graph.
//
// The graph is built once by a reader, mutated in place by the stripping
// passes and handed once to a writer. Removal always excises an entity from
// its owning collection; there are no tombstones.
//
// Key types:
//   - ModuleGraph: root container, owns the ordered top-level TypeDefs
//   - TypeDef: a declared class, struct or interface with its members
//   - MethodDef, PropertyDef, FieldDef, ParameterDef: members of a TypeDef
//   - AttributeUsage: a custom attribute applied to an entity
//   - TypeRef: a type reference that is either resolved or unresolved
package metadata
