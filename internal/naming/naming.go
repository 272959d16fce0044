// Package naming classifies identifiers produced by the compiler.
//
// All functions are pure and total over their string input.
package naming

import "strings"

// IsSyntheticName reports whether name contains '<' or '>', the marker the
// compiler uses for closures, lambdas, backing fields and anonymous types.
func IsSyntheticName(name string) bool {
	return strings.ContainsAny(name, "<>")
}

// IsConstructorLike reports whether name contains "ctor", which covers both
// ".ctor" and ".cctor".
func IsConstructorLike(name string) bool {
	return strings.Contains(name, "ctor")
}

// IsOperatorOverload reports whether name starts with "op_".
func IsOperatorOverload(name string) bool {
	return strings.HasPrefix(name, "op_")
}

// IsDiscardableMethodName reports whether a method with this name is dropped
// from the public surface.
func IsDiscardableMethodName(name string) bool {
	return IsSyntheticName(name) || IsConstructorLike(name) || IsOperatorOverload(name)
}

// IsStructLike reports whether a type name contains "Struct". Such types are
// forced public.
func IsStructLike(name string) bool {
	return strings.Contains(name, "Struct")
}
