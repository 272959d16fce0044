package strip

import (
	"type-generator/internal/common"
	"type-generator/internal/metadata"
	"type-generator/internal/naming"
)

// Removal reasons reported for excised types.
const (
	ReasonSyntheticName     = "synthetic name"
	ReasonCompilerGenerated = "compiler generated"
)

// RemovalReason reports whether the top-level type t is dropped from the
// surface, and why.
//
// Only types whose attribute usages all resolve are inspected for the
// compiler-generated marker; a type with an unresolved usage keeps its place.
// Interfaces are only subject to the synthetic-name rule.
func RemovalReason(t *metadata.TypeDef) (string, bool) {
	if naming.IsSyntheticName(t.Name) {
		return ReasonSyntheticName, true
	}

	if t.IsInterface() || metadata.HasUnresolved(t.CustomAttributes) {
		return "", false
	}

	for _, u := range t.CustomAttributes {
		if isCompilerGeneratedMarker(u) {
			return ReasonCompilerGenerated, true
		}
	}

	return "", false
}

func isCompilerGeneratedMarker(u *metadata.AttributeUsage) bool {
	return u.AttributeType.Is(metadata.CompilerGeneratedAttributeName)
}

// settleExemptMarker drops the compiler-generated marker from a type that
// kept its place only because one of its usages is unresolved. Once the
// sweep clears that usage the marker alone would remove the type on the next
// run, so the keep decision is made final here.
func (r *run) settleExemptMarker(t *metadata.TypeDef) {
	if t.IsInterface() || !metadata.HasUnresolved(t.CustomAttributes) {
		return
	}

	markers := common.Collect(t.CustomAttributes, isCompilerGeneratedMarker)
	if len(markers) == 0 {
		return
	}

	t.CustomAttributes = common.Exclude(t.CustomAttributes, markers)
	r.record(CodeAttributeCleared, "compiler-generated marker dropped from kept type", t.FullName(), "")
}
