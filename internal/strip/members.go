package strip

import (
	"fmt"

	"type-generator/internal/common"
	"type-generator/internal/metadata"
	"type-generator/internal/naming"
)

// PlaceholderName returns the name given to a repaired parameter. It depends
// only on the parameter position, so repeated runs agree.
func PlaceholderName(sequence int) string {
	return fmt.Sprintf("P_%d", sequence)
}

// transformType applies the member-level passes to t and its nested types.
func (r *run) transformType(t *metadata.TypeDef) {
	if naming.IsStructLike(t.Name) {
		r.forcePublic(t)
	}

	// Interfaces keep their own members; types nested in them are still filtered.
	if !t.IsInterface() {
		r.normalizeAccessors(t)
		r.filterMembers(t)
	}

	for _, nested := range t.NestedTypes {
		r.transformType(nested)
	}
}

// forcePublic widens the visibility of t, keeping its other flags.
func (r *run) forcePublic(t *metadata.TypeDef) {
	want := metadata.TypePublic
	if t.IsNested() {
		want = metadata.TypeNestedPublic
	}

	if t.Attributes.Visibility() == want {
		return
	}

	t.Attributes = t.Attributes.WithVisibility(want)
	r.record(CodeVisibilityForced, "visibility forced to "+t.Attributes.String(), t.FullName(), "")
}

func (r *run) filterMembers(t *metadata.TypeDef) {
	for _, m := range t.Methods {
		r.repairParameters(m)
	}

	r.removeMethods(t)

	if t.IsNested() {
		r.removeSyntheticFields(t)
	}

	for _, f := range t.Fields {
		r.clearUnresolved(&f.CustomAttributes, t.FullName(), f.Name)
	}
}

// repairParameters replaces every parameter with an unresolved type by a
// placeholder at the same position with the same flags.
func (r *run) repairParameters(m *metadata.MethodDef) {
	for i, p := range m.Parameters {
		if p.ParameterType.IsResolved() {
			continue
		}

		m.Parameters[i] = &metadata.ParameterDef{
			Name:          PlaceholderName(p.Sequence),
			Sequence:      p.Sequence,
			Attributes:    p.Attributes,
			ParameterType: r.object,
		}

		r.record(CodeParameterRepaired,
			fmt.Sprintf("parameter %d %q retyped to %s", p.Sequence, p.Name, r.object),
			typeNameOf(m), m.Name)
	}
}

// removeMethods drops methods with discardable names and unlinks them from
// the properties that used them as accessors.
func (r *run) removeMethods(t *metadata.TypeDef) {
	removed := common.Collect(t.Methods, func(m *metadata.MethodDef) bool {
		return naming.IsDiscardableMethodName(m.Name)
	})
	if len(removed) == 0 {
		return
	}

	t.Methods = common.Exclude(t.Methods, removed)

	for _, m := range removed {
		r.record(CodeMethodRemoved, "discardable method name", t.FullName(), m.Name)
	}

	r.unlinkAccessors(t, removed)
}

// unlinkAccessors clears property links to removed methods and drops
// properties left without any accessor.
func (r *run) unlinkAccessors(t *metadata.TypeDef, removed []*metadata.MethodDef) {
	gone := make(map[*metadata.MethodDef]struct{}, len(removed))
	for _, m := range removed {
		gone[m] = struct{}{}
	}

	for _, p := range t.Properties {
		if _, ok := gone[p.GetMethod]; ok {
			p.GetMethod = nil
		}

		if _, ok := gone[p.SetMethod]; ok {
			p.SetMethod = nil
		}
	}

	orphans := common.Collect(t.Properties, func(p *metadata.PropertyDef) bool {
		return p.GetMethod == nil && p.SetMethod == nil
	})
	if len(orphans) == 0 {
		return
	}

	t.Properties = common.Exclude(t.Properties, orphans)

	for _, p := range orphans {
		r.record(CodePropertyRemoved, "no accessor left", t.FullName(), p.Name)
	}
}

// removeSyntheticFields drops compiler-generated fields of a nested type.
func (r *run) removeSyntheticFields(t *metadata.TypeDef) {
	removed := common.Collect(t.Fields, func(f *metadata.FieldDef) bool {
		return naming.IsSyntheticName(f.Name)
	})
	if len(removed) == 0 {
		return
	}

	t.Fields = common.Exclude(t.Fields, removed)

	for _, f := range removed {
		r.record(CodeFieldRemoved, "synthetic field name", t.FullName(), f.Name)
	}
}

func typeNameOf(m *metadata.MethodDef) string {
	if m.DeclaringType == nil {
		return ""
	}

	return m.DeclaringType.FullName()
}
