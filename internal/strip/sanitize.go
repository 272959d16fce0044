package strip

import (
	"type-generator/internal/common"
	"type-generator/internal/metadata"
)

// ClearUnresolved returns usages without the entries whose attribute type is
// unresolved, and how many were dropped. Resolved usages keep their order.
// Running it on its own output is a no-op.
func ClearUnresolved(usages []*metadata.AttributeUsage) ([]*metadata.AttributeUsage, int) {
	if !metadata.HasUnresolved(usages) {
		return usages, 0
	}

	kept := common.Collect(usages, (*metadata.AttributeUsage).IsResolved)

	return kept, len(usages) - len(kept)
}

// clearUnresolved sanitizes one entity's attribute set in place and records
// every dropped usage.
func (r *run) clearUnresolved(usages *[]*metadata.AttributeUsage, typeName, member string) {
	if !metadata.HasUnresolved(*usages) {
		return
	}

	for _, u := range *usages {
		if !u.IsResolved() {
			r.record(CodeAttributeCleared, "unresolved attribute "+describeRef(u.AttributeType)+" removed", typeName, member)
		}
	}

	*usages, _ = ClearUnresolved(*usages)
}

// sanitizeType clears unresolved usages on the type itself and on its fields.
func (r *run) sanitizeType(t *metadata.TypeDef) {
	name := t.FullName()

	r.clearUnresolved(&t.CustomAttributes, name, "")

	for _, f := range t.Fields {
		r.clearUnresolved(&f.CustomAttributes, name, f.Name)
	}
}

// sweepType clears unresolved usages on the type, its properties and its
// fields, then descends into nested types.
func (r *run) sweepType(t *metadata.TypeDef) {
	r.sanitizeType(t)

	for _, p := range t.Properties {
		r.clearUnresolved(&p.CustomAttributes, t.FullName(), p.Name)
	}

	for _, n := range t.NestedTypes {
		r.sweepType(n)
	}
}

func describeRef(ref metadata.TypeRef) string {
	if s := ref.String(); s != "" {
		return s
	}

	return "<unnamed>"
}
