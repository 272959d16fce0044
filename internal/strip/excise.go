package strip

import (
	"type-generator/internal/common"
	"type-generator/internal/metadata"
)

// excise removes the marked top-level types and repairs every surviving
// reference to them, including references to their nested types.
func (r *run) excise(marked []*metadata.TypeDef) {
	if len(marked) == 0 {
		return
	}

	r.graph.Types = common.Exclude(r.graph.Types, marked)

	gone := make(map[string]struct{})

	var collect func(t *metadata.TypeDef)
	collect = func(t *metadata.TypeDef) {
		gone[t.FullName()] = struct{}{}
		for _, n := range t.NestedTypes {
			collect(n)
		}
	}

	for _, t := range marked {
		collect(t)
	}

	for _, t := range r.graph.AllTypes() {
		r.repairReferences(t, gone)
	}
}

func (r *run) repairReferences(t *metadata.TypeDef, gone map[string]struct{}) {
	name := t.FullName()

	retype := func(ref *metadata.TypeRef, member, what string) {
		if !refersTo(*ref, gone) {
			return
		}

		r.warn(CodeReferenceRepaired, what+" "+ref.String()+" was excised, retyped to "+r.object.String(), name, member)
		*ref = r.object
	}

	retype(&t.BaseType, "", "base type")

	for _, f := range t.Fields {
		retype(&f.FieldType, f.Name, "field type")
	}

	for _, p := range t.Properties {
		retype(&p.PropertyType, p.Name, "property type")
	}

	for _, m := range t.Methods {
		retype(&m.ReturnType, m.Name, "return type")

		for _, p := range m.Parameters {
			retype(&p.ParameterType, m.Name, "parameter type")
		}
	}

	dropUsages := func(usages *[]*metadata.AttributeUsage, member string) {
		stale := common.Collect(*usages, func(u *metadata.AttributeUsage) bool {
			return refersTo(u.AttributeType, gone)
		})
		if len(stale) == 0 {
			return
		}

		*usages = common.Exclude(*usages, stale)

		for _, u := range stale {
			r.warn(CodeReferenceRepaired, "attribute "+u.AttributeType.String()+" was excised", name, member)
		}
	}

	dropUsages(&t.CustomAttributes, "")

	for _, f := range t.Fields {
		dropUsages(&f.CustomAttributes, f.Name)
	}

	for _, p := range t.Properties {
		dropUsages(&p.CustomAttributes, p.Name)
	}

	for _, m := range t.Methods {
		dropUsages(&m.CustomAttributes, m.Name)
	}
}

func refersTo(ref metadata.TypeRef, gone map[string]struct{}) bool {
	if !ref.IsResolved() || !ref.IsLocal() {
		return false
	}

	_, ok := gone[ref.Name()]

	return ok
}
