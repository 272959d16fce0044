package strip

import (
	"type-generator/internal/metadata"
)

// accessorRule relaxes a getter whose flags equal getter when the setter's
// flags equal setter. Matching is exact over the whole flag word.
type accessorRule struct {
	setter  metadata.MethodAttributes
	getter  metadata.MethodAttributes
	relaxed metadata.MethodAttributes
}

const accessorBits = metadata.MethodHideBySig | metadata.MethodSpecialName

// accessorRules lists the only patterns that are widened. Everything else is
// left as loaded.
var accessorRules = []accessorRule{
	{
		setter:  metadata.MethodPrivate | accessorBits,
		getter:  metadata.MethodFamily | accessorBits,
		relaxed: accessorBits,
	},
	{
		setter:  metadata.MethodPrivate | metadata.MethodStatic | accessorBits,
		getter:  metadata.MethodFamily | metadata.MethodStatic | accessorBits,
		relaxed: metadata.MethodStatic | accessorBits,
	},
}

func (a accessorRule) matches(prop *metadata.PropertyDef) bool {
	return prop.SetMethod.Attributes == a.setter && prop.GetMethod.Attributes == a.getter
}

// NormalizeAccessors relaxes the getters of t's properties that match an
// accessor rule and returns the properties it changed. Only properties with
// both accessors are considered.
func NormalizeAccessors(t *metadata.TypeDef) []*metadata.PropertyDef {
	var changed []*metadata.PropertyDef

	for _, prop := range t.Properties {
		if prop.GetMethod == nil || prop.SetMethod == nil {
			continue
		}

		for _, rule := range accessorRules {
			if rule.matches(prop) {
				prop.GetMethod.Attributes = rule.relaxed
				changed = append(changed, prop)

				break
			}
		}
	}

	return changed
}

func (r *run) normalizeAccessors(t *metadata.TypeDef) {
	for _, prop := range NormalizeAccessors(t) {
		r.record(CodeAccessorRelaxed, "getter relaxed to "+prop.GetMethod.Attributes.String(), t.FullName(), prop.Name)
	}
}
