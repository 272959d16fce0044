package strip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"type-generator/internal/metadata"
)

func TestNormalizeAccessors_ProtectedGetterPrivateSetter(t *testing.T) {
	foo := &metadata.TypeDef{Name: "Foo"}
	bar := addProperty(foo, "Bar", newMethod("get_Bar", getterFlags), newMethod("set_Bar", setterFlags))

	changed := NormalizeAccessors(foo)

	require.Len(t, changed, 1)
	assert.Same(t, bar, changed[0])
	assert.Equal(t, metadata.MethodHideBySig|metadata.MethodSpecialName, bar.GetMethod.Attributes)
	assert.Equal(t, setterFlags, bar.SetMethod.Attributes)
}

func TestNormalizeAccessors_Static(t *testing.T) {
	foo := &metadata.TypeDef{Name: "Foo"}
	bar := addProperty(foo, "Instance",
		newMethod("get_Instance", getterFlags|metadata.MethodStatic),
		newMethod("set_Instance", setterFlags|metadata.MethodStatic))

	NormalizeAccessors(foo)

	assert.Equal(t, metadata.MethodStatic|metadata.MethodHideBySig|metadata.MethodSpecialName, bar.GetMethod.Attributes)
	assert.Equal(t, setterFlags|metadata.MethodStatic, bar.SetMethod.Attributes)
}

func TestNormalizeAccessors_OtherPatternsUntouched(t *testing.T) {
	tests := []struct {
		name   string
		getter metadata.MethodAttributes
		setter metadata.MethodAttributes
	}{
		{"public pair", publicFlags | metadata.MethodSpecialName, publicFlags | metadata.MethodSpecialName},
		{"private getter", setterFlags, setterFlags},
		{"virtual protected getter", getterFlags | metadata.MethodVirtual, setterFlags},
		{"assembly setter", getterFlags, metadata.MethodAssembly | metadata.MethodHideBySig | metadata.MethodSpecialName},
		{"static getter only", getterFlags | metadata.MethodStatic, setterFlags},
		{"static setter only", getterFlags, setterFlags | metadata.MethodStatic},
		{"missing hide by sig", metadata.MethodFamily | metadata.MethodSpecialName, setterFlags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			foo := &metadata.TypeDef{Name: "Foo"}
			prop := addProperty(foo, "Bar", newMethod("get_Bar", tt.getter), newMethod("set_Bar", tt.setter))

			assert.Empty(t, NormalizeAccessors(foo))
			assert.Equal(t, tt.getter, prop.GetMethod.Attributes)
			assert.Equal(t, tt.setter, prop.SetMethod.Attributes)
		})
	}
}

func TestNormalizeAccessors_RequiresBothAccessors(t *testing.T) {
	foo := &metadata.TypeDef{Name: "Foo"}
	getOnly := addProperty(foo, "A", newMethod("get_A", getterFlags), nil)
	setOnly := addProperty(foo, "B", nil, newMethod("set_B", setterFlags))

	assert.Empty(t, NormalizeAccessors(foo))
	assert.Equal(t, getterFlags, getOnly.GetMethod.Attributes)
	assert.Equal(t, setterFlags, setOnly.SetMethod.Attributes)
}

func TestAccessorRules_AreExactMatches(t *testing.T) {
	for _, rule := range accessorRules {
		assert.Equal(t, metadata.MethodPrivate, rule.setter.Access())
		assert.Equal(t, metadata.MethodFamily, rule.getter.Access())
		assert.Equal(t, metadata.MethodCompilerControlled, rule.relaxed.Access())
		assert.Equal(t, rule.getter&^metadata.MethodMemberAccessMask, rule.relaxed)
	}
}
