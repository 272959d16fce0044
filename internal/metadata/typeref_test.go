package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeRef_States(t *testing.T) {
	resolved := Resolved("mscorlib", "System.Int32")
	assert.True(t, resolved.IsResolved())
	assert.False(t, resolved.IsLocal())
	assert.Equal(t, "[mscorlib]System.Int32", resolved.String())

	empty := Resolved("mscorlib", "")
	assert.False(t, empty.IsResolved())

	missing := Unresolved("UnityEngine", "UnityEngine.GoneAttribute")
	assert.False(t, missing.IsResolved())
	assert.Equal(t, "UnityEngine.GoneAttribute", missing.Name())
	assert.False(t, missing.Is("UnityEngine.GoneAttribute"))

	var zero TypeRef
	assert.False(t, zero.IsResolved())
	assert.Equal(t, "", zero.String())

	local := Local("EFT.Player")
	assert.True(t, local.IsLocal())
	assert.Equal(t, "EFT.Player", local.String())
}

func TestParseTypeRef(t *testing.T) {
	tests := []struct {
		input    string
		scope    string
		name     string
		resolved bool
	}{
		{"[mscorlib]System.Object", "mscorlib", "System.Object", true},
		{"EFT.Player", "", "EFT.Player", true},
		{"EFT.Player/Nested", "", "EFT.Player/Nested", true},
		{" [UnityEngine] UnityEngine.Vector3 ", "UnityEngine", "UnityEngine.Vector3", true},
		{"", "", "", false},
		{"[mscorlib]", "mscorlib", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ref := ParseTypeRef(tt.input)
			assert.Equal(t, tt.scope, ref.Scope())
			assert.Equal(t, tt.name, ref.Name())
			assert.Equal(t, tt.resolved, ref.IsResolved())
		})
	}
}
