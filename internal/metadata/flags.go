package metadata

import (
	"fmt"
	"strings"
)

type flagValue interface {
	~uint16 | ~uint32
}

type flagName[T flagValue] struct {
	value T
	name  string
}

// flagTable names the values of one attribute word. Values under mask form an
// enumeration (exactly one applies); bits are independent.
type flagTable[T flagValue] struct {
	mask   T
	access []flagName[T]
	bits   []flagName[T]
}

func (ft flagTable[T]) names(v T) []string {
	var out []string

	if access := v & ft.mask; access != 0 {
		for _, a := range ft.access {
			if a.value == access {
				out = append(out, a.name)
				break
			}
		}
	}

	for _, b := range ft.bits {
		if v&b.value == b.value {
			out = append(out, b.name)
		}
	}

	return out
}

func (ft flagTable[T]) parse(names []string) (T, error) {
	var v T

	seenAccess := ""

	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}

		if a, ok := ft.lookup(ft.access, name); ok {
			if seenAccess != "" && seenAccess != name {
				return 0, fmt.Errorf("conflicting access flags %q and %q", seenAccess, name)
			}

			seenAccess = name
			v = v&^ft.mask | a

			continue
		}

		if b, ok := ft.lookup(ft.bits, name); ok {
			v |= b

			continue
		}

		return 0, fmt.Errorf("unknown flag %q", raw)
	}

	return v, nil
}

func (ft flagTable[T]) lookup(list []flagName[T], name string) (T, bool) {
	for _, f := range list {
		if f.name == name {
			return f.value, true
		}
	}

	return 0, false
}

func (ft flagTable[T]) format(v T) string {
	names := ft.names(v)
	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, "|")
}

// TypeAttributes are the flags of a TypeDef.
type TypeAttributes uint32

const (
	TypeNotPublic         TypeAttributes = 0x0
	TypePublic            TypeAttributes = 0x1
	TypeNestedPublic      TypeAttributes = 0x2
	TypeNestedPrivate     TypeAttributes = 0x3
	TypeNestedFamily      TypeAttributes = 0x4
	TypeNestedAssembly    TypeAttributes = 0x5
	TypeNestedFamANDAssem TypeAttributes = 0x6
	TypeNestedFamORAssem  TypeAttributes = 0x7
	TypeVisibilityMask    TypeAttributes = 0x7

	TypeSequentialLayout TypeAttributes = 0x8
	TypeExplicitLayout   TypeAttributes = 0x10
	TypeInterface        TypeAttributes = 0x20
	TypeAbstract         TypeAttributes = 0x80
	TypeSealed           TypeAttributes = 0x100
	TypeSpecialName      TypeAttributes = 0x400
	TypeRTSpecialName    TypeAttributes = 0x800
	TypeImport           TypeAttributes = 0x1000
	TypeSerializable     TypeAttributes = 0x2000
	TypeUnicodeClass     TypeAttributes = 0x10000
	TypeAutoClass        TypeAttributes = 0x20000
	TypeHasSecurity      TypeAttributes = 0x40000
	TypeBeforeFieldInit  TypeAttributes = 0x100000
)

var typeFlags = flagTable[TypeAttributes]{
	mask: TypeVisibilityMask,
	access: []flagName[TypeAttributes]{
		{TypePublic, "public"},
		{TypeNestedPublic, "nested_public"},
		{TypeNestedPrivate, "nested_private"},
		{TypeNestedFamily, "nested_family"},
		{TypeNestedAssembly, "nested_assembly"},
		{TypeNestedFamANDAssem, "nested_fam_and_assem"},
		{TypeNestedFamORAssem, "nested_fam_or_assem"},
	},
	bits: []flagName[TypeAttributes]{
		{TypeSequentialLayout, "sequential_layout"},
		{TypeExplicitLayout, "explicit_layout"},
		{TypeInterface, "interface"},
		{TypeAbstract, "abstract"},
		{TypeSealed, "sealed"},
		{TypeSpecialName, "special_name"},
		{TypeRTSpecialName, "rt_special_name"},
		{TypeImport, "import"},
		{TypeSerializable, "serializable"},
		{TypeUnicodeClass, "unicode_class"},
		{TypeAutoClass, "auto_class"},
		{TypeHasSecurity, "has_security"},
		{TypeBeforeFieldInit, "before_field_init"},
	},
}

// Visibility returns the visibility enumeration value.
func (a TypeAttributes) Visibility() TypeAttributes {
	return a & TypeVisibilityMask
}

// WithVisibility replaces the visibility, keeping every other flag.
func (a TypeAttributes) WithVisibility(v TypeAttributes) TypeAttributes {
	return a&^TypeVisibilityMask | v&TypeVisibilityMask
}

// Names returns the flag names set in a.
func (a TypeAttributes) Names() []string {
	return typeFlags.names(a)
}

// String returns the flag names joined with "|".
func (a TypeAttributes) String() string {
	return typeFlags.format(a)
}

// ParseTypeAttributes builds TypeAttributes from flag names.
func ParseTypeAttributes(names []string) (TypeAttributes, error) {
	return typeFlags.parse(names)
}

// MethodAttributes are the flags of a MethodDef. The member access values are
// an enumeration under MethodMemberAccessMask; the rest are independent bits.
type MethodAttributes uint16

const (
	MethodCompilerControlled MethodAttributes = 0x0
	MethodPrivate            MethodAttributes = 0x1
	MethodFamANDAssem        MethodAttributes = 0x2
	MethodAssembly           MethodAttributes = 0x3
	MethodFamily             MethodAttributes = 0x4
	MethodFamORAssem         MethodAttributes = 0x5
	MethodPublic             MethodAttributes = 0x6
	MethodMemberAccessMask   MethodAttributes = 0x7

	MethodStatic           MethodAttributes = 0x10
	MethodFinal            MethodAttributes = 0x20
	MethodVirtual          MethodAttributes = 0x40
	MethodHideBySig        MethodAttributes = 0x80
	MethodNewSlot          MethodAttributes = 0x100
	MethodCheckAccess      MethodAttributes = 0x200
	MethodAbstract         MethodAttributes = 0x400
	MethodSpecialName      MethodAttributes = 0x800
	MethodRTSpecialName    MethodAttributes = 0x1000
	MethodPInvokeImpl      MethodAttributes = 0x2000
	MethodHasSecurity      MethodAttributes = 0x4000
	MethodRequireSecObject MethodAttributes = 0x8000
)

var memberAccessNames = []string{
	"private", "fam_and_assem", "assembly", "family", "fam_or_assem", "public",
}

var methodFlags = flagTable[MethodAttributes]{
	mask: MethodMemberAccessMask,
	access: []flagName[MethodAttributes]{
		{MethodPrivate, memberAccessNames[0]},
		{MethodFamANDAssem, memberAccessNames[1]},
		{MethodAssembly, memberAccessNames[2]},
		{MethodFamily, memberAccessNames[3]},
		{MethodFamORAssem, memberAccessNames[4]},
		{MethodPublic, memberAccessNames[5]},
	},
	bits: []flagName[MethodAttributes]{
		{MethodStatic, "static"},
		{MethodFinal, "final"},
		{MethodVirtual, "virtual"},
		{MethodHideBySig, "hide_by_sig"},
		{MethodNewSlot, "new_slot"},
		{MethodCheckAccess, "check_access_on_override"},
		{MethodAbstract, "abstract"},
		{MethodSpecialName, "special_name"},
		{MethodRTSpecialName, "rt_special_name"},
		{MethodPInvokeImpl, "pinvoke_impl"},
		{MethodHasSecurity, "has_security"},
		{MethodRequireSecObject, "require_sec_object"},
	},
}

// Access returns the member access enumeration value.
func (a MethodAttributes) Access() MethodAttributes {
	return a & MethodMemberAccessMask
}

// Has reports whether every bit of flag is set.
func (a MethodAttributes) Has(flag MethodAttributes) bool {
	return a&flag == flag
}

// Names returns the flag names set in a.
func (a MethodAttributes) Names() []string {
	return methodFlags.names(a)
}

// String returns the flag names joined with "|".
func (a MethodAttributes) String() string {
	return methodFlags.format(a)
}

// ParseMethodAttributes builds MethodAttributes from flag names.
func ParseMethodAttributes(names []string) (MethodAttributes, error) {
	return methodFlags.parse(names)
}

// FieldAttributes are the flags of a FieldDef.
type FieldAttributes uint16

const (
	FieldPrivate         FieldAttributes = 0x1
	FieldFamANDAssem     FieldAttributes = 0x2
	FieldAssembly        FieldAttributes = 0x3
	FieldFamily          FieldAttributes = 0x4
	FieldFamORAssem      FieldAttributes = 0x5
	FieldPublic          FieldAttributes = 0x6
	FieldAccessMask      FieldAttributes = 0x7
	FieldStatic          FieldAttributes = 0x10
	FieldInitOnly        FieldAttributes = 0x20
	FieldLiteral         FieldAttributes = 0x40
	FieldNotSerialized   FieldAttributes = 0x80
	FieldHasFieldRVA     FieldAttributes = 0x100
	FieldSpecialName     FieldAttributes = 0x200
	FieldRTSpecialName   FieldAttributes = 0x400
	FieldHasFieldMarshal FieldAttributes = 0x1000
	FieldPInvokeImpl     FieldAttributes = 0x2000
	FieldHasDefault      FieldAttributes = 0x8000
)

var fieldFlags = flagTable[FieldAttributes]{
	mask: FieldAccessMask,
	access: []flagName[FieldAttributes]{
		{FieldPrivate, memberAccessNames[0]},
		{FieldFamANDAssem, memberAccessNames[1]},
		{FieldAssembly, memberAccessNames[2]},
		{FieldFamily, memberAccessNames[3]},
		{FieldFamORAssem, memberAccessNames[4]},
		{FieldPublic, memberAccessNames[5]},
	},
	bits: []flagName[FieldAttributes]{
		{FieldStatic, "static"},
		{FieldInitOnly, "init_only"},
		{FieldLiteral, "literal"},
		{FieldNotSerialized, "not_serialized"},
		{FieldHasFieldRVA, "has_field_rva"},
		{FieldSpecialName, "special_name"},
		{FieldRTSpecialName, "rt_special_name"},
		{FieldHasFieldMarshal, "has_field_marshal"},
		{FieldPInvokeImpl, "pinvoke_impl"},
		{FieldHasDefault, "has_default"},
	},
}

// Names returns the flag names set in a.
func (a FieldAttributes) Names() []string {
	return fieldFlags.names(a)
}

// String returns the flag names joined with "|".
func (a FieldAttributes) String() string {
	return fieldFlags.format(a)
}

// ParseFieldAttributes builds FieldAttributes from flag names.
func ParseFieldAttributes(names []string) (FieldAttributes, error) {
	return fieldFlags.parse(names)
}

// ParameterAttributes are the flags of a ParameterDef.
type ParameterAttributes uint16

const (
	ParamIn              ParameterAttributes = 0x1
	ParamOut             ParameterAttributes = 0x2
	ParamLcid            ParameterAttributes = 0x4
	ParamRetval          ParameterAttributes = 0x8
	ParamOptional        ParameterAttributes = 0x10
	ParamHasDefault      ParameterAttributes = 0x1000
	ParamHasFieldMarshal ParameterAttributes = 0x2000
)

var paramFlags = flagTable[ParameterAttributes]{
	bits: []flagName[ParameterAttributes]{
		{ParamIn, "in"},
		{ParamOut, "out"},
		{ParamLcid, "lcid"},
		{ParamRetval, "retval"},
		{ParamOptional, "optional"},
		{ParamHasDefault, "has_default"},
		{ParamHasFieldMarshal, "has_field_marshal"},
	},
}

// Names returns the flag names set in a.
func (a ParameterAttributes) Names() []string {
	return paramFlags.names(a)
}

// String returns the flag names joined with "|".
func (a ParameterAttributes) String() string {
	return paramFlags.format(a)
}

// ParseParameterAttributes builds ParameterAttributes from flag names.
func ParseParameterAttributes(names []string) (ParameterAttributes, error) {
	return paramFlags.parse(names)
}
