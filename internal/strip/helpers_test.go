package strip

import (
	"github.com/davecgh/go-spew/spew"

	"type-generator/internal/metadata"
)

var (
	objectRef = metadata.Resolved("mscorlib", metadata.ObjectTypeName)
	int32Ref  = metadata.Resolved("mscorlib", "System.Int32")
	voidRef   = metadata.Resolved("mscorlib", "System.Void")
	lostRef   = metadata.Unresolved("", "")

	getterFlags = metadata.MethodFamily | metadata.MethodHideBySig | metadata.MethodSpecialName
	setterFlags = metadata.MethodPrivate | metadata.MethodHideBySig | metadata.MethodSpecialName
	publicFlags = metadata.MethodPublic | metadata.MethodHideBySig
)

// dumper prints graphs without pointer addresses so dumps of equal graphs compare equal.
var dumper = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newMethod(name string, attrs metadata.MethodAttributes, params ...*metadata.ParameterDef) *metadata.MethodDef {
	m := &metadata.MethodDef{Name: name, Attributes: attrs, ReturnType: voidRef}
	for _, p := range params {
		m.AddParameter(p)
	}

	return m
}

func newParam(name string, ref metadata.TypeRef) *metadata.ParameterDef {
	return &metadata.ParameterDef{Name: name, ParameterType: ref}
}

func usage(scope, name string) *metadata.AttributeUsage {
	return &metadata.AttributeUsage{AttributeType: metadata.Resolved(scope, name)}
}

func lostUsage(name string) *metadata.AttributeUsage {
	return &metadata.AttributeUsage{AttributeType: metadata.Unresolved("UnityEngine", name)}
}

func compilerGenerated() *metadata.AttributeUsage {
	return usage("mscorlib", metadata.CompilerGeneratedAttributeName)
}

// addProperty adds a property backed by getter and setter (either may be nil).
func addProperty(t *metadata.TypeDef, name string, getter, setter *metadata.MethodDef) *metadata.PropertyDef {
	if getter != nil {
		t.AddMethod(getter)
	}

	if setter != nil {
		t.AddMethod(setter)
	}

	return t.AddProperty(&metadata.PropertyDef{
		Name:         name,
		PropertyType: int32Ref,
		GetMethod:    getter,
		SetMethod:    setter,
	})
}

func methodNames(t *metadata.TypeDef) []string {
	var names []string
	for _, m := range t.Methods {
		names = append(names, m.Name)
	}

	return names
}

func fieldNames(t *metadata.TypeDef) []string {
	var names []string
	for _, f := range t.Fields {
		names = append(names, f.Name)
	}

	return names
}

func typeNames(g *metadata.ModuleGraph) []string {
	var names []string
	for _, t := range g.Types {
		names = append(names, t.FullName())
	}

	return names
}

// newFixture builds a module shaped like the output of an obfuscating
// stripper: synthetic closures, erased parameter types, dangling attributes.
func newFixture() *metadata.ModuleGraph {
	g := metadata.NewModuleGraph("Assembly-CSharp")

	player := g.AddType(&metadata.TypeDef{
		Namespace:  "EFT",
		Name:       "Player",
		Attributes: metadata.TypePublic | metadata.TypeBeforeFieldInit,
		BaseType:   objectRef,
		CustomAttributes: []*metadata.AttributeUsage{
			usage("mscorlib", "System.SerializableAttribute"),
			lostUsage("UnityEngine.RequireComponent"),
		},
	})
	player.AddMethod(newMethod(".ctor", publicFlags|metadata.MethodSpecialName|metadata.MethodRTSpecialName))
	player.AddMethod(newMethod(".cctor", metadata.MethodPrivate|metadata.MethodStatic|metadata.MethodSpecialName))
	player.AddMethod(newMethod("op_Equality", publicFlags|metadata.MethodStatic|metadata.MethodSpecialName,
		newParam("a", metadata.Local("EFT.Player")), newParam("b", metadata.Local("EFT.Player"))))
	player.AddMethod(newMethod("<Awake>b__12_0", metadata.MethodPrivate|metadata.MethodHideBySig))
	player.AddMethod(newMethod("Update", publicFlags,
		newParam("deltaTime", metadata.Resolved("mscorlib", "System.Single")),
		&metadata.ParameterDef{Name: "GClass99", Attributes: metadata.ParamOptional, ParameterType: lostRef},
		newParam("", lostRef)))
	player.AddMethod(newMethod("Tick", publicFlags, newParam("state", metadata.Local("GClass10"))))

	health := addProperty(player, "Health",
		newMethod("get_Health", getterFlags),
		newMethod("set_Health", setterFlags, newParam("value", int32Ref)))
	health.CustomAttributes = []*metadata.AttributeUsage{lostUsage("Gone")}
	addProperty(player, "Vector", newMethod("get_Vector", publicFlags|metadata.MethodSpecialName), nil)

	player.AddField(&metadata.FieldDef{
		Name:       "health",
		Attributes: metadata.FieldPrivate,
		FieldType:  int32Ref,
		CustomAttributes: []*metadata.AttributeUsage{
			usage("UnityEngine", "UnityEngine.SerializeField"),
			lostUsage("Obfuscated.Attr"),
		},
	})
	player.AddField(&metadata.FieldDef{Name: "<Name>k__BackingField", Attributes: metadata.FieldPrivate, FieldType: objectRef})
	player.AddField(&metadata.FieldDef{Name: "state", Attributes: metadata.FieldPublic, FieldType: metadata.Local("GClass10")})

	closure := player.AddNestedType(&metadata.TypeDef{
		Name:             "<>c",
		Attributes:       metadata.TypeNestedPrivate | metadata.TypeSealed,
		CustomAttributes: []*metadata.AttributeUsage{compilerGenerated()},
	})
	closure.AddField(&metadata.FieldDef{Name: "<>9", Attributes: metadata.FieldPublic | metadata.FieldStatic, FieldType: metadata.Local("EFT.Player/<>c")})
	closure.AddField(&metadata.FieldDef{Name: "counter", Attributes: metadata.FieldPublic, FieldType: int32Ref})
	closure.AddMethod(newMethod(".cctor", metadata.MethodPrivate|metadata.MethodStatic|metadata.MethodSpecialName))
	closure.AddMethod(newMethod("<Start>b__0", metadata.MethodAssembly|metadata.MethodHideBySig, newParam("x", lostRef)))
	closure.AddMethod(newMethod("Run", publicFlags, newParam("x", lostRef)))

	player.AddNestedType(&metadata.TypeDef{Name: "GStruct12", Attributes: metadata.TypeNestedPrivate | metadata.TypeSequentialLayout})

	g.AddType(&metadata.TypeDef{Name: "<PrivateImplementationDetails>", Attributes: metadata.TypeSealed})

	g.AddType(&metadata.TypeDef{
		Name:             "GClass10",
		Attributes:       metadata.TypePublic,
		CustomAttributes: []*metadata.AttributeUsage{compilerGenerated()},
	}).AddNestedType(&metadata.TypeDef{Name: "Inner", Attributes: metadata.TypeNestedPublic})

	g.AddType(&metadata.TypeDef{
		Name:             "GClass11",
		Attributes:       metadata.TypePublic,
		CustomAttributes: []*metadata.AttributeUsage{compilerGenerated(), lostUsage("Lost")},
	})

	usable := g.AddType(&metadata.TypeDef{
		Namespace:        "EFT",
		Name:             "IUsable",
		Attributes:       metadata.TypePublic | metadata.TypeInterface | metadata.TypeAbstract,
		CustomAttributes: []*metadata.AttributeUsage{compilerGenerated()},
	})
	usable.AddMethod(newMethod("Use", metadata.MethodPublic|metadata.MethodAbstract|metadata.MethodVirtual, newParam("x", lostRef)))

	g.AddType(&metadata.TypeDef{Namespace: "EFT", Name: "<>IHidden", Attributes: metadata.TypeInterface | metadata.TypeAbstract})

	g.AddType(&metadata.TypeDef{Name: "GStruct7", Attributes: metadata.TypeNotPublic | metadata.TypeSequentialLayout})

	return g
}
