package graphstore

import (
	"strings"

	"type-generator/internal/metadata"
)

// Surface holds the node and relationship rows of one module graph, ready to
// be sent as UNWIND batches.
type Surface struct {
	Types      []map[string]any
	Methods    []map[string]any
	Properties []map[string]any
	Fields     []map[string]any
	Nested     []map[string]any
}

// Collect builds the rows for every type of graph, nested types included.
func Collect(graph *metadata.ModuleGraph) Surface {
	var s Surface

	for _, t := range graph.AllTypes() {
		full := t.FullName()

		s.Types = append(s.Types, map[string]any{
			"full_name":    full,
			"namespace":    namespaceOf(t),
			"name":         t.Name,
			"module":       graph.Name,
			"attributes":   t.Attributes.String(),
			"is_interface": t.IsInterface(),
			"base_type":    t.BaseType.String(),
		})

		if t.DeclaringType != nil {
			s.Nested = append(s.Nested, map[string]any{
				"child":  full,
				"parent": t.DeclaringType.FullName(),
			})
		}

		for _, m := range t.Methods {
			params := make([]string, 0, len(m.Parameters))
			for _, p := range m.Parameters {
				params = append(params, p.ParameterType.String()+" "+p.Name)
			}

			s.Methods = append(s.Methods, map[string]any{
				"key":         MethodKey(m),
				"type":        full,
				"name":        m.Name,
				"attributes":  m.Attributes.String(),
				"return_type": m.ReturnType.String(),
				"parameters":  params,
				"is_static":   m.Attributes.Has(metadata.MethodStatic),
			})
		}

		for _, p := range t.Properties {
			s.Properties = append(s.Properties, map[string]any{
				"key":           full + "::" + p.Name,
				"type":          full,
				"name":          p.Name,
				"property_type": p.PropertyType.String(),
				"getter":        accessorKey(p.GetMethod),
				"setter":        accessorKey(p.SetMethod),
			})
		}

		for _, f := range t.Fields {
			s.Fields = append(s.Fields, map[string]any{
				"key":        full + "::" + f.Name,
				"type":       full,
				"name":       f.Name,
				"attributes": f.Attributes.String(),
				"field_type": f.FieldType.String(),
			})
		}
	}

	return s
}

// MethodKey identifies a method among its overloads:
// "Declaring::Name(ParamType,ParamType)".
func MethodKey(m *metadata.MethodDef) string {
	types := make([]string, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		types = append(types, p.ParameterType.String())
	}

	return m.FullName() + "(" + strings.Join(types, ",") + ")"
}

func accessorKey(m *metadata.MethodDef) string {
	if m == nil {
		return ""
	}

	return MethodKey(m)
}

// namespaceOf returns the namespace of t, which for nested types is the
// namespace of the outermost declaring type.
func namespaceOf(t *metadata.TypeDef) string {
	for t.DeclaringType != nil {
		t = t.DeclaringType
	}

	return t.Namespace
}

// batches splits rows into chunks of at most size rows.
func batches(rows []map[string]any, size int) [][]map[string]any {
	if size <= 0 {
		size = len(rows)
	}

	var out [][]map[string]any
	for len(rows) > 0 {
		n := min(size, len(rows))
		out = append(out, rows[:n])
		rows = rows[n:]
	}

	return out
}
