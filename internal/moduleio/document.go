package moduleio

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"type-generator/internal/metadata"
)

// moduleDoc is the YAML form of a ModuleGraph.
type moduleDoc struct {
	Module      string    `yaml:"module"`
	CoreLibrary string    `yaml:"core_library,omitempty"`
	References  []string  `yaml:"references,omitempty,flow"`
	Types       []typeDoc `yaml:"types"`
}

type typeDoc struct {
	Namespace        string         `yaml:"namespace,omitempty"`
	Name             string         `yaml:"name"`
	Attributes       []string       `yaml:"attributes,omitempty,flow"`
	Base             typeRefDoc     `yaml:"base,omitempty"`
	CustomAttributes []attributeDoc `yaml:"custom_attributes,omitempty"`
	Fields           []fieldDoc     `yaml:"fields,omitempty"`
	Methods          []methodDoc    `yaml:"methods,omitempty"`
	Properties       []propertyDoc  `yaml:"properties,omitempty"`
	NestedTypes      []typeDoc      `yaml:"nested_types,omitempty"`
}

type attributeDoc struct {
	Type typeRefDoc `yaml:"type"`
	Args []string   `yaml:"args,omitempty,flow"`
}

type fieldDoc struct {
	Name             string         `yaml:"name"`
	Attributes       []string       `yaml:"attributes,omitempty,flow"`
	Type             typeRefDoc     `yaml:"type"`
	CustomAttributes []attributeDoc `yaml:"custom_attributes,omitempty"`
}

type methodDoc struct {
	Name             string         `yaml:"name"`
	Attributes       []string       `yaml:"attributes,omitempty,flow"`
	Returns          typeRefDoc     `yaml:"returns,omitempty"`
	Parameters       []paramDoc     `yaml:"parameters,omitempty"`
	CustomAttributes []attributeDoc `yaml:"custom_attributes,omitempty"`
}

type paramDoc struct {
	Name       string     `yaml:"name"`
	Attributes []string   `yaml:"attributes,omitempty,flow"`
	Type       typeRefDoc `yaml:"type"`
}

type propertyDoc struct {
	Name             string         `yaml:"name"`
	Type             typeRefDoc     `yaml:"type"`
	Get              string         `yaml:"get,omitempty"`
	Set              string         `yaml:"set,omitempty"`
	CustomAttributes []attributeDoc `yaml:"custom_attributes,omitempty"`
}

// typeRefDoc is a type reference in IL spelling. It also accepts the mapping
// form {scope: mscorlib, name: System.Object}.
type typeRefDoc string

// UnmarshalYAML implements custom YAML unmarshaling for typeRefDoc.
func (r *typeRefDoc) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string

		if err := node.Decode(&s); err != nil {
			return err
		}

		*r = typeRefDoc(s)

		return nil

	case yaml.MappingNode:
		var m struct {
			Scope string `yaml:"scope"`
			Name  string `yaml:"name"`
		}

		if err := node.Decode(&m); err != nil {
			return err
		}

		*r = typeRefDoc(metadata.Resolved(m.Scope, m.Name).String())

		return nil

	default:
		return fmt.Errorf("line %d: expected type reference string or mapping, got %v", node.Line, node.Kind)
	}
}

func (r typeRefDoc) ref() metadata.TypeRef {
	return metadata.ParseTypeRef(string(r))
}

func refDoc(ref metadata.TypeRef) typeRefDoc {
	return typeRefDoc(ref.String())
}

func decodeDocument(data []byte) (*moduleDoc, error) {
	var doc moduleDoc

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse module YAML: %w", err)
	}

	if doc.Module == "" {
		return nil, fmt.Errorf("module document has no module name")
	}

	return &doc, nil
}

// typeNames returns the full names of every type the document declares,
// nested types included.
func (d *moduleDoc) typeNames() map[string]struct{} {
	names := make(map[string]struct{})

	var walk func(prefix string, types []typeDoc)
	walk = func(prefix string, types []typeDoc) {
		for _, t := range types {
			full := t.fullName(prefix)
			names[full] = struct{}{}
			walk(full, t.NestedTypes)
		}
	}
	walk("", d.Types)

	return names
}

func (t typeDoc) fullName(declaring string) string {
	if declaring != "" {
		return declaring + "/" + t.Name
	}

	if t.Namespace == "" {
		return t.Name
	}

	return t.Namespace + "." + t.Name
}
