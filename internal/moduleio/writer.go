package moduleio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"type-generator/internal/diagnostic"
	"type-generator/internal/metadata"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Validation codes.
const (
	CodeDuplicateType     = "duplicate-type"
	CodeDuplicateNested   = "duplicate-nested-type"
	CodeDanglingAccessor  = "dangling-accessor"
	CodeAmbiguousAccessor = "ambiguous-accessor"
	CodeParameterSequence = "parameter-sequence"
	CodeDeclaringType     = "declaring-type"
)

// Writer stores module graphs as module documents.
type Writer struct {
	logger *log.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithWriterLogger sets the logger for write events.
func WithWriterLogger(logger *log.Logger) WriterOption {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWriter creates a Writer.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{logger: log.New(io.Discard)}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteModule validates graph and writes it to path. On any failure the
// destination is left as it was.
func (w *Writer) WriteModule(graph *metadata.ModuleGraph, path string) error {
	diags := Validate(graph)
	for _, d := range diags.Errors {
		w.logger.Error("invalid module graph", "code", d.Code, "type", d.Type, "member", d.Member, "error", d.Message)
	}

	if diags.HasErrors() {
		return fault("validate", path, diags.Error())
	}

	data, err := Marshal(graph)
	if err != nil {
		return fault("encode", path, err)
	}

	if err := writeAtomic(path, data); err != nil {
		return fault("write", path, err)
	}

	w.logger.Debug("module document written", "path", path, "bytes", len(data))

	return nil
}

// writeAtomic writes data to a temporary file beside path and renames it
// into place.
func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}

	if err = tmp.Sync(); err != nil {
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	if err = os.Chmod(tmp.Name(), filePerm); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// Marshal encodes graph as a module document.
func Marshal(graph *metadata.ModuleGraph) ([]byte, error) {
	doc := moduleDoc{
		Module:      graph.Name,
		CoreLibrary: graph.CoreLibrary,
		References:  graph.References,
		Types:       make([]typeDoc, 0, len(graph.Types)),
	}

	for _, t := range graph.Types {
		doc.Types = append(doc.Types, typeToDoc(t))
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("failed to encode module YAML: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func typeToDoc(t *metadata.TypeDef) typeDoc {
	d := typeDoc{
		Namespace:        t.Namespace,
		Name:             t.Name,
		Attributes:       t.Attributes.Names(),
		Base:             refDoc(t.BaseType),
		CustomAttributes: attributesToDoc(t.CustomAttributes),
	}

	for _, f := range t.Fields {
		d.Fields = append(d.Fields, fieldDoc{
			Name:             f.Name,
			Attributes:       f.Attributes.Names(),
			Type:             refDoc(f.FieldType),
			CustomAttributes: attributesToDoc(f.CustomAttributes),
		})
	}

	for _, m := range t.Methods {
		md := methodDoc{
			Name:             m.Name,
			Attributes:       m.Attributes.Names(),
			Returns:          refDoc(m.ReturnType),
			CustomAttributes: attributesToDoc(m.CustomAttributes),
		}

		for _, p := range m.Parameters {
			md.Parameters = append(md.Parameters, paramDoc{
				Name:       p.Name,
				Attributes: p.Attributes.Names(),
				Type:       refDoc(p.ParameterType),
			})
		}

		d.Methods = append(d.Methods, md)
	}

	for _, p := range t.Properties {
		d.Properties = append(d.Properties, propertyDoc{
			Name:             p.Name,
			Type:             refDoc(p.PropertyType),
			Get:              methodName(p.GetMethod),
			Set:              methodName(p.SetMethod),
			CustomAttributes: attributesToDoc(p.CustomAttributes),
		})
	}

	for _, n := range t.NestedTypes {
		d.NestedTypes = append(d.NestedTypes, typeToDoc(n))
	}

	return d
}

func attributesToDoc(usages []*metadata.AttributeUsage) []attributeDoc {
	var out []attributeDoc

	for _, u := range usages {
		out = append(out, attributeDoc{Type: refDoc(u.AttributeType), Args: u.Arguments})
	}

	return out
}

func methodName(m *metadata.MethodDef) string {
	if m == nil {
		return ""
	}

	return m.Name
}

// Validate checks that graph can be written and read back unchanged.
func Validate(graph *metadata.ModuleGraph) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if graph == nil {
		diags.AddError(CodeDeclaringType, "module graph is nil", "", "")
		return diags
	}

	seen := make(map[string]bool)

	for _, t := range graph.Types {
		name := t.FullName()
		if seen[name] {
			diags.AddError(CodeDuplicateType, "duplicate top-level type", name, "")
		}

		seen[name] = true

		if t.DeclaringType != nil {
			diags.AddError(CodeDeclaringType, "top-level type has a declaring type", name, "")
		}

		validateType(t, &diags)
	}

	return diags
}

func validateType(t *metadata.TypeDef, diags *diagnostic.Diagnostics) {
	name := t.FullName()

	for _, m := range t.Methods {
		if m.DeclaringType != t {
			diags.AddError(CodeDeclaringType, "method declaring type does not match its owner", name, m.Name)
		}

		for i, p := range m.Parameters {
			if p.Sequence != i {
				diags.AddError(CodeParameterSequence,
					fmt.Sprintf("parameter %q has position %d, want %d", p.Name, p.Sequence, i), name, m.Name)
			}
		}
	}

	validateAccessors(t, diags)

	nested := make(map[string]bool)

	for _, n := range t.NestedTypes {
		if nested[n.Name] {
			diags.AddError(CodeDuplicateNested, "duplicate nested type", name, n.Name)
		}

		nested[n.Name] = true

		if n.DeclaringType != t {
			diags.AddError(CodeDeclaringType, "nested type declaring type does not match its owner", name, n.Name)
			continue
		}

		validateType(n, diags)
	}
}

// validateAccessors checks that every accessor belongs to t and that binding
// accessors by name, as the Reader does, selects the same methods.
func validateAccessors(t *metadata.TypeDef, diags *diagnostic.Diagnostics) {
	name := t.FullName()
	claimed := make(map[*metadata.MethodDef]bool)

	check := func(p *metadata.PropertyDef, accessor *metadata.MethodDef) {
		if accessor == nil {
			return
		}

		if !t.OwnsMethod(accessor) {
			diags.AddError(CodeDanglingAccessor,
				fmt.Sprintf("accessor %s is not a method of the type", accessor.Name), name, p.Name)

			return
		}

		for _, m := range t.Methods {
			if m.Name != accessor.Name || claimed[m] {
				continue
			}

			if m != accessor {
				diags.AddError(CodeAmbiguousAccessor,
					fmt.Sprintf("accessor %s would bind to an earlier overload", accessor.Name), name, p.Name)
			}

			break
		}

		claimed[accessor] = true
	}

	for _, p := range t.Properties {
		check(p, p.GetMethod)
		check(p, p.SetMethod)
	}
}
