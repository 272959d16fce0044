package moduleio

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"type-generator/internal/common"
	"type-generator/internal/metadata"
)

// Reader loads module documents into module graphs.
type Reader struct {
	resolver    *resolver
	coreLibrary string
	logger      *log.Logger
}

// ReaderOption configures a Reader.
type ReaderOption func(*readerConfig)

type readerConfig struct {
	searchDirs  []string
	cacheSize   int
	coreLibrary string
	logger      *log.Logger
}

// WithSearchDirs sets the directories searched, in order, for the documents
// of referenced modules.
func WithSearchDirs(dirs ...string) ReaderOption {
	return func(c *readerConfig) {
		c.searchDirs = append(c.searchDirs, dirs...)
	}
}

// WithCacheSize bounds the number of dependency modules kept indexed.
func WithCacheSize(n int) ReaderOption {
	return func(c *readerConfig) {
		c.cacheSize = n
	}
}

// WithCoreLibrary sets the core library assumed for documents that do not
// name one.
func WithCoreLibrary(name string) ReaderOption {
	return func(c *readerConfig) {
		if name != "" {
			c.coreLibrary = name
		}
	}
}

// WithReaderLogger sets the logger for resolution events.
func WithReaderLogger(logger *log.Logger) ReaderOption {
	return func(c *readerConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewReader creates a Reader.
func NewReader(opts ...ReaderOption) (*Reader, error) {
	cfg := readerConfig{
		cacheSize:   DefaultCacheSize,
		coreLibrary: metadata.DefaultCoreLibrary,
		logger:      log.New(io.Discard),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	res, err := newResolver(cfg.searchDirs, cfg.cacheSize, cfg.logger)
	if err != nil {
		return nil, fmt.Errorf("creating dependency cache: %w", err)
	}

	return &Reader{resolver: res, coreLibrary: cfg.coreLibrary, logger: cfg.logger}, nil
}

// ReadModule loads and parses the module document at path.
func (r *Reader) ReadModule(path string) (*metadata.ModuleGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fault("read", path, err)
	}

	graph, err := r.Parse(data)
	if err != nil {
		return nil, fault("parse", path, err)
	}

	return graph, nil
}

// Parse builds a module graph from module document data.
func (r *Reader) Parse(data []byte) (*metadata.ModuleGraph, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}

	b := &builder{
		doc:      doc,
		local:    doc.typeNames(),
		resolver: r.resolver,
		graph:    metadata.NewModuleGraph(doc.Module),
	}

	b.graph.CoreLibrary = common.FirstNonEmpty(doc.CoreLibrary, r.coreLibrary)
	b.graph.References = doc.References

	for i := range doc.Types {
		t, err := b.buildType(&doc.Types[i], nil)
		if err != nil {
			return nil, err
		}

		b.graph.AddType(t)
	}

	if b.unresolved > 0 {
		r.logger.Debug("unresolved attribute types", "module", doc.Module, "count", b.unresolved)
	}

	return b.graph, nil
}

// builder turns one document into a graph.
type builder struct {
	doc        *moduleDoc
	local      map[string]struct{}
	resolver   *resolver
	graph      *metadata.ModuleGraph
	unresolved int
}

// signature returns a signature reference. Scopes naming the module itself
// are folded into local references.
func (b *builder) signature(doc typeRefDoc) metadata.TypeRef {
	ref := doc.ref()
	if ref.Scope() == b.doc.Module {
		if !ref.IsResolved() {
			return metadata.Unresolved("", ref.Name())
		}

		return metadata.Local(ref.Name())
	}

	return ref
}

// attributeType returns an attribute-type reference, unresolved unless the
// defining module is known to declare it.
func (b *builder) attributeType(doc typeRefDoc) metadata.TypeRef {
	ref := b.signature(doc)
	if !ref.IsResolved() {
		b.unresolved++
		return ref
	}

	var found bool
	if ref.IsLocal() {
		_, found = b.local[ref.Name()]
	} else {
		found = b.resolver.defines(ref.Scope(), ref.Name())
	}

	if !found {
		b.unresolved++
		return metadata.Unresolved(ref.Scope(), ref.Name())
	}

	return ref
}

func (b *builder) usages(docs []attributeDoc) []*metadata.AttributeUsage {
	if common.IsEmpty(docs) {
		return nil
	}

	out := make([]*metadata.AttributeUsage, 0, len(docs))
	for _, d := range docs {
		out = append(out, &metadata.AttributeUsage{
			AttributeType: b.attributeType(d.Type),
			Arguments:     d.Args,
		})
	}

	return out
}

func (b *builder) buildType(doc *typeDoc, declaring *metadata.TypeDef) (*metadata.TypeDef, error) {
	attrs, err := metadata.ParseTypeAttributes(doc.Attributes)
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", doc.fullName(fullNameOf(declaring)), err)
	}

	t := &metadata.TypeDef{
		Namespace:        doc.Namespace,
		Name:             doc.Name,
		Attributes:       attrs,
		BaseType:         b.signature(doc.Base),
		CustomAttributes: b.usages(doc.CustomAttributes),
		DeclaringType:    declaring,
	}

	for _, fd := range doc.Fields {
		fattrs, err := metadata.ParseFieldAttributes(fd.Attributes)
		if err != nil {
			return nil, fmt.Errorf("field %s::%s: %w", t.FullName(), fd.Name, err)
		}

		t.AddField(&metadata.FieldDef{
			Name:             fd.Name,
			Attributes:       fattrs,
			FieldType:        b.signature(fd.Type),
			CustomAttributes: b.usages(fd.CustomAttributes),
		})
	}

	for _, md := range doc.Methods {
		m, err := b.buildMethod(md, t)
		if err != nil {
			return nil, err
		}

		t.AddMethod(m)
	}

	if err := b.bindProperties(doc.Properties, t); err != nil {
		return nil, err
	}

	for i := range doc.NestedTypes {
		n, err := b.buildType(&doc.NestedTypes[i], t)
		if err != nil {
			return nil, err
		}

		t.AddNestedType(n)
	}

	return t, nil
}

func (b *builder) buildMethod(doc methodDoc, declaring *metadata.TypeDef) (*metadata.MethodDef, error) {
	attrs, err := metadata.ParseMethodAttributes(doc.Attributes)
	if err != nil {
		return nil, fmt.Errorf("method %s::%s: %w", declaring.FullName(), doc.Name, err)
	}

	m := &metadata.MethodDef{
		Name:             doc.Name,
		Attributes:       attrs,
		ReturnType:       b.signature(doc.Returns),
		CustomAttributes: b.usages(doc.CustomAttributes),
	}

	for _, pd := range doc.Parameters {
		pattrs, err := metadata.ParseParameterAttributes(pd.Attributes)
		if err != nil {
			return nil, fmt.Errorf("parameter %s of %s::%s: %w", pd.Name, declaring.FullName(), doc.Name, err)
		}

		m.AddParameter(&metadata.ParameterDef{
			Name:          pd.Name,
			Attributes:    pattrs,
			ParameterType: b.signature(pd.Type),
		})
	}

	return m, nil
}

// bindProperties links each property to its accessors. Each name binds to the
// first method of that name not yet claimed by an earlier property.
func (b *builder) bindProperties(docs []propertyDoc, t *metadata.TypeDef) error {
	claimed := make(map[*metadata.MethodDef]bool)

	claim := func(prop, name string) (*metadata.MethodDef, error) {
		if name == "" {
			return nil, nil
		}

		for _, m := range t.Methods {
			if m.Name == name && !claimed[m] {
				claimed[m] = true
				return m, nil
			}
		}

		return nil, fmt.Errorf("property %s::%s: accessor %s not found", t.FullName(), prop, name)
	}

	for _, pd := range docs {
		getter, err := claim(pd.Name, pd.Get)
		if err != nil {
			return err
		}

		setter, err := claim(pd.Name, pd.Set)
		if err != nil {
			return err
		}

		t.AddProperty(&metadata.PropertyDef{
			Name:             pd.Name,
			PropertyType:     b.signature(pd.Type),
			GetMethod:        getter,
			SetMethod:        setter,
			CustomAttributes: b.usages(pd.CustomAttributes),
		})
	}

	return nil
}

func fullNameOf(t *metadata.TypeDef) string {
	if t == nil {
		return ""
	}

	return t.FullName()
}
