package strip

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"type-generator/internal/diagnostic"
	"type-generator/internal/metadata"
)

// Diagnostic codes recorded by the pipeline.
const (
	CodeTypeRemoved       = "type-removed"
	CodeMethodRemoved     = "method-removed"
	CodeFieldRemoved      = "field-removed"
	CodePropertyRemoved   = "property-removed"
	CodeParameterRepaired = "parameter-repaired"
	CodeAccessorRelaxed   = "accessor-relaxed"
	CodeVisibilityForced  = "visibility-forced"
	CodeAttributeCleared  = "attribute-cleared"
	CodeReferenceRepaired = "reference-repaired"
)

// ModuleReader loads a module graph. Unresolved references must surface as
// unresolved TypeRefs, never as errors.
type ModuleReader interface {
	ReadModule(path string) (*metadata.ModuleGraph, error)
}

// ModuleWriter serializes a module graph. It must write nothing when it fails.
type ModuleWriter interface {
	WriteModule(graph *metadata.ModuleGraph, path string) error
}

// Pipeline reduces module graphs to their public surface.
type Pipeline struct {
	logger *log.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger receiving one debug line per decision.
func WithLogger(logger *log.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Pipeline. Without options it logs nothing.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger: log.New(io.Discard),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Stats counts the pipeline's decisions by kind.
type Stats struct {
	TypesRemoved       int
	MethodsRemoved     int
	FieldsRemoved      int
	PropertiesRemoved  int
	ParametersRepaired int
	AccessorsRelaxed   int
	VisibilityForced   int
	AttributesCleared  int
	ReferencesRepaired int
}

// Changed reports whether the run modified the graph at all.
func (s Stats) Changed() bool {
	return s != Stats{}
}

// Result describes one pipeline run.
type Result struct {
	// Graph is the transformed graph.
	Graph *metadata.ModuleGraph
	// Diagnostics lists every decision in the order it was taken.
	Diagnostics diagnostic.Diagnostics
}

// Stats summarizes Diagnostics by code.
func (r *Result) Stats() Stats {
	d := &r.Diagnostics

	return Stats{
		TypesRemoved:       d.Count(CodeTypeRemoved),
		MethodsRemoved:     d.Count(CodeMethodRemoved),
		FieldsRemoved:      d.Count(CodeFieldRemoved),
		PropertiesRemoved:  d.Count(CodePropertyRemoved),
		ParametersRepaired: d.Count(CodeParameterRepaired),
		AccessorsRelaxed:   d.Count(CodeAccessorRelaxed),
		VisibilityForced:   d.Count(CodeVisibilityForced),
		AttributesCleared:  d.Count(CodeAttributeCleared),
		ReferencesRepaired: d.Count(CodeReferenceRepaired),
	}
}

// Run loads the module at input, transforms it and writes it to output.
// A load or write failure aborts the run; nothing is written on failure.
func (p *Pipeline) Run(reader ModuleReader, writer ModuleWriter, input, output string) (*Result, error) {
	graph, err := reader.ReadModule(input)
	if err != nil {
		return nil, fmt.Errorf("loading module: %w", err)
	}

	p.logger.Info("module loaded", "module", graph.Name, "types", len(graph.Types), "path", input)

	result := p.Transform(graph)

	if err := writer.WriteModule(graph, output); err != nil {
		return nil, fmt.Errorf("writing module: %w", err)
	}

	p.logger.Info("module written", "module", graph.Name, "types", len(graph.Types), "path", output)

	return result, nil
}

// Transform mutates graph in place and returns what it did.
func (p *Pipeline) Transform(graph *metadata.ModuleGraph) *Result {
	r := &run{
		graph:  graph,
		object: graph.ObjectType(),
		logger: p.logger,
	}

	var marked []*metadata.TypeDef

	for _, t := range graph.Types {
		if reason, ok := RemovalReason(t); ok {
			marked = append(marked, t)
			r.record(CodeTypeRemoved, reason, t.FullName(), "")

			continue
		}

		r.transformType(t)
		r.settleExemptMarker(t)
		r.sanitizeType(t)
	}

	r.excise(marked)

	for _, t := range graph.Types {
		r.sweepType(t)
	}

	result := &Result{Graph: graph, Diagnostics: r.diags}
	stats := result.Stats()
	p.logger.Info("surface extracted",
		"module", graph.Name,
		"types_removed", stats.TypesRemoved,
		"methods_removed", stats.MethodsRemoved,
		"parameters_repaired", stats.ParametersRepaired,
		"accessors_relaxed", stats.AccessorsRelaxed,
		"attributes_cleared", stats.AttributesCleared,
	)

	return result
}

// run carries the state of one Transform call.
type run struct {
	graph  *metadata.ModuleGraph
	object metadata.TypeRef
	logger *log.Logger
	diags  diagnostic.Diagnostics
}

func (r *run) record(code, message, typeName, member string) {
	r.diags.AddInfo(code, message, typeName, member)
	r.logger.Debug(message, "code", code, "type", typeName, "member", member)
}

func (r *run) warn(code, message, typeName, member string) {
	r.diags.AddWarning(code, message, typeName, member)
	r.logger.Warn(message, "code", code, "type", typeName, "member", member)
}
