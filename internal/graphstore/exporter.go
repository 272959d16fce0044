// Package graphstore exports the public surface of a module graph to Neo4j.
//
// Types become ClrType nodes keyed by full name; methods, properties and
// fields become ClrMethod, ClrProperty and ClrField nodes linked to their type
// by HAS_METHOD, HAS_PROPERTY and HAS_FIELD. Nested types point at their
// declaring type with NESTED_IN. Every write is an UNWIND ... MERGE batch, so
// exporting the same module twice leaves the graph unchanged.
package graphstore

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"type-generator/internal/metadata"
)

// DefaultBatchSize bounds the rows sent in one UNWIND statement.
const DefaultBatchSize = 500

// runner executes one Cypher statement.
type runner func(ctx context.Context, cypher string, params map[string]any) error

// Exporter writes module surfaces into a Neo4j database.
type Exporter struct {
	driver    neo4j.DriverWithContext
	run       runner
	batchSize int
	logger    *log.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger for export progress.
func WithLogger(logger *log.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithBatchSize sets the number of rows per statement.
func WithBatchSize(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

// NewExporter connects to Neo4j and verifies the connection.
func NewExporter(ctx context.Context, uri, user, password string, opts ...Option) (*Exporter, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to neo4j at %s: %w", uri, err)
	}

	e := newExporter(func(ctx context.Context, cypher string, params map[string]any) error {
		_, err := neo4j.ExecuteQuery(ctx, driver, cypher, params, neo4j.EagerResultTransformer)
		return err
	}, opts...)
	e.driver = driver

	return e, nil
}

func newExporter(run runner, opts ...Option) *Exporter {
	e := &Exporter{
		run:       run,
		batchSize: DefaultBatchSize,
		logger:    log.New(io.Discard),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Close releases the driver.
func (e *Exporter) Close(ctx context.Context) error {
	if e.driver == nil {
		return nil
	}

	return e.driver.Close(ctx)
}

// Clean removes every previously exported node and relationship.
func (e *Exporter) Clean(ctx context.Context) error {
	e.logger.Info("cleaning exported surface")

	queries := []string{
		"MATCH ()-[r:HAS_METHOD|HAS_PROPERTY|HAS_FIELD|NESTED_IN]->() DELETE r",
		"MATCH (n:ClrMethod) DETACH DELETE n",
		"MATCH (n:ClrProperty) DETACH DELETE n",
		"MATCH (n:ClrField) DETACH DELETE n",
		"MATCH (n:ClrType) DETACH DELETE n",
	}

	for _, q := range queries {
		if err := e.run(ctx, q, nil); err != nil {
			return fmt.Errorf("cleaning graph: %w", err)
		}
	}

	return nil
}

// CreateIndexes ensures the lookup indexes exist.
func (e *Exporter) CreateIndexes(ctx context.Context) error {
	indexes := []string{
		"CREATE INDEX clr_type_full_name IF NOT EXISTS FOR (n:ClrType) ON (n.full_name)",
		"CREATE INDEX clr_method_key IF NOT EXISTS FOR (n:ClrMethod) ON (n.key)",
		"CREATE INDEX clr_property_key IF NOT EXISTS FOR (n:ClrProperty) ON (n.key)",
		"CREATE INDEX clr_field_key IF NOT EXISTS FOR (n:ClrField) ON (n.key)",
	}

	for _, q := range indexes {
		if err := e.run(ctx, q, nil); err != nil {
			return fmt.Errorf("creating indexes: %w", err)
		}
	}

	return nil
}

// Statements upserting each row kind. Types go first so the member
// statements can MATCH their owner.
const (
	typeCypher = `UNWIND $batch AS row
		MERGE (n:ClrType {full_name: row.full_name})
		SET n.name = row.name, n.namespace = row.namespace, n.module = row.module,
		    n.attributes = row.attributes, n.is_interface = row.is_interface,
		    n.base_type = row.base_type`

	nestedCypher = `UNWIND $batch AS row
		MATCH (c:ClrType {full_name: row.child}), (p:ClrType {full_name: row.parent})
		MERGE (c)-[:NESTED_IN]->(p)`

	methodCypher = `UNWIND $batch AS row
		MERGE (n:ClrMethod {key: row.key})
		SET n.name = row.name, n.attributes = row.attributes,
		    n.return_type = row.return_type, n.parameters = row.parameters,
		    n.is_static = row.is_static
		WITH n, row
		MATCH (t:ClrType {full_name: row.type})
		MERGE (t)-[:HAS_METHOD]->(n)`

	propertyCypher = `UNWIND $batch AS row
		MERGE (n:ClrProperty {key: row.key})
		SET n.name = row.name, n.property_type = row.property_type,
		    n.getter = row.getter, n.setter = row.setter
		WITH n, row
		MATCH (t:ClrType {full_name: row.type})
		MERGE (t)-[:HAS_PROPERTY]->(n)`

	fieldCypher = `UNWIND $batch AS row
		MERGE (n:ClrField {key: row.key})
		SET n.name = row.name, n.attributes = row.attributes, n.field_type = row.field_type
		WITH n, row
		MATCH (t:ClrType {full_name: row.type})
		MERGE (t)-[:HAS_FIELD]->(n)`
)

// Export upserts the surface of graph.
func (e *Exporter) Export(ctx context.Context, graph *metadata.ModuleGraph) error {
	s := Collect(graph)

	steps := []struct {
		kind   string
		cypher string
		rows   []map[string]any
	}{
		{"types", typeCypher, s.Types},
		{"nested types", nestedCypher, s.Nested},
		{"methods", methodCypher, s.Methods},
		{"properties", propertyCypher, s.Properties},
		{"fields", fieldCypher, s.Fields},
	}

	for _, step := range steps {
		e.logger.Debug("exporting", "kind", step.kind, "rows", len(step.rows))

		for _, batch := range batches(step.rows, e.batchSize) {
			if err := e.run(ctx, step.cypher, map[string]any{"batch": batch}); err != nil {
				return fmt.Errorf("exporting %s: %w", step.kind, err)
			}
		}
	}

	e.logger.Info("surface exported",
		"module", graph.Name,
		"types", len(s.Types),
		"methods", len(s.Methods),
		"properties", len(s.Properties),
		"fields", len(s.Fields),
	)

	return nil
}
