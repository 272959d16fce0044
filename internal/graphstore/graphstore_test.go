package graphstore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"type-generator/internal/metadata"
)

var (
	int32Ref  = metadata.Resolved("mscorlib", "System.Int32")
	stringRef = metadata.Resolved("mscorlib", "System.String")
	voidRef   = metadata.Resolved("mscorlib", "System.Void")
)

func newGraph() *metadata.ModuleGraph {
	g := metadata.NewModuleGraph("Assembly-CSharp")

	player := g.AddType(&metadata.TypeDef{
		Namespace:  "EFT",
		Name:       "Player",
		Attributes: metadata.TypePublic,
		BaseType:   metadata.Resolved("mscorlib", metadata.ObjectTypeName),
	})
	player.AddField(&metadata.FieldDef{Name: "health", Attributes: metadata.FieldPrivate, FieldType: int32Ref})

	getter := player.AddMethod(&metadata.MethodDef{
		Name:       "get_Health",
		Attributes: metadata.MethodPublic | metadata.MethodHideBySig | metadata.MethodSpecialName,
		ReturnType: int32Ref,
	})
	player.AddProperty(&metadata.PropertyDef{Name: "Health", PropertyType: int32Ref, GetMethod: getter})

	hit := player.AddMethod(&metadata.MethodDef{Name: "Hit", Attributes: metadata.MethodPublic | metadata.MethodStatic, ReturnType: voidRef})
	hit.AddParameter(&metadata.ParameterDef{Name: "amount", ParameterType: int32Ref})
	hit.AddParameter(&metadata.ParameterDef{Name: "source", ParameterType: stringRef})

	player.AddNestedType(&metadata.TypeDef{Name: "Inventory", Attributes: metadata.TypeNestedPublic})

	g.AddType(&metadata.TypeDef{Namespace: "EFT", Name: "IUsable", Attributes: metadata.TypePublic | metadata.TypeInterface})

	return g
}

func TestCollect(t *testing.T) {
	s := Collect(newGraph())

	require.Len(t, s.Types, 3)
	assert.Equal(t, map[string]any{
		"full_name":    "EFT.Player/Inventory",
		"namespace":    "EFT",
		"name":         "Inventory",
		"module":       "Assembly-CSharp",
		"attributes":   "nested_public",
		"is_interface": false,
		"base_type":    "",
	}, s.Types[1])
	assert.Equal(t, true, s.Types[2]["is_interface"])

	assert.Equal(t, []map[string]any{{"child": "EFT.Player/Inventory", "parent": "EFT.Player"}}, s.Nested)

	require.Len(t, s.Methods, 2)
	assert.Equal(t, "EFT.Player::Hit([mscorlib]System.Int32,[mscorlib]System.String)", s.Methods[1]["key"])
	assert.Equal(t, []string{"[mscorlib]System.Int32 amount", "[mscorlib]System.String source"}, s.Methods[1]["parameters"])
	assert.Equal(t, true, s.Methods[1]["is_static"])
	assert.Equal(t, "public|static", s.Methods[1]["attributes"])

	require.Len(t, s.Properties, 1)
	assert.Equal(t, "EFT.Player::get_Health()", s.Properties[0]["getter"])
	assert.Equal(t, "", s.Properties[0]["setter"])

	require.Len(t, s.Fields, 1)
	assert.Equal(t, "EFT.Player::health", s.Fields[0]["key"])
	assert.Equal(t, "private", s.Fields[0]["attributes"])
}

func TestBatches(t *testing.T) {
	rows := make([]map[string]any, 5)

	tests := []struct {
		name string
		size int
		want []int
	}{
		{name: "exact", size: 5, want: []int{5}},
		{name: "split", size: 2, want: []int{2, 2, 1}},
		{name: "unbounded", size: 0, want: []int{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for _, b := range batches(rows, tt.size) {
				got = append(got, len(b))
			}

			assert.Equal(t, tt.want, got)
		})
	}

	assert.Empty(t, batches(nil, 10))
}

// recorder captures the statements an Exporter runs.
type recorder struct {
	statements []string
	batchSizes []int
	failOn     string
}

func (r *recorder) run(_ context.Context, cypher string, params map[string]any) error {
	if r.failOn != "" && strings.Contains(cypher, r.failOn) {
		return errors.New("connection reset")
	}

	r.statements = append(r.statements, cypher)

	if batch, ok := params["batch"].([]map[string]any); ok {
		r.batchSizes = append(r.batchSizes, len(batch))
	}

	return nil
}

func TestExporter_Export(t *testing.T) {
	rec := &recorder{}
	e := newExporter(rec.run, WithBatchSize(2))

	require.NoError(t, e.Export(context.Background(), newGraph()))

	// types (3 rows in batches of 2), nested, methods, properties, fields
	assert.Equal(t, []int{2, 1, 1, 2, 1, 1}, rec.batchSizes)
	assert.Contains(t, rec.statements[0], "MERGE (n:ClrType")
	assert.Contains(t, rec.statements[2], "NESTED_IN")
	assert.Contains(t, rec.statements[3], "HAS_METHOD")
	assert.Contains(t, rec.statements[4], "HAS_PROPERTY")
	assert.Contains(t, rec.statements[5], "HAS_FIELD")
}

func TestExporter_ExportError(t *testing.T) {
	rec := &recorder{failOn: "ClrMethod"}
	e := newExporter(rec.run)

	err := e.Export(context.Background(), newGraph())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exporting methods: connection reset")
}

func TestExporter_CleanAndIndexes(t *testing.T) {
	rec := &recorder{}
	e := newExporter(rec.run)
	ctx := context.Background()

	require.NoError(t, e.Clean(ctx))
	require.NoError(t, e.CreateIndexes(ctx))
	require.NoError(t, e.Close(ctx))

	require.Len(t, rec.statements, 9)
	assert.Contains(t, rec.statements[4], "MATCH (n:ClrType) DETACH DELETE n")

	for _, q := range rec.statements[5:] {
		assert.Contains(t, q, "IF NOT EXISTS")
	}

	rec.failOn = "INDEX"
	assert.ErrorContains(t, e.CreateIndexes(ctx), "creating indexes")
}
