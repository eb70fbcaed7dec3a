// Package dispatch implements SystemTableDispatcher (spec.md 4.3): it
// materializes builtin system tables as Arrow record batches from catalog
// state, temp objects and session metrics. Batches are built with
// array.RecordBuilder (github.com/apache/arrow-go/v18), grounded on the
// same columnar-batch shape the rest of the pack reaches for (see
// other_examples manifests for gravitational-teleport, steveyegge-beads:
// both depend on apache/arrow-go for exactly this "rows in, columns out"
// materialization).
package dispatch

import "github.com/apache/arrow-go/v18/arrow"

// Declared schemas, one per builtin table (spec.md 4.3/6). Column order is
// part of the external contract and must not change without a version
// bump.
var (
	DatabasesSchema = arrow.NewSchema([]arrow.Field{
		{Name: "oid", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "name", Type: arrow.BinaryTypes.String},
		{Name: "builtin", Type: arrow.FixedWidthTypes.Boolean},
		{Name: "external", Type: arrow.FixedWidthTypes.Boolean},
		{Name: "datasource", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)

	SchemasSchema = arrow.NewSchema([]arrow.Field{
		{Name: "oid", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "database_oid", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "name", Type: arrow.BinaryTypes.String},
		{Name: "builtin", Type: arrow.FixedWidthTypes.Boolean},
		{Name: "external", Type: arrow.FixedWidthTypes.Boolean},
	}, nil)

	TablesSchema = arrow.NewSchema([]arrow.Field{
		{Name: "oid", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "schema_oid", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "database_oid", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "name", Type: arrow.BinaryTypes.String},
		{Name: "builtin", Type: arrow.FixedWidthTypes.Boolean},
		{Name: "external", Type: arrow.FixedWidthTypes.Boolean},
		{Name: "datasource", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)

	ColumnsSchema = arrow.NewSchema([]arrow.Field{
		{Name: "schema_oid", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "table_oid", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "table_name", Type: arrow.BinaryTypes.String},
		{Name: "column_name", Type: arrow.BinaryTypes.String},
		{Name: "column_ordinal", Type: arrow.PrimitiveTypes.Int32},
		{Name: "data_type", Type: arrow.BinaryTypes.String},
		{Name: "is_nullable", Type: arrow.FixedWidthTypes.Boolean},
	}, nil)

	ViewsSchema = arrow.NewSchema([]arrow.Field{
		{Name: "oid", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "schema_oid", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "name", Type: arrow.BinaryTypes.String},
		{Name: "builtin", Type: arrow.FixedWidthTypes.Boolean},
		{Name: "external", Type: arrow.FixedWidthTypes.Boolean},
		{Name: "query", Type: arrow.BinaryTypes.String},
	}, nil)

	FunctionsSchema = arrow.NewSchema([]arrow.Field{
		{Name: "oid", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "schema_oid", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "name", Type: arrow.BinaryTypes.String},
		{Name: "builtin", Type: arrow.FixedWidthTypes.Boolean},
		{Name: "external", Type: arrow.FixedWidthTypes.Boolean},
		{Name: "signature", Type: arrow.BinaryTypes.String},
	}, nil)

	TunnelsSchema = arrow.NewSchema([]arrow.Field{
		{Name: "oid", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "name", Type: arrow.BinaryTypes.String},
		{Name: "builtin", Type: arrow.FixedWidthTypes.Boolean},
		{Name: "external", Type: arrow.FixedWidthTypes.Boolean},
		{Name: "tunnel_type", Type: arrow.BinaryTypes.String},
	}, nil)

	CredentialsSchema = arrow.NewSchema([]arrow.Field{
		{Name: "oid", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "name", Type: arrow.BinaryTypes.String},
		{Name: "builtin", Type: arrow.FixedWidthTypes.Boolean},
		{Name: "external", Type: arrow.FixedWidthTypes.Boolean},
		{Name: "provider", Type: arrow.BinaryTypes.String},
	}, nil)

	SSHKeysSchema = arrow.NewSchema([]arrow.Field{
		{Name: "tunnel_oid", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "tunnel_name", Type: arrow.BinaryTypes.String},
		{Name: "ssh_key", Type: arrow.BinaryTypes.String},
	}, nil)

	SessionQueryMetricsSchema = arrow.NewSchema([]arrow.Field{
		{Name: "query_text", Type: arrow.BinaryTypes.String},
		{Name: "result_type", Type: arrow.BinaryTypes.String},
		{Name: "execution_status", Type: arrow.BinaryTypes.String},
		{Name: "error_message", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "elapsed_compute_ns", Type: arrow.PrimitiveTypes.Uint64, Nullable: true},
		{Name: "output_rows", Type: arrow.PrimitiveTypes.Uint64, Nullable: true},
	}, nil)

	DeploymentMetadataSchema = arrow.NewSchema([]arrow.Field{
		{Name: "key", Type: arrow.BinaryTypes.String},
		{Name: "value", Type: arrow.BinaryTypes.String},
	}, nil)
)
