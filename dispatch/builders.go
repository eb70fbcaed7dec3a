package dispatch

import (
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/coredb-io/coredb/catalog"
)

func buildDatabases(d *Dispatcher, mem memory.Allocator) (arrow.Record, error) {
	b := array.NewRecordBuilder(mem, DatabasesSchema)
	defer b.Release()

	oid := b.Field(0).(*array.Uint32Builder)
	name := b.Field(1).(*array.StringBuilder)
	builtin := b.Field(2).(*array.BooleanBuilder)
	external := b.Field(3).(*array.BooleanBuilder)
	datasource := b.Field(4).(*array.StringBuilder)

	for _, e := range d.Catalog.EntriesOfKind(catalog.KindDatabase) {
		if e.Database == nil {
			return nil, invariant(e, "DatabaseDetail")
		}
		oid.Append(e.Oid)
		name.Append(e.Name)
		builtin.Append(e.Builtin)
		external.Append(e.External)
		if e.Database.Datasource == "" {
			datasource.AppendNull()
		} else {
			datasource.Append(e.Database.Datasource)
		}
	}
	return b.NewRecord(), nil
}

func buildSchemas(d *Dispatcher, mem memory.Allocator) (arrow.Record, error) {
	b := array.NewRecordBuilder(mem, SchemasSchema)
	defer b.Release()

	oid := b.Field(0).(*array.Uint32Builder)
	dbOid := b.Field(1).(*array.Uint32Builder)
	name := b.Field(2).(*array.StringBuilder)
	builtin := b.Field(3).(*array.BooleanBuilder)
	external := b.Field(4).(*array.BooleanBuilder)

	for _, e := range d.Catalog.EntriesOfKind(catalog.KindSchema) {
		oid.Append(e.Oid)
		dbOid.Append(e.Parent)
		name.Append(e.Name)
		builtin.Append(e.Builtin)
		external.Append(e.External)
	}
	return b.NewRecord(), nil
}

func tableSchemaAndDatabaseOid(e *catalog.CatalogEntry) (schemaOid, dbOid uint32) {
	schemaOid = e.Parent
	if parent := e.ParentEntry(); parent != nil {
		dbOid = parent.Parent
	} else {
		dbOid = catalog.DatabaseDefaultOid
	}
	return schemaOid, dbOid
}

func buildTables(d *Dispatcher, mem memory.Allocator) (arrow.Record, error) {
	b := array.NewRecordBuilder(mem, TablesSchema)
	defer b.Release()

	oid := b.Field(0).(*array.Uint32Builder)
	schemaOid := b.Field(1).(*array.Uint32Builder)
	dbOid := b.Field(2).(*array.Uint32Builder)
	name := b.Field(3).(*array.StringBuilder)
	builtin := b.Field(4).(*array.BooleanBuilder)
	external := b.Field(5).(*array.BooleanBuilder)
	datasource := b.Field(6).(*array.StringBuilder)

	for _, e := range d.Catalog.EntriesOfKind(catalog.KindTable) {
		if e.Table == nil {
			return nil, invariant(e, "TableDetail")
		}
		sOid, dOid := tableSchemaAndDatabaseOid(e)
		oid.Append(e.Oid)
		schemaOid.Append(sOid)
		dbOid.Append(dOid)
		name.Append(e.Name)
		builtin.Append(e.Builtin)
		external.Append(e.External)
		if e.Table.Datasource == "" {
			datasource.AppendNull()
		} else {
			datasource.Append(e.Table.Datasource)
		}
	}

	// Temp tables sit under the current-session schema and
	// DATABASE_DEFAULT (spec.md 4.3).
	for _, e := range d.Temp.Entries() {
		oid.Append(e.Oid)
		schemaOid.Append(d.SessionSchemaOid)
		dbOid.Append(catalog.DatabaseDefaultOid)
		name.Append(e.Name)
		builtin.Append(false)
		external.Append(false)
		datasource.AppendNull()
	}

	return b.NewRecord(), nil
}

func buildColumns(d *Dispatcher, mem memory.Allocator) (arrow.Record, error) {
	b := array.NewRecordBuilder(mem, ColumnsSchema)
	defer b.Release()

	schemaOid := b.Field(0).(*array.Uint32Builder)
	tableOid := b.Field(1).(*array.Uint32Builder)
	tableName := b.Field(2).(*array.StringBuilder)
	columnName := b.Field(3).(*array.StringBuilder)
	columnOrdinal := b.Field(4).(*array.Int32Builder)
	dataType := b.Field(5).(*array.StringBuilder)
	isNullable := b.Field(6).(*array.BooleanBuilder)

	appendColumns := func(e *catalog.CatalogEntry, sOid uint32) error {
		if e.Table == nil {
			return invariant(e, "TableDetail")
		}
		for _, col := range e.Table.Columns {
			schemaOid.Append(sOid)
			tableOid.Append(e.Oid)
			tableName.Append(e.Name)
			columnName.Append(col.Name)
			columnOrdinal.Append(int32(col.Ordinal))
			dataType.Append(col.DataType)
			isNullable.Append(col.Nullable)
		}
		return nil
	}

	for _, e := range d.Catalog.EntriesOfKind(catalog.KindTable) {
		sOid, _ := tableSchemaAndDatabaseOid(e)
		if err := appendColumns(e, sOid); err != nil {
			return nil, err
		}
	}
	for _, e := range d.Temp.Entries() {
		if err := appendColumns(e, d.SessionSchemaOid); err != nil {
			return nil, err
		}
	}

	return b.NewRecord(), nil
}

func buildViews(d *Dispatcher, mem memory.Allocator) (arrow.Record, error) {
	b := array.NewRecordBuilder(mem, ViewsSchema)
	defer b.Release()

	oid := b.Field(0).(*array.Uint32Builder)
	schemaOid := b.Field(1).(*array.Uint32Builder)
	name := b.Field(2).(*array.StringBuilder)
	builtin := b.Field(3).(*array.BooleanBuilder)
	external := b.Field(4).(*array.BooleanBuilder)
	query := b.Field(5).(*array.StringBuilder)

	for _, e := range d.Catalog.EntriesOfKind(catalog.KindView) {
		if e.View == nil {
			return nil, invariant(e, "ViewDetail")
		}
		oid.Append(e.Oid)
		schemaOid.Append(e.Parent)
		name.Append(e.Name)
		builtin.Append(e.Builtin)
		external.Append(e.External)
		query.Append(e.View.Query)
	}
	return b.NewRecord(), nil
}

func buildFunctions(d *Dispatcher, mem memory.Allocator) (arrow.Record, error) {
	b := array.NewRecordBuilder(mem, FunctionsSchema)
	defer b.Release()

	oid := b.Field(0).(*array.Uint32Builder)
	schemaOid := b.Field(1).(*array.Uint32Builder)
	name := b.Field(2).(*array.StringBuilder)
	builtin := b.Field(3).(*array.BooleanBuilder)
	external := b.Field(4).(*array.BooleanBuilder)
	signature := b.Field(5).(*array.StringBuilder)

	for _, e := range d.Catalog.EntriesOfKind(catalog.KindFunction) {
		if e.Function == nil {
			return nil, invariant(e, "FunctionDetail")
		}
		oid.Append(e.Oid)
		schemaOid.Append(e.Parent)
		name.Append(e.Name)
		builtin.Append(e.Builtin)
		external.Append(e.External)
		signature.Append(e.Function.Signature)
	}
	return b.NewRecord(), nil
}

func buildTunnels(d *Dispatcher, mem memory.Allocator) (arrow.Record, error) {
	b := array.NewRecordBuilder(mem, TunnelsSchema)
	defer b.Release()

	oid := b.Field(0).(*array.Uint32Builder)
	name := b.Field(1).(*array.StringBuilder)
	builtin := b.Field(2).(*array.BooleanBuilder)
	external := b.Field(3).(*array.BooleanBuilder)
	tunnelType := b.Field(4).(*array.StringBuilder)

	for _, e := range d.Catalog.EntriesOfKind(catalog.KindTunnel) {
		if e.Tunnel == nil {
			return nil, invariant(e, "TunnelDetail")
		}
		oid.Append(e.Oid)
		name.Append(e.Name)
		builtin.Append(e.Builtin)
		external.Append(e.External)
		tunnelType.Append(e.Tunnel.TunnelType)
	}
	return b.NewRecord(), nil
}

func buildCredentials(d *Dispatcher, mem memory.Allocator) (arrow.Record, error) {
	b := array.NewRecordBuilder(mem, CredentialsSchema)
	defer b.Release()

	oid := b.Field(0).(*array.Uint32Builder)
	name := b.Field(1).(*array.StringBuilder)
	builtin := b.Field(2).(*array.BooleanBuilder)
	external := b.Field(3).(*array.BooleanBuilder)
	provider := b.Field(4).(*array.StringBuilder)

	for _, e := range d.Catalog.EntriesOfKind(catalog.KindCredentials) {
		if e.Credentials == nil {
			return nil, invariant(e, "CredentialsDetail")
		}
		oid.Append(e.Oid)
		name.Append(e.Name)
		builtin.Append(e.Builtin)
		external.Append(e.External)
		provider.Append(e.Credentials.Provider)
	}
	return b.NewRecord(), nil
}

func buildSessionQueryMetrics(d *Dispatcher, mem memory.Allocator) (arrow.Record, error) {
	b := array.NewRecordBuilder(mem, SessionQueryMetricsSchema)
	defer b.Release()

	queryText := b.Field(0).(*array.StringBuilder)
	resultType := b.Field(1).(*array.StringBuilder)
	status := b.Field(2).(*array.StringBuilder)
	errMsg := b.Field(3).(*array.StringBuilder)
	elapsed := b.Field(4).(*array.Uint64Builder)
	rows := b.Field(5).(*array.Uint64Builder)

	for _, m := range d.Metrics.Records() {
		queryText.Append(m.QueryText)
		resultType.Append(m.ResultType)
		status.Append(m.ExecutionStatus.String())
		if m.ErrorMessage == nil {
			errMsg.AppendNull()
		} else {
			errMsg.Append(*m.ErrorMessage)
		}
		if m.ElapsedComputeNs == nil {
			elapsed.AppendNull()
		} else {
			elapsed.Append(*m.ElapsedComputeNs)
		}
		if m.OutputRows == nil {
			rows.AppendNull()
		} else {
			rows.Append(*m.OutputRows)
		}
	}
	return b.NewRecord(), nil
}

func buildDeploymentMetadata(d *Dispatcher, mem memory.Allocator) (arrow.Record, error) {
	b := array.NewRecordBuilder(mem, DeploymentMetadataSchema)
	defer b.Release()

	key := b.Field(0).(*array.StringBuilder)
	value := b.Field(1).(*array.StringBuilder)

	key.Append("storage_size")
	value.Append(strconv.FormatUint(d.StorageSizeBytes, 10))

	return b.NewRecord(), nil
}
