package dispatch

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/coredb-io/coredb/catalog"
)

// builderFunc materializes one builtin table's batch.
type builderFunc func(d *Dispatcher, mem memory.Allocator) (arrow.Record, error)

// registry maps a builtin table name to its builder. It is keyed by table
// name only; Build checks the schema name against catalog.SystemSchemaName
// before looking a table up here.
var registry = map[string]builderFunc{
	"databases":             buildDatabases,
	"schemas":               buildSchemas,
	"tables":                buildTables,
	"columns":               buildColumns,
	"views":                 buildViews,
	"functions":             buildFunctions,
	"tunnels":               buildTunnels,
	"credentials":           buildCredentials,
	"ssh_keys":              buildSSHKeys,
	"session_query_metrics": buildSessionQueryMetrics,
	"deployment_metadata":   buildDeploymentMetadata,
}

// Dispatcher is SystemTableDispatcher: it owns the read-only catalog
// snapshot plus the per-session temp catalog and metrics it's layered on
// top of (spec.md 4.3).
type Dispatcher struct {
	Catalog          *catalog.SessionCatalog
	Temp             *catalog.TempCatalog
	Metrics          *catalog.SessionMetrics
	SessionSchemaOid uint32
	StorageSizeBytes uint64
}

// NewDispatcher wires a catalog snapshot to the temp/metrics state of one
// session.
func NewDispatcher(cat *catalog.SessionCatalog, temp *catalog.TempCatalog, metrics *catalog.SessionMetrics, sessionSchemaOid uint32, storageSizeBytes uint64) *Dispatcher {
	return &Dispatcher{
		Catalog:          cat,
		Temp:             temp,
		Metrics:          metrics,
		SessionSchemaOid: sessionSchemaOid,
		StorageSizeBytes: storageSizeBytes,
	}
}

// Build selects the builder matching (schema, name) and runs it, per
// spec.md 4.3. Only catalog.SystemSchemaName is ever dispatched; any other
// schema, or an unrecognized table name, fails MissingBuiltinTable.
func (d *Dispatcher) Build(schema, name string, mem memory.Allocator) (arrow.Record, error) {
	if schema != catalog.SystemSchemaName {
		return nil, catalog.NewMissingBuiltinTable(schema, name)
	}
	build, ok := registry[name]
	if !ok {
		return nil, catalog.NewMissingBuiltinTable(schema, name)
	}
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return build(d, mem)
}

func invariant(entry *catalog.CatalogEntry, what string) error {
	return catalog.NewInvariantViolation(
		fmt.Sprintf("catalog entry %d (%s) missing %s", entry.Oid, entry.Name, what),
		nil,
	)
}
