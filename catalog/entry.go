// Package catalog implements the CatalogView component from spec.md 4.2:
// a read-only projection of the session catalog plus the per-session
// TempCatalog and SessionMetrics it shares its oid space and lifetime
// with. The parent-link walk (walk.go) is adapted from the teacher's
// (sqldef) three-color DFS in schema/tsort.go, swapping "sort DDLs by
// dependency" for "detect cycles in the oid DAG".
package catalog

// SystemSchemaName is the schema builtin system tables live under
// (original_source/crates/sqlexec/src/dispatch/system.rs's GLARE_CATALOG
// convention).
const SystemSchemaName = "glare_catalog"

// DatabaseDefaultOid is the synthetic oid temp tables are attached to
// (spec.md 4.3: "DATABASE_DEFAULT as the database oid").
const DatabaseDefaultOid uint32 = 0

// EntryKind tags the CatalogEntry variant (spec.md 3).
type EntryKind int

const (
	KindDatabase EntryKind = iota
	KindSchema
	KindTable
	KindView
	KindFunction
	KindTunnel
	KindCredentials
)

func (k EntryKind) String() string {
	switch k {
	case KindDatabase:
		return "database"
	case KindSchema:
		return "schema"
	case KindTable:
		return "table"
	case KindView:
		return "view"
	case KindFunction:
		return "function"
	case KindTunnel:
		return "tunnel"
	case KindCredentials:
		return "credentials"
	default:
		return "unknown"
	}
}

// Column describes one column of a Table entry, consumed by the `columns`
// builtin table builder (spec.md 4.3).
type Column struct {
	Name     string
	Ordinal  int // 0-based
	DataType string
	Nullable bool
}

// DatabaseDetail, ViewDetail, etc. carry the variant-specific payload for
// each EntryKind. Exactly one of these is set on a CatalogEntry, matching
// which Kind it carries.
type DatabaseDetail struct {
	Datasource string
}

type TableDetail struct {
	Datasource string // "" for non-external (builtin-backed) tables
	Columns    []Column
}

type ViewDetail struct {
	Query string
}

type FunctionDetail struct {
	Signature string
}

type TunnelDetail struct {
	TunnelType string
	// KeyMaterial holds the PEM-encoded private key for ssh-typed tunnels,
	// consumed by the ssh_keys builtin table builder (spec.md 4.3).
	KeyMaterial      string
	ConnectionString string
}

type CredentialsDetail struct {
	Provider string
}

// CatalogEntry is the tagged variant from spec.md 3. Invariants: oids are
// unique within a deployment; every non-root entry's Parent references an
// existing entry; Builtin entries are immutable; External==true implies
// the entry references an out-of-process data source.
type CatalogEntry struct {
	Oid      uint32
	Name     string
	Parent   uint32
	Builtin  bool
	External bool
	Kind     EntryKind

	Database    *DatabaseDetail
	Table       *TableDetail
	View        *ViewDetail
	Function    *FunctionDetail
	Tunnel      *TunnelDetail
	Credentials *CredentialsDetail

	// parentEntry is attached during SessionCatalog construction/iteration
	// (spec.md 3: "attachment of a parent_entry pointer per entry during
	// iteration (relation, not ownership)"). nil for root entries.
	parentEntry *CatalogEntry
}

// ParentEntry returns the attached parent, or nil for a root entry.
func (e *CatalogEntry) ParentEntry() *CatalogEntry { return e.parentEntry }
