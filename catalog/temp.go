package catalog

// TempCatalog is the per-session, mutable collection of transient table
// entries from spec.md 3: visible only under the current-session schema,
// destroyed at session end. It is mutated only by its owning session
// (spec.md 5) and carries no internal locking, matching the cooperative
// single-threaded-per-session scheduling model. Per spec.md 9's open
// question, temp tables reuse their allocation-order position as their
// oid rather than drawing from a real oid allocator; the source this
// spec was distilled from marks that as a TODO and spec.md does not
// require fixing it.
type TempCatalog struct {
	sessionSchema uint32
	nextOid       uint32
	tables        map[uint32]*CatalogEntry
}

// NewTempCatalog creates an empty temp catalog attached to the given
// current-session schema oid (used as Parent for every temp entry).
func NewTempCatalog(sessionSchemaOid uint32) *TempCatalog {
	return &TempCatalog{
		sessionSchema: sessionSchemaOid,
		nextOid:       1,
		tables:        make(map[uint32]*CatalogEntry),
	}
}

// CreateTable registers a new temp table and returns its synthetic oid.
func (t *TempCatalog) CreateTable(name string, columns []Column) uint32 {
	oid := t.nextOid
	t.nextOid++
	t.tables[oid] = &CatalogEntry{
		Oid:      oid,
		Name:     name,
		Parent:   t.sessionSchema,
		Builtin:  false,
		External: false,
		Kind:     KindTable,
		Table:    &TableDetail{Columns: columns},
	}
	return oid
}

// DropTable removes a temp table by oid. Returns false if it did not exist.
func (t *TempCatalog) DropTable(oid uint32) bool {
	if _, ok := t.tables[oid]; !ok {
		return false
	}
	delete(t.tables, oid)
	return true
}

// Entries returns all live temp-table entries.
func (t *TempCatalog) Entries() []*CatalogEntry {
	out := make([]*CatalogEntry, 0, len(t.tables))
	for _, e := range t.tables {
		out = append(out, e)
	}
	return out
}
