package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dbEntry(oid uint32) *CatalogEntry {
	return &CatalogEntry{Oid: oid, Name: "db", Parent: oid, Builtin: true, Kind: KindDatabase, Database: &DatabaseDetail{}}
}

func schemaEntry(oid, parent uint32, name string) *CatalogEntry {
	return &CatalogEntry{Oid: oid, Name: name, Parent: parent, Builtin: true, Kind: KindSchema}
}

func tableEntry(oid, parent uint32, name string) *CatalogEntry {
	return &CatalogEntry{Oid: oid, Name: name, Parent: parent, Kind: KindTable, Table: &TableDetail{}}
}

func TestNewSessionCatalogAttachesParentEntries(t *testing.T) {
	db := dbEntry(1)
	sch := schemaEntry(2, 1, "public")
	tbl := tableEntry(3, 2, "users")

	cat, err := NewSessionCatalog([]*CatalogEntry{db, sch, tbl})
	require.NoError(t, err)

	got, err := cat.Lookup(3)
	require.NoError(t, err)
	require.NotNil(t, got.ParentEntry())
	assert.Equal(t, "public", got.ParentEntry().Name)
}

func TestNewSessionCatalogRejectsCycle(t *testing.T) {
	a := &CatalogEntry{Oid: 1, Name: "a", Parent: 2, Kind: KindSchema}
	b := &CatalogEntry{Oid: 2, Name: "b", Parent: 1, Kind: KindSchema}

	_, err := NewSessionCatalog([]*CatalogEntry{a, b})
	require.Error(t, err)
	var catErr *Error
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, ErrCatalogCycle, catErr.Kind)
}

func TestNewSessionCatalogRejectsMissingParent(t *testing.T) {
	orphan := &CatalogEntry{Oid: 5, Name: "orphan", Parent: 999, Kind: KindSchema}
	_, err := NewSessionCatalog([]*CatalogEntry{orphan})
	require.Error(t, err)
}

func TestLookupMissingOid(t *testing.T) {
	cat, err := NewSessionCatalog([]*CatalogEntry{dbEntry(1)})
	require.NoError(t, err)
	_, err = cat.Lookup(42)
	require.Error(t, err)
}

func TestEntriesOfKind(t *testing.T) {
	db := dbEntry(1)
	sch := schemaEntry(2, 1, "public")
	t1 := tableEntry(3, 2, "a")
	t2 := tableEntry(4, 2, "b")

	cat, err := NewSessionCatalog([]*CatalogEntry{db, sch, t1, t2})
	require.NoError(t, err)

	tables := cat.EntriesOfKind(KindTable)
	assert.Len(t, tables, 2)
}

func TestTempCatalogCreateAndDrop(t *testing.T) {
	temp := NewTempCatalog(7)
	oid := temp.CreateTable("scratch", []Column{{Name: "x", Ordinal: 0, DataType: "int64"}})
	assert.Len(t, temp.Entries(), 1)
	assert.True(t, temp.DropTable(oid))
	assert.Len(t, temp.Entries(), 0)
	assert.False(t, temp.DropTable(oid))
}

func TestSessionMetricsAppendOrder(t *testing.T) {
	m := NewSessionMetrics()
	m.Append(QueryMetric{QueryText: "select 1", ExecutionStatus: ExecutionSuccess})
	m.Append(QueryMetric{QueryText: "select 2", ExecutionStatus: ExecutionError})
	require.Equal(t, 2, m.Len())
	assert.Equal(t, "select 1", m.Records()[0].QueryText)
	assert.Equal(t, "select 2", m.Records()[1].QueryText)
}
