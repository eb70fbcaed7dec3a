package dispatch

import (
	"testing"

	"crypto/rand"
	"crypto/rsa"
	"encoding/pem"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"github.com/coredb-io/coredb/catalog"
)

func testCatalog(t *testing.T, extra ...*catalog.CatalogEntry) *catalog.SessionCatalog {
	t.Helper()
	entries := []*catalog.CatalogEntry{
		{Oid: 1, Name: "default", Parent: 1, Builtin: true, Kind: catalog.KindDatabase, Database: &catalog.DatabaseDetail{}},
		{Oid: 2, Name: "glare_catalog", Parent: 1, Builtin: true, Kind: catalog.KindSchema},
		{Oid: 3, Name: "public", Parent: 1, Builtin: false, Kind: catalog.KindSchema},
	}
	entries = append(entries, extra...)
	cat, err := catalog.NewSessionCatalog(entries)
	require.NoError(t, err)
	return cat
}

func TestBuildDatabases(t *testing.T) {
	cat := testCatalog(t)
	d := NewDispatcher(cat, catalog.NewTempCatalog(3), catalog.NewSessionMetrics(), 3, 0)

	rec, err := d.Build(catalog.SystemSchemaName, "databases", memory.NewGoAllocator())
	require.NoError(t, err)
	defer rec.Release()

	assert.EqualValues(t, 1, rec.NumRows())
	assert.True(t, rec.Schema().Equal(DatabasesSchema))
}

func TestBuildUnknownTableFails(t *testing.T) {
	cat := testCatalog(t)
	d := NewDispatcher(cat, catalog.NewTempCatalog(3), catalog.NewSessionMetrics(), 3, 0)

	_, err := d.Build(catalog.SystemSchemaName, "nonexistent", memory.NewGoAllocator())
	require.Error(t, err)
	var catErr *catalog.Error
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, catalog.ErrMissingBuiltinTable, catErr.Kind)
}

func TestBuildUnknownSchemaFails(t *testing.T) {
	cat := testCatalog(t)
	d := NewDispatcher(cat, catalog.NewTempCatalog(3), catalog.NewSessionMetrics(), 3, 0)

	_, err := d.Build("public", "tables", memory.NewGoAllocator())
	require.Error(t, err)
}

func TestBuildTablesIncludesTempTables(t *testing.T) {
	table := &catalog.CatalogEntry{
		Oid: 10, Name: "users", Parent: 3, Kind: catalog.KindTable,
		Table: &catalog.TableDetail{Columns: []catalog.Column{{Name: "id", Ordinal: 0, DataType: "int64"}}},
	}
	cat := testCatalog(t, table)
	temp := catalog.NewTempCatalog(3)
	temp.CreateTable("scratch", []catalog.Column{{Name: "x", Ordinal: 0, DataType: "utf8"}})

	d := NewDispatcher(cat, temp, catalog.NewSessionMetrics(), 3, 0)

	rec, err := d.Build(catalog.SystemSchemaName, "tables", memory.NewGoAllocator())
	require.NoError(t, err)
	defer rec.Release()

	assert.EqualValues(t, 2, rec.NumRows())
}

func TestBuildColumns(t *testing.T) {
	table := &catalog.CatalogEntry{
		Oid: 10, Name: "users", Parent: 3, Kind: catalog.KindTable,
		Table: &catalog.TableDetail{Columns: []catalog.Column{
			{Name: "id", Ordinal: 0, DataType: "int64"},
			{Name: "email", Ordinal: 1, DataType: "utf8", Nullable: true},
		}},
	}
	cat := testCatalog(t, table)
	d := NewDispatcher(cat, catalog.NewTempCatalog(3), catalog.NewSessionMetrics(), 3, 0)

	rec, err := d.Build(catalog.SystemSchemaName, "columns", memory.NewGoAllocator())
	require.NoError(t, err)
	defer rec.Release()

	assert.EqualValues(t, 2, rec.NumRows())
}

func TestBuildSessionQueryMetrics(t *testing.T) {
	cat := testCatalog(t)
	metrics := catalog.NewSessionMetrics()
	metrics.Append(catalog.QueryMetric{QueryText: "select 1", ExecutionStatus: catalog.ExecutionSuccess})
	d := NewDispatcher(cat, catalog.NewTempCatalog(3), metrics, 3, 0)

	rec, err := d.Build(catalog.SystemSchemaName, "session_query_metrics", memory.NewGoAllocator())
	require.NoError(t, err)
	defer rec.Release()

	assert.EqualValues(t, 1, rec.NumRows())
}

func TestBuildDeploymentMetadata(t *testing.T) {
	cat := testCatalog(t)
	d := NewDispatcher(cat, catalog.NewTempCatalog(3), catalog.NewSessionMetrics(), 3, 4096)

	rec, err := d.Build(catalog.SystemSchemaName, "deployment_metadata", memory.NewGoAllocator())
	require.NoError(t, err)
	defer rec.Release()

	assert.EqualValues(t, 1, rec.NumRows())
}

func generateRSAKeyPEM(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	block, err := ssh.MarshalPrivateKey(key, "")
	require.NoError(t, err)
	return string(pem.EncodeToMemory(block))
}

func TestBuildSSHKeys(t *testing.T) {
	keyPEM := generateRSAKeyPEM(t)
	tunnel := &catalog.CatalogEntry{
		Oid: 20, Name: "my_ssh", Parent: 1, Kind: catalog.KindTunnel,
		Tunnel: &catalog.TunnelDetail{
			TunnelType:       "ssh",
			KeyMaterial:      keyPEM,
			ConnectionString: "bastion@example.com:22",
		},
	}
	cat := testCatalog(t, tunnel)
	d := NewDispatcher(cat, catalog.NewTempCatalog(3), catalog.NewSessionMetrics(), 3, 0)

	rec, err := d.Build(catalog.SystemSchemaName, "ssh_keys", memory.NewGoAllocator())
	require.NoError(t, err)
	defer rec.Release()

	assert.EqualValues(t, 1, rec.NumRows())
}
