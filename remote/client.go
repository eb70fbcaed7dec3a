package remote

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

const execServicePath = "/coredb.exec.v1.ExecService"

// RemoteSessionHandle is the per-session handle returned by
// initialize_session: a server-assigned database_id plus the same
// immutable auth-metadata map the client was constructed with (spec.md
// 3, 4.4).
type RemoteSessionHandle struct {
	DatabaseID   uuid.UUID
	AuthMetadata []MetadataPair
}

// MetadataPair is one entry of the client's immutable auth-metadata map,
// kept as an ordered slice (not a Go map) so append order is well defined
// when it's merged onto outgoing request metadata (spec.md 5: "appends
// preserve ordering and do not replace existing keys").
type MetadataPair struct {
	Key   string
	Value string
}

// RemoteSessionClient is the authenticated, streaming RPC client from
// spec.md 4.4. Its only mutable field across its lifetime is the
// underlying connection; authMetadata and databaseID are fixed at
// construction / initialize_session time.
type RemoteSessionClient struct {
	conn         *grpc.ClientConn
	authMetadata []MetadataPair
	databaseID   uuid.UUID
}

// Connect dials dest.Dst in plaintext, with no cloud authentication
// (spec.md 4.4: "connect(url) (plaintext)").
func Connect(ctx context.Context, dest ProxyDestination) (*RemoteSessionClient, error) {
	return dialWithCreds(ctx, dest, insecure.NewCredentials())
}

// ConnectWithProxy performs the TLS bootstrap against cloudAPIAddr (unless
// disableTLS) and dials dest.Dst authenticated (spec.md 4.4:
// "connect_with_proxy(url, cloud_api_addr, disable_tls)").
func ConnectWithProxy(ctx context.Context, dest ProxyDestination, cloudAPIAddr string, disableTLS bool) (*RemoteSessionClient, error) {
	if disableTLS {
		return dialWithCreds(ctx, dest, insecure.NewCredentials())
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	tlsConfig, err := bootstrapTLS(ctx, httpClient, cloudAPIAddr, dest)
	if err != nil {
		return nil, err
	}
	dest = dest.WithTLS()
	return dialWithCreds(ctx, dest, credentials.NewTLS(tlsConfig))
}

func dialWithCreds(ctx context.Context, dest ProxyDestination, creds credentials.TransportCredentials) (*RemoteSessionClient, error) {
	conn, err := grpc.DialContext(ctx, dest.Dst,
		grpc.WithTransportCredentials(creds),
		grpc.WithBlock(),
	)
	if err != nil {
		return nil, remoteSessionErr("connect", err)
	}

	metadataPairs := []MetadataPair{
		{Key: "user", Value: dest.User},
		{Key: "password", Value: dest.Password},
		{Key: "db_name", Value: dest.DBName},
		{Key: "org", Value: dest.Org},
	}
	if dest.ComputeEngine != "" {
		metadataPairs = append(metadataPairs, MetadataPair{Key: "compute_engine", Value: dest.ComputeEngine})
	}

	return &RemoteSessionClient{conn: conn, authMetadata: metadataPairs}, nil
}

// Close releases the underlying channel.
func (c *RemoteSessionClient) Close() error {
	return c.conn.Close()
}

// outgoingContext appends the client's auth metadata to ctx's outgoing
// metadata, preserving whatever the caller already set (spec.md 5).
func (c *RemoteSessionClient) outgoingContext(ctx context.Context) context.Context {
	for _, pair := range c.authMetadata {
		ctx = metadata.AppendToOutgoingContext(ctx, pair.Key, pair.Value)
	}
	return ctx
}

func fullMethod(name string) string {
	return execServicePath + "/" + name
}
