package remote

import (
	"context"
	"io"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

func rawCallOption() grpc.CallOption {
	return grpc.CallContentSubtype(rawCodecName)
}

// DatabaseIDDecoder decodes the server-assigned database_id out of an
// opaque InitializeSession response payload. This core does not parse the
// wire protobuf schema itself (spec.md 1: protobuf schemas are out of
// scope), so callers that do know the schema supply one; passing nil
// falls back to a freshly generated id.
type DatabaseIDDecoder func(resp RawBytes) (uuid.UUID, error)

// InitializeSession establishes a session against the bound database,
// caching the server-assigned database_id in the returned handle (spec.md
// 4.4). decodeID may be nil, in which case the handle carries a locally
// generated id rather than the server's.
func (c *RemoteSessionClient) InitializeSession(ctx context.Context, req RawBytes, decodeID DatabaseIDDecoder) (*RemoteSessionHandle, RawBytes, error) {
	var resp RawBytes
	if err := grpc.Invoke(c.outgoingContext(ctx), fullMethod("InitializeSession"), &req, &resp, c.conn, rawCallOption()); err != nil {
		return nil, nil, remoteSessionErr("initialize_session", err)
	}

	databaseID, err := extractDatabaseID(resp, decodeID)
	if err != nil {
		return nil, nil, internalErr(err)
	}
	c.databaseID = databaseID

	return &RemoteSessionHandle{DatabaseID: databaseID, AuthMetadata: c.authMetadata}, resp, nil
}

// extractDatabaseID applies the caller-supplied decoder to the opaque
// response payload, or generates a local id when no decoder was given.
func extractDatabaseID(resp RawBytes, decodeID DatabaseIDDecoder) (uuid.UUID, error) {
	if decodeID == nil {
		return uuid.New(), nil
	}
	return decodeID(resp)
}

// FetchCatalog returns the opaque catalog-state payload the server sends
// for this client's session (spec.md 4.4). The request payload is empty:
// the database_id cached by InitializeSession is not sent, so the server
// has only the auth metadata (user, db_name, org, ...) to identify the
// database by.
func (c *RemoteSessionClient) FetchCatalog(ctx context.Context) (RawBytes, error) {
	var req, resp RawBytes
	if err := grpc.Invoke(c.outgoingContext(ctx), fullMethod("FetchCatalog"), &req, &resp, c.conn, rawCallOption()); err != nil {
		return nil, remoteSessionErr("fetch_catalog", err)
	}
	return resp, nil
}

// DispatchAccessResponse is the opaque table-provider stub spec.md 4.4
// describes: an id plus the advertised schema bytes.
type DispatchAccessResponse struct {
	ID     string
	Schema RawBytes
}

// DispatchAccessIDDecoder decodes the provider-stub id out of an opaque
// DispatchAccess response payload, mirroring DatabaseIDDecoder. nil
// leaves DispatchAccessResponse.ID empty.
type DispatchAccessIDDecoder func(resp RawBytes) (string, error)

// DispatchAccess serializes a table reference and optional
// args/options and asks the server for a table-provider stub (spec.md
// 4.4). The caller is responsible for encoding tableRef/args/opts into
// the opaque request payload via the extension codec; decodeID may be
// nil, in which case the response's ID is left empty.
func (c *RemoteSessionClient) DispatchAccess(ctx context.Context, req RawBytes, decodeID DispatchAccessIDDecoder) (*DispatchAccessResponse, error) {
	var resp RawBytes
	if err := grpc.Invoke(c.outgoingContext(ctx), fullMethod("DispatchAccess"), &req, &resp, c.conn, rawCallOption()); err != nil {
		return nil, remoteSessionErr("dispatch_access", err)
	}
	id := ""
	if decodeID != nil {
		decoded, err := decodeID(resp)
		if err != nil {
			return nil, internalErr(err)
		}
		id = decoded
	}
	return &DispatchAccessResponse{ID: id, Schema: resp}, nil
}

// PlanResultStream iterates server-streamed result batches from
// physical_plan_execute, in arrival order (spec.md 5).
type PlanResultStream struct {
	stream grpc.ClientStream
}

// Recv returns the next batch, or io.EOF when the stream has ended
// cleanly. Any other error is wrapped RemoteSession{physical_plan_execute}.
func (s *PlanResultStream) Recv() (RawBytes, error) {
	var batch RawBytes
	if err := s.stream.RecvMsg(&batch); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, remoteSessionErr("physical_plan_execute", err)
	}
	return batch, nil
}

// CloseSend half-closes the sending side of the stream. PhysicalPlanExecute
// has already done so after sending the plan, so a further call has no
// effect. It does not cancel the RPC: that happens when the context passed
// to PhysicalPlanExecute is cancelled. Batches already received remain
// valid.
func (s *PlanResultStream) CloseSend() error {
	return s.stream.CloseSend()
}

// PhysicalPlanExecute serializes an execution plan (already encoded by
// the caller via the extension codec) and opens a server-streaming RPC of
// result batches (spec.md 4.4).
func (c *RemoteSessionClient) PhysicalPlanExecute(ctx context.Context, plan RawBytes) (*PlanResultStream, error) {
	desc := &grpc.StreamDesc{StreamName: "PhysicalPlanExecute", ServerStreams: true}
	stream, err := c.conn.NewStream(c.outgoingContext(ctx), desc, fullMethod("PhysicalPlanExecute"), rawCallOption())
	if err != nil {
		return nil, remoteSessionErr("physical_plan_execute", err)
	}
	if err := stream.SendMsg(&plan); err != nil {
		return nil, remoteSessionErr("physical_plan_execute", err)
	}
	if err := stream.CloseSend(); err != nil {
		return nil, remoteSessionErr("physical_plan_execute", err)
	}
	return &PlanResultStream{stream: stream}, nil
}

// ExchangeUpload is the client-streaming upload handle for
// broadcast_exchange.
type ExchangeUpload struct {
	stream grpc.ClientStream
}

// Send uploads one outgoing execution-result batch.
func (u *ExchangeUpload) Send(batch RawBytes) error {
	if err := u.stream.SendMsg(&batch); err != nil {
		return remoteSessionErr("broadcast_exchange", err)
	}
	return nil
}

// CloseAndRecv signals end-of-upload and waits for the server's
// acknowledgement (spec.md 4.4: "returns after the server acknowledges").
func (u *ExchangeUpload) CloseAndRecv() error {
	if err := u.stream.CloseSend(); err != nil {
		return remoteSessionErr("broadcast_exchange", err)
	}
	var ack RawBytes
	if err := u.stream.RecvMsg(&ack); err != nil && err != io.EOF {
		return remoteSessionErr("broadcast_exchange", err)
	}
	return nil
}

// BroadcastExchange opens a client-streaming upload of execution-result
// batches (spec.md 4.4).
func (c *RemoteSessionClient) BroadcastExchange(ctx context.Context) (*ExchangeUpload, error) {
	desc := &grpc.StreamDesc{StreamName: "BroadcastExchange", ClientStreams: true}
	stream, err := c.conn.NewStream(c.outgoingContext(ctx), desc, fullMethod("BroadcastExchange"), rawCallOption())
	if err != nil {
		return nil, remoteSessionErr("broadcast_exchange", err)
	}
	return &ExchangeUpload{stream: stream}, nil
}

// BroadcastExchangeStream runs produce concurrently with the upload of
// whatever it sends on batches, joining the two with errgroup so that
// either side's failure cancels the other (spec.md 4.4's
// broadcast_exchange is a long-running client stream; a plain
// produce-then-send would serialize batch generation against network
// upload for no reason). produce must close batches when done, and must
// select on ctx.Done() around each send so an uploader failure (which
// cancels ctx but leaves batches undrained) doesn't block it forever.
func (c *RemoteSessionClient) BroadcastExchangeStream(ctx context.Context, produce func(ctx context.Context, batches chan<- RawBytes) error) error {
	upload, err := c.BroadcastExchange(ctx)
	if err != nil {
		return err
	}

	batches := make(chan RawBytes)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(batches)
		return produce(gctx, batches)
	})
	g.Go(func() error {
		for batch := range batches {
			if err := upload.Send(batch); err != nil {
				return err
			}
		}
		return upload.CloseAndRecv()
	})

	return g.Wait()
}
