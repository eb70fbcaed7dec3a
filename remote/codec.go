package remote

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// RawBytes is the opaque wire payload every RemoteSessionClient RPC
// exchanges. spec.md 1 explicitly puts "the on-wire protobuf schemas
// (treated as opaque serialization)" out of scope for this core: the
// client ships and receives already-serialized bytes produced by the
// extension codec, without decoding them.
type RawBytes []byte

const rawCodecName = "coredb-raw"

type rawCodec struct{}

func (rawCodec) Marshal(v interface{}) ([]byte, error) {
	switch b := v.(type) {
	case *RawBytes:
		return []byte(*b), nil
	case RawBytes:
		return []byte(b), nil
	default:
		return nil, fmt.Errorf("coredb-raw codec: unsupported type %T", v)
	}
}

func (rawCodec) Unmarshal(data []byte, v interface{}) error {
	b, ok := v.(*RawBytes)
	if !ok {
		return fmt.Errorf("coredb-raw codec: unsupported type %T", v)
	}
	*b = append((*b)[:0], data...)
	return nil
}

func (rawCodec) Name() string { return rawCodecName }

func init() {
	encoding.RegisterCodec(rawCodec{})
}
