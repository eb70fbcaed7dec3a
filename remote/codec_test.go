package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestRawCodecRoundtrips(t *testing.T) {
	codec := encoding.GetCodec(rawCodecName)
	require.NotNil(t, codec)

	payload := RawBytes("hello world")
	data, err := codec.Marshal(&payload)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), data)

	var out RawBytes
	require.NoError(t, codec.Unmarshal(data, &out))
	assert.Equal(t, payload, out)
}

func TestErrorsCarryKind(t *testing.T) {
	err := invalidURL("bad scheme")
	assert.Equal(t, ErrInvalidRemoteExecUrl, err.Kind)
	assert.Contains(t, err.Error(), "bad scheme")

	wrapped := remoteSessionErr("fetch_catalog", assert.AnError)
	assert.Equal(t, ErrRemoteSession, wrapped.Kind)
	assert.ErrorIs(t, wrapped, assert.AnError)
}
