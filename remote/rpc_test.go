package remote

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDatabaseIDFallsBackWithoutDecoder(t *testing.T) {
	id, err := extractDatabaseID(RawBytes("anything"), nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
}

func TestExtractDatabaseIDUsesDecoder(t *testing.T) {
	want := uuid.New()
	decode := func(resp RawBytes) (uuid.UUID, error) {
		assert.Equal(t, RawBytes("payload"), resp)
		return want, nil
	}
	got, err := extractDatabaseID(RawBytes("payload"), decode)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExtractDatabaseIDPropagatesDecoderError(t *testing.T) {
	decode := func(resp RawBytes) (uuid.UUID, error) {
		return uuid.Nil, errors.New("malformed response")
	}
	_, err := extractDatabaseID(RawBytes("payload"), decode)
	assert.EqualError(t, err, "malformed response")
}
